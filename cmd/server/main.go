package main

import "reportdesk/internal/app/server"

func main() {
	server.Run()
}
