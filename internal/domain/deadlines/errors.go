package deadlines

import "errors"

var (
	ErrNotFound    = errors.New("deadline not found")
	ErrInvalidRule = errors.New("invalid deadline rule")
)
