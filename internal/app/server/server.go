package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"reportdesk/internal/domain/auth"
	"reportdesk/internal/domain/comments"
	"reportdesk/internal/domain/compile"
	"reportdesk/internal/domain/deadlines"
	"reportdesk/internal/domain/notifications"
	"reportdesk/internal/domain/reports"
	"reportdesk/internal/domain/users"
	"reportdesk/internal/platform/config"
	"reportdesk/internal/platform/db"
	"reportdesk/internal/platform/email"
	"reportdesk/internal/platform/jobs"
	authhandler "reportdesk/internal/transport/http/handlers/auth"
	commentshandler "reportdesk/internal/transport/http/handlers/comments"
	compiledhandler "reportdesk/internal/transport/http/handlers/compiled"
	deadlineshandler "reportdesk/internal/transport/http/handlers/deadlines"
	notificationshandler "reportdesk/internal/transport/http/handlers/notifications"
	reportshandler "reportdesk/internal/transport/http/handlers/reports"
	usershandler "reportdesk/internal/transport/http/handlers/users"
	"reportdesk/internal/transport/http/middleware"
)

type App struct {
	Config config.Config
	Pool   *pgxpool.Pool
	Router http.Handler
	Jobs   *jobs.Service
}

// New wires the domain services, transport and scheduler against a
// connected pool.
func New(cfg config.Config, pool *pgxpool.Pool) *App {
	mailer := email.New(cfg)

	notificationsSvc := notifications.New(notifications.NewStore(pool), mailer)
	notificationsSvc.DefaultFrom = cfg.EmailFrom

	deadlinesSvc := deadlines.NewService(deadlines.NewStore(pool))

	reportsStore := reports.NewStore(pool)
	reportsSvc := reports.NewService(reportsStore, notificationsSvc, deadlinesSvc)

	compileSvc := compile.NewService(compile.NewStore(pool))

	commentsSvc := comments.NewService(comments.NewStore(pool), reportsStore, notificationsSvc)

	usersSvc := users.NewService(users.NewStore(pool))

	jobsSvc := jobs.New(pool, reportsStore, notificationsSvc, compileSvc, cfg.ReminderHour)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(auth.NewStore(pool), cfg.JWTSecret).RegisterRoutes(r)
		reportshandler.NewHandler(reportsSvc, commentsSvc).RegisterRoutes(r)
		compiledhandler.NewHandler(compileSvc).RegisterRoutes(r)
		deadlineshandler.NewHandler(deadlinesSvc).RegisterRoutes(r)
		notificationshandler.NewHandler(notificationsSvc).RegisterRoutes(r)
		commentshandler.NewHandler(commentsSvc).RegisterRoutes(r)
		usershandler.NewHandler(usersSvc, reportsSvc).RegisterRoutes(r)
	})

	return &App{Config: cfg, Pool: pool, Router: router, Jobs: jobsSvc}
}

func Run() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	app := New(cfg, pool)

	if cfg.JobsEnabled {
		app.Jobs.Start(ctx)
		defer app.Jobs.Stop()
	}

	log.Printf("reportdesk server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, app.Router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
