package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/issue-desk/internal/api/handlers"
	"github.com/linskybing/issue-desk/internal/api/middleware"
	"github.com/linskybing/issue-desk/internal/api/routes"
	"github.com/linskybing/issue-desk/internal/application"
	"github.com/linskybing/issue-desk/internal/application/scheduler"
	"github.com/linskybing/issue-desk/internal/config"
	"github.com/linskybing/issue-desk/internal/config/db"
	"github.com/linskybing/issue-desk/internal/fixtures"
	"github.com/linskybing/issue-desk/internal/repository"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/pflag"
)

// @title Issue Desk API
// @version 1.0
// @description Ticket lifecycle service: issues, meeting agendas and the closed-ticket archive.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		envFile     string
		port        string
		fixturePath string
		persistence string
	)
	flagSet := pflag.NewFlagSet("issue-desk", pflag.ContinueOnError)
	flagSet.StringVar(&envFile, "env-file", "", "load configuration from this file instead of .env")
	flagSet.StringVar(&port, "port", "", "listen port (overrides SERVER_PORT)")
	flagSet.StringVar(&fixturePath, "fixtures", "", "YAML seed file (overrides FIXTURES_PATH)")
	flagSet.StringVar(&persistence, "persistence", "", "memory or postgres (overrides PERSISTENCE)")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	// Load configuration from environment variables and .env file
	if envFile != "" {
		config.LoadConfig(envFile)
	} else {
		config.LoadConfig()
	}
	if port != "" {
		config.ServerPort = port
	}
	if fixturePath != "" {
		config.FixturesPath = fixturePath
	}
	if persistence != "" {
		config.Persistence = persistence
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: config.SlogLevel()}))
	slog.SetDefault(logger)

	// Initialize JWT signing key
	middleware.Init()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backend, err := openBackend()
	if err != nil {
		return err
	}

	seed, err := fixtures.Load(config.FixturesPath, time.Now())
	if err != nil {
		return fmt.Errorf("load fixtures: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	svc := application.New(application.Options{
		Session: application.SessionOptions{
			Backend:  backend,
			Notifier: application.LogNotifier{Logger: logger},
			Metrics:  application.NewMetrics(reg),
			Logger:   logger,
		},
		Users:               seed.Users,
		Policy:              application.NewPolicy(config.EscalateMinRank),
		EscalationThreshold: config.EscalationThreshold,
		TokenTTL:            config.TokenTTL,
	})
	if err := svc.Session.Hydrate(ctx); err != nil {
		return err
	}
	added, err := svc.Session.Seed(ctx, seed.Issues)
	if err != nil {
		return fmt.Errorf("seed fixtures: %w", err)
	}
	logger.Info("fixtures loaded", "users", len(seed.Users), "issues_added", added, "persistence", config.Persistence)

	sched := scheduler.New(svc.Escalation, config.EscalationInterval, logger)
	go func() {
		if err := sched.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("scheduler exited", "error", err)
		}
	}()

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(config.CORSAllowedOrigins))
	router.Use(middleware.LoggingMiddleware(logger))
	routes.RegisterRoutes(router, handlers.New(svc, logger), reg)

	srv := &http.Server{
		Addr:              ":" + config.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting API server", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

func openBackend() (repository.Backend, error) {
	switch config.Persistence {
	case config.PersistenceMemory, "":
		return repository.NopBackend{}, nil
	case config.PersistencePostgres:
		gdb, err := db.Open(db.DSN())
		if err != nil {
			return nil, err
		}
		return repository.NewGormBackend(repository.NewRepositories(gdb)), nil
	default:
		return nil, fmt.Errorf("unknown persistence %q", config.Persistence)
	}
}
