package app

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

	"github.com/upadhyay-sonu/Task-Manager/internal/config"
	"github.com/upadhyay-sonu/Task-Manager/internal/database"
	"github.com/upadhyay-sonu/Task-Manager/internal/handler"
	"github.com/upadhyay-sonu/Task-Manager/internal/middleware"
	"github.com/upadhyay-sonu/Task-Manager/internal/repository"
	"github.com/upadhyay-sonu/Task-Manager/internal/router"
	"github.com/upadhyay-sonu/Task-Manager/internal/service"
)

type App struct {
	server *http.Server
	db     *database.DB
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	slog.Info("connecting to PostgreSQL")
	db, err := database.New(context.Background(), database.Config{
		URL:             cfg.DatabaseURL,
		MaxConns:        cfg.DBMaxConns,
		MinConns:        cfg.DBMinConns,
		MaxConnLifetime: cfg.DBConnMaxLifetime,
		MaxConnIdleTime: cfg.DBConnMaxIdleTime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure database schema: %w", err)
	}

	pool := db.Pool
	userRepo := repository.NewUserRepository(pool)
	tokenRepo := repository.NewTokenRepository(pool)
	taskRepo := repository.NewTaskRepository(pool)
	slog.Info("database ready")

	authService := service.NewAuthService(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL, userRepo, tokenRepo)
	taskService := service.NewTaskService(taskRepo)

	authMiddleware := middleware.NewAuthMiddleware(authService)
	authHandler := handler.NewAuthHandler(authService, cfg.JWTRefreshTTL, cfg.IsProduction())
	taskHandler := handler.NewTaskHandler(taskService)
	healthHandler := handler.NewHealthHandler(db)

	spaHandler, err := handler.NewSPAHandler()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize frontend assets: %w", err)
	}

	appRouter := router.New(cfg, authMiddleware, router.Handlers{
		Auth:   authHandler,
		Task:   taskHandler,
		Health: healthHandler,
		SPA:    spaHandler,
	})

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      appRouter,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  cfg.ServerIdleTimeout,
	}

	return &App{server: server, db: db}, nil
}

func (a *App) Run() error {
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.db.Close()
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	a.db.Close()
	slog.Info("server stopped")
	return nil
}
