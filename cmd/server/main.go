package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"interviewprep/backend/internal/config"
	"interviewprep/backend/internal/handlers"
	"interviewprep/backend/internal/metrics"
	"interviewprep/backend/internal/middleware"
	"interviewprep/backend/internal/models"
	"interviewprep/backend/internal/repositories"
	"interviewprep/backend/internal/routers"
	"interviewprep/backend/internal/services"
)

// swapped out in tests
var gormOpen = func(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}

const connectRetryInterval = 2 * time.Second

// connectWithRetry keeps dialing the database until it answers a ping
// or the timeout elapses. The database container often comes up a few
// seconds after the service does.
func connectWithRetry(dsn string, timeout time.Duration, logger *zap.Logger) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := gormOpen(dsn)
		if err == nil {
			sqlDB, derr := db.DB()
			if derr != nil {
				err = derr
			} else if perr := sqlDB.Ping(); perr != nil {
				err = perr
			} else {
				return db, nil
			}
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("database not reachable: %w", err)
		}
		logger.Warn("database not ready, retrying", zap.Error(err))
		time.Sleep(connectRetryInterval)
	}
}

func newRouter(cfg *config.Config, userRepo *repositories.UserRepository, interviewRepo *repositories.InterviewRepository) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID, chimiddleware.RealIP, chimiddleware.Logger, chimiddleware.Recoverer, chimiddleware.Timeout(60*time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(metrics.Middleware)

	routers.HealthRoutes(r)
	r.Handle("/metrics", metrics.Handler())

	userHandler := &handlers.UserHandler{Repo: userRepo}
	interviewHandler := &handlers.InterviewHandler{Repo: interviewRepo}

	r.Route("/api/v1", func(api chi.Router) {
		routers.HealthRoutes(api)
		api.Group(func(protected chi.Router) {
			if cfg.JWTSecret != "" {
				protected.Use(middleware.RequireAuth(cfg.JWTSecret))
			}
			routers.UserRoutes(protected, userHandler)
			routers.InterviewRoutes(protected, interviewHandler)
		})
	})
	return r
}

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	db, err := connectWithRetry(cfg.DatabaseURL, time.Minute, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := db.AutoMigrate(&models.User{}, &models.Interview{}); err != nil {
		logger.Fatal("failed to migrate schema", zap.Error(err))
	}

	userRepo := &repositories.UserRepository{DB: db}
	interviewRepo := &repositories.InterviewRepository{DB: db}

	router := newRouter(cfg, userRepo, interviewRepo)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.RedisAddr != "" {
		subscriber := services.NewInterviewSubscriber(cfg.RedisAddr, userRepo, interviewRepo, logger)
		go subscriber.Subscribe(ctx)
	}

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("interview backend listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
