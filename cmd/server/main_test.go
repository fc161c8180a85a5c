package main

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"interviewprep/backend/internal/config"
	"interviewprep/backend/internal/repositories"
	"interviewprep/backend/internal/testhelpers"
)

func TestConnectWithRetrySuccess(t *testing.T) {
	origOpen := gormOpen
	defer func() { gormOpen = origOpen }()

	var calls int32
	gormOpen = func(dsn string) (*gorm.DB, error) {
		atomic.AddInt32(&calls, 1)
		return gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	}

	db, err := connectWithRetry("dsn", 0, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("expected single connection attempt, got %d", calls)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql DB: %v", err)
	}
	sqlDB.Close()
}

func TestConnectWithRetryFailure(t *testing.T) {
	origOpen := gormOpen
	defer func() { gormOpen = origOpen }()

	gormOpen = func(string) (*gorm.DB, error) {
		return nil, errors.New("connect failed")
	}

	if _, err := connectWithRetry("dsn", 0, zap.NewNop()); err == nil {
		t.Fatalf("expected error but got nil")
	}
}

func newTestRouterEnv(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()
	db := testhelpers.SetupTestDB(t)
	userRepo := &repositories.UserRepository{DB: db}
	interviewRepo := &repositories.InterviewRepository{DB: db}
	return newRouter(cfg, userRepo, interviewRepo)
}

func TestRouterSurface(t *testing.T) {
	cfg := &config.Config{CORSOrigins: []string{"http://localhost:3000"}}
	router := newTestRouterEnv(t, cfg)

	t.Run("health endpoints", func(t *testing.T) {
		for _, path := range []string{"/health", "/api/v1/health"} {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
			if rec.Code != http.StatusOK {
				t.Fatalf("%s: expected 200, got %d", path, rec.Code)
			}
		}
	})

	t.Run("metrics endpoint", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 from /metrics, got %d", rec.Code)
		}
	})

	t.Run("user create over full stack", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/users", bytes.NewBufferString(`{"email":"a@x.com"}`))
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
	})
}

func TestRouterAuthGate(t *testing.T) {
	cfg := &config.Config{JWTSecret: "gate-secret", CORSOrigins: []string{"http://localhost:3000"}}
	router := newTestRouterEnv(t, cfg)

	t.Run("api rejects anonymous requests", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/users", nil))
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("health stays open", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})
}
