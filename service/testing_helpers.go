package service

import (
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/drbusiness/platform/internal/auth"
	"github.com/drbusiness/platform/internal/handlers"
	"github.com/drbusiness/platform/storage"
)

// setupTestService creates a service instance with an in-memory database and
// no external integrations: AI endpoints answer 503 and checkout is disabled.
func setupTestService(t *testing.T) *Service {
	t.Helper()

	_, queries, cleanup, err := storage.NewTestDB()
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(cleanup)

	store := &storage.Storage{
		Queries: queries,
	}

	config := &Config{
		Environment: "test",
		Port:        "8080",
		BaseURL:     "http://localhost:8080",
	}
	config.JWT.Secret = "test-secret"
	config.JWT.TTL = time.Hour
	config.Admin.Email = "admin@dr.business"
	config.Admin.Password = "test-admin-password"
	config.Upload.Dir = t.TempDir()
	config.Upload.MaxSize = 1 << 20

	tokens := auth.NewService(config.JWT.Secret, config.JWT.TTL)

	return &Service{
		storage:        store,
		config:         config,
		tokens:         tokens,
		authHandler:    handlers.NewAuthHandler(queries, tokens, config.Admin.Email, config.Admin.Password),
		clientHandler:  handlers.NewClientHandler(queries),
		aiHandler:      handlers.NewAIHandler(nil, nil, queries, nil),
		studioHandler:  handlers.NewStudioHandler(nil),
		paymentHandler: handlers.NewPaymentHandler(queries, nil, config.Upload.Dir, config.Upload.MaxSize),
	}
}

// setupTestEcho creates an Echo instance with routes registered
func setupTestEcho(t *testing.T) (*echo.Echo, *Service) {
	t.Helper()

	e := echo.New()
	// Disable Echo's default error handler for cleaner test output
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if he, ok := err.(*echo.HTTPError); ok {
			c.Response().WriteHeader(he.Code)
		} else {
			c.Response().WriteHeader(500)
		}
	}

	svc := setupTestService(t)
	svc.RegisterRoutes(e)

	return e, svc
}
