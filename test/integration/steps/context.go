//go:build integration

// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"

	"github.com/expense-tracker/backend/config"
	"github.com/expense-tracker/backend/internal/infra/dependency"
	"github.com/expense-tracker/backend/internal/integration/email"
	"github.com/expense-tracker/backend/internal/integration/persistence/model"
	"github.com/expense-tracker/backend/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

// TestContext holds the test state for each scenario.
type TestContext struct {
	// HTTP
	server       *httptest.Server
	response     *http.Response
	responseBody []byte

	// Request building
	requestHeaders map[string]string

	// Auth
	accessToken  string
	refreshToken string

	// Collaborators
	injector *dependency.Injector
	db       *mock.Db
	redis    *mock.Redis
	clock    *mock.Time
	emailAPI *mock.EmailAPI

	lastExpenseID string
}

// contextKey is used to store TestContext in context.Context.
type contextKey struct{}

// GetTestContext retrieves the TestContext from context.
func GetTestContext(ctx context.Context) *TestContext {
	if tc, ok := ctx.Value(contextKey{}).(*TestContext); ok {
		return tc
	}
	return nil
}

// SetTestContext stores the TestContext in context.
func SetTestContext(ctx context.Context, tc *TestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
		_ = os.Setenv("ENV", "test")
	})
}

// InitializeScenario builds a fresh application per scenario and registers all steps.
func InitializeScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc, err := newTestContext(ctx)
		if err != nil {
			return ctx, fmt.Errorf("failed to start scenario %q: %w", sc.Name, err)
		}
		return SetTestContext(ctx, tc), nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if tc := GetTestContext(ctx); tc != nil {
			tc.close()
		}
		return ctx, nil
	})

	registerAPISteps(ctx)
	registerResponseSteps(ctx)
	registerDomainSteps(ctx)
}

func newTestContext(ctx context.Context) (*TestContext, error) {
	tc := &TestContext{
		requestHeaders: make(map[string]string),
		clock:          mock.NewTime(),
		emailAPI:       mock.NewEmailAPI(),
	}

	var err error
	if tc.db, err = mock.NewDb(model.AllModels()...); err != nil {
		tc.close()
		return nil, err
	}
	if tc.redis, err = mock.NewRedis(); err != nil {
		tc.close()
		return nil, err
	}

	cfg := config.Load()
	cfg.JWT.Secret = testJWTSecret
	cfg.Summary.DefaultTimezone = "UTC"
	cfg.RateLimit.Enabled = false
	cfg.Email.WorkerEnabled = true
	cfg.Digest.Enabled = true

	sender := email.NewResendClientWithHTTPClient(tc.emailAPI.HTTPClient(), "re_test", cfg.Email.FromName, cfg.Email.FromEmail)

	tc.injector, err = dependency.NewInjector(cfg, tc.db.DbConn, dependency.Options{
		Redis: tc.redis.Client,
		HealthCheck: func(ctx context.Context) error {
			sqlDB, err := tc.db.DbConn.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		Now:         tc.clock.Now,
		EmailSender: sender,
	})
	if err != nil {
		tc.close()
		return nil, err
	}
	if err := tc.injector.SeedDefaults.Execute(ctx); err != nil {
		tc.close()
		return nil, err
	}

	tc.server = httptest.NewServer(tc.injector.Router.Setup("test"))
	return tc, nil
}

func (tc *TestContext) close() {
	if tc.server != nil {
		tc.server.Close()
	}
	if tc.emailAPI != nil {
		tc.emailAPI.Close()
	}
	if tc.redis != nil {
		tc.redis.Close()
	}
	if tc.db != nil {
		_ = tc.db.Close()
	}
}
