// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/expense-tracker/backend/config"
	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/application/usecase/auth"
	"github.com/expense-tracker/backend/internal/application/usecase/category"
	"github.com/expense-tracker/backend/internal/application/usecase/dashboard"
	"github.com/expense-tracker/backend/internal/application/usecase/digest"
	"github.com/expense-tracker/backend/internal/application/usecase/expense"
	"github.com/expense-tracker/backend/internal/infra/server/router"
	"github.com/expense-tracker/backend/internal/integration/adapters"
	"github.com/expense-tracker/backend/internal/integration/cache"
	"github.com/expense-tracker/backend/internal/integration/email"
	"github.com/expense-tracker/backend/internal/integration/email/templates"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/middleware"
	"github.com/expense-tracker/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Router *router.Router

	// SeedDefaults upserts the built-in category taxonomy.
	SeedDefaults *category.SeedDefaultsUseCase
	// Worker and Scheduler are nil when their feature is disabled.
	Worker    *email.Worker
	Scheduler *email.Scheduler
}

// Options carries the optional pieces of the graph.
type Options struct {
	// Redis backs the token store and rate limiter. Nil selects in-memory fallbacks.
	Redis *redis.Client
	// HealthCheck reports database reachability.
	HealthCheck controller.HealthCheck
	// Now overrides the clock used by summaries and the digest.
	Now func() time.Time
	// EmailSender overrides the Resend client.
	EmailSender adapter.EmailSender
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, opts Options) (*Injector, error) {
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	defaultLocation, err := dashboard.LoadLocation(cfg.Summary.DefaultTimezone)
	if err != nil {
		return nil, fmt.Errorf("invalid default timezone: %w", err)
	}

	// Create repositories
	userRepo := persistence.NewUserRepository(db)
	categoryRepo := persistence.NewCategoryRepository(db)
	expenseRepo := persistence.NewExpenseRepository(db)
	emailQueueRepo := persistence.NewEmailQueueRepository(db)

	// Create adapters/services
	var tokenStore adapter.TokenStore
	var authLimiter adapter.RateLimiter
	if opts.Redis != nil {
		tokenStore = cache.NewTokenStore(opts.Redis)
		authLimiter = cache.NewRedisRateLimiter(opts.Redis, cfg.RateLimit.MaxAttempts, cfg.RateLimit.Window)
	} else {
		slog.Warn("Redis not configured, using in-memory token store and rate limiter")
		tokenStore = cache.NewMemoryTokenStore()
		authLimiter = cache.NewMemoryRateLimiter(cfg.RateLimit.MaxAttempts, cfg.RateLimit.Window)
	}
	if !cfg.RateLimit.Enabled {
		authLimiter = nil
	}

	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(adapters.TokenConfig{
		Secret:          cfg.JWT.Secret,
		AccessTokenTTL:  cfg.JWT.AccessTokenExpiry,
		RefreshTokenTTL: cfg.JWT.RefreshTokenExpiry,
	}, tokenStore)

	var suggester adapter.CategorySuggester
	if cfg.Gemini.APIKey != "" {
		suggester = adapters.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model)
	} else {
		slog.Info("GEMINI_API_KEY not set, category suggestions disabled")
	}

	// Create auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)
	deleteAccountUseCase := auth.NewDeleteAccountUseCase(userRepo, expenseRepo, categoryRepo, passwordService, tokenService)
	updatePreferencesUseCase := auth.NewUpdatePreferencesUseCase(userRepo)

	// Create category use cases
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
	createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo)
	updateCategoryUseCase := category.NewUpdateCategoryUseCase(categoryRepo)
	deleteCategoryUseCase := category.NewDeleteCategoryUseCase(categoryRepo)
	suggestCategoryUseCase := category.NewSuggestCategoryUseCase(categoryRepo, suggester)

	// Create expense use cases
	listExpensesUseCase := expense.NewListExpensesUseCase(expenseRepo, categoryRepo)
	getExpenseUseCase := expense.NewGetExpenseUseCase(expenseRepo)
	createExpenseUseCase := expense.NewCreateExpenseUseCase(expenseRepo, categoryRepo)
	updateExpenseUseCase := expense.NewUpdateExpenseUseCase(expenseRepo, categoryRepo)
	deleteExpenseUseCase := expense.NewDeleteExpenseUseCase(expenseRepo)
	deleteExpensesUseCase := expense.NewDeleteExpensesUseCase(expenseRepo)

	// Create dashboard use cases
	getSummaryUseCase := dashboard.NewGetSummaryUseCase(expenseRepo, categoryRepo, userRepo, defaultLocation, now)
	listRangesUseCase := dashboard.NewListRangesUseCase(now)

	// Create controllers
	checks := map[string]controller.HealthCheck{"database": opts.HealthCheck}
	if opts.Redis != nil {
		client := opts.Redis
		checks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
	}

	controllers := router.Controllers{
		Health: controller.NewHealthController(checks),
		Auth:   controller.NewAuthController(registerUseCase, loginUseCase, refreshTokenUseCase, logoutUseCase),
		User:   controller.NewUserController(deleteAccountUseCase, updatePreferencesUseCase),
		Category: controller.NewCategoryController(
			listCategoriesUseCase,
			createCategoryUseCase,
			updateCategoryUseCase,
			deleteCategoryUseCase,
			suggestCategoryUseCase,
		),
		Expense: controller.NewExpenseController(
			listExpensesUseCase,
			getExpenseUseCase,
			createExpenseUseCase,
			updateExpenseUseCase,
			deleteExpenseUseCase,
			deleteExpensesUseCase,
		),
		Dashboard: controller.NewDashboardController(getSummaryUseCase, listRangesUseCase, defaultLocation),
	}

	injector := &Injector{
		Config:       cfg,
		DB:           db,
		Router:       router.NewRouter(controllers, middleware.NewAuthMiddleware(tokenService), authLimiter),
		SeedDefaults: category.NewSeedDefaultsUseCase(categoryRepo),
	}

	// Create email delivery
	sender := opts.EmailSender
	if sender == nil && cfg.Email.ResendAPIKey != "" {
		sender = email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
	}
	if sender == nil {
		slog.Warn("RESEND_API_KEY not set, email worker and weekly digest disabled")
		return injector, nil
	}

	if cfg.Email.WorkerEnabled {
		renderer, err := templates.NewRenderer()
		if err != nil {
			return nil, fmt.Errorf("failed to load email templates: %w", err)
		}
		injector.Worker = email.NewWorker(emailQueueRepo, sender, renderer, email.WorkerConfig{
			PollInterval: cfg.Email.PollInterval,
			BatchSize:    cfg.Email.BatchSize,
		}, now)
	}

	if cfg.Digest.Enabled {
		digestUseCase := digest.NewQueueWeeklyDigestUseCase(
			userRepo,
			expenseRepo,
			categoryRepo,
			emailQueueRepo,
			cfg.Email.AppBaseURL,
			cfg.Digest.Interval,
			now,
		)
		injector.Scheduler = email.NewScheduler(digestUseCase, cfg.Digest.CheckInterval)
	}

	return injector, nil
}
