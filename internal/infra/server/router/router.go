// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/middleware"
)

// Controllers groups every HTTP controller served by the router.
type Controllers struct {
	Health    *controller.HealthController
	Auth      *controller.AuthController
	User      *controller.UserController
	Category  *controller.CategoryController
	Expense   *controller.ExpenseController
	Dashboard *controller.DashboardController
}

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine         *gin.Engine
	controllers    Controllers
	authMiddleware *middleware.AuthMiddleware
	authLimiter    adapter.RateLimiter
}

// NewRouter creates a new router instance with all dependencies.
// authLimiter may be nil to disable throttling of login and registration.
func NewRouter(
	controllers Controllers,
	authMiddleware *middleware.AuthMiddleware,
	authLimiter adapter.RateLimiter,
) *Router {
	return &Router{
		controllers:    controllers,
		authMiddleware: authMiddleware,
		authLimiter:    authLimiter,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	switch environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// Engine returns the configured engine, or nil before Setup.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.controllers.Health.Check)
}

func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register", r.throttled(r.controllers.Auth.Register)...)
		auth.POST("/login", r.throttled(r.controllers.Auth.Login)...)
		auth.POST("/refresh", r.controllers.Auth.RefreshToken)
		auth.POST("/logout", r.controllers.Auth.Logout)
	}

	protected := v1.Group("")
	protected.Use(r.authMiddleware.Authenticate())

	users := protected.Group("/users")
	{
		users.DELETE("/me", r.controllers.User.DeleteAccount)
		users.PATCH("/me/preferences", r.controllers.User.UpdatePreferences)
	}

	categories := protected.Group("/categories")
	{
		categories.GET("", r.controllers.Category.List)
		categories.POST("", r.controllers.Category.Create)
		categories.POST("/suggest", r.controllers.Category.Suggest)
		categories.PATCH("/:id", r.controllers.Category.Update)
		categories.DELETE("/:id", r.controllers.Category.Delete)
	}

	expenses := protected.Group("/expenses")
	{
		expenses.GET("", r.controllers.Expense.List)
		expenses.POST("", r.controllers.Expense.Create)
		expenses.POST("/delete-request", r.controllers.Expense.DeleteMany)
		expenses.GET("/:id", r.controllers.Expense.Get)
		expenses.PATCH("/:id", r.controllers.Expense.Update)
		expenses.DELETE("/:id", r.controllers.Expense.Delete)
	}

	dashboard := protected.Group("/dashboard")
	{
		dashboard.GET("/summary", r.controllers.Dashboard.GetSummary)
		dashboard.GET("/ranges", r.controllers.Dashboard.ListRanges)
	}
}

// throttled prefixes handler with the auth rate limiter when one is configured.
func (r *Router) throttled(handler gin.HandlerFunc) []gin.HandlerFunc {
	if r.authLimiter == nil {
		return []gin.HandlerFunc{handler}
	}
	return []gin.HandlerFunc{middleware.RateLimit(r.authLimiter, "auth"), handler}
}
