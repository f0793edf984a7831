package routes

import (
	"github.com/badr-lol/contact-relay/internal/api/handlers"
	"github.com/badr-lol/contact-relay/internal/api/middleware"
	"github.com/badr-lol/contact-relay/internal/config"
	"github.com/badr-lol/contact-relay/internal/logging"

	"github.com/gin-gonic/gin"
)

// Handlers groups the route handlers
type Handlers struct {
	Contact *handlers.ContactHandler
	Health  *handlers.HealthHandler
}

// Middleware groups the per-route middleware
type Middleware struct {
	Validation *middleware.ValidationMiddleware
}

// Setup configures all route groups
func Setup(router *gin.Engine, h *Handlers, m *Middleware, cfg *config.Config) {
	logger := logging.GetGlobalLogger()

	// Health check endpoint - outside the API group
	router.GET("/health", h.Health.Check)

	api := router.Group("/api")

	SetupContactRoutes(api, h.Contact, m, cfg)

	logger.Info("All routes have been set up successfully")
}
