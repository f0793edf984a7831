package routes

import (
	"github.com/badr-lol/contact-relay/internal/api/handlers"
	"github.com/badr-lol/contact-relay/internal/api/middleware"
	"github.com/badr-lol/contact-relay/internal/config"

	"github.com/gin-gonic/gin"
)

// SetupContactRoutes configures the public contact form route
func SetupContactRoutes(api *gin.RouterGroup, contact *handlers.ContactHandler, m *Middleware, cfg *config.Config) {
	route := []gin.HandlerFunc{}

	// Optional rate limiting (no auth on this endpoint, so this is the only throttle)
	if cfg.RateLimitRPS > 0 {
		route = append(route, middleware.RateLimitMiddleware(middleware.RateLimitConfig{
			RPS:   cfg.RateLimitRPS,
			Burst: cfg.RateLimitBurst,
		}))
	}

	route = append(route, m.Validation.ValidateContactRequest(), contact.Submit)

	api.POST("/contact", route...)
}
