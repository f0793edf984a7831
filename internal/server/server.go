package server

import (
	"io"
	"net/http"

	"github.com/badr-lol/contact-relay/internal/api/dto/contact"
	"github.com/badr-lol/contact-relay/internal/api/handlers"
	"github.com/badr-lol/contact-relay/internal/api/middleware"
	"github.com/badr-lol/contact-relay/internal/config"
	"github.com/badr-lol/contact-relay/internal/server/routes"
	"github.com/badr-lol/contact-relay/internal/service"

	"github.com/gin-gonic/gin"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	cfg    *config.Config
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config) *Server {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Disable Gin's default logger entirely because we're using our custom logger
	gin.DisableConsoleColor()
	gin.DefaultWriter = io.Discard

	// Create a new engine without default middleware
	router := gin.New()

	// A non-POST on /api/contact must answer 405, not gin's default 404
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, contact.ErrorResponse{
			Error: "Method not allowed",
		})
	})

	return &Server{
		router: router,
		cfg:    cfg,
	}
}

// Init wires middleware, services, and routes
func (s *Server) Init() {
	// Global middleware
	s.router.Use(middleware.Recovery())
	s.router.Use(middleware.RequestID())
	s.router.Use(middleware.CORS(s.cfg.Environment, s.cfg.AllowedOrigins))
	s.router.Use(middleware.SecurityHeaders())
	s.router.Use(middleware.RequestLogger())

	// External collaborator services
	turnstileService := service.NewTurnstileService(s.cfg.TurnstileSecretKey, s.cfg.TurnstileVerifyURL)
	resendService := service.NewResendService(s.cfg.ResendAPIKey, s.cfg.ResendAPIURL, s.cfg.ContactFrom, s.cfg.ContactTo)

	h := &routes.Handlers{
		Contact: handlers.NewContactHandler(turnstileService, resendService),
		Health:  handlers.NewHealthHandler(),
	}

	m := &routes.Middleware{
		Validation: middleware.NewValidationMiddleware(),
	}

	routes.Setup(s.router, h, m, s.cfg)
}

// Router exposes the underlying engine for tests
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start starts the server
func (s *Server) Start() error {
	return s.router.Run(":" + s.cfg.Port)
}
