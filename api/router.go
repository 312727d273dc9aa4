package api

import (
	"net/http"

	"invoicing/api/health"
	"invoicing/api/invoice"
	"invoicing/api/middleware"
	"invoicing/api/notification"
	"invoicing/config"

	"github.com/gin-gonic/gin"
)

// Router Route configuration
type Router struct {
	engine                 *gin.Engine
	config                 *config.Config
	healthController       *health.Controller
	invoiceController      *invoice.Controller
	notificationController *notification.Controller
}

// NewRouter Create route configuration
func NewRouter(
	cfg *config.Config,
	healthController *health.Controller,
	invoiceController *invoice.Controller,
	notificationController *notification.Controller,
) *Router {
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Order matters: the request id must exist before anything logs.
	engine.Use(middleware.RequestIDMiddleware())
	engine.Use(middleware.RecoveryMiddleware())
	engine.Use(middleware.LoggingMiddleware())
	engine.Use(middleware.CORSMiddleware(&cfg.CORS))
	engine.Use(middleware.RateLimitMiddleware(&cfg.Server.RateLimit))

	return &Router{
		engine:                 engine,
		config:                 cfg,
		healthController:       healthController,
		invoiceController:      invoiceController,
		notificationController: notificationController,
	}
}

// SetupRoutes Set up all routes under server.base_path
func (r *Router) SetupRoutes() {
	apiGroup := r.engine.Group(r.config.Server.BasePath)
	{
		r.healthController.RegisterRoutes(apiGroup)
		r.invoiceController.RegisterRoutes(apiGroup)
		r.notificationController.RegisterRoutes(apiGroup)
	}

	if r.config.Server.BasePath != "" && r.config.Server.BasePath != "/" {
		r.engine.GET("/", r.info)
	}
}

func (r *Router) info(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":    r.config.App.Name,
		"version": r.config.App.Version,
		"env":     r.config.App.Env,
		"health":  r.config.Server.BasePath + "/health",
	})
}

// GetEngine Get Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
