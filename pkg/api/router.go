package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/urmzd/meshgate/pkg/api/handlers"
	"github.com/urmzd/meshgate/pkg/device"
	"github.com/urmzd/meshgate/pkg/device/schema"
)

// Deps are the collaborators the HTTP API serves from.
type Deps struct {
	Store     device.Store
	Commander device.Commander
	Link      device.LinkMonitor
	Gateways  handlers.GatewaySettings
	Validator *schema.Validator

	// EventLogPath is the file served by GET /logs.
	EventLogPath string
}

// Router holds the Gin engine and dependencies
type Router struct {
	engine *gin.Engine
	deps   Deps
}

// NewRouter creates a new API router
func NewRouter(deps Deps) *Router {
	gin.SetMode(gin.ReleaseMode)

	if deps.Link == nil {
		deps.Link = device.NewNullLink()
	}
	if deps.Validator == nil {
		deps.Validator = schema.NewValidator()
	}

	engine := gin.New()
	SetupMiddleware(engine)

	router := &Router{
		engine: engine,
		deps:   deps,
	}

	router.setupRoutes()

	return router
}

// setupRoutes configures all API routes
func (r *Router) setupRoutes() {
	// Swagger UI
	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})

	healthHandler := handlers.NewHealthHandler(r.deps.Link)
	r.engine.GET("/health", healthHandler.Health)

	v1 := r.engine.Group("/api/v1")
	{
		v1.GET("/health", healthHandler.Health)

		configHandler := handlers.NewConfigHandler(r.deps.Store, r.deps.Validator)
		config := v1.Group("/config")
		{
			config.GET("", configHandler.GetConfig)
			config.POST("", configHandler.SetSlotState)
			config.POST("/lights", configHandler.SetNodeState)
			config.POST("/devices", configHandler.CreateDevice)
		}
		v1.GET("/devices", configHandler.ListDevices)

		commandHandler := handlers.NewCommandHandler(r.deps.Commander)
		v1.POST("/command", commandHandler.Command)
		v1.POST("/blinds", commandHandler.Blinds)
		v1.GET("/nodes", commandHandler.Nodes)

		logsHandler := handlers.NewLogsHandler(r.deps.EventLogPath)
		v1.GET("/logs", logsHandler.Download)

		if r.deps.Gateways != nil {
			gatewayHandler := handlers.NewGatewayHandler(r.deps.Gateways)
			v1.GET("/gateway", gatewayHandler.GetGateway)
			v1.PUT("/gateway", gatewayHandler.UpdateGateway)
		}
	}
}

// Handler returns the router as an http.Handler
func (r *Router) Handler() http.Handler {
	return r.engine
}
