package api

import (
	"github.com/gin-gonic/gin"
	"github.com/wonny/marketdesk/internal/api/handlers"
	"github.com/wonny/marketdesk/internal/api/middleware"
	"github.com/wonny/marketdesk/internal/api/routes"
	"github.com/wonny/marketdesk/internal/infra/database"
	"github.com/wonny/marketdesk/internal/pkg/config"
	"github.com/wonny/marketdesk/internal/pkg/logger"
)

// Deps holds the services the router exposes
type Deps struct {
	MarketData handlers.MarketDataService
	News       handlers.NewsService
	Database   database.HealthChecker
	Cache      handlers.Pinger // optional
	Version    string
}

// Router holds all dependencies for API routing
type Router struct {
	engine        *gin.Engine
	config        *config.Config
	healthHandler *handlers.HealthHandler
	marketHandler *handlers.MarketDataHandler
	newsHandler   *handlers.NewsHandler
	streamHandler *handlers.StreamHandler
}

// NewRouter creates a new API router with all dependencies
func NewRouter(cfg *config.Config, deps Deps) *Router {
	gin.SetMode(cfg.Server.Mode)

	router := &Router{
		engine:        gin.New(),
		config:        cfg,
		healthHandler: handlers.NewHealthHandler(deps.Database, deps.Cache, deps.Version),
		marketHandler: handlers.NewMarketDataHandler(deps.MarketData),
		newsHandler:   handlers.NewNewsHandler(deps.News),
		streamHandler: handlers.NewStreamHandler(deps.News, cfg.News.StreamInterval),
	}

	router.setupMiddlewares()
	router.setupRoutes()

	return router
}

// setupMiddlewares configures all global middlewares
func (r *Router) setupMiddlewares() {
	// Recovery must be first
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.RequestID())

	logCfg := middleware.LoggingConfig{
		SkipPaths: []string{"/api/health", "/api/health/ready"},
	}
	if r.config.Logging.FileEnabled {
		accessLogger := logger.NewAccessLogger(
			r.config.Logging.FilePath,
			r.config.Logging.RotationSize,
			r.config.Logging.RetentionDays,
		)
		logCfg.AccessLogger = &accessLogger
	}
	r.engine.Use(middleware.Logging(logCfg))

	r.engine.Use(middleware.CORS(r.config.Server.AllowedOrigins))
}

// setupRoutes configures all API routes
func (r *Router) setupRoutes() {
	api := r.engine.Group("/api")
	{
		api.GET("/health", r.healthHandler.Health)
		api.GET("/health/ready", r.healthHandler.Ready)

		routes.RegisterMarketRoutes(api, r.marketHandler)
		routes.RegisterNewsRoutes(api, r.newsHandler, r.streamHandler)
	}
}

// Engine returns the underlying Gin engine
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
