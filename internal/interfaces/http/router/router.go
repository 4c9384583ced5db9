package router

import (
	"net/http"

	"github.com/garment/backend/internal/infrastructure/auth"
	"github.com/garment/backend/internal/infrastructure/logger"
	"github.com/garment/backend/internal/infrastructure/ratelimit"
	"github.com/garment/backend/internal/interfaces/http/handler"
	"github.com/garment/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Config holds everything the router needs to assemble the API surface
type Config struct {
	APIVersion string
	Logger     *zap.Logger

	JWTService     *auth.JWTService
	TokenBlacklist auth.TokenBlacklist
	CookieName     string

	PermissionResolver middleware.PermissionResolver
	Limiter            *ratelimit.Limiter

	AuthHandler       *handler.AuthHandler
	ThirdPartyHandler *handler.ThirdPartyHandler
	InventoryHandler  *handler.InventoryHandler
	OrderHandler      *handler.OrderHandler
}

// Setup wires middleware and handlers onto the engine. Routes live
// under /api/<version>; only login and the health probe are public.
func Setup(engine *gin.Engine, cfg Config) {
	version := cfg.APIVersion
	if version == "" {
		version = "v1"
	}

	middleware.SetupValidator()

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(cfg.Logger))
	engine.Use(middleware.Recovery(cfg.Logger))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api/" + version)
	public := api.Group("")
	protected := api.Group("", middleware.JWTAuthMiddleware(middleware.JWTMiddlewareConfig{
		JWTService:     cfg.JWTService,
		TokenBlacklist: cfg.TokenBlacklist,
		CookieName:     cfg.CookieName,
		Logger:         cfg.Logger,
	}))

	permCfg := middleware.PermissionConfig{
		Resolver: cfg.PermissionResolver,
		Logger:   cfg.Logger,
	}
	rlCfg := middleware.RateLimitConfig{
		Limiter: cfg.Limiter,
		Logger:  cfg.Logger,
	}

	cfg.AuthHandler.RegisterRoutes(public, protected)
	cfg.ThirdPartyHandler.RegisterRoutes(protected, permCfg, rlCfg)
	cfg.InventoryHandler.RegisterRoutes(protected, permCfg)
	cfg.OrderHandler.RegisterRoutes(protected, permCfg)
}
