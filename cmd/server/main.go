package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	identityapp "github.com/garment/backend/internal/application/identity"
	inventoryapp "github.com/garment/backend/internal/application/inventory"
	thirdpartyapp "github.com/garment/backend/internal/application/thirdparty"
	tradeapp "github.com/garment/backend/internal/application/trade"
	"github.com/garment/backend/internal/domain/identity"
	"github.com/garment/backend/internal/domain/shared"
	"github.com/garment/backend/internal/infrastructure/auth"
	"github.com/garment/backend/internal/infrastructure/config"
	"github.com/garment/backend/internal/infrastructure/logger"
	"github.com/garment/backend/internal/infrastructure/persistence"
	"github.com/garment/backend/internal/infrastructure/ratelimit"
	"github.com/garment/backend/internal/interfaces/http/handler"
	"github.com/garment/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting garment backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Redis backs the token blacklist and shared rate-limit counters;
	// without it both fall back to in-process stores.
	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			_ = redisClient.Close()
		}()
		log.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))
	}

	var blacklist auth.TokenBlacklist
	if redisClient != nil {
		blacklist = auth.NewRedisTokenBlacklist(redisClient)
	} else {
		blacklist = auth.NewMemoryTokenBlacklist()
	}

	var limiter *ratelimit.Limiter
	if cfg.RateLimit.Enabled {
		var store ratelimit.Store
		if cfg.RateLimit.UseRedis && redisClient != nil {
			store = ratelimit.NewRedisStore(redisClient)
		} else {
			store = ratelimit.NewMemoryStore()
		}
		limiter = ratelimit.NewLimiter(store, cfg.RateLimit.Requests, cfg.RateLimit.Window)
	}

	userRepo := persistence.NewGormUserRepository(db.DB)
	roleRepo := persistence.NewGormRoleRepository(db.DB)
	partyRepo := persistence.NewGormThirdPartyRepository(db.DB)
	ledgerRepo := persistence.NewGormLegalStatusRepository(db.DB)
	itemRepo := persistence.NewGormItemRepository(db.DB)
	movementRepo := persistence.NewGormMovementRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)

	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)
	permService := identityapp.NewPermissionService(roleRepo)
	partyService := thirdpartyapp.NewPartyService(partyRepo)
	legalStatusService := thirdpartyapp.NewLegalStatusService(partyRepo, ledgerRepo, log)
	stockService := inventoryapp.NewStockService(itemRepo, movementRepo, log)
	orderService := tradeapp.NewOrderService(orderRepo, legalStatusService, log)

	if err := bootstrapAdmin(context.Background(), cfg.Admin, userRepo, roleRepo, log); err != nil {
		log.Fatal("Failed to bootstrap administrator account", zap.Error(err))
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	}

	router.Setup(engine, router.Config{
		Logger:             log,
		JWTService:         jwtService,
		TokenBlacklist:     blacklist,
		CookieName:         cfg.Cookie.Name,
		PermissionResolver: permService,
		Limiter:            limiter,
		AuthHandler:        handler.NewAuthHandler(authService, cfg.Cookie),
		ThirdPartyHandler:  handler.NewThirdPartyHandler(partyService, legalStatusService),
		InventoryHandler:   handler.NewInventoryHandler(stockService),
		OrderHandler:       handler.NewOrderHandler(orderService),
	})

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}

// bootstrapAdmin creates the administrator account on first start. The
// role catalog comes from migrations; the account password comes from
// configuration so no credential ever lives in a migration file.
func bootstrapAdmin(ctx context.Context, cfg config.AdminConfig, userRepo identity.UserRepository, roleRepo identity.RoleRepository, log *zap.Logger) error {
	if cfg.Password == "" {
		log.Warn("Admin bootstrap skipped: admin.password is not set")
		return nil
	}

	_, err := userRepo.FindByUsername(ctx, cfg.Username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return err
	}

	role, err := roleRepo.FindByName(ctx, identity.RoleAdministrador)
	if err != nil {
		return err
	}

	user, err := identity.NewUser(cfg.Username, cfg.Password, cfg.FullName, role.ID)
	if err != nil {
		return err
	}
	if err := userRepo.Save(ctx, user); err != nil {
		return err
	}

	log.Info("Administrator account created", zap.String("username", user.Username))
	return nil
}
