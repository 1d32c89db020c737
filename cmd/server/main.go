package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	catalogapp "github.com/runmarket/backend/internal/application/catalog"
	engagementapp "github.com/runmarket/backend/internal/application/engagement"
	identityapp "github.com/runmarket/backend/internal/application/identity"
	"github.com/runmarket/backend/internal/application/storefront"
	"github.com/runmarket/backend/internal/application/vendorapp"
	"github.com/runmarket/backend/internal/infrastructure/auth"
	"github.com/runmarket/backend/internal/infrastructure/cache"
	"github.com/runmarket/backend/internal/infrastructure/config"
	"github.com/runmarket/backend/internal/infrastructure/crypto"
	"github.com/runmarket/backend/internal/infrastructure/logger"
	"github.com/runmarket/backend/internal/infrastructure/persistence"
	"github.com/runmarket/backend/internal/infrastructure/storage"
	"github.com/runmarket/backend/internal/interfaces/http/handler"
	"github.com/runmarket/backend/internal/interfaces/http/middleware"
	"github.com/runmarket/backend/internal/interfaces/http/router"
)

const metricsCacheTTL = 5 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Run Marketplace backend",
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

	// Redis backs the JWT blacklist and the vendor metrics cache. Without
	// it the process still serves traffic: sign-out becomes best-effort
	// and metrics are cached per instance.
	var (
		blacklist    auth.TokenBlacklist
		metricsCache vendorapp.MetricsCache
	)
	if cfg.Redis.Host != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Error closing Redis client", zap.Error(err))
			}
		}()
		blacklist = auth.NewRedisTokenBlacklist(redisClient)
		metricsCache = cache.NewRedisMetricsCache(redisClient, metricsCacheTTL, log)
		log.Info("Redis connected", zap.String("host", cfg.Redis.Host))
	} else {
		blacklist = auth.NewInMemoryTokenBlacklist()
		metricsCache = cache.NewInMemoryMetricsCache(metricsCacheTTL)
		log.Warn("Redis not configured, using in-memory token blacklist and metrics cache")
	}

	jwtService := auth.NewJWTService(cfg.JWT)

	phoneCipher, err := crypto.NewPhoneCipher(cfg.Crypto.PhoneKey)
	if err != nil {
		log.Fatal("Failed to initialize phone cipher", zap.Error(err))
	}

	var objectStorage catalogapp.ObjectStorage
	if cfg.Storage.Endpoint != "" {
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage, log)
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		if err := s3Storage.EnsureBucket(context.Background()); err != nil {
			log.Fatal("Failed to ensure storage bucket", zap.Error(err))
		}
		objectStorage = s3Storage
		log.Info("Object storage ready", zap.String("bucket", cfg.Storage.Bucket))
	} else {
		objectStorage = storage.NewStubObjectStorage()
		log.Warn("Object storage not configured, image uploads will return stub URLs")
	}

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	vendorRepo := persistence.NewGormVendorRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	brandRepo := persistence.NewGormBrandRepository(db.DB)
	wishlistRepo := persistence.NewGormWishlistRepository(db.DB)
	analyticsRepo := persistence.NewGormAnalyticsRepository(db.DB)
	purchaseRepo := persistence.NewGormPurchaseRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Application services
	authService := identityapp.NewAuthService(userRepo, vendorRepo, txScope, jwtService, blacklist, phoneCipher, log)
	profileService := identityapp.NewProfileService(userRepo, phoneCipher, log)
	vendorProfileService := vendorapp.NewVendorProfileService(vendorRepo, phoneCipher, log)
	approvalService := vendorapp.NewApprovalService(vendorRepo, userRepo, log)
	dashboardService := vendorapp.NewDashboardService(vendorRepo, productRepo, analyticsRepo, purchaseRepo, metricsCache, log)
	productService := catalogapp.NewProductService(productRepo, vendorRepo, brandRepo, categoryRepo, analyticsRepo, metricsCache, log)
	categoryService := catalogapp.NewCategoryService(categoryRepo, log)
	brandService := catalogapp.NewBrandService(brandRepo, log)
	imageService := catalogapp.NewImageService(objectStorage, vendorRepo, productRepo, log)
	listingService := storefront.NewListingService(productRepo, vendorRepo, categoryRepo, brandRepo, analyticsRepo, log)
	wishlistService := storefront.NewWishlistService(wishlistRepo, productRepo, log)
	purchaseService := storefront.NewPurchaseService(purchaseRepo, productRepo, vendorRepo, log)
	orderLinkService := storefront.NewOrderLinkService(productRepo, vendorRepo, analyticsRepo, cfg.Site.BaseURL, log)
	analyticsService := engagementapp.NewAnalyticsService(analyticsRepo, productRepo, log)

	// HTTP layer
	authMiddleware := middleware.NewAuthMiddleware(jwtService, blacklist, log)
	engine := router.New(cfg, log, authMiddleware, router.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		Profile:    handler.NewProfileHandler(profileService, authService),
		Storefront: handler.NewStorefrontHandler(listingService, orderLinkService, categoryService, brandService, analyticsService, vendorProfileService),
		Wishlist:   handler.NewWishlistHandler(wishlistService),
		Purchase:   handler.NewPurchaseHandler(purchaseService),
		Vendor:     handler.NewVendorHandler(productService, imageService, dashboardService, vendorProfileService, purchaseService),
		Admin:      handler.NewAdminHandler(approvalService, categoryService),
		Health:     healthHandler(db),
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			logger.GetGinLogger(c).Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
