package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/runmarket/backend/internal/infrastructure/config"
	"github.com/runmarket/backend/internal/infrastructure/logger"
	"github.com/runmarket/backend/internal/interfaces/http/handler"
	"github.com/runmarket/backend/internal/interfaces/http/middleware"
)

// Handlers collects every HTTP handler the router mounts.
type Handlers struct {
	Auth       *handler.AuthHandler
	Profile    *handler.ProfileHandler
	Storefront *handler.StorefrontHandler
	Wishlist   *handler.WishlistHandler
	Purchase   *handler.PurchaseHandler
	Vendor     *handler.VendorHandler
	Admin      *handler.AdminHandler
	Health     gin.HandlerFunc
}

// New builds the gin engine with the full middleware stack and all route
// groups mounted under /api/v1.
func New(cfg *config.Config, log *zap.Logger, auth *middleware.AuthMiddleware, h Handlers) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware order: request ID first so every later stage can log it,
	// recovery before the request logger so panics still produce a line.
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(limiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	engine.GET("/health", h.Health)

	api := engine.Group("/api/v1")

	// Auth endpoints carry a stricter limiter: credential guessing gets
	// throttled independently of general traffic.
	authGroup := api.Group("/auth")
	if cfg.HTTP.AuthRateLimitEnabled {
		authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		authGroup.Use(middleware.RateLimit(authLimiter))
	}
	authGroup.POST("/signup", h.Auth.SignUpCustomer)
	authGroup.POST("/vendor-signup", h.Auth.SignUpVendor)
	authGroup.POST("/signin", h.Auth.SignIn)
	authGroup.POST("/refresh", h.Auth.RefreshToken)
	authGroup.POST("/signout", auth.RequireAuth(), h.Auth.SignOut)
	authGroup.POST("/verify-email", h.Auth.VerifyEmail)
	authGroup.GET("/me", auth.RequireAuth(), h.Auth.Me)

	// Public catalog. Optional auth lets signed-in browsing attribute
	// view events to the viewer.
	catalog := api.Group("/catalog", auth.OptionalAuth())
	catalog.GET("/products", h.Storefront.ListProducts)
	catalog.GET("/products/:slug", h.Storefront.GetProduct)
	catalog.GET("/categories", h.Storefront.ListCategories)
	catalog.GET("/categories/:slug/products", h.Storefront.ListCategoryProducts)
	catalog.GET("/brands", h.Storefront.ListBrands)
	catalog.GET("/brands/:slug/products", h.Storefront.ListBrandProducts)

	api.GET("/vendors/:slug", auth.OptionalAuth(), h.Storefront.GetVendorStorefront)
	api.POST("/engagement/events", auth.OptionalAuth(), h.Storefront.RecordEvent)
	api.GET("/storefront/products/:id/order-link", auth.OptionalAuth(), h.Storefront.GetOrderLink)

	// Customer portal.
	wishlist := api.Group("/wishlist", auth.RequireAuth())
	wishlist.GET("", h.Wishlist.GetWishlist)
	wishlist.POST("/toggle", h.Wishlist.Toggle)
	wishlist.POST("/merge", h.Wishlist.Merge)

	purchases := api.Group("/purchases", auth.RequireAuth())
	purchases.POST("", h.Purchase.RecordPurchase)
	purchases.GET("", h.Purchase.ListPurchases)

	profile := api.Group("/profile", auth.RequireAuth())
	profile.GET("", h.Profile.GetProfile)
	profile.PUT("", h.Profile.UpdateProfile)
	profile.PUT("/password", h.Profile.ChangePassword)

	// Vendor portal. Approval checks for mutations live in the services;
	// the role gate here only keeps customers and admins out.
	vendor := api.Group("/vendor", auth.RequireAuth(), auth.RequireRole("vendor"))
	vendor.GET("/dashboard", h.Vendor.GetDashboard)
	vendor.PUT("/profile", h.Vendor.UpdateProfile)
	vendor.POST("/images", h.Vendor.RequestVendorImageUpload)
	vendor.GET("/products", h.Vendor.ListProducts)
	vendor.POST("/products", h.Vendor.CreateProduct)
	vendor.PUT("/products/:id", h.Vendor.UpdateProduct)
	vendor.DELETE("/products/:id", h.Vendor.DeleteProduct)
	vendor.PUT("/products/:id/stock", h.Vendor.UpdateStock)
	vendor.POST("/products/:id/mark-sold", h.Vendor.MarkSold)
	vendor.POST("/products/:id/archive", h.Vendor.Archive)
	vendor.POST("/products/:id/unarchive", h.Vendor.Unarchive)
	vendor.POST("/products/:id/activate", h.Vendor.Activate)
	vendor.POST("/products/:id/deactivate", h.Vendor.Deactivate)
	vendor.GET("/products/:id/metrics", h.Vendor.GetProductMetrics)
	vendor.POST("/products/:id/images", h.Vendor.RequestProductImageUpload)
	vendor.GET("/purchases", h.Vendor.ListSales)

	// Admin portal.
	admin := api.Group("/admin", auth.RequireAuth(), auth.RequireRole("admin"))
	admin.GET("/vendors", h.Admin.ListVendors)
	admin.POST("/vendors/:id/approve", h.Admin.ApproveVendor)
	admin.POST("/vendors/:id/suspend", h.Admin.SuspendVendor)
	admin.POST("/vendors/:id/unsuspend", h.Admin.UnsuspendVendor)
	admin.GET("/metrics", h.Admin.GetPlatformMetrics)
	admin.POST("/categories", h.Admin.CreateCategory)
	admin.PUT("/categories/:id", h.Admin.RenameCategory)
	admin.DELETE("/categories/:id", h.Admin.DeleteCategory)

	return engine
}
