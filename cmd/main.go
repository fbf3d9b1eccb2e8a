package main

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"dukaan/internal/auth"
	"dukaan/internal/caching"
	"dukaan/internal/config"
	"dukaan/internal/database"
	"dukaan/internal/handlers"
	"dukaan/internal/jobs"
	"dukaan/internal/logger"
	"dukaan/internal/metrics"
	"dukaan/internal/middleware"
	"dukaan/internal/repositories"
	"dukaan/internal/services"
	"dukaan/internal/verification"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel, cfg.Server.Env)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zl.Sync()

	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		zl.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		zl.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	cacheSvc := caching.NewRedisCacheService(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)

	minioSvc, err := services.NewMinioService(cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey, cfg.Minio.UseSSL)
	if err != nil {
		zl.Fatal("failed to initialize object storage", zap.Error(err))
	}
	if err := minioSvc.EnsureBucketExists(context.Background(), cfg.Minio.Bucket); err != nil {
		zl.Warn("could not ensure image bucket exists", zap.Error(err))
	}

	provider := auth.NewClient(cfg.Auth.BaseURL, cfg.Auth.ServiceKey, zl)
	verifier, err := auth.NewTokenVerifier(cfg.Auth.JWTSecret, cfg.Auth.JWKSURL)
	if err != nil {
		zl.Fatal("failed to build token verifier", zap.Error(err))
	}

	// Repositories
	shopRepo := repositories.NewShopRepo(pool)
	categoryRepo := repositories.NewCategoryRepo(pool)
	productRepo := repositories.NewProductRepo(pool)
	customerRepo := repositories.NewCustomerRepo(pool)
	orderRepo := repositories.NewOrderRepo(pool)
	superAdminRepo := repositories.NewSuperAdminRepo(pool)

	// Services
	storefrontSvc := services.NewStorefrontService(
		shopRepo, categoryRepo, productRepo, cacheSvc,
		cfg.Storefront.CatalogTTL, cfg.Storefront.DefaultWhatsAppNumber, zl)
	gate := verification.NewGate(cacheSvc, provider, cfg.Storefront.VerificationTTL, zl)
	orderSvc := services.NewOrderService(orderRepo, customerRepo, storefrontSvc, gate, zl)
	shopSvc := services.NewShopService(shopRepo, storefrontSvc)
	catalogSvc := services.NewCatalogService(categoryRepo, productRepo, shopRepo, storefrontSvc, minioSvc, cfg.Minio.Bucket)
	provisioningSvc := services.NewProvisioningService(shopRepo, superAdminRepo, provider, storefrontSvc, zl)

	// Handlers
	publicHandlers := handlers.NewPublicHandlers(storefrontSvc, orderSvc, gate)
	adminHandlers := handlers.NewAdminHandlers(shopSvc, catalogSvc, orderSvc)
	superAdminHandlers := handlers.NewSuperAdminHandlers(provisioningSvc)
	authHandlers := handlers.NewAuthHandlers(provider)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc)

	// Background jobs
	scheduler, err := jobs.NewScheduler(shopRepo, cacheSvc, zl)
	if err != nil {
		zl.Fatal("failed to build job scheduler", zap.Error(err))
	}
	scheduler.Start()
	defer scheduler.Stop()

	e := echo.New()
	e.HideBanner = true

	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Pre(echoMiddleware.RemoveTrailingSlash())
	e.Use(metrics.Middleware())

	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadyCheck)
	e.GET("/metrics", metrics.Handler())

	api := e.Group("/api")

	// Public storefront routes, tenant-resolved per request host.
	public := api.Group("")
	public.Use(middleware.TenantMiddleware(storefrontSvc))
	public.GET("/storefront", publicHandlers.GetStorefront)
	public.GET("/catalog", publicHandlers.GetCatalog)
	public.GET("/customers/lookup", publicHandlers.LookupCustomer)
	public.POST("/otp/send", publicHandlers.SendOTP)
	public.POST("/otp/verify", publicHandlers.VerifyOTP)
	public.POST("/orders", publicHandlers.PlaceOrder)

	api.POST("/auth/login", authHandlers.Login)

	// Owner dashboard routes.
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(verifier))
	admin.GET("/shop", adminHandlers.GetShop)
	admin.PUT("/shop", adminHandlers.SaveShop)
	admin.GET("/stats", adminHandlers.GetStats)
	admin.GET("/categories", adminHandlers.ListCategories)
	admin.POST("/categories", adminHandlers.CreateCategory)
	admin.DELETE("/categories/:id", adminHandlers.DeleteCategory)
	admin.GET("/products", adminHandlers.ListProducts)
	admin.POST("/products", adminHandlers.CreateProduct)
	admin.PUT("/products/:id", adminHandlers.UpdateProduct)
	admin.DELETE("/products/:id", adminHandlers.DeleteProduct)
	admin.POST("/products/:id/image", adminHandlers.UploadProductImage)
	admin.GET("/orders", adminHandlers.ListOrders)
	admin.GET("/orders/:id/items", adminHandlers.ListOrderItems)
	admin.PUT("/orders/:id/status", adminHandlers.UpdateOrderStatus)

	// Tenant registry, restricted to the super-admin allow-list.
	superAdmin := api.Group("/super-admin")
	superAdmin.Use(middleware.AuthMiddleware(verifier))
	superAdmin.Use(middleware.SuperAdminMiddleware(provisioningSvc))
	superAdmin.POST("/create-shop", superAdminHandlers.CreateShop)
	superAdmin.GET("/shops", superAdminHandlers.ListShops)
	superAdmin.POST("/toggle-shop", superAdminHandlers.ToggleShop)
	superAdmin.POST("/update-shop", superAdminHandlers.UpdateShop)

	zl.Info("server starting", zap.String("port", cfg.Server.Port), zap.String("env", cfg.Server.Env))
	e.Logger.Fatal(e.Start(":" + cfg.Server.Port))
}
