package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/gadgetlab/store-api/docs"
	"github.com/gadgetlab/store-api/internal/api/handler"
	"github.com/gadgetlab/store-api/internal/api/middleware"
	"github.com/gadgetlab/store-api/internal/core/domain"
	"github.com/gadgetlab/store-api/internal/core/ports"
	"github.com/gadgetlab/store-api/internal/core/service"
	"github.com/gadgetlab/store-api/internal/infrastructure/config"
	mongodb "github.com/gadgetlab/store-api/internal/infrastructure/db/mongo"
	redisdb "github.com/gadgetlab/store-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(
	cfg *config.Config,
	db *mongo.Database,
	rdb *redis.Client,
	gateway ports.PaymentGateway,
	mailQueue ports.MailQueue,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{cfg.ClientURL},
	}))
	e.Use(echoprometheus.NewMiddleware("store"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	productRepo := mongodb.NewProductRepository(db)
	transactionRepo := mongodb.NewTransactionRepository(db)
	guard := redisdb.NewPurchaseGuard(rdb)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, 24*time.Hour)
	catalogService := service.NewCatalogService(productRepo, log)
	checkoutService := service.NewCheckoutService(productRepo, gateway, log)
	purchaseService := service.NewPurchaseService(transactionRepo, productRepo, userRepo, mailQueue, guard, log)

	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(catalogService)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService)
	transactionHandler := handler.NewTransactionHandler(purchaseService)

	auth := middleware.Auth(cfg.JWTSecret)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Account routes ---
	e.POST("/signup", authHandler.Signup)
	e.POST("/login", authHandler.Login)
	e.GET("/profile", authHandler.Profile, auth)
	e.PUT("/user/:id", authHandler.Update, auth)
	e.DELETE("/user/:id", authHandler.Delete, auth)

	// --- Catalog routes ---
	e.GET("/product", productHandler.List)
	e.GET("/product/:id", productHandler.Get)
	e.POST("/product", productHandler.Create, auth, adminOnly)
	e.PUT("/product/:id", productHandler.Update, auth, adminOnly)
	e.DELETE("/product/:id", productHandler.Delete, auth, adminOnly)

	// --- Purchase routes ---
	e.POST("/create-checkout-session", checkoutHandler.Create, auth)
	e.POST("/transaction", transactionHandler.Create, auth)
	e.GET("/transaction/:id", transactionHandler.Get)

	// --- Operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
