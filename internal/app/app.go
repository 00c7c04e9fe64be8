// Package app wires configuration, storage, services and handlers into a
// Fiber application.
package app

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"wishlist/internal/config"
	"wishlist/internal/handlers"
	"wishlist/internal/middleware"
	"wishlist/internal/observability"
	"wishlist/internal/repositories"
	"wishlist/internal/security"
	"wishlist/internal/services"
)

const (
	serviceName = "wishlist-api"
	version     = "1.0.0"
)

// Options holds the collaborators NewApp does not build itself.
type Options struct {
	Config *config.Config
	DB     *gorm.DB
	// Publisher may be nil; price events are then not published.
	Publisher services.PriceEventPublisher
	Logger    *slog.Logger
	// Now overrides the token clock in tests.
	Now func() time.Time
}

// NewApp builds the Fiber application with every route registered.
func NewApp(opts Options) (*fiber.App, error) {
	cfg := opts.Config
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	tokens, err := security.NewTokenService(security.TokenConfig{
		Secret: cfg.SecretKey,
		TTL:    cfg.AccessTokenTTL,
		Now:    opts.Now,
	})
	if err != nil {
		return nil, err
	}
	hasher := security.NewPasswordHasher(cfg.BcryptCost)

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(opts.DB)
	collectionRepo := repositories.NewGORMCollectionRepository(opts.DB)
	itemRepo := repositories.NewGORMItemRepository(opts.DB)
	historyRepo := repositories.NewGORMPriceHistoryRepository(opts.DB)

	// --- Services ---
	authService := services.NewAuthService(userRepo, hasher, tokens)
	collectionService := services.NewCollectionService(collectionRepo, itemRepo)
	itemService := services.NewItemService(itemRepo, historyRepo, opts.Publisher)

	// --- Handlers ---
	validate := handlers.NewValidator()
	authHandler := handlers.NewAuthHandler(authService, validate)
	collectionHandler := handlers.NewCollectionHandler(collectionService, validate)
	wishlistHandler := handlers.NewWishlistHandler(itemService, validate)

	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{
		AppName:      "Wishlist API",
		ErrorHandler: handlers.ErrorHandler(logger),
	})

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.CORSOrigins}))
	app.Use(metrics.Middleware())

	// --- Public routes ---
	app.Get("/", middleware.AuthOptional(authService), func(c *fiber.Ctx) error {
		resp := fiber.Map{
			"message":       "Wishlist API is running",
			"version":       version,
			"authenticated": false,
		}
		if user := middleware.CurrentUser(c); user != nil {
			resp["authenticated"] = true
			resp["email"] = user.Email
		}
		return c.JSON(resp)
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		status, code := "healthy", fiber.StatusOK
		if sqlDB, err := opts.DB.DB(); err != nil || sqlDB.PingContext(c.UserContext()) != nil {
			status, code = "unhealthy", fiber.StatusServiceUnavailable
		}
		return c.Status(code).JSON(fiber.Map{
			"status":  status,
			"service": serviceName,
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})
	app.Get("/metrics", metrics.Handler())

	// --- API routes ---
	authRequired := middleware.AuthRequired(authService)
	authHandler.RegisterRoutes(app, authRequired)

	collectionHandler.RegisterRoutes(app, authRequired)
	wishlistHandler.RegisterRoutes(app, authRequired)

	return app, nil
}
