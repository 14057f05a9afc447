package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/eventsphere/eventsphere-api/internal/api/handler"
	"github.com/eventsphere/eventsphere-api/internal/api/middleware"
	"github.com/eventsphere/eventsphere-api/internal/core/domain"
	"github.com/eventsphere/eventsphere-api/internal/core/ports"
	"github.com/eventsphere/eventsphere-api/internal/core/service"
	"github.com/eventsphere/eventsphere-api/internal/infrastructure/config"
	mongodb "github.com/eventsphere/eventsphere-api/internal/infrastructure/db/mongo"
	redisdb "github.com/eventsphere/eventsphere-api/internal/infrastructure/db/redis"
	"github.com/eventsphere/eventsphere-api/internal/infrastructure/storage"
	"github.com/eventsphere/eventsphere-api/internal/infrastructure/ticketmaster"
)

// credentialRateLimit caps login and signup attempts per client IP per second.
const credentialRateLimit = 5

// NewRouter builds the Echo instance with all routes registered.
func NewRouter(
	cfg *config.Config,
	db *mongo.Database,
	rdb *redis.Client,
	avatars *storage.AvatarStore,
	sink ports.AuditSink,
	recorder ports.AuditRecorder,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("eventsphere"))

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	bookmarkRepo := mongodb.NewBookmarkRepository(db)
	revocation := redisdb.NewRevocationList(rdb)

	provider := ticketmaster.NewClient(ticketmaster.Config{
		BaseURL: cfg.Ticketmaster.BaseURL,
		APIKey:  cfg.Ticketmaster.APIKey,
	}, log)

	twoFactorService := service.NewTwoFactorService(userRepo, "EventSphere", log)
	authService := service.NewAuthService(userRepo, twoFactorService, revocation, cfg.JWTSecret, cfg.TokenTTL, log)
	userService := service.NewUserService(userRepo, bookmarkRepo, log)
	bookmarkService := service.NewBookmarkService(bookmarkRepo, log)
	discoveryService := service.NewDiscoveryService(provider, cfg.Ticketmaster.CountryCode, log)

	authHandler := handler.NewAuthHandler(
		authService, twoFactorService, userService, avatars, sink,
		cfg.Production(), cfg.TokenTTL,
	)
	bookmarkHandler := handler.NewBookmarkHandler(bookmarkService)
	eventHandler := handler.NewEventHandler(discoveryService)
	adminHandler := handler.NewAdminHandler(userService, bookmarkService, discoveryService, recorder, sink)

	authMiddleware := middleware.Auth(authService, revocation)
	adminOnly := middleware.RBAC(domain.RoleAdmin)
	credentialLimiter := echomiddleware.RateLimiter(
		echomiddleware.NewRateLimiterMemoryStore(credentialRateLimit))

	// --- Public routes ---
	e.POST("/api/auth/signup", authHandler.Signup, credentialLimiter)
	e.POST("/api/auth/login", authHandler.Login, credentialLimiter)
	e.GET("/trending-events", eventHandler.Trending)
	e.GET("/api/events", eventHandler.Upcoming)

	// --- Authenticated routes ---
	auth := e.Group("/api/auth", authMiddleware)
	auth.POST("/logout", authHandler.Logout)
	auth.PUT("/update-password", authHandler.UpdatePassword)
	auth.GET("/profile", authHandler.Profile)
	auth.PUT("/profile", authHandler.UpdateProfile)
	auth.GET("/2fa/setup", authHandler.TwoFactorSetup)
	auth.POST("/2fa/verify", authHandler.TwoFactorVerify)
	auth.POST("/2fa/disable", authHandler.TwoFactorDisable)

	e.GET("/search-events", eventHandler.Search, authMiddleware)

	events := e.Group("/api/events", authMiddleware)
	events.GET("/details/:id", eventHandler.Details)
	events.POST("/bookmark", bookmarkHandler.Save)
	events.GET("/bookmarks", bookmarkHandler.List)
	events.GET("/saved/search", bookmarkHandler.Search)
	events.DELETE("/bookmark/:id", bookmarkHandler.Remove)

	// --- Admin routes ---
	admin := e.Group("/api/admin", authMiddleware, adminOnly)
	admin.GET("/users", adminHandler.ListUsers)
	admin.PUT("/users/:id", adminHandler.UpdateUser)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)
	admin.GET("/all-events", adminHandler.AllEvents)
	admin.GET("/events-count", adminHandler.EventsCount)
	admin.GET("/trending-count", adminHandler.TrendingCount)
	admin.DELETE("/events/:id", adminHandler.DeleteEvent)
	admin.GET("/saved-events", adminHandler.ListSavedEvents)
	admin.DELETE("/saved-events/:id", adminHandler.DeleteSavedEvent)
	admin.GET("/audit", adminHandler.Audit)

	// --- Static avatars ---
	e.Static(storage.URLPrefix, avatars.Dir())

	// --- Observability & health ---
	e.GET("/metrics", echoprometheus.NewHandler())

	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	return e
}
