// Package server contains the HTTP handlers and route wiring for the API.
package server

import (
	"context"
	"fmt"
	"time"

	"inkwell/internal/cache"
	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/identity"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config            *config.Config
	db                *gorm.DB
	redis             *redis.Client
	promMiddleware    *fiberprometheus.FiberPrometheus
	identityClient    *identity.Client
	articleRepo       repository.ArticleRepository
	tagRepo           repository.TagRepository
	profileRepo       repository.ProfileRepository
	articleService    *service.ArticleService
	feedService       *service.FeedService
	moderationService *service.ModerationService
	profileService    *service.ProfileService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	return NewServerWithDeps(cfg, db, redisClient)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Used by tests where DB and Redis are established by the harness.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	articleRepo := repository.NewArticleRepository(db)
	tagRepo := repository.NewTagRepository(db)
	profileRepo := repository.NewProfileRepository(db)

	prom := middleware.InitMetrics("inkwell-api")

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		identityClient: identity.NewClient(cfg.IdentityAPIURL, cfg.IdentityAPIKey),
		articleRepo:    articleRepo,
		tagRepo:        tagRepo,
		profileRepo:    profileRepo,
	}
	server.articleService = service.NewArticleService(articleRepo, tagRepo)
	server.feedService = service.NewFeedService(articleRepo)
	server.moderationService = service.NewModerationService(articleRepo)
	server.profileService = service.NewProfileService(profileRepo)

	return server, nil
}

// SetIdentityClient swaps the identity client. Used by tests with a stub server.
func (s *Server) SetIdentityClient(c *identity.Client) {
	s.identityClient = c
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New(requestid.Config{
		Generator: func() string { return uuid.NewString() },
	}))

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	// OpenTelemetry spans per request
	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS must run before middlewares that can short-circuit (e.g. limiter)
	// so browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// OAuth plumbing against the external users service
	api.Get("/oauth/google/redirect_url", s.GetOAuthRedirectURL)
	api.Post("/sessions", s.CreateSession)
	api.Get("/logout", s.Logout)

	// Public article routes. Specific paths before the :slug catch-all.
	api.Get("/articles/trending", s.GetTrendingArticles)
	api.Get("/articles", s.GetArticles)

	// Authoring routes
	api.Post("/articles", s.AuthRequired(), middleware.RateLimit(
		s.redis, 5, 10*time.Minute, "create_article"), s.CreateArticle)
	api.Get("/articles/:id/edit", s.AuthRequired(), s.GetArticleForEdit)
	api.Post("/articles/:id/like", s.AuthRequired(), middleware.RateLimit(
		s.redis, 30, time.Minute, "like_article"), s.ToggleLike)
	api.Put("/articles/:id", s.AuthRequired(), s.UpdateArticle)

	// Generic :slug route must come after every /articles/... path above.
	api.Get("/articles/:slug", s.GetArticleBySlug)

	// Profile routes
	api.Get("/users/me", s.AuthRequired(), s.GetMe)
	api.Put("/profile", s.AuthRequired(), s.UpdateProfile)

	// Admin routes
	admin := api.Group("/admin", s.AuthRequired(), s.AdminRequired())
	admin.Get("/articles", s.GetModerationQueue)
	admin.Put("/articles/:id/status", s.SetArticleStatus)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		// Cache is optional; the service runs degraded without it.
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// AuthRequired resolves the session cookie against the identity service and
// stores the external user in locals. Requests without a valid session get 401.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(identity.SessionCookieName)
		if token == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authentication required"))
		}

		user, err := s.identityClient.GetSessionUser(c.UserContext(), token)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid or expired session"))
		}

		c.Locals("userID", user.ID)
		c.Locals("identityUser", user)
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, user.ID)
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// AdminRequired rejects callers whose profile is missing or not admin with 403.
// Must be placed after AuthRequired so that userID is available in locals.
func (s *Server) AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := c.Locals("userID").(string)

		admin, err := s.profileService.IsAdmin(c.UserContext(), userID)
		if err != nil || !admin {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError("Admin access required"))
		}
		return c.Next()
	}
}

func (s *Server) currentUser(c *fiber.Ctx) *identity.User {
	user, _ := c.Locals("identityUser").(*identity.User)
	return user
}
