// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"time"

	"quill/internal/cache"
	"quill/internal/config"
	"quill/internal/database"
	"quill/internal/middleware"
	"quill/internal/models"
	"quill/internal/notifications"
	"quill/internal/repository"
	"quill/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	rateLimiter    *middleware.RateLimiter
	shutdownCtx    context.Context
	shutdownFn     context.CancelFunc

	userRepo    repository.UserRepository
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	groupRepo   repository.GroupRepository
	followRepo  repository.FollowRepository

	feedService    *service.FeedService
	postService    *service.PostService
	commentService *service.CommentService
	groupService   *service.GroupService
	followService  *service.FollowService
	userService    *service.UserService

	notifier *notifications.Notifier
	hub      *notifications.Hub
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.Connect(cfg.RedisURL, time.Duration(cfg.FeedCacheTTLSeconds)*time.Second)

	return NewServerWithDeps(cfg, db, cache.GetClient())
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Tests use this to plug in mocked database and Redis handles.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("quill-api"),
		rateLimiter:    middleware.NewRateLimiter(redisClient, cfg.Env),
		userRepo:       repository.NewUserRepository(db),
		postRepo:       repository.NewPostRepository(db),
		commentRepo:    repository.NewCommentRepository(db),
		groupRepo:      repository.NewGroupRepository(db),
		followRepo:     repository.NewFollowRepository(db),
	}

	server.feedService = service.NewFeedService(server.postRepo, server.groupRepo, server.userRepo, server.followRepo)
	server.postService = service.NewPostService(server.postRepo, server.groupRepo)
	server.commentService = service.NewCommentService(server.commentRepo, server.postRepo)
	server.groupService = service.NewGroupService(server.groupRepo)
	server.followService = service.NewFollowService(server.followRepo, server.userRepo)
	server.userService = service.NewUserService(server.userRepo, server.postRepo, server.followRepo)

	if redisClient != nil {
		server.notifier = notifications.NewNotifier(redisClient)
		server.hub = notifications.NewHub()
	}

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	// CORS runs before middlewares that can short-circuit (e.g. limiter)
	// so browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, Upgrade, Connection, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Global rate limiting per IP
	app.Use(limiter.New(limiter.Config{
		Max:        200,
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

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/signup", s.rateLimiter.Limit(3, 10*time.Minute, "signup"), s.Signup)
	auth.Post("/login", s.rateLimiter.Limit(10, 5*time.Minute, "login"), s.Login)

	// Feed routes. All are publicly readable except the followed feed,
	// which needs a requester to scope by.
	feed := api.Group("/feed", middleware.OptionalAuth(s.config))
	feed.Get("/", s.GetHomeFeed)
	feed.Get("/following", middleware.AuthRequired(s.config), s.GetFollowingFeed)
	feed.Get("/groups/:slug", s.GetGroupFeed)
	feed.Get("/users/:username", s.GetAuthorFeed)

	// Group routes
	groups := api.Group("/groups")
	groups.Get("/", s.GetGroups)
	groups.Get("/:slug", s.GetGroupBySlug)
	groups.Post("/", middleware.AuthRequired(s.config), s.CreateGroup)
	groups.Delete("/:slug", middleware.AuthRequired(s.config), s.DeleteGroup)

	// Public post routes
	posts := api.Group("/posts")
	posts.Get("/:id/comments", s.GetComments)
	posts.Get("/:id", s.GetPost)

	// Protected post routes
	protectedPosts := api.Group("/posts", middleware.AuthRequired(s.config))
	protectedPosts.Post("/", s.rateLimiter.Limit(10, time.Minute, "create_post"), s.CreatePost)
	protectedPosts.Post("/:id/comments", s.rateLimiter.Limit(20, time.Minute, "create_comment"), s.CreateComment)
	protectedPosts.Put("/:id", s.UpdatePost)
	protectedPosts.Delete("/:id", s.DeletePost)

	// User and follow routes
	users := api.Group("/users")
	users.Get("/", s.GetAllUsers)
	users.Get("/me/following", middleware.AuthRequired(s.config), s.GetFollowedAuthors)
	users.Get("/:username", middleware.OptionalAuth(s.config), s.GetUserProfile)
	users.Post("/:username/follow", middleware.AuthRequired(s.config), s.rateLimiter.Limit(30, time.Minute, "follow"), s.FollowUser)
	users.Delete("/:username/follow", middleware.AuthRequired(s.config), s.UnfollowUser)

	// Websocket endpoint
	api.Get("/ws", middleware.AuthRequired(s.config), s.WebsocketHandler())
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
		// Degraded but serving: feeds fall back to the database.
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

// Start starts the server
func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.shutdownCtx = ctx
	s.shutdownFn = cancel

	app := fiber.New(fiber.Config{
		AppName: "Quill API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			middleware.Logger.ErrorContext(c.UserContext(), "unhandled error", "error", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	if s.notifier != nil && s.hub != nil {
		go func() {
			if err := s.hub.StartWiring(s.shutdownCtx, s.notifier); err != nil {
				middleware.Logger.Error("failed to start notification wiring", "error", err)
			}
		}()
	}

	middleware.Logger.Info("server starting", "port", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.shutdownFn != nil {
		s.shutdownFn()
	}

	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", "error", err)
		}
	}

	if s.hub != nil {
		if err := s.hub.Shutdown(ctx); err != nil {
			middleware.Logger.Error("error shutting down websocket hub", "error", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			middleware.Logger.Error("error closing sql DB", "error", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			middleware.Logger.Error("error closing redis", "error", rerr)
		}
	}

	middleware.Logger.Info("server shutdown complete")
	return nil
}
