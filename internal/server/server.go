// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"time"

	"devfolio/internal/cache"
	"devfolio/internal/config"
	"devfolio/internal/database"
	"devfolio/internal/middleware"
	"devfolio/internal/repository"
	"devfolio/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
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
	promMiddleware *fiberprometheus.FiberPrometheus

	userRepo    repository.UserRepository
	projectRepo repository.ProjectRepository
	forumRepo   repository.ForumRepository
	commentRepo repository.CommentRepository
	likeRepo    repository.LikeRepository

	authService    *service.AuthService
	projectService *service.ProjectService
	forumService   *service.ForumService
	commentService *service.CommentService
	searchService  *service.SearchService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient()), nil
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis itself.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	middleware.InitMiddleware(cfg)

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	forumRepo := repository.NewForumRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("devfolio-api"),
		userRepo:       userRepo,
		projectRepo:    projectRepo,
		forumRepo:      forumRepo,
		commentRepo:    commentRepo,
		likeRepo:       likeRepo,
	}
	server.authService = service.NewAuthService(userRepo)
	server.projectService = service.NewProjectService(projectRepo, likeRepo)
	server.forumService = service.NewForumService(forumRepo, likeRepo)
	server.commentService = service.NewCommentService(commentRepo, projectRepo, forumRepo)
	server.searchService = service.NewSearchService(projectRepo, forumRepo)

	return server
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context middleware to propagate request ID and user ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
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

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", s.Register)
	auth.Post("/login", s.Login)
	auth.Post("/logout", middleware.AuthRequired, s.Logout)
	auth.Get("/me", middleware.AuthRequired, s.Me)

	// Project routes
	projects := api.Group("/projects")
	projects.Get("/", middleware.OptionalAuth, s.ListProjects)
	projects.Get("/:id", middleware.OptionalAuth, s.GetProject)
	projects.Post("/", middleware.AuthRequired, s.CreateProject)
	projects.Put("/:id", middleware.AuthRequired, s.UpdateProject)
	projects.Delete("/:id", middleware.AuthRequired, s.DeleteProject)
	projects.Post("/:id/like", middleware.AuthRequired, s.LikeProject)

	// Forum routes
	forums := api.Group("/forums")
	forums.Get("/", middleware.OptionalAuth, s.ListForums)
	forums.Get("/:id", middleware.OptionalAuth, s.GetForum)
	forums.Post("/", middleware.AuthRequired, s.CreateForum)
	forums.Put("/:id", middleware.AuthRequired, s.UpdateForum)
	forums.Delete("/:id", middleware.AuthRequired, s.DeleteForum)
	forums.Post("/:id/like", middleware.AuthRequired, s.LikeForum)

	// Comment routes
	comments := api.Group("/comments")
	comments.Get("/", s.ListComments)
	comments.Post("/", middleware.AuthRequired, s.CreateComment)
	comments.Put("/:id", middleware.AuthRequired, s.UpdateComment)
	comments.Delete("/:id", middleware.AuthRequired, s.DeleteComment)

	// Search and tags
	api.Get("/tags", s.ListTags)
	api.Get("/search", middleware.OptionalAuth, s.Search)
}

// LivenessCheck reports that the process is up.
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// ReadinessCheck reports whether the database (and redis, when configured)
// are reachable.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	status := fiber.Map{"status": "ok", "database": "ok"}

	sqlDB, err := s.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		status["status"] = "degraded"
		status["database"] = "unreachable"
		return c.Status(fiber.StatusServiceUnavailable).JSON(status)
	}

	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			status["cache"] = "unreachable"
		} else {
			status["cache"] = "ok"
		}
	}

	return c.JSON(status)
}

// Shutdown releases server-held resources.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			return err
		}
	}
	if s.db != nil {
		sqlDB, err := s.db.DB()
		if err == nil {
			return sqlDB.Close()
		}
	}
	return nil
}
