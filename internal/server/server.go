// Package server wires the HTTP layer: routing, middleware, auth, and
// request handlers.
package server

import (
	"context"
	"strconv"
	"strings"
	"time"

	"devconnect/internal/cache"
	"devconnect/internal/config"
	"devconnect/internal/database"
	"devconnect/internal/github"
	"devconnect/internal/middleware"
	"devconnect/internal/models"
	"devconnect/internal/repository"
	"devconnect/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/swagger"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	_ "devconnect/docs"
)

const (
	jwtIssuer   = "devconnect-api"
	jwtAudience = "devconnect-client"
	tokenTTL    = 7 * 24 * time.Hour
)

// Server holds the Fiber app and the service graph behind it.
type Server struct {
	app    *fiber.App
	config *config.Config
	db     *gorm.DB
	redis  *redis.Client

	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	postRepo    repository.PostRepository

	accounts *service.AccountService
	profiles *service.ProfileService
	posts    *service.PostService
	github   *github.Client

	promMiddleware *fiberprometheus.FiberPrometheus
}

// NewServer connects to the database and cache, then builds the server.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}

	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient()), nil
}

// NewServerWithDeps builds the server from pre-constructed dependencies.
// Tests use this with an in-memory database and a nil or fake cache.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "DevConnect API",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	})

	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	postRepo := repository.NewPostRepository(db)

	s := &Server{
		app:    app,
		config: cfg,
		db:     db,
		redis:  redisClient,

		userRepo:    userRepo,
		profileRepo: profileRepo,
		postRepo:    postRepo,

		accounts: service.NewAccountService(userRepo, db),
		profiles: service.NewProfileService(profileRepo),
		posts:    service.NewPostService(postRepo, userRepo),
		github:   github.NewClient(cfg.GithubToken),

		promMiddleware: middleware.InitMetrics("devconnect-api"),
	}

	s.SetupMiddleware()
	s.SetupRoutes()

	return s
}

// App exposes the underlying Fiber app, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// SetupMiddleware registers the global middleware chain. Order matters:
// request IDs must exist before the context middleware copies them, and the
// context middleware must run before anything that logs.
func (s *Server) SetupMiddleware() {
	s.app.Use(recover.New())
	s.app.Use(requestid.New())

	if s.config.TracingEnabled {
		s.app.Use(middleware.TracingMiddleware())
	}

	s.app.Use(middleware.ContextMiddleware())
	s.app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	s.app.Use(helmet.New())
	s.app.Use(middleware.StructuredLogger())

	s.app.Use(cors.New(cors.Config{
		AllowOrigins: s.config.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	// Coarse per-IP backstop; the endpoint-specific Redis limiters below are
	// the real policy.
	s.app.Use(limiter.New(limiter.Config{
		Max:        300,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/health") || strings.HasPrefix(c.Path(), "/metrics")
		},
	}))
}

// SetupRoutes registers all HTTP routes.
func (s *Server) SetupRoutes() {
	s.app.Get("/health", s.HealthCheck)
	s.app.Get("/health/live", s.LivenessCheck)
	s.app.Get("/health/ready", s.ReadinessCheck)
	s.app.Get("/monitor", monitor.New())
	s.promMiddleware.RegisterAt(s.app, "/metrics")

	api := s.app.Group("/api")
	api.Get("/swagger/*", swagger.HandlerDefault)

	users := api.Group("/users")
	users.Post("/", middleware.RateLimit(s.redis, 3, 10*time.Minute, "register"), s.Register)

	auth := api.Group("/auth")
	auth.Get("/", s.AuthRequired(), s.GetCurrentAccount)
	auth.Post("/", middleware.RateLimit(s.redis, 10, 5*time.Minute, "login"), s.Login)

	profile := api.Group("/profile")
	profile.Get("/", s.GetProfiles)
	profile.Get("/me", s.AuthRequired(), s.GetMyProfile)
	profile.Get("/user/:user_id", s.GetProfileByUserID)
	profile.Get("/github/:username", s.GetGithubRepos)
	profile.Post("/", s.AuthRequired(), s.UpsertProfile)
	profile.Put("/experience", s.AuthRequired(), s.AddExperience)
	profile.Delete("/experience/:exp_id", s.AuthRequired(), s.DeleteExperience)
	profile.Put("/education", s.AuthRequired(), s.AddEducation)
	profile.Delete("/education/:edu_id", s.AuthRequired(), s.DeleteEducation)
	profile.Delete("/", s.AuthRequired(), s.DeleteAccount)

	posts := api.Group("/posts")
	posts.Post("/", s.AuthRequired(), middleware.RateLimit(s.redis, 5, time.Minute, "create_post"), s.CreatePost)
	posts.Get("/", s.AuthRequired(), s.GetPosts)
}

// AuthRequired validates the Bearer token and stores the authenticated user
// id in both Fiber locals and the request context.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("No token, authorization denied"))
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(s.config.JWTSecret), nil
		},
			jwt.WithIssuer(jwtIssuer),
			jwt.WithAudience(jwtAudience),
			jwt.WithExpirationRequired(),
		)
		if err != nil || !token.Valid {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Token is not valid"))
		}

		sub, err := token.Claims.GetSubject()
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Token is not valid"))
		}
		userID, err := strconv.ParseUint(sub, 10, 64)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Token is not valid"))
		}

		c.Locals("userID", uint(userID))
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, uint(userID))
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// generateToken issues a signed HS256 token for the user.
func (s *Server) generateToken(userID uint) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		Issuer:    jwtIssuer,
		Audience:  jwt.ClaimStrings{jwtAudience},
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ID:        uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// HealthCheck godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// LivenessCheck reports that the process is running.
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "alive"})
}

// ReadinessCheck verifies the database and cache are reachable.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	checks := fiber.Map{"database": "ok", "cache": "ok"}
	healthy := true

	sqlDB, err := s.db.DB()
	if err != nil || sqlDB.PingContext(ctx) != nil {
		checks["database"] = "unreachable"
		healthy = false
	}

	if s.redis == nil {
		checks["cache"] = "disabled"
	} else if err := s.redis.Ping(ctx).Err(); err != nil {
		checks["cache"] = "unreachable"
	}

	status := fiber.StatusOK
	if !healthy {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(fiber.Map{"status": checks})
}

// Start begins serving on the configured port.
func (s *Server) Start() error {
	middleware.Logger.Info("starting server", "port", s.config.Port, "env", s.config.Env)
	return s.app.Listen(":" + s.config.Port)
}

// Shutdown gracefully drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}
