package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/biarkamimasak/backend/config"
	"github.com/biarkamimasak/backend/internal/api"
	"github.com/biarkamimasak/backend/internal/middleware"
	"github.com/biarkamimasak/backend/internal/service"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	cfg    *config.Config
}

// New creates a server wired with routes, middleware and the completion
// service dependency.
func New(cfg *config.Config, completion service.CompletionService) *Server {
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	router.Use(middleware.RequestID())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Content-Type", "Accept", "Origin", middleware.APIKeyHeader, middleware.RequestIDHeader},
		MaxAge:          12 * time.Hour,
	}))

	auth := middleware.APIKeyAuth(cfg.RecipeAPIKey)

	router.GET("/", api.Welcome)
	router.GET("/health", auth, api.HealthCheck)

	v1 := router.Group("/v1")
	v1.Use(auth)
	if limiter := newRateLimiter(cfg); limiter != nil {
		v1.Use(limiter.RateLimitMiddleware())
		v1.GET("/rate-limit", func(c *gin.Context) {
			remaining, resetTime, err := limiter.GetRemainingRequests(c.Request.Context(), c.ClientIP())
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check rate limit"})
				return
			}
			c.JSON(http.StatusOK, gin.H{
				"remaining":  remaining,
				"reset_time": resetTime.Unix(),
				"window":     "1h",
			})
		})
	}
	api.NewRecipeHandler(completion).RegisterRoutes(v1)

	return &Server{router: router, cfg: cfg}
}

// newRateLimiter builds the Redis-backed limiter when Redis is configured.
// The API runs without rate limiting otherwise.
func newRateLimiter(cfg *config.Config) *middleware.RateLimiter {
	addr := cfg.RedisAddr()
	if addr == "" {
		log.Println("REDIS_HOST not set, rate limiting disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	return middleware.NewGenerationRateLimiter(client)
}

// Start starts the server and blocks until it stops.
func (s *Server) Start() error {
	s.http = &http.Server{
		Addr:    s.cfg.ServerHost + ":" + s.cfg.ServerPort,
		Handler: s.router,
	}
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http != nil {
		return s.http.Shutdown(ctx)
	}
	return nil
}

// Router exposes the underlying engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}
