package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bitewise/meal-tracker/internal/api/handler"
	"github.com/bitewise/meal-tracker/internal/api/middleware"
	"github.com/bitewise/meal-tracker/internal/core/ports"
	"github.com/bitewise/meal-tracker/internal/core/service"
	"github.com/bitewise/meal-tracker/internal/infrastructure/config"
	mongodb "github.com/bitewise/meal-tracker/internal/infrastructure/db/mongo"
	redisdb "github.com/bitewise/meal-tracker/internal/infrastructure/db/redis"
	"github.com/bitewise/meal-tracker/internal/infrastructure/idp"
	"github.com/bitewise/meal-tracker/internal/infrastructure/ratelimit"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// rdb may be nil; rate-limit windows are then kept in process memory instead
// of the shared Redis store.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *goredis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log, cfg.IsDevelopment())

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("mealtracker"))

	// --- Dependencies ---
	mealRepo := mongodb.NewMealLogRepository(db)
	profileRepo := mongodb.NewProfileRepository(db)
	subRepo := mongodb.NewSubscriptionRepository(db)

	audit := service.NewAuditLogger(log, cfg.IsDevelopment())
	authValidator := service.NewAuthValidator(idp.NewJWTVerifier(cfg.JWTSecret), cfg.AdminSecret)
	mergeService := service.NewMergeService(mealRepo, profileRepo, subRepo, cfg.Staleness(), audit, log)

	mergeLimiter := newLimiter(rdb, "merge", cfg.Rate.MergeCapacity, cfg)
	readLimiter := newLimiter(rdb, "read", cfg.Rate.ReadCapacity, cfg)

	mergeHandler := handler.NewMergeHandler(authValidator, mergeService)
	mealHandler := handler.NewMealHandler(authValidator, mealRepo)

	// --- Routes ---
	e.POST("/v1/identity/merge", mergeHandler.Merge,
		middleware.RateLimit(mergeLimiter, "merge", log))
	e.GET("/v1/meals/:userId", mealHandler.List,
		middleware.RateLimit(readLimiter, "meals", log))

	// --- Health probes and metrics (no auth, no rate limit) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}

// newLimiter picks the shared Redis fixed-window limiter when Redis is
// configured, falling back to per-instance in-memory windows.
func newLimiter(rdb *goredis.Client, name string, capacity int, cfg *config.Config) ports.RateLimiter {
	if rdb != nil {
		return redisdb.NewRateLimiter(rdb, name, capacity, cfg.Rate.Window())
	}
	return ratelimit.NewLimiter(capacity, cfg.Rate.Window())
}
