package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/guttosm/smartpack-service/internal/metrics"
	"github.com/guttosm/smartpack-service/internal/middleware"
	"github.com/guttosm/smartpack-service/internal/service"
)

const loggingServiceKey = "logging_service"

var (
	devOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173"}

	corsRequestHeaders = []string{
		"Origin", "Content-Type", "Content-Length", "Accept", "Accept-Encoding", "Accept-Language",
		"Authorization", "Cache-Control", "X-Requested-With",
		middleware.APIKeyHeader, middleware.IdempotencyKeyHeader, middleware.RequestIDHeader,
	}
	corsExposedHeaders = []string{
		middleware.RequestIDHeader, "Content-Disposition", "Retry-After",
		"X-RateLimit-Limit", "X-RateLimit-Remaining", middleware.IdempotencyReplayedHeader,
	}
)

// RouterConfig holds router configuration options.
type RouterConfig struct {
	RateLimit  int
	RateWindow time.Duration
	// RateLimiter limits every request per client IP. Built from RateLimit when nil.
	RateLimiter *middleware.ShardedRateLimiter
	// UserRateLimiter additionally limits report routes per signed-in user.
	UserRateLimiter *middleware.ShardedRateLimiter

	EnableAuth bool
	APIKeys    map[string]bool

	EnableIdempotency bool
	IdempotencyTTL    time.Duration
	RequestTimeout    time.Duration
	CORSOrigins       []string

	// Swagger UI sits behind basic auth when both are set.
	SwaggerUser string
	SwaggerPass string

	LoggingService   service.LoggingService
	IdentityVerifier service.IdentityVerifier
	Reports          service.ReportManager
	Feedback         service.FeedbackRecorder
}

// DefaultRouterConfig returns the default router configuration.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		RateLimit:      100,
		RateWindow:     time.Minute,
		RequestTimeout: middleware.DefaultRequestTimeout,
	}
}

// NewRouter builds the gin engine: infrastructure routes at the root and the
// SmartPack API under /api.
func NewRouter(handler *Handler, healthHandler *HealthHandler, cfg RouterConfig) *gin.Engine {
	if cfg.RateLimiter == nil && cfg.RateLimit > 0 {
		cfg.RateLimiter = middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
	}

	router := gin.New()
	router.Use(cors.New(corsConfig(cfg.CORSOrigins)))
	router.Use(globalChain(&cfg)...)

	if healthHandler != nil {
		healthHandler.Register(router)
	}
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	mountSwagger(router, cfg.SwaggerUser, cfg.SwaggerPass)

	api := router.Group("/api", apiChain(&cfg)...)
	for _, group := range routeGroups(handler, &cfg) {
		group.RegisterRoutes(api, &cfg)
	}
	return router
}

func corsConfig(origins []string) cors.Config {
	if len(origins) == 0 {
		origins = devOrigins
	}
	return cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     corsRequestHeaders,
		ExposeHeaders:    corsExposedHeaders,
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
}

// globalChain is the middleware every request goes through, outermost first.
func globalChain(cfg *RouterConfig) []gin.HandlerFunc {
	chain := []gin.HandlerFunc{
		middleware.RequestID(),
		middleware.Recovery(),
		metrics.PrometheusMiddleware(),
		middleware.Compression("/metrics"),
		middleware.RequestLogger(cfg.LoggingService),
		middleware.ErrorHandler(),
		withLoggingService(cfg.LoggingService),
	}
	if cfg.RateLimiter != nil {
		chain = append(chain, cfg.RateLimiter.RateLimit())
	}
	return chain
}

// apiChain guards /api. The identity is resolved before API-key checks and
// idempotency so both can see who is calling.
func apiChain(cfg *RouterConfig) []gin.HandlerFunc {
	chain := []gin.HandlerFunc{
		middleware.Timeout(cfg.RequestTimeout),
		middleware.IdentityAuth(cfg.IdentityVerifier),
	}
	if cfg.EnableAuth && len(cfg.APIKeys) > 0 {
		chain = append(chain, middleware.APIKeyAuth(cfg.APIKeys))
	}
	if cfg.EnableIdempotency {
		chain = append(chain, middleware.Idempotency(middleware.NewIdempotencyConfig(cfg.IdempotencyTTL)))
	}
	return chain
}

func mountSwagger(router *gin.Engine, user, pass string) {
	docs := ginSwagger.WrapHandler(swaggerFiles.Handler)
	if user == "" || pass == "" {
		router.GET("/swagger/*any", docs)
		return
	}
	router.Group("/swagger", gin.BasicAuth(gin.Accounts{user: pass})).GET("/*any", docs)
}

// withLoggingService exposes the audit sink to handlers.
func withLoggingService(ls service.LoggingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(loggingServiceKey, ls)
		c.Next()
	}
}

// RouteGroup mounts a set of endpoints under /api.
type RouteGroup interface {
	RegisterRoutes(rg *gin.RouterGroup, cfg *RouterConfig)
}

// routeGroups lists the groups to mount. Report routes need a report service.
func routeGroups(handler *Handler, cfg *RouterConfig) []RouteGroup {
	if handler == nil {
		return nil
	}
	groups := []RouteGroup{NewPackagingRoutes(handler)}
	if cfg.Reports != nil {
		groups = append(groups, NewReportRoutes(NewReportHandler(handler.quotes, cfg.Reports, cfg.Feedback)))
	}
	return groups
}
