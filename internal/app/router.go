package app

import (
	"github.com/guttosm/smartpack-service/config"
	"github.com/guttosm/smartpack-service/internal/circuitbreaker"
	"github.com/guttosm/smartpack-service/internal/http"
	"github.com/guttosm/smartpack-service/internal/middleware"
	"github.com/guttosm/smartpack-service/internal/service"
)

// RouterComponents holds the HTTP handlers and the router settings built from config.
type RouterComponents struct {
	Handler       *http.Handler
	HealthHandler *http.HealthHandler
	Config        http.RouterConfig

	// fallbackReports keeps report routes answering when MongoDB is unavailable.
	fallbackReports *service.ReportService
}

// InitializeRouter wires services and, when present, the database stores into the router settings.
func InitializeRouter(services *ServiceComponents, db *DatabaseComponents, cfg config.Config) *RouterComponents {
	rc := &RouterComponents{
		Handler:       http.NewHandler(services.Predictor, services.Recommender, services.Estimator, services.Quotes),
		HealthHandler: http.NewHealthHandler(),
		Config: http.RouterConfig{
			RateLimit:         cfg.Server.RateLimit,
			RateWindow:        cfg.Server.RateWindow,
			EnableAuth:        cfg.Auth.Enabled,
			APIKeys:           cfg.Auth.APIKeys,
			EnableIdempotency: true,
			IdempotencyTTL:    cfg.Cache.IdempotencyTTL,
			RequestTimeout:    cfg.Server.RequestTimeout,
			CORSOrigins:       cfg.Server.CORSOrigins,
			SwaggerUser:       cfg.Server.SwaggerUser,
			SwaggerPass:       cfg.Server.SwaggerPass,
			IdentityVerifier:  services.IdentityVerifier(),
		},
	}

	if cfg.Server.RateLimit > 0 {
		rc.Config.RateLimiter = middleware.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateWindow)
		rc.Config.UserRateLimiter = middleware.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateWindow)
	}

	if db == nil {
		rc.fallbackReports = service.NewReportService(nil, reportOptions(cfg)...)
		rc.Config.Reports = rc.fallbackReports
		return rc
	}

	if db.DB != nil {
		rc.HealthHandler.RegisterChecker("mongodb", db.DB)
	}
	for name, cb := range map[string]*circuitbreaker.CircuitBreaker{
		"mongodb_reports":  db.ReportsCircuitBreaker,
		"mongodb_feedback": db.FeedbackCircuitBreaker,
		"mongodb_logs":     db.LogsCircuitBreaker,
	} {
		rc.HealthHandler.RegisterCircuitBreaker(name, cb)
	}

	rc.Config.LoggingService = db.LoggingService
	rc.Config.Reports = db.Reports
	// a nil *FeedbackService must not become a non-nil interface
	if db.Feedback != nil {
		rc.Config.Feedback = db.Feedback
	}
	return rc
}

// Stop ends the background sweeps of the rate limiters and the fallback report service.
// Safe on a nil receiver.
func (r *RouterComponents) Stop() {
	if r == nil {
		return
	}
	r.Config.RateLimiter.Stop()
	r.Config.UserRateLimiter.Stop()
	r.fallbackReports.Stop()
}
