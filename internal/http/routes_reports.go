package http

import (
	"github.com/gin-gonic/gin"

	"github.com/guttosm/smartpack-service/internal/middleware"
)

// ReportRoutes registers the saved-report endpoints.
type ReportRoutes struct {
	handler *ReportHandler
}

// NewReportRoutes creates a new ReportRoutes instance.
func NewReportRoutes(handler *ReportHandler) *ReportRoutes {
	return &ReportRoutes{handler: handler}
}

// RegisterRoutes registers the report routes behind RequireIdentity and, when
// configured, per-user rate limiting.
func (r *ReportRoutes) RegisterRoutes(rg *gin.RouterGroup, cfg *RouterConfig) {
	reports := rg.Group("/reports", middleware.RequireIdentity())
	if cfg != nil && cfg.UserRateLimiter != nil {
		reports.Use(cfg.UserRateLimiter.UserRateLimit())
	}

	reports.POST("", r.handler.SaveReport)
	reports.GET("", r.handler.ListReports)
	reports.DELETE("/:id", r.handler.DeleteReport)
	reports.GET("/:id/download", r.handler.DownloadReport)
}
