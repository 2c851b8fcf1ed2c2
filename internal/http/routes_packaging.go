package http

import (
	"github.com/gin-gonic/gin"
)

// PackagingRoutes registers the stateless packaging endpoints.
type PackagingRoutes struct {
	handler *Handler
}

// NewPackagingRoutes creates a new PackagingRoutes instance.
func NewPackagingRoutes(handler *Handler) *PackagingRoutes {
	return &PackagingRoutes{handler: handler}
}

// RegisterRoutes registers the packaging routes. They never require an identity.
func (r *PackagingRoutes) RegisterRoutes(rg *gin.RouterGroup, _ *RouterConfig) {
	rg.POST("/predict", r.handler.Predict)
	rg.POST("/recommend", r.handler.Recommend)
	rg.POST("/estimate-cost", r.handler.EstimateCost)
	rg.POST("/quote", r.handler.Quote)
	rg.GET("/catalog", r.handler.Catalog)
}
