package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/smartpack-service/internal/domain/dto"
	"github.com/guttosm/smartpack-service/internal/domain/model"
	"github.com/guttosm/smartpack-service/internal/i18n"
	"github.com/guttosm/smartpack-service/internal/metrics"
	"github.com/guttosm/smartpack-service/internal/middleware"
	"github.com/guttosm/smartpack-service/internal/service"
)

// Handler provides HTTP handlers for the packaging routes.
type Handler struct {
	predictor   service.Predictor
	recommender service.Recommender
	estimator   service.CostEstimator
	quotes      service.QuoteProvider
}

// NewHandler creates a new Handler instance.
func NewHandler(predictor service.Predictor, recommender service.Recommender, estimator service.CostEstimator, quotes service.QuoteProvider) *Handler {
	return &Handler{
		predictor:   predictor,
		recommender: recommender,
		estimator:   estimator,
		quotes:      quotes,
	}
}

// Predict handles POST /api/predict requests.
//
// @Summary      Predict box dimensions
// @Description  Runs the dimension model on a product and returns the raw prediction: box dimensions, board thickness, utilization, void and fill. No clearance is applied.
// @Tags         Packaging
// @Accept       json
// @Produce      json
// @Param        request body dto.PredictRequest true "Product and packaging type"
// @Success      200 {object} dto.SuccessResponse{data=model.Prediction} "Prediction"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      429 {object} dto.ErrorResponse "Too many requests - rate limit exceeded"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/predict [post]
func (h *Handler) Predict(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, ok := bindRequest[dto.PredictRequest](c, builder)
	if !ok {
		return
	}

	start := time.Now()
	prediction := h.predictor.Predict(req.Product.ToModel(), req.Packaging())
	metrics.RecordPrediction("predict", time.Since(start), "success")

	builder.SuccessOK(prediction)
}

// Recommend handles POST /api/recommend requests.
//
// @Summary      Recommend a box
// @Description  Predicts a box and enforces the minimum clearance for the packaging type and product category. Paper products get a tighter clearance.
// @Tags         Packaging
// @Accept       json
// @Produce      json
// @Param        request body dto.QuoteRequest true "Product, packaging type and category"
// @Success      200 {object} dto.SuccessResponse{data=dto.RecommendResponse} "Recommendation"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      429 {object} dto.ErrorResponse "Too many requests - rate limit exceeded"
// @Router       /api/recommend [post]
func (h *Handler) Recommend(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, ok := bindRequest[dto.QuoteRequest](c, builder)
	if !ok {
		return
	}

	in := req.ToInput()
	start := time.Now()
	rec := h.recommender.Recommend(in.Product, in.PackagingType, in.Category)
	metrics.RecordPrediction("recommend", time.Since(start), "success")

	resp := dto.RecommendResponse{Recommendation: rec}
	if target, ok := in.PackagingType.Target(); ok {
		resp.UtilizationTarget = &target
	}
	builder.SuccessOK(resp)
}

// EstimateCost handles POST /api/estimate-cost requests.
//
// @Summary      Estimate box cost
// @Description  Prices a box: board weight and material cost from the surface area and board grade, plus filler for the void space.
// @Tags         Packaging
// @Accept       json
// @Produce      json
// @Param        request body dto.EstimateCostRequest true "Box, packaging type, thickness level and void space"
// @Success      200 {object} dto.SuccessResponse{data=model.CostBreakdown} "Cost breakdown"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      429 {object} dto.ErrorResponse "Too many requests - rate limit exceeded"
// @Router       /api/estimate-cost [post]
func (h *Handler) EstimateCost(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, ok := bindRequest[dto.EstimateCostRequest](c, builder)
	if !ok {
		return
	}

	start := time.Now()
	cost := h.estimator.EstimateCost(req.Box.ToModel(), req.Packaging(), req.ThicknessLevel, req.VoidSpace.Float64())
	metrics.RecordPrediction("estimate_cost", time.Since(start), "success")

	builder.SuccessOK(cost)
}

// Quote handles POST /api/quote requests.
//
// @Summary      Quote packaging for a product
// @Description  Recommends a box, prices it against a naive oversized baseline and returns the fit message and utilization target. Results are cached briefly per input.
// @Tags         Packaging
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        request body dto.QuoteRequest true "Product, packaging type and category"
// @Success      200 {object} dto.SuccessResponse{data=model.Quote} "Quote"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - invalid API key or identity token"
// @Failure      429 {object} dto.ErrorResponse "Too many requests - rate limit exceeded"
// @Router       /api/quote [post]
func (h *Handler) Quote(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, ok := bindRequest[dto.QuoteRequest](c, builder)
	if !ok {
		return
	}

	in := req.ToInput()
	quote := h.quotes.Quote(in)

	if ls := loggingServiceFrom(c); ls != nil {
		middleware.AuditLog(ls, c, model.ActionQuote, "Packaging quote requested", map[string]interface{}{
			"packaging_type": string(in.PackagingType),
			"category":       in.Category,
			"utilization":    quote.Recommendation.Utilization,
			"savings":        quote.Cost.Savings,
		})
	}

	builder.SuccessOK(quote)
}

// Catalog handles GET /api/catalog requests.
//
// @Summary      List packaging options
// @Description  Returns the packaging types, product categories, fragility classes, board grades and utilization targets clients can choose from.
// @Tags         Packaging
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=dto.CatalogResponse} "Catalog"
// @Router       /api/catalog [get]
func (h *Handler) Catalog(c *gin.Context) {
	NewResponseBuilder(c).SuccessOK(dto.NewCatalogResponse())
}

// bindRequest decodes and validates a JSON body, answering 400 on failure.
func bindRequest[T any, PT interface {
	*T
	validatable
}](c *gin.Context, builder *ResponseBuilder) (*T, bool) {
	req, err := decodeRequest[T, PT](c)
	if err == nil {
		return req, true
	}

	var validationErr *dto.ValidationError
	if !errors.As(err, &validationErr) {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return nil, false
	}

	metrics.RecordPrediction(c.FullPath(), 0, "validation_error")
	switch validationErr.Field {
	case "product":
		builder.Error(http.StatusBadRequest, i18n.ErrKeyValidationProduct, err)
	case "box":
		builder.Error(http.StatusBadRequest, i18n.ErrKeyValidationBox, err)
	default:
		builder.ErrorWithMessage(http.StatusBadRequest, validationErr.Error(), err)
	}
	return nil, false
}

// loggingServiceFrom returns the audit sink set by the router, if any.
func loggingServiceFrom(c *gin.Context) service.LoggingService {
	v, exists := c.Get(loggingServiceKey)
	if !exists {
		return nil
	}
	ls, _ := v.(service.LoggingService)
	return ls
}
