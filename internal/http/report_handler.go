package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/smartpack-service/internal/circuitbreaker"
	"github.com/guttosm/smartpack-service/internal/domain/dto"
	"github.com/guttosm/smartpack-service/internal/domain/model"
	"github.com/guttosm/smartpack-service/internal/i18n"
	"github.com/guttosm/smartpack-service/internal/middleware"
	"github.com/guttosm/smartpack-service/internal/service"
)

// ReportHandler serves the saved reports of the signed-in user.
type ReportHandler struct {
	quotes   service.QuoteProvider
	reports  service.ReportManager
	feedback service.FeedbackRecorder
}

// NewReportHandler creates a ReportHandler. feedback may be nil.
func NewReportHandler(quotes service.QuoteProvider, reports service.ReportManager, feedback service.FeedbackRecorder) *ReportHandler {
	return &ReportHandler{
		quotes:   quotes,
		reports:  reports,
		feedback: feedback,
	}
}

// SaveReport handles POST /api/reports requests.
//
// @Summary      Save a packaging report
// @Description  Quotes the product, renders the report text and stores it for the signed-in user. The accepted box is also recorded as model feedback.
// @Tags         Reports
// @Accept       json
// @Produce      json
// @Param        Authorization header string true "Bearer identity token"
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        request body dto.QuoteRequest true "Product, packaging type and category"
// @Success      201 {object} dto.SuccessResponse{data=dto.SaveReportResponse} "Saved report"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid identity token"
// @Failure      503 {object} dto.ErrorResponse "Report store unavailable"
// @Security     BearerAuth
// @Router       /api/reports [post]
func (h *ReportHandler) SaveReport(c *gin.Context) {
	builder := NewResponseBuilder(c)

	identity, ok := requireIdentity(c, builder)
	if !ok {
		return
	}

	req, ok := bindRequest[dto.QuoteRequest](c, builder)
	if !ok {
		return
	}

	in := req.ToInput()
	quote := h.quotes.Quote(in)
	payload := h.reports.BuildPayload(quote.Product, quote.PackagingType, quote)

	report, err := h.reports.Save(c.Request.Context(), identity, payload)
	if err != nil {
		if ls := loggingServiceFrom(c); ls != nil {
			middleware.AuditLogError(ls, c, model.ActionSaveReport, "Report save failed", err, nil)
		}
		respondReportError(builder, err)
		return
	}

	recorded := false
	if h.feedback != nil {
		rec := quote.Recommendation
		recorded = h.feedback.Record(identity, quote.Product, rec.Box, rec.Thickness.Level)
	}

	if ls := loggingServiceFrom(c); ls != nil {
		middleware.AuditLog(ls, c, model.ActionSaveReport, "Report saved", map[string]interface{}{
			"report_id":      report.ID.Hex(),
			"packaging_type": string(quote.PackagingType),
		})
	}

	builder.SuccessCreated(dto.SaveReportResponse{
		Report:           report.WithDefaults(),
		Quote:            quote,
		FeedbackRecorded: recorded,
	})
}

// ListReports handles GET /api/reports requests.
//
// @Summary      List saved reports
// @Description  Returns the newest reports of the signed-in user. Reports deleted in the last few minutes are hidden even if the store still returns them.
// @Tags         Reports
// @Produce      json
// @Param        Authorization header string true "Bearer identity token"
// @Success      200 {object} dto.SuccessResponse{data=dto.ReportListResponse} "Reports"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid identity token"
// @Failure      503 {object} dto.ErrorResponse "Report store unavailable"
// @Security     BearerAuth
// @Router       /api/reports [get]
func (h *ReportHandler) ListReports(c *gin.Context) {
	builder := NewResponseBuilder(c)

	identity, ok := requireIdentity(c, builder)
	if !ok {
		return
	}

	reports, err := h.reports.List(c.Request.Context(), identity)
	if err != nil {
		respondReportError(builder, err)
		return
	}
	if reports == nil {
		reports = []model.Report{}
	}

	builder.SuccessOK(dto.ReportListResponse{Reports: reports, Count: len(reports)})
}

// DeleteReport handles DELETE /api/reports/:id requests.
//
// @Summary      Delete a saved report
// @Description  Deletes one report of the signed-in user. The id is hidden from the list right away.
// @Tags         Reports
// @Produce      json
// @Param        Authorization header string true "Bearer identity token"
// @Param        id path string true "Report id"
// @Success      200 {object} dto.SuccessResponse{data=dto.DeleteReportResponse} "Deleted"
// @Failure      400 {object} dto.ErrorResponse "Invalid report id"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid identity token"
// @Failure      404 {object} dto.ErrorResponse "Report not found"
// @Failure      503 {object} dto.ErrorResponse "Report store unavailable"
// @Security     BearerAuth
// @Router       /api/reports/{id} [delete]
func (h *ReportHandler) DeleteReport(c *gin.Context) {
	builder := NewResponseBuilder(c)

	identity, ok := requireIdentity(c, builder)
	if !ok {
		return
	}

	id := c.Param("id")
	if err := h.reports.Delete(c.Request.Context(), identity, id); err != nil {
		if ls := loggingServiceFrom(c); ls != nil && !errors.Is(err, service.ErrInvalidReportID) {
			middleware.AuditLogError(ls, c, model.ActionDeleteReport, "Report delete failed", err, map[string]interface{}{
				"report_id": id,
			})
		}
		respondReportError(builder, err)
		return
	}

	if ls := loggingServiceFrom(c); ls != nil {
		middleware.AuditLog(ls, c, model.ActionDeleteReport, "Report deleted", map[string]interface{}{
			"report_id": id,
		})
	}

	message := i18n.GetTranslator().Translate(i18n.SuccessKeyReportDeleted, i18n.GetLocale(c))
	builder.SuccessOK(dto.DeleteReportResponse{ID: id, Message: message})
}

// DownloadReport handles GET /api/reports/:id/download requests.
//
// @Summary      Download a saved report
// @Description  Returns the report as a plain-text attachment named <id>-smartpack-report.txt. Reports saved without text get a short worklog.
// @Tags         Reports
// @Produce      plain
// @Param        Authorization header string true "Bearer identity token"
// @Param        id path string true "Report id"
// @Success      200 {string} string "Report text"
// @Failure      400 {object} dto.ErrorResponse "Invalid report id"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid identity token"
// @Failure      404 {object} dto.ErrorResponse "Report not found"
// @Failure      503 {object} dto.ErrorResponse "Report store unavailable"
// @Security     BearerAuth
// @Router       /api/reports/{id}/download [get]
func (h *ReportHandler) DownloadReport(c *gin.Context) {
	builder := NewResponseBuilder(c)

	identity, ok := requireIdentity(c, builder)
	if !ok {
		return
	}

	filename, content, err := h.reports.Download(c.Request.Context(), identity, c.Param("id"))
	if err != nil {
		respondReportError(builder, err)
		return
	}

	builder.Attachment(filename, content)
}

func requireIdentity(c *gin.Context, builder *ResponseBuilder) (model.Identity, bool) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		builder.Error(http.StatusUnauthorized, i18n.ErrKeyTokenRequired, nil)
		return model.Identity{}, false
	}
	return identity, true
}

// respondReportError maps report service errors to HTTP errors.
func respondReportError(builder *ResponseBuilder, err error) {
	switch {
	case errors.Is(err, service.ErrIdentityRequired):
		builder.Error(http.StatusUnauthorized, i18n.ErrKeyTokenRequired, err)
	case errors.Is(err, service.ErrInvalidReportID):
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidReportID, err)
	case errors.Is(err, service.ErrReportNotFound):
		builder.Error(http.StatusNotFound, i18n.ErrKeyReportNotFound, err)
	case errors.Is(err, service.ErrRepositoryNotConfigured):
		builder.Error(http.StatusServiceUnavailable, i18n.ErrKeyReportsUnavailable, err)
	case errors.Is(err, circuitbreaker.ErrCircuitOpen):
		builder.Error(http.StatusServiceUnavailable, i18n.ErrKeyReportsUnavailable, err)
	default:
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
	}
}
