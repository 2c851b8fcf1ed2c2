package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/guttosm/smartpack-service/internal/domain/model"
	"github.com/guttosm/smartpack-service/internal/metrics"
	"github.com/guttosm/smartpack-service/internal/repository"
	"github.com/guttosm/smartpack-service/internal/service/cache"
)

var (
	// ErrRepositoryNotConfigured is returned when the report store is disabled.
	ErrRepositoryNotConfigured = errors.New("report store is not configured")
	// ErrIdentityRequired is returned when an operation needs a signed-in user.
	ErrIdentityRequired = errors.New("identity required")
	// ErrReportNotFound is returned when the user has no report with the given id.
	ErrReportNotFound = errors.New("report not found")
	// ErrInvalidReportID is returned when a report id is not a valid ObjectID.
	ErrInvalidReportID = errors.New("invalid report id")
)

const (
	// DefaultReportsListLimit bounds how many reports List returns.
	DefaultReportsListLimit = 50
	// DefaultDeletedReportsTTL is how long a deleted id stays hidden from List.
	DefaultDeletedReportsTTL = 10 * time.Minute
	// DefaultCurrencySymbol prefixes the costs in report text.
	DefaultCurrencySymbol = "₹"

	reportTitleFallback = "Packaging report"
	unnamedProduct      = "Unnamed product"
	deletedCacheName    = "deleted_reports"
	reportFileSuffix    = "-smartpack-report.txt"
)

// ReportManager saves, lists, deletes and renders the reports of a user.
type ReportManager interface {
	BuildPayload(product model.Product, packagingType model.PackagingType, quote model.Quote) model.ReportPayload
	Save(ctx context.Context, identity model.Identity, payload model.ReportPayload) (*model.Report, error)
	List(ctx context.Context, identity model.Identity) ([]model.Report, error)
	Delete(ctx context.Context, identity model.Identity, id string) error
	Download(ctx context.Context, identity model.Identity, id string) (filename, content string, err error)
}

// ReportOption configures a ReportService.
type ReportOption func(*ReportService)

// ReportService implements ReportManager on a reports repository.
type ReportService struct {
	repo           repository.ReportsRepositoryInterface
	deleted        cache.Cache[bool]
	deletedTTL     time.Duration
	listLimit      int
	currencySymbol string
}

// NewReportService creates a ReportService. A nil repository makes every store operation
// return ErrRepositoryNotConfigured; BuildPayload still works.
func NewReportService(repo repository.ReportsRepositoryInterface, opts ...ReportOption) *ReportService {
	s := &ReportService{
		repo:           repo,
		deletedTTL:     DefaultDeletedReportsTTL,
		listLimit:      DefaultReportsListLimit,
		currencySymbol: DefaultCurrencySymbol,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.deleted == nil {
		s.deleted = NewShardedCache[bool](deletedCacheName, 10000, s.deletedTTL, 16)
	}
	return s
}

// WithReportsListLimit overrides how many reports List returns.
func WithReportsListLimit(limit int) ReportOption {
	return func(s *ReportService) {
		if limit > 0 {
			s.listLimit = limit
		}
	}
}

// WithDeletedReportsTTL overrides how long deleted ids stay masked.
func WithDeletedReportsTTL(ttl time.Duration) ReportOption {
	return func(s *ReportService) {
		if ttl > 0 {
			s.deletedTTL = ttl
		}
	}
}

// WithDeletedReportsCache injects the recently-deleted mask.
func WithDeletedReportsCache(c cache.Cache[bool]) ReportOption {
	return func(s *ReportService) {
		s.deleted = c
	}
}

// WithCurrencySymbol sets the symbol used in the cost line of report text.
func WithCurrencySymbol(symbol string) ReportOption {
	return func(s *ReportService) {
		if symbol != "" {
			s.currencySymbol = symbol
		}
	}
}

// BuildPayload renders the display fields and the plain-text report for a quote.
func (s *ReportService) BuildPayload(product model.Product, packagingType model.PackagingType, quote model.Quote) model.ReportPayload {
	rec := quote.Recommendation
	dims := formatDims(rec.Box)
	utilization := formatNumber(rec.Utilization) + "%"
	voidSpace := fmt.Sprintf("%s%% (~%s³ units)", formatNumber(rec.VoidPercent), formatNumber(rec.VoidSpace))

	lines := []string{
		"SmartPack AI Packaging Report",
		"Product: " + orDefault(product.Name, unnamedProduct),
		"Brand: " + orDefault(product.Brand, model.NotAvailable),
		"Packaging type: " + string(packagingType),
		"Recommended box: " + dims,
		"Utilization: " + utilization,
		"Void: " + voidSpace,
		"Safety rating: " + rec.SafetyRating,
		fmt.Sprintf("ML thickness: %s (Lvl %d)", rec.Thickness.Type, rec.Thickness.Level),
		"Recommended fill: " + rec.RecommendedFill,
		"AI suggestion: " + quote.SpaceMessage,
		fmt.Sprintf("Estimated cost with AI: %[1]s%[2]s • Baseline: %[1]s%[3]s • Savings: %[1]s%[4]s",
			s.currencySymbol,
			formatNumber(quote.Cost.AICost),
			formatNumber(quote.Cost.BaselineCost),
			formatNumber(quote.Cost.Savings)),
	}

	return model.ReportPayload{
		Title:       orDefault(product.Name, reportTitleFallback),
		Packaging:   string(packagingType),
		Dims:        dims,
		Utilization: utilization,
		VoidSpace:   voidSpace,
		AINote:      quote.SpaceMessage,
		ReportText:  strings.Join(lines, "\n"),
	}
}

// Save stores a report for the signed-in user.
func (s *ReportService) Save(ctx context.Context, identity model.Identity, payload model.ReportPayload) (*model.Report, error) {
	if err := s.ready(identity); err != nil {
		return nil, err
	}

	report := &model.Report{
		UserEmail:     identity.Email,
		ReportPayload: payload,
	}
	if err := s.repo.Create(ctx, report); err != nil {
		metrics.RecordReportOperation("save", "error")
		return nil, fmt.Errorf("failed to save report: %w", err)
	}

	metrics.RecordReportOperation("save", "success")
	return report, nil
}

// List returns the newest reports of the user, hiding ids deleted in this process recently.
func (s *ReportService) List(ctx context.Context, identity model.Identity) ([]model.Report, error) {
	if err := s.ready(identity); err != nil {
		return nil, err
	}

	rows, err := s.repo.ListByUser(ctx, identity.Email, s.listLimit)
	if err != nil {
		metrics.RecordReportOperation("list", "error")
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}

	reports := make([]model.Report, 0, len(rows))
	for _, row := range rows {
		if s.isDeleted(identity.Email, row.ID.Hex()) {
			continue
		}
		reports = append(reports, row.WithDefaults())
	}

	metrics.RecordReportOperation("list", "success")
	return reports, nil
}

// Delete removes a report. The id is masked from List before the store result is known,
// so a failed delete still hides the row until the mask expires.
func (s *ReportService) Delete(ctx context.Context, identity model.Identity, id string) error {
	if err := s.ready(identity); err != nil {
		return err
	}
	oid, err := parseReportID(id)
	if err != nil {
		return err
	}

	s.deleted.Set(deletedKey(identity.Email, oid.Hex()), true)

	err = s.repo.Delete(ctx, identity.Email, oid)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		metrics.RecordReportOperation("delete", "not_found")
		return ErrReportNotFound
	case err != nil:
		metrics.RecordReportOperation("delete", "error")
		return fmt.Errorf("failed to delete report: %w", err)
	}

	metrics.RecordReportOperation("delete", "success")
	return nil
}

// Download returns the attachment name and text of a report. Reports saved without text
// get a short worklog built from their display fields.
func (s *ReportService) Download(ctx context.Context, identity model.Identity, id string) (string, string, error) {
	if err := s.ready(identity); err != nil {
		return "", "", err
	}
	oid, err := parseReportID(id)
	if err != nil {
		return "", "", err
	}
	if s.isDeleted(identity.Email, oid.Hex()) {
		return "", "", ErrReportNotFound
	}

	report, err := s.repo.FindByID(ctx, identity.Email, oid)
	if errors.Is(err, repository.ErrNotFound) {
		metrics.RecordReportOperation("download", "not_found")
		return "", "", ErrReportNotFound
	}
	if err != nil {
		metrics.RecordReportOperation("download", "error")
		return "", "", fmt.Errorf("failed to load report: %w", err)
	}

	metrics.RecordReportOperation("download", "success")
	return ReportFilename(oid.Hex()), ReportText(report.WithDefaults()), nil
}

// ReportFilename is the attachment name for a report id.
func ReportFilename(id string) string {
	if id == "" {
		id = "report"
	}
	return id + reportFileSuffix
}

// ReportText returns the stored report text or the worklog fallback.
func ReportText(report model.Report) string {
	if report.ReportText != "" {
		return report.ReportText
	}
	return strings.Join([]string{
		"SmartPack AI Worklog • " + report.ID.Hex(),
		"Product: " + report.Title,
		"Packaging type: " + report.Packaging,
		"Dimensions: " + report.Dims,
		"Utilization: " + report.Utilization,
		"Void: " + report.VoidSpace,
		"AI suggestion: " + report.AINote,
	}, "\n")
}

// Stop releases the deleted-reports mask.
func (s *ReportService) Stop() {
	if s == nil {
		return
	}
	s.deleted.Stop()
}

func (s *ReportService) ready(identity model.Identity) error {
	if s.repo == nil {
		return ErrRepositoryNotConfigured
	}
	if identity.IsZero() {
		return ErrIdentityRequired
	}
	return nil
}

func (s *ReportService) isDeleted(email, id string) bool {
	_, ok := s.deleted.Get(deletedKey(email, id))
	return ok
}

func deletedKey(email, id string) string {
	return email + "|" + id
}

func parseReportID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return primitive.NilObjectID, ErrInvalidReportID
	}
	return oid, nil
}

// formatDims renders a box as "W × D × H (W×D×H)".
func formatDims(box model.BoxDimensions) string {
	return fmt.Sprintf("%s × %s × %s (W×D×H)", formatNumber(box.Width), formatNumber(box.Depth), formatNumber(box.Height))
}

// formatNumber prints the shortest decimal form, without a trailing ".0".
func formatNumber(v float64) string {
	v = model.Finite(v)
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
