package service

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/guttosm/smartpack-service/internal/domain/model"
	"github.com/guttosm/smartpack-service/internal/logger"
	"github.com/guttosm/smartpack-service/internal/repository"
)

// maxLoggedText caps free-text columns such as user agents and error messages.
const maxLoggedText = 512

// LoggingService persists request and audit log entries.
type LoggingService interface {
	CreateLog(ctx context.Context, entry *model.LogEntry) error
	CreateLogs(ctx context.Context, entries []*model.LogEntry) error
}

// LogWriter maps log entries onto the logs collection, skipping entries
// below its minimum level.
type LogWriter struct {
	repo     repository.LogsRepositoryInterface
	minLevel zerolog.Level
}

// LoggingOption configures a LogWriter.
type LoggingOption func(*LogWriter)

// WithMinLogLevel drops entries below level. Unknown names mean info.
func WithMinLogLevel(level string) LoggingOption {
	return func(w *LogWriter) {
		w.minLevel = logger.ParseLevel(level)
	}
}

// NewLoggingService creates a LogWriter that persists info and above by default.
func NewLoggingService(repo repository.LogsRepositoryInterface, opts ...LoggingOption) LoggingService {
	w := &LogWriter{repo: repo, minLevel: zerolog.InfoLevel}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// CreateLog stores entry unless its level is below the minimum.
func (w *LogWriter) CreateLog(ctx context.Context, entry *model.LogEntry) error {
	if !w.keeps(entry) {
		return nil
	}
	return w.repo.Create(ctx, toLogDocument(entry))
}

// CreateLogs stores the entries at or above the minimum level in one write.
func (w *LogWriter) CreateLogs(ctx context.Context, entries []*model.LogEntry) error {
	docs := make([]*repository.LogEntryDocument, 0, len(entries))
	for _, entry := range entries {
		if w.keeps(entry) {
			docs = append(docs, toLogDocument(entry))
		}
	}
	if len(docs) == 0 {
		return nil
	}
	return w.repo.CreateMany(ctx, docs)
}

func (w *LogWriter) keeps(entry *model.LogEntry) bool {
	if entry == nil {
		return false
	}
	level, err := zerolog.ParseLevel(entry.Level)
	if err != nil || level == zerolog.NoLevel {
		// Unlabelled entries are kept.
		return true
	}
	return level >= w.minLevel
}

func toLogDocument(entry *model.LogEntry) *repository.LogEntryDocument {
	doc := &repository.LogEntryDocument{
		ID:        entry.ID,
		Timestamp: entry.Timestamp,
		Level:     entry.Level,
		Message:   entry.Message,
		RequestID: entry.RequestID,
		Error:     truncateText(entry.Error),
		Fields:    entry.Fields,
	}
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	if doc.Timestamp.IsZero() {
		doc.Timestamp = time.Now()
	}
	doc.Timestamp = doc.Timestamp.UTC()

	if entry.Method != "" || entry.Path != "" {
		doc.HTTP = &repository.RequestInfo{
			Method:     entry.Method,
			Path:       entry.Path,
			Status:     entry.StatusCode,
			DurationMS: entry.Duration,
			ClientIP:   entry.IP,
			UserAgent:  truncateText(entry.UserAgent),
		}
	}
	if entry.UserEmail != "" || entry.ActionType != "" {
		doc.Audit = &repository.AuditInfo{UserEmail: entry.UserEmail, Action: entry.ActionType}
	}
	return doc
}

// truncateText cuts s to maxLoggedText bytes without splitting a rune.
func truncateText(s string) string {
	if len(s) <= maxLoggedText {
		return s
	}
	cut := maxLoggedText
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
