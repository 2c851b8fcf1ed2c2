package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/guttosm/smartpack-service/internal/domain/model"
)

// ReportsRepositoryInterface defines the interface for report store operations.
type ReportsRepositoryInterface interface {
	Create(ctx context.Context, report *model.Report) error
	ListByUser(ctx context.Context, userEmail string, limit int) ([]model.Report, error)
	FindByID(ctx context.Context, userEmail string, id primitive.ObjectID) (*model.Report, error)
	Delete(ctx context.Context, userEmail string, id primitive.ObjectID) error
}

// FeedbackRepositoryInterface defines the interface for feedback event storage.
type FeedbackRepositoryInterface interface {
	Create(ctx context.Context, fb *model.Feedback) error
	CreateMany(ctx context.Context, events []*model.Feedback) error
}

// LogsRepositoryInterface defines the interface for logs repository operations.
type LogsRepositoryInterface interface {
	Create(ctx context.Context, entry *LogEntryDocument) error
	CreateMany(ctx context.Context, entries []*LogEntryDocument) error
}
