package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/guttosm/smartpack-service/internal/domain/model"
)

// FeedbackRepository stores "confirm and train" events.
type FeedbackRepository struct {
	collection *mongo.Collection
}

// NewFeedbackRepository creates a new feedback repository.
func NewFeedbackRepository(db *MongoDB) *FeedbackRepository {
	return &FeedbackRepository{
		collection: db.Feedback,
	}
}

// Create inserts one feedback event.
func (r *FeedbackRepository) Create(ctx context.Context, fb *model.Feedback) error {
	prepareFeedback(fb)
	_, err := r.collection.InsertOne(ctx, fb)
	return err
}

// CreateMany inserts feedback events in bulk.
func (r *FeedbackRepository) CreateMany(ctx context.Context, events []*model.Feedback) error {
	if len(events) == 0 {
		return nil
	}

	docs := make([]interface{}, len(events))
	for i, fb := range events {
		prepareFeedback(fb)
		docs[i] = fb
	}

	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

// CountByKey returns how many events were recorded for a feedback key.
func (r *FeedbackRepository) CountByKey(ctx context.Context, key string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"key": key})
}

func prepareFeedback(fb *model.Feedback) {
	if fb.ID.IsZero() {
		fb.ID = primitive.NewObjectID()
	}
	if fb.CreatedAt.IsZero() {
		fb.CreatedAt = time.Now().UTC()
	}
}
