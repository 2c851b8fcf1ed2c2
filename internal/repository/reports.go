package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/guttosm/smartpack-service/internal/domain/model"
)

// ErrNotFound is returned when no document matches.
var ErrNotFound = errors.New("document not found")

// ReportsRepository stores saved reports, one owner per document.
type ReportsRepository struct {
	collection *mongo.Collection
}

// NewReportsRepository creates a new reports repository.
func NewReportsRepository(db *MongoDB) *ReportsRepository {
	return &ReportsRepository{
		collection: db.Reports,
	}
}

// Create inserts a report, assigning its id and creation time when unset.
func (r *ReportsRepository) Create(ctx context.Context, report *model.Report) error {
	if report.ID.IsZero() {
		report.ID = primitive.NewObjectID()
	}
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now().UTC()
	}

	_, err := r.collection.InsertOne(ctx, report)
	return err
}

// ListByUser returns the newest reports of a user, at most limit of them.
func (r *ReportsRepository) ListByUser(ctx context.Context, userEmail string, limit int) ([]model.Report, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	if limit > 0 {
		findOptions.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, bson.M{"user_email": userEmail}, findOptions)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	reports := make([]model.Report, 0)
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

// FindByID returns the report with the given id owned by the user.
func (r *ReportsRepository) FindByID(ctx context.Context, userEmail string, id primitive.ObjectID) (*model.Report, error) {
	var report model.Report
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "user_email": userEmail}).Decode(&report)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// Delete removes the report with the given id owned by the user.
func (r *ReportsRepository) Delete(ctx context.Context, userEmail string, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "user_email": userEmail})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
