package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LogEntryDocument is one row of the logs collection. Request logs carry
// HTTP, audit logs carry Audit, and some carry both.
type LogEntryDocument struct {
	ID        primitive.ObjectID     `bson:"_id,omitempty"`
	Timestamp time.Time              `bson:"timestamp"`
	Level     string                 `bson:"level"`
	Message   string                 `bson:"message"`
	RequestID string                 `bson:"request_id,omitempty"`
	Error     string                 `bson:"error,omitempty"`
	HTTP      *RequestInfo           `bson:"http,omitempty"`
	Audit     *AuditInfo             `bson:"audit,omitempty"`
	Fields    map[string]interface{} `bson:"fields,omitempty"`
}

// RequestInfo describes the HTTP exchange a log row belongs to.
type RequestInfo struct {
	Method     string `bson:"method"`
	Path       string `bson:"path"`
	Status     int    `bson:"status,omitempty"`
	DurationMS int64  `bson:"duration_ms"`
	ClientIP   string `bson:"client_ip,omitempty"`
	UserAgent  string `bson:"user_agent,omitempty"`
}

// AuditInfo records who did what.
type AuditInfo struct {
	UserEmail string `bson:"user_email,omitempty"`
	Action    string `bson:"action,omitempty"`
}

// LogsRepository appends rows to the logs collection. Rows are never read
// back by the service and expire through the TTL index.
type LogsRepository struct {
	collection *mongo.Collection
}

func NewLogsRepository(db *MongoDB) *LogsRepository {
	return &LogsRepository{collection: db.Logs}
}

// Create inserts entry, assigning an ID and timestamp when missing.
func (r *LogsRepository) Create(ctx context.Context, entry *LogEntryDocument) error {
	entry.fillKeys(time.Now())
	_, err := r.collection.InsertOne(ctx, entry)
	return err
}

// CreateMany inserts entries in one unordered write, so a rejected row does
// not stop the rest of the batch. Nil entries are skipped.
func (r *LogsRepository) CreateMany(ctx context.Context, entries []*LogEntryDocument) error {
	now := time.Now()
	rows := make([]interface{}, 0, len(entries))
	for _, entry := range entries {
		if entry != nil {
			entry.fillKeys(now)
			rows = append(rows, entry)
		}
	}
	if len(rows) == 0 {
		return nil
	}

	_, err := r.collection.InsertMany(ctx, rows, options.InsertMany().SetOrdered(false))
	return err
}

func (d *LogEntryDocument) fillKeys(now time.Time) {
	if d.ID.IsZero() {
		d.ID = primitive.NewObjectID()
	}
	if d.Timestamp.IsZero() {
		d.Timestamp = now
	}
}
