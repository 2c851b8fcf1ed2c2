// Package repository provides data access layer for MongoDB.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	ReportsCollection  = "reports"
	FeedbackCollection = "feedback"
	LogsCollection     = "logs"
)

const (
	logsTTLIndex        = "timestamp_1"
	healthCheckTimeout  = 2 * time.Second
	indexOptionConflict = 85
)

// connectSettings is what MongoOption functions tune.
type connectSettings struct {
	client         *options.ClientOptions
	connectTimeout time.Duration
}

// MongoOption adjusts how NewMongoDB connects.
type MongoOption func(*connectSettings)

// WithPoolSize bounds the driver connection pool.
func WithPoolSize(minSize, maxSize uint64) MongoOption {
	return func(s *connectSettings) {
		s.client.SetMinPoolSize(minSize).SetMaxPoolSize(maxSize)
	}
}

// WithTimeouts sets the connect, server selection and socket timeouts.
// Zero values keep the defaults.
func WithTimeouts(connect, serverSelection, socket time.Duration) MongoOption {
	return func(s *connectSettings) {
		if connect > 0 {
			s.connectTimeout = connect
			s.client.SetConnectTimeout(connect)
		}
		if serverSelection > 0 {
			s.client.SetServerSelectionTimeout(serverSelection)
		}
		if socket > 0 {
			s.client.SetSocketTimeout(socket)
		}
	}
}

// WithoutCompression turns off wire compression, which some proxies reject.
func WithoutCompression() MongoOption {
	return func(s *connectSettings) {
		s.client.SetCompressors(nil)
	}
}

func defaultConnectSettings(uri string) *connectSettings {
	return &connectSettings{
		connectTimeout: 10 * time.Second,
		client: options.Client().
			ApplyURI(uri).
			SetMinPoolSize(5).
			SetMaxPoolSize(50).
			SetMaxConnIdleTime(10 * time.Minute).
			SetConnectTimeout(10 * time.Second).
			SetServerSelectionTimeout(5 * time.Second).
			SetSocketTimeout(30 * time.Second).
			SetCompressors([]string{"zstd", "snappy", "zlib"}).
			SetRetryWrites(true).
			SetRetryReads(true),
	}
}

// indexPlan lists the secondary indexes each collection needs. The TTL index
// on logs is not here because its expiry is configurable; see SetLogsTTL.
var indexPlan = map[string][]mongo.IndexModel{
	// reports are always listed per user, newest first
	ReportsCollection: {
		{Keys: bson.D{{Key: "user_email", Value: 1}, {Key: "created_at", Value: -1}}},
	},
	FeedbackCollection: {
		{Keys: bson.D{{Key: "key", Value: 1}}},
		{Keys: bson.D{{Key: "event_id", Value: 1}}, Options: options.Index().SetUnique(true)},
	},
	LogsCollection: {
		{Keys: bson.D{{Key: "request_id", Value: 1}}},
		// audit trail of one user
		{
			Keys:    bson.D{{Key: "audit.user_email", Value: 1}, {Key: "timestamp", Value: -1}},
			Options: options.Index().SetSparse(true),
		},
	},
}

// MongoDB holds the client and the collections SmartPack uses.
type MongoDB struct {
	Client   *mongo.Client
	Database *mongo.Database
	Reports  *mongo.Collection
	Feedback *mongo.Collection
	Logs     *mongo.Collection
}

// NewMongoDB connects to uri, pings the server and makes sure the indexes
// exist. The client is disconnected again if any step fails.
func NewMongoDB(uri, databaseName string, opts ...MongoOption) (*MongoDB, error) {
	settings := defaultConnectSettings(uri)
	for _, opt := range opts {
		opt(settings)
	}

	ctx, cancel := context.WithTimeout(context.Background(), settings.connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, settings.client)
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	db := client.Database(databaseName)
	m := &MongoDB{
		Client:   client,
		Database: db,
		Reports:  db.Collection(ReportsCollection),
		Feedback: db.Collection(FeedbackCollection),
		Logs:     db.Collection(LogsCollection),
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	if err := m.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return m, nil
}

func (m *MongoDB) ensureIndexes(ctx context.Context) error {
	for name, models := range indexPlan {
		if _, err := m.Database.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create %s indexes: %w", name, err)
		}
	}
	return nil
}

// SetLogsTTL makes log entries expire ttl after their timestamp. An existing
// TTL index is updated in place. A non-positive ttl removes expiry.
func (m *MongoDB) SetLogsTTL(ctx context.Context, ttl time.Duration) error {
	if ttl <= 0 {
		_, err := m.Logs.Indexes().DropOne(ctx, logsTTLIndex)
		if isNamespaceOrIndexMissing(err) {
			return nil
		}
		return err
	}

	seconds := int32(ttl / time.Second)
	_, err := m.Logs.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "timestamp", Value: 1}},
		Options: options.Index().SetName(logsTTLIndex).SetExpireAfterSeconds(seconds),
	})

	var cmdErr mongo.CommandError
	if !errors.As(err, &cmdErr) || cmdErr.Code != indexOptionConflict {
		return err
	}

	return m.Database.RunCommand(ctx, bson.D{
		{Key: "collMod", Value: LogsCollection},
		{Key: "index", Value: bson.D{
			{Key: "name", Value: logsTTLIndex},
			{Key: "expireAfterSeconds", Value: seconds},
		}},
	}).Err()
}

func isNamespaceOrIndexMissing(err error) bool {
	var cmdErr mongo.CommandError
	return errors.As(err, &cmdErr) && (cmdErr.Name == "IndexNotFound" || cmdErr.Name == "NamespaceNotFound")
}

// Close disconnects the client.
func (m *MongoDB) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}

// HealthCheck pings the primary with a short deadline.
func (m *MongoDB) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()
	return m.Client.Ping(ctx, nil)
}
