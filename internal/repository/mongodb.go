// Package repository provides the MongoDB data access layer for package types and logs.
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

const (
	packageTypesCollection = "package_types"
	logsCollection         = "logs"

	// logsTTLIndex expires log documents by their timestamp.
	logsTTLIndex = "logs_ttl"

	healthCheckTimeout = 2 * time.Second
)

// MongoConfig holds MongoDB client and pool settings.
type MongoConfig struct {
	AppName                string
	MaxPoolSize            uint64
	MinPoolSize            uint64
	MaxConnIdleTime        time.Duration
	ConnectTimeout         time.Duration
	ServerSelectionTimeout time.Duration
	SocketTimeout          time.Duration
	// Compressors are negotiated with the server in order. Empty disables compression.
	Compressors []string
}

// DefaultMongoConfig returns the settings used by the service.
func DefaultMongoConfig() MongoConfig {
	return MongoConfig{
		AppName:                "packaging-service",
		MaxPoolSize:            50,
		MinPoolSize:            5,
		MaxConnIdleTime:        10 * time.Minute,
		ConnectTimeout:         10 * time.Second,
		ServerSelectionTimeout: 5 * time.Second,
		SocketTimeout:          30 * time.Second,
		Compressors:            []string{"zstd", "snappy", "zlib"},
	}
}

// MongoDB bundles the client with the collections used by the repositories.
type MongoDB struct {
	Client       *mongo.Client
	Database     *mongo.Database
	PackageTypes *mongo.Collection
	Logs         *mongo.Collection
}

// NewMongoDB connects with DefaultMongoConfig.
func NewMongoDB(uri, databaseName string) (*MongoDB, error) {
	return NewMongoDBWithConfig(uri, databaseName, DefaultMongoConfig())
}

// NewMongoDBWithConfig connects, pings the server and ensures the collection indexes.
// The client is disconnected again when any of those steps fails.
func NewMongoDBWithConfig(uri, databaseName string, cfg MongoConfig) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(uri).
		SetAppName(cfg.AppName).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetMinPoolSize(cfg.MinPoolSize).
		SetMaxConnIdleTime(cfg.MaxConnIdleTime).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetServerSelectionTimeout(cfg.ServerSelectionTimeout).
		SetSocketTimeout(cfg.SocketTimeout).
		SetRetryWrites(true).
		SetRetryReads(true)
	if len(cfg.Compressors) > 0 {
		opts.SetCompressors(cfg.Compressors)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	db := client.Database(databaseName)
	m := &MongoDB{
		Client:       client,
		Database:     db,
		PackageTypes: db.Collection(packageTypesCollection),
		Logs:         db.Collection(logsCollection),
	}

	if err := m.createIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("create indexes: %w", err)
	}
	return m, nil
}

func (m *MongoDB) createIndexes(ctx context.Context) error {
	_, err := m.PackageTypes.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "location_id", Value: 1}, {Key: "active", Value: 1}, {Key: "created_at", Value: 1}},
		},
		{
			// Deactivated names can be reused.
			Keys: bson.D{{Key: "location_id", Value: 1}, {Key: "name", Value: 1}},
			Options: options.Index().
				SetName("location_name_active_unique").
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"active": true}),
		},
	})
	if err != nil {
		return err
	}

	_, err = m.Logs.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "request_id", Value: 1}}},
		{Keys: bson.D{{Key: "location_id", Value: 1}, {Key: "timestamp", Value: -1}}},
		{Keys: bson.D{{Key: "action_type", Value: 1}, {Key: "timestamp", Value: -1}}},
	})
	return err
}

// SetLogsTTL makes log documents expire ttl after their timestamp.
// An existing expiry is changed in place; ttl <= 0 removes it.
func (m *MongoDB) SetLogsTTL(ctx context.Context, ttl time.Duration) error {
	if ttl <= 0 {
		_, err := m.Logs.Indexes().DropOne(ctx, logsTTLIndex)
		if isIndexNotFound(err) {
			return nil
		}
		return err
	}

	seconds := int32(ttl / time.Second)
	_, err := m.Logs.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "timestamp", Value: 1}},
		Options: options.Index().SetName(logsTTLIndex).SetExpireAfterSeconds(seconds),
	})
	if !isIndexOptionsConflict(err) {
		return err
	}

	return m.Database.RunCommand(ctx, bson.D{
		{Key: "collMod", Value: logsCollection},
		{Key: "index", Value: bson.D{
			{Key: "name", Value: logsTTLIndex},
			{Key: "expireAfterSeconds", Value: seconds},
		}},
	}).Err()
}

// LogsTTL returns the expiry configured on the logs collection, or zero when logs never expire.
func (m *MongoDB) LogsTTL(ctx context.Context) (time.Duration, error) {
	specs, err := m.Logs.Indexes().ListSpecifications(ctx)
	if err != nil {
		return 0, err
	}
	for _, spec := range specs {
		if spec.Name == logsTTLIndex && spec.ExpireAfterSeconds != nil {
			return time.Duration(*spec.ExpireAfterSeconds) * time.Second, nil
		}
	}
	return 0, nil
}

// Close disconnects the client.
func (m *MongoDB) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}

// HealthCheck pings the primary.
func (m *MongoDB) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()
	return m.Client.Ping(ctx, nil)
}

func isIndexOptionsConflict(err error) bool {
	var cmdErr mongo.CommandError
	return errors.As(err, &cmdErr) && (cmdErr.Name == "IndexOptionsConflict" || cmdErr.Code == 85)
}

func isIndexNotFound(err error) bool {
	var cmdErr mongo.CommandError
	return errors.As(err, &cmdErr) && (cmdErr.Name == "IndexNotFound" || cmdErr.Code == 27)
}
