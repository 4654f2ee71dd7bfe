package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Config struct {
	URI            string        `mapstructure:"uri"`
	Database       string        `mapstructure:"database"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

// DB owns the mongo client lifecycle: opened at process start, closed at
// shutdown by the caller.
type DB struct {
	client   *mongo.Client
	database *mongo.Database
}

func NewDB(ctx context.Context, cfg Config) (*DB, error) {
	timeout := cfg.ConnectTimeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	db := &DB{
		client:   client,
		database: client.Database(cfg.Database),
	}

	if err := db.ensureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("failed to create indexes: %w", err)
	}

	return db, nil
}

// ensureIndexes creates the unique alternate-key indexes. The store's
// uniqueness constraint is the final authority for duplicate detection.
func (db *DB) ensureIndexes(ctx context.Context) error {
	coll := db.database.Collection(patientsCollection)
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "dni", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "numeroHistoriaClinica", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	return err
}

// Ping reports store reachability, used by the readiness probe.
func (db *DB) Ping(ctx context.Context) error {
	return db.client.Ping(ctx, nil)
}

func (db *DB) Close(ctx context.Context) error {
	return db.client.Disconnect(ctx)
}

func (db *DB) Database() *mongo.Database {
	return db.database
}
