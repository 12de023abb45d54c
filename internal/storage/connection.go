package storage

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectMongoDB builds the single database handle the rest of the system is
// constructed around. There is no package-global handle; callers own the
// lifecycle and disconnect on shutdown.
func ConnectMongoDB(ctx context.Context, uri, database string) (*mongo.Database, error) {
	clientOpts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(100).
		SetMinPoolSize(10)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	// Ping to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client.Database(database), nil
}

// Indexer is implemented by repositories that maintain their own indexes.
type Indexer interface {
	CreateIndexes(ctx context.Context) error
}

// EnsureIndexes runs index bootstrap on every repository that supports it.
func EnsureIndexes(ctx context.Context, repos ...any) error {
	for _, repo := range repos {
		indexer, ok := repo.(Indexer)
		if !ok {
			continue
		}
		if err := indexer.CreateIndexes(ctx); err != nil {
			return err
		}
	}
	return nil
}
