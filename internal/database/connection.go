package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Config holds document store connection configuration.
type Config struct {
	URI      string
	Database string
}

// Store wraps the client and the two collections the service works with.
type Store struct {
	client   *mongo.Client
	Articles *mongo.Collection
	Clusters *mongo.Collection
}

// Connect dials the store, verifies the connection, and ensures the
// indexes the read paths depend on. Index creation is idempotent; a
// failure there is logged by the caller but does not block startup
// queries, so it is returned separately from the connection itself.
func Connect(ctx context.Context, cfg Config) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to document store: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping document store: %w", err)
	}

	db := client.Database(cfg.Database)
	return &Store{
		client:   client,
		Articles: db.Collection("news"),
		Clusters: db.Collection("clusters"),
	}, nil
}

// EnsureIndexes creates the indexes both collections are queried
// through. The url index is unique and sparse: it backs duplicate
// detection while tolerating historical documents without a url.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	articleIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "url", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
		{Keys: bson.D{{Key: "title", Value: 1}}},
		{Keys: bson.D{{Key: "source", Value: 1}}},
		{Keys: bson.D{{Key: "published_at", Value: -1}}},
	}
	if _, err := s.Articles.Indexes().CreateMany(ctx, articleIndexes); err != nil {
		return fmt.Errorf("failed to create article indexes: %w", err)
	}

	clusterIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "keywords", Value: 1}}},
		{Keys: bson.D{{Key: "sources", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "updated_at", Value: -1}}},
	}
	if _, err := s.Clusters.Indexes().CreateMany(ctx, clusterIndexes); err != nil {
		return fmt.Errorf("failed to create cluster indexes: %w", err)
	}
	return nil
}

// Ping reports store reachability for the health endpoint.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// Close disconnects the underlying client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
