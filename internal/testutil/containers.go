package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/infact-news/infact/internal/database"
)

// MongoContainer represents a MongoDB container for testing
type MongoContainer struct {
	Container testcontainers.Container
	Host      string
	Port      string
}

// NewMongoContainer creates and starts a MongoDB container
func NewMongoContainer(ctx context.Context, t *testing.T) *MongoContainer {
	req := testcontainers.ContainerRequest{
		Image:        "mongo:7",
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor: wait.ForAll(
			wait.ForLog("Waiting for connections"),
			wait.ForListeningPort("27017/tcp"),
		).WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("failed to create mongo container: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get container host: %v", err)
	}

	port, err := container.MappedPort(ctx, "27017")
	if err != nil {
		t.Fatalf("failed to get container port: %v", err)
	}

	return &MongoContainer{
		Container: container,
		Host:      host,
		Port:      port.Port(),
	}
}

// URI returns the MongoDB connection string
func (mc *MongoContainer) URI() string {
	return fmt.Sprintf("mongodb://%s:%s", mc.Host, mc.Port)
}

// Terminate stops and removes the container
func (mc *MongoContainer) Terminate(ctx context.Context) error {
	return testcontainers.TerminateContainer(mc.Container)
}

// NewTestStore connects to the test container and ensures indexes
func NewTestStore(ctx context.Context, t *testing.T, mc *MongoContainer, dbName string) *database.Store {
	var store *database.Store
	var err error
	for i := 0; i < 5; i++ {
		store, err = database.Connect(ctx, database.Config{
			URI:      mc.URI(),
			Database: dbName,
		})
		if err == nil {
			break
		}
		time.Sleep(time.Duration(i+1) * 500 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("failed to connect to test store after retries: %v", err)
	}

	if err := store.EnsureIndexes(ctx); err != nil {
		store.Close(ctx)
		t.Fatalf("failed to ensure indexes: %v", err)
	}

	return store
}

// ResetStore drops both collections for test isolation
func ResetStore(ctx context.Context, s *database.Store) error {
	if err := s.Articles.Drop(ctx); err != nil {
		return fmt.Errorf("failed to drop news collection: %w", err)
	}
	if err := s.Clusters.Drop(ctx); err != nil {
		return fmt.Errorf("failed to drop clusters collection: %w", err)
	}
	return nil
}
