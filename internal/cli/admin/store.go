package admin

import (
	"context"
	"fmt"
	"time"

	"github.com/infact-news/infact/internal/config"
	"github.com/infact-news/infact/internal/database"
	"github.com/infact-news/infact/internal/repository"
	"github.com/infact-news/infact/internal/service"
)

// openStore loads configuration and dials the document store. The
// caller owns the returned store and must Close it.
func openStore(ctx context.Context) (*config.Config, *database.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	store, err := database.Connect(ctx, database.Config{
		URI:      cfg.MongoURI,
		Database: cfg.MongoDatabase,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to document store: %w", err)
	}

	return cfg, store, nil
}

// clusterStreamSource adapts the repository's concrete cursor to the
// iterator interface the analytics services consume.
type clusterStreamSource struct {
	repo *repository.ClusterRepository
}

func (s clusterStreamSource) StreamWindow(ctx context.Context, daysBack int, now time.Time) (service.ClusterIterator, error) {
	return s.repo.StreamWindow(ctx, daysBack, now)
}
