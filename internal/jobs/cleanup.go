package jobs

import (
	"context"
	"fmt"
	"log"

	"github.com/infact-news/infact/internal/service"
	"github.com/infact-news/infact/internal/telemetry"
)

// ClusterCleaner removes clusters older than maxAgeDays together with
// their member articles.
type ClusterCleaner interface {
	Cleanup(ctx context.Context, maxAgeDays int) (*service.CleanupReport, error)
}

// CleanupTask prunes stale clusters on each worker tick.
type CleanupTask struct {
	clusters   ClusterCleaner
	maxAgeDays int
}

func NewCleanupTask(clusters ClusterCleaner, maxAgeDays int) *CleanupTask {
	return &CleanupTask{clusters: clusters, maxAgeDays: maxAgeDays}
}

func (t *CleanupTask) Run(ctx context.Context) error {
	ctx, span := telemetry.StartSpan(ctx, "jobs.cleanup", telemetry.SpanAttributes{
		Operation: "cleanup_old_clusters",
	})
	defer span.End()

	report, err := t.clusters.Cleanup(ctx, t.maxAgeDays)
	if err != nil {
		span.SetError(err)
		if report != nil {
			// Partial progress before the failure is still worth recording.
			log.Printf("cleanup aborted after deleting %d clusters and %d articles: %v",
				report.ClustersDeleted, report.ArticlesDeleted, err)
		}
		return fmt.Errorf("cleanup old clusters: %w", err)
	}

	if report.ClustersDeleted > 0 {
		log.Printf("cleanup removed %d clusters and %d articles older than %d days",
			report.ClustersDeleted, report.ArticlesDeleted, t.maxAgeDays)
	}
	return nil
}
