package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/infact-news/infact/internal/domain"
	"github.com/infact-news/infact/internal/pagination"
	"github.com/infact-news/infact/internal/repository"
	"github.com/infact-news/infact/internal/telemetry"
)

// ClusterRepositoryInterface defines the repository interface for cluster reads and deletes
type ClusterRepositoryInterface interface {
	List(ctx context.Context, filter bson.M, sort bson.D, limit, skip int) ([]*domain.Cluster, int64, error)
	GetByID(ctx context.Context, id string) (*domain.Cluster, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, filter bson.M, limit int) ([]*domain.Cluster, error)
	BySource(ctx context.Context, source string, limit int) ([]*domain.Cluster, error)
	FindOlderThan(ctx context.Context, cutoff time.Time) ([]*domain.Cluster, error)
	Stats(ctx context.Context, articleTotal int64, now time.Time) (*domain.ClusterStats, error)
}

// ClusterArticleReader resolves a cluster's referenced articles.
type ClusterArticleReader interface {
	ByIDs(ctx context.Context, ids []string, sort bson.D) ([]*domain.Article, bool, error)
	DeleteByIDs(ctx context.Context, ids []string) (int64, error)
}

// ArticleCounter supplies the article total used by cluster statistics.
type ArticleCounter interface {
	Stats(ctx context.Context, now time.Time) (*domain.ArticleStats, error)
}

// ClusterListParams carries the raw listing parameters from the API layer.
type ClusterListParams struct {
	Limit     int
	Skip      int
	SortBy    string
	SortOrder int
	DaysBack  int
}

const maxDaysBack = 30

// ClusterPage is one page of clusters plus its pagination envelope.
type ClusterPage struct {
	Clusters []*domain.Cluster
	Page     pagination.Page
}

// CleanupReport summarizes one cleanup run.
type CleanupReport struct {
	ClustersDeleted int
	ArticlesDeleted int64
}

// ClusterService handles business logic for cluster reads, search,
// statistics, and cleanup
type ClusterService struct {
	clusters ClusterRepositoryInterface
	articles ClusterArticleReader
	counter  ArticleCounter
	now      func() time.Time
}

// NewClusterService creates a new ClusterService instance
func NewClusterService(clusters ClusterRepositoryInterface, articles ClusterArticleReader, counter ArticleCounter) *ClusterService {
	return &ClusterService{
		clusters: clusters,
		articles: articles,
		counter:  counter,
		now:      time.Now,
	}
}

// Recent returns a validated page of clusters created within the
// trailing days window, newest first by default.
func (s *ClusterService) Recent(ctx context.Context, p ClusterListParams) (*ClusterPage, error) {
	if p.SortBy == "" {
		p.SortBy = "created_at"
	}
	if p.SortOrder == 0 {
		p.SortOrder = -1
	}
	if p.DaysBack == 0 {
		p.DaysBack = 7
	}
	if p.DaysBack < 1 || p.DaysBack > maxDaysBack {
		return nil, domain.NewDomainError(domain.ErrCodeInvalidRequest, fmt.Sprintf("days_back must be between 1 and %d", maxDaysBack))
	}

	window, err := pagination.NewWindow(p.Limit, p.Skip, pagination.ClusterLimits)
	if err != nil {
		return nil, err
	}
	sort, err := repository.SortDoc(repository.EntityCluster, p.SortBy, p.SortOrder)
	if err != nil {
		return nil, err
	}

	filter := repository.DateRangeFilter("created_at", p.DaysBack, s.now())
	clusters, total, err := s.clusters.List(ctx, filter, sort, window.Limit, window.Skip)
	if err != nil {
		return nil, err
	}
	return &ClusterPage{
		Clusters: clusters,
		Page:     pagination.NewPage(window, total),
	}, nil
}

// Get fetches one cluster by its external identifier.
func (s *ClusterService) Get(ctx context.Context, id string) (*domain.Cluster, error) {
	return s.clusters.GetByID(ctx, id)
}

// Summary fetches one cluster and projects it onto its key metrics.
func (s *ClusterService) Summary(ctx context.Context, id string) (*domain.ClusterSummary, error) {
	cluster, err := s.clusters.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return cluster.Summarize(), nil
}

// Articles resolves the articles referenced by a cluster, newest first.
// A count mismatch between articles_count and the id list is logged as a
// data-quality warning, never surfaced as an error.
func (s *ClusterService) Articles(ctx context.Context, id string) (*domain.Cluster, []*domain.Article, error) {
	ctx, span := telemetry.StartSpan(ctx, "clusters.articles", telemetry.SpanAttributes{
		ClusterID: id,
		Operation: "cluster_articles",
	})
	defer span.End()

	cluster, err := s.clusters.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if cluster.CountMismatch() {
		log.Printf("cluster %s: articles_count=%d but %d article ids listed", cluster.ID, cluster.ArticlesCount, len(cluster.ArticleIDs))
	}

	sort := bson.D{{Key: "published_at", Value: -1}}
	articles, legacy, err := s.articles.ByIDs(ctx, cluster.ArticleIDs, sort)
	if err != nil {
		return nil, nil, err
	}
	if legacy {
		log.Printf("cluster %s: article ids resolved via raw string lookup", cluster.ID)
	}
	return cluster, articles, nil
}

// Search returns clusters matching a free-text query, optionally
// narrowed by source and keyword membership.
func (s *ClusterService) Search(ctx context.Context, query string, sources, keywords []string, limit int) ([]*domain.Cluster, error) {
	window, err := pagination.NewWindow(limit, 0, pagination.ClusterLimits)
	if err != nil {
		return nil, err
	}
	filter, err := repository.TextSearchFilter(query, sources, keywords)
	if err != nil {
		return nil, err
	}
	return s.clusters.Search(ctx, filter, window.Limit)
}

// BySource returns clusters that carry the given source, matched
// case-insensitively.
func (s *ClusterService) BySource(ctx context.Context, source string, limit int) ([]*domain.Cluster, error) {
	if source == "" {
		return nil, domain.ErrInvalidSourceFilter
	}
	window, err := pagination.NewWindow(limit, 0, pagination.ClusterLimits)
	if err != nil {
		return nil, err
	}

	ctx, span := telemetry.StartSpan(ctx, "clusters.by_source", telemetry.SpanAttributes{
		Source:    source,
		Operation: "clusters_by_source",
	})
	defer span.End()

	return s.clusters.BySource(ctx, source, window.Limit)
}

// Delete removes one cluster. Its referenced articles are kept; only
// Cleanup removes articles.
func (s *ClusterService) Delete(ctx context.Context, id string) error {
	return s.clusters.Delete(ctx, id)
}

// Stats returns collection-wide cluster statistics, including the
// article total from the news collection.
func (s *ClusterService) Stats(ctx context.Context) (*domain.ClusterStats, error) {
	articleStats, err := s.counter.Stats(ctx, s.now())
	if err != nil {
		return nil, err
	}
	return s.clusters.Stats(ctx, articleStats.TotalArticles, s.now())
}

// Cleanup deletes clusters older than maxAgeDays along with the articles
// they reference. Per-cluster failures abort the run; a partial report
// is returned with the error so callers can log progress made.
func (s *ClusterService) Cleanup(ctx context.Context, maxAgeDays int) (*CleanupReport, error) {
	if maxAgeDays == 0 {
		maxAgeDays = 30
	}
	if maxAgeDays < 7 || maxAgeDays > 365 {
		return nil, domain.NewDomainError(domain.ErrCodeInvalidRequest, "days_to_keep must be between 7 and 365")
	}
	cutoff := s.now().AddDate(0, 0, -maxAgeDays)

	old, err := s.clusters.FindOlderThan(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	report := &CleanupReport{}
	for _, cluster := range old {
		deleted, err := s.articles.DeleteByIDs(ctx, cluster.ArticleIDs)
		if err != nil {
			return report, err
		}
		report.ArticlesDeleted += deleted
		if err := s.clusters.Delete(ctx, cluster.ID); err != nil {
			return report, err
		}
		report.ClustersDeleted++
	}
	return report, nil
}
