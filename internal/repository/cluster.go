package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/infact-news/infact/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ClusterRepository provides read/delete access to the clusters
// collection. Cluster content is written only by the external processing
// pipeline; nothing here mutates it.
type ClusterRepository struct {
	coll *mongo.Collection
}

func NewClusterRepository(coll *mongo.Collection) *ClusterRepository {
	return &ClusterRepository{coll: coll}
}

// List returns a page of clusters matching filter plus the total count
// from a separate count query.
func (r *ClusterRepository) List(ctx context.Context, filter bson.M, sort bson.D, limit, skip int) ([]*domain.Cluster, int64, error) {
	if filter == nil {
		filter = bson.M{}
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count clusters: %w", err)
	}

	opts := options.Find().SetLimit(int64(limit)).SetSkip(int64(skip))
	if len(sort) > 0 {
		opts.SetSort(sort)
	}
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list clusters: %w", err)
	}
	clusters, err := drainClusters(ctx, cur)
	if err != nil {
		return nil, 0, err
	}
	return clusters, total, nil
}

// GetByID fetches one cluster by its external identifier.
func (r *ClusterRepository) GetByID(ctx context.Context, id string) (*domain.Cluster, error) {
	if err := ValidateClusterID(id); err != nil {
		return nil, err
	}
	filter, err := IDFilter(id)
	if err != nil {
		return nil, err
	}
	var doc clusterDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrClusterNotFound
		}
		return nil, fmt.Errorf("failed to get cluster: %w", err)
	}
	return materializeCluster(&doc), nil
}

// Delete removes one cluster by its external identifier.
func (r *ClusterRepository) Delete(ctx context.Context, id string) error {
	if err := ValidateClusterID(id); err != nil {
		return err
	}
	filter, err := IDFilter(id)
	if err != nil {
		return err
	}
	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete cluster: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrClusterNotFound
	}
	return nil
}

// Search returns clusters matching a pre-built search filter, newest
// updates first.
func (r *ClusterRepository) Search(ctx context.Context, filter bson.M, limit int) ([]*domain.Cluster, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "updated_at", Value: -1}}).
		SetLimit(int64(limit))
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to search clusters: %w", err)
	}
	return drainClusters(ctx, cur)
}

// BySource returns clusters whose sources array matches the source name
// case-insensitively.
func (r *ClusterRepository) BySource(ctx context.Context, source string, limit int) ([]*domain.Cluster, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "updated_at", Value: -1}}).
		SetLimit(int64(limit))
	cur, err := r.coll.Find(ctx, SourceRegexFilter("sources", source), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get clusters by source: %w", err)
	}
	return drainClusters(ctx, cur)
}

// StreamWindow opens a streaming cursor over clusters created within the
// trailing daysBack window. Callers own the stream and must close it on
// every exit path.
func (r *ClusterRepository) StreamWindow(ctx context.Context, daysBack int, now time.Time) (*ClusterStream, error) {
	cur, err := r.coll.Find(ctx, DateRangeFilter("created_at", daysBack, now))
	if err != nil {
		return nil, fmt.Errorf("failed to open cluster stream: %w", err)
	}
	return &ClusterStream{cur: cur}, nil
}

// FindOlderThan returns the clusters created before cutoff. Used by
// cleanup, which also needs the referenced article ids, so full
// documents are materialized rather than issuing a blind DeleteMany.
func (r *ClusterRepository) FindOlderThan(ctx context.Context, cutoff time.Time) ([]*domain.Cluster, error) {
	cur, err := r.coll.Find(ctx, OlderThanFilter("created_at", cutoff))
	if err != nil {
		return nil, fmt.Errorf("failed to find old clusters: %w", err)
	}
	return drainClusters(ctx, cur)
}

// Stats aggregates collection-wide cluster statistics.
func (r *ClusterRepository) Stats(ctx context.Context, articleTotal int64, now time.Time) (*domain.ClusterStats, error) {
	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to get cluster statistics: %w", err)
	}
	recent, err := r.coll.CountDocuments(ctx, DateRangeFilter("created_at", 7, now))
	if err != nil {
		return nil, fmt.Errorf("failed to get cluster statistics: %w", err)
	}

	bySource, err := r.unwindCounts(ctx, "$sources", 10)
	if err != nil {
		return nil, err
	}
	topKeywords, err := r.unwindCounts(ctx, "$keywords", 20)
	if err != nil {
		return nil, err
	}

	avg, err := r.averageClusterSize(ctx)
	if err != nil {
		return nil, err
	}

	stats := &domain.ClusterStats{
		TotalClusters:      total,
		TotalArticles:      articleTotal,
		RecentClusters:     recent,
		AverageClusterSize: avg,
		ClustersBySource:   bySource,
		TopKeywords:        topKeywords,
	}

	var largest clusterDoc
	err = r.coll.FindOne(ctx, bson.M{}, options.FindOne().SetSort(bson.D{{Key: "articles_count", Value: -1}})).Decode(&largest)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to get cluster statistics: %w", err)
	}
	if err == nil {
		stats.LargestClusterName = largest.ClusterName
		stats.LargestClusterCount = largest.ArticlesCount
	}
	return stats, nil
}

func (r *ClusterRepository) unwindCounts(ctx context.Context, path string, limit int) ([]domain.NamedCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$unwind", Value: path}},
		{{Key: "$group", Value: bson.M{"_id": path, "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.M{"count": -1}}},
		{{Key: "$limit", Value: limit}},
	}
	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate cluster counts: %w", err)
	}
	return drainNamedCounts(ctx, cur)
}

func (r *ClusterRepository) averageClusterSize(ctx context.Context) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": nil, "avg": bson.M{"$avg": "$articles_count"}}}},
	}
	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to compute average cluster size: %w", err)
	}
	defer cur.Close(ctx)

	if cur.Next(ctx) {
		var row struct {
			Avg float64 `bson:"avg"`
		}
		if err := cur.Decode(&row); err != nil {
			return 0, fmt.Errorf("failed to decode average cluster size: %w", err)
		}
		return row.Avg, nil
	}
	if err := cur.Err(); err != nil {
		return 0, fmt.Errorf("failed to compute average cluster size: %w", err)
	}
	return 0, nil
}

// ClusterStream is a streaming cursor over materialized clusters.
type ClusterStream struct {
	cur     *mongo.Cursor
	cluster *domain.Cluster
	err     error
}

// Next advances the stream; it returns false at end of stream or on
// error, after which Err reports the failure.
func (s *ClusterStream) Next(ctx context.Context) bool {
	if s.err != nil {
		return false
	}
	if !s.cur.Next(ctx) {
		s.err = s.cur.Err()
		return false
	}
	var doc clusterDoc
	if err := s.cur.Decode(&doc); err != nil {
		s.err = fmt.Errorf("failed to decode cluster: %w", err)
		return false
	}
	s.cluster = materializeCluster(&doc)
	return true
}

// Cluster returns the cluster decoded by the latest successful Next.
func (s *ClusterStream) Cluster() *domain.Cluster {
	return s.cluster
}

// Err reports any error that terminated the stream.
func (s *ClusterStream) Err() error {
	return s.err
}

// Close releases the underlying cursor.
func (s *ClusterStream) Close(ctx context.Context) error {
	return s.cur.Close(ctx)
}

// drainClusters consumes a cursor to completion, closing it on every
// exit path.
func drainClusters(ctx context.Context, cur *mongo.Cursor) ([]*domain.Cluster, error) {
	defer cur.Close(ctx)

	var clusters []*domain.Cluster
	for cur.Next(ctx) {
		var doc clusterDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode cluster: %w", err)
		}
		clusters = append(clusters, materializeCluster(&doc))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("cluster stream failed: %w", err)
	}
	return clusters, nil
}
