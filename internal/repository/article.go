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

// ArticleRepository provides access to the news collection.
type ArticleRepository struct {
	coll *mongo.Collection
}

func NewArticleRepository(coll *mongo.Collection) *ArticleRepository {
	return &ArticleRepository{coll: coll}
}

// List returns a page of articles matching filter, plus the total count
// from a separate count query. Pages may be shorter than limit, so the
// page itself is never used to derive the total.
func (r *ArticleRepository) List(ctx context.Context, filter bson.M, sort bson.D, limit, skip int) ([]*domain.Article, int64, error) {
	if filter == nil {
		filter = bson.M{}
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count articles: %w", err)
	}

	opts := options.Find().SetLimit(int64(limit)).SetSkip(int64(skip))
	if len(sort) > 0 {
		opts.SetSort(sort)
	}
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list articles: %w", err)
	}
	articles, err := drainArticles(ctx, cur)
	if err != nil {
		return nil, 0, err
	}
	return articles, total, nil
}

// GetByID fetches one article by its external identifier.
func (r *ArticleRepository) GetByID(ctx context.Context, id string) (*domain.Article, error) {
	filter, err := IDFilter(id)
	if err != nil {
		return nil, err
	}
	var doc articleDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrArticleNotFound
		}
		return nil, fmt.Errorf("failed to get article: %w", err)
	}
	return materializeArticle(&doc), nil
}

// Delete removes one article by its external identifier.
func (r *ArticleRepository) Delete(ctx context.Context, id string) error {
	filter, err := IDFilter(id)
	if err != nil {
		return err
	}
	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete article: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrArticleNotFound
	}
	return nil
}

// DeleteByIDs removes the articles referenced by the given external ids,
// skipping malformed entries. Returns the number deleted.
func (r *ArticleRepository) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := r.coll.DeleteMany(ctx, IDsInFilter(ids))
	if err != nil {
		return 0, fmt.Errorf("failed to delete cluster articles: %w", err)
	}
	return res.DeletedCount, nil
}

// IsDuplicate reports whether an equivalent article is already stored.
// The OR-list carries title and url only when each is non-empty; a
// candidate with neither field matches nothing and is reported as not a
// duplicate. That permissive default is deliberate: with no dedup key
// there is nothing to compare against.
func (r *ArticleRepository) IsDuplicate(ctx context.Context, a *domain.Article) (bool, error) {
	var or []bson.M
	if a.Title != "" {
		or = append(or, bson.M{"title": a.Title})
	}
	if a.URL != "" {
		or = append(or, bson.M{"url": a.URL})
	}
	if len(or) == 0 {
		return false, nil
	}
	n, err := r.coll.CountDocuments(ctx, bson.M{"$or": or})
	if err != nil {
		return false, fmt.Errorf("failed to check for duplicate article: %w", err)
	}
	return n > 0, nil
}

// Insert stores a new article and returns its external identifier.
func (r *ArticleRepository) Insert(ctx context.Context, a *domain.Article) (string, error) {
	res, err := r.coll.InsertOne(ctx, docFromArticle(a))
	if err != nil {
		return "", fmt.Errorf("failed to store article: %w", err)
	}
	return EncodeID(res.InsertedID), nil
}

// ByIDs fetches the articles referenced by a cluster. The store was
// populated with two id representations over time, so the lookup is
// dual-path: the native envelope form is probed first via a findOne on
// the first id, and only if that finds nothing does the query fall back
// to raw-string membership. The returned legacy flag is true when the
// fallback path was taken, so callers can log the historical
// inconsistency instead of papering over it.
func (r *ArticleRepository) ByIDs(ctx context.Context, ids []string, sort bson.D) ([]*domain.Article, bool, error) {
	if len(ids) == 0 {
		return nil, false, nil
	}

	legacy := false
	filter := IDsInFilter(ids)
	if probe, err := IDFilter(ids[0]); err == nil {
		var doc articleDoc
		err := r.coll.FindOne(ctx, probe).Decode(&doc)
		if errors.Is(err, mongo.ErrNoDocuments) {
			legacy = true
			filter = RawIDsInFilter(ids)
		} else if err != nil {
			return nil, false, fmt.Errorf("failed to get cluster articles: %w", err)
		}
	} else {
		// First id is not envelope-shaped at all; only the raw form
		// can match.
		legacy = true
		filter = RawIDsInFilter(ids)
	}

	opts := options.Find()
	if len(sort) > 0 {
		opts.SetSort(sort)
	}
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, false, fmt.Errorf("failed to get cluster articles: %w", err)
	}
	articles, err := drainArticles(ctx, cur)
	if err != nil {
		return nil, false, err
	}
	return articles, legacy, nil
}

// Stats aggregates per-source counts and the trailing 7-day activity.
func (r *ArticleRepository) Stats(ctx context.Context, now time.Time) (*domain.ArticleStats, error) {
	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to get article statistics: %w", err)
	}

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$source", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.M{"count": -1}}},
	}
	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to get article statistics: %w", err)
	}
	sources, err := drainNamedCounts(ctx, cur)
	if err != nil {
		return nil, err
	}

	recent, err := r.coll.CountDocuments(ctx, DateRangeFilter("extracted_at", 7, now))
	if err != nil {
		return nil, fmt.Errorf("failed to get article statistics: %w", err)
	}

	return &domain.ArticleStats{
		TotalArticles:  total,
		Sources:        sources,
		RecentArticles: recent,
	}, nil
}

// drainArticles consumes a cursor to completion, closing it on every
// exit path.
func drainArticles(ctx context.Context, cur *mongo.Cursor) ([]*domain.Article, error) {
	defer cur.Close(ctx)

	var articles []*domain.Article
	for cur.Next(ctx) {
		var doc articleDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode article: %w", err)
		}
		articles = append(articles, materializeArticle(&doc))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("article stream failed: %w", err)
	}
	return articles, nil
}

// drainNamedCounts reads {_id, count} aggregation rows.
func drainNamedCounts(ctx context.Context, cur *mongo.Cursor) ([]domain.NamedCount, error) {
	defer cur.Close(ctx)

	var counts []domain.NamedCount
	for cur.Next(ctx) {
		var row struct {
			Name  string `bson:"_id"`
			Count int    `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode aggregation row: %w", err)
		}
		counts = append(counts, domain.NamedCount{Name: row.Name, Count: row.Count})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("aggregation stream failed: %w", err)
	}
	return counts, nil
}
