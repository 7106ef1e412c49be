package service

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/infact-news/infact/internal/domain"
	"github.com/infact-news/infact/internal/pagination"
	"github.com/infact-news/infact/internal/repository"
	"github.com/infact-news/infact/internal/telemetry"
)

// ArticleRepositoryInterface defines the repository interface for article reads
type ArticleRepositoryInterface interface {
	List(ctx context.Context, filter bson.M, sort bson.D, limit, skip int) ([]*domain.Article, int64, error)
	GetByID(ctx context.Context, id string) (*domain.Article, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context, now time.Time) (*domain.ArticleStats, error)
}

// ArticleListParams carries the raw listing parameters from the API layer.
type ArticleListParams struct {
	Limit     int
	Skip      int
	SortBy    string
	SortOrder int
	Source    string
}

// ArticlePage is one page of articles plus its pagination envelope.
type ArticlePage struct {
	Articles []*domain.Article
	Page     pagination.Page
}

// ArticleService handles business logic for article listing and lookup
type ArticleService struct {
	repo ArticleRepositoryInterface
	now  func() time.Time
}

// NewArticleService creates a new ArticleService instance
func NewArticleService(repo ArticleRepositoryInterface) *ArticleService {
	return &ArticleService{repo: repo, now: time.Now}
}

// List returns a validated page of articles. All parameter validation
// happens before any store access.
func (s *ArticleService) List(ctx context.Context, p ArticleListParams) (*ArticlePage, error) {
	if p.SortBy == "" {
		p.SortBy = "extracted_at"
	}
	if p.SortOrder == 0 {
		p.SortOrder = -1
	}

	window, err := pagination.NewWindow(p.Limit, p.Skip, pagination.ArticleLimits)
	if err != nil {
		return nil, err
	}
	sort, err := repository.SortDoc(repository.EntityArticle, p.SortBy, p.SortOrder)
	if err != nil {
		return nil, err
	}

	filter := bson.M{}
	if p.Source != "" {
		filter = repository.SourceRegexFilter("source", p.Source)
	}

	articles, total, err := s.repo.List(ctx, filter, sort, window.Limit, window.Skip)
	if err != nil {
		return nil, err
	}
	return &ArticlePage{
		Articles: articles,
		Page:     pagination.NewPage(window, total),
	}, nil
}

// Recent returns a page of articles extracted within the trailing days
// window, newest first, optionally narrowed to one source.
func (s *ArticleService) Recent(ctx context.Context, days, limit, skip int, source string) (*ArticlePage, error) {
	if days <= 0 {
		days = 1
	}
	window, err := pagination.NewWindow(limit, skip, pagination.ArticleLimits)
	if err != nil {
		return nil, err
	}

	filter := repository.DateRangeFilter("extracted_at", days, s.now())
	if source != "" {
		filter = repository.Combine(filter, repository.SourceRegexFilter("source", source))
	}
	sort := bson.D{{Key: "extracted_at", Value: -1}}
	articles, total, err := s.repo.List(ctx, filter, sort, window.Limit, window.Skip)
	if err != nil {
		return nil, err
	}
	return &ArticlePage{
		Articles: articles,
		Page:     pagination.NewPage(window, total),
	}, nil
}

// Get fetches one article by its external identifier.
func (s *ArticleService) Get(ctx context.Context, id string) (*domain.Article, error) {
	return s.repo.GetByID(ctx, id)
}

// Delete removes one article by its external identifier.
func (s *ArticleService) Delete(ctx context.Context, id string) error {
	ctx, span := telemetry.StartSpan(ctx, "articles.delete", telemetry.SpanAttributes{
		ArticleID: id,
		Operation: "delete_article",
	})
	defer span.End()

	return s.repo.Delete(ctx, id)
}

// Stats returns collection-wide article statistics.
func (s *ArticleService) Stats(ctx context.Context) (*domain.ArticleStats, error) {
	return s.repo.Stats(ctx, s.now())
}
