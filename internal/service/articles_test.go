package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/infact-news/infact/internal/domain"
)

type fakeArticleRepo struct {
	articles   []*domain.Article
	total      int64
	lastFilter bson.M
	lastSort   bson.D
	lastLimit  int
	lastSkip   int
	deleted    []string
	byID       map[string]*domain.Article
}

func (f *fakeArticleRepo) List(ctx context.Context, filter bson.M, sort bson.D, limit, skip int) ([]*domain.Article, int64, error) {
	f.lastFilter = filter
	f.lastSort = sort
	f.lastLimit = limit
	f.lastSkip = skip
	return f.articles, f.total, nil
}

func (f *fakeArticleRepo) GetByID(ctx context.Context, id string) (*domain.Article, error) {
	a, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrArticleNotFound
	}
	return a, nil
}

func (f *fakeArticleRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrArticleNotFound
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeArticleRepo) Stats(ctx context.Context, now time.Time) (*domain.ArticleStats, error) {
	return &domain.ArticleStats{TotalArticles: f.total}, nil
}

func TestListDefaults(t *testing.T) {
	repo := &fakeArticleRepo{total: 100}
	svc := NewArticleService(repo)

	page, err := svc.List(context.Background(), ArticleListParams{})
	require.NoError(t, err)

	assert.Equal(t, bson.D{{Key: "extracted_at", Value: -1}}, repo.lastSort)
	assert.Equal(t, 20, repo.lastLimit)
	assert.Equal(t, 0, repo.lastSkip)
	assert.True(t, page.Page.HasNext)
	assert.False(t, page.Page.HasPrev)
}

func TestListValidatesBeforeStore(t *testing.T) {
	repo := &fakeArticleRepo{}
	svc := NewArticleService(repo)

	tests := []struct {
		name    string
		params  ArticleListParams
		wantErr error
	}{
		{name: "limit too high", params: ArticleListParams{Limit: 201}, wantErr: domain.ErrInvalidLimit},
		{name: "negative skip", params: ArticleListParams{Skip: -1}, wantErr: domain.ErrInvalidSkip},
		{name: "unknown sort field", params: ArticleListParams{SortBy: "content"}, wantErr: domain.ErrInvalidSortField},
		{name: "operator sort field", params: ArticleListParams{SortBy: "$title"}, wantErr: domain.ErrInvalidSortFieldFormat},
		{name: "bad sort order", params: ArticleListParams{SortBy: "title", SortOrder: 3}, wantErr: domain.ErrInvalidSortOrder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.List(context.Background(), tt.params)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
	assert.Nil(t, repo.lastSort, "no store access after validation failure")
}

func TestListSourceFilter(t *testing.T) {
	repo := &fakeArticleRepo{}
	svc := NewArticleService(repo)

	_, err := svc.List(context.Background(), ArticleListParams{Source: "bbc"})
	require.NoError(t, err)
	require.Contains(t, repo.lastFilter, "source")
}

func TestRecentWindow(t *testing.T) {
	repo := &fakeArticleRepo{}
	svc := NewArticleService(repo)
	fixed := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	_, err := svc.Recent(context.Background(), 3, 0, 0, "")
	require.NoError(t, err)

	cutoff := repo.lastFilter["extracted_at"].(bson.M)["$gte"].(time.Time)
	assert.Equal(t, fixed.AddDate(0, 0, -3), cutoff)
	assert.Equal(t, bson.D{{Key: "extracted_at", Value: -1}}, repo.lastSort)
}

func TestGetAndDelete(t *testing.T) {
	a := &domain.Article{ID: "507f1f77bcf86cd799439011", Title: "t"}
	repo := &fakeArticleRepo{byID: map[string]*domain.Article{a.ID: a}}
	svc := NewArticleService(repo)

	got, err := svc.Get(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, a, got)

	require.NoError(t, svc.Delete(context.Background(), a.ID))
	assert.Equal(t, []string{a.ID}, repo.deleted)

	_, err = svc.Get(context.Background(), "000000000000000000000000")
	assert.ErrorIs(t, err, domain.ErrArticleNotFound)
}
