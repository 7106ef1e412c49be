package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/infact-news/infact/internal/domain"
	"github.com/infact-news/infact/internal/pagination"
	"github.com/infact-news/infact/internal/service"
)

type stubArticleService struct {
	page    *service.ArticlePage
	article *domain.Article
	stats   *domain.ArticleStats
	err     error
	params  service.ArticleListParams
	deleted string
}

func (s *stubArticleService) List(ctx context.Context, p service.ArticleListParams) (*service.ArticlePage, error) {
	s.params = p
	return s.page, s.err
}

func (s *stubArticleService) Recent(ctx context.Context, days, limit, skip int, source string) (*service.ArticlePage, error) {
	return s.page, s.err
}

func (s *stubArticleService) Get(ctx context.Context, id string) (*domain.Article, error) {
	return s.article, s.err
}

func (s *stubArticleService) Delete(ctx context.Context, id string) error {
	s.deleted = id
	return s.err
}

func (s *stubArticleService) Stats(ctx context.Context) (*domain.ArticleStats, error) {
	return s.stats, s.err
}

func articleRouter(svc ArticleService) *chi.Mux {
	h := NewArticleHandler(svc)
	r := chi.NewRouter()
	r.Get("/articles", h.List)
	r.Get("/articles/recent", h.Recent)
	r.Get("/articles/stats", h.Stats)
	r.Get("/articles/{id}", h.Get)
	r.Delete("/articles/{id}", h.Delete)
	return r
}

func TestListArticles(t *testing.T) {
	svc := &stubArticleService{page: &service.ArticlePage{
		Articles: []*domain.Article{{ID: "a1", Title: "one", ExtractedAt: time.Now()}},
		Page:     pagination.Page{Total: 1, Limit: 20},
	}}
	r := articleRouter(svc)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/articles?limit=50&sort_by=title&sort_order=1&source=bbc", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 50, svc.params.Limit)
	assert.Equal(t, "title", svc.params.SortBy)
	assert.Equal(t, 1, svc.params.SortOrder)
	assert.Equal(t, "bbc", svc.params.Source)

	var body struct {
		Success bool                `json:"success"`
		Data    ArticleListResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.Len(t, body.Data.Articles, 1)
	assert.Equal(t, int64(1), body.Data.Pagination.Total)
}

func TestListArticlesValidationEnvelope(t *testing.T) {
	r := articleRouter(&stubArticleService{err: domain.ErrInvalidLimit})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/articles?limit=999", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "INVALID_LIMIT", body["error_code"])
}

func TestGetArticleNotFound(t *testing.T) {
	r := articleRouter(&stubArticleService{err: domain.ErrArticleNotFound})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/articles/507f1f77bcf86cd799439011", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ARTICLE_NOT_FOUND", body["error_code"])
}

func TestDeleteArticle(t *testing.T) {
	svc := &stubArticleService{}
	r := articleRouter(svc)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/articles/507f1f77bcf86cd799439011", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "507f1f77bcf86cd799439011", svc.deleted)
}

func TestArticleStats(t *testing.T) {
	r := articleRouter(&stubArticleService{stats: &domain.ArticleStats{
		TotalArticles:  120,
		Sources:        []domain.NamedCount{{Name: "BBC", Count: 80}},
		RecentArticles: 14,
	}})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/articles/stats", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data ArticleStatsResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(120), body.Data.TotalArticles)
	require.Len(t, body.Data.Sources, 1)
	assert.Equal(t, "BBC", body.Data.Sources[0].Name)
}
