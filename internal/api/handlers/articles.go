package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/infact-news/infact/internal/api"
	"github.com/infact-news/infact/internal/domain"
	"github.com/infact-news/infact/internal/pagination"
	"github.com/infact-news/infact/internal/service"
)

type ArticleService interface {
	List(ctx context.Context, p service.ArticleListParams) (*service.ArticlePage, error)
	Recent(ctx context.Context, days, limit, skip int, source string) (*service.ArticlePage, error)
	Get(ctx context.Context, id string) (*domain.Article, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*domain.ArticleStats, error)
}

type ArticleHandler struct {
	svc ArticleService
}

func NewArticleHandler(svc ArticleService) *ArticleHandler {
	return &ArticleHandler{svc: svc}
}

type ArticleResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Content     string `json:"content,omitempty"`
	Source      string `json:"source"`
	PublishedAt string `json:"published_at,omitempty"`
	URL         string `json:"url,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	ExtractedAt string `json:"extracted_at"`
	ClusterID   string `json:"cluster_id,omitempty"`
}

type ArticleListResponse struct {
	Articles   []*ArticleResponse `json:"articles"`
	Pagination pagination.Page    `json:"pagination"`
}

func articleToResponse(a *domain.Article) *ArticleResponse {
	extractedAt := ""
	if !a.ExtractedAt.IsZero() {
		extractedAt = a.ExtractedAt.UTC().Format(time.RFC3339)
	}
	return &ArticleResponse{
		ID:          a.ID,
		Title:       a.Title,
		Content:     a.Content,
		Source:      a.Source,
		PublishedAt: a.PublishedAt,
		URL:         a.URL,
		ImageURL:    a.ImageURL,
		ExtractedAt: extractedAt,
		ClusterID:   a.ClusterID,
	}
}

func articlesToResponse(articles []*domain.Article) []*ArticleResponse {
	out := make([]*ArticleResponse, 0, len(articles))
	for _, a := range articles {
		out = append(out, articleToResponse(a))
	}
	return out
}

func (h *ArticleHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.svc.List(r.Context(), service.ArticleListParams{
		Limit:     queryInt(r, "limit", 0),
		Skip:      queryInt(r, "skip", 0),
		SortBy:    r.URL.Query().Get("sort_by"),
		SortOrder: queryInt(r, "sort_order", 0),
		Source:    r.URL.Query().Get("source"),
	})
	if err != nil {
		api.HandleError(w, err)
		return
	}
	api.Success(w, http.StatusOK, ArticleListResponse{
		Articles:   articlesToResponse(page.Articles),
		Pagination: page.Page,
	})
}

func (h *ArticleHandler) Recent(w http.ResponseWriter, r *http.Request) {
	page, err := h.svc.Recent(
		r.Context(),
		queryInt(r, "days_back", 1),
		queryInt(r, "limit", 0),
		queryInt(r, "skip", 0),
		r.URL.Query().Get("source"),
	)
	if err != nil {
		api.HandleError(w, err)
		return
	}
	api.Success(w, http.StatusOK, ArticleListResponse{
		Articles:   articlesToResponse(page.Articles),
		Pagination: page.Page,
	})
}

func (h *ArticleHandler) Get(w http.ResponseWriter, r *http.Request) {
	article, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		api.HandleError(w, err)
		return
	}
	api.Success(w, http.StatusOK, articleToResponse(article))
}

func (h *ArticleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		api.HandleError(w, err)
		return
	}
	api.Success(w, http.StatusOK, map[string]string{"deleted": chi.URLParam(r, "id")})
}

type ArticleStatsResponse struct {
	TotalArticles  int64         `json:"total_articles"`
	Sources        []SourceCount `json:"sources"`
	RecentArticles int64         `json:"recent_articles"`
}

type SourceCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func namedCounts(counts []domain.NamedCount) []SourceCount {
	out := make([]SourceCount, 0, len(counts))
	for _, c := range counts {
		out = append(out, SourceCount{Name: c.Name, Count: c.Count})
	}
	return out
}

func (h *ArticleHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		api.HandleError(w, err)
		return
	}
	api.Success(w, http.StatusOK, ArticleStatsResponse{
		TotalArticles:  stats.TotalArticles,
		Sources:        namedCounts(stats.Sources),
		RecentArticles: stats.RecentArticles,
	})
}
