package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/infact-news/infact/internal/api"
	"github.com/infact-news/infact/internal/domain"
	"github.com/infact-news/infact/internal/pagination"
	"github.com/infact-news/infact/internal/service"
)

type ClusterService interface {
	Recent(ctx context.Context, p service.ClusterListParams) (*service.ClusterPage, error)
	Get(ctx context.Context, id string) (*domain.Cluster, error)
	Summary(ctx context.Context, id string) (*domain.ClusterSummary, error)
	Articles(ctx context.Context, id string) (*domain.Cluster, []*domain.Article, error)
	Search(ctx context.Context, query string, sources, keywords []string, limit int) ([]*domain.Cluster, error)
	BySource(ctx context.Context, source string, limit int) ([]*domain.Cluster, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*domain.ClusterStats, error)
	Cleanup(ctx context.Context, maxAgeDays int) (*service.CleanupReport, error)
}

type ClusterHandler struct {
	svc ClusterService
}

func NewClusterHandler(svc ClusterService) *ClusterHandler {
	return &ClusterHandler{svc: svc}
}

type ClusterResponse struct {
	ID                 string         `json:"id"`
	ClusterName        string         `json:"cluster_name"`
	Facts              []string       `json:"facts,omitempty"`
	Musings            []string       `json:"musings,omitempty"`
	Keywords           []string       `json:"keywords,omitempty"`
	Sources            []string       `json:"sources,omitempty"`
	ArticleURLs        []string       `json:"article_urls,omitempty"`
	ArticleIDs         []string       `json:"article_ids,omitempty"`
	GeneratedArticle   string         `json:"generated_article,omitempty"`
	FactualSummary     string         `json:"factual_summary,omitempty"`
	ContextualAnalysis string         `json:"contextual_analysis,omitempty"`
	Context            string         `json:"context,omitempty"`
	Background         string         `json:"background,omitempty"`
	ImageURL           string         `json:"image_url,omitempty"`
	ArticlesCount      int            `json:"articles_count"`
	SourceCounts       map[string]int `json:"source_counts,omitempty"`
	CreatedAt          string         `json:"created_at,omitempty"`
	UpdatedAt          string         `json:"updated_at,omitempty"`
}

func clusterToResponse(c *domain.Cluster) *ClusterResponse {
	resp := &ClusterResponse{
		ID:                 c.ID,
		ClusterName:        c.ClusterName,
		Facts:              c.Facts,
		Musings:            c.Musings,
		Keywords:           c.Keywords,
		Sources:            c.Sources,
		ArticleURLs:        c.ArticleURLs,
		ArticleIDs:         c.ArticleIDs,
		GeneratedArticle:   c.GeneratedArticle,
		FactualSummary:     c.FactualSummary,
		ContextualAnalysis: c.ContextualAnalysis,
		Context:            c.Context,
		Background:         c.Background,
		ImageURL:           c.ImageURL,
		ArticlesCount:      c.ArticlesCount,
		SourceCounts:       c.SourceCounts,
	}
	if !c.CreatedAt.IsZero() {
		resp.CreatedAt = c.CreatedAt.UTC().Format(time.RFC3339)
	}
	if !c.UpdatedAt.IsZero() {
		resp.UpdatedAt = c.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return resp
}

func clustersToResponse(clusters []*domain.Cluster) []*ClusterResponse {
	out := make([]*ClusterResponse, 0, len(clusters))
	for _, c := range clusters {
		out = append(out, clusterToResponse(c))
	}
	return out
}

type ClusterListResponse struct {
	Clusters   []*ClusterResponse `json:"clusters"`
	Pagination pagination.Page    `json:"pagination"`
}

func (h *ClusterHandler) Recent(w http.ResponseWriter, r *http.Request) {
	page, err := h.svc.Recent(r.Context(), service.ClusterListParams{
		Limit:     queryInt(r, "limit", 0),
		Skip:      queryInt(r, "skip", 0),
		SortBy:    r.URL.Query().Get("sort_by"),
		SortOrder: queryInt(r, "sort_order", 0),
		DaysBack:  queryInt(r, "days_back", 0),
	})
	if err != nil {
		api.HandleError(w, err)
		return
	}
	api.Success(w, http.StatusOK, ClusterListResponse{
		Clusters:   clustersToResponse(page.Clusters),
		Pagination: page.Page,
	})
}

func (h *ClusterHandler) Get(w http.ResponseWriter, r *http.Request) {
	cluster, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		api.HandleError(w, err)
		return
	}
	api.Success(w, http.StatusOK, clusterToResponse(cluster))
}

type ClusterSummaryResponse struct {
	ClusterID             string         `json:"cluster_id"`
	ClusterName           string         `json:"cluster_name"`
	ArticlesCount         int            `json:"articles_count"`
	FactsCount            int            `json:"facts_count"`
	MusingsCount          int            `json:"musings_count"`
	Keywords              []string       `json:"keywords,omitempty"`
	Sources               []string       `json:"sources,omitempty"`
	SourceCounts          map[string]int `json:"source_counts,omitempty"`
	ArticleURLsCount      int            `json:"article_urls_count"`
	HasGeneratedArticle   bool           `json:"has_generated_article"`
	HasFactualSummary     bool           `json:"has_factual_summary"`
	HasContextualAnalysis bool           `json:"has_contextual_analysis"`
	HasImage              bool           `json:"has_image"`
	CreatedAt             string         `json:"created_at,omitempty"`
	UpdatedAt             string         `json:"updated_at,omitempty"`
}

func (h *ClusterHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.Summary(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		api.HandleError(w, err)
		return
	}
	resp := &ClusterSummaryResponse{
		ClusterID:             summary.ClusterID,
		ClusterName:           summary.ClusterName,
		ArticlesCount:         summary.ArticlesCount,
		FactsCount:            summary.FactsCount,
		MusingsCount:          summary.MusingsCount,
		Keywords:              summary.Keywords,
		Sources:               summary.Sources,
		SourceCounts:          summary.SourceCounts,
		ArticleURLsCount:      summary.ArticleURLsCount,
		HasGeneratedArticle:   summary.HasGeneratedArticle,
		HasFactualSummary:     summary.HasFactualSummary,
		HasContextualAnalysis: summary.HasContextualAnalysis,
		HasImage:              summary.HasImage,
	}
	if !summary.CreatedAt.IsZero() {
		resp.CreatedAt = summary.CreatedAt.UTC().Format(time.RFC3339)
	}
	if !summary.UpdatedAt.IsZero() {
		resp.UpdatedAt = summary.UpdatedAt.UTC().Format(time.RFC3339)
	}
	api.Success(w, http.StatusOK, resp)
}

type ClusterArticlesResponse struct {
	ClusterID   string             `json:"cluster_id"`
	ClusterName string             `json:"cluster_name"`
	Articles    []*ArticleResponse `json:"articles"`
	Count       int                `json:"count"`
}

func (h *ClusterHandler) Articles(w http.ResponseWriter, r *http.Request) {
	cluster, articles, err := h.svc.Articles(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		api.HandleError(w, err)
		return
	}
	api.Success(w, http.StatusOK, ClusterArticlesResponse{
		ClusterID:   cluster.ID,
		ClusterName: cluster.ClusterName,
		Articles:    articlesToResponse(articles),
		Count:       len(articles),
	})
}

type SearchRequest struct {
	Query    string   `json:"query"`
	Sources  []string `json:"sources,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
	Limit    int      `json:"limit,omitempty"`
}

func (h *ClusterHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body", domain.ErrCodeInvalidRequest)
		return
	}
	clusters, err := h.svc.Search(r.Context(), req.Query, req.Sources, req.Keywords, req.Limit)
	if err != nil {
		api.HandleError(w, err)
		return
	}
	api.Success(w, http.StatusOK, map[string]interface{}{
		"clusters": clustersToResponse(clusters),
		"count":    len(clusters),
	})
}

func (h *ClusterHandler) BySource(w http.ResponseWriter, r *http.Request) {
	clusters, err := h.svc.BySource(r.Context(), r.URL.Query().Get("source"), queryInt(r, "limit", 0))
	if err != nil {
		api.HandleError(w, err)
		return
	}
	api.Success(w, http.StatusOK, map[string]interface{}{
		"clusters": clustersToResponse(clusters),
		"count":    len(clusters),
	})
}

func (h *ClusterHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		api.HandleError(w, err)
		return
	}
	api.Success(w, http.StatusOK, map[string]string{"deleted": chi.URLParam(r, "id")})
}

type ClusterStatsResponse struct {
	TotalClusters       int64         `json:"total_clusters"`
	TotalArticles       int64         `json:"total_articles"`
	RecentClusters      int64         `json:"recent_clusters"`
	AverageClusterSize  float64       `json:"average_cluster_size"`
	ClustersBySource    []SourceCount `json:"clusters_by_source"`
	TopKeywords         []SourceCount `json:"top_keywords"`
	LargestClusterName  string        `json:"largest_cluster_name,omitempty"`
	LargestClusterCount int           `json:"largest_cluster_count"`
}

func (h *ClusterHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		api.HandleError(w, err)
		return
	}
	api.Success(w, http.StatusOK, ClusterStatsResponse{
		TotalClusters:       stats.TotalClusters,
		TotalArticles:       stats.TotalArticles,
		RecentClusters:      stats.RecentClusters,
		AverageClusterSize:  stats.AverageClusterSize,
		ClustersBySource:    namedCounts(stats.ClustersBySource),
		TopKeywords:         namedCounts(stats.TopKeywords),
		LargestClusterName:  stats.LargestClusterName,
		LargestClusterCount: stats.LargestClusterCount,
	})
}

type CleanupResponse struct {
	ClustersDeleted int   `json:"clusters_deleted"`
	ArticlesDeleted int64 `json:"articles_deleted"`
}

func (h *ClusterHandler) Cleanup(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.Cleanup(r.Context(), queryInt(r, "days_to_keep", 0))
	if err != nil {
		api.HandleError(w, err)
		return
	}
	api.Success(w, http.StatusOK, CleanupResponse{
		ClustersDeleted: report.ClustersDeleted,
		ArticlesDeleted: report.ArticlesDeleted,
	})
}
