package handlers

import (
	"context"
	"net/http"

	"github.com/infact-news/infact/internal/api"
	"github.com/infact-news/infact/internal/domain"
)

type TrendingService interface {
	Analyze(ctx context.Context, daysBack, minArticles int) ([]domain.TrendingTopic, error)
}

type DigestService interface {
	Weekly(ctx context.Context) (*domain.WeeklyDigest, error)
}

type AnalyticsHandler struct {
	trending TrendingService
	digest   DigestService
}

func NewAnalyticsHandler(trending TrendingService, digest DigestService) *AnalyticsHandler {
	return &AnalyticsHandler{trending: trending, digest: digest}
}

type TrendingTopicResponse struct {
	Topic           string   `json:"topic"`
	ClusterCount    int      `json:"cluster_count"`
	ArticleCount    int      `json:"article_count"`
	Sources         []string `json:"sources"`
	RelatedKeywords []string `json:"related_keywords"`
	Score           float64  `json:"score"`
	Trend           string   `json:"trend"`
}

func (h *AnalyticsHandler) TrendingTopics(w http.ResponseWriter, r *http.Request) {
	daysBack := queryInt(r, "days_back", 7)
	minArticles := queryInt(r, "min_articles", 3)
	if daysBack < 1 || daysBack > 30 {
		api.Error(w, http.StatusBadRequest, "days_back must be between 1 and 30", domain.ErrCodeInvalidRequest)
		return
	}
	if minArticles < 1 || minArticles > 50 {
		api.Error(w, http.StatusBadRequest, "min_articles must be between 1 and 50", domain.ErrCodeInvalidRequest)
		return
	}

	topics, err := h.trending.Analyze(r.Context(), daysBack, minArticles)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	out := make([]TrendingTopicResponse, 0, len(topics))
	for _, t := range topics {
		out = append(out, TrendingTopicResponse{
			Topic:           t.Topic,
			ClusterCount:    t.ClusterCount,
			ArticleCount:    t.ArticleCount,
			Sources:         t.Sources,
			RelatedKeywords: t.RelatedKeywords,
			Score:           t.Score,
			Trend:           string(t.Trend),
		})
	}
	api.Success(w, http.StatusOK, map[string]interface{}{
		"trending_topics": out,
		"days_back":       daysBack,
		"count":           len(out),
	})
}

type WeeklyDigestResponse struct {
	TotalClusters         int           `json:"total_clusters"`
	TotalArticles         int           `json:"total_articles"`
	TotalFacts            int           `json:"total_facts"`
	TotalMusings          int           `json:"total_musings"`
	AvgArticlesPerCluster int           `json:"avg_articles_per_cluster"`
	UniqueSources         int           `json:"unique_sources"`
	MostActiveSource      string        `json:"most_active_source,omitempty"`
	MostCoveredTopic      string        `json:"most_covered_topic,omitempty"`
	TopKeywords           []SourceCount `json:"top_keywords"`
	TopSources            []SourceCount `json:"top_sources"`
	Summary               string        `json:"summary"`
}

func (h *AnalyticsHandler) WeeklyDigest(w http.ResponseWriter, r *http.Request) {
	digest, err := h.digest.Weekly(r.Context())
	if err != nil {
		api.HandleError(w, err)
		return
	}
	api.Success(w, http.StatusOK, WeeklyDigestResponse{
		TotalClusters:         digest.TotalClusters,
		TotalArticles:         digest.TotalArticles,
		TotalFacts:            digest.TotalFacts,
		TotalMusings:          digest.TotalMusings,
		AvgArticlesPerCluster: digest.AvgArticlesPerCluster,
		UniqueSources:         digest.UniqueSources,
		MostActiveSource:      digest.MostActiveSource,
		MostCoveredTopic:      digest.MostCoveredTopic,
		TopKeywords:           namedCounts(digest.TopKeywords),
		TopSources:            namedCounts(digest.TopSources),
		Summary:               digest.Summary,
	})
}
