package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/infact-news/infact/internal/api/handlers"
	"github.com/infact-news/infact/internal/api/middleware"
)

type RouterConfig struct {
	HealthHandler    *handlers.HealthHandler
	ArticleHandler   *handlers.ArticleHandler
	ClusterHandler   *handlers.ClusterHandler
	AnalyticsHandler *handlers.AnalyticsHandler
	IngestHandler    *handlers.IngestHandler
	ProcessHandler   *handlers.ProcessHandler
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	const maxBodyBytes int64 = 5 * 1024 * 1024

	r.Use(middleware.RequestID)
	r.Use(middleware.SentryMiddleware)
	r.Use(middleware.AccessLog)
	r.Use(middleware.MaxBodyBytes(maxBodyBytes))

	r.Get("/health", cfg.HealthHandler.Health)

	r.Route("/articles", func(r chi.Router) {
		r.Get("/", cfg.ArticleHandler.List)
		r.Get("/recent", cfg.ArticleHandler.Recent)
		r.Get("/stats", cfg.ArticleHandler.Stats)
		r.Get("/{id}", cfg.ArticleHandler.Get)
		r.Delete("/{id}", cfg.ArticleHandler.Delete)
	})

	r.Route("/clusters", func(r chi.Router) {
		r.Get("/recent", cfg.ClusterHandler.Recent)
		r.Get("/stats", cfg.ClusterHandler.Stats)
		r.Get("/by-source", cfg.ClusterHandler.BySource)
		r.Post("/search", cfg.ClusterHandler.Search)
		r.Post("/cleanup", cfg.ClusterHandler.Cleanup)
		r.Get("/{id}", cfg.ClusterHandler.Get)
		r.Delete("/{id}", cfg.ClusterHandler.Delete)
		r.Get("/{id}/summary", cfg.ClusterHandler.Summary)
		r.Get("/{id}/articles", cfg.ClusterHandler.Articles)
	})

	r.Route("/analytics", func(r chi.Router) {
		r.Get("/trending-topics", cfg.AnalyticsHandler.TrendingTopics)
		r.Get("/weekly-digest", cfg.AnalyticsHandler.WeeklyDigest)
	})

	r.Route("/news", func(r chi.Router) {
		r.Post("/feed-manual", cfg.IngestHandler.FeedManual)
		r.Post("/extract-rss", cfg.IngestHandler.ExtractRSS)
		r.Post("/fetch-newsapi", cfg.IngestHandler.FetchNewsAPI)
	})

	r.Post("/process/forward", cfg.ProcessHandler.Forward)

	return r
}
