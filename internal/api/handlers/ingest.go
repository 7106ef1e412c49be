package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/infact-news/infact/internal/api"
	"github.com/infact-news/infact/internal/domain"
)

type IngestService interface {
	Ingest(ctx context.Context, articles []*domain.Article) (*domain.IngestReport, error)
}

type FeedFetcher interface {
	FetchAll(ctx context.Context, feedURLs []string, windowDays int) ([]*domain.Article, []error)
}

type HeadlineFetcher interface {
	TopHeadlines(ctx context.Context, category string, pageSize int) ([]*domain.Article, error)
}

type IngestHandler struct {
	ingest     IngestService
	feeds      FeedFetcher
	headlines  HeadlineFetcher
	feedURLs   []string
	windowDays int

	// background runs detached work; swapped out in tests.
	background func(func())
}

func NewIngestHandler(ingest IngestService, feeds FeedFetcher, headlines HeadlineFetcher, feedURLs []string, windowDays int) *IngestHandler {
	return &IngestHandler{
		ingest:     ingest,
		feeds:      feeds,
		headlines:  headlines,
		feedURLs:   feedURLs,
		windowDays: windowDays,
		background: func(fn func()) { go fn() },
	}
}

type ManualArticle struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	Source      string `json:"source"`
	PublishedAt string `json:"published_at"`
	URL         string `json:"url"`
	ImageURL    string `json:"image_url"`
}

type ManualFeedRequest struct {
	Articles []ManualArticle `json:"articles"`
}

type IngestReportResponse struct {
	TotalReceived int      `json:"total_received"`
	InsertedCount int      `json:"inserted_count"`
	SkippedCount  int      `json:"skipped_count"`
	Inserted      []string `json:"inserted,omitempty"`
	Skipped       []string `json:"skipped,omitempty"`
}

func reportToResponse(report *domain.IngestReport) IngestReportResponse {
	return IngestReportResponse{
		TotalReceived: report.TotalReceived,
		InsertedCount: report.InsertedCount,
		SkippedCount:  report.SkippedCount,
		Inserted:      report.Inserted,
		Skipped:       report.Skipped,
	}
}

func (h *IngestHandler) FeedManual(w http.ResponseWriter, r *http.Request) {
	var req ManualFeedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body", domain.ErrCodeInvalidRequest)
		return
	}
	if len(req.Articles) == 0 {
		api.Error(w, http.StatusBadRequest, "articles must not be empty", domain.ErrCodeInvalidRequest)
		return
	}

	now := time.Now()
	articles := make([]*domain.Article, 0, len(req.Articles))
	for _, a := range req.Articles {
		articles = append(articles, domain.NewArticle(a.Title, a.Content, a.Source, a.PublishedAt, a.URL, a.ImageURL, now))
	}

	report, err := h.ingest.Ingest(r.Context(), articles)
	if err != nil {
		api.HandleError(w, err)
		return
	}
	api.Success(w, http.StatusOK, reportToResponse(report))
}

// ExtractRSS acknowledges immediately and runs the fetch on a detached
// background task with its own context. Fetch and ingest errors reach
// the logs only; the triggering request has already been answered.
func (h *IngestHandler) ExtractRSS(w http.ResponseWriter, r *http.Request) {
	if len(h.feedURLs) == 0 {
		api.Error(w, http.StatusBadRequest, "no RSS feeds configured", domain.ErrCodeInvalidRequest)
		return
	}

	h.background(func() {
		ctx := context.Background()
		articles, errs := h.feeds.FetchAll(ctx, h.feedURLs, h.windowDays)
		for _, err := range errs {
			log.Printf("rss extraction: %v", err)
		}
		report, err := h.ingest.Ingest(ctx, articles)
		if err != nil {
			log.Printf("rss ingestion failed: %v", err)
			return
		}
		log.Printf("rss ingestion: received=%d inserted=%d skipped=%d", report.TotalReceived, report.InsertedCount, report.SkippedCount)
	})

	api.Success(w, http.StatusAccepted, map[string]interface{}{
		"message": "RSS extraction started",
		"feeds":   len(h.feedURLs),
	})
}

func (h *IngestHandler) FetchNewsAPI(w http.ResponseWriter, r *http.Request) {
	if h.headlines == nil {
		api.Error(w, http.StatusBadRequest, "news API is not configured", domain.ErrCodeInvalidRequest)
		return
	}

	articles, err := h.headlines.TopHeadlines(r.Context(), r.URL.Query().Get("category"), queryInt(r, "page_size", 0))
	if err != nil {
		api.HandleError(w, err)
		return
	}
	report, err := h.ingest.Ingest(r.Context(), articles)
	if err != nil {
		api.HandleError(w, err)
		return
	}
	api.Success(w, http.StatusOK, reportToResponse(report))
}
