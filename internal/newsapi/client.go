// Package newsapi pulls headlines from the News API aggregator for the
// shared ingestion path.
package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/infact-news/infact/internal/domain"
)

const baseURL = "https://newsapi.org/v2"

type apiSource struct {
	Name string `json:"name"`
}

type apiArticle struct {
	Source      apiSource `json:"source"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Content     string    `json:"content"`
	URL         string    `json:"url"`
	URLToImage  string    `json:"urlToImage"`
	PublishedAt string    `json:"publishedAt"`
}

type apiResponse struct {
	Status   string       `json:"status"`
	Message  string       `json:"message"`
	Articles []apiArticle `json:"articles"`
}

// Client is a thin HTTP client for the News API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	now        func() time.Time
}

// NewClient creates a new News API client.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		now:        time.Now,
	}
}

// TopHeadlines fetches up to pageSize current headlines for a category
// and converts them into ingestion-ready articles. Entries the
// aggregator has redacted (removed title or url) are dropped.
func (c *Client) TopHeadlines(ctx context.Context, category string, pageSize int) ([]*domain.Article, error) {
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 50
	}

	params := url.Values{}
	params.Set("language", "en")
	params.Set("pageSize", strconv.Itoa(pageSize))
	if category != "" {
		params.Set("category", category)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/top-headlines?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build headlines request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch headlines: %w", err)
	}
	defer resp.Body.Close()

	var payload apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode headlines response: %w", err)
	}
	if payload.Status != "ok" {
		return nil, fmt.Errorf("headlines request failed: %s", payload.Message)
	}

	extractedAt := c.now()
	articles := make([]*domain.Article, 0, len(payload.Articles))
	for _, a := range payload.Articles {
		if a.Title == "" || a.Title == "[Removed]" || a.URL == "" {
			continue
		}
		content := a.Content
		if content == "" {
			content = a.Description
		}
		articles = append(articles, domain.NewArticle(
			a.Title,
			content,
			a.Source.Name,
			a.PublishedAt,
			a.URL,
			a.URLToImage,
			extractedAt,
		))
	}
	return articles, nil
}
