// Package mlclient talks to the external ML pipeline that clusters raw
// articles and generates the synthesized cluster content. This side only
// validates request and response shapes; clustering itself is opaque.
package mlclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/infact-news/infact/internal/domain"
)

const (
	minClusters = 2
	maxClusters = 20

	defaultTimeout = 5 * time.Minute
)

// ArticlePayload is one raw article in a processing request.
type ArticlePayload struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	Source      string `json:"source"`
	PublishedAt string `json:"published_at"`
	URL         string `json:"url,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
}

// ProcessRequest is the batch sent to the pipeline.
type ProcessRequest struct {
	Articles    []ArticlePayload `json:"articles"`
	NumClusters int              `json:"num_clusters"`
}

// ClusterResult is one cluster document returned by the pipeline.
type ClusterResult struct {
	ClusterName      string    `json:"cluster_name"`
	Facts            []string  `json:"facts"`
	Musings          []string  `json:"musings"`
	Keywords         []string  `json:"keywords"`
	Sources          []string  `json:"sources"`
	ArticleURLs      []string  `json:"article_urls"`
	GeneratedArticle string    `json:"generated_article"`
	SimilarityScores []float64 `json:"similarity_scores"`
	ArticlesCount    int       `json:"articles_count"`
	ImageURL         string    `json:"image_url,omitempty"`
}

// ProcessResponse is the pipeline's reply envelope.
type ProcessResponse struct {
	Success  bool            `json:"success"`
	Message  string          `json:"message"`
	Clusters []ClusterResult `json:"clusters"`
}

// Client is an HTTP client for the ML pipeline.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new ML pipeline client.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// NewClientWithHTTP creates a client with a custom HTTP client (for testing).
func NewClientWithHTTP(baseURL string, httpClient *http.Client) *Client {
	return &Client{baseURL: baseURL, httpClient: httpClient}
}

// ValidateRequest checks the request shape before anything leaves the
// process. Validation failures never reach the wire.
func ValidateRequest(req *ProcessRequest) error {
	if len(req.Articles) == 0 {
		return domain.NewDomainError(domain.ErrCodeInvalidRequest, "articles must not be empty")
	}
	if req.NumClusters < minClusters || req.NumClusters > maxClusters {
		return domain.NewDomainError(domain.ErrCodeInvalidRequest, fmt.Sprintf("num_clusters must be between %d and %d", minClusters, maxClusters))
	}
	for i, a := range req.Articles {
		if a.Title == "" {
			return domain.NewDomainError(domain.ErrCodeInvalidRequest, fmt.Sprintf("article %d: title is required", i))
		}
		if a.Content == "" {
			return domain.NewDomainError(domain.ErrCodeInvalidRequest, fmt.Sprintf("article %d: content is required", i))
		}
		if a.Source == "" {
			return domain.NewDomainError(domain.ErrCodeInvalidRequest, fmt.Sprintf("article %d: source is required", i))
		}
		if !isISODate(a.PublishedAt) {
			return domain.NewDomainError(domain.ErrCodeInvalidRequest, fmt.Sprintf("article %d: published_at must be ISO-8601", i))
		}
	}
	return nil
}

// Process forwards a validated batch to the pipeline and validates the
// response shape before exposing it.
func (c *Client) Process(ctx context.Context, req *ProcessRequest) (*ProcessResponse, error) {
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode processing request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/process", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build processing request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeServiceUnavailable, "ML service is unreachable", err)
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeServiceUnavailable, "failed to read ML service response", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, domain.NewDomainError(domain.ErrCodeProcessingFailed, fmt.Sprintf("ML service returned status %d", httpResp.StatusCode))
	}

	var resp ProcessResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeInvalidResponseFormat, "ML service returned an unparsable payload", err)
	}
	if !resp.Success {
		return nil, domain.NewDomainError(domain.ErrCodeProcessingFailed, resp.Message)
	}
	return &resp, nil
}

// isISODate accepts the ISO-8601 shapes the pipeline understands: a bare
// date or a full RFC 3339 timestamp.
func isISODate(s string) bool {
	if s == "" {
		return false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}
