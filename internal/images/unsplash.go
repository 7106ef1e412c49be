// Package images resolves a representative image for a cluster, first
// from its own articles and then from Unsplash search.
package images

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/infact-news/infact/internal/domain"
)

const unsplashBaseURL = "https://api.unsplash.com"

// Photo credits carrying these markers are wire-service imagery the
// product is not licensed to republish.
var blockedIndicators = []string{"france24", "france 24", "afp", "agence france"}

type photoUser struct {
	Username string `json:"username"`
	Name     string `json:"name"`
}

type photo struct {
	Description    string            `json:"description"`
	AltDescription string            `json:"alt_description"`
	User           photoUser         `json:"user"`
	URLs           map[string]string `json:"urls"`
}

type searchResponse struct {
	Results []photo `json:"results"`
}

// Service searches Unsplash for cluster imagery.
type Service struct {
	accessKey  string
	baseURL    string
	httpClient *http.Client
}

// NewService creates a new image Service instance.
func NewService(accessKey string) *Service {
	return &Service{
		accessKey:  accessKey,
		baseURL:    unsplashBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// ForCluster resolves an image URL for a cluster: an article's own image
// wins when present and not blocked, otherwise the cluster name is used
// as an Unsplash query. Returns "" when nothing suitable is found;
// missing imagery is not an error.
func (s *Service) ForCluster(ctx context.Context, articles []*domain.Article, clusterName string) string {
	for _, a := range articles {
		if a.ImageURL != "" && !containsBlocked(a.ImageURL) {
			return a.ImageURL
		}
	}
	if clusterName == "" {
		return ""
	}
	query := strings.NewReplacer("_", " ", "-", " ").Replace(clusterName)
	imageURL, err := s.Search(ctx, query, 4)
	if err != nil {
		return ""
	}
	return imageURL
}

// Search returns the first suitable image URL for a query. Results with
// blocked credits are skipped; per-page is doubled so filtering still
// leaves candidates.
func (s *Service) Search(ctx context.Context, query string, perPage int) (string, error) {
	if perPage <= 0 {
		perPage = 4
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("per_page", strconv.Itoa(perPage*2))
	params.Set("content_filter", "high")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/search/photos?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to build image search request: %w", err)
	}
	req.Header.Set("Authorization", "Client-ID "+s.accessKey)
	req.Header.Set("Accept-Version", "v1")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to search images: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("image search returned status %d", resp.StatusCode)
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to decode image search response: %w", err)
	}

	for _, p := range payload.Results {
		if !isBlocked(&p) {
			if u := p.URLs["regular"]; u != "" {
				return u, nil
			}
		}
	}
	return "", nil
}

func isBlocked(p *photo) bool {
	return containsBlocked(p.User.Username) ||
		containsBlocked(p.User.Name) ||
		containsBlocked(p.Description) ||
		containsBlocked(p.AltDescription)
}

func containsBlocked(s string) bool {
	s = strings.ToLower(s)
	for _, indicator := range blockedIndicators {
		if strings.Contains(s, indicator) {
			return true
		}
	}
	return false
}
