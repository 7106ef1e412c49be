package domain

import (
	"strings"
	"time"
)

// Article is a single news article as stored in the news collection.
// All fields except ExtractedAt are optional; absence is a valid state,
// not an error. Identity for dedup purposes is the (title, url) pair.
type Article struct {
	ID          string
	Title       string
	Content     string
	Source      string
	PublishedAt string
	URL         string
	ImageURL    string
	ExtractedAt time.Time
	ClusterID   string
}

// HasDedupKey reports whether the article carries at least one of the
// fields used for duplicate detection. An article with neither title nor
// url matches nothing and is deliberately treated as not-a-duplicate.
func (a *Article) HasDedupKey() bool {
	return strings.TrimSpace(a.Title) != "" || strings.TrimSpace(a.URL) != ""
}

// NewArticle builds an ingestion-ready article with ExtractedAt stamped.
func NewArticle(title, content, source, publishedAt, url, imageURL string, extractedAt time.Time) *Article {
	return &Article{
		Title:       title,
		Content:     content,
		Source:      source,
		PublishedAt: publishedAt,
		URL:         url,
		ImageURL:    imageURL,
		ExtractedAt: extractedAt,
	}
}

// IngestReport summarizes one ingestion batch.
type IngestReport struct {
	TotalReceived int
	InsertedCount int
	SkippedCount  int
	Inserted      []string
	Skipped       []string
}
