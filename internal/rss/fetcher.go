// Package rss pulls articles out of RSS feeds for the shared ingestion
// path.
package rss

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/infact-news/infact/internal/domain"
)

// Outlet names for domains whose feed metadata is unreliable.
var domainNames = map[string]string{
	"france24.com":       "FRANCE24",
	"aljazeera.com":      "Al Jazeera",
	"reuters.com":        "Reuters",
	"bbc.co.uk":          "BBC",
	"bbc.com":            "BBC",
	"cnn.com":            "CNN",
	"rt.com":             "RT",
	"cgtn.com":           "CGTN",
	"dw.com":             "Deutsche Welle",
	"theguardian.com":    "The Guardian",
	"nytimes.com":        "The New York Times",
	"washingtonpost.com": "The Washington Post",
	"ap.org":             "Associated Press",
	"news.yahoo.com":     "Yahoo News",
	"nbcnews.com":        "NBC News",
	"abcnews.go.com":     "ABC News",
	"foxnews.com":        "Fox News",
	"economist.com":      "The Economist",
	"wsj.com":            "The Wall Street Journal",
	"bloomberg.com":      "Bloomberg",
	"cnbc.com":           "CNBC",
}

var feedTitleSuffix = regexp.MustCompile(`(?i)\s+(RSS|Feed|News|Headlines|Latest)\s*$`)

// Fetcher parses configured feeds into ingestion-ready articles.
type Fetcher struct {
	parser *gofeed.Parser
	now    func() time.Time
}

// NewFetcher creates a new Fetcher instance.
func NewFetcher() *Fetcher {
	return &Fetcher{parser: gofeed.NewParser(), now: time.Now}
}

// FetchAll pulls every feed and merges the results, deduplicating by
// normalized title within the batch. A feed that fails to parse is
// reported in errs but does not abort the others.
func (f *Fetcher) FetchAll(ctx context.Context, feedURLs []string, windowDays int) ([]*domain.Article, []error) {
	var articles []*domain.Article
	var errs []error
	seen := make(map[string]bool)

	for _, feedURL := range feedURLs {
		fetched, err := f.Fetch(ctx, feedURL, windowDays)
		if err != nil {
			errs = append(errs, fmt.Errorf("feed %s: %w", feedURL, err))
			continue
		}
		for _, a := range fetched {
			key := normalizeTitle(a.Title)
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			articles = append(articles, a)
		}
	}
	return articles, errs
}

// Fetch parses one feed and keeps the items published within the
// trailing windowDays. Items without a parsable date are kept; dropping
// them would silently lose articles from feeds with sloppy timestamps.
func (f *Fetcher) Fetch(ctx context.Context, feedURL string, windowDays int) ([]*domain.Article, error) {
	feed, err := f.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	source := sourceName(feed, feedURL)
	cutoff := f.now().AddDate(0, 0, -windowDays)
	extractedAt := f.now()

	var articles []*domain.Article
	for _, item := range feed.Items {
		published := ""
		if item.PublishedParsed != nil {
			if item.PublishedParsed.Before(cutoff) {
				continue
			}
			published = item.PublishedParsed.UTC().Format(time.RFC3339)
		}

		content := item.Content
		if content == "" {
			content = item.Description
		}

		imageURL := ""
		if item.Image != nil {
			imageURL = item.Image.URL
		}

		articles = append(articles, domain.NewArticle(
			strings.TrimSpace(item.Title),
			strings.TrimSpace(content),
			source,
			published,
			item.Link,
			imageURL,
			extractedAt,
		))
	}
	return articles, nil
}

// sourceName picks the outlet name: the domain mapping first, then the
// cleaned feed title, then the bare domain upper-cased.
func sourceName(feed *gofeed.Feed, feedURL string) string {
	domainPart := ""
	if u, err := url.Parse(feedURL); err == nil {
		domainPart = strings.ToLower(u.Hostname())
		domainPart = strings.TrimPrefix(domainPart, "www.")
	}
	if name, ok := domainNames[domainPart]; ok {
		return name
	}
	if feed != nil && feed.Title != "" {
		if title := strings.TrimSpace(feedTitleSuffix.ReplaceAllString(feed.Title, "")); title != "" {
			return title
		}
	}
	if i := strings.Index(domainPart, "."); i > 0 {
		return strings.ToUpper(domainPart[:i])
	}
	return strings.ToUpper(domainPart)
}

// normalizeTitle collapses case and whitespace for in-batch dedup.
func normalizeTitle(title string) string {
	return strings.Join(strings.Fields(strings.ToLower(title)), " ")
}
