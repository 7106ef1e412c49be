package rss

import (
	"testing"

	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
)

func TestSourceName(t *testing.T) {
	tests := []struct {
		name    string
		feed    *gofeed.Feed
		feedURL string
		want    string
	}{
		{
			name:    "mapped domain wins over feed title",
			feed:    &gofeed.Feed{Title: "Top stories"},
			feedURL: "https://www.bbc.co.uk/news/rss.xml",
			want:    "BBC",
		},
		{
			name:    "mapped domain without www",
			feedURL: "https://france24.com/en/rss",
			want:    "FRANCE24",
		},
		{
			name:    "feed title stripped of suffix",
			feed:    &gofeed.Feed{Title: "The Register Headlines"},
			feedURL: "https://theregister.example/rss",
			want:    "The Register",
		},
		{
			name:    "falls back to domain",
			feedURL: "https://www.example.com/feed",
			want:    "EXAMPLE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sourceName(tt.feed, tt.feedURL))
		})
	}
}

func TestNormalizeTitle(t *testing.T) {
	assert.Equal(t, "breaking news today", normalizeTitle("  Breaking   NEWS\ttoday "))
	assert.Equal(t, "", normalizeTitle("   "))
	assert.Equal(t, normalizeTitle("Same Story"), normalizeTitle("same  story"))
}
