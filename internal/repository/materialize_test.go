package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/infact-news/infact/internal/domain"
)

func TestStringifyDate(t *testing.T) {
	ts := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		raw  interface{}
		want string
	}{
		{name: "nil", raw: nil, want: ""},
		{name: "string passes through", raw: "2025-03-01T09:30:00Z", want: "2025-03-01T09:30:00Z"},
		{name: "time value", raw: ts, want: "2025-03-01T09:30:00Z"},
		{name: "bson date", raw: primitive.NewDateTimeFromTime(ts), want: "2025-03-01T09:30:00Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stringifyDate(tt.raw))
		})
	}
}

func TestMaterializeClusterMixedIDs(t *testing.T) {
	oid := primitive.NewObjectID()
	doc := &clusterDoc{
		ID:          primitive.NewObjectID(),
		ClusterName: "storm coverage",
		ArticleIDs:  []interface{}{oid, "656f1f77bcf86cd799439011", nil},
	}

	c := materializeCluster(doc)
	assert.Equal(t, []string{oid.Hex(), "656f1f77bcf86cd799439011"}, c.ArticleIDs)
	assert.Equal(t, "storm coverage", c.ClusterName)
}

func TestDocFromArticleOmitsEmpty(t *testing.T) {
	now := time.Now()
	doc := docFromArticle(&domain.Article{
		Title:       "Flood warnings issued",
		URL:         "https://example.com/floods",
		ExtractedAt: now,
	}).(map[string]interface{})

	assert.Equal(t, "Flood warnings issued", doc["title"])
	assert.Equal(t, "https://example.com/floods", doc["url"])
	assert.Equal(t, now, doc["extracted_at"])
	_, ok := doc["content"]
	assert.False(t, ok, "empty content must be omitted")
	_, ok = doc["source"]
	assert.False(t, ok, "empty source must be omitted")
}
