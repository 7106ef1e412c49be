package repository

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/infact-news/infact/internal/domain"
)

func TestSortDoc(t *testing.T) {
	doc, err := SortDoc(EntityCluster, "updated_at", -1)
	require.NoError(t, err)
	assert.Equal(t, bson.D{{Key: "updated_at", Value: -1}}, doc)

	_, err = SortDoc(EntityCluster, "$updated_at", -1)
	assert.ErrorIs(t, err, domain.ErrInvalidSortFieldFormat)

	_, err = SortDoc(EntityArticle, "published_at", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidSortOrder)
}

func TestIDsInFilterSkipsMalformed(t *testing.T) {
	good := primitive.NewObjectID()
	filter := IDsInFilter([]string{good.Hex(), "bogus", ""})

	in := filter["_id"].(bson.M)["$in"].([]primitive.ObjectID)
	require.Len(t, in, 1)
	assert.Equal(t, good, in[0])
}

func TestRawIDsInFilterDropsEmpty(t *testing.T) {
	filter := RawIDsInFilter([]string{"abc", "", "def"})
	in := filter["_id"].(bson.M)["$in"].([]string)
	assert.Equal(t, []string{"abc", "def"}, in)
}

func TestDateRangeFilter(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	filter := DateRangeFilter("created_at", 7, now)

	cutoff := filter["created_at"].(bson.M)["$gte"].(time.Time)
	assert.Equal(t, now.AddDate(0, 0, -7), cutoff)
}

func TestCombine(t *testing.T) {
	a := bson.M{"x": 1}
	b := bson.M{"y": 2}

	assert.Equal(t, bson.M{}, Combine())
	assert.Equal(t, bson.M{}, Combine(bson.M{}, nil))
	// Single filter collapses, no $and wrapper.
	assert.Equal(t, a, Combine(a, bson.M{}))
	assert.Equal(t, bson.M{"$and": []bson.M{a, b}}, Combine(a, b))
}

func TestTextSearchFilterValidation(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		sources  []string
		keywords []string
		wantErr  error
	}{
		{name: "empty query", query: "", wantErr: domain.ErrEmptySearchQuery},
		{name: "whitespace query", query: "   ", wantErr: domain.ErrEmptySearchQuery},
		{name: "query too long", query: strings.Repeat("a", 501), wantErr: domain.ErrSearchQueryTooLong},
		{name: "too many sources", query: "climate", sources: make([]string, 21), wantErr: domain.ErrTooManySources},
		{name: "too many keywords", query: "climate", keywords: make([]string, 51), wantErr: domain.ErrTooManyKeywords},
		{name: "blank source entry", query: "climate", sources: []string{"bbc", " "}, wantErr: domain.ErrInvalidSourceFilter},
		{name: "blank keyword entry", query: "climate", keywords: []string{""}, wantErr: domain.ErrInvalidKeywordFilter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := TextSearchFilter(tt.query, tt.sources, tt.keywords)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTextSearchFilterShape(t *testing.T) {
	filter, err := TextSearchFilter("election", nil, nil)
	require.NoError(t, err)

	// Query alone collapses to the bare $or across the text fields.
	or, ok := filter["$or"].([]bson.M)
	require.True(t, ok, "expected bare $or, got %v", filter)
	assert.Len(t, or, len(textSearchFields))

	filter, err = TextSearchFilter("election", []string{"bbc"}, []string{"vote"})
	require.NoError(t, err)
	and, ok := filter["$and"].([]bson.M)
	require.True(t, ok)
	require.Len(t, and, 3)
	assert.Equal(t, bson.M{"sources": bson.M{"$in": []string{"bbc"}}}, and[1])
	assert.Equal(t, bson.M{"keywords": bson.M{"$in": []string{"vote"}}}, and[2])
}

func TestRegexEscape(t *testing.T) {
	assert.Equal(t, `a\.b\*c`, regexEscape("a.b*c"))
	assert.Equal(t, `\(covid\+19\)`, regexEscape("(covid+19)"))
	assert.Equal(t, "plain words", regexEscape("plain words"))
}
