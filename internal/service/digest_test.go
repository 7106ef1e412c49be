package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/infact-news/infact/internal/domain"
)

func digestCluster(name string, articles int, facts, musings, keywords, sources []string) *domain.Cluster {
	return &domain.Cluster{
		ClusterName:   name,
		ArticlesCount: articles,
		Facts:         facts,
		Musings:       musings,
		Keywords:      keywords,
		Sources:       sources,
	}
}

func TestWeeklyTotals(t *testing.T) {
	src := &fakeStreamSource{stream: &fakeClusterStream{clusters: []*domain.Cluster{
		digestCluster("a", 5, []string{"f1", "f2"}, []string{"m1"}, []string{"climate"}, []string{"bbc", "reuters"}),
		digestCluster("b", 2, []string{"f3"}, nil, []string{"climate", "energy"}, []string{"bbc"}),
	}}}
	svc := NewDigestService(src)

	d, err := svc.Weekly(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, d.TotalClusters)
	assert.Equal(t, 7, d.TotalArticles)
	assert.Equal(t, 3, d.TotalFacts)
	assert.Equal(t, 1, d.TotalMusings)
	// floor(7/2)
	assert.Equal(t, 3, d.AvgArticlesPerCluster)
	assert.Equal(t, 2, d.UniqueSources)
	assert.Equal(t, "bbc", d.MostActiveSource)
	assert.Equal(t, "climate", d.MostCoveredTopic)
	assert.Equal(t, 7, src.days)
	assert.True(t, src.stream.closed)
}

// Per-source counts sum to the number of article-source occurrences, not
// to the cluster total: one cluster may list several sources.
func TestWeeklySourceCountSum(t *testing.T) {
	src := &fakeStreamSource{stream: &fakeClusterStream{clusters: []*domain.Cluster{
		digestCluster("a", 1, nil, nil, nil, []string{"x", "y", "z"}),
		digestCluster("b", 1, nil, nil, nil, []string{"x"}),
	}}}
	svc := NewDigestService(src)

	d, err := svc.Weekly(context.Background())
	require.NoError(t, err)

	sum := 0
	for _, s := range d.TopSources {
		sum += s.Count
	}
	assert.Equal(t, 4, sum)
}

func TestWeeklyEmptyWindow(t *testing.T) {
	svc := NewDigestService(&fakeStreamSource{stream: &fakeClusterStream{}})

	d, err := svc.Weekly(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, d.TotalClusters)
	assert.Equal(t, 0, d.AvgArticlesPerCluster, "no division by zero")
	assert.Empty(t, d.MostActiveSource)
	assert.Equal(t, "No story clusters were formed this week.", d.Summary)
}

func TestWeeklyTopTenStable(t *testing.T) {
	var clusters []*domain.Cluster
	// 12 keywords with equal counts: the top list holds the first ten in
	// encounter order.
	for i := 0; i < 12; i++ {
		clusters = append(clusters, digestCluster("c", 1, nil, nil, []string{fmt.Sprintf("kw-%02d", i)}, nil))
	}
	svc := NewDigestService(&fakeStreamSource{stream: &fakeClusterStream{clusters: clusters}})

	d, err := svc.Weekly(context.Background())
	require.NoError(t, err)
	require.Len(t, d.TopKeywords, 10)
	for i, kw := range d.TopKeywords {
		assert.Equal(t, fmt.Sprintf("kw-%02d", i), kw.Name)
	}
}

func TestWeeklyArgmaxFirstSeenWins(t *testing.T) {
	src := &fakeStreamSource{stream: &fakeClusterStream{clusters: []*domain.Cluster{
		digestCluster("a", 1, nil, nil, []string{"alpha"}, []string{"first"}),
		digestCluster("b", 1, nil, nil, []string{"beta"}, []string{"second"}),
	}}}
	svc := NewDigestService(src)

	d, err := svc.Weekly(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "first", d.MostActiveSource)
	assert.Equal(t, "alpha", d.MostCoveredTopic)
}

func TestWeeklyStreamErrorAborts(t *testing.T) {
	streamErr := errors.New("cursor lost")
	stream := &fakeClusterStream{
		clusters: []*domain.Cluster{digestCluster("a", 1, nil, nil, nil, nil)},
		failAt:   1,
		failErr:  streamErr,
	}
	stream.clusters = append(stream.clusters, digestCluster("b", 1, nil, nil, nil, nil))
	svc := NewDigestService(&fakeStreamSource{stream: stream})

	d, err := svc.Weekly(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, streamErr)
	assert.Nil(t, d, "no partial digest on stream error")
	assert.True(t, stream.closed)
}

func TestWeeklySummaryInterpolatesTotals(t *testing.T) {
	src := &fakeStreamSource{stream: &fakeClusterStream{clusters: []*domain.Cluster{
		digestCluster("a", 4, []string{"f"}, []string{"m"}, []string{"trade"}, []string{"ft"}),
	}}}
	svc := NewDigestService(src)

	d, err := svc.Weekly(context.Background())
	require.NoError(t, err)
	assert.Contains(t, d.Summary, "1 story clusters")
	assert.Contains(t, d.Summary, "4 articles")
	assert.Contains(t, d.Summary, `"trade"`)
	assert.Contains(t, d.Summary, "ft")
}
