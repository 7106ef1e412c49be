package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/infact-news/infact/internal/domain"
)

// ClusterIterator is a streaming cursor over clusters. Consumers must
// call Close on every exit path, including after a mid-stream error.
type ClusterIterator interface {
	Next(ctx context.Context) bool
	Cluster() *domain.Cluster
	Err() error
	Close(ctx context.Context) error
}

// ClusterStreamSource opens windowed cluster streams.
type ClusterStreamSource interface {
	StreamWindow(ctx context.Context, daysBack int, now time.Time) (ClusterIterator, error)
}

const (
	trendingTopN      = 20
	risingThreshold   = 5
	emergingThreshold = 3

	clusterWeight = 2.0
	articleWeight = 1.0
	sourceWeight  = 0.5
)

// topicAccumulator carries per-topic tallies during the streaming pass.
type topicAccumulator struct {
	clusterCount int
	articleCount int
	sources      map[string]bool
	related      map[string]bool
	order        int
}

// TrendingService computes trending topics over a cluster window
type TrendingService struct {
	source ClusterStreamSource
	now    func() time.Time
}

// NewTrendingService creates a new TrendingService instance
func NewTrendingService(source ClusterStreamSource) *TrendingService {
	return &TrendingService{source: source, now: time.Now}
}

// Analyze streams the clusters created within the trailing daysBack
// window, tallies topic activity per normalized keyword, and returns the
// top 20 topics by score. The whole analysis aborts on any stream error;
// no partial result is ever returned.
func (s *TrendingService) Analyze(ctx context.Context, daysBack, minArticles int) ([]domain.TrendingTopic, error) {
	if daysBack <= 0 {
		daysBack = 7
	}
	if minArticles < 0 {
		minArticles = 0
	}

	stream, err := s.source.StreamWindow(ctx, daysBack, s.now())
	if err != nil {
		return nil, err
	}
	defer stream.Close(ctx)

	topics := make(map[string]*topicAccumulator)
	var order []string

	for stream.Next(ctx) {
		cluster := stream.Cluster()
		keywords := normalizeKeywords(cluster.Keywords)
		for _, topic := range keywords {
			acc, ok := topics[topic]
			if !ok {
				acc = &topicAccumulator{
					sources: make(map[string]bool),
					related: make(map[string]bool),
					order:   len(order),
				}
				topics[topic] = acc
				order = append(order, topic)
			}
			acc.clusterCount++
			acc.articleCount += cluster.ArticlesCount
			for _, src := range cluster.Sources {
				acc.sources[src] = true
			}
			for _, other := range keywords {
				if other != topic {
					acc.related[other] = true
				}
			}
		}
	}
	if err := stream.Err(); err != nil {
		return nil, err
	}

	results := make([]domain.TrendingTopic, 0, len(order))
	for _, topic := range order {
		acc := topics[topic]
		if acc.articleCount < minArticles {
			continue
		}
		score := clusterWeight*float64(acc.clusterCount) +
			articleWeight*float64(acc.articleCount) +
			sourceWeight*float64(len(acc.sources))
		results = append(results, domain.TrendingTopic{
			Topic:           topic,
			ClusterCount:    acc.clusterCount,
			ArticleCount:    acc.articleCount,
			Sources:         setToSlice(acc.sources),
			RelatedKeywords: setToSlice(acc.related),
			Score:           score,
			Trend:           trendLabel(acc.clusterCount),
		})
	}

	// Stable: ties keep first-encounter order from the stream.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > trendingTopN {
		results = results[:trendingTopN]
	}
	return results, nil
}

func trendLabel(clusterCount int) domain.TrendLabel {
	switch {
	case clusterCount >= risingThreshold:
		return domain.TrendRising
	case clusterCount >= emergingThreshold:
		return domain.TrendEmerging
	default:
		return domain.TrendStable
	}
}

// normalizeKeywords lowercases and trims, dropping blanks and in-cluster
// duplicates so one cluster counts at most once per topic.
func normalizeKeywords(keywords []string) []string {
	seen := make(map[string]bool, len(keywords))
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}

func setToSlice(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
