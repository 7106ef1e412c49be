package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/infact-news/infact/internal/domain"
)

const digestTopN = 10

// countTally accumulates occurrence counts while preserving first-seen
// order, so argmax and top-K ties resolve deterministically.
type countTally struct {
	counts map[string]int
	order  []string
}

func newCountTally() *countTally {
	return &countTally{counts: make(map[string]int)}
}

func (t *countTally) add(key string, n int) {
	if _, ok := t.counts[key]; !ok {
		t.order = append(t.order, key)
	}
	t.counts[key] += n
}

// argmax returns the first-seen key with the highest count.
func (t *countTally) argmax() string {
	best := ""
	bestCount := 0
	for _, key := range t.order {
		if t.counts[key] > bestCount {
			best = key
			bestCount = t.counts[key]
		}
	}
	return best
}

// top returns the n highest counts. Selection sort keeps ties in
// first-seen order; n stays small here.
func (t *countTally) top(n int) []domain.NamedCount {
	remaining := append([]string(nil), t.order...)
	out := make([]domain.NamedCount, 0, n)
	for len(out) < n && len(remaining) > 0 {
		bestIdx := 0
		for i := 1; i < len(remaining); i++ {
			if t.counts[remaining[i]] > t.counts[remaining[bestIdx]] {
				bestIdx = i
			}
		}
		out = append(out, domain.NamedCount{Name: remaining[bestIdx], Count: t.counts[remaining[bestIdx]]})
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}
	return out
}

// DigestService computes the weekly digest over the trailing 7-day
// cluster window
type DigestService struct {
	source ClusterStreamSource
	now    func() time.Time
}

// NewDigestService creates a new DigestService instance
func NewDigestService(source ClusterStreamSource) *DigestService {
	return &DigestService{source: source, now: time.Now}
}

// Weekly streams the trailing 7-day cluster window once, accumulating
// all digest statistics in a single pass. A stream error aborts the
// whole digest; no partial aggregate is returned.
func (s *DigestService) Weekly(ctx context.Context) (*domain.WeeklyDigest, error) {
	stream, err := s.source.StreamWindow(ctx, 7, s.now())
	if err != nil {
		return nil, err
	}
	defer stream.Close(ctx)

	digest := &domain.WeeklyDigest{}
	sources := newCountTally()
	keywords := newCountTally()

	for stream.Next(ctx) {
		cluster := stream.Cluster()
		digest.TotalClusters++
		digest.TotalArticles += cluster.ArticlesCount
		digest.TotalFacts += len(cluster.Facts)
		digest.TotalMusings += len(cluster.Musings)
		for _, src := range cluster.Sources {
			sources.add(src, 1)
		}
		for _, k := range normalizeKeywords(cluster.Keywords) {
			keywords.add(k, 1)
		}
	}
	if err := stream.Err(); err != nil {
		return nil, err
	}

	if digest.TotalClusters > 0 {
		digest.AvgArticlesPerCluster = digest.TotalArticles / digest.TotalClusters
	}
	digest.UniqueSources = len(sources.counts)
	digest.MostActiveSource = sources.argmax()
	digest.MostCoveredTopic = keywords.argmax()
	digest.TopSources = sources.top(digestTopN)
	digest.TopKeywords = keywords.top(digestTopN)
	digest.Summary = summarize(digest)
	return digest, nil
}

// summarize renders the digest statistics as one paragraph. It is a
// formatted projection of the numbers above, nothing here is computed
// independently.
func summarize(d *domain.WeeklyDigest) string {
	if d.TotalClusters == 0 {
		return "No story clusters were formed this week."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "This week %d story clusters were formed from %d articles across %d sources, averaging %d articles per cluster.",
		d.TotalClusters, d.TotalArticles, d.UniqueSources, d.AvgArticlesPerCluster)
	if d.MostCoveredTopic != "" {
		fmt.Fprintf(&b, " The most covered topic was %q", d.MostCoveredTopic)
		if d.MostActiveSource != "" {
			fmt.Fprintf(&b, ", with %s contributing the most coverage", d.MostActiveSource)
		}
		b.WriteString(".")
	}
	fmt.Fprintf(&b, " In total %d facts and %d musings were extracted.", d.TotalFacts, d.TotalMusings)
	return b.String()
}
