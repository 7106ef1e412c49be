package domain

// TrendLabel classifies how actively a topic is being covered.
type TrendLabel string

const (
	TrendRising   TrendLabel = "rising"
	TrendEmerging TrendLabel = "emerging"
	TrendStable   TrendLabel = "stable"
)

// TrendingTopic is one normalized keyword scored across a cluster window.
type TrendingTopic struct {
	Topic           string
	ClusterCount    int
	ArticleCount    int
	Sources         []string
	RelatedKeywords []string
	Score           float64
	Trend           TrendLabel
}

// NamedCount pairs a name with an occurrence count; used for top-K lists.
type NamedCount struct {
	Name  string
	Count int
}

// WeeklyDigest is a one-pass rollup of cluster statistics over the
// trailing seven-day window.
type WeeklyDigest struct {
	TotalClusters         int
	TotalArticles         int
	TotalFacts            int
	TotalMusings          int
	AvgArticlesPerCluster int
	UniqueSources         int
	MostActiveSource      string
	MostCoveredTopic      string
	TopKeywords           []NamedCount
	TopSources            []NamedCount
	Summary               string
}

// ArticleStats is the rollup returned by the article statistics endpoint.
type ArticleStats struct {
	TotalArticles  int64
	Sources        []NamedCount
	RecentArticles int64
}

// ClusterStats is the rollup returned by the cluster statistics endpoint.
type ClusterStats struct {
	TotalClusters       int64
	TotalArticles       int64
	RecentClusters      int64
	AverageClusterSize  float64
	ClustersBySource    []NamedCount
	TopKeywords         []NamedCount
	LargestClusterName  string
	LargestClusterCount int
}
