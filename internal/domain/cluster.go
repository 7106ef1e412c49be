package domain

import "time"

// Cluster is a group of semantically related articles produced by the
// external processing pipeline. This core only reads, filters, sorts,
// paginates, and deletes clusters; it never mutates cluster content.
//
// ArticleIDs is referential: a cluster lists its articles, it does not
// own them. Every ID crossing the API boundary is the 24-character hex
// form; the store-native envelope never leaks out of the repository
// package.
type Cluster struct {
	ID                 string
	ClusterName        string
	Facts              []string
	Musings            []string
	Keywords           []string
	Sources            []string
	ArticleURLs        []string
	ArticleIDs         []string
	GeneratedArticle   string
	FactualSummary     string
	ContextualAnalysis string
	Context            string
	Background         string
	ImageURL           string
	ArticlesCount      int
	SourceCounts       map[string]int
	SimilarityScores   []float64
	Embedding          []float64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// CountMismatch reports whether articles_count disagrees with the number
// of listed article ids. Treated as a data-quality warning, not an error.
func (c *Cluster) CountMismatch() bool {
	return c.ArticlesCount != len(c.ArticleIDs)
}

// ClusterSummary is the key-metrics projection of a cluster.
type ClusterSummary struct {
	ClusterID             string
	ClusterName           string
	ArticlesCount         int
	FactsCount            int
	MusingsCount          int
	Keywords              []string
	Sources               []string
	SourceCounts          map[string]int
	ArticleURLsCount      int
	HasGeneratedArticle   bool
	HasFactualSummary     bool
	HasContextualAnalysis bool
	HasImage              bool
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// Summarize projects the cluster onto its summary form.
func (c *Cluster) Summarize() *ClusterSummary {
	keywords := c.Keywords
	if len(keywords) > 10 {
		keywords = keywords[:10]
	}
	return &ClusterSummary{
		ClusterID:             c.ID,
		ClusterName:           c.ClusterName,
		ArticlesCount:         c.ArticlesCount,
		FactsCount:            len(c.Facts),
		MusingsCount:          len(c.Musings),
		Keywords:              keywords,
		Sources:               c.Sources,
		SourceCounts:          c.SourceCounts,
		ArticleURLsCount:      len(c.ArticleURLs),
		HasGeneratedArticle:   c.GeneratedArticle != "",
		HasFactualSummary:     c.FactualSummary != "",
		HasContextualAnalysis: c.ContextualAnalysis != "",
		HasImage:              c.ImageURL != "",
		CreatedAt:             c.CreatedAt,
		UpdatedAt:             c.UpdatedAt,
	}
}
