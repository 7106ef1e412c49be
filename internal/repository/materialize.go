package repository

import (
	"fmt"
	"time"

	"github.com/infact-news/infact/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Materialization of store documents into API-facing entities. This file
// and the doc types below are the only code allowed to see the native
// envelope shapes (_id, BSON dates, mixed-representation id arrays).

// articleDoc mirrors one document of the news collection.
type articleDoc struct {
	ID          interface{} `bson:"_id,omitempty"`
	Title       string      `bson:"title,omitempty"`
	Content     string      `bson:"content,omitempty"`
	Source      string      `bson:"source,omitempty"`
	PublishedAt interface{} `bson:"published_at,omitempty"`
	URL         string      `bson:"url,omitempty"`
	ImageURL    string      `bson:"image_url,omitempty"`
	ExtractedAt time.Time   `bson:"extracted_at,omitempty"`
	ClusterID   interface{} `bson:"cluster_id,omitempty"`
}

// clusterDoc mirrors one document of the clusters collection. The
// article_ids array is decoded untyped because historical documents hold
// either ObjectIDs or raw hex strings.
type clusterDoc struct {
	ID                 interface{}    `bson:"_id,omitempty"`
	ClusterName        string         `bson:"cluster_name,omitempty"`
	Facts              []string       `bson:"facts,omitempty"`
	Musings            []string       `bson:"musings,omitempty"`
	Keywords           []string       `bson:"keywords,omitempty"`
	Sources            []string       `bson:"sources,omitempty"`
	ArticleURLs        []string       `bson:"article_urls,omitempty"`
	ArticleIDs         []interface{}  `bson:"article_ids,omitempty"`
	GeneratedArticle   string         `bson:"generated_article,omitempty"`
	FactualSummary     string         `bson:"factual_summary,omitempty"`
	ContextualAnalysis string         `bson:"contextual_analysis,omitempty"`
	Context            string         `bson:"context,omitempty"`
	Background         string         `bson:"background,omitempty"`
	ImageURL           string         `bson:"image_url,omitempty"`
	ArticlesCount      int            `bson:"articles_count,omitempty"`
	SourceCounts       map[string]int `bson:"source_counts,omitempty"`
	SimilarityScores   []float64      `bson:"similarity_scores,omitempty"`
	Embedding          []float64      `bson:"embedding,omitempty"`
	CreatedAt          time.Time      `bson:"created_at,omitempty"`
	UpdatedAt          time.Time      `bson:"updated_at,omitempty"`
}

func materializeArticle(doc *articleDoc) *domain.Article {
	return &domain.Article{
		ID:          EncodeID(doc.ID),
		Title:       doc.Title,
		Content:     doc.Content,
		Source:      doc.Source,
		PublishedAt: stringifyDate(doc.PublishedAt),
		URL:         doc.URL,
		ImageURL:    doc.ImageURL,
		ExtractedAt: doc.ExtractedAt,
		ClusterID:   EncodeID(doc.ClusterID),
	}
}

func materializeCluster(doc *clusterDoc) *domain.Cluster {
	ids := make([]string, 0, len(doc.ArticleIDs))
	for _, raw := range doc.ArticleIDs {
		if id := EncodeID(raw); id != "" {
			ids = append(ids, id)
		}
	}
	return &domain.Cluster{
		ID:                 EncodeID(doc.ID),
		ClusterName:        doc.ClusterName,
		Facts:              doc.Facts,
		Musings:            doc.Musings,
		Keywords:           doc.Keywords,
		Sources:            doc.Sources,
		ArticleURLs:        doc.ArticleURLs,
		ArticleIDs:         ids,
		GeneratedArticle:   doc.GeneratedArticle,
		FactualSummary:     doc.FactualSummary,
		ContextualAnalysis: doc.ContextualAnalysis,
		Context:            doc.Context,
		Background:         doc.Background,
		ImageURL:           doc.ImageURL,
		ArticlesCount:      doc.ArticlesCount,
		SourceCounts:       doc.SourceCounts,
		SimilarityScores:   doc.SimilarityScores,
		Embedding:          doc.Embedding,
		CreatedAt:          doc.CreatedAt,
		UpdatedAt:          doc.UpdatedAt,
	}
}

// stringifyDate renders whatever the store holds for a date field as an
// ISO-8601 string. Older documents store strings, newer ones BSON dates.
func stringifyDate(raw interface{}) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return v
	case time.Time:
		return v.UTC().Format(time.RFC3339)
	case primitive.DateTime:
		return v.Time().UTC().Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// docFromArticle builds the insert document for a new article.
func docFromArticle(a *domain.Article) interface{} {
	doc := map[string]interface{}{
		"extracted_at": a.ExtractedAt,
	}
	if a.Title != "" {
		doc["title"] = a.Title
	}
	if a.Content != "" {
		doc["content"] = a.Content
	}
	if a.Source != "" {
		doc["source"] = a.Source
	}
	if a.PublishedAt != "" {
		doc["published_at"] = a.PublishedAt
	}
	if a.URL != "" {
		doc["url"] = a.URL
	}
	if a.ImageURL != "" {
		doc["image_url"] = a.ImageURL
	}
	return doc
}
