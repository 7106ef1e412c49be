package repository

import (
	"strings"
	"time"

	"github.com/infact-news/infact/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Query construction. Every function here is pure: it assembles a filter
// or sort document from validated inputs, or returns a typed error. No
// function performs I/O.

const (
	maxSearchQueryLen = 500
	maxSourceFilters  = 20
	maxKeywordFilters = 50
)

// Fields scanned by free-text cluster search.
var textSearchFields = []string{
	"cluster_name",
	"generated_article",
	"factual_summary",
	"contextual_analysis",
	"context",
	"background",
	"facts",
	"musings",
	"keywords",
}

// SortDoc validates the field and order, then emits a single-key sort
// document.
func SortDoc(entity Entity, field string, order int) (bson.D, error) {
	name, err := ValidateSortField(entity, field)
	if err != nil {
		return nil, err
	}
	dir, err := ValidateSortOrder(order)
	if err != nil {
		return nil, err
	}
	return bson.D{{Key: name, Value: dir}}, nil
}

// IDFilter builds an equality filter over the native id envelope.
func IDFilter(id string) (bson.M, error) {
	oid, err := IDQuery(id)
	if err != nil {
		return nil, err
	}
	return bson.M{"_id": oid}, nil
}

// IDsInFilter builds a membership filter over the native id envelope,
// skipping malformed entries rather than failing the batch.
func IDsInFilter(ids []string) bson.M {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := IDQuery(id)
		if err != nil {
			continue
		}
		oids = append(oids, oid)
	}
	return bson.M{"_id": bson.M{"$in": oids}}
}

// RawIDsInFilter builds a membership filter over the raw string form of
// the ids. The store was populated with both representations over time;
// readers probe the native form first and fall back to this one (see
// ClusterRepository.ArticlesForCluster).
func RawIDsInFilter(ids []string) bson.M {
	raw := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" {
			raw = append(raw, id)
		}
	}
	return bson.M{"_id": bson.M{"$in": raw}}
}

// DateRangeFilter matches documents whose field is within the trailing
// daysBack window. The threshold is computed once, at call time, so a
// single request's stream sees one consistent cutoff.
func DateRangeFilter(field string, daysBack int, now time.Time) bson.M {
	cutoff := now.Add(-time.Duration(daysBack) * 24 * time.Hour)
	return bson.M{field: bson.M{"$gte": cutoff}}
}

// OlderThanFilter matches documents whose field predates the cutoff.
func OlderThanFilter(field string, cutoff time.Time) bson.M {
	return bson.M{field: bson.M{"$lt": cutoff}}
}

// MinCountFilter matches documents whose numeric field is at least min.
func MinCountFilter(field string, min int) bson.M {
	return bson.M{field: bson.M{"$gte": min}}
}

// Combine ANDs the non-empty filters, collapsing to the single filter
// when only one is present to avoid a redundant $and wrapper.
func Combine(filters ...bson.M) bson.M {
	nonEmpty := make([]bson.M, 0, len(filters))
	for _, f := range filters {
		if len(f) > 0 {
			nonEmpty = append(nonEmpty, f)
		}
	}
	switch len(nonEmpty) {
	case 0:
		return bson.M{}
	case 1:
		return nonEmpty[0]
	default:
		return bson.M{"$and": nonEmpty}
	}
}

// SourceRegexFilter matches a source name case-insensitively.
func SourceRegexFilter(field, source string) bson.M {
	return bson.M{field: bson.M{"$regex": primitive.Regex{Pattern: source, Options: "i"}}}
}

// TextSearchFilter builds a case-insensitive substring OR-match across
// the cluster free-text fields, intersected with optional source and
// keyword membership filters.
func TextSearchFilter(query string, sources, keywords []string) (bson.M, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrEmptySearchQuery
	}
	if len(query) > maxSearchQueryLen {
		return nil, domain.ErrSearchQueryTooLong
	}
	if len(sources) > maxSourceFilters {
		return nil, domain.ErrTooManySources
	}
	if len(keywords) > maxKeywordFilters {
		return nil, domain.ErrTooManyKeywords
	}
	for _, s := range sources {
		if strings.TrimSpace(s) == "" {
			return nil, domain.ErrInvalidSourceFilter
		}
	}
	for _, k := range keywords {
		if strings.TrimSpace(k) == "" {
			return nil, domain.ErrInvalidKeywordFilter
		}
	}

	re := primitive.Regex{Pattern: regexEscape(query), Options: "i"}
	or := make([]bson.M, 0, len(textSearchFields))
	for _, field := range textSearchFields {
		or = append(or, bson.M{field: bson.M{"$regex": re}})
	}

	filters := []bson.M{{"$or": or}}
	if len(sources) > 0 {
		filters = append(filters, bson.M{"sources": bson.M{"$in": sources}})
	}
	if len(keywords) > 0 {
		filters = append(filters, bson.M{"keywords": bson.M{"$in": keywords}})
	}
	return Combine(filters...), nil
}

// regexEscape neutralizes regex metacharacters so user queries match as
// literal substrings.
func regexEscape(s string) string {
	var b strings.Builder
	for _, c := range s {
		if strings.ContainsRune(`\.+*?()|[]{}^$`, c) {
			b.WriteByte('\\')
		}
		b.WriteRune(c)
	}
	return b.String()
}
