package repository

import (
	"strings"

	"github.com/infact-news/infact/internal/domain"
)

// Entity selects which allow-list applies to a sort or filter field.
type Entity string

const (
	EntityCluster Entity = "cluster"
	EntityArticle Entity = "article"
)

// Closed sets of sortable field names per entity. Sort fields arrive as
// free text from request parameters; anything outside these sets is
// rejected before it can reach a query document.
var sortableFields = map[Entity]map[string]bool{
	EntityCluster: {
		"created_at":     true,
		"updated_at":     true,
		"cluster_name":   true,
		"articles_count": true,
	},
	EntityArticle: {
		"published_at": true,
		"extracted_at": true,
		"title":        true,
		"source":       true,
	},
}

// ValidateSortField checks a requested sort field against the entity's
// allow-list. The operator-prefix check runs before the allow-list
// lookup: a field like "$where" must be rejected as malformed, not
// reported as merely unknown.
func ValidateSortField(entity Entity, field string) (string, error) {
	if strings.HasPrefix(field, "$") {
		return "", domain.ErrInvalidSortFieldFormat
	}
	allowed, ok := sortableFields[entity]
	if !ok || !allowed[field] {
		return "", domain.ErrInvalidSortField
	}
	return field, nil
}

// ValidateSortOrder accepts exactly 1 (ascending) or -1 (descending).
func ValidateSortOrder(order int) (int, error) {
	if order != 1 && order != -1 {
		return 0, domain.ErrInvalidSortOrder
	}
	return order, nil
}
