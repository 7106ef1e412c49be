package domain

import "fmt"

// DomainError represents a domain-specific error with a machine-readable code
type DomainError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new DomainError
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     nil,
	}
}

// NewDomainErrorWithCause creates a new DomainError with an underlying cause
func NewDomainErrorWithCause(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes exposed as the error_code field of API responses
const (
	ErrCodeInvalidLimit           = "INVALID_LIMIT"
	ErrCodeInvalidSkip            = "INVALID_SKIP"
	ErrCodeInvalidSortField       = "INVALID_SORT_FIELD"
	ErrCodeInvalidSortFieldFormat = "INVALID_SORT_FIELD_FORMAT"
	ErrCodeInvalidSortOrder       = "INVALID_SORT_ORDER"
	ErrCodeInvalidClusterIDLength = "INVALID_CLUSTER_ID_LENGTH"
	ErrCodeInvalidClusterIDFormat = "INVALID_CLUSTER_ID_FORMAT"
	ErrCodeInvalidObjectID        = "INVALID_OBJECT_ID"
	ErrCodeEmptySearchQuery       = "EMPTY_SEARCH_QUERY"
	ErrCodeSearchQueryTooLong     = "SEARCH_QUERY_TOO_LONG"
	ErrCodeTooManySources         = "TOO_MANY_SOURCES"
	ErrCodeTooManyKeywords        = "TOO_MANY_KEYWORDS"
	ErrCodeInvalidSourceFilter    = "INVALID_SOURCE_FILTER"
	ErrCodeInvalidKeywordFilter   = "INVALID_KEYWORD_FILTER"
	ErrCodeInvalidRequest         = "INVALID_REQUEST"

	ErrCodeArticleNotFound = "ARTICLE_NOT_FOUND"
	ErrCodeClusterNotFound = "CLUSTER_NOT_FOUND"

	ErrCodeServiceUnavailable    = "SERVICE_UNAVAILABLE"
	ErrCodeInvalidResponseFormat = "RESPONSE_FORMAT_ERROR"
	ErrCodeProcessingFailed      = "PROCESSING_FAILED"

	ErrCodeInternalError = "INTERNAL_ERROR"
)

// Validation errors
var (
	ErrInvalidLimit           = NewDomainError(ErrCodeInvalidLimit, "limit is out of range")
	ErrInvalidSkip            = NewDomainError(ErrCodeInvalidSkip, "skip must not be negative")
	ErrInvalidSortField       = NewDomainError(ErrCodeInvalidSortField, "sort field is not allowed")
	ErrInvalidSortFieldFormat = NewDomainError(ErrCodeInvalidSortFieldFormat, "sort field has an invalid format")
	ErrInvalidSortOrder       = NewDomainError(ErrCodeInvalidSortOrder, "sort order must be 1 or -1")
	ErrInvalidClusterIDLength = NewDomainError(ErrCodeInvalidClusterIDLength, "cluster id must be 24 characters")
	ErrInvalidClusterIDFormat = NewDomainError(ErrCodeInvalidClusterIDFormat, "cluster id must be hexadecimal")
	ErrInvalidObjectID        = NewDomainError(ErrCodeInvalidObjectID, "invalid object id")
	ErrEmptySearchQuery       = NewDomainError(ErrCodeEmptySearchQuery, "search query must not be empty")
	ErrSearchQueryTooLong     = NewDomainError(ErrCodeSearchQueryTooLong, "search query exceeds 500 characters")
	ErrTooManySources         = NewDomainError(ErrCodeTooManySources, "at most 20 source filters are allowed")
	ErrTooManyKeywords        = NewDomainError(ErrCodeTooManyKeywords, "at most 50 keyword filters are allowed")
	ErrInvalidSourceFilter    = NewDomainError(ErrCodeInvalidSourceFilter, "source filters must not be blank")
	ErrInvalidKeywordFilter   = NewDomainError(ErrCodeInvalidKeywordFilter, "keyword filters must not be blank")
)

// Not found errors
var (
	ErrArticleNotFound = NewDomainError(ErrCodeArticleNotFound, "article not found")
	ErrClusterNotFound = NewDomainError(ErrCodeClusterNotFound, "cluster not found")
)

// Upstream collaborator errors
var (
	ErrServiceUnavailable    = NewDomainError(ErrCodeServiceUnavailable, "processing service unreachable")
	ErrInvalidResponseFormat = NewDomainError(ErrCodeInvalidResponseFormat, "processing service returned an unparsable payload")
	ErrProcessingFailed      = NewDomainError(ErrCodeProcessingFailed, "processing service returned a non-success status")
)
