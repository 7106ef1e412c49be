package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/infact-news/infact/internal/domain"
)

// SuccessResponse wraps successful API responses
type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse represents an error API response
type ErrorResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	ErrorCode string `json:"error_code"`
}

// JSON writes a JSON response with the given status code
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// Success writes a successful JSON response
func Success(w http.ResponseWriter, status int, data interface{}) {
	JSON(w, status, SuccessResponse{Success: true, Data: data})
}

// Error writes an error JSON response with a machine-readable code
func Error(w http.ResponseWriter, status int, message, code string) {
	JSON(w, status, ErrorResponse{Success: false, Message: message, ErrorCode: code})
}

// DomainErrorToHTTP maps domain error codes to HTTP status codes
func DomainErrorToHTTP(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var domainErr *domain.DomainError
	if !errors.As(err, &domainErr) {
		return http.StatusInternalServerError
	}

	switch domainErr.Code {
	case domain.ErrCodeInvalidLimit,
		domain.ErrCodeInvalidSkip,
		domain.ErrCodeInvalidSortField,
		domain.ErrCodeInvalidSortFieldFormat,
		domain.ErrCodeInvalidSortOrder,
		domain.ErrCodeInvalidClusterIDLength,
		domain.ErrCodeInvalidClusterIDFormat,
		domain.ErrCodeInvalidObjectID,
		domain.ErrCodeEmptySearchQuery,
		domain.ErrCodeSearchQueryTooLong,
		domain.ErrCodeTooManySources,
		domain.ErrCodeTooManyKeywords,
		domain.ErrCodeInvalidSourceFilter,
		domain.ErrCodeInvalidKeywordFilter,
		domain.ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case domain.ErrCodeArticleNotFound,
		domain.ErrCodeClusterNotFound:
		return http.StatusNotFound
	case domain.ErrCodeServiceUnavailable:
		return http.StatusServiceUnavailable
	case domain.ErrCodeInvalidResponseFormat,
		domain.ErrCodeProcessingFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// HandleError writes an appropriate error response based on the error type
func HandleError(w http.ResponseWriter, err error) {
	status := DomainErrorToHTTP(err)

	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		Error(w, status, domainErr.Message, domainErr.Code)
		return
	}
	Error(w, status, err.Error(), domain.ErrCodeInternalError)
}
