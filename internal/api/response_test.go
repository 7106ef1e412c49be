package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/infact-news/infact/internal/domain"
)

func TestDomainErrorToHTTP(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: http.StatusOK},
		{name: "validation", err: domain.ErrInvalidLimit, want: http.StatusBadRequest},
		{name: "sort format", err: domain.ErrInvalidSortFieldFormat, want: http.StatusBadRequest},
		{name: "article not found", err: domain.ErrArticleNotFound, want: http.StatusNotFound},
		{name: "cluster not found", err: domain.ErrClusterNotFound, want: http.StatusNotFound},
		{name: "service unavailable", err: domain.ErrServiceUnavailable, want: http.StatusServiceUnavailable},
		{name: "bad upstream payload", err: domain.ErrInvalidResponseFormat, want: http.StatusBadGateway},
		{name: "processing failed", err: domain.ErrProcessingFailed, want: http.StatusBadGateway},
		{name: "plain error", err: errors.New("boom"), want: http.StatusInternalServerError},
		{name: "wrapped domain error", err: wrap(domain.ErrClusterNotFound), want: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DomainErrorToHTTP(tt.err))
		})
	}
}

func wrap(err error) error {
	return errors.Join(errors.New("context"), err)
}

func TestHandleErrorEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, domain.ErrClusterNotFound)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "CLUSTER_NOT_FOUND", body.ErrorCode)
	assert.Equal(t, "cluster not found", body.Message)
}

func TestHandleErrorPlain(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, errors.New("store exploded"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "INTERNAL_ERROR", body.ErrorCode)
}

func TestSuccessEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, http.StatusOK, map[string]int{"n": 1})

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}
