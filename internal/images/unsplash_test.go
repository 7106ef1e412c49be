package images

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/infact-news/infact/internal/domain"
)

func TestForClusterPrefersArticleImage(t *testing.T) {
	svc := NewService("key")

	got := svc.ForCluster(context.Background(), []*domain.Article{
		{ImageURL: "https://cdn.france24.com/pic.jpg"},
		{ImageURL: "https://images.example.com/pic.jpg"},
	}, "storm")
	assert.Equal(t, "https://images.example.com/pic.jpg", got)
}

func TestSearchSkipsBlockedCredits(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Client-ID key", r.Header.Get("Authorization"))
		assert.Equal(t, "8", r.URL.Query().Get("per_page"))
		w.Write([]byte(`{"results":[
			{"user":{"username":"afp_photos","name":"AFP"},"urls":{"regular":"https://u/blocked.jpg"}},
			{"user":{"username":"jane","name":"Jane"},"urls":{"regular":"https://u/ok.jpg"}}
		]}`))
	}))
	defer srv.Close()

	svc := NewService("key")
	svc.baseURL = srv.URL

	got, err := svc.Search(context.Background(), "storm", 4)
	require.NoError(t, err)
	assert.Equal(t, "https://u/ok.jpg", got)
}

func TestSearchNoSuitableResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[{"user":{"name":"Agence France Presse"},"urls":{"regular":"https://u/x.jpg"}}]}`))
	}))
	defer srv.Close()

	svc := NewService("key")
	svc.baseURL = srv.URL

	got, err := svc.Search(context.Background(), "storm", 4)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestForClusterQueryCleansName(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	svc := NewService("key")
	svc.baseURL = srv.URL

	svc.ForCluster(context.Background(), nil, "middle_east-summit")
	assert.Equal(t, "middle east summit", gotQuery)
}
