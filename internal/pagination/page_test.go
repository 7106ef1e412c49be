package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/infact-news/infact/internal/domain"
)

func TestNewWindow(t *testing.T) {
	tests := []struct {
		name    string
		limit   int
		skip    int
		bounds  Limits
		want    Window
		wantErr error
	}{
		{name: "default limit", limit: 0, skip: 0, bounds: ArticleLimits, want: Window{Limit: 20, Skip: 0}},
		{name: "explicit limit", limit: 50, skip: 10, bounds: ArticleLimits, want: Window{Limit: 50, Skip: 10}},
		{name: "article max", limit: 200, skip: 0, bounds: ArticleLimits, want: Window{Limit: 200, Skip: 0}},
		{name: "article over max", limit: 201, skip: 0, bounds: ArticleLimits, wantErr: domain.ErrInvalidLimit},
		{name: "cluster max", limit: 100, skip: 0, bounds: ClusterLimits, want: Window{Limit: 100, Skip: 0}},
		{name: "cluster over max", limit: 101, skip: 0, bounds: ClusterLimits, wantErr: domain.ErrInvalidLimit},
		{name: "negative limit", limit: -1, skip: 0, bounds: ClusterLimits, wantErr: domain.ErrInvalidLimit},
		{name: "negative skip", limit: 20, skip: -5, bounds: ArticleLimits, wantErr: domain.ErrInvalidSkip},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewWindow(tt.limit, tt.skip, tt.bounds)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewPageFlags(t *testing.T) {
	tests := []struct {
		name     string
		limit    int
		skip     int
		total    int64
		hasNext  bool
		hasPrev  bool
	}{
		{name: "first page with more", limit: 20, skip: 0, total: 50, hasNext: true, hasPrev: false},
		{name: "middle page", limit: 20, skip: 20, total: 50, hasNext: true, hasPrev: true},
		{name: "last page", limit: 20, skip: 40, total: 50, hasNext: false, hasPrev: true},
		{name: "exact boundary", limit: 20, skip: 0, total: 20, hasNext: false, hasPrev: false},
		{name: "empty collection", limit: 20, skip: 0, total: 0, hasNext: false, hasPrev: false},
		{name: "skip past end", limit: 20, skip: 100, total: 50, hasNext: false, hasPrev: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPage(Window{Limit: tt.limit, Skip: tt.skip}, tt.total)
			assert.Equal(t, tt.hasNext, p.HasNext, "has_next")
			assert.Equal(t, tt.hasPrev, p.HasPrev, "has_prev")
			assert.Equal(t, tt.total, p.Total)
		})
	}
}
