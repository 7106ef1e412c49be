package handlers

import (
	"context"
	"net/http"

	"github.com/infact-news/infact/internal/api"
	"github.com/infact-news/infact/internal/domain"
)

type StorePinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	store StorePinger
}

func NewHealthHandler(store StorePinger) *HealthHandler {
	return &HealthHandler{store: store}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		api.Error(w, http.StatusServiceUnavailable, "document store is unreachable", domain.ErrCodeServiceUnavailable)
		return
	}
	api.Success(w, http.StatusOK, map[string]string{"status": "healthy"})
}
