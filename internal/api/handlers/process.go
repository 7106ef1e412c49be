package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/infact-news/infact/internal/api"
	"github.com/infact-news/infact/internal/domain"
	"github.com/infact-news/infact/internal/mlclient"
)

type Processor interface {
	Process(ctx context.Context, req *mlclient.ProcessRequest) (*mlclient.ProcessResponse, error)
}

type ProcessHandler struct {
	processor Processor
}

func NewProcessHandler(processor Processor) *ProcessHandler {
	return &ProcessHandler{processor: processor}
}

// Forward validates a processing batch and hands it to the ML pipeline.
// Shape validation failures never leave this process; upstream failures
// come back as typed errors.
func (h *ProcessHandler) Forward(w http.ResponseWriter, r *http.Request) {
	var req mlclient.ProcessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body", domain.ErrCodeInvalidRequest)
		return
	}

	resp, err := h.processor.Process(r.Context(), &req)
	if err != nil {
		api.HandleError(w, err)
		return
	}
	api.Success(w, http.StatusOK, resp)
}
