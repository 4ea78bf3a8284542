package api

import (
	"net/http"

	"github.com/InterNutter/instants/internal/http/handler/common"
)

type HealthResponse struct {
	Status string `json:"status"`
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	common.WriteJSON(w, r, http.StatusOK, HealthResponse{Status: "ok"})
}
