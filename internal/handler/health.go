package handler

import "net/http"

type healthResponse struct {
	Status string `json:"status"`
}

// Health handles GET /health. Always 200: the endpoint reports process
// liveness, not store reachability.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}
