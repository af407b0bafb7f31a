package handler

import (
	"net/http"
)

func (h *Handler) Liveness(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, struct {
		Message string `json:"message"`
	}{Message: "Mini CRM API is running"})
}
