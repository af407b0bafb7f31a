package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/leadtrackhq/mini-crm/backend/internal/domain"
)

func (h *Handler) CreateFollowup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		LeadID       int64     `json:"lead_id" validate:"required"`
		FollowupDate time.Time `json:"followup_date" validate:"required"`
		Notes        *string   `json:"notes"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if _, err := h.store.GetLeadByID(req.LeadID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.notFound(w, r, "Lead not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	user := r.Context().Value(IdentityCtxKey).(*domain.User)

	// created_by always comes from the verified identity, never the body
	followup := &domain.Followup{
		LeadID:       req.LeadID,
		FollowupDate: req.FollowupDate,
		Notes:        req.Notes,
		CreatedBy:    user.ID,
	}

	if err := h.store.CreateFollowup(followup); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	followupsCreatedTotal.Inc()

	h.writeJSON(w, r, http.StatusCreated, followup)
}

func (h *Handler) ListFollowupsForLead(w http.ResponseWriter, r *http.Request) {
	leadIDParam := chi.URLParam(r, "leadId")
	leadID, err := strconv.ParseInt(leadIDParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, "Invalid lead id")
		return
	}

	followups, err := h.store.GetFollowupsByLead(leadID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, followups)
}
