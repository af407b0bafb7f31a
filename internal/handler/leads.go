package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/leadtrackhq/mini-crm/backend/internal/domain"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int64 `json:"totalPages"`
}

func (h *Handler) CreateLead(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CustomerName string  `json:"customer_name" validate:"required"`
		Email        *string `json:"email" validate:"omitempty,email"`
		Phone        *string `json:"phone"`
		Status       string  `json:"status"`
		AssignedTo   *int64  `json:"assigned_to"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// omitted status defaults, but an explicitly bad one is an error
	status := domain.LeadStatusNew
	if req.Status != "" {
		status = domain.LeadStatus(req.Status)
		if !status.IsValid() {
			h.badRequest(w, r, errors.New("Invalid status"))
			return
		}
	}

	lead := &domain.Lead{
		CustomerName: req.CustomerName,
		Email:        req.Email,
		Phone:        req.Phone,
		Status:       status,
		AssignedTo:   req.AssignedTo,
	}

	if err := h.store.CreateLead(lead); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	leadsCreatedTotal.Inc()
	h.invalidateDashboardCache(r)

	h.writeJSON(w, r, http.StatusCreated, lead)
}

func (h *Handler) ListLeads(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page := parsePositiveInt(query.Get("page"), defaultPage)
	limit := parsePositiveInt(query.Get("limit"), defaultLimit)

	status := domain.LeadStatus(query.Get("status"))
	if status != "" && !status.IsValid() {
		h.badRequest(w, r, errors.New("Invalid status"))
		return
	}

	filter := domain.LeadFilter{
		Status: status,
		Search: query.Get("search"),
		Page:   page,
		Limit:  limit,
	}

	leads, total, err := h.store.ListLeads(filter)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, struct {
		Data       []*domain.Lead `json:"data"`
		Pagination Pagination     `json:"pagination"`
	}{
		Data: leads,
		Pagination: Pagination{
			Total:      total,
			Page:       page,
			Limit:      limit,
			TotalPages: totalPages(total, limit),
		},
	})
}

func (h *Handler) UpdateLead(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CustomerName domain.Optional[string] `json:"customer_name"`
		Email        domain.Optional[string] `json:"email"`
		Phone        domain.Optional[string] `json:"phone"`
		Status       domain.Optional[string] `json:"status"`
		AssignedTo   domain.Optional[int64]  `json:"assigned_to"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	lead := r.Context().Value(LeadCtxKey).(*domain.Lead)

	// absent fields keep their value; an explicit null clears the nullable
	// ones and is rejected for the required ones
	if req.CustomerName.Present {
		if req.CustomerName.Value == nil || *req.CustomerName.Value == "" {
			h.badRequest(w, r, errors.New("Customer name cannot be empty"))
			return
		}
		lead.CustomerName = *req.CustomerName.Value
	}
	if req.Email.Present {
		lead.Email = req.Email.Value
	}
	if req.Phone.Present {
		lead.Phone = req.Phone.Value
	}
	if req.Status.Present {
		if req.Status.Value == nil || !domain.LeadStatus(*req.Status.Value).IsValid() {
			h.badRequest(w, r, errors.New("Invalid status"))
			return
		}
		lead.Status = domain.LeadStatus(*req.Status.Value)
	}
	if req.AssignedTo.Present {
		lead.AssignedTo = req.AssignedTo.Value
	}

	if err := h.store.UpdateLead(lead); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.invalidateDashboardCache(r)

	h.writeJSON(w, r, http.StatusOK, lead)
}

func (h *Handler) DeleteLead(w http.ResponseWriter, r *http.Request) {
	lead := r.Context().Value(LeadCtxKey).(*domain.Lead)

	if err := h.store.DeleteLead(lead.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.invalidateDashboardCache(r)

	h.writeJSON(w, r, http.StatusOK, struct {
		Message string `json:"message"`
	}{Message: "Lead deleted successfully"})
}

func totalPages(total int64, limit int) int64 {
	if total == 0 {
		return 0
	}
	return (total + int64(limit) - 1) / int64(limit)
}

func parsePositiveInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
