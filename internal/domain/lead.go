package domain

import (
	"math"
	"time"
)

type LeadStatus string

const (
	LeadStatusNew        LeadStatus = "New"
	LeadStatusInProgress LeadStatus = "In Progress"
	LeadStatusConverted  LeadStatus = "Converted"
	LeadStatusLost       LeadStatus = "Lost"
)

func (s LeadStatus) IsValid() bool {
	switch s {
	case LeadStatusNew, LeadStatusInProgress, LeadStatusConverted, LeadStatusLost:
		return true
	}
	return false
}

type Lead struct {
	ID           int64        `json:"id"`
	CustomerName string       `json:"customer_name"`
	Email        *string      `json:"email"`
	Phone        *string      `json:"phone"`
	Status       LeadStatus   `json:"status"`
	AssignedTo   *int64       `json:"assigned_to"`
	Assignee     *UserSummary `json:"assignee,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}

// LeadFilter narrows a lead listing. Status must already be a valid enum
// member or empty; Search is the raw user term, escaped by the repository.
type LeadFilter struct {
	Status LeadStatus
	Search string
	Page   int
	Limit  int
}

func (f LeadFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

type StatusCount struct {
	Status LeadStatus `json:"status"`
	Count  int64      `json:"count"`
}

type DashboardStats struct {
	TotalLeads     int64         `json:"totalLeads"`
	ConvertedLeads int64         `json:"convertedLeads"`
	LostLeads      int64         `json:"lostLeads"`
	ConversionRate float64       `json:"conversionRate"`
	ByStatus       []StatusCount `json:"byStatus"`
}

// ConversionRate returns converted/total as a percentage rounded half-up to
// one decimal place. A total of zero yields 0.
func ConversionRate(converted, total int64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(converted)/float64(total)*1000) / 10
}
