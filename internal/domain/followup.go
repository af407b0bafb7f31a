package domain

import (
	"time"
)

type Followup struct {
	ID           int64     `json:"id"`
	LeadID       int64     `json:"lead_id"`
	FollowupDate time.Time `json:"followup_date"`
	Notes        *string   `json:"notes"`
	CreatedBy    int64     `json:"created_by"`
}
