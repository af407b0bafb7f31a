package repository

import (
	"context"
	"time"

	"github.com/leadtrackhq/mini-crm/backend/internal/domain"
)

func (r *Repository) CreateFollowup(followup *domain.Followup) error {
	query := `
		INSERT INTO followups (lead_id, followup_date, notes, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{followup.LeadID, followup.FollowupDate, followup.Notes, followup.CreatedBy}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&followup.ID); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetFollowupsByLead(leadID int64) ([]*domain.Followup, error) {
	query := `
		SELECT id, lead_id, followup_date, notes, created_by
		FROM followups
		WHERE lead_id = $1
		ORDER BY followup_date DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	followups := make([]*domain.Followup, 0)
	for rows.Next() {
		followup := &domain.Followup{}
		dst := []any{&followup.ID, &followup.LeadID, &followup.FollowupDate, &followup.Notes, &followup.CreatedBy}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		followups = append(followups, followup)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return followups, nil
}
