package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/leadtrackhq/mini-crm/backend/internal/domain"
)

func (r *Repository) CreateLead(lead *domain.Lead) error {
	query := `
		INSERT INTO leads (customer_name, email, phone, status, assigned_to)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{lead.CustomerName, lead.Email, lead.Phone, lead.Status, lead.AssignedTo}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&lead.ID, &lead.CreatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetLeadByID(id int64) (*domain.Lead, error) {
	query := `
		SELECT customer_name, email, phone, status, assigned_to, created_at
		FROM leads WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	lead := &domain.Lead{
		ID: id,
	}

	dst := []any{&lead.CustomerName, &lead.Email, &lead.Phone, &lead.Status, &lead.AssignedTo, &lead.CreatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return lead, nil
}

// ListLeads returns the requested page joined with a minimal assignee
// projection, plus the total number of rows matching the filter.
func (r *Repository) ListLeads(filter domain.LeadFilter) ([]*domain.Lead, int64, error) {
	countQuery := `
		SELECT COUNT(*)
		FROM leads
		WHERE ($1 = '' OR status = $1)
		  AND ($2 = '' OR customer_name ILIKE $3 OR email ILIKE $3 OR phone ILIKE $3)
	`
	pageQuery := `
		SELECT l.id, l.customer_name, l.email, l.phone, l.status, l.assigned_to, l.created_at,
		       u.id, u.name, u.email
		FROM leads l
		LEFT JOIN users u ON u.id = l.assigned_to
		WHERE ($1 = '' OR l.status = $1)
		  AND ($2 = '' OR l.customer_name ILIKE $3 OR l.email ILIKE $3 OR l.phone ILIKE $3)
		ORDER BY l.created_at DESC, l.id DESC
		LIMIT $4 OFFSET $5
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	pattern := searchPattern(filter.Search)

	var total int64
	if err := r.dbpool.QueryRowContext(ctx, countQuery, filter.Status, filter.Search, pattern).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.dbpool.QueryContext(ctx, pageQuery, filter.Status, filter.Search, pattern, filter.Limit, filter.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	leads := make([]*domain.Lead, 0)
	for rows.Next() {
		lead := &domain.Lead{}
		var assigneeID sql.NullInt64
		var assigneeName, assigneeEmail sql.NullString

		dst := []any{
			&lead.ID, &lead.CustomerName, &lead.Email, &lead.Phone, &lead.Status, &lead.AssignedTo, &lead.CreatedAt,
			&assigneeID, &assigneeName, &assigneeEmail,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, 0, err
		}

		if assigneeID.Valid {
			lead.Assignee = &domain.UserSummary{
				ID:    assigneeID.Int64,
				Name:  assigneeName.String,
				Email: assigneeEmail.String,
			}
		}
		leads = append(leads, lead)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return leads, total, nil
}

func (r *Repository) UpdateLead(lead *domain.Lead) error {
	query := `
		UPDATE leads
		SET
			customer_name = $1,
			email = $2,
			phone = $3,
			status = $4,
			assigned_to = $5
		WHERE id = $6
		RETURNING created_at
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{lead.CustomerName, lead.Email, lead.Phone, lead.Status, lead.AssignedTo, lead.ID}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&lead.CreatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteLead(id int64) error {
	query := `
		DELETE FROM leads WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}

// searchPattern wraps a user-supplied term in ILIKE wildcards. The term
// itself is escaped so `%`, `_` and `\` match literally.
func searchPattern(term string) string {
	return "%" + escapeLike(term) + "%"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}
