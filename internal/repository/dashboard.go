package repository

import (
	"context"
	"time"

	"github.com/leadtrackhq/mini-crm/backend/internal/domain"
)

func (r *Repository) GetDashboardStats() (*domain.DashboardStats, error) {
	countsQuery := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'Converted'),
			COUNT(*) FILTER (WHERE status = 'Lost')
		FROM leads
	`
	// statuses with no leads simply do not show up in the breakdown
	byStatusQuery := `
		SELECT status, COUNT(*)
		FROM leads
		GROUP BY status
		ORDER BY status
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	stats := &domain.DashboardStats{}
	dst := []any{&stats.TotalLeads, &stats.ConvertedLeads, &stats.LostLeads}
	if err := r.dbpool.QueryRowContext(ctx, countsQuery).Scan(dst...); err != nil {
		return nil, err
	}
	stats.ConversionRate = domain.ConversionRate(stats.ConvertedLeads, stats.TotalLeads)

	rows, err := r.dbpool.QueryContext(ctx, byStatusQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats.ByStatus = make([]domain.StatusCount, 0)
	for rows.Next() {
		sc := domain.StatusCount{}
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			return nil, err
		}
		stats.ByStatus = append(stats.ByStatus, sc)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}
