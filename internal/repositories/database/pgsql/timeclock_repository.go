package pgsql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/buildbooks/construction_gl/internal/core/domain"
	portsrepo "github.com/buildbooks/construction_gl/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTimeclockRepository struct {
	BaseRepository
}

// newPgxTimeclockRepository creates a new repository for per-day labor aggregates.
func newPgxTimeclockRepository(pool *pgxpool.Pool) portsrepo.TimeclockRepositoryFacade {
	return &PgxTimeclockRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.TimeclockRepositoryFacade = (*PgxTimeclockRepository)(nil)

// ListDays retrieves priced per-day labor aggregates in a date range.
func (r *PgxTimeclockRepository) ListDays(ctx context.Context, companyID string, from, to time.Time) ([]domain.TimeclockDay, error) {
	query := `
		SELECT company_id, employee_id, work_date, hours, labor_cost, project_id
		FROM timeclock_days
		WHERE company_id = $1 AND work_date >= $2 AND work_date <= $3
		ORDER BY work_date, employee_id;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list timeclock days for company %s: %w", companyID, err)
	}
	defer rows.Close()

	var days []domain.TimeclockDay
	for rows.Next() {
		var d domain.TimeclockDay
		var projectID sql.NullString
		if err := rows.Scan(&d.CompanyID, &d.EmployeeID, &d.WorkDate, &d.Hours, &d.LaborCost, &projectID); err != nil {
			return nil, fmt.Errorf("failed to scan timeclock row: %w", err)
		}
		d.ProjectID = projectID.String
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating timeclock rows: %w", err)
	}
	return days, nil
}

// SaveDay upserts one employee-day aggregate. Reprocessed clock events replace
// the prior totals for that day.
func (r *PgxTimeclockRepository) SaveDay(ctx context.Context, day domain.TimeclockDay) error {
	query := `
		INSERT INTO timeclock_days (company_id, employee_id, work_date, hours, labor_cost, project_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (company_id, employee_id, work_date)
		DO UPDATE SET hours = EXCLUDED.hours, labor_cost = EXCLUDED.labor_cost, project_id = EXCLUDED.project_id;
	`
	var projectID sql.NullString
	if day.ProjectID != "" {
		projectID = sql.NullString{String: day.ProjectID, Valid: true}
	}
	_, err := r.Pool.Exec(ctx, query, day.CompanyID, day.EmployeeID, day.WorkDate, day.Hours, day.LaborCost, projectID)
	if err != nil {
		return fmt.Errorf("failed to save timeclock day for employee %s: %w", day.EmployeeID, err)
	}
	return nil
}
