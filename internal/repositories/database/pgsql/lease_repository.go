package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/buildbooks/construction_gl/internal/apperrors"
	"github.com/buildbooks/construction_gl/internal/core/domain"
	portsrepo "github.com/buildbooks/construction_gl/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxLeaseRepository struct {
	BaseRepository
}

// newPgxLeaseRepository creates a new repository for lease records.
func newPgxLeaseRepository(pool *pgxpool.Pool) portsrepo.LeaseRepositoryFacade {
	return &PgxLeaseRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.LeaseRepositoryFacade = (*PgxLeaseRepository)(nil)

const leaseColumns = `lease_id, company_id, property_id, tenant_name, monthly_rent, start_date, end_date, auto_renew, paid_in_advance, active`

func scanLease(row pgx.Row) (domain.Lease, error) {
	var l domain.Lease
	err := row.Scan(
		&l.LeaseID, &l.CompanyID, &l.PropertyID, &l.TenantName,
		&l.MonthlyRent, &l.StartDate, &l.EndDate, &l.AutoRenew, &l.PaidInAdvance, &l.Active,
	)
	return l, err
}

// SaveLease inserts a new lease record.
func (r *PgxLeaseRepository) SaveLease(ctx context.Context, lease domain.Lease) error {
	query := `
		INSERT INTO leases (` + leaseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		lease.LeaseID, lease.CompanyID, lease.PropertyID, lease.TenantName,
		lease.MonthlyRent, lease.StartDate, lease.EndDate, lease.AutoRenew, lease.PaidInAdvance, lease.Active,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save lease %s: %w", lease.LeaseID, err)
	}
	return nil
}

// FindLeaseByID retrieves one lease.
func (r *PgxLeaseRepository) FindLeaseByID(ctx context.Context, leaseID string) (*domain.Lease, error) {
	query := `SELECT ` + leaseColumns + ` FROM leases WHERE lease_id = $1;`

	lease, err := scanLease(r.Pool.QueryRow(ctx, query, leaseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find lease %s: %w", leaseID, err)
	}
	return &lease, nil
}

// ListActiveLeases retrieves every active lease for a company.
func (r *PgxLeaseRepository) ListActiveLeases(ctx context.Context, companyID string) ([]domain.Lease, error) {
	query := `SELECT ` + leaseColumns + ` FROM leases WHERE company_id = $1 AND active ORDER BY start_date;`

	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leases for company %s: %w", companyID, err)
	}
	defer rows.Close()

	var leases []domain.Lease
	for rows.Next() {
		lease, err := scanLease(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lease row: %w", err)
		}
		leases = append(leases, lease)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lease rows: %w", err)
	}
	return leases, nil
}
