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

type PgxEquipmentRepository struct {
	BaseRepository
}

// newPgxEquipmentRepository creates a new repository for equipment records.
func newPgxEquipmentRepository(pool *pgxpool.Pool) portsrepo.EquipmentRepositoryFacade {
	return &PgxEquipmentRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.EquipmentRepositoryFacade = (*PgxEquipmentRepository)(nil)

const equipmentColumns = `equipment_id, company_id, name, cost, salvage_value, useful_life_months, in_service_date`

func scanEquipment(row pgx.Row) (domain.Equipment, error) {
	var e domain.Equipment
	err := row.Scan(
		&e.EquipmentID, &e.CompanyID, &e.Name,
		&e.Cost, &e.SalvageValue, &e.UsefulLifeMonths, &e.InServiceDate,
	)
	return e, err
}

// SaveEquipment inserts a new equipment record.
func (r *PgxEquipmentRepository) SaveEquipment(ctx context.Context, equipment domain.Equipment) error {
	query := `
		INSERT INTO equipment (` + equipmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		equipment.EquipmentID, equipment.CompanyID, equipment.Name,
		equipment.Cost, equipment.SalvageValue, equipment.UsefulLifeMonths, equipment.InServiceDate,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save equipment %s: %w", equipment.EquipmentID, err)
	}
	return nil
}

// FindEquipmentByID retrieves one equipment record.
func (r *PgxEquipmentRepository) FindEquipmentByID(ctx context.Context, equipmentID string) (*domain.Equipment, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipment WHERE equipment_id = $1;`

	eq, err := scanEquipment(r.Pool.QueryRow(ctx, query, equipmentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find equipment %s: %w", equipmentID, err)
	}
	return &eq, nil
}

// ListEquipment retrieves all equipment for a company.
func (r *PgxEquipmentRepository) ListEquipment(ctx context.Context, companyID string) ([]domain.Equipment, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipment WHERE company_id = $1 ORDER BY in_service_date;`

	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list equipment for company %s: %w", companyID, err)
	}
	defer rows.Close()

	var items []domain.Equipment
	for rows.Next() {
		eq, err := scanEquipment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan equipment row: %w", err)
		}
		items = append(items, eq)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating equipment rows: %w", err)
	}
	return items, nil
}
