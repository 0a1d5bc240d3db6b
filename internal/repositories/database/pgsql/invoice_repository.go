package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/buildbooks/construction_gl/internal/apperrors"
	"github.com/buildbooks/construction_gl/internal/core/domain"
	portsrepo "github.com/buildbooks/construction_gl/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxInvoiceRepository struct {
	BaseRepository
}

// newPgxInvoiceRepository creates a new repository for upstream invoice records.
func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

const invoiceColumns = `invoice_id, company_id, invoice_number, type, invoice_date, due_date, subtotal, tax_amount, total, balance_due, retainage_amount, gl_account_id, project_id, voided`

func scanInvoice(row pgx.Row) (domain.Invoice, error) {
	var inv domain.Invoice
	var glAccountID, projectID sql.NullString
	err := row.Scan(
		&inv.InvoiceID, &inv.CompanyID, &inv.InvoiceNumber, &inv.Type,
		&inv.InvoiceDate, &inv.DueDate,
		&inv.Subtotal, &inv.TaxAmount, &inv.Total, &inv.BalanceDue, &inv.RetainageAmount,
		&glAccountID, &projectID, &inv.Voided,
	)
	if err != nil {
		return domain.Invoice{}, err
	}
	inv.GLAccountID = glAccountID.String
	inv.ProjectID = projectID.String
	return inv, nil
}

// SaveInvoice inserts a new invoice record.
func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	var glAccountID, projectID sql.NullString
	if invoice.GLAccountID != "" {
		glAccountID = sql.NullString{String: invoice.GLAccountID, Valid: true}
	}
	if invoice.ProjectID != "" {
		projectID = sql.NullString{String: invoice.ProjectID, Valid: true}
	}

	_, err := r.Pool.Exec(ctx, query,
		invoice.InvoiceID, invoice.CompanyID, invoice.InvoiceNumber, invoice.Type,
		invoice.InvoiceDate, invoice.DueDate,
		invoice.Subtotal, invoice.TaxAmount, invoice.Total, invoice.BalanceDue, invoice.RetainageAmount,
		glAccountID, projectID, invoice.Voided,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save invoice %s: %w", invoice.InvoiceID, err)
	}
	return nil
}

// ApplyPaymentToInvoice reduces an invoice's balance due, flooring at zero.
func (r *PgxInvoiceRepository) ApplyPaymentToInvoice(ctx context.Context, invoiceID string, amount decimal.Decimal) error {
	query := `
		UPDATE invoices
		SET balance_due = GREATEST(balance_due - $2, 0)
		WHERE invoice_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, invoiceID, amount)
	if err != nil {
		return fmt.Errorf("failed to apply payment to invoice %s: %w", invoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindInvoiceByID retrieves one invoice.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_id = $1;`

	inv, err := scanInvoice(r.Pool.QueryRow(ctx, query, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find invoice %s: %w", invoiceID, err)
	}
	return &inv, nil
}

// ListOpenReceivables retrieves non-voided receivable invoices with a positive
// balance due and an invoice date on or before the as-of date.
func (r *PgxInvoiceRepository) ListOpenReceivables(ctx context.Context, companyID string, asOf time.Time) ([]domain.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE company_id = $1
		  AND type = 'RECEIVABLE'
		  AND NOT voided
		  AND balance_due > 0
		  AND invoice_date <= $2
		ORDER BY due_date;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to list open receivables for company %s: %w", companyID, err)
	}
	defer rows.Close()

	var invoices []domain.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice row: %w", err)
		}
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoice rows: %w", err)
	}
	return invoices, nil
}
