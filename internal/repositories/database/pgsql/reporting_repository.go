package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/buildbooks/construction_gl/internal/core/domain"
	portsrepo "github.com/buildbooks/construction_gl/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxReportingRepository struct {
	BaseRepository
}

// newPgxReportingRepository creates the repository behind the statement engine.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// trialBalanceSQL aggregates posted, non-voided activity per account. Accounts
// with no activity appear with zero totals so statements list the full chart.
const trialBalanceSQL = `
	SELECT a.account_id, a.number, a.name, a.account_type, a.sub_type, a.normal_balance,
	       COALESCE(SUM(pl.debit), 0) AS debit_total,
	       COALESCE(SUM(pl.credit), 0) AS credit_total
	FROM accounts a
	LEFT JOIN (
		SELECT l.account_id, l.debit, l.credit
		FROM journal_entry_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE e.status = 'POSTED'
		%s
	) pl ON pl.account_id = a.account_id
	WHERE a.company_id = $1
	GROUP BY a.account_id, a.number, a.name, a.account_type, a.sub_type, a.normal_balance
	ORDER BY a.number;
`

func (r *PgxReportingRepository) queryTrialBalance(ctx context.Context, query string, args ...interface{}) ([]domain.TrialBalanceRow, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query trial balance data: %w", err)
	}
	defer rows.Close()

	var result []domain.TrialBalanceRow
	for rows.Next() {
		var row domain.TrialBalanceRow
		if err := rows.Scan(&row.AccountID, &row.AccountNumber, &row.AccountName, &row.AccountType, &row.SubType, &row.NormalBalance, &row.Debit, &row.Credit); err != nil {
			return nil, fmt.Errorf("failed to scan trial balance row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trial balance rows: %w", err)
	}
	return result, nil
}

// GetTrialBalanceData aggregates debit/credit totals per account, optionally
// bounded by an as-of date.
func (r *PgxReportingRepository) GetTrialBalanceData(ctx context.Context, companyID string, asOf *time.Time) ([]domain.TrialBalanceRow, error) {
	if asOf == nil {
		return r.queryTrialBalance(ctx, fmt.Sprintf(trialBalanceSQL, ""), companyID)
	}
	return r.queryTrialBalance(ctx, fmt.Sprintf(trialBalanceSQL, "AND e.entry_date <= $2"), companyID, *asOf)
}

// GetTrialBalanceRange aggregates debit/credit totals per account over an
// entry-date range, for period statements.
func (r *PgxReportingRepository) GetTrialBalanceRange(ctx context.Context, companyID string, from, to time.Time) ([]domain.TrialBalanceRow, error) {
	return r.queryTrialBalance(ctx, fmt.Sprintf(trialBalanceSQL, "AND e.entry_date >= $2 AND e.entry_date <= $3"), companyID, from, to)
}

// GetAccountPostedBalance returns the normal-balance-signed posted balance of
// one account. An account with no posted activity yields zero.
func (r *PgxReportingRepository) GetAccountPostedBalance(ctx context.Context, accountID string, asOf *time.Time) (decimal.Decimal, error) {
	query := `
		SELECT a.normal_balance,
		       COALESCE(SUM(pl.debit), 0) AS debit_total,
		       COALESCE(SUM(pl.credit), 0) AS credit_total
		FROM accounts a
		LEFT JOIN (
			SELECT l.account_id, l.debit, l.credit
			FROM journal_entry_lines l
			JOIN journal_entries e ON e.entry_id = l.entry_id
			WHERE e.status = 'POSTED'
			  AND ($2::timestamptz IS NULL OR e.entry_date <= $2)
		) pl ON pl.account_id = a.account_id
		WHERE a.account_id = $1
		GROUP BY a.normal_balance;
	`
	var normal domain.NormalBalance
	var debit, credit decimal.Decimal
	err := r.Pool.QueryRow(ctx, query, accountID, asOf).Scan(&normal, &debit, &credit)
	if err != nil {
		if err == pgx.ErrNoRows {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("failed to query posted balance for account %s: %w", accountID, err)
	}
	if normal == domain.DebitNormal {
		return debit.Sub(credit), nil
	}
	return credit.Sub(debit), nil
}

// GetBankCashBalances sums the posted balances of cash and bank classified
// asset accounts for a company.
func (r *PgxReportingRepository) GetBankCashBalances(ctx context.Context, companyID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(l.debit), 0) - COALESCE(SUM(l.credit), 0)
		FROM journal_entry_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id AND e.status = 'POSTED'
		JOIN accounts a ON a.account_id = l.account_id
		WHERE a.company_id = $1
		  AND a.account_type = 'ASSET'
		  AND a.sub_type IN ('bank', 'cash');
	`
	var total decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, companyID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to query bank cash balances for company %s: %w", companyID, err)
	}
	return total, nil
}

// SumInvoiceTotals sums non-voided invoice subtotals and tax for the period,
// per invoice type. Feeds the statement fallback for ledgers with no posted
// activity.
func (r *PgxReportingRepository) SumInvoiceTotals(ctx context.Context, companyID string, invoiceType domain.InvoiceType, from, to time.Time) (subtotal, tax decimal.Decimal, err error) {
	query := `
		SELECT COALESCE(SUM(subtotal), 0), COALESCE(SUM(tax_amount), 0)
		FROM invoices
		WHERE company_id = $1
		  AND type = $2
		  AND NOT voided
		  AND invoice_date >= $3 AND invoice_date <= $4;
	`
	if err := r.Pool.QueryRow(ctx, query, companyID, invoiceType, from, to).Scan(&subtotal, &tax); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to sum invoice totals for company %s: %w", companyID, err)
	}
	return subtotal, tax, nil
}
