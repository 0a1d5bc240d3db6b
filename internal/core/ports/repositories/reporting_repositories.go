package repositories

import (
	"context"
	"time"

	"github.com/buildbooks/construction_gl/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingRepository defines the aggregate reads behind the statement engine.
// All queries consider posted, non-voided entries only.
type ReportingRepository interface {
	// GetTrialBalanceData aggregates debit/credit totals per account,
	// optionally bounded by an as-of date (nil means all activity).
	GetTrialBalanceData(ctx context.Context, companyID string, asOf *time.Time) ([]domain.TrialBalanceRow, error)

	// GetTrialBalanceRange aggregates debit/credit totals per account over an
	// entry-date range, for period statements.
	GetTrialBalanceRange(ctx context.Context, companyID string, from, to time.Time) ([]domain.TrialBalanceRow, error)

	// GetAccountPostedBalance returns the normal-balance-signed posted balance
	// of one account, optionally bounded by an as-of date.
	GetAccountPostedBalance(ctx context.Context, accountID string, asOf *time.Time) (decimal.Decimal, error)

	// GetBankCashBalances sums the posted balances of cash/bank classified
	// accounts for a company.
	GetBankCashBalances(ctx context.Context, companyID string) (decimal.Decimal, error)

	// SumInvoiceTotals sums non-voided invoice subtotals and tax for the
	// period, per invoice type. Used as the statement fallback when no posted
	// ledger activity exists.
	SumInvoiceTotals(ctx context.Context, companyID string, invoiceType domain.InvoiceType, from, to time.Time) (subtotal, tax decimal.Decimal, err error)
}
