package services

import (
	"context"
	"time"

	"github.com/buildbooks/construction_gl/internal/core/domain"
	"github.com/buildbooks/construction_gl/internal/dto"
	"github.com/shopspring/decimal"
)

// AccountSvcFacade exposes chart-of-accounts operations.
type AccountSvcFacade interface {
	// FindOrCreate looks an account up by number and creates it with the
	// given attributes when absent.
	FindOrCreate(ctx context.Context, companyID, number, name string, accountType domain.AccountType, subType string, normal domain.NormalBalance, description string) (*domain.Account, error)

	// GetAccountsByIDs retrieves accounts keyed by id.
	GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListActive lists a company's active accounts ordered by number.
	ListActive(ctx context.Context, companyID string) ([]domain.Account, error)
}

// ResolverSvcFacade maps semantic account roles to concrete account ids.
type ResolverSvcFacade interface {
	// Resolve fetches the company's active accounts once and resolves every
	// known role. Roles that cannot be matched or auto-created are absent
	// from the returned map.
	Resolve(ctx context.Context, companyID string) (domain.AccountMap, error)
}

// JournalSvcFacade exposes journal entry lifecycle operations.
type JournalSvcFacade interface {
	// CreateDraft persists a header and lines with no balance check.
	CreateDraft(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error)

	// CreatePosted validates the double-entry invariant and persists the
	// entry directly in POSTED status.
	CreatePosted(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error)

	// Post transitions a draft entry to posted. Posting a non-draft entry is
	// a silent no-op.
	Post(ctx context.Context, entryID string, postingUserID string) error

	// Void marks an entry voided. Voided entries are excluded from all
	// aggregation but never deleted.
	Void(ctx context.Context, entryID string, voidingUserID string) error

	// BulkCreatePosted validates and batch-inserts many posted entries,
	// counting unbalanced entries and failed chunks as errors.
	BulkCreatePosted(ctx context.Context, reqs []dto.CreateEntryRequest, creatorUserID string) (*domain.BulkPostResult, error)

	// GetEntry retrieves a header with its lines.
	GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, []domain.JournalEntryLine, error)

	// GetEntryByReference retrieves the non-voided entry booked under a
	// generator reference, with its lines.
	GetEntryByReference(ctx context.Context, companyID string, ref domain.EntryReference) (*domain.JournalEntry, []domain.JournalEntryLine, error)

	// ListEntries retrieves a page of entries for a company.
	ListEntries(ctx context.Context, companyID string, limit, offset int) ([]domain.JournalEntry, error)
}

// PostingSvcFacade builds and posts entries for upstream business events.
type PostingSvcFacade interface {
	// PostInvoice books an invoice-created event. Returns nil entry (no
	// error) when required roles cannot be resolved.
	PostInvoice(ctx context.Context, invoice domain.Invoice, userID string) (*domain.JournalEntry, error)

	// PostPayment books a payment-recorded event against its invoice.
	PostPayment(ctx context.Context, payment domain.Payment, userID string) (*domain.JournalEntry, error)

	// PostPayrollRun books a payroll-run aggregate.
	PostPayrollRun(ctx context.Context, run domain.PayrollRunSummary, userID string) (*domain.JournalEntry, error)
}

// ProducerSvcFacade registers the upstream records the generators consume.
type ProducerSvcFacade interface {
	// RegisterLease validates and stores a lease, assigning an id when absent.
	RegisterLease(ctx context.Context, lease domain.Lease) (*domain.Lease, error)

	// RegisterEquipment validates and stores an equipment item.
	RegisterEquipment(ctx context.Context, equipment domain.Equipment) (*domain.Equipment, error)
}

// RecurringSvcFacade is the idempotent periodic entry generator.
type RecurringSvcFacade interface {
	// GenerateRentAccruals books one month of rent accrual per active lease
	// per enumerated month, idempotently.
	GenerateRentAccruals(ctx context.Context, companyID string, asOf time.Time, userID string) (*domain.GenerationResult, error)

	// GenerateRentRecognition releases one month of deferred rental revenue
	// into income per prepaid lease per enumerated month, idempotently.
	GenerateRentRecognition(ctx context.Context, companyID string, asOf time.Time, userID string) (*domain.GenerationResult, error)

	// GenerateDepreciation books straight-line monthly depreciation per
	// equipment item, never future-dated.
	GenerateDepreciation(ctx context.Context, companyID string, asOf time.Time, userID string) (*domain.GenerationResult, error)

	// GenerateLaborAccruals books one accrual per (employee, day) from
	// timeclock aggregates, upserting on re-clock-out.
	GenerateLaborAccruals(ctx context.Context, companyID string, from, to time.Time, userID string) (*domain.GenerationResult, error)

	// UpsertLaborAccrual re-books a single employee day from a fresh
	// clock-out aggregate, replacing any existing entry for that day.
	UpsertLaborAccrual(ctx context.Context, day domain.TimeclockDay, userID string) (*domain.JournalEntry, error)

	// AdjustBadDebtAllowance books the delta between the required reserve per
	// the aging analysis and the posted allowance balance.
	AdjustBadDebtAllowance(ctx context.Context, companyID string, asOf time.Time, userID string) (*domain.JournalEntry, error)
}

// StatementSvcFacade derives financial statements from posted activity.
type StatementSvcFacade interface {
	TrialBalance(ctx context.Context, companyID string, asOf *time.Time) ([]domain.TrialBalanceRow, error)
	IncomeStatement(ctx context.Context, companyID string, from, to time.Time) (*domain.IncomeStatementData, error)
	BalanceSheet(ctx context.Context, companyID string, asOf time.Time) (*domain.BalanceSheetData, error)
	CashFlowStatement(ctx context.Context, companyID string, from, to time.Time) (*domain.CashFlowStatementData, error)
}

// AgingSvcFacade buckets open receivables and computes the required reserve.
type AgingSvcFacade interface {
	// Analyze produces the aging analysis as of a date.
	Analyze(ctx context.Context, companyID string, asOf time.Time) (*domain.AgingAnalysis, error)

	// RequiredReserveDelta returns required reserve minus the posted
	// allowance balance.
	RequiredReserveDelta(ctx context.Context, companyID string, allowanceAccountID string, asOf time.Time) (decimal.Decimal, error)
}

// ServiceContainer bundles every service facade for handler registration.
type ServiceContainer struct {
	Account   AccountSvcFacade
	Resolver  ResolverSvcFacade
	Journal   JournalSvcFacade
	Posting   PostingSvcFacade
	Producer  ProducerSvcFacade
	Recurring RecurringSvcFacade
	Statement StatementSvcFacade
	Aging     AgingSvcFacade
}
