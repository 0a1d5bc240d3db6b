package services_test

import (
	"context"
	"errors"
	"time"

	"github.com/buildbooks/construction_gl/internal/core/domain"
	portsrepo "github.com/buildbooks/construction_gl/internal/core/ports/repositories"
	portssvc "github.com/buildbooks/construction_gl/internal/core/ports/services"
	"github.com/buildbooks/construction_gl/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// errTest stands in for arbitrary repository failures.
var errTest = errors.New("test error")

// --- Mock JournalRepository ---

type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindEntryByReference(ctx context.Context, companyID string, ref domain.EntryReference) (*domain.JournalEntry, error) {
	args := m.Called(ctx, companyID, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalEntryLine, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntryLine), args.Error(1)
}

func (m *MockJournalRepository) ListEntries(ctx context.Context, companyID string, limit, offset int) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, companyID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindExistingReferences(ctx context.Context, companyID string, refs []domain.EntryReference) (map[string]bool, error) {
	args := m.Called(ctx, companyID, refs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]bool), args.Error(1)
}

func (m *MockJournalRepository) ListPostedLines(ctx context.Context, companyID string, from, to time.Time, limit, offset int) ([]domain.PostedLine, error) {
	args := m.Called(ctx, companyID, from, to, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PostedLine), args.Error(1)
}

func (m *MockJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalEntryLine) error {
	args := m.Called(ctx, entry, lines)
	return args.Error(0)
}

func (m *MockJournalRepository) InsertEntryHeaders(ctx context.Context, entries []domain.JournalEntry) ([]string, error) {
	args := m.Called(ctx, entries)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockJournalRepository) InsertLines(ctx context.Context, lines []domain.JournalEntryLine) error {
	args := m.Called(ctx, lines)
	return args.Error(0)
}

func (m *MockJournalRepository) UpdateEntryStatus(ctx context.Context, entryID string, from, to domain.EntryStatus, postedBy string, postedAt time.Time) (int64, error) {
	args := m.Called(ctx, entryID, from, to, postedBy, postedAt)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockJournalRepository) VoidEntry(ctx context.Context, entryID string, voidedBy string, voidedAt time.Time) error {
	args := m.Called(ctx, entryID, voidedBy, voidedAt)
	return args.Error(0)
}

func (m *MockJournalRepository) DeleteEntryByReference(ctx context.Context, companyID string, ref domain.EntryReference) error {
	args := m.Called(ctx, companyID, ref)
	return args.Error(0)
}

func (m *MockJournalRepository) NextEntryNumber(ctx context.Context, companyID string, year int) (string, error) {
	args := m.Called(ctx, companyID, year)
	return args.String(0), args.Error(1)
}

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByNumber(ctx context.Context, companyID string, number string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListActiveAccounts(ctx context.Context, companyID string) ([]domain.Account, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

// --- Mock ReportingRepository ---

type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) GetTrialBalanceData(ctx context.Context, companyID string, asOf *time.Time) ([]domain.TrialBalanceRow, error) {
	args := m.Called(ctx, companyID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrialBalanceRow), args.Error(1)
}

func (m *MockReportingRepository) GetTrialBalanceRange(ctx context.Context, companyID string, from, to time.Time) ([]domain.TrialBalanceRow, error) {
	args := m.Called(ctx, companyID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrialBalanceRow), args.Error(1)
}

func (m *MockReportingRepository) GetAccountPostedBalance(ctx context.Context, accountID string, asOf *time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, accountID, asOf)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockReportingRepository) GetBankCashBalances(ctx context.Context, companyID string) (decimal.Decimal, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockReportingRepository) SumInvoiceTotals(ctx context.Context, companyID string, invoiceType domain.InvoiceType, from, to time.Time) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, companyID, invoiceType, from, to)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

// --- Mock InvoiceRepository ---

type MockInvoiceRepository struct {
	mock.Mock
}

var _ portsrepo.InvoiceRepositoryFacade = (*MockInvoiceRepository)(nil)

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListOpenReceivables(ctx context.Context, companyID string, asOf time.Time) ([]domain.Invoice, error) {
	args := m.Called(ctx, companyID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) ApplyPaymentToInvoice(ctx context.Context, invoiceID string, amount decimal.Decimal) error {
	args := m.Called(ctx, invoiceID, amount)
	return args.Error(0)
}

// --- Mock LeaseRepository ---

type MockLeaseRepository struct {
	mock.Mock
}

var _ portsrepo.LeaseRepositoryFacade = (*MockLeaseRepository)(nil)

func (m *MockLeaseRepository) FindLeaseByID(ctx context.Context, leaseID string) (*domain.Lease, error) {
	args := m.Called(ctx, leaseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lease), args.Error(1)
}

func (m *MockLeaseRepository) ListActiveLeases(ctx context.Context, companyID string) ([]domain.Lease, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Lease), args.Error(1)
}

func (m *MockLeaseRepository) SaveLease(ctx context.Context, lease domain.Lease) error {
	args := m.Called(ctx, lease)
	return args.Error(0)
}

// --- Mock EquipmentRepository ---

type MockEquipmentRepository struct {
	mock.Mock
}

var _ portsrepo.EquipmentRepositoryFacade = (*MockEquipmentRepository)(nil)

func (m *MockEquipmentRepository) FindEquipmentByID(ctx context.Context, equipmentID string) (*domain.Equipment, error) {
	args := m.Called(ctx, equipmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Equipment), args.Error(1)
}

func (m *MockEquipmentRepository) ListEquipment(ctx context.Context, companyID string) ([]domain.Equipment, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Equipment), args.Error(1)
}

func (m *MockEquipmentRepository) SaveEquipment(ctx context.Context, equipment domain.Equipment) error {
	args := m.Called(ctx, equipment)
	return args.Error(0)
}

// --- Mock TimeclockRepository ---

type MockTimeclockRepository struct {
	mock.Mock
}

var _ portsrepo.TimeclockRepositoryFacade = (*MockTimeclockRepository)(nil)

func (m *MockTimeclockRepository) ListDays(ctx context.Context, companyID string, from, to time.Time) ([]domain.TimeclockDay, error) {
	args := m.Called(ctx, companyID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TimeclockDay), args.Error(1)
}

func (m *MockTimeclockRepository) SaveDay(ctx context.Context, day domain.TimeclockDay) error {
	args := m.Called(ctx, day)
	return args.Error(0)
}

// --- Mock AccountService ---

type MockAccountService struct {
	mock.Mock
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

func (m *MockAccountService) FindOrCreate(ctx context.Context, companyID, number, name string, accountType domain.AccountType, subType string, normal domain.NormalBalance, description string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, number, name, accountType, subType, normal, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountService) ListActive(ctx context.Context, companyID string) ([]domain.Account, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

// --- Mock ResolverService ---

type MockResolverService struct {
	mock.Mock
}

var _ portssvc.ResolverSvcFacade = (*MockResolverService)(nil)

func (m *MockResolverService) Resolve(ctx context.Context, companyID string) (domain.AccountMap, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.AccountMap), args.Error(1)
}

// --- Mock JournalService ---

type MockJournalService struct {
	mock.Mock
}

var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

func (m *MockJournalService) CreateDraft(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) CreatePosted(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) Post(ctx context.Context, entryID string, postingUserID string) error {
	args := m.Called(ctx, entryID, postingUserID)
	return args.Error(0)
}

func (m *MockJournalService) Void(ctx context.Context, entryID string, voidingUserID string) error {
	args := m.Called(ctx, entryID, voidingUserID)
	return args.Error(0)
}

func (m *MockJournalService) BulkCreatePosted(ctx context.Context, reqs []dto.CreateEntryRequest, creatorUserID string) (*domain.BulkPostResult, error) {
	args := m.Called(ctx, reqs, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BulkPostResult), args.Error(1)
}

func (m *MockJournalService) GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, []domain.JournalEntryLine, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.JournalEntry), args.Get(1).([]domain.JournalEntryLine), args.Error(2)
}

func (m *MockJournalService) GetEntryByReference(ctx context.Context, companyID string, ref domain.EntryReference) (*domain.JournalEntry, []domain.JournalEntryLine, error) {
	args := m.Called(ctx, companyID, ref)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.JournalEntry), args.Get(1).([]domain.JournalEntryLine), args.Error(2)
}

func (m *MockJournalService) ListEntries(ctx context.Context, companyID string, limit, offset int) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, companyID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

// --- Mock AgingService ---

type MockAgingService struct {
	mock.Mock
}

var _ portssvc.AgingSvcFacade = (*MockAgingService)(nil)

func (m *MockAgingService) Analyze(ctx context.Context, companyID string, asOf time.Time) (*domain.AgingAnalysis, error) {
	args := m.Called(ctx, companyID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AgingAnalysis), args.Error(1)
}

func (m *MockAgingService) RequiredReserveDelta(ctx context.Context, companyID string, allowanceAccountID string, asOf time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, companyID, allowanceAccountID, asOf)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
