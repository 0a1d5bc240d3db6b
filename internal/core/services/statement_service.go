package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/buildbooks/construction_gl/internal/core/domain"
	portsrepo "github.com/buildbooks/construction_gl/internal/core/ports/repositories"
	portssvc "github.com/buildbooks/construction_gl/internal/core/ports/services"
	"github.com/buildbooks/construction_gl/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// postedLinePageSize is how many lines one ranged fetch returns when the cash
// flow pass aggregates in memory. The store caps rows per query; the pass
// iterates pages until a short page.
const postedLinePageSize = 1000

// statementService derives financial statements from posted activity.
type statementService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	journalRepo   portsrepo.JournalReader
	accountSvc    portssvc.AccountSvcFacade
}

// NewStatementService creates the financial statement engine.
func NewStatementService(reportingRepo portsrepo.ReportingRepository, journalRepo portsrepo.JournalReader, accountSvc portssvc.AccountSvcFacade) portssvc.StatementSvcFacade {
	return &statementService{
		reportingRepo: reportingRepo,
		journalRepo:   journalRepo,
		accountSvc:    accountSvc,
	}
}

var _ portssvc.StatementSvcFacade = (*statementService)(nil)

// TrialBalance aggregates debit/credit per account over posted lines only,
// derives each balance from the account's normal balance, and sorts by
// account number.
func (s *statementService) TrialBalance(ctx context.Context, companyID string, asOf *time.Time) ([]domain.TrialBalanceRow, error) {
	rows, err := s.reportingRepo.GetTrialBalanceData(ctx, companyID, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve trial balance data: %w", err)
	}

	for i := range rows {
		rows[i].Balance = accounting.SignedBalance(rows[i].NormalBalance, rows[i].Debit, rows[i].Credit)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].AccountNumber < rows[j].AccountNumber })

	s.LogInfo(ctx, "Trial balance generated",
		slog.String("company_id", companyID),
		slog.Int("row_count", len(rows)))
	return rows, nil
}

// IncomeStatement classifies period activity by account type, splitting
// expense rows into cost of construction (account numbers 5000-5999) and
// operating expense. With no posted activity in the range, it falls back to
// raw non-voided invoice totals so new books still produce a report.
func (s *statementService) IncomeStatement(ctx context.Context, companyID string, from, to time.Time) (*domain.IncomeStatementData, error) {
	rows, err := s.reportingRepo.GetTrialBalanceRange(ctx, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve income statement data: %w", err)
	}

	data := &domain.IncomeStatementData{
		TotalRevenue: decimal.Zero,
		TotalCOGS:    decimal.Zero,
		TotalOpex:    decimal.Zero,
	}
	for _, row := range rows {
		amount := accounting.SignedBalance(domain.NormalBalanceFor(row.AccountType), row.Debit, row.Credit)
		item := domain.AccountAmount{
			AccountID:     row.AccountID,
			AccountNumber: row.AccountNumber,
			Name:          row.AccountName,
			Amount:        amount,
		}
		switch row.AccountType {
		case domain.Revenue:
			data.Revenue = append(data.Revenue, item)
			data.TotalRevenue = data.TotalRevenue.Add(amount)
		case domain.Expense:
			if accounting.IsCOGSNumber(row.AccountNumber) {
				data.CostOfConstruction = append(data.CostOfConstruction, item)
				data.TotalCOGS = data.TotalCOGS.Add(amount)
			} else {
				data.OperatingExpenses = append(data.OperatingExpenses, item)
				data.TotalOpex = data.TotalOpex.Add(amount)
			}
		}
	}

	if len(data.Revenue) == 0 && len(data.CostOfConstruction) == 0 && len(data.OperatingExpenses) == 0 {
		if err := s.invoiceFallback(ctx, companyID, from, to, data); err != nil {
			return nil, err
		}
	}

	data.GrossProfit = data.TotalRevenue.Sub(data.TotalCOGS)
	data.NetIncome = data.GrossProfit.Sub(data.TotalOpex)

	s.LogInfo(ctx, "Income statement generated",
		slog.String("company_id", companyID),
		slog.String("net_income", data.NetIncome.String()),
		slog.Bool("invoice_fallback", data.FromInvoiceFallback))
	return data, nil
}

// invoiceFallback fills the statement from raw invoice totals when the ledger
// has no posted activity for the range.
func (s *statementService) invoiceFallback(ctx context.Context, companyID string, from, to time.Time, data *domain.IncomeStatementData) error {
	revSubtotal, revTax, err := s.reportingRepo.SumInvoiceTotals(ctx, companyID, domain.Receivable, from, to)
	if err != nil {
		return fmt.Errorf("failed to sum receivable invoices for fallback: %w", err)
	}
	expSubtotal, expTax, err := s.reportingRepo.SumInvoiceTotals(ctx, companyID, domain.Payable, from, to)
	if err != nil {
		return fmt.Errorf("failed to sum payable invoices for fallback: %w", err)
	}

	revenue := revSubtotal.Add(revTax)
	expense := expSubtotal.Add(expTax)
	if revenue.IsZero() && expense.IsZero() {
		return nil
	}

	data.FromInvoiceFallback = true
	if !revenue.IsZero() {
		data.Revenue = append(data.Revenue, domain.AccountAmount{Name: "Invoiced revenue", Amount: revenue})
		data.TotalRevenue = data.TotalRevenue.Add(revenue)
	}
	if !expense.IsZero() {
		data.OperatingExpenses = append(data.OperatingExpenses, domain.AccountAmount{Name: "Invoiced expenses", Amount: expense})
		data.TotalOpex = data.TotalOpex.Add(expense)
	}
	return nil
}

// BalanceSheet classifies as-of balances into assets, liabilities and equity,
// injecting current-period net income as a synthetic equity line so the
// equation balances. The synthetic line is labeled "Retained Earnings" unless
// a real retained-earnings account already appears, in which case it becomes
// "Net Income (Current Period)" to avoid double counting.
func (s *statementService) BalanceSheet(ctx context.Context, companyID string, asOf time.Time) (*domain.BalanceSheetData, error) {
	rows, err := s.reportingRepo.GetTrialBalanceData(ctx, companyID, &asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve balance sheet data: %w", err)
	}

	data := &domain.BalanceSheetData{
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		TotalEquity:      decimal.Zero,
	}
	netIncome := decimal.Zero
	haveRetainedEarnings := false

	for _, row := range rows {
		// Sections sum in their type's natural direction, so contra-normal
		// accounts (accumulated depreciation, doubtful-account allowance)
		// present as negative lines instead of inflating their section.
		balance := accounting.SignedBalance(domain.NormalBalanceFor(row.AccountType), row.Debit, row.Credit)
		item := domain.AccountAmount{
			AccountID:     row.AccountID,
			AccountNumber: row.AccountNumber,
			Name:          row.AccountName,
			Amount:        balance,
		}
		switch row.AccountType {
		case domain.Asset:
			data.Assets = append(data.Assets, item)
			data.TotalAssets = data.TotalAssets.Add(balance)
		case domain.Liability:
			data.Liabilities = append(data.Liabilities, item)
			data.TotalLiabilities = data.TotalLiabilities.Add(balance)
		case domain.Equity:
			data.Equity = append(data.Equity, item)
			data.TotalEquity = data.TotalEquity.Add(balance)
			if strings.Contains(strings.ToLower(row.AccountName), "retained earnings") {
				haveRetainedEarnings = true
			}
		case domain.Revenue:
			netIncome = netIncome.Add(accounting.SignedBalance(domain.CreditNormal, row.Debit, row.Credit))
		case domain.Expense:
			netIncome = netIncome.Sub(accounting.SignedBalance(domain.DebitNormal, row.Debit, row.Credit))
		}
	}

	if len(rows) == 0 {
		// Empty ledger: surface invoice totals so the report is not blank.
		income := &domain.IncomeStatementData{TotalRevenue: decimal.Zero, TotalCOGS: decimal.Zero, TotalOpex: decimal.Zero}
		if err := s.invoiceFallback(ctx, companyID, time.Time{}, asOf, income); err != nil {
			return nil, err
		}
		if income.FromInvoiceFallback {
			data.FromInvoiceFallback = true
			netIncome = income.TotalRevenue.Sub(income.TotalOpex)
			data.Assets = append(data.Assets, domain.AccountAmount{Name: "Uncollected invoices", Amount: netIncome})
			data.TotalAssets = data.TotalAssets.Add(netIncome)
		}
	}

	if !netIncome.IsZero() || len(rows) > 0 {
		label := "Retained Earnings"
		if haveRetainedEarnings {
			label = "Net Income (Current Period)"
		}
		data.Equity = append(data.Equity, domain.AccountAmount{Name: label, Amount: netIncome})
		data.TotalEquity = data.TotalEquity.Add(netIncome)
	}

	diff := data.TotalAssets.Sub(data.TotalLiabilities.Add(data.TotalEquity)).Abs()
	data.IsBalanced = diff.LessThan(accounting.BalanceTolerance)

	s.LogInfo(ctx, "Balance sheet generated",
		slog.String("company_id", companyID),
		slog.Bool("is_balanced", data.IsBalanced))
	return data, nil
}

// accountNet accumulates one account's period activity for the cash flow pass.
type accountNet struct {
	all     decimal.Decimal // credits - debits over every posted line
	nonSeed decimal.Decimal // credits - debits excluding seed-data entries
}

// CashFlowStatement assembles the indirect-method cash flow statement.
// Operating starts from net income and adjusts for working-capital deltas;
// investing is net activity in fixed-asset accounts; financing is net
// activity in long-term liabilities and non-retained-earnings equity.
// Opening-balance and bank-sync seed entries are excluded from investing and
// financing so historical seeding does not distort period flows.
func (s *statementService) CashFlowStatement(ctx context.Context, companyID string, from, to time.Time) (*domain.CashFlowStatementData, error) {
	income, err := s.IncomeStatement(ctx, companyID, from, to)
	if err != nil {
		return nil, err
	}

	nets, err := s.collectAccountNets(ctx, companyID, from, to)
	if err != nil {
		return nil, err
	}

	accountIDs := make([]string, 0, len(nets))
	for id := range nets {
		accountIDs = append(accountIDs, id)
	}
	sort.Strings(accountIDs)
	accounts, err := s.accountSvc.GetAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts for cash flow classification: %w", err)
	}

	data := &domain.CashFlowStatementData{
		NetIncome:    income.NetIncome,
		NetOperating: income.NetIncome,
		NetInvesting: decimal.Zero,
		NetFinancing: decimal.Zero,
	}

	for _, id := range accountIDs {
		acc, ok := accounts[id]
		if !ok {
			continue
		}
		net := nets[id]
		item := domain.AccountAmount{
			AccountID:     acc.AccountID,
			AccountNumber: acc.Number,
			Name:          acc.Name,
		}
		switch classifyCashFlow(acc) {
		case cfOperating:
			if net.all.IsZero() {
				continue
			}
			// Credits minus debits: an asset build-up consumes cash, a
			// liability build-up frees it. Both reduce to the same sign.
			item.Amount = net.all
			data.OperatingAdjustments = append(data.OperatingAdjustments, item)
			data.NetOperating = data.NetOperating.Add(net.all)
		case cfInvesting:
			if net.nonSeed.IsZero() {
				continue
			}
			item.Amount = net.nonSeed
			data.InvestingActivity = append(data.InvestingActivity, item)
			data.NetInvesting = data.NetInvesting.Add(net.nonSeed)
		case cfFinancing:
			if net.nonSeed.IsZero() {
				continue
			}
			item.Amount = net.nonSeed
			data.FinancingActivity = append(data.FinancingActivity, item)
			data.NetFinancing = data.NetFinancing.Add(net.nonSeed)
		}
	}

	data.NetChange = data.NetOperating.Add(data.NetInvesting).Add(data.NetFinancing)

	endingCash, err := s.reportingRepo.GetBankCashBalances(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to read bank balances: %w", err)
	}
	data.EndingCash = endingCash
	data.BeginningCash = endingCash.Sub(data.NetChange)
	data.BeginningCashDerived = true

	// Beginning cash is back-derived, not verified against a snapshot, so
	// misclassified investing/financing activity can hide here.
	s.LogWarn(ctx, "Beginning cash derived from ending cash minus net change; not independently reconciled",
		slog.String("company_id", companyID),
		slog.String("beginning_cash", data.BeginningCash.String()))
	return data, nil
}

// collectAccountNets walks every posted line in the range with repeated
// ranged fetches, accumulating per-account nets with and without seed-data
// entries.
func (s *statementService) collectAccountNets(ctx context.Context, companyID string, from, to time.Time) (map[string]accountNet, error) {
	nets := make(map[string]accountNet)
	for offset := 0; ; offset += postedLinePageSize {
		page, err := s.journalRepo.ListPostedLines(ctx, companyID, from, to, postedLinePageSize, offset)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch posted lines at offset %d: %w", offset, err)
		}
		for _, line := range page {
			net := nets[line.AccountID]
			delta := line.Credit.Sub(line.Debit)
			net.all = net.all.Add(delta)
			if !line.Reference.IsSeedData() {
				net.nonSeed = net.nonSeed.Add(delta)
			}
			nets[line.AccountID] = net
		}
		if len(page) < postedLinePageSize {
			break
		}
	}
	return nets, nil
}

type cashFlowSection int

const (
	cfSkip cashFlowSection = iota
	cfOperating
	cfInvesting
	cfFinancing
)

// classifyCashFlow buckets an account into its cash flow section. Cash and
// bank accounts are skipped: their movement is the net change itself.
func classifyCashFlow(acc domain.Account) cashFlowSection {
	subType := strings.ToLower(acc.SubType)
	name := strings.ToLower(acc.Name)
	switch acc.AccountType {
	case domain.Asset:
		switch {
		case subType == "bank" || subType == "cash":
			return cfSkip
		case subType == "fixed_asset":
			return cfInvesting
		default:
			// AR and other current assets adjust operating cash.
			return cfOperating
		}
	case domain.Liability:
		if strings.Contains(subType, "long_term") {
			return cfFinancing
		}
		return cfOperating
	case domain.Equity:
		if strings.Contains(subType, "retained_earnings") || strings.Contains(name, "retained earnings") {
			return cfSkip
		}
		return cfFinancing
	default:
		// Revenue and expense flow through net income.
		return cfSkip
	}
}
