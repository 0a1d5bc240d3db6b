package domain

import (
	"github.com/shopspring/decimal"
)

// TrialBalanceRow represents a single account row in a trial balance report.
type TrialBalanceRow struct {
	AccountID     string          `json:"accountID"`
	AccountNumber string          `json:"accountNumber"`
	AccountName   string          `json:"accountName"`
	AccountType   AccountType     `json:"accountType"`
	SubType       string          `json:"subType"`
	NormalBalance NormalBalance   `json:"normalBalance"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	Balance       decimal.Decimal `json:"balance"`
}

// AccountAmount is an account with its net amount, as used in statement sections.
type AccountAmount struct {
	AccountID     string          `json:"accountID"`
	AccountNumber string          `json:"accountNumber"`
	Name          string          `json:"name"`
	Amount        decimal.Decimal `json:"amount"`
}

// IncomeStatementData is the income statement for a period. Expense accounts
// numbered 5000-5999 are reported as cost of construction; the rest as
// operating expenses.
type IncomeStatementData struct {
	Revenue            []AccountAmount `json:"revenue"`
	CostOfConstruction []AccountAmount `json:"costOfConstruction"`
	OperatingExpenses  []AccountAmount `json:"operatingExpenses"`
	TotalRevenue       decimal.Decimal `json:"totalRevenue"`
	TotalCOGS          decimal.Decimal `json:"totalCOGS"`
	GrossProfit        decimal.Decimal `json:"grossProfit"`
	TotalOpex          decimal.Decimal `json:"totalOpex"`
	NetIncome          decimal.Decimal `json:"netIncome"`
	FromInvoiceFallback bool           `json:"fromInvoiceFallback"`
}

// BalanceSheetData is the balance sheet as of a date. Current-period net
// income is injected as a synthetic equity line so the equation balances.
type BalanceSheetData struct {
	Assets           []AccountAmount `json:"assets"`
	Liabilities      []AccountAmount `json:"liabilities"`
	Equity           []AccountAmount `json:"equity"`
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal `json:"totalEquity"`
	IsBalanced       bool            `json:"isBalanced"`
	FromInvoiceFallback bool         `json:"fromInvoiceFallback"`
}

// CashFlowStatementData is the indirect-method cash flow statement.
type CashFlowStatementData struct {
	NetIncome            decimal.Decimal `json:"netIncome"`
	OperatingAdjustments []AccountAmount `json:"operatingAdjustments"`
	NetOperating         decimal.Decimal `json:"netOperating"`
	InvestingActivity    []AccountAmount `json:"investingActivity"`
	NetInvesting         decimal.Decimal `json:"netInvesting"`
	FinancingActivity    []AccountAmount `json:"financingActivity"`
	NetFinancing         decimal.Decimal `json:"netFinancing"`
	NetChange            decimal.Decimal `json:"netChange"`
	BeginningCash        decimal.Decimal `json:"beginningCash"`
	EndingCash           decimal.Decimal `json:"endingCash"`
	// BeginningCashDerived flags that beginning cash is back-derived as
	// endingCash - netChange rather than verified against a snapshot.
	BeginningCashDerived bool `json:"beginningCashDerived"`
}

// AgingBucket is one days-past-due band with its reserve rate and totals.
type AgingBucket struct {
	Label           string          `json:"label"`
	MinDays         int             `json:"minDays"`
	MaxDays         int             `json:"maxDays"` // -1 for open-ended
	ReserveRate     decimal.Decimal `json:"reserveRate"`
	FaceValue       decimal.Decimal `json:"faceValue"`
	RequiredReserve decimal.Decimal `json:"requiredReserve"`
	InvoiceCount    int             `json:"invoiceCount"`
}

// AgingAnalysis is the receivables aging report plus the reserve it implies.
type AgingAnalysis struct {
	AsOf                 string          `json:"asOf"` // YYYY-MM-DD
	Buckets              []AgingBucket   `json:"buckets"`
	TotalFaceValue       decimal.Decimal `json:"totalFaceValue"`
	TotalRequiredReserve decimal.Decimal `json:"totalRequiredReserve"`
}

// GenerationResult summarizes one idempotent generator run.
type GenerationResult struct {
	Considered int `json:"considered"` // Candidate (entity, period) pairs enumerated
	Existing   int `json:"existing"`   // Already generated, skipped
	Created    int `json:"created"`
	Errors     int `json:"errors"`
}

// BulkPostResult summarizes a bulk posted-entry insert.
type BulkPostResult struct {
	Created    int      `json:"created"`
	Unbalanced int      `json:"unbalanced"`
	Errors     int      `json:"errors"`
	EntryIDs   []string `json:"entryIDs"` // Insertion order of the created headers
}
