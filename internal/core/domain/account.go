package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// NormalBalance indicates which side of the ledger naturally increases an account.
type NormalBalance string

const (
	DebitNormal  NormalBalance = "DEBIT"
	CreditNormal NormalBalance = "CREDIT"
)

// NormalBalanceFor returns the conventional normal balance for an account type.
func NormalBalanceFor(t AccountType) NormalBalance {
	switch t {
	case Asset, Expense:
		return DebitNormal
	default:
		return CreditNormal
	}
}

// Account represents one node in a company's chart of accounts.
type Account struct {
	AccountID       string        `json:"accountID"`
	CompanyID       string        `json:"companyID"`
	Number          string        `json:"number"` // Unique per company, e.g. "1200"
	Name            string        `json:"name"`
	AccountType     AccountType   `json:"accountType"`
	SubType         string        `json:"subType"` // Free-form classifier, e.g. "fixed_asset"
	ParentAccountID string        `json:"parentAccountID"`
	NormalBalance   NormalBalance `json:"normalBalance"`
	Description     string        `json:"description"`
	IsActive        bool          `json:"isActive"`
	AuditFields
}

// Balance derives an account balance from its debit and credit totals,
// honoring the account's normal balance side.
func (a Account) Balance(debitTotal, creditTotal decimal.Decimal) decimal.Decimal {
	if a.NormalBalance == DebitNormal {
		return debitTotal.Sub(creditTotal)
	}
	return creditTotal.Sub(debitTotal)
}
