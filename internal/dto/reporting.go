package dto

import (
	"github.com/buildbooks/construction_gl/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TrialBalanceResponse is the trial balance report response.
type TrialBalanceResponse struct {
	AsOf        string                   `json:"asOf,omitempty"`
	Rows        []domain.TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal          `json:"totalDebit"`
	TotalCredit decimal.Decimal          `json:"totalCredit"`
}

// PeriodReportRequest bounds a report by a date range (YYYY-MM-DD).
type PeriodReportRequest struct {
	From string `form:"from" binding:"required,dateonly"`
	To   string `form:"to" binding:"required,dateonly"`
}

// GenerateRecurringRequest triggers one generator category for a company.
type GenerateRecurringRequest struct {
	CompanyID string `json:"companyID" binding:"required"`
	AsOf      string `json:"asOf" binding:"omitempty,dateonly"` // Optional YYYY-MM-DD, defaults to today
}

// GenerateLaborRequest triggers labor accrual generation over a day range.
type GenerateLaborRequest struct {
	CompanyID string `json:"companyID" binding:"required"`
	From      string `json:"from" binding:"required,dateonly"` // YYYY-MM-DD
	To        string `json:"to" binding:"required,dateonly"`   // YYYY-MM-DD
}
