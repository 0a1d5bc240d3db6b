package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceType distinguishes money owed to us from money we owe.
type InvoiceType string

const (
	Receivable InvoiceType = "RECEIVABLE"
	Payable    InvoiceType = "PAYABLE"
)

// Invoice is an upstream billing record consumed by the ledger. The ledger
// never mutates invoices; it posts entries for them and reads open receivables
// for aging and report fallbacks.
type Invoice struct {
	InvoiceID       string          `json:"invoiceID"`
	CompanyID       string          `json:"companyID"`
	InvoiceNumber   string          `json:"invoiceNumber"`
	Type            InvoiceType     `json:"type"`
	InvoiceDate     time.Time       `json:"invoiceDate"`
	DueDate         time.Time       `json:"dueDate"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	TaxAmount       decimal.Decimal `json:"taxAmount"`
	Total           decimal.Decimal `json:"total"`
	BalanceDue      decimal.Decimal `json:"balanceDue"`
	RetainageAmount decimal.Decimal `json:"retainageAmount"`
	GLAccountID     string          `json:"glAccountID"` // Optional explicit revenue/expense account
	ProjectID       string          `json:"projectID"`
	Voided          bool            `json:"voided"`
}

// Payment is an upstream cash receipt or disbursement applied to an invoice.
type Payment struct {
	PaymentID   string          `json:"paymentID"`
	CompanyID   string          `json:"companyID"`
	InvoiceID   string          `json:"invoiceID"`
	PaymentDate time.Time       `json:"paymentDate"`
	Amount      decimal.Decimal `json:"amount"`
	Method      string          `json:"method"`
}

// Lease drives monthly rent accrual generation.
type Lease struct {
	LeaseID     string          `json:"leaseID"`
	CompanyID   string          `json:"companyID"`
	PropertyID  string          `json:"propertyID"`
	TenantName  string          `json:"tenantName"`
	MonthlyRent decimal.Decimal `json:"monthlyRent"`
	StartDate   time.Time       `json:"startDate"`
	EndDate     time.Time       `json:"endDate"`
	AutoRenew   bool            `json:"autoRenew"`
	// PaidInAdvance marks leases collected up front. Their rent books as
	// monthly recognition out of deferred revenue instead of a receivable
	// accrual.
	PaidInAdvance bool `json:"paidInAdvance"`
	Active        bool `json:"active"`
}

// Equipment drives straight-line depreciation generation.
type Equipment struct {
	EquipmentID      string          `json:"equipmentID"`
	CompanyID        string          `json:"companyID"`
	Name             string          `json:"name"`
	Cost             decimal.Decimal `json:"cost"`
	SalvageValue     decimal.Decimal `json:"salvageValue"`
	UsefulLifeMonths int             `json:"usefulLifeMonths"`
	InServiceDate    time.Time       `json:"inServiceDate"`
}

// MonthlyDepreciation returns the straight-line monthly charge, zero when the
// useful life is not positive.
func (e Equipment) MonthlyDepreciation() decimal.Decimal {
	if e.UsefulLifeMonths <= 0 {
		return decimal.Zero
	}
	return e.Cost.Sub(e.SalvageValue).Div(decimal.NewFromInt(int64(e.UsefulLifeMonths))).Round(2)
}

// TimeclockDay is the aggregate of one employee's clock-event pairs for one
// calendar day, priced at their labor cost.
type TimeclockDay struct {
	CompanyID  string          `json:"companyID"`
	EmployeeID string          `json:"employeeID"`
	WorkDate   time.Time       `json:"workDate"`
	Hours      decimal.Decimal `json:"hours"`
	LaborCost  decimal.Decimal `json:"laborCost"`
	ProjectID  string          `json:"projectID"`
}

// PayrollRunSummary is the per-run aggregate produced by the out-of-scope tax
// calculator: gross pay and the tax/deduction totals the ledger books.
type PayrollRunSummary struct {
	PayrollRunID string          `json:"payrollRunID"`
	CompanyID    string          `json:"companyID"`
	PeriodEnd    time.Time       `json:"periodEnd"`
	GrossPay     decimal.Decimal `json:"grossPay"`
	TaxTotal     decimal.Decimal `json:"taxTotal"`
	Deductions   decimal.Decimal `json:"deductions"`
	NetPay       decimal.Decimal `json:"netPay"`
}
