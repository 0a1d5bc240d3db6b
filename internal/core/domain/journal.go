package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the lifecycle state of a journal entry.
type EntryStatus string

const (
	Draft  EntryStatus = "DRAFT"
	Posted EntryStatus = "POSTED"
	Voided EntryStatus = "VOIDED"
)

// Reference categories used by the automated generators. The category plus
// entity id plus period form the idempotency key for generated entries.
const (
	RefRentAccrual      = "rent:accrual"
	RefRentRecognition  = "rent:recognition"
	RefDepreciation     = "depreciation"
	RefLaborAccrual     = "labor:accrual"
	RefAllowanceAdjust  = "allowance:adjustment"
	RefOpeningBalance   = "opening:balance"
	RefBankSync         = "bank:sync"
	RefInvoicePosting   = "invoice"
	RefPaymentPosting   = "payment"
	RefPayrollPosting   = "payroll"
)

// EntryReference is the structured idempotency key for generated entries.
// It renders as "{category}:{entityID}:{period}" for display and import.
type EntryReference struct {
	Category string `json:"category"`
	EntityID string `json:"entityID"`
	Period   string `json:"period"` // YYYY-MM for monthly, YYYY-MM-DD for daily
}

func (r EntryReference) String() string {
	return fmt.Sprintf("%s:%s:%s", r.Category, r.EntityID, r.Period)
}

// IsZero reports whether the reference is unset.
func (r EntryReference) IsZero() bool {
	return r.Category == "" && r.EntityID == "" && r.Period == ""
}

// IsSeedData reports whether the reference marks opening-balance or bank-sync
// seed entries, which are excluded from investing/financing cash flows.
func (r EntryReference) IsSeedData() bool {
	return r.Category == RefOpeningBalance || r.Category == RefBankSync
}

// ParseEntryReference parses the display form back into its parts. The entity
// id may itself contain colons (e.g. "rent:accrual:<uuid>:2025-01"), so the
// period is taken from the last segment and the category from the registered
// prefixes.
func ParseEntryReference(s string) (EntryReference, error) {
	idx := strings.LastIndex(s, ":")
	if idx < 0 {
		return EntryReference{}, fmt.Errorf("malformed entry reference %q", s)
	}
	period := s[idx+1:]
	rest := s[:idx]
	for _, cat := range []string{
		RefRentAccrual, RefRentRecognition, RefDepreciation, RefLaborAccrual,
		RefAllowanceAdjust, RefOpeningBalance, RefBankSync, RefInvoicePosting,
		RefPaymentPosting, RefPayrollPosting,
	} {
		if strings.HasPrefix(rest, cat+":") {
			return EntryReference{Category: cat, EntityID: rest[len(cat)+1:], Period: period}, nil
		}
	}
	return EntryReference{}, fmt.Errorf("unknown entry reference category in %q", s)
}

// JournalEntry is the header of a double-entry bookkeeping record. Posted
// entries are logically immutable; the only further mutation is a void.
type JournalEntry struct {
	EntryID     string         `json:"entryID"`
	CompanyID   string         `json:"companyID"`
	EntryNumber string         `json:"entryNumber"` // Human-readable, unique, e.g. "JE-2025-000042"
	EntryDate   time.Time      `json:"entryDate"`
	Description string         `json:"description"`
	Reference   EntryReference `json:"reference"` // Zero for manual entries
	Status      EntryStatus    `json:"status"`
	PostedBy    string         `json:"postedBy"`
	PostedAt    *time.Time     `json:"postedAt"`
	AuditFields
}

// PostedLine is a line joined with the header fields the aggregation passes
// need: the entry date for range bounds and the reference for seed-data
// exclusion.
type PostedLine struct {
	EntryID   string          `json:"entryID"`
	EntryDate time.Time       `json:"entryDate"`
	Reference EntryReference  `json:"reference"`
	AccountID string          `json:"accountID"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

// JournalEntryLine is a single debit or credit belonging to exactly one entry.
// Exactly one of Debit and Credit is expected to be positive; both are >= 0.
type JournalEntryLine struct {
	LineID      string          `json:"lineID"`
	EntryID     string          `json:"entryID"`
	AccountID   string          `json:"accountID"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
	ProjectID   string          `json:"projectID"`  // Optional dimension tag
	PropertyID  string          `json:"propertyID"` // Optional dimension tag
}
