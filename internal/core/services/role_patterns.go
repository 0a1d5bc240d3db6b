package services

import (
	"sort"
	"strings"

	"github.com/buildbooks/construction_gl/internal/core/domain"
)

// RolePattern describes how one semantic account role is matched against the
// chart of accounts, and how to create the account when nothing matches.
type RolePattern struct {
	Role domain.AccountRole

	// Matching criteria. Types is mandatory; SubTypes and NameContains are
	// each optional, and an account matches when its type is allowed, its
	// sub_type equals any listed sub type (if any are listed), and its name
	// contains any listed substring (if any are listed).
	Types        []domain.AccountType
	SubTypes     []string
	NameContains []string

	// Fallback creation attributes for self-healing resolution. CreateContra
	// flips the normal balance for contra accounts such as accumulated
	// depreciation and the doubtful-accounts allowance.
	CreateNumber      string
	CreateName        string
	CreateType        domain.AccountType
	CreateSubType     string
	CreateDescription string
	CreateContra      bool
}

// CreateNormalBalance returns the normal balance an auto-created account for
// this pattern should carry.
func (p RolePattern) CreateNormalBalance() domain.NormalBalance {
	normal := domain.NormalBalanceFor(p.CreateType)
	if !p.CreateContra {
		return normal
	}
	if normal == domain.DebitNormal {
		return domain.CreditNormal
	}
	return domain.DebitNormal
}

// rolePatterns is the fixed resolution table. One entry per semantic role the
// automated posting and generation logic depends on.
var rolePatterns = []RolePattern{
	{
		Role:         domain.RoleCash,
		Types:        []domain.AccountType{domain.Asset},
		SubTypes:     []string{"bank", "cash"},
		CreateNumber: "1000", CreateName: "Cash - Operating", CreateType: domain.Asset, CreateSubType: "bank",
		CreateDescription: "Primary operating cash account",
	},
	{
		Role:         domain.RoleAccountsReceivable,
		Types:        []domain.AccountType{domain.Asset},
		SubTypes:     []string{"accounts_receivable"},
		NameContains: []string{"accounts receivable"},
		CreateNumber: "1200", CreateName: "Accounts Receivable", CreateType: domain.Asset, CreateSubType: "accounts_receivable",
		CreateDescription: "Amounts billed to customers and not yet collected",
	},
	{
		Role:         domain.RoleAccountsPayable,
		Types:        []domain.AccountType{domain.Liability},
		SubTypes:     []string{"accounts_payable"},
		NameContains: []string{"accounts payable"},
		CreateNumber: "2000", CreateName: "Accounts Payable", CreateType: domain.Liability, CreateSubType: "accounts_payable",
		CreateDescription: "Amounts owed to vendors",
	},
	{
		Role:         domain.RoleSalesTaxPayable,
		Types:        []domain.AccountType{domain.Liability},
		NameContains: []string{"sales tax payable", "sales tax"},
		CreateNumber: "2200", CreateName: "Sales Tax Payable", CreateType: domain.Liability, CreateSubType: "current_liability",
		CreateDescription: "Sales tax collected and owed to taxing authorities",
	},
	{
		Role:         domain.RoleSalesTaxReceivable,
		Types:        []domain.AccountType{domain.Asset},
		NameContains: []string{"sales tax receivable"},
		CreateNumber: "1250", CreateName: "Sales Tax Receivable", CreateType: domain.Asset, CreateSubType: "current_asset",
		CreateDescription: "Recoverable sales tax paid on purchases",
	},
	{
		Role:         domain.RoleRetainageReceivable,
		Types:        []domain.AccountType{domain.Asset},
		NameContains: []string{"retainage receivable", "retention receivable"},
		CreateNumber: "1220", CreateName: "Retainage Receivable", CreateType: domain.Asset, CreateSubType: "current_asset",
		CreateDescription: "Contract amounts withheld by customers pending completion",
	},
	{
		Role:         domain.RoleRetainagePayable,
		Types:        []domain.AccountType{domain.Liability},
		NameContains: []string{"retainage payable", "retention payable"},
		CreateNumber: "2050", CreateName: "Retainage Payable", CreateType: domain.Liability, CreateSubType: "current_liability",
		CreateDescription: "Amounts withheld from subcontractors pending completion",
	},
	{
		Role:         domain.RoleRentReceivable,
		Types:        []domain.AccountType{domain.Asset},
		NameContains: []string{"rent receivable"},
		CreateNumber: "1230", CreateName: "Rent Receivable", CreateType: domain.Asset, CreateSubType: "current_asset",
		CreateDescription: "Accrued rent not yet billed or collected",
	},
	{
		Role:         domain.RoleDeferredRentRevenue,
		Types:        []domain.AccountType{domain.Liability},
		NameContains: []string{"deferred rental revenue", "deferred rent"},
		CreateNumber: "2300", CreateName: "Deferred Rental Revenue", CreateType: domain.Liability, CreateSubType: "current_liability",
		CreateDescription: "Rent collected ahead of the period it covers",
	},
	{
		Role:         domain.RoleRentalIncome,
		Types:        []domain.AccountType{domain.Revenue},
		NameContains: []string{"rental income", "rent income"},
		CreateNumber: "4200", CreateName: "Rental Income", CreateType: domain.Revenue, CreateSubType: "operating_revenue",
		CreateDescription: "Income from property leases",
	},
	{
		Role:         domain.RoleLateFeeRevenue,
		Types:        []domain.AccountType{domain.Revenue},
		NameContains: []string{"late fee"},
		CreateNumber: "4250", CreateName: "Late Fee Revenue", CreateType: domain.Revenue, CreateSubType: "other_revenue",
		CreateDescription: "Late payment fees charged to tenants",
	},
	{
		Role:         domain.RoleEquipmentAsset,
		Types:        []domain.AccountType{domain.Asset},
		SubTypes:     []string{"fixed_asset"},
		NameContains: []string{"equipment", "machinery"},
		CreateNumber: "1500", CreateName: "Equipment", CreateType: domain.Asset, CreateSubType: "fixed_asset",
		CreateDescription: "Machinery and equipment at cost",
	},
	{
		Role:         domain.RoleAccumDepreciation,
		Types:        []domain.AccountType{domain.Asset},
		NameContains: []string{"accumulated depreciation"},
		CreateNumber: "1590", CreateName: "Accumulated Depreciation", CreateType: domain.Asset, CreateSubType: "fixed_asset",
		CreateDescription: "Contra-asset accumulating depreciation charges",
		CreateContra:      true,
	},
	{
		Role:         domain.RoleDepreciationExpense,
		Types:        []domain.AccountType{domain.Expense},
		NameContains: []string{"depreciation"},
		CreateNumber: "6400", CreateName: "Depreciation Expense", CreateType: domain.Expense, CreateSubType: "operating_expense",
		CreateDescription: "Periodic depreciation of fixed assets",
	},
	{
		Role:         domain.RoleRepairsMaintenance,
		Types:        []domain.AccountType{domain.Expense},
		NameContains: []string{"repairs", "maintenance"},
		CreateNumber: "6300", CreateName: "Repairs & Maintenance", CreateType: domain.Expense, CreateSubType: "operating_expense",
		CreateDescription: "Repairs and upkeep of property and equipment",
	},
	{
		Role:         domain.RoleBadDebtExpense,
		Types:        []domain.AccountType{domain.Expense},
		NameContains: []string{"bad debt"},
		CreateNumber: "6500", CreateName: "Bad Debt Expense", CreateType: domain.Expense, CreateSubType: "operating_expense",
		CreateDescription: "Estimated uncollectible receivables",
	},
	{
		Role:         domain.RoleAllowanceDoubtful,
		Types:        []domain.AccountType{domain.Asset},
		NameContains: []string{"allowance for doubtful", "allowance"},
		CreateNumber: "1290", CreateName: "Allowance for Doubtful Accounts", CreateType: domain.Asset, CreateSubType: "current_asset",
		CreateDescription: "Contra-asset reserve against uncollectible receivables",
		CreateContra:      true,
	},
	{
		Role:         domain.RoleWagesPayable,
		Types:        []domain.AccountType{domain.Liability},
		NameContains: []string{"wages payable", "accrued wages", "salaries payable"},
		CreateNumber: "2100", CreateName: "Wages Payable", CreateType: domain.Liability, CreateSubType: "current_liability",
		CreateDescription: "Earned but unpaid wages",
	},
	{
		Role:         domain.RoleLaborExpense,
		Types:        []domain.AccountType{domain.Expense},
		NameContains: []string{"labor", "wages", "payroll expense"},
		CreateNumber: "5100", CreateName: "Direct Labor", CreateType: domain.Expense, CreateSubType: "cost_of_construction",
		CreateDescription: "Field labor cost",
	},
	{
		Role:         domain.RolePayrollTaxPayable,
		Types:        []domain.AccountType{domain.Liability},
		NameContains: []string{"payroll tax"},
		CreateNumber: "2150", CreateName: "Payroll Taxes Payable", CreateType: domain.Liability, CreateSubType: "current_liability",
		CreateDescription: "Withheld and employer payroll taxes not yet remitted",
	},
	{
		Role:         domain.RoleRetainedEarnings,
		Types:        []domain.AccountType{domain.Equity},
		NameContains: []string{"retained earnings"},
		CreateNumber: "3900", CreateName: "Retained Earnings", CreateType: domain.Equity, CreateSubType: "retained_earnings",
		CreateDescription: "Accumulated prior-period earnings",
	},
	{
		Role:         domain.RoleConstructionRevenue,
		Types:        []domain.AccountType{domain.Revenue},
		NameContains: []string{"construction", "contract revenue"},
		CreateNumber: "4000", CreateName: "Construction Revenue", CreateType: domain.Revenue, CreateSubType: "operating_revenue",
		CreateDescription: "Revenue from construction contracts",
	},
}

// MatchRole scans accounts for the first one satisfying the pattern. The scan
// order is account number ascending, so ties resolve deterministically to the
// lowest-numbered account, not a "best" match. Returns the matched account id
// and whether any account matched.
func MatchRole(accounts []domain.Account, pattern RolePattern) (string, bool) {
	sorted := make([]domain.Account, len(accounts))
	copy(sorted, accounts)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Number < sorted[j].Number })

	for _, acc := range sorted {
		if !typeAllowed(acc.AccountType, pattern.Types) {
			continue
		}
		if len(pattern.SubTypes) > 0 || len(pattern.NameContains) > 0 {
			if matchesSubType(acc.SubType, pattern.SubTypes) || matchesName(acc.Name, pattern.NameContains) {
				return acc.AccountID, true
			}
			continue
		}
		return acc.AccountID, true
	}
	return "", false
}

func typeAllowed(t domain.AccountType, allowed []domain.AccountType) bool {
	for _, a := range allowed {
		if t == a {
			return true
		}
	}
	return false
}

func matchesSubType(subType string, candidates []string) bool {
	st := strings.ToLower(subType)
	for _, c := range candidates {
		if st == c {
			return true
		}
	}
	return false
}

func matchesName(name string, substrings []string) bool {
	n := strings.ToLower(name)
	for _, sub := range substrings {
		if strings.Contains(n, sub) {
			return true
		}
	}
	return false
}
