package domain

// AccountRole identifies a semantic position in the chart of accounts that the
// automated posting and generation logic depends on. Roles are resolved once
// per logical operation into an AccountMap.
type AccountRole string

const (
	RoleCash                 AccountRole = "cash"
	RoleAccountsReceivable   AccountRole = "accounts_receivable"
	RoleAccountsPayable      AccountRole = "accounts_payable"
	RoleSalesTaxPayable      AccountRole = "sales_tax_payable"
	RoleSalesTaxReceivable   AccountRole = "sales_tax_receivable"
	RoleRetainageReceivable  AccountRole = "retainage_receivable"
	RoleRetainagePayable     AccountRole = "retainage_payable"
	RoleRentReceivable       AccountRole = "rent_receivable"
	RoleDeferredRentRevenue  AccountRole = "deferred_rental_revenue"
	RoleRentalIncome         AccountRole = "rental_income"
	RoleLateFeeRevenue       AccountRole = "late_fee_revenue"
	RoleEquipmentAsset       AccountRole = "equipment_asset"
	RoleAccumDepreciation    AccountRole = "accumulated_depreciation"
	RoleDepreciationExpense  AccountRole = "depreciation_expense"
	RoleRepairsMaintenance   AccountRole = "repairs_maintenance"
	RoleBadDebtExpense       AccountRole = "bad_debt_expense"
	RoleAllowanceDoubtful    AccountRole = "allowance_doubtful_accounts"
	RoleWagesPayable         AccountRole = "wages_payable"
	RoleLaborExpense         AccountRole = "labor_expense"
	RolePayrollTaxPayable    AccountRole = "payroll_tax_payable"
	RoleRetainedEarnings     AccountRole = "retained_earnings"
	RoleConstructionRevenue  AccountRole = "construction_revenue"
)

// AccountMap is the result of a chart-of-accounts resolution: role to concrete
// account id. Roles that could not be resolved are absent; callers no-op on
// missing roles rather than failing.
type AccountMap map[AccountRole]string

// Get returns the account id for role and whether it resolved.
func (m AccountMap) Get(role AccountRole) (string, bool) {
	id, ok := m[role]
	return id, ok
}
