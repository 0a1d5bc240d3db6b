package accounting

import (
	"strconv"

	"github.com/buildbooks/construction_gl/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceTolerance is the maximum |debits - credits| allowed for an entry to
// reach POSTED status.
var BalanceTolerance = decimal.RequireFromString("0.01")

// MaterialityThreshold is the smallest adjustment worth booking; deltas under
// one cent are skipped by the generators.
var MaterialityThreshold = decimal.RequireFromString("0.01")

// LineTotals sums the debit and credit columns of a set of entry lines.
func LineTotals(lines []domain.JournalEntryLine) (debits, credits decimal.Decimal) {
	debits = decimal.Zero
	credits = decimal.Zero
	for _, l := range lines {
		debits = debits.Add(l.Debit)
		credits = credits.Add(l.Credit)
	}
	return debits, credits
}

// IsBalanced reports whether the lines satisfy the double-entry invariant
// within the posting tolerance.
func IsBalanced(lines []domain.JournalEntryLine) bool {
	debits, credits := LineTotals(lines)
	return debits.Sub(credits).Abs().LessThan(BalanceTolerance)
}

// SignedBalance converts raw debit/credit totals into an account balance
// using the account's normal balance side.
func SignedBalance(normal domain.NormalBalance, debitTotal, creditTotal decimal.Decimal) decimal.Decimal {
	if normal == domain.DebitNormal {
		return debitTotal.Sub(creditTotal)
	}
	return creditTotal.Sub(debitTotal)
}

// IsCOGSNumber reports whether an account number falls in the 5000-5999 range
// reserved for cost-of-construction accounts. Non-numeric numbers are never
// COGS.
func IsCOGSNumber(number string) bool {
	n, err := strconv.Atoi(number)
	if err != nil {
		return false
	}
	return n >= 5000 && n <= 5999
}
