package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/buildbooks/construction_gl/internal/apperrors"
	"github.com/buildbooks/construction_gl/internal/core/domain"
	portsrepo "github.com/buildbooks/construction_gl/internal/core/ports/repositories"
	portssvc "github.com/buildbooks/construction_gl/internal/core/ports/services"
	"github.com/buildbooks/construction_gl/internal/dto"
)

// postingService turns upstream business events (invoice created, payment
// recorded, payroll run finalized) into posted journal entries. When a role
// the event needs cannot be resolved, the operation logs and returns a nil
// entry instead of failing: automation degrades, callers continue.
type postingService struct {
	BaseService
	resolver    portssvc.ResolverSvcFacade
	journalSvc  portssvc.JournalSvcFacade
	invoiceRepo portsrepo.InvoiceRepositoryFacade
}

// NewPostingService creates a new PostingService.
func NewPostingService(resolver portssvc.ResolverSvcFacade, journalSvc portssvc.JournalSvcFacade, invoiceRepo portsrepo.InvoiceRepositoryFacade) portssvc.PostingSvcFacade {
	return &postingService{resolver: resolver, journalSvc: journalSvc, invoiceRepo: invoiceRepo}
}

var _ portssvc.PostingSvcFacade = (*postingService)(nil)

// PostInvoice books an invoice-created event.
//
// Receivable: DR AR for the amount currently collectible, DR retainage
// receivable for any withheld portion, CR revenue for the subtotal and CR
// sales tax payable for the tax. When no tax account resolves, the tax folds
// into the revenue credit. Payable invoices mirror with AP and an expense or
// explicit GL account.
func (s *postingService) PostInvoice(ctx context.Context, invoice domain.Invoice, userID string) (*domain.JournalEntry, error) {
	if err := s.invoiceRepo.SaveInvoice(ctx, invoice); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("failed to record invoice %s: %w", invoice.InvoiceID, err)
		}
		// Re-posting a known invoice; the entry reference index still guards
		// against booking it twice.
		s.LogDebug(ctx, "Invoice already recorded", slog.String("invoice_id", invoice.InvoiceID))
	}

	accounts, err := s.resolver.Resolve(ctx, invoice.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve accounts for invoice posting: %w", err)
	}

	var lines []dto.CreateEntryLineRequest
	switch invoice.Type {
	case domain.Receivable:
		lines = s.receivableLines(ctx, invoice, accounts)
	case domain.Payable:
		lines = s.payableLines(ctx, invoice, accounts)
	default:
		return nil, fmt.Errorf("unknown invoice type %q", invoice.Type)
	}
	if lines == nil {
		// Required roles missing; degraded automation, not an error.
		return nil, nil
	}

	period := invoice.InvoiceDate.Format("2006-01")
	req := dto.CreateEntryRequest{
		CompanyID:   invoice.CompanyID,
		EntryDate:   invoice.InvoiceDate,
		Description: fmt.Sprintf("Invoice %s", invoice.InvoiceNumber),
		Reference:   &domain.EntryReference{Category: domain.RefInvoicePosting, EntityID: invoice.InvoiceID, Period: period},
		Lines:       lines,
	}
	return s.journalSvc.CreatePosted(ctx, req, userID)
}

func (s *postingService) receivableLines(ctx context.Context, invoice domain.Invoice, accounts domain.AccountMap) []dto.CreateEntryLineRequest {
	arID, ok := accounts.Get(domain.RoleAccountsReceivable)
	if !ok {
		s.LogWarn(ctx, "No AR account resolved, skipping invoice posting",
			slog.String("invoice_id", invoice.InvoiceID))
		return nil
	}

	revenueID := invoice.GLAccountID
	if revenueID == "" {
		revenueID, ok = accounts.Get(domain.RoleConstructionRevenue)
		if !ok {
			s.LogWarn(ctx, "No revenue account resolved, skipping invoice posting",
				slog.String("invoice_id", invoice.InvoiceID))
			return nil
		}
	}

	collectible := invoice.Total.Sub(invoice.RetainageAmount)
	lines := []dto.CreateEntryLineRequest{
		{AccountID: arID, Debit: collectible, Description: "Amount due"},
	}
	if invoice.RetainageAmount.IsPositive() {
		retainageID, ok := accounts.Get(domain.RoleRetainageReceivable)
		if !ok {
			// No retainage account: keep the whole total in AR.
			lines[0].Debit = invoice.Total
		} else {
			lines = append(lines, dto.CreateEntryLineRequest{
				AccountID: retainageID, Debit: invoice.RetainageAmount, Description: "Retainage withheld",
			})
		}
	}

	taxID, haveTax := accounts.Get(domain.RoleSalesTaxPayable)
	if invoice.TaxAmount.IsPositive() && haveTax {
		lines = append(lines,
			dto.CreateEntryLineRequest{AccountID: revenueID, Credit: invoice.Subtotal, Description: "Revenue"},
			dto.CreateEntryLineRequest{AccountID: taxID, Credit: invoice.TaxAmount, Description: "Sales tax collected"},
		)
	} else {
		// Tax folds into the revenue credit when no tax account resolves.
		lines = append(lines, dto.CreateEntryLineRequest{
			AccountID: revenueID, Credit: invoice.Subtotal.Add(invoice.TaxAmount), Description: "Revenue",
		})
	}
	return lines
}

func (s *postingService) payableLines(ctx context.Context, invoice domain.Invoice, accounts domain.AccountMap) []dto.CreateEntryLineRequest {
	apID, ok := accounts.Get(domain.RoleAccountsPayable)
	if !ok {
		s.LogWarn(ctx, "No AP account resolved, skipping invoice posting",
			slog.String("invoice_id", invoice.InvoiceID))
		return nil
	}

	expenseID := invoice.GLAccountID
	if expenseID == "" {
		expenseID, ok = accounts.Get(domain.RoleRepairsMaintenance)
		if !ok {
			s.LogWarn(ctx, "No expense account resolved, skipping invoice posting",
				slog.String("invoice_id", invoice.InvoiceID))
			return nil
		}
	}

	payable := invoice.Total.Sub(invoice.RetainageAmount)
	lines := []dto.CreateEntryLineRequest{
		{AccountID: expenseID, Debit: invoice.Total, Description: "Vendor invoice"},
		{AccountID: apID, Credit: payable, Description: "Amount owed"},
	}
	if invoice.RetainageAmount.IsPositive() {
		retainageID, ok := accounts.Get(domain.RoleRetainagePayable)
		if !ok {
			lines[1].Credit = invoice.Total
		} else {
			lines = append(lines, dto.CreateEntryLineRequest{
				AccountID: retainageID, Credit: invoice.RetainageAmount, Description: "Retainage withheld",
			})
		}
	}
	return lines
}

// PostPayment books a payment-recorded event against its invoice: cash in
// against AR for receivables, cash out against AP for payables. The direction
// comes from the referenced invoice; payments with no invoice book as cash
// receipts. The invoice's balance due is reduced after the entry books.
func (s *postingService) PostPayment(ctx context.Context, payment domain.Payment, userID string) (*domain.JournalEntry, error) {
	accounts, err := s.resolver.Resolve(ctx, payment.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve accounts for payment posting: %w", err)
	}

	cashID, ok := accounts.Get(domain.RoleCash)
	if !ok {
		s.LogWarn(ctx, "No cash account resolved, skipping payment posting",
			slog.String("payment_id", payment.PaymentID))
		return nil, nil
	}

	invoiceType := domain.Receivable
	if payment.InvoiceID != "" {
		invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, payment.InvoiceID)
		if err != nil {
			return nil, fmt.Errorf("failed to load invoice %s for payment: %w", payment.InvoiceID, err)
		}
		invoiceType = invoice.Type
	}

	var lines []dto.CreateEntryLineRequest
	var description string
	if invoiceType == domain.Payable {
		apID, ok := accounts.Get(domain.RoleAccountsPayable)
		if !ok {
			s.LogWarn(ctx, "No AP account resolved, skipping payment posting",
				slog.String("payment_id", payment.PaymentID))
			return nil, nil
		}
		description = fmt.Sprintf("Payment sent (%s)", payment.Method)
		lines = []dto.CreateEntryLineRequest{
			{AccountID: apID, Debit: payment.Amount, Description: "Applied to payable"},
			{AccountID: cashID, Credit: payment.Amount, Description: "Cash paid"},
		}
	} else {
		arID, ok := accounts.Get(domain.RoleAccountsReceivable)
		if !ok {
			s.LogWarn(ctx, "No AR account resolved, skipping payment posting",
				slog.String("payment_id", payment.PaymentID))
			return nil, nil
		}
		description = fmt.Sprintf("Payment received (%s)", payment.Method)
		lines = []dto.CreateEntryLineRequest{
			{AccountID: cashID, Debit: payment.Amount, Description: "Cash received"},
			{AccountID: arID, Credit: payment.Amount, Description: "Applied to receivable"},
		}
	}

	period := payment.PaymentDate.Format("2006-01")
	req := dto.CreateEntryRequest{
		CompanyID:   payment.CompanyID,
		EntryDate:   payment.PaymentDate,
		Description: description,
		Reference:   &domain.EntryReference{Category: domain.RefPaymentPosting, EntityID: payment.PaymentID, Period: period},
		Lines:       lines,
	}
	entry, err := s.journalSvc.CreatePosted(ctx, req, userID)
	if err != nil {
		return nil, err
	}

	if payment.InvoiceID != "" {
		if err := s.invoiceRepo.ApplyPaymentToInvoice(ctx, payment.InvoiceID, payment.Amount); err != nil {
			return nil, fmt.Errorf("entry %s booked but balance update failed: %w", entry.EntryID, err)
		}
	}
	return entry, nil
}

// PostPayrollRun books a payroll-run aggregate: gross labor cost against net
// wages payable plus the tax and deduction liabilities the out-of-scope tax
// calculator computed.
func (s *postingService) PostPayrollRun(ctx context.Context, run domain.PayrollRunSummary, userID string) (*domain.JournalEntry, error) {
	accounts, err := s.resolver.Resolve(ctx, run.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve accounts for payroll posting: %w", err)
	}

	laborID, okLabor := accounts.Get(domain.RoleLaborExpense)
	wagesID, okWages := accounts.Get(domain.RoleWagesPayable)
	taxID, okTax := accounts.Get(domain.RolePayrollTaxPayable)
	if !okLabor || !okWages {
		s.LogWarn(ctx, "Payroll accounts unresolved, skipping payroll posting",
			slog.String("payroll_run_id", run.PayrollRunID))
		return nil, nil
	}

	lines := []dto.CreateEntryLineRequest{
		{AccountID: laborID, Debit: run.GrossPay, Description: "Gross payroll"},
	}
	withheld := run.TaxTotal.Add(run.Deductions)
	if withheld.IsPositive() && okTax {
		lines = append(lines,
			dto.CreateEntryLineRequest{AccountID: wagesID, Credit: run.GrossPay.Sub(withheld), Description: "Net wages payable"},
			dto.CreateEntryLineRequest{AccountID: taxID, Credit: withheld, Description: "Taxes and deductions withheld"},
		)
	} else {
		lines = append(lines, dto.CreateEntryLineRequest{
			AccountID: wagesID, Credit: run.GrossPay, Description: "Wages payable",
		})
	}

	period := run.PeriodEnd.Format("2006-01")
	req := dto.CreateEntryRequest{
		CompanyID:   run.CompanyID,
		EntryDate:   run.PeriodEnd,
		Description: fmt.Sprintf("Payroll run %s", run.PayrollRunID),
		Reference:   &domain.EntryReference{Category: domain.RefPayrollPosting, EntityID: run.PayrollRunID, Period: period},
		Lines:       lines,
	}
	return s.journalSvc.CreatePosted(ctx, req, userID)
}
