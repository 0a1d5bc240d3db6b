package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/buildbooks/construction_gl/internal/core/domain"
	portsrepo "github.com/buildbooks/construction_gl/internal/core/ports/repositories"
	portssvc "github.com/buildbooks/construction_gl/internal/core/ports/services"
	"github.com/buildbooks/construction_gl/internal/utils/dates"
	"github.com/shopspring/decimal"
)

// agingBand is one fixed days-past-due band with its reserve rate. MaxDays of
// -1 marks the open-ended terminal band. Rates increase monotonically with
// age.
type agingBand struct {
	label   string
	minDays int
	maxDays int
	rate    decimal.Decimal
}

var defaultAgingBands = []agingBand{
	{label: "Current", minDays: 0, maxDays: 0, rate: decimal.Zero},
	{label: "1-30", minDays: 1, maxDays: 30, rate: decimal.RequireFromString("0.02")},
	{label: "31-60", minDays: 31, maxDays: 60, rate: decimal.RequireFromString("0.10")},
	{label: "61-90", minDays: 61, maxDays: 90, rate: decimal.RequireFromString("0.25")},
	{label: "91-120", minDays: 91, maxDays: 120, rate: decimal.RequireFromString("0.50")},
	{label: "121+", minDays: 121, maxDays: -1, rate: decimal.RequireFromString("0.90")},
}

// agingService buckets open receivables by days past due and computes the
// bad-debt reserve those buckets require.
type agingService struct {
	BaseService
	invoiceRepo   portsrepo.InvoiceReader
	reportingRepo portsrepo.ReportingRepository
}

// NewAgingService creates a new AgingService.
func NewAgingService(invoiceRepo portsrepo.InvoiceReader, reportingRepo portsrepo.ReportingRepository) portssvc.AgingSvcFacade {
	return &agingService{invoiceRepo: invoiceRepo, reportingRepo: reportingRepo}
}

var _ portssvc.AgingSvcFacade = (*agingService)(nil)

// bandIndex assigns a days-past-due count to its band.
func bandIndex(daysPastDue int) int {
	for i, b := range defaultAgingBands {
		if daysPastDue < b.minDays {
			continue
		}
		if b.maxDays < 0 || daysPastDue <= b.maxDays {
			return i
		}
	}
	return len(defaultAgingBands) - 1
}

// DaysPastDue counts whole days from dueDate to asOf, never negative.
func DaysPastDue(dueDate, asOf time.Time) int {
	days := int(asOf.Sub(dueDate).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// Analyze produces the aging analysis as of a date: each open receivable's
// balance due lands in one band, and each band's reserve is its face value
// times the band rate.
func (s *agingService) Analyze(ctx context.Context, companyID string, asOf time.Time) (*domain.AgingAnalysis, error) {
	invoices, err := s.invoiceRepo.ListOpenReceivables(ctx, companyID, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to list open receivables: %w", err)
	}

	buckets := make([]domain.AgingBucket, len(defaultAgingBands))
	for i, b := range defaultAgingBands {
		buckets[i] = domain.AgingBucket{
			Label:           b.label,
			MinDays:         b.minDays,
			MaxDays:         b.maxDays,
			ReserveRate:     b.rate,
			FaceValue:       decimal.Zero,
			RequiredReserve: decimal.Zero,
		}
	}

	analysis := &domain.AgingAnalysis{
		AsOf:                 asOf.Format(dates.DayKeyFormat),
		TotalFaceValue:       decimal.Zero,
		TotalRequiredReserve: decimal.Zero,
	}
	for _, inv := range invoices {
		idx := bandIndex(DaysPastDue(inv.DueDate, asOf))
		reserve := inv.BalanceDue.Mul(defaultAgingBands[idx].rate).Round(2)
		buckets[idx].FaceValue = buckets[idx].FaceValue.Add(inv.BalanceDue)
		buckets[idx].RequiredReserve = buckets[idx].RequiredReserve.Add(reserve)
		buckets[idx].InvoiceCount++
		analysis.TotalFaceValue = analysis.TotalFaceValue.Add(inv.BalanceDue)
		analysis.TotalRequiredReserve = analysis.TotalRequiredReserve.Add(reserve)
	}
	analysis.Buckets = buckets

	s.LogDebug(ctx, "Aging analysis complete",
		slog.String("company_id", companyID),
		slog.Int("open_invoices", len(invoices)),
		slog.String("required_reserve", analysis.TotalRequiredReserve.String()))
	return analysis, nil
}

// RequiredReserveDelta returns required reserve minus the currently posted
// allowance balance. A positive delta means the allowance must grow.
func (s *agingService) RequiredReserveDelta(ctx context.Context, companyID string, allowanceAccountID string, asOf time.Time) (decimal.Decimal, error) {
	analysis, err := s.Analyze(ctx, companyID, asOf)
	if err != nil {
		return decimal.Zero, err
	}

	posted, err := s.reportingRepo.GetAccountPostedBalance(ctx, allowanceAccountID, &asOf)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to read posted allowance balance: %w", err)
	}

	return analysis.TotalRequiredReserve.Sub(posted), nil
}
