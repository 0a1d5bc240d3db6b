package repositories

import (
	"context"
	"time"

	"github.com/buildbooks/construction_gl/internal/core/domain"
	"github.com/shopspring/decimal"
)

// InvoiceReader defines read operations over upstream invoice records.
type InvoiceReader interface {
	// FindInvoiceByID retrieves one invoice.
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// ListOpenReceivables retrieves non-voided receivable invoices with a
	// positive balance due as of the given date.
	ListOpenReceivables(ctx context.Context, companyID string, asOf time.Time) ([]domain.Invoice, error)
}

// InvoiceWriter persists invoice records and applies collections to them.
type InvoiceWriter interface {
	SaveInvoice(ctx context.Context, invoice domain.Invoice) error

	// ApplyPaymentToInvoice reduces an invoice's balance due, flooring at
	// zero. Returns ErrNotFound when the invoice does not exist.
	ApplyPaymentToInvoice(ctx context.Context, invoiceID string, amount decimal.Decimal) error
}

// InvoiceRepositoryFacade combines invoice reader and writer interfaces.
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}

// LeaseRepositoryFacade defines persistence over lease records.
type LeaseRepositoryFacade interface {
	FindLeaseByID(ctx context.Context, leaseID string) (*domain.Lease, error)
	ListActiveLeases(ctx context.Context, companyID string) ([]domain.Lease, error)
	SaveLease(ctx context.Context, lease domain.Lease) error
}

// EquipmentRepositoryFacade defines persistence over equipment records.
type EquipmentRepositoryFacade interface {
	FindEquipmentByID(ctx context.Context, equipmentID string) (*domain.Equipment, error)
	ListEquipment(ctx context.Context, companyID string) ([]domain.Equipment, error)
	SaveEquipment(ctx context.Context, equipment domain.Equipment) error
}

// TimeclockRepositoryFacade defines persistence over per-day labor aggregates.
type TimeclockRepositoryFacade interface {
	ListDays(ctx context.Context, companyID string, from, to time.Time) ([]domain.TimeclockDay, error)
	SaveDay(ctx context.Context, day domain.TimeclockDay) error
}
