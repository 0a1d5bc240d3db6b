package pgsql

import (
	portsrepo "github.com/buildbooks/construction_gl/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:   newPgxAccountRepository(dbPool),
		JournalRepo:   newPgxJournalRepository(dbPool),
		ReportingRepo: newPgxReportingRepository(dbPool),
		InvoiceRepo:   newPgxInvoiceRepository(dbPool),
		LeaseRepo:     newPgxLeaseRepository(dbPool),
		EquipmentRepo: newPgxEquipmentRepository(dbPool),
		TimeclockRepo: newPgxTimeclockRepository(dbPool),
	}
}
