package services

import (
	portsrepo "github.com/buildbooks/construction_gl/internal/core/ports/repositories"
	portssvc "github.com/buildbooks/construction_gl/internal/core/ports/services"
	"github.com/buildbooks/construction_gl/internal/platform/config"
)

// NewServiceContainer creates a service container with properly initialized
// dependencies. Construction order follows the dependency chain: accounts,
// then the resolver and journal service, then everything built on them.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo)
	container.Resolver = NewResolverService(container.Account)
	container.Journal = NewJournalService(repos.JournalRepo, container.Account)
	container.Posting = NewPostingService(container.Resolver, container.Journal, repos.InvoiceRepo)
	container.Producer = NewProducerService(repos.LeaseRepo, repos.EquipmentRepo)
	container.Aging = NewAgingService(repos.InvoiceRepo, repos.ReportingRepo)
	container.Statement = NewStatementService(repos.ReportingRepo, repos.JournalRepo, container.Account)
	container.Recurring = NewRecurringService(
		container.Resolver,
		container.Journal,
		repos.JournalRepo,
		container.Aging,
		repos.LeaseRepo,
		repos.EquipmentRepo,
		repos.TimeclockRepo,
		WithDispatchSize(cfg.GenerationDispatchSize),
	)

	return container
}

// Compile-time interface checks for the service implementations.
var (
	_ portssvc.AccountSvcFacade   = (*accountService)(nil)
	_ portssvc.ResolverSvcFacade  = (*resolverService)(nil)
	_ portssvc.JournalSvcFacade   = (*journalService)(nil)
	_ portssvc.PostingSvcFacade   = (*postingService)(nil)
	_ portssvc.ProducerSvcFacade  = (*producerService)(nil)
	_ portssvc.RecurringSvcFacade = (*recurringService)(nil)
	_ portssvc.StatementSvcFacade = (*statementService)(nil)
	_ portssvc.AgingSvcFacade     = (*agingService)(nil)
)
