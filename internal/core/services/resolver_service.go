package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/buildbooks/construction_gl/internal/core/domain"
	portssvc "github.com/buildbooks/construction_gl/internal/core/ports/services"
)

// resolverService resolves semantic account roles into concrete account ids.
// Resolution is stateless: every call fetches the company's active accounts
// once and scans them per role, so callers should resolve once per logical
// operation rather than once per entity.
type resolverService struct {
	BaseService
	accountSvc portssvc.AccountSvcFacade

	// autoCreate controls the self-healing fallback that inserts missing
	// standard accounts. On by default; disabled in read-only contexts.
	autoCreate bool
}

// ResolverServiceOption is a functional option for configuring the resolver.
type ResolverServiceOption func(*resolverService)

// WithoutAutoCreate disables the find-or-create fallback for unmatched roles.
func WithoutAutoCreate() ResolverServiceOption {
	return func(s *resolverService) {
		s.autoCreate = false
	}
}

// NewResolverService creates a new chart-of-accounts resolver.
func NewResolverService(accountSvc portssvc.AccountSvcFacade, options ...ResolverServiceOption) portssvc.ResolverSvcFacade {
	svc := &resolverService{
		accountSvc: accountSvc,
		autoCreate: true,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ResolverSvcFacade = (*resolverService)(nil)

// Resolve fetches all active accounts once and resolves every known role by
// deterministic first-match scan. Roles that neither match nor auto-create
// are left out of the map; dependent operations no-op on the missing role
// instead of failing.
func (s *resolverService) Resolve(ctx context.Context, companyID string) (domain.AccountMap, error) {
	accounts, err := s.accountSvc.ListActive(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts for resolution: %w", err)
	}

	resolved := make(domain.AccountMap, len(rolePatterns))
	for _, pattern := range rolePatterns {
		if id, ok := MatchRole(accounts, pattern); ok {
			resolved[pattern.Role] = id
			continue
		}

		if !s.autoCreate {
			continue
		}

		account, err := s.accountSvc.FindOrCreate(ctx, companyID,
			pattern.CreateNumber, pattern.CreateName, pattern.CreateType,
			pattern.CreateSubType, pattern.CreateNormalBalance(),
			pattern.CreateDescription)
		if err != nil {
			// Degraded automation: log and leave the role unresolved.
			s.LogWarn(ctx, "Could not auto-create account for role",
				slog.String("company_id", companyID),
				slog.String("role", string(pattern.Role)),
				slog.String("error", err.Error()))
			continue
		}
		resolved[pattern.Role] = account.AccountID
	}

	s.LogDebug(ctx, "Chart of accounts resolved",
		slog.String("company_id", companyID),
		slog.Int("roles_resolved", len(resolved)),
		slog.Int("roles_total", len(rolePatterns)))
	return resolved, nil
}
