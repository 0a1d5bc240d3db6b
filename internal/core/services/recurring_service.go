package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/buildbooks/construction_gl/internal/core/domain"
	portsrepo "github.com/buildbooks/construction_gl/internal/core/ports/repositories"
	portssvc "github.com/buildbooks/construction_gl/internal/core/ports/services"
	"github.com/buildbooks/construction_gl/internal/dto"
	"github.com/buildbooks/construction_gl/internal/utils/accounting"
	"github.com/buildbooks/construction_gl/internal/utils/chunk"
	"github.com/buildbooks/construction_gl/internal/utils/dates"
)

const (
	// defaultDispatchSize bounds how many entry creations run concurrently
	// in one generator sub-batch.
	defaultDispatchSize = 50
)

// candidateEntry is one (entity, period) the generator may need to book: its
// idempotency reference plus the request that creates it.
type candidateEntry struct {
	ref     domain.EntryReference
	request dto.CreateEntryRequest
}

// recurringService produces periodic entries exactly once per (entity,
// period). Correctness rests on the reference idempotency keys, not locks:
// a retried or concurrent run only fills in still-missing periods.
type recurringService struct {
	BaseService
	resolver      portssvc.ResolverSvcFacade
	journalSvc    portssvc.JournalSvcFacade
	journalRepo   portsrepo.JournalRepositoryFacade
	agingSvc      portssvc.AgingSvcFacade
	leaseRepo     portsrepo.LeaseRepositoryFacade
	equipmentRepo portsrepo.EquipmentRepositoryFacade
	timeclockRepo portsrepo.TimeclockRepositoryFacade
	dispatchSize  int
}

// RecurringServiceOption customizes the generator.
type RecurringServiceOption func(*recurringService)

// WithDispatchSize overrides the concurrent dispatch sub-batch size.
func WithDispatchSize(size int) RecurringServiceOption {
	return func(s *recurringService) {
		if size > 0 {
			s.dispatchSize = size
		}
	}
}

// NewRecurringService creates the recurring entry generator.
func NewRecurringService(
	resolver portssvc.ResolverSvcFacade,
	journalSvc portssvc.JournalSvcFacade,
	journalRepo portsrepo.JournalRepositoryFacade,
	agingSvc portssvc.AgingSvcFacade,
	leaseRepo portsrepo.LeaseRepositoryFacade,
	equipmentRepo portsrepo.EquipmentRepositoryFacade,
	timeclockRepo portsrepo.TimeclockRepositoryFacade,
	opts ...RecurringServiceOption,
) portssvc.RecurringSvcFacade {
	s := &recurringService{
		resolver:      resolver,
		journalSvc:    journalSvc,
		journalRepo:   journalRepo,
		agingSvc:      agingSvc,
		leaseRepo:     leaseRepo,
		equipmentRepo: equipmentRepo,
		timeclockRepo: timeclockRepo,
		dispatchSize:  defaultDispatchSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.RecurringSvcFacade = (*recurringService)(nil)

// generateMissing probes which candidate references already exist and creates
// only the missing ones, dispatched in bounded concurrent sub-batches. Each
// creation is individually idempotent, so partial failure leaves a state the
// next run completes.
func (s *recurringService) generateMissing(ctx context.Context, companyID string, candidates []candidateEntry, userID string) (*domain.GenerationResult, error) {
	result := &domain.GenerationResult{Considered: len(candidates)}
	if len(candidates) == 0 {
		return result, nil
	}

	refs := make([]domain.EntryReference, len(candidates))
	for i, c := range candidates {
		refs[i] = c.ref
	}
	existing, err := s.journalRepo.FindExistingReferences(ctx, companyID, refs)
	if err != nil {
		return nil, fmt.Errorf("failed to probe existing references: %w", err)
	}

	var missing []candidateEntry
	for _, c := range candidates {
		if existing[c.ref.String()] {
			result.Existing++
			continue
		}
		missing = append(missing, c)
	}

	var mu sync.Mutex
	for _, batch := range chunk.Slices(missing, s.dispatchSize) {
		var wg sync.WaitGroup
		for _, c := range batch {
			wg.Add(1)
			go func(c candidateEntry) {
				defer wg.Done()
				if _, err := s.journalSvc.CreatePosted(ctx, c.request, userID); err != nil {
					s.LogError(ctx, err, "Failed to create generated entry",
						slog.String("reference", c.ref.String()))
					mu.Lock()
					result.Errors++
					mu.Unlock()
					return
				}
				mu.Lock()
				result.Created++
				mu.Unlock()
			}(c)
		}
		wg.Wait()
	}

	return result, nil
}

// GenerateRentAccruals books one month of rent per active lease for every
// month of the lease term. Auto-renewing leases are extended by one
// additional full term (capped at fifteen years from the original start) so
// renewal-period entries exist before the renewal happens.
func (s *recurringService) GenerateRentAccruals(ctx context.Context, companyID string, asOf time.Time, userID string) (*domain.GenerationResult, error) {
	accounts, err := s.resolver.Resolve(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve accounts for rent accrual: %w", err)
	}
	receivableID, okRecv := accounts.Get(domain.RoleRentReceivable)
	incomeID, okIncome := accounts.Get(domain.RoleRentalIncome)
	if !okRecv || !okIncome {
		s.LogWarn(ctx, "Rent accounts unresolved, skipping rent accrual generation",
			slog.String("company_id", companyID))
		return &domain.GenerationResult{}, nil
	}

	leases, err := s.leaseRepo.ListActiveLeases(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active leases: %w", err)
	}

	var candidates []candidateEntry
	for _, lease := range leases {
		if !lease.MonthlyRent.IsPositive() || lease.PaidInAdvance {
			// Prepaid leases have nothing to accrue; the recognition
			// generator releases their deferred balance instead.
			continue
		}
		end := dates.ExtendForRenewal(lease.StartDate, lease.EndDate, lease.AutoRenew)
		for _, month := range dates.MonthsInRange(lease.StartDate, end) {
			period := dates.MonthKey(month)
			candidates = append(candidates, candidateEntry{
				ref: domain.EntryReference{Category: domain.RefRentAccrual, EntityID: lease.LeaseID, Period: period},
				request: dto.CreateEntryRequest{
					CompanyID:   companyID,
					EntryDate:   month,
					Description: fmt.Sprintf("Rent accrual %s - %s", period, lease.TenantName),
					Reference:   &domain.EntryReference{Category: domain.RefRentAccrual, EntityID: lease.LeaseID, Period: period},
					Lines: []dto.CreateEntryLineRequest{
						{AccountID: receivableID, Debit: lease.MonthlyRent, Description: "Rent receivable", PropertyID: lease.PropertyID},
						{AccountID: incomeID, Credit: lease.MonthlyRent, Description: "Rental income", PropertyID: lease.PropertyID},
					},
				},
			})
		}
	}

	result, err := s.generateMissing(ctx, companyID, candidates, userID)
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Rent accrual generation complete",
		slog.String("company_id", companyID),
		slog.Int("considered", result.Considered),
		slog.Int("created", result.Created))
	return result, nil
}

// GenerateRentRecognition books one month of earned rent per prepaid lease,
// releasing deferred rental revenue into income. Month enumeration and
// renewal extension follow the accrual generator, with the same
// one-entry-per-(lease, month) idempotency.
func (s *recurringService) GenerateRentRecognition(ctx context.Context, companyID string, asOf time.Time, userID string) (*domain.GenerationResult, error) {
	accounts, err := s.resolver.Resolve(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve accounts for rent recognition: %w", err)
	}
	deferredID, okDeferred := accounts.Get(domain.RoleDeferredRentRevenue)
	incomeID, okIncome := accounts.Get(domain.RoleRentalIncome)
	if !okDeferred || !okIncome {
		s.LogWarn(ctx, "Rent recognition accounts unresolved, skipping rent recognition generation",
			slog.String("company_id", companyID))
		return &domain.GenerationResult{}, nil
	}

	leases, err := s.leaseRepo.ListActiveLeases(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active leases: %w", err)
	}

	var candidates []candidateEntry
	for _, lease := range leases {
		if !lease.MonthlyRent.IsPositive() || !lease.PaidInAdvance {
			continue
		}
		end := dates.ExtendForRenewal(lease.StartDate, lease.EndDate, lease.AutoRenew)
		for _, month := range dates.MonthsInRange(lease.StartDate, end) {
			period := dates.MonthKey(month)
			candidates = append(candidates, candidateEntry{
				ref: domain.EntryReference{Category: domain.RefRentRecognition, EntityID: lease.LeaseID, Period: period},
				request: dto.CreateEntryRequest{
					CompanyID:   companyID,
					EntryDate:   month,
					Description: fmt.Sprintf("Rent recognition %s - %s", period, lease.TenantName),
					Reference:   &domain.EntryReference{Category: domain.RefRentRecognition, EntityID: lease.LeaseID, Period: period},
					Lines: []dto.CreateEntryLineRequest{
						{AccountID: deferredID, Debit: lease.MonthlyRent, Description: "Deferred rent earned", PropertyID: lease.PropertyID},
						{AccountID: incomeID, Credit: lease.MonthlyRent, Description: "Rental income", PropertyID: lease.PropertyID},
					},
				},
			})
		}
	}

	result, err := s.generateMissing(ctx, companyID, candidates, userID)
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Rent recognition generation complete",
		slog.String("company_id", companyID),
		slog.Int("considered", result.Considered),
		slog.Int("created", result.Created))
	return result, nil
}

// GenerateDepreciation books straight-line monthly depreciation per equipment
// item. The enumerated range is capped at min(schedule end, asOf): future
// periods are never booked, so a run three months after the last one creates
// exactly the three intervening entries.
func (s *recurringService) GenerateDepreciation(ctx context.Context, companyID string, asOf time.Time, userID string) (*domain.GenerationResult, error) {
	accounts, err := s.resolver.Resolve(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve accounts for depreciation: %w", err)
	}
	expenseID, okExp := accounts.Get(domain.RoleDepreciationExpense)
	accumID, okAccum := accounts.Get(domain.RoleAccumDepreciation)
	if !okExp || !okAccum {
		s.LogWarn(ctx, "Depreciation accounts unresolved, skipping depreciation generation",
			slog.String("company_id", companyID))
		return &domain.GenerationResult{}, nil
	}

	items, err := s.equipmentRepo.ListEquipment(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list equipment: %w", err)
	}

	var candidates []candidateEntry
	for _, item := range items {
		monthly := item.MonthlyDepreciation()
		if !monthly.IsPositive() {
			continue
		}
		scheduleEnd := dates.MonthStart(item.InServiceDate).AddDate(0, item.UsefulLifeMonths-1, 0)
		end := dates.MinTime(scheduleEnd, dates.MonthStart(asOf))
		for _, month := range dates.MonthsInRange(item.InServiceDate, end) {
			period := dates.MonthKey(month)
			candidates = append(candidates, candidateEntry{
				ref: domain.EntryReference{Category: domain.RefDepreciation, EntityID: item.EquipmentID, Period: period},
				request: dto.CreateEntryRequest{
					CompanyID:   companyID,
					EntryDate:   month,
					Description: fmt.Sprintf("Depreciation %s - %s", period, item.Name),
					Reference:   &domain.EntryReference{Category: domain.RefDepreciation, EntityID: item.EquipmentID, Period: period},
					Lines: []dto.CreateEntryLineRequest{
						{AccountID: expenseID, Debit: monthly, Description: "Depreciation expense"},
						{AccountID: accumID, Credit: monthly, Description: "Accumulated depreciation"},
					},
				},
			})
		}
	}

	result, err := s.generateMissing(ctx, companyID, candidates, userID)
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Depreciation generation complete",
		slog.String("company_id", companyID),
		slog.Int("considered", result.Considered),
		slog.Int("created", result.Created))
	return result, nil
}

// GenerateLaborAccruals books one accrual per (employee, day) over the range,
// skipping days already booked. Re-clock-outs within the same day go through
// UpsertLaborAccrual, which replaces the existing entry.
func (s *recurringService) GenerateLaborAccruals(ctx context.Context, companyID string, from, to time.Time, userID string) (*domain.GenerationResult, error) {
	accounts, err := s.resolver.Resolve(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve accounts for labor accrual: %w", err)
	}
	expenseID, okExp := accounts.Get(domain.RoleLaborExpense)
	wagesID, okWages := accounts.Get(domain.RoleWagesPayable)
	if !okExp || !okWages {
		s.LogWarn(ctx, "Labor accounts unresolved, skipping labor accrual generation",
			slog.String("company_id", companyID))
		return &domain.GenerationResult{}, nil
	}

	days, err := s.timeclockRepo.ListDays(ctx, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list timeclock days: %w", err)
	}

	var candidates []candidateEntry
	for _, day := range days {
		if !day.LaborCost.IsPositive() {
			continue
		}
		candidates = append(candidates, candidateEntry{
			ref:     laborReference(day),
			request: s.laborRequest(day, expenseID, wagesID),
		})
	}

	result, err := s.generateMissing(ctx, companyID, candidates, userID)
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Labor accrual generation complete",
		slog.String("company_id", companyID),
		slog.Int("considered", result.Considered),
		slog.Int("created", result.Created))
	return result, nil
}

// UpsertLaborAccrual re-books a single employee day from a fresh clock-out. A
// later clock-out on the same day deletes the day's existing entry and
// recreates it with updated totals, so one day never accumulates duplicates.
func (s *recurringService) UpsertLaborAccrual(ctx context.Context, day domain.TimeclockDay, userID string) (*domain.JournalEntry, error) {
	accounts, err := s.resolver.Resolve(ctx, day.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve accounts for labor accrual: %w", err)
	}
	expenseID, okExp := accounts.Get(domain.RoleLaborExpense)
	wagesID, okWages := accounts.Get(domain.RoleWagesPayable)
	if !okExp || !okWages {
		s.LogWarn(ctx, "Labor accounts unresolved, skipping labor accrual upsert",
			slog.String("employee_id", day.EmployeeID))
		return nil, nil
	}

	if err := s.timeclockRepo.SaveDay(ctx, day); err != nil {
		return nil, fmt.Errorf("failed to store timeclock day for employee %s: %w", day.EmployeeID, err)
	}

	ref := laborReference(day)
	if err := s.journalRepo.DeleteEntryByReference(ctx, day.CompanyID, ref); err != nil {
		return nil, fmt.Errorf("failed to replace existing labor accrual %s: %w", ref.String(), err)
	}

	if !day.LaborCost.IsPositive() {
		return nil, nil
	}
	return s.journalSvc.CreatePosted(ctx, s.laborRequest(day, expenseID, wagesID), userID)
}

func laborReference(day domain.TimeclockDay) domain.EntryReference {
	return domain.EntryReference{
		Category: domain.RefLaborAccrual,
		EntityID: day.EmployeeID,
		Period:   day.WorkDate.Format(dates.DayKeyFormat),
	}
}

func (s *recurringService) laborRequest(day domain.TimeclockDay, expenseID, wagesID string) dto.CreateEntryRequest {
	ref := laborReference(day)
	return dto.CreateEntryRequest{
		CompanyID:   day.CompanyID,
		EntryDate:   day.WorkDate,
		Description: fmt.Sprintf("Labor accrual %s - employee %s", ref.Period, day.EmployeeID),
		Reference:   &ref,
		Lines: []dto.CreateEntryLineRequest{
			{AccountID: expenseID, Debit: day.LaborCost, Description: fmt.Sprintf("%s hours worked", day.Hours.String()), ProjectID: day.ProjectID},
			{AccountID: wagesID, Credit: day.LaborCost, Description: "Accrued wages", ProjectID: day.ProjectID},
		},
	}
}

// AdjustBadDebtAllowance books one entry per (company, period) moving the
// allowance to the reserve the aging analysis requires. Deltas under one cent
// are immaterial and skipped; a negative delta books the recovery direction.
func (s *recurringService) AdjustBadDebtAllowance(ctx context.Context, companyID string, asOf time.Time, userID string) (*domain.JournalEntry, error) {
	accounts, err := s.resolver.Resolve(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve accounts for allowance adjustment: %w", err)
	}
	expenseID, okExp := accounts.Get(domain.RoleBadDebtExpense)
	allowanceID, okAllow := accounts.Get(domain.RoleAllowanceDoubtful)
	if !okExp || !okAllow {
		s.LogWarn(ctx, "Allowance accounts unresolved, skipping adjustment",
			slog.String("company_id", companyID))
		return nil, nil
	}

	period := dates.MonthKey(asOf)
	ref := domain.EntryReference{Category: domain.RefAllowanceAdjust, EntityID: companyID, Period: period}
	existing, err := s.journalRepo.FindExistingReferences(ctx, companyID, []domain.EntryReference{ref})
	if err != nil {
		return nil, fmt.Errorf("failed to probe allowance adjustment reference: %w", err)
	}
	if existing[ref.String()] {
		s.LogDebug(ctx, "Allowance already adjusted for period", slog.String("period", period))
		return nil, nil
	}

	delta, err := s.agingSvc.RequiredReserveDelta(ctx, companyID, allowanceID, asOf)
	if err != nil {
		return nil, err
	}
	if delta.Abs().LessThan(accounting.MaterialityThreshold) {
		s.LogDebug(ctx, "Allowance delta immaterial, skipping",
			slog.String("delta", delta.String()))
		return nil, nil
	}

	amount := delta.Abs()
	var lines []dto.CreateEntryLineRequest
	if delta.IsPositive() {
		lines = []dto.CreateEntryLineRequest{
			{AccountID: expenseID, Debit: amount, Description: "Bad debt expense"},
			{AccountID: allowanceID, Credit: amount, Description: "Increase allowance"},
		}
	} else {
		lines = []dto.CreateEntryLineRequest{
			{AccountID: allowanceID, Debit: amount, Description: "Release allowance"},
			{AccountID: expenseID, Credit: amount, Description: "Bad debt recovery"},
		}
	}

	req := dto.CreateEntryRequest{
		CompanyID:   companyID,
		EntryDate:   asOf,
		Description: fmt.Sprintf("Bad debt allowance adjustment %s", period),
		Reference:   &ref,
		Lines:       lines,
	}
	return s.journalSvc.CreatePosted(ctx, req, userID)
}
