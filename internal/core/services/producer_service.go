package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/buildbooks/construction_gl/internal/apperrors"
	"github.com/buildbooks/construction_gl/internal/core/domain"
	portsrepo "github.com/buildbooks/construction_gl/internal/core/ports/repositories"
	portssvc "github.com/buildbooks/construction_gl/internal/core/ports/services"
)

// producerService registers the upstream records the generators consume:
// leases for rent accrual, equipment for depreciation.
type producerService struct {
	BaseService
	leaseRepo     portsrepo.LeaseRepositoryFacade
	equipmentRepo portsrepo.EquipmentRepositoryFacade
}

// NewProducerService creates a new ProducerService.
func NewProducerService(leaseRepo portsrepo.LeaseRepositoryFacade, equipmentRepo portsrepo.EquipmentRepositoryFacade) portssvc.ProducerSvcFacade {
	return &producerService{leaseRepo: leaseRepo, equipmentRepo: equipmentRepo}
}

var _ portssvc.ProducerSvcFacade = (*producerService)(nil)

// RegisterLease validates and stores a lease so the rent accrual generator
// picks it up on its next run.
func (s *producerService) RegisterLease(ctx context.Context, lease domain.Lease) (*domain.Lease, error) {
	if lease.MonthlyRent.IsNegative() {
		return nil, fmt.Errorf("%w: monthly rent must be non-negative", apperrors.ErrValidation)
	}
	if lease.EndDate.Before(lease.StartDate) {
		return nil, fmt.Errorf("%w: lease end date precedes start date", apperrors.ErrValidation)
	}
	if lease.LeaseID == "" {
		lease.LeaseID = uuid.NewString()
	}

	if err := s.leaseRepo.SaveLease(ctx, lease); err != nil {
		return nil, fmt.Errorf("failed to save lease %s: %w", lease.LeaseID, err)
	}

	s.LogInfo(ctx, "Lease registered",
		slog.String("lease_id", lease.LeaseID),
		slog.String("tenant", lease.TenantName))
	return &lease, nil
}

// RegisterEquipment validates and stores an equipment item for the
// depreciation generator.
func (s *producerService) RegisterEquipment(ctx context.Context, equipment domain.Equipment) (*domain.Equipment, error) {
	if equipment.Cost.IsNegative() || equipment.SalvageValue.IsNegative() {
		return nil, fmt.Errorf("%w: cost and salvage value must be non-negative", apperrors.ErrValidation)
	}
	if equipment.SalvageValue.GreaterThan(equipment.Cost) {
		return nil, fmt.Errorf("%w: salvage value exceeds cost", apperrors.ErrValidation)
	}
	if equipment.UsefulLifeMonths <= 0 {
		return nil, fmt.Errorf("%w: useful life must be positive", apperrors.ErrValidation)
	}
	if equipment.EquipmentID == "" {
		equipment.EquipmentID = uuid.NewString()
	}

	if err := s.equipmentRepo.SaveEquipment(ctx, equipment); err != nil {
		return nil, fmt.Errorf("failed to save equipment %s: %w", equipment.EquipmentID, err)
	}

	s.LogInfo(ctx, "Equipment registered",
		slog.String("equipment_id", equipment.EquipmentID),
		slog.String("name", equipment.Name))
	return &equipment, nil
}
