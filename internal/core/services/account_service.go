package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/buildbooks/construction_gl/internal/apperrors"
	"github.com/buildbooks/construction_gl/internal/core/domain"
	portsrepo "github.com/buildbooks/construction_gl/internal/core/ports/repositories"
	portssvc "github.com/buildbooks/construction_gl/internal/core/ports/services"
)

// accountService provides chart-of-accounts operations.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// FindOrCreate looks an account up by number, inserting a new one with the
// given attributes when absent. A concurrent insert losing the race falls
// back to re-reading the winner.
func (s *accountService) FindOrCreate(ctx context.Context, companyID, number, name string, accountType domain.AccountType, subType string, normal domain.NormalBalance, description string) (*domain.Account, error) {
	existing, err := s.accountRepo.FindAccountByNumber(ctx, companyID, number)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up account %s: %w", number, err)
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:     uuid.NewString(),
		CompanyID:     companyID,
		Number:        number,
		Name:          name,
		AccountType:   accountType,
		SubType:       subType,
		NormalBalance: normal,
		Description:   description,
		IsActive:      true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     "system",
			LastUpdatedAt: now,
			LastUpdatedBy: "system",
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return s.accountRepo.FindAccountByNumber(ctx, companyID, number)
		}
		return nil, fmt.Errorf("failed to create account %s: %w", number, err)
	}

	s.LogInfo(ctx, "Created missing standard account",
		slog.String("company_id", companyID),
		slog.String("number", number),
		slog.String("name", name))
	return &account, nil
}

// GetAccountsByIDs retrieves accounts keyed by id.
func (s *accountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	return s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
}

// ListActive lists a company's active accounts ordered by number.
func (s *accountService) ListActive(ctx context.Context, companyID string) ([]domain.Account, error) {
	return s.accountRepo.ListActiveAccounts(ctx, companyID)
}
