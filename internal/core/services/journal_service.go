package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/buildbooks/construction_gl/internal/apperrors"
	"github.com/buildbooks/construction_gl/internal/core/domain"
	portsrepo "github.com/buildbooks/construction_gl/internal/core/ports/repositories"
	portssvc "github.com/buildbooks/construction_gl/internal/core/ports/services"
	"github.com/buildbooks/construction_gl/internal/dto"
	"github.com/buildbooks/construction_gl/internal/utils/accounting"
	"github.com/buildbooks/construction_gl/internal/utils/chunk"
)

// headerChunkSize bounds how many headers or lines go into one batch insert.
const headerChunkSize = 500

// journalService provides journal entry lifecycle operations.
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryFacade
	accountSvc  portssvc.AccountSvcFacade
	now         func() time.Time
}

// JournalServiceOption is a functional option for configuring the journal service.
type JournalServiceOption func(*journalService)

// WithClock overrides the service clock, mainly for tests.
func WithClock(now func() time.Time) JournalServiceOption {
	return func(s *journalService) {
		s.now = now
	}
}

// NewJournalService creates a new JournalService.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, accountSvc portssvc.AccountSvcFacade, options ...JournalServiceOption) portssvc.JournalSvcFacade {
	svc := &journalService{
		journalRepo: journalRepo,
		accountSvc:  accountSvc,
		now:         func() time.Time { return time.Now().UTC() },
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// buildEntry materializes the header and lines from a request.
func (s *journalService) buildEntry(req dto.CreateEntryRequest, status domain.EntryStatus, userID string, now time.Time) (domain.JournalEntry, []domain.JournalEntryLine) {
	entryID := uuid.NewString()
	entry := domain.JournalEntry{
		EntryID:     entryID,
		CompanyID:   req.CompanyID,
		EntryDate:   req.EntryDate,
		Description: req.Description,
		Status:      status,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if req.Reference != nil {
		entry.Reference = *req.Reference
	}
	if status == domain.Posted {
		entry.PostedBy = userID
		postedAt := now
		entry.PostedAt = &postedAt
	}
	return entry, req.ToDomainLines(entryID, uuid.NewString)
}

// validateLines rejects negative amounts and entries touching fewer than two
// accounts. Balance is checked separately: drafts may be unbalanced.
func (s *journalService) validateLines(lines []domain.JournalEntryLine) error {
	if len(lines) < 2 {
		return fmt.Errorf("%w: entry must have at least two lines", apperrors.ErrValidation)
	}
	accountSet := make(map[string]bool, len(lines))
	for _, l := range lines {
		if l.Debit.IsNegative() || l.Credit.IsNegative() {
			return fmt.Errorf("%w: debit and credit amounts must be non-negative", apperrors.ErrValidation)
		}
		accountSet[l.AccountID] = true
	}
	if len(accountSet) < 2 {
		return fmt.Errorf("%w: entry must affect at least two different accounts", apperrors.ErrValidation)
	}
	return nil
}

// CreateDraft persists a header and lines with no balance check; drafts are
// explicitly allowed to be unbalanced while under edit.
func (s *journalService) CreateDraft(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	now := s.now()
	entry, lines := s.buildEntry(req, domain.Draft, creatorUserID, now)
	if err := s.validateLines(lines); err != nil {
		return nil, err
	}

	number, err := s.journalRepo.NextEntryNumber(ctx, req.CompanyID, now.Year())
	if err != nil {
		return nil, fmt.Errorf("failed to reserve entry number: %w", err)
	}
	entry.EntryNumber = number

	if err := s.journalRepo.SaveEntry(ctx, entry, lines); err != nil {
		return nil, fmt.Errorf("failed to save draft entry: %w", err)
	}

	s.LogInfo(ctx, "Draft entry created",
		slog.String("entry_id", entry.EntryID),
		slog.String("entry_number", entry.EntryNumber))
	return &entry, nil
}

// CreatePosted validates the double-entry invariant and persists the entry
// directly in POSTED status. Unbalanced requests are rejected before any
// write, with the offending totals logged.
func (s *journalService) CreatePosted(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	now := s.now()
	entry, lines := s.buildEntry(req, domain.Posted, creatorUserID, now)
	if err := s.validateLines(lines); err != nil {
		return nil, err
	}

	if !accounting.IsBalanced(lines) {
		debits, credits := accounting.LineTotals(lines)
		s.LogWarn(ctx, "Rejected unbalanced entry at post time",
			slog.String("company_id", req.CompanyID),
			slog.String("description", req.Description),
			slog.String("total_debits", debits.String()),
			slog.String("total_credits", credits.String()))
		return nil, fmt.Errorf("%w: debits %s, credits %s", apperrors.ErrUnbalanced, debits.String(), credits.String())
	}

	number, err := s.journalRepo.NextEntryNumber(ctx, req.CompanyID, now.Year())
	if err != nil {
		return nil, fmt.Errorf("failed to reserve entry number: %w", err)
	}
	entry.EntryNumber = number

	if err := s.journalRepo.SaveEntry(ctx, entry, lines); err != nil {
		return nil, fmt.Errorf("failed to save posted entry: %w", err)
	}

	s.LogInfo(ctx, "Posted entry created",
		slog.String("entry_id", entry.EntryID),
		slog.String("entry_number", entry.EntryNumber),
		slog.String("reference", entry.Reference.String()))
	return &entry, nil
}

// Post transitions a draft entry to posted. The transition enforces balance;
// posting an entry that is not currently a draft matches zero rows and is a
// silent no-op.
func (s *journalService) Post(ctx context.Context, entryID string, postingUserID string) error {
	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return fmt.Errorf("failed to load lines for posting: %w", err)
	}

	if !accounting.IsBalanced(lines) {
		debits, credits := accounting.LineTotals(lines)
		s.LogWarn(ctx, "Refusing to post unbalanced draft",
			slog.String("entry_id", entryID),
			slog.String("total_debits", debits.String()),
			slog.String("total_credits", credits.String()))
		return fmt.Errorf("%w: debits %s, credits %s", apperrors.ErrUnbalanced, debits.String(), credits.String())
	}

	rows, err := s.journalRepo.UpdateEntryStatus(ctx, entryID, domain.Draft, domain.Posted, postingUserID, s.now())
	if err != nil {
		return fmt.Errorf("failed to post entry %s: %w", entryID, err)
	}
	if rows == 0 {
		s.LogDebug(ctx, "Post matched zero rows, entry is not a draft", slog.String("entry_id", entryID))
		return nil
	}

	s.LogInfo(ctx, "Entry posted", slog.String("entry_id", entryID))
	return nil
}

// Void marks an entry voided. No reversing entry is generated; voided entries
// simply drop out of every aggregation.
func (s *journalService) Void(ctx context.Context, entryID string, voidingUserID string) error {
	if err := s.journalRepo.VoidEntry(ctx, entryID, voidingUserID, s.now()); err != nil {
		return fmt.Errorf("failed to void entry %s: %w", entryID, err)
	}
	s.LogInfo(ctx, "Entry voided", slog.String("entry_id", entryID))
	return nil
}

// BulkCreatePosted validates balance per entry up front, discards unbalanced
// ones into an error count, then batch-inserts headers and lines in chunks.
// Generated header ids come back in insertion order and map positionally to
// the source entries. A failed chunk is counted; remaining chunks proceed.
func (s *journalService) BulkCreatePosted(ctx context.Context, reqs []dto.CreateEntryRequest, creatorUserID string) (*domain.BulkPostResult, error) {
	now := s.now()
	result := &domain.BulkPostResult{}

	type pending struct {
		entry domain.JournalEntry
		lines []domain.JournalEntryLine
	}
	valid := make([]pending, 0, len(reqs))
	for _, req := range reqs {
		entry, lines := s.buildEntry(req, domain.Posted, creatorUserID, now)
		if err := s.validateLines(lines); err != nil {
			result.Unbalanced++
			continue
		}
		if !accounting.IsBalanced(lines) {
			debits, credits := accounting.LineTotals(lines)
			s.LogWarn(ctx, "Skipping unbalanced entry in bulk post",
				slog.String("description", req.Description),
				slog.String("total_debits", debits.String()),
				slog.String("total_credits", credits.String()))
			result.Unbalanced++
			continue
		}

		number, err := s.journalRepo.NextEntryNumber(ctx, req.CompanyID, now.Year())
		if err != nil {
			result.Errors++
			continue
		}
		entry.EntryNumber = number
		valid = append(valid, pending{entry: entry, lines: lines})
	}

	// Headers first, chunked; ids return in insertion order so each maps
	// back to its source entry positionally.
	var allLines []domain.JournalEntryLine
	for _, group := range chunk.Slices(valid, headerChunkSize) {
		headers := make([]domain.JournalEntry, len(group))
		for i, p := range group {
			headers[i] = p.entry
		}
		ids, err := s.journalRepo.InsertEntryHeaders(ctx, headers)
		if err != nil {
			s.LogError(ctx, err, "Header chunk failed in bulk post", slog.Int("chunk_size", len(group)))
			result.Errors += len(group)
			continue
		}
		for i, p := range group {
			for j := range p.lines {
				p.lines[j].EntryID = ids[i]
			}
			allLines = append(allLines, p.lines...)
			result.EntryIDs = append(result.EntryIDs, ids[i])
		}
		result.Created += len(group)
	}

	for _, lineChunk := range chunk.Slices(allLines, headerChunkSize) {
		if err := s.journalRepo.InsertLines(ctx, lineChunk); err != nil {
			s.LogError(ctx, err, "Line chunk failed in bulk post", slog.Int("chunk_size", len(lineChunk)))
			result.Errors++
		}
	}

	s.LogInfo(ctx, "Bulk post complete",
		slog.Int("created", result.Created),
		slog.Int("unbalanced", result.Unbalanced),
		slog.Int("errors", result.Errors))
	return result, nil
}

// GetEntry retrieves a header with its lines.
func (s *journalService) GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, []domain.JournalEntryLine, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, nil, err
	}
	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, nil, err
	}
	return entry, lines, nil
}

// GetEntryByReference retrieves the entry booked under a generator reference,
// with its lines. This is how callers check what an idempotent generator
// produced for a given entity and period.
func (s *journalService) GetEntryByReference(ctx context.Context, companyID string, ref domain.EntryReference) (*domain.JournalEntry, []domain.JournalEntryLine, error) {
	entry, err := s.journalRepo.FindEntryByReference(ctx, companyID, ref)
	if err != nil {
		return nil, nil, err
	}
	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entry.EntryID)
	if err != nil {
		return nil, nil, err
	}
	return entry, lines, nil
}

// ListEntries retrieves a page of entries for a company.
func (s *journalService) ListEntries(ctx context.Context, companyID string, limit, offset int) ([]domain.JournalEntry, error) {
	return s.journalRepo.ListEntries(ctx, companyID, limit, offset)
}
