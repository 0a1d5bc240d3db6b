package repositories

import (
	"context"
	"time"

	"github.com/buildbooks/construction_gl/internal/core/domain"
)

// EntryWithLines pairs a journal entry header with its lines for batch writes.
type EntryWithLines struct {
	Entry domain.JournalEntry
	Lines []domain.JournalEntryLine
}

// JournalReader defines read operations for journal entry data.
type JournalReader interface {
	// FindEntryByID retrieves a journal entry header.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindEntryByReference retrieves the non-voided entry carrying a generator
	// reference, or apperrors.ErrNotFound when nothing booked under it.
	FindEntryByReference(ctx context.Context, companyID string, ref domain.EntryReference) (*domain.JournalEntry, error)

	// FindLinesByEntryID retrieves the lines belonging to one entry.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalEntryLine, error)

	// ListEntries retrieves a page of entries for a company, newest first.
	ListEntries(ctx context.Context, companyID string, limit, offset int) ([]domain.JournalEntry, error)

	// FindExistingReferences probes which of the candidate references already
	// have a non-voided entry. Implementations chunk the probe; the returned
	// set is keyed by EntryReference.String().
	FindExistingReferences(ctx context.Context, companyID string, refs []domain.EntryReference) (map[string]bool, error)

	// ListPostedLines returns one page of posted, non-voided lines joined with
	// their entry date and reference, for callers that aggregate in memory.
	ListPostedLines(ctx context.Context, companyID string, from, to time.Time, limit, offset int) ([]domain.PostedLine, error)
}

// JournalWriter defines write operations for journal entry data.
type JournalWriter interface {
	// SaveEntry persists a header and its lines in one database transaction.
	SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalEntryLine) error

	// InsertEntryHeaders inserts a batch of headers and returns their ids in
	// insertion order.
	InsertEntryHeaders(ctx context.Context, entries []domain.JournalEntry) ([]string, error)

	// InsertLines inserts a batch of lines.
	InsertLines(ctx context.Context, lines []domain.JournalEntryLine) error

	// UpdateEntryStatus conditionally moves an entry from one status to
	// another, returning the number of rows matched. Zero rows is the silent
	// no-op path, not an error.
	UpdateEntryStatus(ctx context.Context, entryID string, from, to domain.EntryStatus, postedBy string, postedAt time.Time) (int64, error)

	// VoidEntry unconditionally marks an entry voided.
	VoidEntry(ctx context.Context, entryID string, voidedBy string, voidedAt time.Time) error

	// DeleteEntryByReference removes the entry (and lines) carrying the given
	// reference. Used by the labor accrual upsert.
	DeleteEntryByReference(ctx context.Context, companyID string, ref domain.EntryReference) error

	// NextEntryNumber reserves the next human-readable entry number.
	NextEntryNumber(ctx context.Context, companyID string, year int) (string, error)
}

// JournalRepositoryFacade combines journal reader and writer interfaces.
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
