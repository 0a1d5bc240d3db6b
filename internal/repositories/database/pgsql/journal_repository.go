package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/buildbooks/construction_gl/internal/apperrors"
	"github.com/buildbooks/construction_gl/internal/core/domain"
	portsrepo "github.com/buildbooks/construction_gl/internal/core/ports/repositories"
	"github.com/buildbooks/construction_gl/internal/utils/chunk"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// referenceProbeChunkSize bounds the number of reference tuples sent in one
// existence query.
const referenceProbeChunkSize = 500

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entry data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

const entryColumns = `entry_id, company_id, entry_number, entry_date, description, ref_category, ref_entity_id, ref_period, status, posted_by, posted_at, created_at, created_by, last_updated_at, last_updated_by`

const insertEntrySQL = `
	INSERT INTO journal_entries (` + entryColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
`

const insertLineSQL = `
	INSERT INTO journal_entry_lines (line_id, entry_id, account_id, debit, credit, description, project_id, property_id)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
`

func entryInsertArgs(e domain.JournalEntry) []interface{} {
	var postedBy sql.NullString
	if e.PostedBy != "" {
		postedBy = sql.NullString{String: e.PostedBy, Valid: true}
	}
	return []interface{}{
		e.EntryID, e.CompanyID, e.EntryNumber, e.EntryDate, e.Description,
		e.Reference.Category, e.Reference.EntityID, e.Reference.Period,
		e.Status, postedBy, e.PostedAt,
		e.CreatedAt, e.CreatedBy, e.LastUpdatedAt, e.LastUpdatedBy,
	}
}

func lineInsertArgs(l domain.JournalEntryLine) []interface{} {
	return []interface{}{
		l.LineID, l.EntryID, l.AccountID, l.Debit, l.Credit,
		l.Description, l.ProjectID, l.PropertyID,
	}
}

func scanEntry(row pgx.Row) (domain.JournalEntry, error) {
	var e domain.JournalEntry
	var postedBy sql.NullString
	err := row.Scan(
		&e.EntryID, &e.CompanyID, &e.EntryNumber, &e.EntryDate, &e.Description,
		&e.Reference.Category, &e.Reference.EntityID, &e.Reference.Period,
		&e.Status, &postedBy, &e.PostedAt,
		&e.CreatedAt, &e.CreatedBy, &e.LastUpdatedAt, &e.LastUpdatedBy,
	)
	if err != nil {
		return domain.JournalEntry{}, err
	}
	e.PostedBy = postedBy.String
	return e, nil
}

// SaveEntry persists a header and its lines in one database transaction, so a
// failed line insert never strands a header. A unique violation on the
// reference index surfaces as apperrors.ErrDuplicate.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalEntryLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // No-op once the transaction commits.

	if _, err := tx.Exec(ctx, insertEntrySQL, entryInsertArgs(entry)...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to insert journal entry %s: %w", entry.EntryID, err)
	}

	batch := &pgx.Batch{}
	for _, line := range lines {
		batch.Queue(insertLineSQL, lineInsertArgs(line)...)
	}
	br := tx.SendBatch(ctx, batch)
	for range lines {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("failed to insert line for entry %s: %w", entry.EntryID, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close line batch for entry %s: %w", entry.EntryID, err)
	}

	return r.Commit(ctx, tx)
}

// InsertEntryHeaders inserts a batch of headers and returns their ids in
// insertion order, so the caller can map pre-built lines onto them.
func (r *PgxJournalRepository) InsertEntryHeaders(ctx context.Context, entries []domain.JournalEntry) ([]string, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	batch := &pgx.Batch{}
	for _, entry := range entries {
		batch.Queue(insertEntrySQL, entryInsertArgs(entry)...)
	}

	br := r.Pool.SendBatch(ctx, batch)
	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return nil, fmt.Errorf("failed to insert entry header %s: %w", entry.EntryID, err)
		}
		ids = append(ids, entry.EntryID)
	}
	if err := br.Close(); err != nil {
		return nil, fmt.Errorf("failed to close header batch: %w", err)
	}
	return ids, nil
}

// InsertLines inserts a batch of lines for already-written headers.
func (r *PgxJournalRepository) InsertLines(ctx context.Context, lines []domain.JournalEntryLine) error {
	if len(lines) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, line := range lines {
		batch.Queue(insertLineSQL, lineInsertArgs(line)...)
	}

	br := r.Pool.SendBatch(ctx, batch)
	for _, line := range lines {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("failed to insert line %s: %w", line.LineID, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close line batch: %w", err)
	}
	return nil
}

// UpdateEntryStatus conditionally moves an entry between statuses. Zero rows
// matched means the entry was not in the expected status, which callers treat
// as a no-op rather than an error.
func (r *PgxJournalRepository) UpdateEntryStatus(ctx context.Context, entryID string, from, to domain.EntryStatus, postedBy string, postedAt time.Time) (int64, error) {
	query := `
		UPDATE journal_entries
		SET status = $1, posted_by = $2, posted_at = $3, last_updated_at = $3, last_updated_by = $2
		WHERE entry_id = $4 AND status = $5;
	`
	tag, err := r.Pool.Exec(ctx, query, to, postedBy, postedAt, entryID, from)
	if err != nil {
		return 0, fmt.Errorf("failed to update status of entry %s: %w", entryID, err)
	}
	return tag.RowsAffected(), nil
}

// VoidEntry marks an entry voided. The header and lines remain for the audit
// trail; aggregation queries exclude voided entries.
func (r *PgxJournalRepository) VoidEntry(ctx context.Context, entryID string, voidedBy string, voidedAt time.Time) error {
	query := `
		UPDATE journal_entries
		SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE entry_id = $4;
	`
	tag, err := r.Pool.Exec(ctx, query, domain.Voided, voidedAt, voidedBy, entryID)
	if err != nil {
		return fmt.Errorf("failed to void entry %s: %w", entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteEntryByReference removes the entry and its lines carrying the given
// reference within one transaction. Absence is not an error, so the labor
// accrual upsert can call this unconditionally.
func (r *PgxJournalRepository) DeleteEntryByReference(ctx context.Context, companyID string, ref domain.EntryReference) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	deleteLines := `
		DELETE FROM journal_entry_lines
		WHERE entry_id IN (
			SELECT entry_id FROM journal_entries
			WHERE company_id = $1 AND ref_category = $2 AND ref_entity_id = $3 AND ref_period = $4
		);
	`
	if _, err := tx.Exec(ctx, deleteLines, companyID, ref.Category, ref.EntityID, ref.Period); err != nil {
		return fmt.Errorf("failed to delete lines for reference %s: %w", ref, err)
	}

	deleteEntry := `
		DELETE FROM journal_entries
		WHERE company_id = $1 AND ref_category = $2 AND ref_entity_id = $3 AND ref_period = $4;
	`
	if _, err := tx.Exec(ctx, deleteEntry, companyID, ref.Category, ref.EntityID, ref.Period); err != nil {
		return fmt.Errorf("failed to delete entry for reference %s: %w", ref, err)
	}

	return r.Commit(ctx, tx)
}

// NextEntryNumber reserves the next human-readable entry number for the
// company and year via an atomic counter upsert.
func (r *PgxJournalRepository) NextEntryNumber(ctx context.Context, companyID string, year int) (string, error) {
	query := `
		INSERT INTO entry_number_counters (company_id, year, last_value)
		VALUES ($1, $2, 1)
		ON CONFLICT (company_id, year)
		DO UPDATE SET last_value = entry_number_counters.last_value + 1
		RETURNING last_value;
	`
	var seq int64
	if err := r.Pool.QueryRow(ctx, query, companyID, year).Scan(&seq); err != nil {
		return "", fmt.Errorf("failed to reserve entry number for company %s: %w", companyID, err)
	}
	return fmt.Sprintf("JE-%d-%06d", year, seq), nil
}

// FindEntryByID retrieves a journal entry header.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`

	entry, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	return &entry, nil
}

// FindEntryByReference retrieves the non-voided entry carrying a generator
// reference. The partial unique index guarantees at most one match.
func (r *PgxJournalRepository) FindEntryByReference(ctx context.Context, companyID string, ref domain.EntryReference) (*domain.JournalEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE company_id = $1 AND ref_category = $2 AND ref_entity_id = $3 AND ref_period = $4
		  AND status != 'VOIDED';`

	entry, err := scanEntry(r.Pool.QueryRow(ctx, query, companyID, ref.Category, ref.EntityID, ref.Period))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find entry by reference %s: %w", ref, err)
	}
	return &entry, nil
}

// FindLinesByEntryID retrieves the lines belonging to one entry.
func (r *PgxJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalEntryLine, error) {
	query := `
		SELECT line_id, entry_id, account_id, debit, credit, description, project_id, property_id
		FROM journal_entry_lines
		WHERE entry_id = $1
		ORDER BY line_id;
	`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for entry %s: %w", entryID, err)
	}
	defer rows.Close()

	var lines []domain.JournalEntryLine
	for rows.Next() {
		var l domain.JournalEntryLine
		if err := rows.Scan(&l.LineID, &l.EntryID, &l.AccountID, &l.Debit, &l.Credit, &l.Description, &l.ProjectID, &l.PropertyID); err != nil {
			return nil, fmt.Errorf("failed to scan line row: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating line rows: %w", err)
	}
	return lines, nil
}

// ListEntries retrieves a page of entries for a company, newest first.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, companyID string, limit, offset int) ([]domain.JournalEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE company_id = $1
		ORDER BY entry_date DESC, entry_number DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries for company %s: %w", companyID, err)
	}
	defer rows.Close()

	var entries []domain.JournalEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry row: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entry rows: %w", err)
	}
	return entries, nil
}

// FindExistingReferences probes which of the candidate references already
// have a non-voided entry. The probe runs in chunks so a multi-year
// generation pass never builds an oversized parameter list.
func (r *PgxJournalRepository) FindExistingReferences(ctx context.Context, companyID string, refs []domain.EntryReference) (map[string]bool, error) {
	existing := make(map[string]bool, len(refs))
	if len(refs) == 0 {
		return existing, nil
	}

	query := `
		SELECT ref_category, ref_entity_id, ref_period
		FROM journal_entries
		WHERE company_id = $1
		  AND status <> 'VOIDED'
		  AND (ref_category, ref_entity_id, ref_period) IN (
			SELECT unnest($2::text[]), unnest($3::text[]), unnest($4::text[])
		  );
	`
	for _, part := range chunk.Slices(refs, referenceProbeChunkSize) {
		categories := make([]string, len(part))
		entityIDs := make([]string, len(part))
		periods := make([]string, len(part))
		for i, ref := range part {
			categories[i] = ref.Category
			entityIDs[i] = ref.EntityID
			periods[i] = ref.Period
		}

		rows, err := r.Pool.Query(ctx, query, companyID, categories, entityIDs, periods)
		if err != nil {
			return nil, fmt.Errorf("failed to probe existing references: %w", err)
		}
		for rows.Next() {
			var ref domain.EntryReference
			if err := rows.Scan(&ref.Category, &ref.EntityID, &ref.Period); err != nil {
				rows.Close()
				return nil, fmt.Errorf("failed to scan reference row: %w", err)
			}
			existing[ref.String()] = true
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, fmt.Errorf("error iterating reference rows: %w", err)
		}
		rows.Close()
	}
	return existing, nil
}

// ListPostedLines returns one page of posted, non-voided lines joined with
// their entry date and reference, ordered stably for repeated paging.
func (r *PgxJournalRepository) ListPostedLines(ctx context.Context, companyID string, from, to time.Time, limit, offset int) ([]domain.PostedLine, error) {
	query := `
		SELECT l.entry_id, e.entry_date, e.ref_category, e.ref_entity_id, e.ref_period, l.account_id, l.debit, l.credit
		FROM journal_entry_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE e.company_id = $1
		  AND e.status = 'POSTED'
		  AND e.entry_date >= $2 AND e.entry_date <= $3
		ORDER BY e.entry_date, l.entry_id, l.line_id
		LIMIT $4 OFFSET $5;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list posted lines for company %s: %w", companyID, err)
	}
	defer rows.Close()

	var lines []domain.PostedLine
	for rows.Next() {
		var l domain.PostedLine
		if err := rows.Scan(&l.EntryID, &l.EntryDate, &l.Reference.Category, &l.Reference.EntityID, &l.Reference.Period, &l.AccountID, &l.Debit, &l.Credit); err != nil {
			return nil, fmt.Errorf("failed to scan posted line row: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posted line rows: %w", err)
	}
	return lines, nil
}
