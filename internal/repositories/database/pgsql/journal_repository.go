package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_core/internal/models"
	"github.com/SscSPs/ledger_core/internal/utils/mapping"
	"github.com/SscSPs/ledger_core/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const entryColumns = `e.entry_id, e.tenant_id, e.station_id, e.entry_number, e.entry_date, e.description,
	e.reference_type, e.reference_id, e.total_debit, e.total_credit, e.status,
	e.posted_by, e.posted_at, e.deleted_by, e.deleted_at,
	e.created_at, e.created_by, e.last_updated_at, e.last_updated_by`

const lineColumns = `l.line_id, l.entry_id, l.line_no, l.account_id, a.code AS account_code, a.name AS account_name,
	l.debit, l.credit, l.description`

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entries.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryWithTx {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepositoryWithTx = (*PgxJournalRepository)(nil)

// NextEntrySequence increments the (tenant, year) counter with an upsert so
// concurrent creators never see the same value.
func (r *PgxJournalRepository) NextEntrySequence(ctx context.Context, tx pgx.Tx, tenantID string, year int) (int64, error) {
	query := `
		INSERT INTO journal_entry_sequences (tenant_id, year, last_value)
		VALUES ($1, $2, 1)
		ON CONFLICT (tenant_id, year)
		DO UPDATE SET last_value = journal_entry_sequences.last_value + 1
		RETURNING last_value`
	var seq int64
	if err := tx.QueryRow(ctx, query, tenantID, year).Scan(&seq); err != nil {
		return 0, mapPgError(err, fmt.Sprintf("allocate entry number for %d", year))
	}
	return seq, nil
}

// InsertEntry persists the header and all lines of a new entry.
func (r *PgxJournalRepository) InsertEntry(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)
	query := `
		INSERT INTO journal_entries (entry_id, tenant_id, station_id, entry_number, entry_date, description,
			reference_type, reference_id, total_debit, total_credit, status,
			posted_by, posted_at, deleted_by, deleted_at,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := tx.Exec(ctx, query,
		m.EntryID, m.TenantID, m.StationID, m.EntryNumber, m.EntryDate, m.Description,
		m.ReferenceType, m.ReferenceID, m.TotalDebit, m.TotalCredit, m.Status,
		m.PostedBy, m.PostedAt, m.DeletedBy, m.DeletedAt,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, "insert journal entry "+entry.EntryNumber)
	}
	return insertLines(ctx, tx, entry.Lines)
}

func insertLines(ctx context.Context, tx pgx.Tx, lines []domain.JournalEntryLine) error {
	if len(lines) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	query := `
		INSERT INTO journal_entry_lines (line_id, entry_id, line_no, account_id, debit, credit, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for _, line := range lines {
		m := mapping.ToModelJournalEntryLine(line)
		batch.Queue(query, m.LineID, m.JournalEntryID, m.LineNo, m.AccountID, m.Debit, m.Credit, m.Description)
	}

	br := tx.SendBatch(ctx, batch)
	defer br.Close()
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			return mapPgError(err, fmt.Sprintf("insert journal line %d", i+1))
		}
	}
	return nil
}

// UpdateEntryHeader overwrites the header columns that change after creation.
func (r *PgxJournalRepository) UpdateEntryHeader(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)
	query := `
		UPDATE journal_entries
		SET station_id = $3, description = $4, reference_type = $5, reference_id = $6,
			total_debit = $7, total_credit = $8, status = $9,
			posted_by = $10, posted_at = $11, deleted_by = $12, deleted_at = $13,
			last_updated_at = $14, last_updated_by = $15
		WHERE tenant_id = $1 AND entry_id = $2`
	tag, err := tx.Exec(ctx, query,
		m.TenantID, m.EntryID, m.StationID, m.Description, m.ReferenceType, m.ReferenceID,
		m.TotalDebit, m.TotalCredit, m.Status,
		m.PostedBy, m.PostedAt, m.DeletedBy, m.DeletedAt,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, "update journal entry "+entry.EntryID)
	}
	if tag.RowsAffected() == 0 {
		return mapPgError(pgx.ErrNoRows, "update journal entry "+entry.EntryID)
	}
	return nil
}

// ReplaceLines swaps the full line set of an entry.
func (r *PgxJournalRepository) ReplaceLines(ctx context.Context, tx pgx.Tx, entryID string, lines []domain.JournalEntryLine) error {
	if _, err := tx.Exec(ctx, `DELETE FROM journal_entry_lines WHERE entry_id = $1`, entryID); err != nil {
		return mapPgError(err, "delete journal lines of "+entryID)
	}
	return insertLines(ctx, tx, lines)
}

func findEntry(ctx context.Context, q querier, tenantID, entryID string, forUpdate bool) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries e
		WHERE e.tenant_id = $1 AND e.entry_id = $2 AND e.deleted_at IS NULL`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	rows, err := q.Query(ctx, query, tenantID, entryID)
	if err != nil {
		return nil, mapPgError(err, "find journal entry "+entryID)
	}
	header, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.JournalEntry])
	if err != nil {
		return nil, mapPgError(err, "find journal entry "+entryID)
	}

	linesByEntry, err := findLines(ctx, q, []string{entryID})
	if err != nil {
		return nil, err
	}
	entry := mapping.ToDomainJournalEntry(header, linesByEntry[entryID])
	return &entry, nil
}

// findLines loads the lines of several entries, each slice ordered by line number.
func findLines(ctx context.Context, q querier, entryIDs []string) (map[string][]models.JournalEntryLine, error) {
	out := make(map[string][]models.JournalEntryLine, len(entryIDs))
	if len(entryIDs) == 0 {
		return out, nil
	}
	query := `SELECT ` + lineColumns + `
		FROM journal_entry_lines l
		JOIN accounts a ON a.account_id = l.account_id
		WHERE l.entry_id = ANY($1)
		ORDER BY l.entry_id, l.line_no`
	rows, err := q.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, mapPgError(err, "query journal lines")
	}
	lines, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.JournalEntryLine])
	if err != nil {
		return nil, mapPgError(err, "scan journal lines")
	}
	for _, line := range lines {
		out[line.JournalEntryID] = append(out[line.JournalEntryID], line)
	}
	return out, nil
}

// FindEntryByID retrieves an entry together with its lines.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error) {
	return findEntry(ctx, r.Pool, tenantID, entryID, false)
}

// FindEntryByIDForUpdate locks the entry header for the rest of tx.
func (r *PgxJournalRepository) FindEntryByIDForUpdate(ctx context.Context, tx pgx.Tx, tenantID, entryID string) (*domain.JournalEntry, error) {
	return findEntry(ctx, tx, tenantID, entryID, true)
}

// ListEntries returns entry headers newest first. The cursor is the
// (entry_date, entry_number) pair of the last row of the previous page.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, tenantID string, filter domain.JournalFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	where := journalFilterWhere(tenantID, filter)
	if nextToken != nil && *nextToken != "" {
		lastDate, lastNumber, err := pagination.DecodeEntryToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken: %v", apperrors.ErrValidation, err)
		}
		datePH := where.next(lastDate)
		numberPH := where.next(lastNumber)
		where.addRaw(fmt.Sprintf("(e.entry_date, e.entry_number) < (%s, %s)", datePH, numberPH))
	}
	limitPH := where.next(limit + 1)

	query := `SELECT ` + entryColumns + ` FROM journal_entries e ` + where.sql() +
		` ORDER BY e.entry_date DESC, e.entry_number DESC LIMIT ` + limitPH
	rows, err := r.Pool.Query(ctx, query, where.args...)
	if err != nil {
		return nil, nil, mapPgError(err, "list journal entries")
	}
	headers, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.JournalEntry])
	if err != nil {
		return nil, nil, mapPgError(err, "scan journal entries")
	}

	var token *string
	if len(headers) > limit {
		headers = headers[:limit]
		last := headers[len(headers)-1]
		encoded := pagination.EncodeEntryToken(last.EntryDate, last.EntryNumber)
		token = &encoded
	}

	entries := make([]domain.JournalEntry, len(headers))
	for i, h := range headers {
		entries[i] = mapping.ToDomainJournalEntry(h, nil)
	}
	return entries, token, nil
}
