package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_core/internal/models"
	"github.com/SscSPs/ledger_core/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxReportingRepository reads posted ledger history.
type PgxReportingRepository struct {
	pool *pgxpool.Pool
}

// newPgxReportingRepository creates a new reporting repository.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{pool: pool}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// SumPostedLines aggregates debit and credit per account.
func (r *PgxReportingRepository) SumPostedLines(ctx context.Context, tenantID string, filter domain.LineFilter) ([]domain.AccountTotals, error) {
	where := postedLineWhere(tenantID, filter)
	query := `
		SELECT l.account_id, COALESCE(SUM(l.debit), 0) AS debit, COALESCE(SUM(l.credit), 0) AS credit
		FROM journal_entry_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		` + where.sql() + `
		GROUP BY l.account_id`
	rows, err := r.pool.Query(ctx, query, where.args...)
	if err != nil {
		return nil, mapPgError(err, "sum posted lines")
	}
	totals, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.AccountTotals])
	if err != nil {
		return nil, mapPgError(err, "scan account totals")
	}

	out := make([]domain.AccountTotals, len(totals))
	for i, t := range totals {
		out[i] = mapping.ToDomainAccountTotals(t)
	}
	return out, nil
}

// ListPostedLines returns lines ordered by entry date, entry number and line number.
func (r *PgxReportingRepository) ListPostedLines(ctx context.Context, tenantID string, filter domain.LineFilter) ([]domain.PostedLine, error) {
	where := postedLineWhere(tenantID, filter)
	query := `
		SELECT e.entry_id, e.entry_number, e.entry_date, e.description AS entry_description,
			l.line_no, l.account_id, l.debit, l.credit, l.description
		FROM journal_entry_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		` + where.sql() + `
		ORDER BY e.entry_date, e.entry_number, l.line_no`
	rows, err := r.pool.Query(ctx, query, where.args...)
	if err != nil {
		return nil, mapPgError(err, "list posted lines")
	}
	lines, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.PostedLine])
	if err != nil {
		return nil, mapPgError(err, "scan posted lines")
	}

	out := make([]domain.PostedLine, len(lines))
	for i, l := range lines {
		out[i] = mapping.ToDomainPostedLine(l)
	}
	return out, nil
}

// ListPostedEntries returns one page of posted entries in [from, to] with
// their lines, oldest first, and the total number of matching entries.
func (r *PgxReportingRepository) ListPostedEntries(ctx context.Context, tenantID string, from, to time.Time, limit, offset int) ([]domain.JournalEntry, int, error) {
	status := domain.Posted
	fromDate, toDate := from, to
	where := journalFilterWhere(tenantID, domain.JournalFilter{Status: &status, From: &fromDate, To: &toDate})

	var total int
	countQuery := `SELECT COUNT(*) FROM journal_entries e ` + where.sql()
	if err := r.pool.QueryRow(ctx, countQuery, where.args...).Scan(&total); err != nil {
		return nil, 0, mapPgError(err, "count posted entries")
	}
	if total == 0 {
		return []domain.JournalEntry{}, 0, nil
	}

	limitPH := where.next(limit)
	offsetPH := where.next(offset)
	query := `SELECT ` + entryColumns + ` FROM journal_entries e ` + where.sql() +
		` ORDER BY e.entry_date, e.entry_number LIMIT ` + limitPH + ` OFFSET ` + offsetPH
	rows, err := r.pool.Query(ctx, query, where.args...)
	if err != nil {
		return nil, 0, mapPgError(err, "list posted entries")
	}
	headers, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.JournalEntry])
	if err != nil {
		return nil, 0, mapPgError(err, "scan posted entries")
	}

	ids := make([]string, len(headers))
	for i, h := range headers {
		ids[i] = h.EntryID
	}
	linesByEntry, err := findLines(ctx, r.pool, ids)
	if err != nil {
		return nil, 0, err
	}

	entries := make([]domain.JournalEntry, len(headers))
	for i, h := range headers {
		entries[i] = mapping.ToDomainJournalEntry(h, linesByEntry[h.EntryID])
	}
	return entries, total, nil
}
