package repositories

import (
	"context"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// JournalReader defines read operations for journal entries. Soft-deleted
// entries are never returned.
type JournalReader interface {
	// FindEntryByID retrieves an entry together with its lines.
	FindEntryByID(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves entry headers newest first using token-based pagination.
	ListEntries(ctx context.Context, tenantID string, filter domain.JournalFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)
}

// JournalWriter defines write operations for journal entries.
type JournalWriter interface {
	// NextEntrySequence atomically increments and returns the (tenant, year) counter.
	NextEntrySequence(ctx context.Context, tx pgx.Tx, tenantID string, year int) (int64, error)

	// InsertEntry persists a new entry header and its lines.
	InsertEntry(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error

	// UpdateEntryHeader overwrites the header columns of an entry.
	UpdateEntryHeader(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error

	// ReplaceLines deletes every line of the entry and inserts the given set.
	ReplaceLines(ctx context.Context, tx pgx.Tx, entryID string, lines []domain.JournalEntryLine) error
}

// JournalTransactionSupport defines reads that participate in a transaction.
type JournalTransactionSupport interface {
	// FindEntryByIDForUpdate selects an entry with its lines and locks the header row.
	FindEntryByIDForUpdate(ctx context.Context, tx pgx.Tx, tenantID, entryID string) (*domain.JournalEntry, error)
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
	JournalTransactionSupport
}

// JournalRepositoryWithTx extends JournalRepositoryFacade with transaction capabilities
type JournalRepositoryWithTx interface {
	JournalRepositoryFacade
	TransactionManager
}
