package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// AccountReader defines read operations for account data. Every lookup is
// scoped to a tenant.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its tenant-unique code.
	FindAccountByCode(ctx context.Context, tenantID, code string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs. Missing ids are
	// simply absent from the map.
	FindAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves the tenant's accounts ordered by code.
	ListAccounts(ctx context.Context, tenantID string, filter domain.AccountFilter) ([]domain.Account, error)

	// CountChildren returns the number of direct child accounts.
	CountChildren(ctx context.Context, tenantID, accountID string) (int, error)

	// HasJournalLines reports whether any journal line references the account.
	HasJournalLines(ctx context.Context, tenantID, accountID string) (bool, error)
}

// AccountWriter defines write operations for account data. Writes always run
// inside a caller-owned transaction.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, tx pgx.Tx, account domain.Account) error

	// UpdateAccount overwrites an existing account's mutable columns.
	UpdateAccount(ctx context.Context, tx pgx.Tx, account domain.Account) error

	// DeleteAccount removes an account row.
	DeleteAccount(ctx context.Context, tx pgx.Tx, tenantID, accountID string) error

	// SetIsParent flips the parent flag of an account.
	SetIsParent(ctx context.Context, tx pgx.Tx, tenantID, accountID string, isParent bool, userID string, now time.Time) error

	// UpdateLevels rewrites the level of several accounts at once.
	UpdateLevels(ctx context.Context, tx pgx.Tx, tenantID string, levels map[string]int, userID string, now time.Time) error
}

// AccountTransactionSupport defines reads that participate in a transaction.
type AccountTransactionSupport interface {
	// FindAccountByIDForUpdate selects an account and locks it for the rest of the transaction.
	FindAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, tenantID, accountID string) (*domain.Account, error)

	// CountChildrenInTx counts direct children as seen by the transaction.
	CountChildrenInTx(ctx context.Context, tx pgx.Tx, tenantID, accountID string) (int, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}

// AccountRepositoryWithTx extends AccountRepositoryFacade with transaction capabilities
type AccountRepositoryWithTx interface {
	AccountRepositoryFacade
	TransactionManager
}
