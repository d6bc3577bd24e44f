package services

import (
	"context"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/dto"
)

// AccountReaderSvc defines read operations for the chart of accounts
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its unique identifier.
	GetAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error)

	// ListAccounts retrieves the tenant's accounts ordered by code.
	ListAccounts(ctx context.Context, tenantID string, filter domain.AccountFilter) ([]domain.Account, error)

	// GetAccountTree returns the active accounts as one forest per account type.
	GetAccountTree(ctx context.Context, tenantID string) (*domain.AccountTree, error)
}

// AccountWriterSvc defines write operations for the chart of accounts
type AccountWriterSvc interface {
	// CreateAccount persists a new account, attaching it to its parent if one is given.
	CreateAccount(ctx context.Context, tenantID, userID string, req dto.CreateAccountRequest) (*domain.Account, error)

	// UpdateAccount applies a partial update.
	UpdateAccount(ctx context.Context, tenantID, accountID, userID string, req dto.UpdateAccountRequest) (*domain.Account, error)

	// DeleteAccount removes an account with no children and no journal lines.
	DeleteAccount(ctx context.Context, tenantID, accountID, userID string) error

	// SeedDefaultAccounts upserts the default chart template by code.
	SeedDefaultAccounts(ctx context.Context, tenantID, userID string) (*domain.SeedResult, error)
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
