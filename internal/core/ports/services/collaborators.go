package services

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
)

// PeriodLock answers whether a date is inside a closed accounting period.
type PeriodLock interface {
	// FindClosedPeriod returns the closed period containing date, or nil when the date is open.
	FindClosedPeriod(ctx context.Context, tenantID string, date time.Time) (*domain.AccountingPeriod, error)
}

// StationDirectory knows which stations belong to a tenant.
type StationDirectory interface {
	StationExists(ctx context.Context, tenantID, stationID string) (bool, error)
}

// AuditSink receives committed mutations.
type AuditSink interface {
	Record(ctx context.Context, event domain.AuditEvent) error
}

// BalanceCache is a read-through cache for derived account balances.
type BalanceCache interface {
	// GetBalance returns the cached balance (nil on a miss) and the cache
	// generation the lookup observed.
	GetBalance(ctx context.Context, tenantID, accountID string, asOf time.Time) (*domain.AccountBalance, int64, error)

	// SetBalance stores a computed balance under the generation returned by GetBalance.
	SetBalance(ctx context.Context, tenantID string, generation int64, balance domain.AccountBalance) error

	// InvalidateTenant drops every cached balance of the tenant.
	InvalidateTenant(ctx context.Context, tenantID string) error
}
