package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/models"
	"github.com/SscSPs/ledger_core/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxPeriodRepository answers period-lock questions from accounting_periods.
type PgxPeriodRepository struct {
	pool *pgxpool.Pool
}

func newPgxPeriodRepository(pool *pgxpool.Pool) *PgxPeriodRepository {
	return &PgxPeriodRepository{pool: pool}
}

var _ portssvc.PeriodLock = (*PgxPeriodRepository)(nil)

// FindClosedPeriod returns the closed period containing date, or nil.
func (r *PgxPeriodRepository) FindClosedPeriod(ctx context.Context, tenantID string, date time.Time) (*domain.AccountingPeriod, error) {
	query := `
		SELECT period_id, tenant_id, name, start_date, end_date, is_closed
		FROM accounting_periods
		WHERE tenant_id = $1 AND is_closed AND $2::date BETWEEN start_date AND end_date
		ORDER BY start_date
		LIMIT 1`
	rows, err := r.pool.Query(ctx, query, tenantID, domain.DateOnly(date))
	if err != nil {
		return nil, mapPgError(err, "find closed period")
	}
	period, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.AccountingPeriod])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapPgError(err, "find closed period")
	}
	p := mapping.ToDomainAccountingPeriod(period)
	return &p, nil
}
