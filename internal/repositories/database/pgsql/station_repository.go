package pgsql

import (
	"context"

	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxStationRepository struct {
	pool *pgxpool.Pool
}

func newPgxStationRepository(pool *pgxpool.Pool) *PgxStationRepository {
	return &PgxStationRepository{pool: pool}
}

var _ portssvc.StationDirectory = (*PgxStationRepository)(nil)

// StationExists reports whether the station belongs to the tenant.
func (r *PgxStationRepository) StationExists(ctx context.Context, tenantID, stationID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM stations WHERE tenant_id = $1 AND station_id = $2)`,
		tenantID, stationID,
	).Scan(&exists)
	if err != nil {
		return false, mapPgError(err, "check station "+stationID)
	}
	return exists, nil
}
