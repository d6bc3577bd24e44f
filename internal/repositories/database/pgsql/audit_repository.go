package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_core/internal/models"
	"github.com/SscSPs/ledger_core/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxAuditRepository stores the hash-chained audit log. Rows are append only.
type PgxAuditRepository struct {
	pool *pgxpool.Pool
}

func newPgxAuditRepository(pool *pgxpool.Pool) portsrepo.AuditStore {
	return &PgxAuditRepository{pool: pool}
}

var _ portsrepo.AuditStore = (*PgxAuditRepository)(nil)

// LastAuditHash returns the hash of the tenant's newest record, or "".
func (r *PgxAuditRepository) LastAuditHash(ctx context.Context, tenantID string) (string, error) {
	var hash string
	err := r.pool.QueryRow(ctx,
		`SELECT hash FROM audit_log WHERE tenant_id = $1 ORDER BY seq DESC LIMIT 1`,
		tenantID,
	).Scan(&hash)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", mapPgError(err, "read audit head")
	}
	return hash, nil
}

// AppendAuditRecord inserts one record. The unique previous_hash constraint
// rejects a second writer extending the same head.
func (r *PgxAuditRepository) AppendAuditRecord(ctx context.Context, record domain.AuditRecord) error {
	m := mapping.ToModelAuditRecord(record)
	query := `
		INSERT INTO audit_log (record_id, tenant_id, kind, user_id, entity_type, entity_id,
			payload, previous_hash, hash, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.pool.Exec(ctx, query,
		m.RecordID, m.TenantID, m.Kind, m.UserID, m.EntityType, m.EntityID,
		m.Payload, m.PreviousHash, m.Hash, m.RecordedAt,
	)
	if err != nil {
		return mapPgError(err, "append audit record")
	}
	return nil
}

// ListAuditRecords returns up to limit records oldest first. A limit of zero
// or less returns the whole chain.
func (r *PgxAuditRepository) ListAuditRecords(ctx context.Context, tenantID string, limit int) ([]domain.AuditRecord, error) {
	query := `
		SELECT record_id, tenant_id, kind, user_id, entity_type, entity_id,
			payload, previous_hash, hash, recorded_at
		FROM audit_log
		WHERE tenant_id = $1
		ORDER BY seq`
	args := []any{tenantID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapPgError(err, "list audit records")
	}
	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.AuditRecord])
	if err != nil {
		return nil, mapPgError(err, "scan audit records")
	}

	out := make([]domain.AuditRecord, len(records))
	for i, m := range records {
		out[i] = mapping.ToDomainAuditRecord(m)
	}
	return out, nil
}
