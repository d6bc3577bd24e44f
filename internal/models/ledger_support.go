package models

import "time"

// AccountingPeriod is a row of the accounting_periods table.
type AccountingPeriod struct {
	PeriodID  string    `db:"period_id"`
	TenantID  string    `db:"tenant_id"`
	Name      string    `db:"name"`
	StartDate time.Time `db:"start_date"`
	EndDate   time.Time `db:"end_date"`
	IsClosed  bool      `db:"is_closed"`
}

// AuditRecord is a row of the audit_log table.
type AuditRecord struct {
	RecordID     string    `db:"record_id"`
	TenantID     string    `db:"tenant_id"`
	Kind         string    `db:"kind"`
	UserID       string    `db:"user_id"`
	EntityType   string    `db:"entity_type"`
	EntityID     string    `db:"entity_id"`
	Payload      string    `db:"payload"`
	PreviousHash string    `db:"previous_hash"`
	Hash         string    `db:"hash"`
	RecordedAt   time.Time `db:"recorded_at"`
}
