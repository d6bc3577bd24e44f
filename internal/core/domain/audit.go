package domain

import "time"

// AuditKind names the mutation an audit event records.
type AuditKind string

const (
	AuditCreate     AuditKind = "CREATE"
	AuditUpdate     AuditKind = "UPDATE"
	AuditPost       AuditKind = "POST"
	AuditVoid       AuditKind = "VOID"
	AuditSoftDelete AuditKind = "SOFT_DELETE"
	AuditDelete     AuditKind = "DELETE"
)

// Entity types recorded in audit events.
const (
	EntityJournalEntry = "JournalEntry"
	EntityAccount      = "Account"
)

// AuditEvent describes one committed mutation. Before and After hold the
// entity snapshots and are serialised as JSON by the sinks.
type AuditEvent struct {
	Kind       AuditKind `json:"kind"`
	TenantID   string    `json:"tenantId"`
	UserID     string    `json:"userId"`
	EntityType string    `json:"entityType"`
	EntityID   string    `json:"entityId"`
	Before     any       `json:"before,omitempty"`
	After      any       `json:"after,omitempty"`
	Note       string    `json:"note"`
	OccurredAt time.Time `json:"occurredAt"`
}

// AuditRecord is an audit event as persisted in the hash chain.
type AuditRecord struct {
	RecordID     string    `json:"id"`
	TenantID     string    `json:"tenantId"`
	Kind         AuditKind `json:"kind"`
	UserID       string    `json:"userId"`
	EntityType   string    `json:"entityType"`
	EntityID     string    `json:"entityId"`
	Payload      string    `json:"payload"`
	PreviousHash string    `json:"previousHash"`
	Hash         string    `json:"hash"`
	RecordedAt   time.Time `json:"recordedAt"`
}

// AuditChainReport is the outcome of re-hashing a tenant's audit chain.
// BrokenAt is the zero-based position of the first record that fails.
type AuditChainReport struct {
	Records        int     `json:"records"`
	Intact         bool    `json:"intact"`
	BrokenAt       *int    `json:"brokenAt,omitempty"`
	BrokenRecordID *string `json:"brokenRecordId,omitempty"`
	HeadHash       string  `json:"headHash,omitempty"`
}
