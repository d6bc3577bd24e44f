// Package audit provides the sinks that receive committed ledger mutations.
package audit

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/google/uuid"
)

// GenesisHash is the previous hash of a tenant's first record.
var GenesisHash = strings.Repeat("0", 64)

// ChainSink appends every event to a per-tenant hash chain in an AuditStore.
// Each record's hash covers the previous hash, so editing or dropping a stored
// record breaks every hash after it.
type ChainSink struct {
	store portsrepo.AuditStore
	now   func() time.Time

	mu    sync.Mutex
	heads map[string]string
	locks map[string]*sync.Mutex
}

var _ portssvc.AuditSink = (*ChainSink)(nil)

// NewChainSink creates a ChainSink over store.
func NewChainSink(store portsrepo.AuditStore) *ChainSink {
	return &ChainSink{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		heads: make(map[string]string),
		locks: make(map[string]*sync.Mutex),
	}
}

func (s *ChainSink) tenantLock(tenantID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[tenantID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[tenantID] = l
	}
	return l
}

func (s *ChainSink) head(ctx context.Context, tenantID string) (string, error) {
	s.mu.Lock()
	h, ok := s.heads[tenantID]
	s.mu.Unlock()
	if ok {
		return h, nil
	}
	h, err := s.store.LastAuditHash(ctx, tenantID)
	if err != nil {
		return "", fmt.Errorf("load audit chain head: %w", err)
	}
	if h == "" {
		h = GenesisHash
	}
	return h, nil
}

func (s *ChainSink) setHead(tenantID, hash string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if hash == "" {
		delete(s.heads, tenantID)
		return
	}
	s.heads[tenantID] = hash
}

// Record appends event to its tenant's chain.
func (s *ChainSink) Record(ctx context.Context, event domain.AuditEvent) error {
	lock := s.tenantLock(event.TenantID)
	lock.Lock()
	defer lock.Unlock()

	prev, err := s.head(ctx, event.TenantID)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}

	// timestamptz keeps microseconds; truncate so stored records re-hash identically
	recordedAt := s.now().Truncate(time.Microsecond)
	record := domain.AuditRecord{
		RecordID:     uuid.NewString(),
		TenantID:     event.TenantID,
		Kind:         event.Kind,
		UserID:       event.UserID,
		EntityType:   event.EntityType,
		EntityID:     event.EntityID,
		Payload:      string(payload),
		PreviousHash: prev,
		RecordedAt:   recordedAt,
	}
	record.Hash = ComputeHash(record)

	if err := s.store.AppendAuditRecord(ctx, record); err != nil {
		// another process may have moved the chain; reload on next write
		s.setHead(event.TenantID, "")
		return fmt.Errorf("append audit record: %w", err)
	}
	s.setHead(event.TenantID, record.Hash)
	return nil
}

// ComputeHash returns the hex sha256 of the record's previous hash,
// timestamp and payload.
func ComputeHash(record domain.AuditRecord) string {
	h := sha256.New()
	h.Write([]byte(record.PreviousHash))
	h.Write([]byte{'|'})
	h.Write([]byte(record.RecordedAt.UTC().Format(time.RFC3339Nano)))
	h.Write([]byte{'|'})
	h.Write([]byte(record.Payload))
	return hex.EncodeToString(h.Sum(nil))
}

// VerifyChain checks records, oldest first, and returns the index of the first
// broken link or -1 when the chain is intact.
func VerifyChain(records []domain.AuditRecord) int {
	prev := GenesisHash
	for i, r := range records {
		if r.PreviousHash != prev || ComputeHash(r) != r.Hash {
			return i
		}
		prev = r.Hash
	}
	return -1
}
