package services

import (
	"context"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/dto"
)

// JournalReaderSvc defines read operations for journal entries
type JournalReaderSvc interface {
	// GetJournalEntry retrieves an entry with its lines.
	GetJournalEntry(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error)

	// ListJournalEntries retrieves a page of entry headers.
	ListJournalEntries(ctx context.Context, tenantID string, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error)
}

// JournalWriterSvc defines the journal entry lifecycle
type JournalWriterSvc interface {
	// CreateJournalEntry validates and persists a new draft entry.
	CreateJournalEntry(ctx context.Context, tenantID, userID string, req dto.CreateJournalEntryRequest) (*domain.JournalEntry, error)

	// UpdateJournalEntry edits a draft entry.
	UpdateJournalEntry(ctx context.Context, tenantID, entryID, userID string, req dto.UpdateJournalEntryRequest) (*domain.JournalEntry, error)

	// PostJournalEntry moves a draft entry to posted.
	PostJournalEntry(ctx context.Context, tenantID, entryID, userID string) (*domain.JournalEntry, error)

	// VoidJournalEntry moves a draft or posted entry to voided.
	VoidJournalEntry(ctx context.Context, tenantID, entryID, userID string) (*domain.JournalEntry, error)

	// DeleteJournalEntry soft-deletes an entry that is not posted.
	DeleteJournalEntry(ctx context.Context, tenantID, entryID, userID string) error
}

// JournalSvcFacade combines all journal-related service interfaces
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}
