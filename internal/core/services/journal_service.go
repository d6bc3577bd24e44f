package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/SscSPs/ledger_core/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const defaultJournalListLimit = 20

// journalService owns the journal entry lifecycle.
type journalService struct {
	BaseService
	journalRepo  portsrepo.JournalRepositoryWithTx
	accountRepo  portsrepo.AccountReader
	periodLock   portssvc.PeriodLock
	stations     portssvc.StationDirectory
	balanceCache portssvc.BalanceCache
	now          func() time.Time
}

// JournalServiceOption is a functional option for configuring the journal service
type JournalServiceOption func(*journalService)

// WithPeriodLock rejects writes dated inside closed accounting periods.
func WithPeriodLock(lock portssvc.PeriodLock) JournalServiceOption {
	return func(s *journalService) {
		s.periodLock = lock
	}
}

// WithStationDirectory validates station references.
func WithStationDirectory(dir portssvc.StationDirectory) JournalServiceOption {
	return func(s *journalService) {
		s.stations = dir
	}
}

// WithJournalAuditSink sets the sink that receives lifecycle events.
func WithJournalAuditSink(sink portssvc.AuditSink) JournalServiceOption {
	return func(s *journalService) {
		s.AuditSink = sink
	}
}

// WithBalanceCacheInvalidation drops cached balances after posting and voiding.
func WithBalanceCacheInvalidation(cache portssvc.BalanceCache) JournalServiceOption {
	return func(s *journalService) {
		s.balanceCache = cache
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) JournalServiceOption {
	return func(s *journalService) {
		s.now = now
	}
}

// NewJournalService creates a new journal service with the provided options
func NewJournalService(journalRepo portsrepo.JournalRepositoryWithTx, accountRepo portsrepo.AccountReader, options ...JournalServiceOption) portssvc.JournalSvcFacade {
	svc := &journalService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
		now:         func() time.Time { return time.Now().UTC() },
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

func (s *journalService) CreateJournalEntry(ctx context.Context, tenantID, userID string, req dto.CreateJournalEntryRequest) (*domain.JournalEntry, error) {
	if req.EntryDate.IsZero() {
		return nil, fmt.Errorf("%w: entryDate is required", apperrors.ErrValidation)
	}
	entryDate := domain.DateOnly(req.EntryDate.Time)

	lines, totalDebit, totalCredit, err := s.validateLines(ctx, tenantID, dto.ToDomainLines(req.Lines))
	if err != nil {
		return nil, err
	}
	if err := s.checkStation(ctx, tenantID, req.StationID); err != nil {
		return nil, err
	}
	if err := s.checkPeriodOpen(ctx, tenantID, entryDate); err != nil {
		return nil, err
	}

	now := s.now()
	entry := domain.JournalEntry{
		EntryID:       uuid.NewString(),
		TenantID:      tenantID,
		StationID:     emptyToNil(req.StationID),
		EntryDate:     entryDate,
		Description:   req.Description,
		ReferenceType: req.ReferenceType,
		ReferenceID:   req.ReferenceID,
		TotalDebit:    totalDebit,
		TotalCredit:   totalCredit,
		Status:        domain.Draft,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	entry.Lines = stampLines(entry.EntryID, lines)

	err = runInTx(ctx, s.journalRepo, func(tx pgx.Tx) error {
		seq, err := s.journalRepo.NextEntrySequence(ctx, tx, tenantID, entryDate.Year())
		if err != nil {
			return err
		}
		entry.EntryNumber = domain.FormatEntryNumber(entryDate.Year(), seq)
		return s.journalRepo.InsertEntry(ctx, tx, entry)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create journal entry", slog.String("tenant_id", tenantID))
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry created",
		slog.String("entry_id", entry.EntryID),
		slog.String("entry_number", entry.EntryNumber))
	s.RecordAudit(ctx, domain.AuditEvent{
		Kind: domain.AuditCreate, TenantID: tenantID, UserID: userID,
		EntityType: domain.EntityJournalEntry, EntityID: entry.EntryID,
		After: entry, Note: "journal entry " + entry.EntryNumber + " created", OccurredAt: now,
	})
	return &entry, nil
}

func (s *journalService) GetJournalEntry(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, tenantID, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find journal entry", slog.String("entry_id", entryID))
		}
		return nil, err
	}
	return entry, nil
}

func (s *journalService) ListJournalEntries(ctx context.Context, tenantID string, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultJournalListLimit
	}
	filter := params.ToFilter()
	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, *filter.Status)
	}

	entries, nextToken, err := s.journalRepo.ListEntries(ctx, tenantID, filter, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries", slog.String("tenant_id", tenantID))
		return nil, err
	}
	return &dto.ListJournalEntriesResponse{
		Entries:   dto.ToJournalEntryResponses(entries),
		NextToken: nextToken,
	}, nil
}

func (s *journalService) UpdateJournalEntry(ctx context.Context, tenantID, entryID, userID string, req dto.UpdateJournalEntryRequest) (*domain.JournalEntry, error) {
	current, err := s.journalRepo.FindEntryByID(ctx, tenantID, entryID)
	if err != nil {
		return nil, err
	}
	if current.Status != domain.Draft {
		return nil, fmt.Errorf("%w: entry %s is %s; only draft entries can be edited", apperrors.ErrForbidden, current.EntryNumber, current.Status)
	}

	updated := *current
	if req.StationID != nil {
		if err := s.checkStation(ctx, tenantID, req.StationID); err != nil {
			return nil, err
		}
		updated.StationID = emptyToNil(req.StationID)
	}
	if req.Description != nil {
		updated.Description = req.Description
	}
	if req.ReferenceType != nil {
		updated.ReferenceType = req.ReferenceType
	}
	if req.ReferenceID != nil {
		updated.ReferenceID = req.ReferenceID
	}

	replaceLines := req.Lines != nil
	if replaceLines {
		lines, totalDebit, totalCredit, err := s.validateLines(ctx, tenantID, dto.ToDomainLines(req.Lines))
		if err != nil {
			return nil, err
		}
		updated.Lines = stampLines(entryID, lines)
		updated.TotalDebit = totalDebit
		updated.TotalCredit = totalCredit
	}
	if err := s.checkPeriodOpen(ctx, tenantID, current.EntryDate); err != nil {
		return nil, err
	}

	now := s.now()
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = userID

	err = runInTx(ctx, s.journalRepo, func(tx pgx.Tx) error {
		locked, err := s.journalRepo.FindEntryByIDForUpdate(ctx, tx, tenantID, entryID)
		if err != nil {
			return err
		}
		if locked.Status != domain.Draft {
			return fmt.Errorf("%w: entry %s is %s; only draft entries can be edited", apperrors.ErrForbidden, locked.EntryNumber, locked.Status)
		}
		if err := s.journalRepo.UpdateEntryHeader(ctx, tx, updated); err != nil {
			return err
		}
		if replaceLines {
			return s.journalRepo.ReplaceLines(ctx, tx, entryID, updated.Lines)
		}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update journal entry", slog.String("entry_id", entryID))
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry updated", slog.String("entry_id", entryID), slog.Bool("lines_replaced", replaceLines))
	s.RecordAudit(ctx, domain.AuditEvent{
		Kind: domain.AuditUpdate, TenantID: tenantID, UserID: userID,
		EntityType: domain.EntityJournalEntry, EntityID: entryID,
		Before: current, After: updated, Note: "journal entry " + updated.EntryNumber + " updated", OccurredAt: now,
	})
	return &updated, nil
}

func (s *journalService) PostJournalEntry(ctx context.Context, tenantID, entryID, userID string) (*domain.JournalEntry, error) {
	now := s.now()
	var before, after domain.JournalEntry

	err := runInTx(ctx, s.journalRepo, func(tx pgx.Tx) error {
		locked, err := s.journalRepo.FindEntryByIDForUpdate(ctx, tx, tenantID, entryID)
		if err != nil {
			return err
		}
		if locked.Status != domain.Draft {
			return fmt.Errorf("%w: entry %s is %s; only draft entries can be posted", apperrors.ErrForbidden, locked.EntryNumber, locked.Status)
		}
		if _, _, _, err := s.validateLines(ctx, tenantID, locked.Lines); err != nil {
			return err
		}
		if err := s.checkPeriodOpen(ctx, tenantID, locked.EntryDate); err != nil {
			return err
		}

		before = *locked
		after = *locked
		after.Status = domain.Posted
		after.PostedBy = &userID
		after.PostedAt = &now
		after.LastUpdatedAt = now
		after.LastUpdatedBy = userID
		return s.journalRepo.UpdateEntryHeader(ctx, tx, after)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to post journal entry", slog.String("entry_id", entryID))
		return nil, err
	}

	s.invalidateBalances(ctx, tenantID)
	s.LogInfo(ctx, "Journal entry posted", slog.String("entry_id", entryID), slog.String("entry_number", after.EntryNumber))
	s.RecordAudit(ctx, domain.AuditEvent{
		Kind: domain.AuditPost, TenantID: tenantID, UserID: userID,
		EntityType: domain.EntityJournalEntry, EntityID: entryID,
		Before: before, After: after, Note: "journal entry " + after.EntryNumber + " posted", OccurredAt: now,
	})
	return &after, nil
}

func (s *journalService) VoidJournalEntry(ctx context.Context, tenantID, entryID, userID string) (*domain.JournalEntry, error) {
	now := s.now()
	var before, after domain.JournalEntry

	err := runInTx(ctx, s.journalRepo, func(tx pgx.Tx) error {
		locked, err := s.journalRepo.FindEntryByIDForUpdate(ctx, tx, tenantID, entryID)
		if err != nil {
			return err
		}
		if locked.Status == domain.Voided {
			return fmt.Errorf("%w: entry %s is already voided", apperrors.ErrConflict, locked.EntryNumber)
		}
		if locked.Status == domain.Posted {
			if err := s.checkPeriodOpen(ctx, tenantID, locked.EntryDate); err != nil {
				return err
			}
		}

		before = *locked
		after = *locked
		after.Status = domain.Voided
		after.LastUpdatedAt = now
		after.LastUpdatedBy = userID
		return s.journalRepo.UpdateEntryHeader(ctx, tx, after)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to void journal entry", slog.String("entry_id", entryID))
		return nil, err
	}

	if before.Status == domain.Posted {
		s.invalidateBalances(ctx, tenantID)
	}
	s.LogInfo(ctx, "Journal entry voided", slog.String("entry_id", entryID), slog.String("previous_status", string(before.Status)))
	s.RecordAudit(ctx, domain.AuditEvent{
		Kind: domain.AuditVoid, TenantID: tenantID, UserID: userID,
		EntityType: domain.EntityJournalEntry, EntityID: entryID,
		Before: before, After: after, Note: "journal entry " + after.EntryNumber + " voided", OccurredAt: now,
	})
	return &after, nil
}

func (s *journalService) DeleteJournalEntry(ctx context.Context, tenantID, entryID, userID string) error {
	now := s.now()
	var before domain.JournalEntry

	err := runInTx(ctx, s.journalRepo, func(tx pgx.Tx) error {
		locked, err := s.journalRepo.FindEntryByIDForUpdate(ctx, tx, tenantID, entryID)
		if err != nil {
			return err
		}
		if locked.Status == domain.Posted {
			return fmt.Errorf("%w: entry %s is posted; void it instead", apperrors.ErrForbidden, locked.EntryNumber)
		}

		before = *locked
		deleted := *locked
		deleted.DeletedAt = &now
		deleted.DeletedBy = &userID
		deleted.LastUpdatedAt = now
		deleted.LastUpdatedBy = userID
		return s.journalRepo.UpdateEntryHeader(ctx, tx, deleted)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to delete journal entry", slog.String("entry_id", entryID))
		return err
	}

	s.LogInfo(ctx, "Journal entry soft-deleted", slog.String("entry_id", entryID))
	s.RecordAudit(ctx, domain.AuditEvent{
		Kind: domain.AuditSoftDelete, TenantID: tenantID, UserID: userID,
		EntityType: domain.EntityJournalEntry, EntityID: entryID,
		Before: before, Note: "journal entry " + before.EntryNumber + " deleted", OccurredAt: now,
	})
	return nil
}

// validateLines checks line shape and balance, then resolves every referenced
// account. Returned lines carry account code and name.
func (s *journalService) validateLines(ctx context.Context, tenantID string, lines []domain.JournalEntryLine) ([]domain.JournalEntryLine, decimal.Decimal, decimal.Decimal, error) {
	totalDebit, totalCredit, err := accounting.ValidateJournalBalance(lines)
	if err != nil {
		return nil, decimal.Zero, decimal.Zero, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	ids := make([]string, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))
	for _, l := range lines {
		if _, ok := seen[l.AccountID]; ok {
			continue
		}
		seen[l.AccountID] = struct{}{}
		ids = append(ids, l.AccountID)
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, tenantID, ids)
	if err != nil {
		s.LogError(ctx, err, "Failed to resolve journal line accounts", slog.String("tenant_id", tenantID))
		return nil, decimal.Zero, decimal.Zero, err
	}

	var rejected []string
	for _, id := range ids {
		acc, ok := accounts[id]
		if !ok || !acc.IsActive || !acc.IsLeaf() {
			rejected = append(rejected, id)
		}
	}
	if len(rejected) > 0 {
		sort.Strings(rejected)
		return nil, decimal.Zero, decimal.Zero, fmt.Errorf("%w: missing/inactive/parent accounts: %s", apperrors.ErrValidation, strings.Join(rejected, ", "))
	}

	out := make([]domain.JournalEntryLine, len(lines))
	for i, l := range lines {
		acc := accounts[l.AccountID]
		l.AccountCode = acc.Code
		l.AccountName = acc.Name
		out[i] = l
	}
	return out, totalDebit, totalCredit, nil
}

func (s *journalService) checkStation(ctx context.Context, tenantID string, stationID *string) error {
	if stationID == nil || *stationID == "" {
		return nil
	}
	if s.stations == nil {
		s.LogDebug(ctx, "No station directory configured, skipping station check", slog.String("station_id", *stationID))
		return nil
	}
	exists, err := s.stations.StationExists(ctx, tenantID, *stationID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: station %s", apperrors.ErrNotFound, *stationID)
	}
	return nil
}

func (s *journalService) checkPeriodOpen(ctx context.Context, tenantID string, date time.Time) error {
	if s.periodLock == nil {
		return nil
	}
	period, err := s.periodLock.FindClosedPeriod(ctx, tenantID, date)
	if err != nil {
		return err
	}
	if period != nil {
		return fmt.Errorf("%w: %s falls inside closed period %s (%s to %s)", apperrors.ErrPeriodLocked,
			date.Format(dto.DateLayout), period.Name,
			period.StartDate.Format(dto.DateLayout), period.EndDate.Format(dto.DateLayout))
	}
	return nil
}

func (s *journalService) invalidateBalances(ctx context.Context, tenantID string) {
	if s.balanceCache == nil {
		return
	}
	if err := s.balanceCache.InvalidateTenant(ctx, tenantID); err != nil {
		s.LogError(ctx, err, "Failed to invalidate balance cache", slog.String("tenant_id", tenantID))
	}
}

// stampLines assigns fresh ids, entry id and 1-based line numbers.
func stampLines(entryID string, lines []domain.JournalEntryLine) []domain.JournalEntryLine {
	out := make([]domain.JournalEntryLine, len(lines))
	for i, l := range lines {
		l.LineID = uuid.NewString()
		l.JournalEntryID = entryID
		l.LineNo = i + 1
		out[i] = l
	}
	return out
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
