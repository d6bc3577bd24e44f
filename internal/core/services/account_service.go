package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// accountService implements the chart of accounts.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryWithTx
}

// AccountServiceOption is a functional option for configuring the account service
type AccountServiceOption func(*accountService)

// WithAccountAuditSink sets the sink that receives account mutations.
func WithAccountAuditSink(sink portssvc.AuditSink) AccountServiceOption {
	return func(s *accountService) {
		s.AuditSink = sink
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(repo portsrepo.AccountRepositoryWithTx, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{accountRepo: repo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, tenantID, userID string, req dto.CreateAccountRequest) (*domain.Account, error) {
	code := strings.TrimSpace(req.Code)
	name := strings.TrimSpace(req.Name)
	if code == "" || name == "" {
		return nil, fmt.Errorf("%w: code and name are required", apperrors.ErrValidation)
	}
	if !req.AccountType.IsValid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.AccountType)
	}
	if !req.Nature.IsValid() {
		return nil, fmt.Errorf("%w: unknown account nature %q", apperrors.ErrValidation, req.Nature)
	}

	if err := s.ensureCodeFree(ctx, tenantID, code); err != nil {
		return nil, err
	}

	level := 1
	if req.Level != nil {
		if *req.Level < 1 {
			return nil, fmt.Errorf("%w: level must be at least 1", apperrors.ErrValidation)
		}
		level = *req.Level
	}

	var parent *domain.Account
	if req.ParentAccountID != nil && *req.ParentAccountID != "" {
		p, err := s.accountRepo.FindAccountByID(ctx, tenantID, *req.ParentAccountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: parent account %s", apperrors.ErrNotFound, *req.ParentAccountID)
			}
			s.LogError(ctx, err, "Failed to load parent account", slog.String("parent_id", *req.ParentAccountID))
			return nil, err
		}
		if p.AccountType != req.AccountType {
			return nil, fmt.Errorf("%w: parent account type %s does not match %s", apperrors.ErrValidation, p.AccountType, req.AccountType)
		}
		parent = p
		level = p.Level + 1
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:     uuid.NewString(),
		TenantID:      tenantID,
		Code:          code,
		Name:          name,
		NameEn:        req.NameEn,
		AccountType:   req.AccountType,
		Nature:        req.Nature,
		Level:         level,
		IsActive:      true,
		SystemAccount: req.SystemAccount,
		Description:   req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if req.IsParent != nil {
		account.IsParent = *req.IsParent
	}
	if parent != nil {
		account.ParentAccountID = &parent.AccountID
	}

	err := runInTx(ctx, s.accountRepo, func(tx pgx.Tx) error {
		if parent != nil {
			locked, err := s.accountRepo.FindAccountByIDForUpdate(ctx, tx, tenantID, parent.AccountID)
			if err != nil {
				return err
			}
			parent = locked
		}
		if err := s.accountRepo.SaveAccount(ctx, tx, account); err != nil {
			return err
		}
		if parent != nil && !parent.IsParent {
			return s.accountRepo.SetIsParent(ctx, tx, tenantID, parent.AccountID, true, userID, now)
		}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create account", slog.String("code", code), slog.String("tenant_id", tenantID))
		return nil, err
	}

	s.LogInfo(ctx, "Account created", slog.String("account_id", account.AccountID), slog.String("code", code))
	s.RecordAudit(ctx, domain.AuditEvent{
		Kind: domain.AuditCreate, TenantID: tenantID, UserID: userID,
		EntityType: domain.EntityAccount, EntityID: account.AccountID,
		After: account, Note: "account created", OccurredAt: now,
	})
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID", slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, tenantID string, filter domain.AccountFilter) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, tenantID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("tenant_id", tenantID))
		return nil, err
	}
	return accounts, nil
}

func (s *accountService) GetAccountTree(ctx context.Context, tenantID string) (*domain.AccountTree, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, tenantID, domain.AccountFilter{})
	if err != nil {
		s.LogError(ctx, err, "Failed to load accounts for tree", slog.String("tenant_id", tenantID))
		return nil, err
	}
	tree := domain.NewAccountIndex(accounts).BuildTree()
	return &tree, nil
}

// reparentPlan captures the writes needed to move an account under a new parent.
type reparentPlan struct {
	oldParentID *string
	newParent   *domain.Account
	levels      map[string]int
}

func (s *accountService) UpdateAccount(ctx context.Context, tenantID, accountID, userID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	current, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		return nil, err
	}
	updated := *current

	if req.Code != nil {
		code := strings.TrimSpace(*req.Code)
		if code == "" {
			return nil, fmt.Errorf("%w: code cannot be empty", apperrors.ErrValidation)
		}
		if code != current.Code {
			if err := s.ensureCodeFree(ctx, tenantID, code); err != nil {
				return nil, err
			}
		}
		updated.Code = code
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidation)
		}
		updated.Name = name
	}
	if req.NameEn != nil {
		updated.NameEn = req.NameEn
	}
	if req.SystemAccount != nil {
		updated.SystemAccount = req.SystemAccount
	}
	if req.Description != nil {
		updated.Description = req.Description
	}
	if req.IsActive != nil {
		updated.IsActive = *req.IsActive
	}

	typeChanged := req.AccountType != nil && *req.AccountType != current.AccountType
	natureChanged := req.Nature != nil && *req.Nature != current.Nature
	if typeChanged || natureChanged {
		if typeChanged && !req.AccountType.IsValid() {
			return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, *req.AccountType)
		}
		if natureChanged && !req.Nature.IsValid() {
			return nil, fmt.Errorf("%w: unknown account nature %q", apperrors.ErrValidation, *req.Nature)
		}
		if err := s.ensureClassificationMutable(ctx, tenantID, accountID); err != nil {
			return nil, err
		}
		if typeChanged {
			updated.AccountType = *req.AccountType
		}
		if natureChanged {
			updated.Nature = *req.Nature
		}
	}

	plan, err := s.planReparent(ctx, tenantID, current, &updated, req.ParentAccountID)
	if err != nil {
		return nil, err
	}
	if plan == nil && typeChanged && current.ParentAccountID != nil {
		parent, err := s.accountRepo.FindAccountByID(ctx, tenantID, *current.ParentAccountID)
		if err != nil {
			return nil, err
		}
		if parent.AccountType != updated.AccountType {
			return nil, fmt.Errorf("%w: account type %s does not match parent type %s", apperrors.ErrValidation, updated.AccountType, parent.AccountType)
		}
	}

	now := time.Now().UTC()
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = userID

	err = runInTx(ctx, s.accountRepo, func(tx pgx.Tx) error {
		if err := s.accountRepo.UpdateAccount(ctx, tx, updated); err != nil {
			return err
		}
		if plan == nil {
			return nil
		}
		if len(plan.levels) > 0 {
			if err := s.accountRepo.UpdateLevels(ctx, tx, tenantID, plan.levels, userID, now); err != nil {
				return err
			}
		}
		if plan.newParent != nil && !plan.newParent.IsParent {
			if err := s.accountRepo.SetIsParent(ctx, tx, tenantID, plan.newParent.AccountID, true, userID, now); err != nil {
				return err
			}
		}
		if plan.oldParentID != nil {
			remaining, err := s.accountRepo.CountChildrenInTx(ctx, tx, tenantID, *plan.oldParentID)
			if err != nil {
				return err
			}
			if remaining == 0 {
				return s.accountRepo.SetIsParent(ctx, tx, tenantID, *plan.oldParentID, false, userID, now)
			}
		}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account updated", slog.String("account_id", accountID))
	s.RecordAudit(ctx, domain.AuditEvent{
		Kind: domain.AuditUpdate, TenantID: tenantID, UserID: userID,
		EntityType: domain.EntityAccount, EntityID: accountID,
		Before: current, After: updated, Note: "account updated", OccurredAt: now,
	})
	return &updated, nil
}

// planReparent validates a parent change against the tenant's whole chart and
// returns nil when the parent does not change.
func (s *accountService) planReparent(ctx context.Context, tenantID string, current, updated *domain.Account, requested *string) (*reparentPlan, error) {
	if requested == nil {
		return nil, nil
	}
	newParentID := strings.TrimSpace(*requested)
	switch {
	case newParentID == "" && current.ParentAccountID == nil:
		return nil, nil
	case current.ParentAccountID != nil && newParentID == *current.ParentAccountID:
		return nil, nil
	}

	accounts, err := s.accountRepo.ListAccounts(ctx, tenantID, domain.AccountFilter{})
	if err != nil {
		return nil, err
	}
	index := domain.NewAccountIndex(accounts)

	plan := &reparentPlan{oldParentID: current.ParentAccountID, levels: map[string]int{}}
	newLevel := 1
	if newParentID != "" {
		parent, ok := index.Get(newParentID)
		if !ok {
			return nil, fmt.Errorf("%w: parent account %s", apperrors.ErrNotFound, newParentID)
		}
		if index.IsDescendant(current.AccountID, newParentID) {
			return nil, fmt.Errorf("%w: an account cannot be moved under itself or one of its descendants", apperrors.ErrValidation)
		}
		if parent.AccountType != updated.AccountType {
			return nil, fmt.Errorf("%w: parent account type %s does not match %s", apperrors.ErrValidation, parent.AccountType, updated.AccountType)
		}
		plan.newParent = parent
		newLevel = parent.Level + 1
		updated.ParentAccountID = &parent.AccountID
	} else {
		updated.ParentAccountID = nil
	}

	delta := newLevel - current.Level
	updated.Level = newLevel
	if delta != 0 {
		for _, id := range index.Descendants(current.AccountID) {
			desc, _ := index.Get(id)
			plan.levels[id] = desc.Level + delta
		}
	}
	return plan, nil
}

func (s *accountService) DeleteAccount(ctx context.Context, tenantID, accountID, userID string) error {
	current, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		return err
	}

	children, err := s.accountRepo.CountChildren(ctx, tenantID, accountID)
	if err != nil {
		return err
	}
	if children > 0 {
		return fmt.Errorf("%w: account %s has %d child accounts", apperrors.ErrConflict, current.Code, children)
	}
	hasLines, err := s.accountRepo.HasJournalLines(ctx, tenantID, accountID)
	if err != nil {
		return err
	}
	if hasLines {
		return fmt.Errorf("%w: account %s is referenced by journal lines", apperrors.ErrConflict, current.Code)
	}

	now := time.Now().UTC()
	err = runInTx(ctx, s.accountRepo, func(tx pgx.Tx) error {
		if current.ParentAccountID != nil {
			if _, err := s.accountRepo.FindAccountByIDForUpdate(ctx, tx, tenantID, *current.ParentAccountID); err != nil {
				return err
			}
		}
		if err := s.accountRepo.DeleteAccount(ctx, tx, tenantID, accountID); err != nil {
			return err
		}
		if current.ParentAccountID == nil {
			return nil
		}
		remaining, err := s.accountRepo.CountChildrenInTx(ctx, tx, tenantID, *current.ParentAccountID)
		if err != nil {
			return err
		}
		if remaining == 0 {
			return s.accountRepo.SetIsParent(ctx, tx, tenantID, *current.ParentAccountID, false, userID, now)
		}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to delete account", slog.String("account_id", accountID))
		return err
	}

	s.LogInfo(ctx, "Account deleted", slog.String("account_id", accountID))
	s.RecordAudit(ctx, domain.AuditEvent{
		Kind: domain.AuditDelete, TenantID: tenantID, UserID: userID,
		EntityType: domain.EntityAccount, EntityID: accountID,
		Before: current, Note: "account deleted", OccurredAt: now,
	})
	return nil
}

func (s *accountService) SeedDefaultAccounts(ctx context.Context, tenantID, userID string) (*domain.SeedResult, error) {
	existing, err := s.accountRepo.ListAccounts(ctx, tenantID, domain.AccountFilter{})
	if err != nil {
		return nil, err
	}
	index := domain.NewAccountIndex(existing)
	byCode := make(map[string]domain.Account, len(existing))
	for _, acc := range existing {
		byCode[acc.Code] = acc
	}

	now := time.Now().UTC()
	idByCode := make(map[string]string, len(defaultChart))
	seededLevels := make(map[string]int)
	var formerParents []string
	result := &domain.SeedResult{}

	err = runInTx(ctx, s.accountRepo, func(tx pgx.Tx) error {
		for _, row := range defaultChart {
			var parentID *string
			if row.ParentCode != "" {
				id := idByCode[row.ParentCode]
				parentID = &id
			}
			var systemAccount *string
			if row.SystemAccount != "" {
				sa := row.SystemAccount
				systemAccount = &sa
			}

			if acc, ok := byCode[row.Code]; ok {
				if acc.AccountType != row.Type || acc.Nature != row.Nature {
					err := s.ensureClassificationMutable(ctx, tenantID, acc.AccountID)
					switch {
					case errors.Is(err, apperrors.ErrForbidden):
						s.LogInfo(ctx, "Keeping classification of in-use seeded account", slog.String("code", row.Code))
					case err != nil:
						return err
					default:
						acc.AccountType = row.Type
						acc.Nature = row.Nature
					}
				}
				if row.IsParent && acc.IsLeaf() {
					hasLines, err := s.accountRepo.HasJournalLines(ctx, tenantID, acc.AccountID)
					if err != nil {
						return err
					}
					if hasLines {
						return fmt.Errorf("%w: account %s is referenced by journal lines and cannot become a parent", apperrors.ErrConflict, acc.Code)
					}
				}
				if acc.ParentAccountID != nil && (parentID == nil || *parentID != *acc.ParentAccountID) {
					formerParents = append(formerParents, *acc.ParentAccountID)
				}
				acc.Name = row.Name
				acc.ParentAccountID = parentID
				acc.Level = seedLevel(row.Code)
				acc.IsParent = row.IsParent || len(index.Children(acc.AccountID)) > 0
				seededLevels[acc.AccountID] = acc.Level
				acc.SystemAccount = systemAccount
				acc.LastUpdatedAt = now
				acc.LastUpdatedBy = userID
				if err := s.accountRepo.UpdateAccount(ctx, tx, acc); err != nil {
					return err
				}
				idByCode[row.Code] = acc.AccountID
				result.Updated++
				continue
			}

			acc := domain.Account{
				AccountID:       uuid.NewString(),
				TenantID:        tenantID,
				ParentAccountID: parentID,
				Code:            row.Code,
				Name:            row.Name,
				AccountType:     row.Type,
				Nature:          row.Nature,
				Level:           seedLevel(row.Code),
				IsParent:        row.IsParent,
				IsActive:        true,
				SystemAccount:   systemAccount,
				AuditFields: domain.AuditFields{
					CreatedAt: now, CreatedBy: userID,
					LastUpdatedAt: now, LastUpdatedBy: userID,
				},
			}
			if err := s.accountRepo.SaveAccount(ctx, tx, acc); err != nil {
				return err
			}
			idByCode[row.Code] = acc.AccountID
			result.Created++
		}

		if levels := shiftedLevels(index, seededLevels); len(levels) > 0 {
			if err := s.accountRepo.UpdateLevels(ctx, tx, tenantID, levels, userID, now); err != nil {
				return err
			}
		}
		for _, parentID := range formerParents {
			remaining, err := s.accountRepo.CountChildrenInTx(ctx, tx, tenantID, parentID)
			if err != nil {
				return err
			}
			if remaining == 0 {
				if err := s.accountRepo.SetIsParent(ctx, tx, tenantID, parentID, false, userID, now); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to seed default accounts", slog.String("tenant_id", tenantID))
		return nil, err
	}

	s.LogInfo(ctx, "Default accounts seeded", slog.Int("created", result.Created), slog.Int("updated", result.Updated))
	s.RecordAudit(ctx, domain.AuditEvent{
		Kind: domain.AuditUpdate, TenantID: tenantID, UserID: userID,
		EntityType: domain.EntityAccount, EntityID: "chart-of-accounts",
		After: result, Note: "default chart seeded", OccurredAt: now,
	})
	return result, nil
}

// shiftedLevels carries the level change of each re-seeded account down to the
// accounts beneath it that are not part of the template. Seeding never moves
// those accounts, so each one follows its nearest seeded ancestor.
func shiftedLevels(index *domain.AccountIndex, seeded map[string]int) map[string]int {
	levels := make(map[string]int)
	for id, newLevel := range seeded {
		acc, ok := index.Get(id)
		if !ok || acc.Level == newLevel {
			continue
		}
		delta := newLevel - acc.Level
		queue := append([]string(nil), index.Children(id)...)
		for len(queue) > 0 {
			next := queue[0]
			queue = queue[1:]
			if _, ok := seeded[next]; ok {
				continue
			}
			if _, done := levels[next]; done {
				continue
			}
			child, _ := index.Get(next)
			levels[next] = child.Level + delta
			queue = append(queue, index.Children(next)...)
		}
	}
	return levels
}

func (s *accountService) ensureCodeFree(ctx context.Context, tenantID, code string) error {
	_, err := s.accountRepo.FindAccountByCode(ctx, tenantID, code)
	switch {
	case err == nil:
		return fmt.Errorf("%w: account code %s already exists", apperrors.ErrConflict, code)
	case errors.Is(err, apperrors.ErrNotFound):
		return nil
	default:
		return err
	}
}

// ensureClassificationMutable rejects type or nature changes on accounts that
// already have children or journal lines.
func (s *accountService) ensureClassificationMutable(ctx context.Context, tenantID, accountID string) error {
	children, err := s.accountRepo.CountChildren(ctx, tenantID, accountID)
	if err != nil {
		return err
	}
	hasLines, err := s.accountRepo.HasJournalLines(ctx, tenantID, accountID)
	if err != nil {
		return err
	}
	if children > 0 || hasLines {
		return fmt.Errorf("%w: type and nature cannot change once an account has child accounts or journal lines", apperrors.ErrForbidden)
	}
	return nil
}
