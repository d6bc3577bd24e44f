package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_core/internal/models"
	"github.com/SscSPs/ledger_core/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const accountColumns = `account_id, tenant_id, parent_account_id, code, name, name_en, account_type, nature,
	level, is_parent, is_active, system_account, description,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryWithTx {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryWithTx
var _ portsrepo.AccountRepositoryWithTx = (*PgxAccountRepository)(nil)

func queryAccounts(ctx context.Context, q querier, sql string, args ...any) ([]domain.Account, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapPgError(err, "query accounts")
	}
	modelAccounts, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		return nil, mapPgError(err, "scan accounts")
	}
	return mapping.ToDomainAccountSlice(modelAccounts), nil
}

func queryAccount(ctx context.Context, q querier, op, sql string, args ...any) (*domain.Account, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapPgError(err, op)
	}
	modelAcc, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		return nil, mapPgError(err, op)
	}
	acc := mapping.ToDomainAccount(modelAcc)
	return &acc, nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE tenant_id = $1 AND account_id = $2`
	return queryAccount(ctx, r.Pool, "find account "+accountID, query, tenantID, accountID)
}

// FindAccountByCode retrieves an account by its tenant-unique code.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, tenantID, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE tenant_id = $1 AND code = $2`
	return queryAccount(ctx, r.Pool, "find account code "+code, query, tenantID, code)
}

// FindAccountByIDForUpdate selects an account row with FOR UPDATE.
func (r *PgxAccountRepository) FindAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, tenantID, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE tenant_id = $1 AND account_id = $2 FOR UPDATE`
	return queryAccount(ctx, tx, "lock account "+accountID, query, tenantID, accountID)
}

// FindAccountsByIDs retrieves multiple accounts by their IDs.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE tenant_id = $1 AND account_id = ANY($2)`
	accounts, err := queryAccounts(ctx, r.Pool, query, tenantID, accountIDs)
	if err != nil {
		return nil, err
	}
	accountsMap := make(map[string]domain.Account, len(accounts))
	for _, acc := range accounts {
		accountsMap[acc.AccountID] = acc
	}
	return accountsMap, nil
}

// ListAccounts retrieves the tenant's accounts ordered by code.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, tenantID string, filter domain.AccountFilter) ([]domain.Account, error) {
	where := accountFilterWhere(tenantID, filter)
	query := `SELECT ` + accountColumns + ` FROM accounts ` + where.sql() + ` ORDER BY code`
	return queryAccounts(ctx, r.Pool, query, where.args...)
}

func countChildren(ctx context.Context, q querier, tenantID, accountID string) (int, error) {
	var n int
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM accounts WHERE tenant_id = $1 AND parent_account_id = $2`,
		tenantID, accountID,
	).Scan(&n)
	if err != nil {
		return 0, mapPgError(err, "count child accounts")
	}
	return n, nil
}

// CountChildren returns the number of direct child accounts.
func (r *PgxAccountRepository) CountChildren(ctx context.Context, tenantID, accountID string) (int, error) {
	return countChildren(ctx, r.Pool, tenantID, accountID)
}

// CountChildrenInTx counts direct children as seen by tx.
func (r *PgxAccountRepository) CountChildrenInTx(ctx context.Context, tx pgx.Tx, tenantID, accountID string) (int, error) {
	return countChildren(ctx, tx, tenantID, accountID)
}

// HasJournalLines reports whether any line, in any entry state, references the account.
func (r *PgxAccountRepository) HasJournalLines(ctx context.Context, tenantID, accountID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM journal_entry_lines l
			JOIN journal_entries e ON e.entry_id = l.entry_id
			WHERE e.tenant_id = $1 AND l.account_id = $2
		)`
	var exists bool
	if err := r.Pool.QueryRow(ctx, query, tenantID, accountID).Scan(&exists); err != nil {
		return false, mapPgError(err, "check account usage")
	}
	return exists, nil
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, tx pgx.Tx, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := tx.Exec(ctx, query,
		m.AccountID, m.TenantID, m.ParentAccountID, m.Code, m.Name, m.NameEn, m.AccountType, m.Nature,
		m.Level, m.IsParent, m.IsActive, m.SystemAccount, m.Description,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, fmt.Sprintf("save account %s", account.Code))
	}
	return nil
}

// UpdateAccount overwrites the mutable columns of an account.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, tx pgx.Tx, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		UPDATE accounts
		SET parent_account_id = $3, code = $4, name = $5, name_en = $6, account_type = $7, nature = $8,
			level = $9, is_parent = $10, is_active = $11, system_account = $12, description = $13,
			last_updated_at = $14, last_updated_by = $15
		WHERE tenant_id = $1 AND account_id = $2`
	tag, err := tx.Exec(ctx, query,
		m.TenantID, m.AccountID, m.ParentAccountID, m.Code, m.Name, m.NameEn, m.AccountType, m.Nature,
		m.Level, m.IsParent, m.IsActive, m.SystemAccount, m.Description,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, fmt.Sprintf("update account %s", account.Code))
	}
	if tag.RowsAffected() == 0 {
		return mapPgError(pgx.ErrNoRows, "update account "+account.AccountID)
	}
	return nil
}

// DeleteAccount removes an account row.
func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, tx pgx.Tx, tenantID, accountID string) error {
	tag, err := tx.Exec(ctx, `DELETE FROM accounts WHERE tenant_id = $1 AND account_id = $2`, tenantID, accountID)
	if err != nil {
		return mapPgError(err, "delete account "+accountID)
	}
	if tag.RowsAffected() == 0 {
		return mapPgError(pgx.ErrNoRows, "delete account "+accountID)
	}
	return nil
}

// SetIsParent flips the parent flag of an account.
func (r *PgxAccountRepository) SetIsParent(ctx context.Context, tx pgx.Tx, tenantID, accountID string, isParent bool, userID string, now time.Time) error {
	query := `
		UPDATE accounts SET is_parent = $3, last_updated_at = $4, last_updated_by = $5
		WHERE tenant_id = $1 AND account_id = $2`
	if _, err := tx.Exec(ctx, query, tenantID, accountID, isParent, now, userID); err != nil {
		return mapPgError(err, "set parent flag on "+accountID)
	}
	return nil
}

// UpdateLevels rewrites the level of several accounts in one batch.
func (r *PgxAccountRepository) UpdateLevels(ctx context.Context, tx pgx.Tx, tenantID string, levels map[string]int, userID string, now time.Time) error {
	if len(levels) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	query := `
		UPDATE accounts SET level = $3, last_updated_at = $4, last_updated_by = $5
		WHERE tenant_id = $1 AND account_id = $2`
	for accountID, level := range levels {
		batch.Queue(query, tenantID, accountID, level, now, userID)
	}

	br := tx.SendBatch(ctx, batch)
	defer br.Close()
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			return mapPgError(err, fmt.Sprintf("update account level at index %d", i))
		}
	}
	return nil
}
