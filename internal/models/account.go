package models

// Account is a row of the accounts table. Nullable columns are pointers.
type Account struct {
	AccountID       string  `db:"account_id"`
	TenantID        string  `db:"tenant_id"`
	ParentAccountID *string `db:"parent_account_id"`
	Code            string  `db:"code"`
	Name            string  `db:"name"`
	NameEn          *string `db:"name_en"`
	AccountType     string  `db:"account_type"`
	Nature          string  `db:"nature"`
	Level           int     `db:"level"`
	IsParent        bool    `db:"is_parent"`
	IsActive        bool    `db:"is_active"`
	SystemAccount   *string `db:"system_account"`
	Description     *string `db:"description"`
	AuditFields
}
