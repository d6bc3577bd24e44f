package dto

import (
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Code            string               `json:"code" binding:"required,max=32"`
	Name            string               `json:"name" binding:"required,max=255"`
	NameEn          *string              `json:"nameEn" binding:"omitempty,max=255"`
	AccountType     domain.AccountType   `json:"type" binding:"required,accounttype"`
	Nature          domain.AccountNature `json:"nature" binding:"required,accountnature"`
	ParentAccountID *string              `json:"parentId"`
	Level           *int                 `json:"level" binding:"omitempty,min=1"`
	IsParent        *bool                `json:"isParent"`
	SystemAccount   *string              `json:"systemAccount"`
	Description     *string              `json:"description"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
// An empty ParentAccountID detaches the account to the top level.
type UpdateAccountRequest struct {
	Code            *string               `json:"code" binding:"omitempty,min=1,max=32"`
	Name            *string               `json:"name" binding:"omitempty,min=1,max=255"`
	NameEn          *string               `json:"nameEn" binding:"omitempty,max=255"`
	AccountType     *domain.AccountType   `json:"type" binding:"omitempty,accounttype"`
	Nature          *domain.AccountNature `json:"nature" binding:"omitempty,accountnature"`
	ParentAccountID *string               `json:"parentId"`
	IsActive        *bool                 `json:"isActive"`
	SystemAccount   *string               `json:"systemAccount"`
	Description     *string               `json:"description"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID       string               `json:"id"`
	ParentAccountID *string              `json:"parentId"`
	Code            string               `json:"code"`
	Name            string               `json:"name"`
	NameEn          *string              `json:"nameEn,omitempty"`
	AccountType     domain.AccountType   `json:"type"`
	Nature          domain.AccountNature `json:"nature"`
	Level           int                  `json:"level"`
	IsParent        bool                 `json:"isParent"`
	IsActive        bool                 `json:"isActive"`
	SystemAccount   *string              `json:"systemAccount,omitempty"`
	Description     *string              `json:"description,omitempty"`
	CreatedAt       time.Time            `json:"createdAt"`
	CreatedBy       string               `json:"createdBy"`
	LastUpdatedAt   time.Time            `json:"lastUpdatedAt"`
	LastUpdatedBy   string               `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       acc.AccountID,
		ParentAccountID: acc.ParentAccountID,
		Code:            acc.Code,
		Name:            acc.Name,
		NameEn:          acc.NameEn,
		AccountType:     acc.AccountType,
		Nature:          acc.Nature,
		Level:           acc.Level,
		IsParent:        acc.IsParent,
		IsActive:        acc.IsActive,
		SystemAccount:   acc.SystemAccount,
		Description:     acc.Description,
		CreatedAt:       acc.CreatedAt,
		CreatedBy:       acc.CreatedBy,
		LastUpdatedAt:   acc.LastUpdatedAt,
		LastUpdatedBy:   acc.LastUpdatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	AccountType *string `form:"type" binding:"omitempty,accounttype"`
	IsActive    *bool   `form:"isActive"`
	LeafOnly    bool    `form:"leafOnly"`
	Search      *string `form:"search"`
}

// ToFilter converts the query parameters into a domain filter.
func (p ListAccountsParams) ToFilter() domain.AccountFilter {
	filter := domain.AccountFilter{IsActive: p.IsActive, LeafOnly: p.LeafOnly, Search: p.Search}
	if p.AccountType != nil {
		t := domain.AccountType(*p.AccountType)
		filter.AccountType = &t
	}
	return filter
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// SeedAccountsResponse reports the outcome of seeding the default chart.
type SeedAccountsResponse struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
}

// AccountBalanceResponse defines the data returned for an account balance query.
type AccountBalanceResponse struct {
	AccountID string          `json:"accountId"`
	AsOfDate  Date            `json:"asOfDate"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	Balance   decimal.Decimal `json:"balance"`
}

// ToAccountBalanceResponse converts a domain.AccountBalance to its DTO.
func ToAccountBalanceResponse(b *domain.AccountBalance) AccountBalanceResponse {
	return AccountBalanceResponse{
		AccountID: b.AccountID,
		AsOfDate:  NewDate(b.AsOfDate),
		Debit:     b.Debit,
		Credit:    b.Credit,
		Balance:   b.Balance,
	}
}
