package mapping

import (
	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:       d.AccountID,
		TenantID:        d.TenantID,
		ParentAccountID: d.ParentAccountID,
		Code:            d.Code,
		Name:            d.Name,
		NameEn:          d.NameEn,
		AccountType:     string(d.AccountType),
		Nature:          string(d.Nature),
		Level:           d.Level,
		IsParent:        d.IsParent,
		IsActive:        d.IsActive,
		SystemAccount:   d.SystemAccount,
		Description:     d.Description,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:       m.AccountID,
		TenantID:        m.TenantID,
		ParentAccountID: m.ParentAccountID,
		Code:            m.Code,
		Name:            m.Name,
		NameEn:          m.NameEn,
		AccountType:     domain.AccountType(m.AccountType),
		Nature:          domain.AccountNature(m.Nature),
		Level:           m.Level,
		IsParent:        m.IsParent,
		IsActive:        m.IsActive,
		SystemAccount:   m.SystemAccount,
		Description:     m.Description,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
