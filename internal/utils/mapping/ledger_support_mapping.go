package mapping

import (
	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/models"
)

// ToDomainAccountingPeriod converts a model AccountingPeriod to a domain AccountingPeriod
func ToDomainAccountingPeriod(m models.AccountingPeriod) domain.AccountingPeriod {
	return domain.AccountingPeriod{
		PeriodID:  m.PeriodID,
		TenantID:  m.TenantID,
		Name:      m.Name,
		StartDate: domain.DateOnly(m.StartDate),
		EndDate:   domain.DateOnly(m.EndDate),
		IsClosed:  m.IsClosed,
	}
}
