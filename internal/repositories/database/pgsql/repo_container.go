package pgsql

import (
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:   newPgxAccountRepository(dbPool),
		JournalRepo:   newPgxJournalRepository(dbPool),
		ReportingRepo: newPgxReportingRepository(dbPool),
		AuditStore:    newPgxAuditRepository(dbPool),
	}
}

// NewPeriodLock returns the accounting_periods backed period lock.
func NewPeriodLock(dbPool *pgxpool.Pool) portssvc.PeriodLock {
	return newPgxPeriodRepository(dbPool)
}

// NewStationDirectory returns the stations table backed directory.
func NewStationDirectory(dbPool *pgxpool.Pool) portssvc.StationDirectory {
	return newPgxStationRepository(dbPool)
}
