package services

import (
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
)

// Collaborators are the optional outer-layer adapters the ledger core talks to.
// A nil field disables the corresponding behaviour.
type Collaborators struct {
	PeriodLock   portssvc.PeriodLock
	Stations     portssvc.StationDirectory
	AuditSink    portssvc.AuditSink
	BalanceCache portssvc.BalanceCache
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, collab Collaborators) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(
		repos.AccountRepo,
		WithAccountAuditSink(collab.AuditSink),
	)

	journalOpts := []JournalServiceOption{WithJournalAuditSink(collab.AuditSink)}
	if collab.PeriodLock != nil {
		journalOpts = append(journalOpts, WithPeriodLock(collab.PeriodLock))
	}
	if collab.Stations != nil {
		journalOpts = append(journalOpts, WithStationDirectory(collab.Stations))
	}
	if collab.BalanceCache != nil {
		journalOpts = append(journalOpts, WithBalanceCacheInvalidation(collab.BalanceCache))
	}
	container.Journal = NewJournalService(repos.JournalRepo, repos.AccountRepo, journalOpts...)

	var reportingOpts []ReportingServiceOption
	if collab.BalanceCache != nil {
		reportingOpts = append(reportingOpts, WithBalanceCache(collab.BalanceCache))
	}
	container.Reporting = NewReportingService(repos.ReportingRepo, repos.AccountRepo, reportingOpts...)

	container.Audit = NewAuditService(repos.AuditStore)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.AccountSvcFacade = (*accountService)(nil)
	_ portssvc.JournalSvcFacade = (*journalService)(nil)
	_ portssvc.ReportingService = (*reportingService)(nil)
	_ portssvc.AuditService     = (*auditService)(nil)
)
