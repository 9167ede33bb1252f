package services

import (
	portsrepo "github.com/SscSPs/compta_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/compta_core/internal/core/ports/services"
	"github.com/SscSPs/compta_core/internal/platform/config"
)

// NewServiceContainer creates a new service container with all services initialized
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, audit portssvc.AuditRecorder) *portssvc.ServiceContainer {
	limits := cfg.Limits()

	companySvc := NewCompanyService(repos.CompanyRepo, repos.FiscalYearRepo, repos.JournalRepo)
	thirdPartySvc := NewThirdPartyService(repos.ThirdPartyRepo, WithThirdPartyAuditRecorder(audit))
	chartSvc := NewChartService(repos.AccountRepo, WithChartAuditRecorder(audit))

	entrySvc := NewEntryService(
		repos.FiscalYearRepo,
		repos.JournalRepo,
		repos.AccountRepo,
		repos.LedgerRepo,
		WithEntryLimits(limits),
		WithEntryAuditRecorder(audit),
	)

	reconciliationSvc := NewReconciliationService(
		repos.LedgerRepo,
		repos.AccountRepo,
		WithReconciliationTolerance(limits.Tolerance),
		WithReconciliationAuditRecorder(audit),
	)

	reportingOpts := []ReportingServiceOption{
		WithReportingAuditRecorder(audit),
		WithStatementTolerance(limits.Tolerance),
		WithVATPrefixes(cfg.VATCollectedPrefix, cfg.VATDeductiblePrefix),
	}
	if cfg.UseBalanceProcedure {
		reportingOpts = append(reportingOpts, WithProcedureBalance(repos.ProcedureRepo))
	}
	reportingSvc := NewReportingService(repos.ReportingRepo, repos.BalanceRepo, repos.FiscalYearRepo, reportingOpts...)

	closingSvc := NewClosingService(repos.FiscalYearRepo, repos.ProcedureRepo, audit)

	return &portssvc.ServiceContainer{
		Company:        companySvc,
		ThirdParty:     thirdPartySvc,
		Chart:          chartSvc,
		Entry:          entrySvc,
		Reconciliation: reconciliationSvc,
		Reporting:      reportingSvc,
		Closing:        closingSvc,
	}
}
