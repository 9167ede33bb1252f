package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	AccountRepo    AccountRepositoryFacade
	CompanyRepo    CompanyRepositoryFacade
	ThirdPartyRepo ThirdPartyRepositoryFacade
	FiscalYearRepo FiscalYearRepositoryFacade
	JournalRepo    JournalRepositoryFacade
	LedgerRepo     LedgerRepositoryFacade
	BalanceRepo    BalanceRepository
	ReportingRepo  ReportingRepository
	ProcedureRepo  ProcedureRepository
}
