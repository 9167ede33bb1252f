package pgsql

import (
	"time"

	portsrepo "github.com/SscSPs/compta_core/internal/core/ports/repositories"
	"github.com/SscSPs/compta_core/internal/repositories/cache"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider builds every pgx repository over dbPool. A positive
// accountCacheTTL puts the chart of accounts behind an in-process cache.
func NewRepositoryProvider(dbPool *pgxpool.Pool, accountCacheTTL time.Duration) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	if accountCacheTTL > 0 {
		accountRepo = cache.NewCachedAccountRepository(accountRepo, accountCacheTTL)
	}

	return portsrepo.RepositoryProvider{
		AccountRepo:    accountRepo,
		CompanyRepo:    newPgxCompanyRepository(dbPool),
		ThirdPartyRepo: newPgxThirdPartyRepository(dbPool),
		FiscalYearRepo: newPgxFiscalYearRepository(dbPool),
		JournalRepo:    newPgxJournalRepository(dbPool),
		LedgerRepo:     newPgxLedgerRepository(dbPool),
		BalanceRepo:    newPgxBalanceRepository(dbPool),
		ReportingRepo:  newPgxReportingRepository(dbPool),
		ProcedureRepo:  newPgxProcedureRepository(dbPool),
	}
}
