package repositories

import (
	"context"

	"github.com/SscSPs/compta_core/internal/core/domain"
)

// AccountReader defines read operations for the chart of accounts
type AccountReader interface {
	// FindAccountByID retrieves an account by its identifier.
	FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error)

	// FindAccountByNumber retrieves a company account by its PCG number.
	FindAccountByNumber(ctx context.Context, companyID int64, number string) (*domain.Account, error)

	// ListAccounts retrieves the full chart of a company ordered by number.
	ListAccounts(ctx context.Context, companyID int64) ([]domain.Account, error)

	// SearchAccounts lists the accounts of a class whose number starts with,
	// or whose label contains, the query. Ordered by number.
	SearchAccounts(ctx context.Context, companyID int64, search domain.AccountSearch) ([]domain.Account, error)
}

// AccountWriter defines write operations for the chart of accounts
type AccountWriter interface {
	// SaveAccount inserts an account and returns its new identifier.
	SaveAccount(ctx context.Context, account domain.Account) (int64, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
