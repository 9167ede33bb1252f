package repositories

import (
	"context"

	"github.com/SscSPs/compta_core/internal/core/domain"
)

// FiscalYearReader defines read operations for fiscal years
type FiscalYearReader interface {
	// FindFiscalYearByID retrieves a fiscal year by its identifier.
	FindFiscalYearByID(ctx context.Context, fiscalYearID int64) (*domain.FiscalYear, error)

	// ListFiscalYears retrieves the fiscal years of a company, most recent first.
	ListFiscalYears(ctx context.Context, companyID int64) ([]domain.FiscalYear, error)
}

// FiscalYearRepositoryFacade combines all fiscal-year repository interfaces
type FiscalYearRepositoryFacade interface {
	FiscalYearReader
}
