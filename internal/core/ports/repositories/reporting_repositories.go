package repositories

import (
	"context"

	"github.com/SscSPs/compta_core/internal/core/domain"
)

// ReportingRepository defines operations for retrieving statement data
type ReportingRepository interface {
	// FindAccountTotals aggregates debit and credit per account over a fiscal
	// year, for accounts with at least one movement, filtered by class or prefix.
	FindAccountTotals(ctx context.Context, companyID, fiscalYearID int64, filter domain.AccountFilter) ([]domain.AccountTotals, error)
}

// BalanceRepository defines operations on the stored trial balance
type BalanceRepository interface {
	// FindBalance returns the stored balance lines, ordered by account number.
	FindBalance(ctx context.Context, companyID, fiscalYearID int64) ([]domain.BalanceLine, error)

	// ReplaceBalance swaps the stored balance for (company, fiscal year) in one
	// transaction, serialized with other replacements of the same key.
	ReplaceBalance(ctx context.Context, companyID, fiscalYearID int64, lines []domain.BalanceLine) error
}

// ProcedureRepository invokes the named database procedures
type ProcedureRepository interface {
	// ComputeBalance runs calculer_balance.
	ComputeBalance(ctx context.Context, companyID, fiscalYearID int64) error

	// CloseFiscalYear runs cloturer_exercice, which checks the entries and flags the fiscal year closed.
	CloseFiscalYear(ctx context.Context, companyID, fiscalYearID int64) error

	// ExportFEC runs exporter_fec_exercice and returns its rows.
	ExportFEC(ctx context.Context, companyID, fiscalYearID int64) ([]domain.FECRecord, error)

	// RunConsistencyChecks runs tester_comptabilite_avancee.
	RunConsistencyChecks(ctx context.Context, companyID, fiscalYearID int64) ([]domain.ConsistencyCheck, error)
}
