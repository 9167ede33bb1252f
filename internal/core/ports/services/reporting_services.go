package services

import (
	"context"

	"github.com/SscSPs/compta_core/internal/core/domain"
)

// ReportingService defines operations for generating financial statements
type ReportingService interface {
	// ComputeBalance recomputes and replaces the stored trial balance.
	ComputeBalance(ctx context.Context, companyID, fiscalYearID int64, actor domain.Actor) (*domain.TrialBalance, error)

	// GetBalance reads the stored trial balance.
	GetBalance(ctx context.Context, companyID, fiscalYearID int64) (*domain.TrialBalance, error)

	// IncomeStatement computes the compte de résultat from classes 6 and 7.
	IncomeStatement(ctx context.Context, companyID, fiscalYearID int64) (*domain.IncomeStatement, error)

	// BalanceSheet computes the bilan from classes 1 to 5, by account nature.
	BalanceSheet(ctx context.Context, companyID, fiscalYearID int64) (*domain.BalanceSheet, error)

	// VATRecap sums collected and deductible VAT.
	VATRecap(ctx context.Context, companyID, fiscalYearID int64) (*domain.VATRecap, error)
}
