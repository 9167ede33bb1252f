package services

import (
	"context"

	"github.com/SscSPs/compta_core/internal/core/domain"
)

// ReconciliationService defines lettrage operations
type ReconciliationService interface {
	// Reconcile assigns one code to a zero-sum set of movements. An empty code
	// allocates the next one.
	Reconcile(ctx context.Context, movementIDs []int64, code string, actor domain.Actor) (*domain.ReconciliationResult, error)

	// AutoReconcile pairs opposite movements of an account greedily.
	AutoReconcile(ctx context.Context, scope domain.ReconciliationScope, actor domain.Actor) (*domain.AutoReconciliationResult, error)

	// Unreconcile clears a code. Clearing an unused code succeeds with a zero count.
	Unreconcile(ctx context.Context, code string, actor domain.Actor) (*domain.UnreconciliationResult, error)

	// ListUnreconciled returns the movements still open in scope.
	ListUnreconciled(ctx context.Context, scope domain.ReconciliationScope) ([]domain.LedgerLine, error)

	// ListGroups returns the reconciled movements of an account grouped by code.
	ListGroups(ctx context.Context, companyID, fiscalYearID int64, accountNumber string) ([]domain.ReconciliationGroup, error)
}
