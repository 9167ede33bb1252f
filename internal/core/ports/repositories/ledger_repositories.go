package repositories

import (
	"context"

	"github.com/SscSPs/compta_core/internal/core/domain"
)

// LedgerReader defines movement queries used by reconciliation and the general ledger
type LedgerReader interface {
	// FindUnreconciledMovements returns the movements of validated entries with no
	// reconciliation code in scope, ordered by entry date then entry number.
	FindUnreconciledMovements(ctx context.Context, scope domain.ReconciliationScope) ([]domain.LedgerLine, error)

	// FindReconciledMovements returns the movements of an account carrying a code, ordered by code.
	FindReconciledMovements(ctx context.Context, companyID, fiscalYearID int64, accountNumber string) ([]domain.LedgerLine, error)

	// FindAccountMovements returns every movement of an account in a fiscal year, in entry order.
	FindAccountMovements(ctx context.Context, companyID, fiscalYearID int64, accountNumber string) ([]domain.LedgerLine, error)

	// AggregateMovements sums an arbitrary set of movements. Unknown IDs are not counted.
	AggregateMovements(ctx context.Context, movementIDs []int64) (*domain.MovementAggregate, error)
}

// LedgerWriter defines the only mutations movements accept after creation
type LedgerWriter interface {
	// ApplyReconciliationCode sets an explicit code on every movement, all or
	// nothing. It fails with apperrors.ErrCodeInUse when another group carries
	// the code and with apperrors.ErrConflict when a movement already has one.
	ApplyReconciliationCode(ctx context.Context, movementIDs []int64, code string) (int64, error)

	// AllocateReconciliationCode picks the next code after the allocation
	// high-water mark and sets it on every movement in the same transaction.
	// Codes are never handed out twice, even once unreconciled. It fails with
	// apperrors.ErrConflict when a movement already has a code.
	AllocateReconciliationCode(ctx context.Context, movementIDs []int64) (string, error)

	// ClearReconciliationCode removes code from every movement carrying it and
	// returns the number of movements cleared.
	ClearReconciliationCode(ctx context.Context, code string) (int64, error)
}

// LedgerRepositoryFacade combines all ledger repository interfaces
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}
