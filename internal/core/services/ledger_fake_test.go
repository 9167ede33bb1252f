package services_test

import (
	"context"
	"slices"
	"sync"

	"github.com/SscSPs/compta_core/internal/apperrors"
	"github.com/SscSPs/compta_core/internal/core/domain"
	"github.com/SscSPs/compta_core/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// memoryLedger keeps movements in memory and allocates codes after a
// high-water mark, like the pgsql ledger.
type memoryLedger struct {
	mu        sync.Mutex
	lines     []domain.LedgerLine
	highWater string
}

func newMemoryLedger(lines ...domain.LedgerLine) *memoryLedger {
	return &memoryLedger{lines: lines}
}

func (l *memoryLedger) FindUnreconciledMovements(_ context.Context, scope domain.ReconciliationScope) ([]domain.LedgerLine, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []domain.LedgerLine
	for _, m := range l.lines {
		if m.ReconciliationCode == "" && m.AccountNumber == scope.AccountNumber {
			out = append(out, m)
		}
	}
	return out, nil
}

func (l *memoryLedger) FindReconciledMovements(_ context.Context, _, _ int64, accountNumber string) ([]domain.LedgerLine, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []domain.LedgerLine
	for _, m := range l.lines {
		if m.ReconciliationCode != "" && m.AccountNumber == accountNumber {
			out = append(out, m)
		}
	}
	slices.SortStableFunc(out, func(a, b domain.LedgerLine) int {
		switch {
		case a.ReconciliationCode < b.ReconciliationCode:
			return -1
		case a.ReconciliationCode > b.ReconciliationCode:
			return 1
		}
		return 0
	})
	return out, nil
}

func (l *memoryLedger) FindAccountMovements(_ context.Context, _, _ int64, accountNumber string) ([]domain.LedgerLine, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []domain.LedgerLine
	for _, m := range l.lines {
		if m.AccountNumber == accountNumber {
			out = append(out, m)
		}
	}
	return out, nil
}

func (l *memoryLedger) AggregateMovements(_ context.Context, movementIDs []int64) (*domain.MovementAggregate, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	agg := &domain.MovementAggregate{TotalDebit: decimal.Zero, TotalCredit: decimal.Zero}
	for _, m := range l.lines {
		if !slices.Contains(movementIDs, m.MovementID) {
			continue
		}
		agg.Count++
		agg.TotalDebit = agg.TotalDebit.Add(m.Debit)
		agg.TotalCredit = agg.TotalCredit.Add(m.Credit)
		if !slices.Contains(agg.AccountIDs, m.AccountID) {
			agg.AccountIDs = append(agg.AccountIDs, m.AccountID)
		}
	}
	agg.Solde = agg.TotalDebit.Sub(agg.TotalCredit)
	return agg, nil
}

func (l *memoryLedger) ApplyReconciliationCode(_ context.Context, movementIDs []int64, code string) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.inUse(code) {
		return 0, apperrors.NewCodeInUseError(code)
	}
	if err := l.code(movementIDs, code); err != nil {
		return 0, err
	}
	l.highWater = accounting.LaterReconciliationCode(l.highWater, code)
	return int64(len(movementIDs)), nil
}

func (l *memoryLedger) AllocateReconciliationCode(_ context.Context, movementIDs []int64) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	code, err := accounting.AllocateReconciliationCode(l.highWater, l.inUse)
	if err != nil {
		return "", err
	}
	if err := l.code(movementIDs, code); err != nil {
		return "", err
	}
	l.highWater = code
	return code, nil
}

func (l *memoryLedger) ClearReconciliationCode(_ context.Context, code string) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var cleared int64
	for i := range l.lines {
		if l.lines[i].ReconciliationCode == code {
			l.lines[i].ReconciliationCode = ""
			cleared++
		}
	}
	return cleared, nil
}

func (l *memoryLedger) inUse(code string) bool {
	for _, m := range l.lines {
		if m.ReconciliationCode == code {
			return true
		}
	}
	return false
}

func (l *memoryLedger) code(movementIDs []int64, code string) error {
	for _, m := range l.lines {
		if slices.Contains(movementIDs, m.MovementID) && m.ReconciliationCode != "" {
			return apperrors.NewConflictError("movement %d is already reconciled under code %s", m.MovementID, m.ReconciliationCode)
		}
	}
	for i := range l.lines {
		if slices.Contains(movementIDs, l.lines[i].MovementID) {
			l.lines[i].ReconciliationCode = code
		}
	}
	return nil
}
