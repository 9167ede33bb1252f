package accounting

import (
	"github.com/SscSPs/compta_core/internal/core/domain"
	"github.com/shopspring/decimal"
)

var (
	// DefaultTolerance absorbs rounding noise when comparing debit and credit sums.
	DefaultTolerance = decimal.RequireFromString("0.01")
	// DefaultMaxAmount caps the debit or credit of a single movement.
	DefaultMaxAmount = decimal.RequireFromString("999999999.99")
	// ZeroSoldeThreshold drops accounts whose solde is noise from the bilan.
	ZeroSoldeThreshold = decimal.RequireFromString("0.001")
)

// DefaultMaxLines is the largest number of movements an entry may carry.
const DefaultMaxLines = 100

// Limits are the numeric bounds enforced on entries and reconciliations.
type Limits struct {
	Tolerance decimal.Decimal
	MaxAmount decimal.Decimal
	MaxLines  int
}

// DefaultLimits returns the standard bounds.
func DefaultLimits() Limits {
	return Limits{
		Tolerance: DefaultTolerance,
		MaxAmount: DefaultMaxAmount,
		MaxLines:  DefaultMaxLines,
	}
}

// WithinTolerance reports whether |v| <= tolerance.
func WithinTolerance(v, tolerance decimal.Decimal) bool {
	return v.Abs().LessThanOrEqual(tolerance)
}

// SumMovements returns the total debit, total credit and debit - credit.
func SumMovements(movements []domain.Movement) (debit, credit, solde decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, m := range movements {
		debit = debit.Add(m.Debit)
		credit = credit.Add(m.Credit)
	}
	return debit, credit, debit.Sub(credit)
}

// IsUnusualSolde reports whether a solde has the opposite sign to what the
// nature normally carries: a credit on an asset or a debit on a liability.
func IsUnusualSolde(nature domain.Nature, solde decimal.Decimal) bool {
	switch nature {
	case domain.NatureActif:
		return solde.IsNegative()
	case domain.NaturePassif:
		return solde.IsPositive()
	}
	return false
}
