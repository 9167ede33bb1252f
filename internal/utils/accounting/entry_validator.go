package accounting

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/compta_core/internal/core/domain"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// EntryCandidate is a proposed journal entry, before numbering and persistence.
type EntryCandidate struct {
	Reference string
	Label     string
	EntryDate time.Time
	Movements []domain.Movement
}

// ValidateEntry runs the entry checks in order and returns the first failure.
// It has no side effects.
func ValidateEntry(entry EntryCandidate, fiscalYearStart, fiscalYearEnd time.Time, limits Limits) domain.ValidationResult {
	if strings.TrimSpace(entry.Reference) == "" {
		return invalid(domain.RuleReference, 0, "reference is required")
	}
	if strings.TrimSpace(entry.Label) == "" {
		return invalid(domain.RuleLabel, 0, "label is required")
	}

	day := domain.DateOnly(entry.EntryDate)
	start, end := domain.DateOnly(fiscalYearStart), domain.DateOnly(fiscalYearEnd)
	if day.Before(start) || day.After(end) {
		return invalid(domain.RuleDate, 0, "entry date %s must fall between %s and %s",
			day.Format(dateLayout), start.Format(dateLayout), end.Format(dateLayout))
	}

	if len(entry.Movements) < 2 {
		return invalid(domain.RuleLineCount, 0, "an entry must contain at least 2 lines, got %d", len(entry.Movements))
	}
	if len(entry.Movements) > limits.MaxLines {
		return invalid(domain.RuleLineCount, 0, "an entry cannot contain more than %d lines, got %d", limits.MaxLines, len(entry.Movements))
	}

	for i, m := range entry.Movements {
		line := i + 1
		if res, ok := checkAmount(line, "debit", m.Debit, limits.MaxAmount); !ok {
			return res
		}
		if res, ok := checkAmount(line, "credit", m.Credit, limits.MaxAmount); !ok {
			return res
		}
		if m.Debit.IsPositive() && m.Credit.IsPositive() {
			return invalid(domain.RuleLineBoth, line, "line %d: a line cannot carry both a debit and a credit", line)
		}
		if m.Debit.IsZero() && m.Credit.IsZero() {
			return invalid(domain.RuleLineEmpty, line, "line %d: a line must carry a debit or a credit", line)
		}
	}

	debit, credit, solde := SumMovements(entry.Movements)
	if !WithinTolerance(solde, limits.Tolerance) {
		return invalid(domain.RuleBalance, 0, "entry is unbalanced: debit %s vs credit %s (off by %s)",
			debit.StringFixed(2), credit.StringFixed(2), solde.Abs().StringFixed(2))
	}

	return domain.ValidationResult{Valid: true, Message: "entry is valid"}
}

func checkAmount(line int, side string, amount, maxAmount decimal.Decimal) (domain.ValidationResult, bool) {
	if amount.IsNegative() {
		return invalid(domain.RuleLineAmount, line, "line %d: %s must not be negative (%s)", line, side, amount.String()), false
	}
	if amount.GreaterThan(maxAmount) {
		return invalid(domain.RuleLineAmount, line, "line %d: %s %s exceeds the maximum of %s", line, side, amount.String(), maxAmount.StringFixed(2)), false
	}
	return domain.ValidationResult{}, true
}

func invalid(rule domain.ValidationRule, line int, format string, args ...any) domain.ValidationResult {
	return domain.ValidationResult{
		Valid:   false,
		Rule:    rule,
		Line:    line,
		Message: fmt.Sprintf(format, args...),
	}
}
