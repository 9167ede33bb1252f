package dto

import (
	"time"

	"github.com/SscSPs/compta_core/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceRowResponse represents a row in the trial balance response
type BalanceRowResponse struct {
	AccountNumber string          `json:"accountNumber"`
	AccountLabel  string          `json:"accountLabel"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	Solde         decimal.Decimal `json:"solde"`
}

// TrialBalanceResponse represents the trial balance response
type TrialBalanceResponse struct {
	CompanyID    int64                `json:"companyID"`
	FiscalYearID int64                `json:"fiscalYearID"`
	ComputedAt   string               `json:"computedAt,omitempty"`
	Rows         []BalanceRowResponse `json:"rows"`
	Totals       struct {
		Debit  decimal.Decimal `json:"debit"`
		Credit decimal.Decimal `json:"credit"`
	} `json:"totals"`
}

// ToTrialBalanceResponse converts a domain.TrialBalance to its response DTO.
func ToTrialBalanceResponse(tb *domain.TrialBalance) TrialBalanceResponse {
	resp := TrialBalanceResponse{
		CompanyID:    tb.CompanyID,
		FiscalYearID: tb.FiscalYearID,
		Rows:         make([]BalanceRowResponse, len(tb.Lines)),
	}
	if !tb.ComputedAt.IsZero() {
		resp.ComputedAt = tb.ComputedAt.Format(time.RFC3339)
	}
	for i, l := range tb.Lines {
		resp.Rows[i] = BalanceRowResponse{
			AccountNumber: l.AccountNumber,
			AccountLabel:  l.AccountLabel,
			Debit:         l.TotalDebit,
			Credit:        l.TotalCredit,
			Solde:         l.Solde,
		}
	}
	resp.Totals.Debit = tb.TotalDebit
	resp.Totals.Credit = tb.TotalCredit
	return resp
}
