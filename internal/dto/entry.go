package dto

import (
	"fmt"
	"time"

	"github.com/SscSPs/compta_core/internal/apperrors"
	"github.com/SscSPs/compta_core/internal/core/domain"
	"github.com/SscSPs/compta_core/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// DateLayout is the wire format of entry dates.
const DateLayout = "2006-01-02"

// MovementRequest is one proposed line of an entry.
type MovementRequest struct {
	AccountNumber string          `json:"accountNumber" binding:"required,pcg_account"`
	ThirdPartyID  *int64          `json:"thirdPartyID"`
	Label         string          `json:"label" binding:"max=255"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
}

// EntryHeader carries the fields shared by entry requests. Reference and
// label are checked by the entry validator so the failure names the rule.
type EntryHeader struct {
	Reference string `json:"reference" binding:"max=100"`
	Label     string `json:"label" binding:"max=255"`
	EntryDate string `json:"entryDate" binding:"required,datetime=2006-01-02"`
}

// ValidateEntryRequest asks for a dry-run validation against a fiscal year.
type ValidateEntryRequest struct {
	FiscalYearID int64 `json:"fiscalYearID" binding:"required"`
	EntryHeader
	Movements []MovementRequest `json:"movements" binding:"dive"`
}

// CreateEntryRequest defines the data needed to book an entry.
type CreateEntryRequest struct {
	CompanyID    int64 `json:"companyID" binding:"required"`
	FiscalYearID int64 `json:"fiscalYearID" binding:"required"`
	JournalID    int64 `json:"journalID" binding:"required"`
	EntryHeader
	Movements []MovementRequest `json:"movements" binding:"dive"`
}

// InvoiceEntryRequest books a sales or purchase invoice from its net amount.
type InvoiceEntryRequest struct {
	CompanyID    int64 `json:"companyID" binding:"required"`
	FiscalYearID int64 `json:"fiscalYearID" binding:"required"`
	JournalID    int64 `json:"journalID" binding:"required"`
	ThirdPartyID int64 `json:"thirdPartyID" binding:"required"`
	EntryHeader
	NetAmount decimal.Decimal `json:"netAmount"`
	VATRate   decimal.Decimal `json:"vatRate" binding:"vat_rate"`
}

// ParseEntryDate parses the wire date.
func (h EntryHeader) ParseEntryDate() (time.Time, error) {
	d, err := time.Parse(DateLayout, h.EntryDate)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError("entry date %q must use the format YYYY-MM-DD", h.EntryDate)
	}
	return d, nil
}

// ToCandidate converts the request header and lines into a validator input.
// Account IDs are resolved later by the service.
func ToCandidate(h EntryHeader, lines []MovementRequest) (accounting.EntryCandidate, error) {
	d, err := h.ParseEntryDate()
	if err != nil {
		return accounting.EntryCandidate{}, err
	}
	movements := make([]domain.Movement, len(lines))
	for i, l := range lines {
		movements[i] = domain.Movement{
			AccountNumber: l.AccountNumber,
			ThirdPartyID:  l.ThirdPartyID,
			Label:         l.Label,
			Debit:         l.Debit,
			Credit:        l.Credit,
		}
	}
	return accounting.EntryCandidate{
		Reference: h.Reference,
		Label:     h.Label,
		EntryDate: d,
		Movements: movements,
	}, nil
}

// MovementResponse defines the data returned for a movement.
type MovementResponse struct {
	MovementID         int64           `json:"movementID"`
	AccountID          int64           `json:"accountID"`
	AccountNumber      string          `json:"accountNumber"`
	ThirdPartyID       *int64          `json:"thirdPartyID,omitempty"`
	Label              string          `json:"label"`
	Debit              decimal.Decimal `json:"debit"`
	Credit             decimal.Decimal `json:"credit"`
	ReconciliationCode string          `json:"reconciliationCode,omitempty"`
}

// EntryResponse defines the data returned for an entry.
type EntryResponse struct {
	EntryID      int64              `json:"entryID"`
	Number       string             `json:"number"`
	CompanyID    int64              `json:"companyID"`
	FiscalYearID int64              `json:"fiscalYearID"`
	JournalID    int64              `json:"journalID"`
	EntryDate    string             `json:"entryDate"`
	Reference    string             `json:"reference"`
	Label        string             `json:"label"`
	Validated    bool               `json:"validated"`
	TotalDebit   decimal.Decimal    `json:"totalDebit"`
	TotalCredit  decimal.Decimal    `json:"totalCredit"`
	Movements    []MovementResponse `json:"movements"`
	Warnings     []string           `json:"warnings,omitempty"`
	CreatedAt    time.Time          `json:"createdAt"`
	CreatedBy    string             `json:"createdBy"`
}

// ToEntryResponse converts a domain.JournalEntry to EntryResponse DTO.
func ToEntryResponse(e *domain.JournalEntry) EntryResponse {
	debit, credit := e.Totals()
	movements := make([]MovementResponse, len(e.Movements))
	for i, m := range e.Movements {
		movements[i] = MovementResponse{
			MovementID:         m.MovementID,
			AccountID:          m.AccountID,
			AccountNumber:      m.AccountNumber,
			ThirdPartyID:       m.ThirdPartyID,
			Label:              m.Label,
			Debit:              m.Debit,
			Credit:             m.Credit,
			ReconciliationCode: m.ReconciliationCode,
		}
	}
	return EntryResponse{
		EntryID:      e.EntryID,
		Number:       e.Number,
		CompanyID:    e.CompanyID,
		FiscalYearID: e.FiscalYearID,
		JournalID:    e.JournalID,
		EntryDate:    e.EntryDate.Format(DateLayout),
		Reference:    e.Reference,
		Label:        e.Label,
		Validated:    e.Validated,
		TotalDebit:   debit,
		TotalCredit:  credit,
		Movements:    movements,
		Warnings:     e.Warnings,
		CreatedAt:    e.CreatedAt,
		CreatedBy:    e.CreatedBy,
	}
}

// EntryCreatedMessage is the success message of a booked entry.
func EntryCreatedMessage(e *domain.JournalEntry) string {
	return fmt.Sprintf("entry %s created", e.Number)
}
