package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FECRecord is one line of the Fichier des Écritures Comptables.
type FECRecord struct {
	JournalCode   string          `json:"journalCode"`
	JournalLib    string          `json:"journalLib"`
	EcritureNum   string          `json:"ecritureNum"`
	EcritureDate  time.Time       `json:"ecritureDate"`
	CompteNum     string          `json:"compteNum"`
	CompteLib     string          `json:"compteLib"`
	CompAuxNum    string          `json:"compAuxNum"`
	CompAuxLib    string          `json:"compAuxLib"`
	PieceRef      string          `json:"pieceRef"`
	PieceDate     time.Time       `json:"pieceDate"`
	EcritureLib   string          `json:"ecritureLib"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	EcritureLet   string          `json:"ecritureLet"`
	DateLet       *time.Time      `json:"dateLet,omitempty"`
	ValidDate     *time.Time      `json:"validDate,omitempty"`
	MontantDevise decimal.Decimal `json:"montantDevise"`
	Idevise       string          `json:"idevise"`
}

// ConsistencyCheck is one named result of the consistency test procedure.
type ConsistencyCheck struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// ClosingResult reports a fiscal year close.
type ClosingResult struct {
	FiscalYearID int64  `json:"fiscalYearID"`
	Closed       bool   `json:"closed"`
	Message      string `json:"message"`
}
