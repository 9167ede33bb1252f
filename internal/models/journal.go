package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Journal represents a row of the journals table.
type Journal struct {
	JournalID   int64  `db:"journal_id"`
	CompanyID   int64  `db:"company_id"`
	Code        string `db:"code"`
	Label       string `db:"label"`
	JournalType string `db:"journal_type"`
}

// Entry represents a row of the entries table.
type Entry struct {
	EntryID      int64     `db:"entry_id"`
	CompanyID    int64     `db:"company_id"`
	FiscalYearID int64     `db:"fiscal_year_id"`
	JournalID    int64     `db:"journal_id"`
	Number       string    `db:"number"`
	EntryDate    time.Time `db:"entry_date"`
	Reference    string    `db:"reference"`
	Label        string    `db:"label"`
	Validated    bool      `db:"validated"`
	AuditFields
}

// Movement represents a row of the movements table joined with its account number.
type Movement struct {
	MovementID         int64           `db:"movement_id"`
	EntryID            int64           `db:"entry_id"`
	LineNo             int             `db:"line_no"`
	AccountID          int64           `db:"account_id"`
	AccountNumber      string          `db:"number"`
	ThirdPartyID       *int64          `db:"third_party_id"` // Nullable
	Label              string          `db:"label"`
	Debit              decimal.Decimal `db:"debit"`
	Credit             decimal.Decimal `db:"credit"`
	ReconciliationCode *string         `db:"reconciliation_code"` // Nullable
}

// EntrySummary is an entries row joined with its journal code and movement totals.
type EntrySummary struct {
	EntryID     int64           `db:"entry_id"`
	Number      string          `db:"number"`
	EntryDate   time.Time       `db:"entry_date"`
	JournalID   int64           `db:"journal_id"`
	JournalCode string          `db:"journal_code"`
	Reference   string          `db:"reference"`
	Label       string          `db:"label"`
	TotalDebit  decimal.Decimal `db:"total_debit"`
	TotalCredit decimal.Decimal `db:"total_credit"`
	LineCount   int             `db:"line_count"`
}
