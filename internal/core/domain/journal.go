package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalType classifies the books entries are recorded in.
type JournalType string

const (
	JournalSales     JournalType = "VENTE"
	JournalPurchases JournalType = "ACHAT"
	JournalBank      JournalType = "BANQUE"
	JournalCash      JournalType = "CAISSE"
	JournalMisc      JournalType = "OD"
)

// Journal is a book of entries, identified by a short code (VE, AC, BQ...).
type Journal struct {
	JournalID int64       `json:"journalID"`
	CompanyID int64       `json:"companyID"`
	Code      string      `json:"code"`
	Label     string      `json:"label"`
	Type      JournalType `json:"type"`
}

// JournalEntry (écriture) is a header plus its ordered movements.
// Entries are validated before persistence and never edited afterwards.
type JournalEntry struct {
	EntryID      int64      `json:"entryID"`
	CompanyID    int64      `json:"companyID"`
	FiscalYearID int64      `json:"fiscalYearID"`
	JournalID    int64      `json:"journalID"`
	Number       string     `json:"number"` // {journal code}-{year}-{sequence}
	EntryDate    time.Time  `json:"entryDate"`
	Reference    string     `json:"reference"`
	Label        string     `json:"label"`
	Validated    bool       `json:"validated"`
	Movements    []Movement `json:"movements"`
	Warnings     []string   `json:"warnings,omitempty"`
	AuditFields
}

// Totals returns the sums of debits and credits over the movements.
func (e JournalEntry) Totals() (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, m := range e.Movements {
		debit = debit.Add(m.Debit)
		credit = credit.Add(m.Credit)
	}
	return debit, credit
}

// Movement (mouvement) is one debit or credit line of an entry. The
// reconciliation code is the only field changed after creation.
type Movement struct {
	MovementID         int64           `json:"movementID"`
	EntryID            int64           `json:"entryID"`
	AccountID          int64           `json:"accountID"`
	AccountNumber      string          `json:"accountNumber"`
	ThirdPartyID       *int64          `json:"thirdPartyID,omitempty"`
	Label              string          `json:"label"`
	Debit              decimal.Decimal `json:"debit"`
	Credit             decimal.Decimal `json:"credit"`
	ReconciliationCode string          `json:"reconciliationCode,omitempty"` // empty until reconciled
}

// Solde returns debit minus credit.
func (m Movement) Solde() decimal.Decimal {
	return m.Debit.Sub(m.Credit)
}

// ValidationRule names the entry check that failed.
type ValidationRule string

const (
	RuleNone       ValidationRule = ""
	RuleReference  ValidationRule = "reference"
	RuleLabel      ValidationRule = "label"
	RuleDate       ValidationRule = "date"
	RuleLineCount  ValidationRule = "line_count"
	RuleLineAmount ValidationRule = "line_amount"
	RuleLineBoth   ValidationRule = "line_both_sides"
	RuleLineEmpty  ValidationRule = "line_empty"
	RuleBalance    ValidationRule = "balance"
)

// ValidationResult is the advisory outcome of validating a proposed entry.
// Line is the 1-based index of the offending movement, 0 when not line specific.
type ValidationResult struct {
	Valid   bool           `json:"valid"`
	Message string         `json:"message"`
	Rule    ValidationRule `json:"rule,omitempty"`
	Line    int            `json:"line,omitempty"`
}

// EntryFilter restricts an entry listing. A nil JournalID lists every journal.
type EntryFilter struct {
	JournalID *int64 `json:"journalID,omitempty"`
}

// EntrySummary is an entry header with its totals, as listed per fiscal year.
type EntrySummary struct {
	EntryID     int64           `json:"entryID"`
	Number      string          `json:"number"`
	EntryDate   time.Time       `json:"entryDate"`
	JournalID   int64           `json:"journalID"`
	JournalCode string          `json:"journalCode"`
	Reference   string          `json:"reference"`
	Label       string          `json:"label"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	LineCount   int             `json:"lineCount"`
}
