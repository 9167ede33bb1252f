package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerLine is a persisted movement joined with its entry header, as read
// for reconciliation and the general ledger (grand livre).
type LedgerLine struct {
	MovementID         int64           `json:"movementID"`
	EntryID            int64           `json:"entryID"`
	EntryNumber        string          `json:"entryNumber"`
	EntryDate          time.Time       `json:"entryDate"`
	JournalCode        string          `json:"journalCode"`
	Reference          string          `json:"reference"`
	Label              string          `json:"label"`
	AccountID          int64           `json:"accountID"`
	AccountNumber      string          `json:"accountNumber"`
	ThirdPartyID       *int64          `json:"thirdPartyID,omitempty"`
	ThirdPartyName     string          `json:"thirdPartyName,omitempty"`
	Debit              decimal.Decimal `json:"debit"`
	Credit             decimal.Decimal `json:"credit"`
	Solde              decimal.Decimal `json:"solde"` // debit - credit
	RunningSolde       decimal.Decimal `json:"runningSolde"`
	ReconciliationCode string          `json:"reconciliationCode,omitempty"`
}

// GeneralLedger lists every movement of one account over a fiscal year.
type GeneralLedger struct {
	AccountNumber string          `json:"accountNumber"`
	AccountLabel  string          `json:"accountLabel"`
	Lines         []LedgerLine    `json:"lines"`
	TotalDebit    decimal.Decimal `json:"totalDebit"`
	TotalCredit   decimal.Decimal `json:"totalCredit"`
	Solde         decimal.Decimal `json:"solde"`
}
