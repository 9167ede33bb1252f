package domain

import "github.com/shopspring/decimal"

// ReconciliationScope selects the movements considered by automatic
// reconciliation.
type ReconciliationScope struct {
	CompanyID     int64  `json:"companyID"`
	FiscalYearID  int64  `json:"fiscalYearID"`
	AccountNumber string `json:"accountNumber"`
	ThirdPartyID  *int64 `json:"thirdPartyID,omitempty"`
}

// MovementAggregate sums an arbitrary set of movements.
type MovementAggregate struct {
	Count       int             `json:"count"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	Solde       decimal.Decimal `json:"solde"`
	AccountIDs  []int64         `json:"accountIDs"` // distinct accounts touched
}

// ReconciliationResult is returned by a manual reconciliation.
type ReconciliationResult struct {
	Code        string          `json:"code"`
	MovementIDs []int64         `json:"movementIDs"`
	Solde       decimal.Decimal `json:"solde"`
	Message     string          `json:"message"`
}

// AutoReconciliationResult is returned by an automatic reconciliation run.
type AutoReconciliationResult struct {
	Pairs   int      `json:"pairs"`
	Codes   []string `json:"codes"`
	Message string   `json:"message"`
}

// UnreconciliationResult reports how many movements lost a code.
type UnreconciliationResult struct {
	Code    string `json:"code"`
	Cleared int64  `json:"cleared"`
	Message string `json:"message"`
}

// ReconciliationGroup is the set of movements sharing a code on one account.
type ReconciliationGroup struct {
	Code        string          `json:"code"`
	Movements   []LedgerLine    `json:"movements"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
}
