package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountTotals is the raw debit/credit aggregate of one account over a
// fiscal year, as read by the statement computations.
type AccountTotals struct {
	AccountID     int64           `json:"accountID"`
	AccountNumber string          `json:"accountNumber"`
	AccountLabel  string          `json:"accountLabel"`
	Nature        Nature          `json:"nature"`
	TotalDebit    decimal.Decimal `json:"totalDebit"`
	TotalCredit   decimal.Decimal `json:"totalCredit"`
}

// Solde returns debit minus credit.
func (t AccountTotals) Solde() decimal.Decimal {
	return t.TotalDebit.Sub(t.TotalCredit)
}

// Class returns the PCG class digit.
func (t AccountTotals) Class() string {
	if t.AccountNumber == "" {
		return ""
	}
	return t.AccountNumber[:1]
}

// AccountFilter restricts AccountTotals queries. Empty fields mean no filter.
type AccountFilter struct {
	Classes []string `json:"classes,omitempty"`
	Prefix  string   `json:"prefix,omitempty"`
}

// BalanceLine is one row of the stored trial balance for (company, fiscal year).
type BalanceLine struct {
	CompanyID     int64           `json:"companyID"`
	FiscalYearID  int64           `json:"fiscalYearID"`
	AccountID     int64           `json:"accountID"`
	AccountNumber string          `json:"accountNumber"`
	AccountLabel  string          `json:"accountLabel"`
	TotalDebit    decimal.Decimal `json:"totalDebit"`
	TotalCredit   decimal.Decimal `json:"totalCredit"`
	Solde         decimal.Decimal `json:"solde"`
	ComputedAt    time.Time       `json:"computedAt"`
}

// TrialBalance is the full balance of a fiscal year.
type TrialBalance struct {
	CompanyID    int64           `json:"companyID"`
	FiscalYearID int64           `json:"fiscalYearID"`
	Lines        []BalanceLine   `json:"lines"`
	TotalDebit   decimal.Decimal `json:"totalDebit"`
	TotalCredit  decimal.Decimal `json:"totalCredit"`
	ComputedAt   time.Time       `json:"computedAt"`
}

// StatementLine is one account's contribution to the income statement.
type StatementLine struct {
	AccountNumber string          `json:"accountNumber"`
	AccountLabel  string          `json:"accountLabel"`
	Amount        decimal.Decimal `json:"amount"`
}

// IncomeStatement (compte de résultat). Result is positive for a profit.
type IncomeStatement struct {
	Charges       []StatementLine `json:"charges"`
	Produits      []StatementLine `json:"produits"`
	TotalCharges  decimal.Decimal `json:"totalCharges"`
	TotalProduits decimal.Decimal `json:"totalProduits"`
	Result        decimal.Decimal `json:"result"`
}

// BalanceSheetLine is one account of the bilan. Amount is |Solde|.
type BalanceSheetLine struct {
	AccountNumber string          `json:"accountNumber"`
	AccountLabel  string          `json:"accountLabel"`
	Class         string          `json:"class"`
	Nature        Nature          `json:"nature"`
	Solde         decimal.Decimal `json:"solde"`
	Amount        decimal.Decimal `json:"amount"`
	Unusual       bool            `json:"unusual"` // solde sign opposite to the nature
}

// BalanceSheet (bilan), computed before closing entries.
type BalanceSheet struct {
	Assets           []BalanceSheetLine `json:"assets"`
	Liabilities      []BalanceSheetLine `json:"liabilities"`
	TotalAssets      decimal.Decimal    `json:"totalAssets"`
	TotalLiabilities decimal.Decimal    `json:"totalLiabilities"`
	Difference       decimal.Decimal    `json:"difference"`
	Balanced         bool               `json:"balanced"`
	Warning          string             `json:"warning,omitempty"`
}

// VATKind tells collected from deductible VAT accounts.
type VATKind string

const (
	VATCollected  VATKind = "collectee"
	VATDeductible VATKind = "deductible"
	VATOther      VATKind = "autre"
)

// VATLine is one 445 account in the VAT recap.
type VATLine struct {
	AccountNumber string          `json:"accountNumber"`
	AccountLabel  string          `json:"accountLabel"`
	Kind          VATKind         `json:"kind"`
	TotalDebit    decimal.Decimal `json:"totalDebit"`
	TotalCredit   decimal.Decimal `json:"totalCredit"`
	Solde         decimal.Decimal `json:"solde"`
}

// VATRecap sums collected and deductible VAT. Payable is negative for a credit.
type VATRecap struct {
	Lines      []VATLine       `json:"lines"`
	Collected  decimal.Decimal `json:"collected"`
	Deductible decimal.Decimal `json:"deductible"`
	Payable    decimal.Decimal `json:"payable"`
}
