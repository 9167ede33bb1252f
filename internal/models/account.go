package models

// Nature is the stored PCG nature of an account.
type Nature string

// Account represents a row of the accounts table.
type Account struct {
	AccountID    int64  `db:"account_id"`
	CompanyID    int64  `db:"company_id"`
	Number       string `db:"number"`
	Label        string `db:"label"`
	Nature       Nature `db:"nature"`
	Reconcilable bool   `db:"reconcilable"`
	AuditFields
}
