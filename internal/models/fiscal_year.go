package models

import "time"

// FiscalYear represents a row of the fiscal_years table.
type FiscalYear struct {
	FiscalYearID int64     `db:"fiscal_year_id"`
	CompanyID    int64     `db:"company_id"`
	Year         int       `db:"year"`
	StartDate    time.Time `db:"start_date"`
	EndDate      time.Time `db:"end_date"`
	Closed       bool      `db:"closed"`
	AuditFields
}
