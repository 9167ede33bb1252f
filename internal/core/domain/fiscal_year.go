package domain

import "time"

// FiscalYear (exercice) bounds the dates of the entries booked in it.
type FiscalYear struct {
	FiscalYearID int64     `json:"fiscalYearID"`
	CompanyID    int64     `json:"companyID"`
	Year         int       `json:"year"`
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
	Closed       bool      `json:"closed"`
	AuditFields
}

// Contains reports whether d falls in [StartDate, EndDate], by calendar day.
func (fy FiscalYear) Contains(d time.Time) bool {
	day := DateOnly(d)
	return !day.Before(DateOnly(fy.StartDate)) && !day.After(DateOnly(fy.EndDate))
}
