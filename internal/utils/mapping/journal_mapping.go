package mapping

import (
	"github.com/SscSPs/compta_core/internal/core/domain"
	"github.com/SscSPs/compta_core/internal/models"
)

// ToDomainFiscalYear converts a model FiscalYear to a domain FiscalYear
func ToDomainFiscalYear(m models.FiscalYear) domain.FiscalYear {
	return domain.FiscalYear{
		FiscalYearID: m.FiscalYearID,
		CompanyID:    m.CompanyID,
		Year:         m.Year,
		StartDate:    m.StartDate,
		EndDate:      m.EndDate,
		Closed:       m.Closed,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainJournal converts a model Journal to a domain Journal
func ToDomainJournal(m models.Journal) domain.Journal {
	return domain.Journal{
		JournalID: m.JournalID,
		CompanyID: m.CompanyID,
		Code:      m.Code,
		Label:     m.Label,
		Type:      domain.JournalType(m.JournalType),
	}
}

// ToModelEntry converts a domain JournalEntry header to a model Entry
func ToModelEntry(d domain.JournalEntry) models.Entry {
	return models.Entry{
		EntryID:      d.EntryID,
		CompanyID:    d.CompanyID,
		FiscalYearID: d.FiscalYearID,
		JournalID:    d.JournalID,
		Number:       d.Number,
		EntryDate:    domain.DateOnly(d.EntryDate),
		Reference:    d.Reference,
		Label:        d.Label,
		Validated:    d.Validated,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainEntry converts a model Entry and its movements to a domain JournalEntry
func ToDomainEntry(m models.Entry, movements []models.Movement) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:      m.EntryID,
		CompanyID:    m.CompanyID,
		FiscalYearID: m.FiscalYearID,
		JournalID:    m.JournalID,
		Number:       m.Number,
		EntryDate:    m.EntryDate,
		Reference:    m.Reference,
		Label:        m.Label,
		Validated:    m.Validated,
		Movements:    ToDomainMovementSlice(movements),
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelMovement converts a domain Movement to a model Movement at a line position
func ToModelMovement(d domain.Movement, entryID int64, lineNo int) models.Movement {
	m := models.Movement{
		MovementID:    d.MovementID,
		EntryID:       entryID,
		LineNo:        lineNo,
		AccountID:     d.AccountID,
		AccountNumber: d.AccountNumber,
		ThirdPartyID:  d.ThirdPartyID,
		Label:         d.Label,
		Debit:         d.Debit,
		Credit:        d.Credit,
	}
	if d.ReconciliationCode != "" {
		code := d.ReconciliationCode
		m.ReconciliationCode = &code
	}
	return m
}

// ToDomainMovement converts a model Movement to a domain Movement
func ToDomainMovement(m models.Movement) domain.Movement {
	d := domain.Movement{
		MovementID:    m.MovementID,
		EntryID:       m.EntryID,
		AccountID:     m.AccountID,
		AccountNumber: m.AccountNumber,
		ThirdPartyID:  m.ThirdPartyID,
		Label:         m.Label,
		Debit:         m.Debit,
		Credit:        m.Credit,
	}
	if m.ReconciliationCode != nil {
		d.ReconciliationCode = *m.ReconciliationCode
	}
	return d
}

// ToDomainMovementSlice converts a slice of model Movements to a slice of domain Movements
func ToDomainMovementSlice(ms []models.Movement) []domain.Movement {
	ds := make([]domain.Movement, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainMovement(m)
	}
	return ds
}

// ToDomainEntrySummary converts a model EntrySummary to a domain EntrySummary
func ToDomainEntrySummary(m models.EntrySummary) domain.EntrySummary {
	return domain.EntrySummary{
		EntryID:     m.EntryID,
		Number:      m.Number,
		EntryDate:   m.EntryDate,
		JournalID:   m.JournalID,
		JournalCode: m.JournalCode,
		Reference:   m.Reference,
		Label:       m.Label,
		TotalDebit:  m.TotalDebit,
		TotalCredit: m.TotalCredit,
		LineCount:   m.LineCount,
	}
}
