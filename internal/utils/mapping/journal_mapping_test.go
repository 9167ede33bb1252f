package mapping_test

import (
	"testing"
	"time"

	"github.com/SscSPs/compta_core/internal/core/domain"
	"github.com/SscSPs/compta_core/internal/models"
	"github.com/SscSPs/compta_core/internal/utils/mapping"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestToModelMovement_ReconciliationCode(t *testing.T) {
	open := mapping.ToModelMovement(domain.Movement{AccountID: 3, Debit: decimal.NewFromInt(10)}, 7, 1)
	assert.Nil(t, open.ReconciliationCode)
	assert.Equal(t, int64(7), open.EntryID)
	assert.Equal(t, 1, open.LineNo)

	coded := mapping.ToModelMovement(domain.Movement{AccountID: 3, ReconciliationCode: "AB"}, 7, 2)
	if assert.NotNil(t, coded.ReconciliationCode) {
		assert.Equal(t, "AB", *coded.ReconciliationCode)
	}
}

func TestToDomainEntry(t *testing.T) {
	code := "AC"
	created := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
	m := models.Entry{
		EntryID:     4,
		Number:      "VE-2024-00004",
		EntryDate:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Validated:   true,
		AuditFields: models.AuditFields{CreatedAt: created, CreatedBy: "u-1"},
	}
	movements := []models.Movement{
		{MovementID: 10, AccountNumber: "411000", Debit: decimal.NewFromInt(120), Credit: decimal.Zero, ReconciliationCode: &code},
		{MovementID: 11, AccountNumber: "707000", Debit: decimal.Zero, Credit: decimal.NewFromInt(120)},
	}

	d := mapping.ToDomainEntry(m, movements)

	assert.Equal(t, "VE-2024-00004", d.Number)
	assert.Len(t, d.Movements, 2)
	assert.Equal(t, "AC", d.Movements[0].ReconciliationCode)
	assert.Empty(t, d.Movements[1].ReconciliationCode)
	assert.Equal(t, created, d.LastUpdatedAt)
	assert.Equal(t, "u-1", d.LastUpdatedBy)
}

func TestToModelEntry_TruncatesDate(t *testing.T) {
	d := domain.JournalEntry{EntryDate: time.Date(2024, 3, 1, 18, 45, 0, 0, time.UTC)}
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), mapping.ToModelEntry(d).EntryDate)
}
