package services

import (
	"context"

	"github.com/SscSPs/compta_core/internal/core/domain"
	"github.com/SscSPs/compta_core/internal/dto"
	"github.com/SscSPs/compta_core/internal/utils/accounting"
)

// EntryReaderSvc defines read operations for journal entries
type EntryReaderSvc interface {
	// GetEntry retrieves an entry with its movements.
	GetEntry(ctx context.Context, entryID int64) (*domain.JournalEntry, error)

	// GeneralLedger lists the movements of an account over a fiscal year with a running solde.
	GeneralLedger(ctx context.Context, companyID, fiscalYearID int64, accountNumber string) (*domain.GeneralLedger, error)

	// ListEntries lists the entries of a fiscal year with their totals.
	ListEntries(ctx context.Context, companyID, fiscalYearID int64, filter domain.EntryFilter) ([]domain.EntrySummary, error)
}

// EntryWriterSvc defines write operations for journal entries
type EntryWriterSvc interface {
	// ValidateEntry checks a candidate against the fiscal year without persisting it.
	ValidateEntry(ctx context.Context, fiscalYearID int64, candidate accounting.EntryCandidate) (domain.ValidationResult, error)

	// CreateEntry validates, numbers and persists an entry.
	CreateEntry(ctx context.Context, req dto.CreateEntryRequest, actor domain.Actor) (*domain.JournalEntry, error)

	// CreateSalesEntry books a customer invoice: customer, revenue and collected VAT lines.
	CreateSalesEntry(ctx context.Context, req dto.InvoiceEntryRequest, actor domain.Actor) (*domain.JournalEntry, error)

	// CreatePurchaseEntry books a supplier invoice: purchase, deductible VAT and supplier lines.
	CreatePurchaseEntry(ctx context.Context, req dto.InvoiceEntryRequest, actor domain.Actor) (*domain.JournalEntry, error)
}

// EntrySvcFacade combines all journal entry service interfaces
type EntrySvcFacade interface {
	EntryReaderSvc
	EntryWriterSvc
}
