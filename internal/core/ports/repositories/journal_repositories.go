package repositories

import (
	"context"

	"github.com/SscSPs/compta_core/internal/core/domain"
)

// JournalReader defines read operations for journals (books)
type JournalReader interface {
	// FindJournalByID retrieves a journal by its identifier.
	FindJournalByID(ctx context.Context, journalID int64) (*domain.Journal, error)

	// FindJournalByCode retrieves a company journal by its short code.
	FindJournalByCode(ctx context.Context, companyID int64, code string) (*domain.Journal, error)

	// ListJournals retrieves the journals of a company ordered by code.
	ListJournals(ctx context.Context, companyID int64) ([]domain.Journal, error)
}

// EntryReader defines read operations for journal entries
type EntryReader interface {
	// FindEntryByID retrieves an entry with its movements.
	FindEntryByID(ctx context.Context, entryID int64) (*domain.JournalEntry, error)

	// ListEntries lists the entry headers of a fiscal year with their totals,
	// in date then number order.
	ListEntries(ctx context.Context, companyID, fiscalYearID int64, filter domain.EntryFilter) ([]domain.EntrySummary, error)
}

// EntryWriter defines write operations for journal entries
type EntryWriter interface {
	// SaveEntry numbers and persists an entry with its movements in one transaction.
	// The number is {journal code}-{year}-{sequence} with the sequence allocated
	// per (fiscal year, journal) under a row lock. It returns the stored entry.
	SaveEntry(ctx context.Context, entry domain.JournalEntry, journalCode string, year int) (*domain.JournalEntry, error)
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	EntryReader
	EntryWriter
}
