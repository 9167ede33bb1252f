package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/compta_core/internal/apperrors"
	"github.com/SscSPs/compta_core/internal/core/domain"
	portsrepo "github.com/SscSPs/compta_core/internal/core/ports/repositories"
	"github.com/SscSPs/compta_core/internal/models"
	"github.com/SscSPs/compta_core/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const journalColumns = `journal_id, company_id, code, label, journal_type`

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journals and entries.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryFacade
var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

func scanJournal(row pgx.Row) (models.Journal, error) {
	var m models.Journal
	err := row.Scan(&m.JournalID, &m.CompanyID, &m.Code, &m.Label, &m.JournalType)
	return m, err
}

// FindJournalByID retrieves a journal by its ID.
func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, journalID int64) (*domain.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE journal_id = $1;`
	m, err := scanJournal(r.Pool.QueryRow(ctx, query, journalID))
	if err != nil {
		return nil, queryError(err, "failed to find journal %d", journalID)
	}
	journal := mapping.ToDomainJournal(m)
	return &journal, nil
}

// FindJournalByCode retrieves a journal of a company by its code.
func (r *PgxJournalRepository) FindJournalByCode(ctx context.Context, companyID int64, code string) (*domain.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE company_id = $1 AND code = $2;`
	m, err := scanJournal(r.Pool.QueryRow(ctx, query, companyID, code))
	if err != nil {
		return nil, queryError(err, "failed to find journal %s", code)
	}
	journal := mapping.ToDomainJournal(m)
	return &journal, nil
}

// ListJournals retrieves the journals of a company ordered by code.
func (r *PgxJournalRepository) ListJournals(ctx context.Context, companyID int64) ([]domain.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE company_id = $1 ORDER BY code;`
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to list journals", err)
	}
	defer rows.Close()

	journals := make([]domain.Journal, 0)
	for rows.Next() {
		m, err := scanJournal(rows)
		if err != nil {
			return nil, apperrors.NewPersistenceError("failed to scan journal row", err)
		}
		journals = append(journals, mapping.ToDomainJournal(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewPersistenceError("error iterating journal rows", err)
	}
	return journals, nil
}

// SaveEntry numbers the entry and inserts it with its movements in one
// transaction. The sequence row of (fiscal year, journal) stays locked
// until commit, so concurrent entries of a journal get distinct numbers.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, journalCode string, year int) (*domain.JournalEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	// Defer rollback in case of error
	defer r.Rollback(ctx, tx) //nolint:errcheck

	var sequence int
	seqQuery := `
		INSERT INTO entry_sequences (fiscal_year_id, journal_id, last_value)
		VALUES ($1, $2, 1)
		ON CONFLICT (fiscal_year_id, journal_id)
		DO UPDATE SET last_value = entry_sequences.last_value + 1
		RETURNING last_value;
	`
	if err := tx.QueryRow(ctx, seqQuery, entry.FiscalYearID, entry.JournalID).Scan(&sequence); err != nil {
		return nil, apperrors.NewPersistenceError("failed to allocate entry number", err)
	}
	entry.Number = fmt.Sprintf("%s-%d-%05d", journalCode, year, sequence)

	m := mapping.ToModelEntry(entry)
	entryQuery := `
		INSERT INTO entries (company_id, fiscal_year_id, journal_id, number, entry_date, reference, label, validated, validated_at, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING entry_id;
	`
	var validatedAt *time.Time // FEC ValidDate
	if m.Validated {
		validatedAt = &m.EntryDate
	}
	err = tx.QueryRow(ctx, entryQuery,
		m.CompanyID,
		m.FiscalYearID,
		m.JournalID,
		m.Number,
		m.EntryDate,
		m.Reference,
		m.Label,
		m.Validated,
		validatedAt,
		m.CreatedAt,
		m.CreatedBy,
	).Scan(&entry.EntryID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.NewConflictError("entry number %s is already taken", m.Number)
		}
		return nil, apperrors.NewPersistenceError("failed to insert entry "+m.Number, err)
	}

	batch := &pgx.Batch{}
	movementQuery := `
		INSERT INTO movements (entry_id, line_no, account_id, third_party_id, label, debit, credit)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING movement_id;
	`
	for i, mv := range entry.Movements {
		mm := mapping.ToModelMovement(mv, entry.EntryID, i+1)
		batch.Queue(movementQuery, mm.EntryID, mm.LineNo, mm.AccountID, mm.ThirdPartyID, mm.Label, mm.Debit, mm.Credit)
	}
	br := tx.SendBatch(ctx, batch)
	for i := range entry.Movements {
		if err := br.QueryRow().Scan(&entry.Movements[i].MovementID); err != nil {
			br.Close()
			return nil, apperrors.NewPersistenceError(fmt.Sprintf("failed to insert line %d of entry %s", i+1, m.Number), err)
		}
		entry.Movements[i].EntryID = entry.EntryID
	}
	// Important: Close the batch results before using the transaction again
	if err := br.Close(); err != nil {
		return nil, apperrors.NewPersistenceError("failed to execute movement batch for entry "+m.Number, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &entry, nil
}

// FindEntryByID retrieves an entry with its movements in line order.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID int64) (*domain.JournalEntry, error) {
	query := `
		SELECT entry_id, company_id, fiscal_year_id, journal_id, number, entry_date, reference, label, validated, created_at, created_by
		FROM entries
		WHERE entry_id = $1;
	`
	var m models.Entry
	err := r.Pool.QueryRow(ctx, query, entryID).Scan(
		&m.EntryID,
		&m.CompanyID,
		&m.FiscalYearID,
		&m.JournalID,
		&m.Number,
		&m.EntryDate,
		&m.Reference,
		&m.Label,
		&m.Validated,
		&m.CreatedAt,
		&m.CreatedBy,
	)
	if err != nil {
		return nil, queryError(err, "failed to find entry %d", entryID)
	}

	movementsQuery := `
		SELECT m.movement_id, m.entry_id, m.line_no, m.account_id, a.number, m.third_party_id, m.label, m.debit, m.credit, m.reconciliation_code
		FROM movements m
		JOIN accounts a ON a.account_id = m.account_id
		WHERE m.entry_id = $1
		ORDER BY m.line_no;
	`
	rows, err := r.Pool.Query(ctx, movementsQuery, entryID)
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to query movements of entry "+m.Number, err)
	}
	defer rows.Close()

	movements := make([]models.Movement, 0, 2)
	for rows.Next() {
		var mv models.Movement
		if err := rows.Scan(
			&mv.MovementID,
			&mv.EntryID,
			&mv.LineNo,
			&mv.AccountID,
			&mv.AccountNumber,
			&mv.ThirdPartyID,
			&mv.Label,
			&mv.Debit,
			&mv.Credit,
			&mv.ReconciliationCode,
		); err != nil {
			return nil, apperrors.NewPersistenceError("failed to scan movement row", err)
		}
		movements = append(movements, mv)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewPersistenceError("error iterating movement rows", err)
	}

	entry := mapping.ToDomainEntry(m, movements)
	return &entry, nil
}

// ListEntries lists the entry headers of a fiscal year with their totals.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, companyID, fiscalYearID int64, filter domain.EntryFilter) ([]domain.EntrySummary, error) {
	query := `
		SELECT e.entry_id, e.number, e.entry_date, e.journal_id, j.code, e.reference, e.label,
		       COALESCE(SUM(m.debit), 0), COALESCE(SUM(m.credit), 0), COUNT(m.movement_id)
		FROM entries e
		JOIN journals j ON j.journal_id = e.journal_id
		LEFT JOIN movements m ON m.entry_id = e.entry_id
		WHERE e.company_id = $1
		  AND e.fiscal_year_id = $2
		  AND ($3::BIGINT IS NULL OR e.journal_id = $3::BIGINT)
		GROUP BY e.entry_id, j.code
		ORDER BY e.entry_date, e.number;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, fiscalYearID, filter.JournalID)
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to list entries", err)
	}
	defer rows.Close()

	entries := make([]domain.EntrySummary, 0)
	for rows.Next() {
		var m models.EntrySummary
		if err := rows.Scan(
			&m.EntryID,
			&m.Number,
			&m.EntryDate,
			&m.JournalID,
			&m.JournalCode,
			&m.Reference,
			&m.Label,
			&m.TotalDebit,
			&m.TotalCredit,
			&m.LineCount,
		); err != nil {
			return nil, apperrors.NewPersistenceError("failed to scan entry row", err)
		}
		entries = append(entries, mapping.ToDomainEntrySummary(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewPersistenceError("error iterating entry rows", err)
	}
	return entries, nil
}
