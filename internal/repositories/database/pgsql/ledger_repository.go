package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/compta_core/internal/apperrors"
	"github.com/SscSPs/compta_core/internal/core/domain"
	portsrepo "github.com/SscSPs/compta_core/internal/core/ports/repositories"
	"github.com/SscSPs/compta_core/internal/utils/accounting"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ledgerLineSelect reads movements joined with their entry header, for one
// account of a company and fiscal year ($1, $2, $3).
const ledgerLineSelect = `
	SELECT m.movement_id, m.entry_id, e.number, e.entry_date, j.code, e.reference,
	       COALESCE(NULLIF(m.label, ''), e.label), m.account_id, a.number,
	       m.third_party_id, COALESCE(t.name, ''), m.debit, m.credit,
	       COALESCE(m.reconciliation_code, '')
	FROM movements m
	JOIN entries e ON e.entry_id = m.entry_id
	JOIN journals j ON j.journal_id = e.journal_id
	JOIN accounts a ON a.account_id = m.account_id
	LEFT JOIN third_parties t ON t.third_party_id = m.third_party_id
	WHERE e.company_id = $1 AND e.fiscal_year_id = $2 AND a.number = $3`

type PgxLedgerRepository struct {
	BaseRepository
}

func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

// FindUnreconciledMovements returns the open movements of validated entries in scope.
func (r *PgxLedgerRepository) FindUnreconciledMovements(ctx context.Context, scope domain.ReconciliationScope) ([]domain.LedgerLine, error) {
	query := ledgerLineSelect + `
	  AND e.validated
	  AND m.reconciliation_code IS NULL
	  AND ($4::BIGINT IS NULL OR m.third_party_id = $4)
	ORDER BY e.entry_date, e.number, m.line_no;`
	return r.queryLines(ctx, query, scope.CompanyID, scope.FiscalYearID, scope.AccountNumber, scope.ThirdPartyID)
}

// FindReconciledMovements returns the coded movements of an account, grouped by code.
func (r *PgxLedgerRepository) FindReconciledMovements(ctx context.Context, companyID, fiscalYearID int64, accountNumber string) ([]domain.LedgerLine, error) {
	query := ledgerLineSelect + `
	  AND m.reconciliation_code IS NOT NULL
	ORDER BY m.reconciliation_code, e.entry_date, e.number, m.line_no;`
	return r.queryLines(ctx, query, companyID, fiscalYearID, accountNumber)
}

// FindAccountMovements returns every movement of an account in entry order.
func (r *PgxLedgerRepository) FindAccountMovements(ctx context.Context, companyID, fiscalYearID int64, accountNumber string) ([]domain.LedgerLine, error) {
	query := ledgerLineSelect + `
	ORDER BY e.entry_date, e.number, m.line_no;`
	return r.queryLines(ctx, query, companyID, fiscalYearID, accountNumber)
}

func (r *PgxLedgerRepository) queryLines(ctx context.Context, query string, args ...any) ([]domain.LedgerLine, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to query movements", err)
	}
	defer rows.Close()

	lines := make([]domain.LedgerLine, 0)
	for rows.Next() {
		var l domain.LedgerLine
		if err := rows.Scan(
			&l.MovementID,
			&l.EntryID,
			&l.EntryNumber,
			&l.EntryDate,
			&l.JournalCode,
			&l.Reference,
			&l.Label,
			&l.AccountID,
			&l.AccountNumber,
			&l.ThirdPartyID,
			&l.ThirdPartyName,
			&l.Debit,
			&l.Credit,
			&l.ReconciliationCode,
		); err != nil {
			return nil, apperrors.NewPersistenceError("failed to scan movement row", err)
		}
		l.Solde = l.Debit.Sub(l.Credit)
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewPersistenceError("error iterating movement rows", err)
	}
	return lines, nil
}

// AggregateMovements sums a set of movements and lists the accounts they touch.
func (r *PgxLedgerRepository) AggregateMovements(ctx context.Context, movementIDs []int64) (*domain.MovementAggregate, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(debit), 0), COALESCE(SUM(credit), 0),
		       COALESCE(array_agg(DISTINCT account_id ORDER BY account_id) FILTER (WHERE account_id IS NOT NULL), '{}')
		FROM movements
		WHERE movement_id = ANY($1);
	`
	var agg domain.MovementAggregate
	err := r.Pool.QueryRow(ctx, query, movementIDs).Scan(&agg.Count, &agg.TotalDebit, &agg.TotalCredit, &agg.AccountIDs)
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to aggregate movements", err)
	}
	agg.Solde = agg.TotalDebit.Sub(agg.TotalCredit)
	return &agg, nil
}

// ApplyReconciliationCode codes every movement or none with an explicit code.
// A code carried by another group is ErrCodeInUse, a movement already coded
// is a conflict. The allocation mark moves past the code.
func (r *PgxLedgerRepository) ApplyReconciliationCode(ctx context.Context, movementIDs []int64, code string) (int64, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck

	if err := advisoryLock(ctx, tx, reconciliationCodeLockKey); err != nil {
		return 0, err
	}
	inUse, err := codeInUse(ctx, tx, code)
	if err != nil {
		return 0, err
	}
	if inUse {
		return 0, apperrors.NewCodeInUseError(code)
	}

	highWater, err := lockHighWater(ctx, tx)
	if err != nil {
		return 0, err
	}
	affected, err := codeMovements(ctx, tx, movementIDs, code)
	if err != nil {
		return 0, err
	}
	if err := saveHighWater(ctx, tx, accounting.LaterReconciliationCode(highWater, code)); err != nil {
		return 0, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return affected, nil
}

// AllocateReconciliationCode takes the next free code after the high-water
// mark and codes the movements with it. Every code write holds the same
// advisory lock, so the mark and the codes in use cannot move underneath.
func (r *PgxLedgerRepository) AllocateReconciliationCode(ctx context.Context, movementIDs []int64) (string, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck

	if err := advisoryLock(ctx, tx, reconciliationCodeLockKey); err != nil {
		return "", err
	}
	highWater, err := lockHighWater(ctx, tx)
	if err != nil {
		return "", err
	}

	rows, err := tx.Query(ctx, `
		SELECT DISTINCT reconciliation_code
		FROM movements
		WHERE reconciliation_code COLLATE "C" > $1;`, highWater)
	if err != nil {
		return "", apperrors.NewPersistenceError("failed to list reconciliation codes", err)
	}
	ahead, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return "", apperrors.NewPersistenceError("failed to scan reconciliation codes", err)
	}
	taken := make(map[string]bool, len(ahead))
	for _, c := range ahead {
		taken[c] = true
	}

	code, err := accounting.AllocateReconciliationCode(highWater, func(c string) bool { return taken[c] })
	if err != nil {
		return "", err
	}
	if _, err := codeMovements(ctx, tx, movementIDs, code); err != nil {
		return "", err
	}
	if err := saveHighWater(ctx, tx, code); err != nil {
		return "", err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return "", err
	}
	return code, nil
}

func codeInUse(ctx context.Context, tx pgx.Tx, code string) (bool, error) {
	var inUse bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM movements WHERE reconciliation_code = $1);`, code).Scan(&inUse); err != nil {
		return false, apperrors.NewPersistenceError("failed to check reconciliation code "+code, err)
	}
	return inUse, nil
}

// lockHighWater reads the last allocated code, "" before the first allocation.
func lockHighWater(ctx context.Context, tx pgx.Tx) (string, error) {
	var last string
	err := tx.QueryRow(ctx, `SELECT last_code FROM reconciliation_code_seq WHERE singleton FOR UPDATE;`).Scan(&last)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", apperrors.NewPersistenceError("failed to read the reconciliation code mark", err)
	}
	return last, nil
}

func saveHighWater(ctx context.Context, tx pgx.Tx, code string) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO reconciliation_code_seq (singleton, last_code)
		VALUES (TRUE, $1)
		ON CONFLICT (singleton) DO UPDATE SET last_code = EXCLUDED.last_code;`, code)
	if err != nil {
		return apperrors.NewPersistenceError("failed to save the reconciliation code mark", err)
	}
	return nil
}

// codeMovements locks the movements and sets code on all of them. A movement
// already coded is a conflict, a missing one is not found.
func codeMovements(ctx context.Context, tx pgx.Tx, movementIDs []int64, code string) (int64, error) {
	rows, err := tx.Query(ctx, `
		SELECT movement_id, COALESCE(reconciliation_code, '')
		FROM movements
		WHERE movement_id = ANY($1)
		ORDER BY movement_id
		FOR UPDATE;`, movementIDs)
	if err != nil {
		return 0, apperrors.NewPersistenceError("failed to lock movements", err)
	}
	locked := 0
	for rows.Next() {
		var id int64
		var existing string
		if err := rows.Scan(&id, &existing); err != nil {
			rows.Close()
			return 0, apperrors.NewPersistenceError("failed to scan movement row", err)
		}
		if existing != "" {
			rows.Close()
			return 0, apperrors.NewConflictError("movement %d is already reconciled under code %s", id, existing)
		}
		locked++
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, apperrors.NewPersistenceError("error iterating movement rows", err)
	}
	if locked != len(movementIDs) {
		return 0, apperrors.NewNotFoundError("%d of %d movements not found", len(movementIDs)-locked, len(movementIDs))
	}

	tag, err := tx.Exec(ctx, `
		UPDATE movements
		SET reconciliation_code = $2, reconciled_at = NOW()
		WHERE movement_id = ANY($1);`, movementIDs, code)
	if err != nil {
		return 0, apperrors.NewPersistenceError(fmt.Sprintf("failed to apply reconciliation code %s", code), err)
	}
	return tag.RowsAffected(), nil
}

// ClearReconciliationCode removes a code from every movement carrying it.
func (r *PgxLedgerRepository) ClearReconciliationCode(ctx context.Context, code string) (int64, error) {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE movements
		SET reconciliation_code = NULL, reconciled_at = NULL
		WHERE reconciliation_code = $1;`, code)
	if err != nil {
		return 0, apperrors.NewPersistenceError("failed to clear reconciliation code "+code, err)
	}
	return tag.RowsAffected(), nil
}
