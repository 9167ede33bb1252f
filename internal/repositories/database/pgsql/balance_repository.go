package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/compta_core/internal/apperrors"
	"github.com/SscSPs/compta_core/internal/core/domain"
	portsrepo "github.com/SscSPs/compta_core/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var balanceColumns = []string{"company_id", "fiscal_year_id", "account_id", "total_debit", "total_credit", "solde", "computed_at"}

type PgxBalanceRepository struct {
	BaseRepository
}

func newPgxBalanceRepository(pool *pgxpool.Pool) portsrepo.BalanceRepository {
	return &PgxBalanceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BalanceRepository = (*PgxBalanceRepository)(nil)

// FindBalance returns the stored balance ordered by account number.
func (r *PgxBalanceRepository) FindBalance(ctx context.Context, companyID, fiscalYearID int64) ([]domain.BalanceLine, error) {
	query := `
		SELECT b.company_id, b.fiscal_year_id, b.account_id, a.number, a.label,
		       b.total_debit, b.total_credit, b.solde, b.computed_at
		FROM balances b
		JOIN accounts a ON a.account_id = b.account_id
		WHERE b.company_id = $1 AND b.fiscal_year_id = $2
		ORDER BY a.number;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, fiscalYearID)
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to query balance", err)
	}
	defer rows.Close()

	lines := make([]domain.BalanceLine, 0)
	for rows.Next() {
		var l domain.BalanceLine
		if err := rows.Scan(&l.CompanyID, &l.FiscalYearID, &l.AccountID, &l.AccountNumber, &l.AccountLabel,
			&l.TotalDebit, &l.TotalCredit, &l.Solde, &l.ComputedAt); err != nil {
			return nil, apperrors.NewPersistenceError("failed to scan balance row", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewPersistenceError("error iterating balance rows", err)
	}
	return lines, nil
}

// ReplaceBalance deletes then bulk loads the balance of (company, fiscal year)
// under the same advisory lock calculer_balance takes.
func (r *PgxBalanceRepository) ReplaceBalance(ctx context.Context, companyID, fiscalYearID int64, lines []domain.BalanceLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck

	if err := advisoryLock(ctx, tx, balanceLockKey(companyID, fiscalYearID)); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM balances WHERE company_id = $1 AND fiscal_year_id = $2;`, companyID, fiscalYearID); err != nil {
		return apperrors.NewPersistenceError("failed to clear balance", err)
	}

	now := time.Now().UTC()
	rows := make([][]any, 0, len(lines))
	for _, l := range lines {
		computedAt := l.ComputedAt
		if computedAt.IsZero() {
			computedAt = now
		}
		rows = append(rows, []any{
			companyID, fiscalYearID, l.AccountID,
			toNumeric(l.TotalDebit), toNumeric(l.TotalCredit), toNumeric(l.Solde),
			computedAt,
		})
	}
	if _, err := tx.CopyFrom(ctx, pgx.Identifier{"balances"}, balanceColumns, pgx.CopyFromRows(rows)); err != nil {
		return apperrors.NewPersistenceError("failed to copy balance rows", err)
	}

	return r.Commit(ctx, tx)
}
