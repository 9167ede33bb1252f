package pgsql

import (
	"context"

	"github.com/SscSPs/compta_core/internal/apperrors"
	"github.com/SscSPs/compta_core/internal/core/domain"
	portsrepo "github.com/SscSPs/compta_core/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxReportingRepository struct {
	BaseRepository
}

func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// FindAccountTotals sums movements per account for a fiscal year. Accounts
// without movements are left out.
func (r *PgxReportingRepository) FindAccountTotals(ctx context.Context, companyID, fiscalYearID int64, filter domain.AccountFilter) ([]domain.AccountTotals, error) {
	query := `
		SELECT a.account_id, a.number, a.label, a.nature,
		       SUM(m.debit), SUM(m.credit)
		FROM movements m
		JOIN entries e ON e.entry_id = m.entry_id
		JOIN accounts a ON a.account_id = m.account_id
		WHERE e.company_id = $1 AND e.fiscal_year_id = $2
		  AND (cardinality($3::TEXT[]) = 0 OR a.class::TEXT = ANY($3))
		  AND a.number LIKE $4 || '%'
		GROUP BY a.account_id, a.number, a.label, a.nature
		ORDER BY a.number;
	`
	classes := filter.Classes
	if classes == nil {
		classes = []string{}
	}
	rows, err := r.Pool.Query(ctx, query, companyID, fiscalYearID, classes, filter.Prefix)
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to query account totals", err)
	}
	defer rows.Close()

	totals := make([]domain.AccountTotals, 0)
	for rows.Next() {
		var t domain.AccountTotals
		var nature string
		if err := rows.Scan(&t.AccountID, &t.AccountNumber, &t.AccountLabel, &nature, &t.TotalDebit, &t.TotalCredit); err != nil {
			return nil, apperrors.NewPersistenceError("failed to scan account totals row", err)
		}
		t.Nature = domain.Nature(nature)
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewPersistenceError("error iterating account totals rows", err)
	}
	return totals, nil
}
