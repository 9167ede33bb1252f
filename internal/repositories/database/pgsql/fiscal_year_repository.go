package pgsql

import (
	"context"

	"github.com/SscSPs/compta_core/internal/apperrors"
	"github.com/SscSPs/compta_core/internal/core/domain"
	portsrepo "github.com/SscSPs/compta_core/internal/core/ports/repositories"
	"github.com/SscSPs/compta_core/internal/models"
	"github.com/SscSPs/compta_core/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const fiscalYearColumns = `fiscal_year_id, company_id, year, start_date, end_date, closed, created_at, created_by`

type PgxFiscalYearRepository struct {
	BaseRepository
}

func newPgxFiscalYearRepository(pool *pgxpool.Pool) portsrepo.FiscalYearRepositoryFacade {
	return &PgxFiscalYearRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.FiscalYearRepositoryFacade = (*PgxFiscalYearRepository)(nil)

func scanFiscalYear(row pgx.Row) (models.FiscalYear, error) {
	var m models.FiscalYear
	err := row.Scan(&m.FiscalYearID, &m.CompanyID, &m.Year, &m.StartDate, &m.EndDate, &m.Closed, &m.CreatedAt, &m.CreatedBy)
	return m, err
}

// FindFiscalYearByID retrieves a fiscal year by its ID.
func (r *PgxFiscalYearRepository) FindFiscalYearByID(ctx context.Context, fiscalYearID int64) (*domain.FiscalYear, error) {
	query := `SELECT ` + fiscalYearColumns + ` FROM fiscal_years WHERE fiscal_year_id = $1;`
	m, err := scanFiscalYear(r.Pool.QueryRow(ctx, query, fiscalYearID))
	if err != nil {
		return nil, queryError(err, "failed to find fiscal year %d", fiscalYearID)
	}
	fy := mapping.ToDomainFiscalYear(m)
	return &fy, nil
}

// ListFiscalYears retrieves the fiscal years of a company, most recent first.
func (r *PgxFiscalYearRepository) ListFiscalYears(ctx context.Context, companyID int64) ([]domain.FiscalYear, error) {
	query := `SELECT ` + fiscalYearColumns + ` FROM fiscal_years WHERE company_id = $1 ORDER BY year DESC;`
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to list fiscal years", err)
	}
	defer rows.Close()

	years := make([]domain.FiscalYear, 0)
	for rows.Next() {
		m, err := scanFiscalYear(rows)
		if err != nil {
			return nil, apperrors.NewPersistenceError("failed to scan fiscal year row", err)
		}
		years = append(years, mapping.ToDomainFiscalYear(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewPersistenceError("error iterating fiscal year rows", err)
	}
	return years, nil
}
