package pgsql

import (
	"context"
	"fmt"
	"net/http"

	"github.com/SscSPs/compta_core/internal/apperrors"
	"github.com/SscSPs/compta_core/internal/core/domain"
	portsrepo "github.com/SscSPs/compta_core/internal/core/ports/repositories"
	"github.com/SscSPs/compta_core/internal/models"
	"github.com/SscSPs/compta_core/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const accountColumns = `account_id, company_id, number, label, nature, reconcilable, created_at, created_by`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for the chart of accounts.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.CompanyID,
		&m.Number,
		&m.Label,
		&m.Nature,
		&m.Reconcilable,
		&m.CreatedAt,
		&m.CreatedBy,
	)
	return m, err
}

// SaveAccount inserts a new account and returns its identifier.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) (int64, error) {
	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (company_id, number, label, nature, reconcilable, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING account_id;
	`
	var id int64
	err := r.Pool.QueryRow(ctx, query,
		m.CompanyID,
		m.Number,
		m.Label,
		m.Nature,
		m.Reconcilable,
		m.CreatedAt,
		m.CreatedBy,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, apperrors.NewAppError(http.StatusConflict, fmt.Sprintf("account %s already exists", m.Number), apperrors.ErrDuplicate)
		}
		return 0, apperrors.NewPersistenceError("failed to save account "+m.Number, err)
	}
	return id, nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	m, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		return nil, queryError(err, "failed to find account %d", accountID)
	}
	account := mapping.ToDomainAccount(m)
	return &account, nil
}

// FindAccountByNumber retrieves an account of a company by its number.
func (r *PgxAccountRepository) FindAccountByNumber(ctx context.Context, companyID int64, number string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE company_id = $1 AND number = $2;`
	m, err := scanAccount(r.Pool.QueryRow(ctx, query, companyID, number))
	if err != nil {
		return nil, queryError(err, "failed to find account %s", number)
	}
	account := mapping.ToDomainAccount(m)
	return &account, nil
}

// ListAccounts retrieves the chart of a company ordered by number.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, companyID int64) ([]domain.Account, error) {
	return r.SearchAccounts(ctx, companyID, domain.AccountSearch{})
}

// SearchAccounts lists the accounts of a company matching search, ordered by number.
func (r *PgxAccountRepository) SearchAccounts(ctx context.Context, companyID int64, search domain.AccountSearch) ([]domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE company_id = $1
		  AND ($2::TEXT = '' OR class = $2::TEXT)
		  AND ($3::TEXT = '' OR number LIKE $3::TEXT || '%' OR label ILIKE '%' || $3::TEXT || '%')
		ORDER BY number;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, search.Class, escapeLike(search.Query))
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to list accounts", err)
	}
	defer rows.Close()

	ms := make([]models.Account, 0)
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewPersistenceError("failed to scan account row", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewPersistenceError("error iterating account rows", err)
	}
	return mapping.ToDomainAccountSlice(ms), nil
}
