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

const thirdPartyColumns = `third_party_id, company_id, code, name, kind`

type PgxThirdPartyRepository struct {
	BaseRepository
}

// newPgxThirdPartyRepository creates a new repository for third parties.
func newPgxThirdPartyRepository(pool *pgxpool.Pool) portsrepo.ThirdPartyRepositoryFacade {
	return &PgxThirdPartyRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ThirdPartyRepositoryFacade = (*PgxThirdPartyRepository)(nil)

func scanThirdParty(row pgx.Row) (models.ThirdParty, error) {
	var m models.ThirdParty
	err := row.Scan(&m.ThirdPartyID, &m.CompanyID, &m.Code, &m.Name, &m.Kind)
	return m, err
}

// FindThirdPartyByID retrieves a third party by its ID.
func (r *PgxThirdPartyRepository) FindThirdPartyByID(ctx context.Context, thirdPartyID int64) (*domain.ThirdParty, error) {
	query := `SELECT ` + thirdPartyColumns + ` FROM third_parties WHERE third_party_id = $1;`
	m, err := scanThirdParty(r.Pool.QueryRow(ctx, query, thirdPartyID))
	if err != nil {
		return nil, queryError(err, "failed to find third party %d", thirdPartyID)
	}
	tp := mapping.ToDomainThirdParty(m)
	return &tp, nil
}

// ListThirdParties retrieves the third parties of a company, optionally of one kind.
func (r *PgxThirdPartyRepository) ListThirdParties(ctx context.Context, companyID int64, kind domain.ThirdPartyKind) ([]domain.ThirdParty, error) {
	query := `
		SELECT ` + thirdPartyColumns + `
		FROM third_parties
		WHERE company_id = $1 AND ($2::TEXT = '' OR kind = $2::TEXT)
		ORDER BY code;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, string(kind))
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to list third parties", err)
	}
	defer rows.Close()

	out := make([]domain.ThirdParty, 0)
	for rows.Next() {
		m, err := scanThirdParty(rows)
		if err != nil {
			return nil, apperrors.NewPersistenceError("failed to scan third party row", err)
		}
		out = append(out, mapping.ToDomainThirdParty(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewPersistenceError("error iterating third party rows", err)
	}
	return out, nil
}

// SaveThirdParty inserts a third party and returns its identifier.
func (r *PgxThirdPartyRepository) SaveThirdParty(ctx context.Context, thirdParty domain.ThirdParty) (int64, error) {
	m := mapping.ToModelThirdParty(thirdParty)
	var id int64
	err := r.Pool.QueryRow(ctx, `
		INSERT INTO third_parties (company_id, code, name, kind)
		VALUES ($1, $2, $3, $4)
		RETURNING third_party_id;`, m.CompanyID, m.Code, m.Name, m.Kind).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, apperrors.NewAppError(http.StatusConflict, fmt.Sprintf("third party %s already exists", m.Code), apperrors.ErrDuplicate)
		}
		return 0, apperrors.NewPersistenceError("failed to save third party "+m.Code, err)
	}
	return id, nil
}

// UpdateThirdParty rewrites the name and kind. The code is the business key
// and stays as created.
func (r *PgxThirdPartyRepository) UpdateThirdParty(ctx context.Context, thirdParty domain.ThirdParty) error {
	m := mapping.ToModelThirdParty(thirdParty)
	tag, err := r.Pool.Exec(ctx, `
		UPDATE third_parties
		SET name = $2, kind = $3
		WHERE third_party_id = $1;`, m.ThirdPartyID, m.Name, m.Kind)
	if err != nil {
		return apperrors.NewPersistenceError(fmt.Sprintf("failed to update third party %d", m.ThirdPartyID), err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("third party %d not found", m.ThirdPartyID)
	}
	return nil
}

// DeleteThirdParty removes a third party unless a movement points at it.
func (r *PgxThirdPartyRepository) DeleteThirdParty(ctx context.Context, thirdPartyID int64) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck

	var used int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM movements WHERE third_party_id = $1;`, thirdPartyID).Scan(&used); err != nil {
		return apperrors.NewPersistenceError(fmt.Sprintf("failed to check usage of third party %d", thirdPartyID), err)
	}
	if used > 0 {
		return apperrors.NewConflictError("third party %d is used in %d movement(s)", thirdPartyID, used)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM third_parties WHERE third_party_id = $1;`, thirdPartyID)
	if err != nil {
		// A movement inserted after the check still trips the foreign key.
		if isForeignKeyViolation(err) {
			return apperrors.NewConflictError("third party %d is used in entries", thirdPartyID)
		}
		return apperrors.NewPersistenceError(fmt.Sprintf("failed to delete third party %d", thirdPartyID), err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("third party %d not found", thirdPartyID)
	}
	return r.Commit(ctx, tx)
}
