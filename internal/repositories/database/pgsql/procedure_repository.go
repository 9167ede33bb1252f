package pgsql

import (
	"context"

	"github.com/SscSPs/compta_core/internal/apperrors"
	"github.com/SscSPs/compta_core/internal/core/domain"
	portsrepo "github.com/SscSPs/compta_core/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxProcedureRepository calls the procedures installed by the migrations.
type PgxProcedureRepository struct {
	BaseRepository
}

func newPgxProcedureRepository(pool *pgxpool.Pool) portsrepo.ProcedureRepository {
	return &PgxProcedureRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ProcedureRepository = (*PgxProcedureRepository)(nil)

func (r *PgxProcedureRepository) ComputeBalance(ctx context.Context, companyID, fiscalYearID int64) error {
	if _, err := r.Pool.Exec(ctx, `CALL calculer_balance($1, $2);`, companyID, fiscalYearID); err != nil {
		return queryError(err, "failed to compute balance for fiscal year %d", fiscalYearID)
	}
	return nil
}

// CloseFiscalYear runs cloturer_exercice in its own transaction. A RAISE from
// the procedure surfaces as a validation error.
func (r *PgxProcedureRepository) CloseFiscalYear(ctx context.Context, companyID, fiscalYearID int64) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `CALL cloturer_exercice($1, $2);`, companyID, fiscalYearID); err != nil {
		return queryError(err, "failed to close fiscal year %d", fiscalYearID)
	}
	return r.Commit(ctx, tx)
}

func (r *PgxProcedureRepository) ExportFEC(ctx context.Context, companyID, fiscalYearID int64) ([]domain.FECRecord, error) {
	query := `
		SELECT journal_code, journal_lib, ecriture_num, ecriture_date, compte_num, compte_lib,
		       comp_aux_num, comp_aux_lib, piece_ref, piece_date, ecriture_lib,
		       debit, credit, ecriture_let, date_let, valid_date, montant_devise, idevise
		FROM exporter_fec_exercice($1, $2);
	`
	rows, err := r.Pool.Query(ctx, query, companyID, fiscalYearID)
	if err != nil {
		return nil, queryError(err, "failed to export FEC for fiscal year %d", fiscalYearID)
	}
	defer rows.Close()

	records := make([]domain.FECRecord, 0)
	for rows.Next() {
		var f domain.FECRecord
		if err := rows.Scan(
			&f.JournalCode,
			&f.JournalLib,
			&f.EcritureNum,
			&f.EcritureDate,
			&f.CompteNum,
			&f.CompteLib,
			&f.CompAuxNum,
			&f.CompAuxLib,
			&f.PieceRef,
			&f.PieceDate,
			&f.EcritureLib,
			&f.Debit,
			&f.Credit,
			&f.EcritureLet,
			&f.DateLet,
			&f.ValidDate,
			&f.MontantDevise,
			&f.Idevise,
		); err != nil {
			return nil, apperrors.NewPersistenceError("failed to scan FEC row", err)
		}
		records = append(records, f)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewPersistenceError("error iterating FEC rows", err)
	}
	return records, nil
}

func (r *PgxProcedureRepository) RunConsistencyChecks(ctx context.Context, companyID, fiscalYearID int64) ([]domain.ConsistencyCheck, error) {
	rows, err := r.Pool.Query(ctx, `SELECT check_name, passed, detail FROM tester_comptabilite_avancee($1, $2);`, companyID, fiscalYearID)
	if err != nil {
		return nil, queryError(err, "failed to run consistency checks for fiscal year %d", fiscalYearID)
	}
	defer rows.Close()

	checks := make([]domain.ConsistencyCheck, 0)
	for rows.Next() {
		var c domain.ConsistencyCheck
		if err := rows.Scan(&c.Name, &c.Passed, &c.Detail); err != nil {
			return nil, apperrors.NewPersistenceError("failed to scan consistency check row", err)
		}
		checks = append(checks, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewPersistenceError("error iterating consistency check rows", err)
	}
	return checks, nil
}
