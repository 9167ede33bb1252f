package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/compta_core/internal/apperrors"
	"github.com/SscSPs/compta_core/internal/core/domain"
	portsrepo "github.com/SscSPs/compta_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/compta_core/internal/core/ports/services"
)

// closingService implements the ClosingService interface
type closingService struct {
	BaseService
	fiscalYearRepo portsrepo.FiscalYearReader
	procedureRepo  portsrepo.ProcedureRepository
}

// NewClosingService creates a new closing service.
func NewClosingService(fiscalYearRepo portsrepo.FiscalYearReader, procedureRepo portsrepo.ProcedureRepository, audit portssvc.AuditRecorder) portssvc.ClosingService {
	return &closingService{
		BaseService:    BaseService{Audit: audit},
		fiscalYearRepo: fiscalYearRepo,
		procedureRepo:  procedureRepo,
	}
}

var _ portssvc.ClosingService = (*closingService)(nil)

// CloseFiscalYear runs the closing procedure. A closed fiscal year accepts no new entries.
func (s *closingService) CloseFiscalYear(ctx context.Context, companyID, fiscalYearID int64, actor domain.Actor) (result *domain.ClosingResult, err error) {
	defer s.recoverOperation(ctx, "close fiscal year", &err)

	if err := s.AuthorizeWrite(ctx, actor, "fiscal_year.close"); err != nil {
		return nil, err
	}
	s.RecordAudit(ctx, actor, "fiscal_year.close", companyID, map[string]any{"fiscal_year_id": fiscalYearID})

	fy, err := loadFiscalYear(ctx, s.fiscalYearRepo, companyID, fiscalYearID)
	if err != nil {
		return nil, err
	}
	if fy.Closed {
		return nil, apperrors.NewValidationError("fiscal year %d is already closed", fy.Year)
	}

	if err := s.procedureRepo.CloseFiscalYear(ctx, companyID, fiscalYearID); err != nil {
		s.LogError(ctx, err, "Closing procedure failed",
			slog.Int64("company_id", companyID),
			slog.Int64("fiscal_year_id", fiscalYearID))
		return nil, fmt.Errorf("failed to close fiscal year %d: %w", fy.Year, err)
	}

	s.LogInfo(ctx, "Fiscal year closed", slog.Int64("fiscal_year_id", fiscalYearID), slog.Int("year", fy.Year))
	return &domain.ClosingResult{
		FiscalYearID: fiscalYearID,
		Closed:       true,
		Message:      fmt.Sprintf("fiscal year %d closed", fy.Year),
	}, nil
}

// ExportFEC returns the fichier des écritures comptables of a fiscal year.
// The export is audited since it leaves the system.
func (s *closingService) ExportFEC(ctx context.Context, companyID, fiscalYearID int64, actor domain.Actor) ([]domain.FECRecord, error) {
	s.RecordAudit(ctx, actor, "fec.export", companyID, map[string]any{"fiscal_year_id": fiscalYearID})

	if _, err := loadFiscalYear(ctx, s.fiscalYearRepo, companyID, fiscalYearID); err != nil {
		return nil, err
	}
	records, err := s.procedureRepo.ExportFEC(ctx, companyID, fiscalYearID)
	if err != nil {
		s.LogError(ctx, err, "FEC export failed", slog.Int64("fiscal_year_id", fiscalYearID))
		return nil, fmt.Errorf("failed to export FEC: %w", err)
	}
	s.LogInfo(ctx, "FEC exported", slog.Int64("fiscal_year_id", fiscalYearID), slog.Int("record_count", len(records)))
	return records, nil
}

// RunConsistencyChecks runs the consistency test procedure.
func (s *closingService) RunConsistencyChecks(ctx context.Context, companyID, fiscalYearID int64) ([]domain.ConsistencyCheck, error) {
	checks, err := s.procedureRepo.RunConsistencyChecks(ctx, companyID, fiscalYearID)
	if err != nil {
		s.LogError(ctx, err, "Consistency checks failed to run", slog.Int64("fiscal_year_id", fiscalYearID))
		return nil, fmt.Errorf("failed to run consistency checks: %w", err)
	}
	return checks, nil
}
