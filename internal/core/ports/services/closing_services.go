package services

import (
	"context"

	"github.com/SscSPs/compta_core/internal/core/domain"
)

// ClosingService delegates period-end work to the database procedures
type ClosingService interface {
	// CloseFiscalYear runs the closing procedure and flags the fiscal year closed.
	CloseFiscalYear(ctx context.Context, companyID, fiscalYearID int64, actor domain.Actor) (*domain.ClosingResult, error)

	// ExportFEC returns the statutory export of the fiscal year.
	ExportFEC(ctx context.Context, companyID, fiscalYearID int64, actor domain.Actor) ([]domain.FECRecord, error)

	// RunConsistencyChecks runs the consistency test procedure.
	RunConsistencyChecks(ctx context.Context, companyID, fiscalYearID int64) ([]domain.ConsistencyCheck, error)
}

// AuditRecorder receives one event per mutating operation.
type AuditRecorder interface {
	Record(ctx context.Context, event domain.AuditEvent)
}
