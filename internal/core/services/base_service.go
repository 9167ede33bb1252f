package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/compta_core/internal/apperrors"
	"github.com/SscSPs/compta_core/internal/core/domain"
	portsrepo "github.com/SscSPs/compta_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/compta_core/internal/core/ports/services"
	"github.com/SscSPs/compta_core/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Audit portssvc.AuditRecorder
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// AuthorizeWrite is the precondition of every mutating operation: the actor
// must be identified and hold a role allowed to write.
func (s *BaseService) AuthorizeWrite(ctx context.Context, actor domain.Actor, action string) error {
	if actor.UserID == "" || !actor.Role.CanWrite() {
		err := apperrors.NewForbiddenError("role %q may not perform %s", actor.Role, action)
		s.LogError(ctx, err, "Operation refused",
			slog.String("user_id", actor.UserID),
			slog.String("action", action))
		return err
	}
	return nil
}

// RecordAudit emits the audit event of a mutating operation.
func (s *BaseService) RecordAudit(ctx context.Context, actor domain.Actor, action string, companyID int64, details map[string]any) {
	if s.Audit == nil {
		return
	}
	s.Audit.Record(ctx, domain.AuditEvent{
		Actor:      actor.UserID,
		Action:     action,
		CompanyID:  companyID,
		Details:    details,
		OccurredAt: time.Now().UTC(),
	})
}

// recoverOperation converts a panic raised by a collaborator into an internal
// error on the named result of the operation. It must be deferred directly.
func (s *BaseService) recoverOperation(ctx context.Context, operation string, err *error) {
	if r := recover(); r != nil {
		s.GetLogger(ctx).Error("Recovered panic in service operation",
			slog.String("operation", operation),
			slog.Any("panic", r))
		*err = apperrors.NewAppError(http.StatusInternalServerError,
			fmt.Sprintf("%s failed unexpectedly", operation),
			fmt.Errorf("panic: %v", r))
	}
}

// loadFiscalYear fetches a fiscal year and checks it belongs to companyID.
func loadFiscalYear(ctx context.Context, repo portsrepo.FiscalYearReader, companyID, fiscalYearID int64) (*domain.FiscalYear, error) {
	fy, err := repo.FindFiscalYearByID(ctx, fiscalYearID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("fiscal year %d not found", fiscalYearID)
		}
		return nil, fmt.Errorf("failed to load fiscal year %d: %w", fiscalYearID, err)
	}
	if fy.CompanyID != companyID {
		return nil, apperrors.NewNotFoundError("fiscal year %d not found for company %d", fiscalYearID, companyID)
	}
	return fy, nil
}
