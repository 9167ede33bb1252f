package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/compta_core/internal/core/domain"
	portssvc "github.com/SscSPs/compta_core/internal/core/ports/services"
	"github.com/SscSPs/compta_core/internal/middleware"
)

type logAuditRecorder struct {
	logger *slog.Logger
}

// NewLogAuditRecorder writes audit events as structured log records. A nil
// logger means the request-scoped logger of each call.
func NewLogAuditRecorder(logger *slog.Logger) portssvc.AuditRecorder {
	return &logAuditRecorder{logger: logger}
}

func (r *logAuditRecorder) Record(ctx context.Context, event domain.AuditEvent) {
	logger := r.logger
	if logger == nil {
		logger = middleware.GetLoggerFromCtx(ctx)
	}
	logger.Info("audit",
		slog.String("actor", event.Actor),
		slog.String("action", event.Action),
		slog.Int64("company_id", event.CompanyID),
		slog.Any("details", event.Details),
		slog.Time("occurred_at", event.OccurredAt))
}
