package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/compta_core/internal/apperrors"
	"github.com/SscSPs/compta_core/internal/core/domain"
	"github.com/SscSPs/compta_core/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCloseFiscalYear(t *testing.T) {
	ctx := context.Background()
	admin := domain.Actor{UserID: "admin", Role: domain.RoleAdmin}

	t.Run("closes an open fiscal year", func(t *testing.T) {
		fyRepo, procRepo, audit := new(MockFiscalYearRepository), new(MockProcedureRepository), new(MockAuditRecorder)
		audit.On("Record", ctx, auditAction("fiscal_year.close")).Once()
		fyRepo.On("FindFiscalYearByID", ctx, int64(10)).Return(&domain.FiscalYear{FiscalYearID: 10, CompanyID: 1, Year: 2024}, nil).Once()
		procRepo.On("CloseFiscalYear", ctx, int64(1), int64(10)).Return(nil).Once()

		res, err := services.NewClosingService(fyRepo, procRepo, audit).CloseFiscalYear(ctx, 1, 10, admin)

		require.NoError(t, err)
		assert.True(t, res.Closed)
		assert.Equal(t, "fiscal year 2024 closed", res.Message)
		procRepo.AssertExpectations(t)
		audit.AssertExpectations(t)
	})

	t.Run("rejects an already closed fiscal year", func(t *testing.T) {
		fyRepo, procRepo, audit := new(MockFiscalYearRepository), new(MockProcedureRepository), new(MockAuditRecorder)
		audit.On("Record", ctx, mock.Anything).Once()
		fyRepo.On("FindFiscalYearByID", ctx, int64(10)).Return(&domain.FiscalYear{FiscalYearID: 10, CompanyID: 1, Year: 2024, Closed: true}, nil).Once()

		_, err := services.NewClosingService(fyRepo, procRepo, audit).CloseFiscalYear(ctx, 1, 10, admin)

		assert.ErrorIs(t, err, apperrors.ErrValidation)
		procRepo.AssertNotCalled(t, "CloseFiscalYear", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("reader may not close", func(t *testing.T) {
		_, err := services.NewClosingService(new(MockFiscalYearRepository), new(MockProcedureRepository), nil).
			CloseFiscalYear(ctx, 1, 10, domain.Actor{UserID: "r", Role: domain.RoleReader})

		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})
}

func TestExportFECAndChecks(t *testing.T) {
	ctx := context.Background()
	fyRepo, procRepo, audit := new(MockFiscalYearRepository), new(MockProcedureRepository), new(MockAuditRecorder)
	audit.On("Record", ctx, auditAction("fec.export")).Once()
	fyRepo.On("FindFiscalYearByID", ctx, int64(10)).Return(&domain.FiscalYear{FiscalYearID: 10, CompanyID: 1}, nil).Once()
	procRepo.On("ExportFEC", ctx, int64(1), int64(10)).Return([]domain.FECRecord{{JournalCode: "VE", EcritureNum: "VE-2024-00001"}}, nil).Once()
	procRepo.On("RunConsistencyChecks", ctx, int64(1), int64(10)).Return([]domain.ConsistencyCheck{{Name: "balanced_entries", Passed: true}}, nil).Once()

	svc := services.NewClosingService(fyRepo, procRepo, audit)
	records, err := svc.ExportFEC(ctx, 1, 10, domain.Actor{UserID: "r", Role: domain.RoleReader})
	require.NoError(t, err)
	assert.Len(t, records, 1)

	checks, err := svc.RunConsistencyChecks(ctx, 1, 10)
	require.NoError(t, err)
	assert.True(t, checks[0].Passed)
	audit.AssertExpectations(t)
}
