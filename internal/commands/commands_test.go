package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/SscSPs/compta_core/internal/apperrors"
	"github.com/SscSPs/compta_core/internal/commands"
	"github.com/SscSPs/compta_core/internal/core/domain"
	portssvc "github.com/SscSPs/compta_core/internal/core/ports/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Only the methods a test sets up are implemented; the embedded interface
// panics on anything else.
type stubReconciliation struct {
	portssvc.ReconciliationService
	mock.Mock
}

func (s *stubReconciliation) Reconcile(ctx context.Context, movementIDs []int64, code string, actor domain.Actor) (*domain.ReconciliationResult, error) {
	args := s.Called(movementIDs, code, actor)
	res, _ := args.Get(0).(*domain.ReconciliationResult)
	return res, args.Error(1)
}

func (s *stubReconciliation) AutoReconcile(ctx context.Context, scope domain.ReconciliationScope, actor domain.Actor) (*domain.AutoReconciliationResult, error) {
	args := s.Called(scope, actor)
	res, _ := args.Get(0).(*domain.AutoReconciliationResult)
	return res, args.Error(1)
}

type stubReporting struct {
	portssvc.ReportingService
	mock.Mock
}

func (s *stubReporting) GetBalance(ctx context.Context, companyID, fiscalYearID int64) (*domain.TrialBalance, error) {
	args := s.Called(companyID, fiscalYearID)
	res, _ := args.Get(0).(*domain.TrialBalance)
	return res, args.Error(1)
}

type stubClosing struct {
	portssvc.ClosingService
	mock.Mock
}

func (s *stubClosing) RunConsistencyChecks(ctx context.Context, companyID, fiscalYearID int64) ([]domain.ConsistencyCheck, error) {
	args := s.Called(companyID, fiscalYearID)
	res, _ := args.Get(0).([]domain.ConsistencyCheck)
	return res, args.Error(1)
}

func (s *stubClosing) CloseFiscalYear(ctx context.Context, companyID, fiscalYearID int64, actor domain.Actor) (*domain.ClosingResult, error) {
	args := s.Called(companyID, fiscalYearID, actor)
	res, _ := args.Get(0).(*domain.ClosingResult)
	return res, args.Error(1)
}

func run(t *testing.T, svc *portssvc.ServiceContainer, args ...string) (string, error) {
	t.Helper()
	released := false
	env := commands.Env{
		Services: func(context.Context) (*portssvc.ServiceContainer, func(), error) {
			return svc, func() { released = true }, nil
		},
		Migrate: func(context.Context) (bool, error) { return true, nil },
	}
	root := commands.NewRootCommand(env)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append(args, "--user", "alice"))

	err := root.ExecuteContext(context.Background())
	if svc != nil && err == nil {
		assert.True(t, released, "services were not released")
	}
	return out.String(), err
}

func TestClassify(t *testing.T) {
	out, err := run(t, nil, "classify", "401000", "passif")
	require.NoError(t, err)
	assert.Contains(t, out, "account 401000 classified as passif")

	_, err = run(t, nil, "classify", "401000", "actif")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected passif")

	_, err = run(t, nil, "classify", "401000", "dette")
	require.EqualError(t, err, `unknown nature "dette"`)
}

func TestReconcileManual(t *testing.T) {
	rec := new(stubReconciliation)
	actor := domain.Actor{UserID: "alice", Role: domain.RoleAccountant}
	rec.On("Reconcile", []int64{12, 15}, "AB", actor).Return(&domain.ReconciliationResult{
		Code: "AB", Message: "2 movement(s) reconciled under code AB",
	}, nil).Once()

	out, err := run(t, &portssvc.ServiceContainer{Reconciliation: rec}, "reconcile", "manual", "12", "15", "--code", "AB")

	require.NoError(t, err)
	assert.Contains(t, out, "reconciled under code AB")
	rec.AssertExpectations(t)
}

func TestReconcileManual_BadID(t *testing.T) {
	_, err := run(t, &portssvc.ServiceContainer{}, "reconcile", "manual", "12", "x")
	require.EqualError(t, err, `invalid movement id "x"`)
}

func TestReconcileAuto_PartialFailurePrintsCodes(t *testing.T) {
	rec := new(stubReconciliation)
	thirdParty := int64(4)
	scope := domain.ReconciliationScope{CompanyID: 1, FiscalYearID: 2, AccountNumber: "411000", ThirdPartyID: &thirdParty}
	rec.On("AutoReconcile", scope, mock.Anything).Return(&domain.AutoReconciliationResult{
		Pairs: 1, Codes: []string{"AC"}, Message: "1 reconciliation(s) performed before failure",
	}, apperrors.NewPersistenceError("failed to apply reconciliation code AD", errors.New("connection reset"))).Once()

	out, err := run(t, &portssvc.ServiceContainer{Reconciliation: rec},
		"reconcile", "auto", "--company", "1", "--fiscal-year", "2", "--account", "411000", "--third-party", "4")

	require.ErrorIs(t, err, apperrors.ErrPersistence)
	assert.Contains(t, out, "codes: AC")
	assert.Contains(t, out, "1 reconciliation(s) performed before failure")
	rec.AssertExpectations(t)
}

func TestReportBalance(t *testing.T) {
	rep := new(stubReporting)
	rep.On("GetBalance", int64(1), int64(2)).Return(&domain.TrialBalance{
		Lines: []domain.BalanceLine{
			{AccountNumber: "411000", AccountLabel: "Clients", TotalDebit: decimal.NewFromInt(120), Solde: decimal.NewFromInt(120)},
			{AccountNumber: "707000", AccountLabel: "Ventes", TotalCredit: decimal.NewFromInt(120), Solde: decimal.NewFromInt(-120)},
		},
		TotalDebit:  decimal.NewFromInt(120),
		TotalCredit: decimal.NewFromInt(120),
	}, nil).Once()

	out, err := run(t, &portssvc.ServiceContainer{Reporting: rep}, "report", "balance", "--company", "1", "--fiscal-year", "2")

	require.NoError(t, err)
	assert.Contains(t, out, "411000")
	assert.Contains(t, out, "-120.00")
	assert.Contains(t, out, "0.00")
	rep.AssertExpectations(t)
}

func TestReport_RequiresScope(t *testing.T) {
	_, err := run(t, &portssvc.ServiceContainer{}, "report", "vat")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
}

func TestClose_StopsOnFailedChecks(t *testing.T) {
	cl := new(stubClosing)
	cl.On("RunConsistencyChecks", int64(1), int64(2)).Return([]domain.ConsistencyCheck{
		{Name: "balanced_entries", Passed: false, Detail: "1 unbalanced entries"},
	}, nil).Once()

	out, err := run(t, &portssvc.ServiceContainer{Closing: cl}, "close", "--company", "1", "--fiscal-year", "2", "--checks")

	require.EqualError(t, err, "1 consistency check(s) failed, fiscal year not closed")
	assert.Contains(t, out, "FAILED")
	cl.AssertNotCalled(t, "CloseFiscalYear", mock.Anything, mock.Anything, mock.Anything)
}

func TestClose_ReaderForbidden(t *testing.T) {
	cl := new(stubClosing)
	cl.On("CloseFiscalYear", int64(1), int64(2), domain.Actor{UserID: "alice", Role: domain.RoleReader}).
		Return(nil, apperrors.NewForbiddenError("role LECTEUR cannot close a fiscal year")).Once()

	_, err := run(t, &portssvc.ServiceContainer{Closing: cl}, "close", "--company", "1", "--fiscal-year", "2", "--role", "LECTEUR")

	require.ErrorIs(t, err, apperrors.ErrForbidden)
	cl.AssertExpectations(t)
}

func TestMigrate(t *testing.T) {
	out, err := run(t, nil, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "migrations applied")
}
