package services_test

import (
	"context"
	"errors"

	"github.com/SscSPs/compta_core/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// MockAccountRepository is a mock type for the AccountRepositoryFacade interface
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByNumber(ctx context.Context, companyID int64, number string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, companyID int64) ([]domain.Account, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SearchAccounts(ctx context.Context, companyID int64, search domain.AccountSearch) ([]domain.Account, error) {
	args := m.Called(ctx, companyID, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) (int64, error) {
	args := m.Called(ctx, account)
	return args.Get(0).(int64), args.Error(1)
}

// MockFiscalYearRepository is a mock type for the FiscalYearRepositoryFacade interface
type MockFiscalYearRepository struct {
	mock.Mock
}

func (m *MockFiscalYearRepository) FindFiscalYearByID(ctx context.Context, fiscalYearID int64) (*domain.FiscalYear, error) {
	args := m.Called(ctx, fiscalYearID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalYear), args.Error(1)
}

func (m *MockFiscalYearRepository) ListFiscalYears(ctx context.Context, companyID int64) ([]domain.FiscalYear, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FiscalYear), args.Error(1)
}

// MockJournalRepository is a mock type for the JournalRepositoryFacade interface
type MockJournalRepository struct {
	mock.Mock
}

func (m *MockJournalRepository) FindJournalByID(ctx context.Context, journalID int64) (*domain.Journal, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) FindJournalByCode(ctx context.Context, companyID int64, code string) (*domain.Journal, error) {
	args := m.Called(ctx, companyID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) ListJournals(ctx context.Context, companyID int64) ([]domain.Journal, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) ListEntries(ctx context.Context, companyID, fiscalYearID int64, filter domain.EntryFilter) ([]domain.EntrySummary, error) {
	args := m.Called(ctx, companyID, fiscalYearID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EntrySummary), args.Error(1)
}

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, entryID int64) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, journalCode string, year int) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entry, journalCode, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

// MockCompanyRepository is a mock type for the CompanyRepositoryFacade interface
type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) FindCompanyByID(ctx context.Context, companyID int64) (*domain.Company, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockCompanyRepository) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Company), args.Error(1)
}

// MockThirdPartyRepository is a mock type for the ThirdPartyRepositoryFacade interface
type MockThirdPartyRepository struct {
	mock.Mock
}

func (m *MockThirdPartyRepository) FindThirdPartyByID(ctx context.Context, thirdPartyID int64) (*domain.ThirdParty, error) {
	args := m.Called(ctx, thirdPartyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ThirdParty), args.Error(1)
}

func (m *MockThirdPartyRepository) ListThirdParties(ctx context.Context, companyID int64, kind domain.ThirdPartyKind) ([]domain.ThirdParty, error) {
	args := m.Called(ctx, companyID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ThirdParty), args.Error(1)
}

func (m *MockThirdPartyRepository) SaveThirdParty(ctx context.Context, thirdParty domain.ThirdParty) (int64, error) {
	args := m.Called(ctx, thirdParty)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockThirdPartyRepository) UpdateThirdParty(ctx context.Context, thirdParty domain.ThirdParty) error {
	args := m.Called(ctx, thirdParty)
	return args.Error(0)
}

func (m *MockThirdPartyRepository) DeleteThirdParty(ctx context.Context, thirdPartyID int64) error {
	args := m.Called(ctx, thirdPartyID)
	return args.Error(0)
}

// MockLedgerRepository is a mock type for the LedgerRepositoryFacade interface
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) FindUnreconciledMovements(ctx context.Context, scope domain.ReconciliationScope) ([]domain.LedgerLine, error) {
	args := m.Called(ctx, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerLine), args.Error(1)
}

func (m *MockLedgerRepository) FindReconciledMovements(ctx context.Context, companyID, fiscalYearID int64, accountNumber string) ([]domain.LedgerLine, error) {
	args := m.Called(ctx, companyID, fiscalYearID, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerLine), args.Error(1)
}

func (m *MockLedgerRepository) FindAccountMovements(ctx context.Context, companyID, fiscalYearID int64, accountNumber string) ([]domain.LedgerLine, error) {
	args := m.Called(ctx, companyID, fiscalYearID, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerLine), args.Error(1)
}

func (m *MockLedgerRepository) AggregateMovements(ctx context.Context, movementIDs []int64) (*domain.MovementAggregate, error) {
	args := m.Called(ctx, movementIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MovementAggregate), args.Error(1)
}

func (m *MockLedgerRepository) AllocateReconciliationCode(ctx context.Context, movementIDs []int64) (string, error) {
	args := m.Called(ctx, movementIDs)
	return args.String(0), args.Error(1)
}

func (m *MockLedgerRepository) ApplyReconciliationCode(ctx context.Context, movementIDs []int64, code string) (int64, error) {
	args := m.Called(ctx, movementIDs, code)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerRepository) ClearReconciliationCode(ctx context.Context, code string) (int64, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(int64), args.Error(1)
}

// MockReportingRepository is a mock type for the ReportingRepository interface
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) FindAccountTotals(ctx context.Context, companyID, fiscalYearID int64, filter domain.AccountFilter) ([]domain.AccountTotals, error) {
	args := m.Called(ctx, companyID, fiscalYearID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountTotals), args.Error(1)
}

// MockBalanceRepository is a mock type for the BalanceRepository interface
type MockBalanceRepository struct {
	mock.Mock
}

func (m *MockBalanceRepository) FindBalance(ctx context.Context, companyID, fiscalYearID int64) ([]domain.BalanceLine, error) {
	args := m.Called(ctx, companyID, fiscalYearID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BalanceLine), args.Error(1)
}

func (m *MockBalanceRepository) ReplaceBalance(ctx context.Context, companyID, fiscalYearID int64, lines []domain.BalanceLine) error {
	args := m.Called(ctx, companyID, fiscalYearID, lines)
	return args.Error(0)
}

// MockProcedureRepository is a mock type for the ProcedureRepository interface
type MockProcedureRepository struct {
	mock.Mock
}

func (m *MockProcedureRepository) ComputeBalance(ctx context.Context, companyID, fiscalYearID int64) error {
	args := m.Called(ctx, companyID, fiscalYearID)
	return args.Error(0)
}

func (m *MockProcedureRepository) CloseFiscalYear(ctx context.Context, companyID, fiscalYearID int64) error {
	args := m.Called(ctx, companyID, fiscalYearID)
	return args.Error(0)
}

func (m *MockProcedureRepository) ExportFEC(ctx context.Context, companyID, fiscalYearID int64) ([]domain.FECRecord, error) {
	args := m.Called(ctx, companyID, fiscalYearID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FECRecord), args.Error(1)
}

func (m *MockProcedureRepository) RunConsistencyChecks(ctx context.Context, companyID, fiscalYearID int64) ([]domain.ConsistencyCheck, error) {
	args := m.Called(ctx, companyID, fiscalYearID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ConsistencyCheck), args.Error(1)
}

// MockAuditRecorder is a mock type for the AuditRecorder interface
type MockAuditRecorder struct {
	mock.Mock
}

func (m *MockAuditRecorder) Record(ctx context.Context, event domain.AuditEvent) {
	m.Called(ctx, event)
}

func auditAction(action string) any {
	return mock.MatchedBy(func(e domain.AuditEvent) bool { return e.Action == action })
}

var assertErr = errors.New("connection refused")
