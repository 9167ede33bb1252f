package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/compta_core/internal/core/domain"
	portssvc "github.com/SscSPs/compta_core/internal/core/ports/services"
	"github.com/SscSPs/compta_core/internal/dto"
	"github.com/SscSPs/compta_core/internal/utils/accounting"
	"github.com/stretchr/testify/mock"
)

// --- Mock ChartService ---
type MockChartService struct {
	mock.Mock
}

func (m *MockChartService) Classify(ctx context.Context, accountNumber string, declared domain.Nature) domain.ClassificationResult {
	args := m.Called(ctx, accountNumber, declared)
	return args.Get(0).(domain.ClassificationResult)
}

func (m *MockChartService) AuditChart(ctx context.Context, companyID int64) ([]domain.ClassificationIssue, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ClassificationIssue), args.Error(1)
}

func (m *MockChartService) CreateAccount(ctx context.Context, companyID int64, req dto.CreateAccountRequest, actor domain.Actor) (*domain.Account, error) {
	args := m.Called(ctx, companyID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockChartService) ListAccounts(ctx context.Context, companyID int64, search domain.AccountSearch) ([]domain.Account, error) {
	args := m.Called(ctx, companyID, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

var _ portssvc.ChartSvcFacade = (*MockChartService)(nil)

// --- Mock EntryService ---
type MockEntryService struct {
	mock.Mock
}

func (m *MockEntryService) GetEntry(ctx context.Context, entryID int64) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockEntryService) GeneralLedger(ctx context.Context, companyID, fiscalYearID int64, accountNumber string) (*domain.GeneralLedger, error) {
	args := m.Called(ctx, companyID, fiscalYearID, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GeneralLedger), args.Error(1)
}

func (m *MockEntryService) ListEntries(ctx context.Context, companyID, fiscalYearID int64, filter domain.EntryFilter) ([]domain.EntrySummary, error) {
	args := m.Called(ctx, companyID, fiscalYearID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EntrySummary), args.Error(1)
}

func (m *MockEntryService) ValidateEntry(ctx context.Context, fiscalYearID int64, candidate accounting.EntryCandidate) (domain.ValidationResult, error) {
	args := m.Called(ctx, fiscalYearID, candidate)
	return args.Get(0).(domain.ValidationResult), args.Error(1)
}

func (m *MockEntryService) CreateEntry(ctx context.Context, req dto.CreateEntryRequest, actor domain.Actor) (*domain.JournalEntry, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockEntryService) CreateSalesEntry(ctx context.Context, req dto.InvoiceEntryRequest, actor domain.Actor) (*domain.JournalEntry, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockEntryService) CreatePurchaseEntry(ctx context.Context, req dto.InvoiceEntryRequest, actor domain.Actor) (*domain.JournalEntry, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

var _ portssvc.EntrySvcFacade = (*MockEntryService)(nil)

// --- Mock ReconciliationService ---
type MockReconciliationService struct {
	mock.Mock
}

func (m *MockReconciliationService) Reconcile(ctx context.Context, movementIDs []int64, code string, actor domain.Actor) (*domain.ReconciliationResult, error) {
	args := m.Called(ctx, movementIDs, code, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReconciliationResult), args.Error(1)
}

func (m *MockReconciliationService) AutoReconcile(ctx context.Context, scope domain.ReconciliationScope, actor domain.Actor) (*domain.AutoReconciliationResult, error) {
	args := m.Called(ctx, scope, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AutoReconciliationResult), args.Error(1)
}

func (m *MockReconciliationService) Unreconcile(ctx context.Context, code string, actor domain.Actor) (*domain.UnreconciliationResult, error) {
	args := m.Called(ctx, code, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UnreconciliationResult), args.Error(1)
}

func (m *MockReconciliationService) ListUnreconciled(ctx context.Context, scope domain.ReconciliationScope) ([]domain.LedgerLine, error) {
	args := m.Called(ctx, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerLine), args.Error(1)
}

func (m *MockReconciliationService) ListGroups(ctx context.Context, companyID, fiscalYearID int64, accountNumber string) ([]domain.ReconciliationGroup, error) {
	args := m.Called(ctx, companyID, fiscalYearID, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReconciliationGroup), args.Error(1)
}

var _ portssvc.ReconciliationService = (*MockReconciliationService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) ComputeBalance(ctx context.Context, companyID, fiscalYearID int64, actor domain.Actor) (*domain.TrialBalance, error) {
	args := m.Called(ctx, companyID, fiscalYearID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrialBalance), args.Error(1)
}

func (m *MockReportingService) GetBalance(ctx context.Context, companyID, fiscalYearID int64) (*domain.TrialBalance, error) {
	args := m.Called(ctx, companyID, fiscalYearID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrialBalance), args.Error(1)
}

func (m *MockReportingService) IncomeStatement(ctx context.Context, companyID, fiscalYearID int64) (*domain.IncomeStatement, error) {
	args := m.Called(ctx, companyID, fiscalYearID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IncomeStatement), args.Error(1)
}

func (m *MockReportingService) BalanceSheet(ctx context.Context, companyID, fiscalYearID int64) (*domain.BalanceSheet, error) {
	args := m.Called(ctx, companyID, fiscalYearID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceSheet), args.Error(1)
}

func (m *MockReportingService) VATRecap(ctx context.Context, companyID, fiscalYearID int64) (*domain.VATRecap, error) {
	args := m.Called(ctx, companyID, fiscalYearID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VATRecap), args.Error(1)
}

var _ portssvc.ReportingService = (*MockReportingService)(nil)

// --- Mock ClosingService ---
type MockClosingService struct {
	mock.Mock
}

func (m *MockClosingService) CloseFiscalYear(ctx context.Context, companyID, fiscalYearID int64, actor domain.Actor) (*domain.ClosingResult, error) {
	args := m.Called(ctx, companyID, fiscalYearID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClosingResult), args.Error(1)
}

func (m *MockClosingService) ExportFEC(ctx context.Context, companyID, fiscalYearID int64, actor domain.Actor) ([]domain.FECRecord, error) {
	args := m.Called(ctx, companyID, fiscalYearID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FECRecord), args.Error(1)
}

func (m *MockClosingService) RunConsistencyChecks(ctx context.Context, companyID, fiscalYearID int64) ([]domain.ConsistencyCheck, error) {
	args := m.Called(ctx, companyID, fiscalYearID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ConsistencyCheck), args.Error(1)
}

var _ portssvc.ClosingService = (*MockClosingService)(nil)

// --- Mock CompanyService ---
type MockCompanyService struct {
	mock.Mock
}

func (m *MockCompanyService) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Company), args.Error(1)
}

func (m *MockCompanyService) GetCompany(ctx context.Context, companyID int64) (*domain.Company, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockCompanyService) ListFiscalYears(ctx context.Context, companyID int64) ([]domain.FiscalYear, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FiscalYear), args.Error(1)
}

func (m *MockCompanyService) CurrentFiscalYear(ctx context.Context, companyID int64, at time.Time) (*domain.FiscalYear, error) {
	args := m.Called(ctx, companyID, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalYear), args.Error(1)
}

func (m *MockCompanyService) ListJournals(ctx context.Context, companyID int64) ([]domain.Journal, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Journal), args.Error(1)
}

var _ portssvc.CompanyService = (*MockCompanyService)(nil)

// --- Mock ThirdPartyService ---
type MockThirdPartyService struct {
	mock.Mock
}

func (m *MockThirdPartyService) ListThirdParties(ctx context.Context, companyID int64, kind domain.ThirdPartyKind) ([]domain.ThirdParty, error) {
	args := m.Called(ctx, companyID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ThirdParty), args.Error(1)
}

func (m *MockThirdPartyService) GetThirdParty(ctx context.Context, companyID, thirdPartyID int64) (*domain.ThirdParty, error) {
	args := m.Called(ctx, companyID, thirdPartyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ThirdParty), args.Error(1)
}

func (m *MockThirdPartyService) CreateThirdParty(ctx context.Context, companyID int64, req dto.CreateThirdPartyRequest, actor domain.Actor) (*domain.ThirdParty, error) {
	args := m.Called(ctx, companyID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ThirdParty), args.Error(1)
}

func (m *MockThirdPartyService) UpdateThirdParty(ctx context.Context, companyID, thirdPartyID int64, req dto.UpdateThirdPartyRequest, actor domain.Actor) (*domain.ThirdParty, error) {
	args := m.Called(ctx, companyID, thirdPartyID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ThirdParty), args.Error(1)
}

func (m *MockThirdPartyService) DeleteThirdParty(ctx context.Context, companyID, thirdPartyID int64, actor domain.Actor) error {
	args := m.Called(ctx, companyID, thirdPartyID, actor)
	return args.Error(0)
}

var _ portssvc.ThirdPartySvcFacade = (*MockThirdPartyService)(nil)
