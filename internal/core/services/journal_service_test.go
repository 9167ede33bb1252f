package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/compta_core/internal/apperrors"
	"github.com/SscSPs/compta_core/internal/core/domain"
	portssvc "github.com/SscSPs/compta_core/internal/core/ports/services"
	"github.com/SscSPs/compta_core/internal/core/services"
	"github.com/SscSPs/compta_core/internal/dto"
	"github.com/SscSPs/compta_core/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type EntryServiceTestSuite struct {
	suite.Suite
	mockFiscalYearRepo *MockFiscalYearRepository
	mockJournalRepo    *MockJournalRepository
	mockAccountRepo    *MockAccountRepository
	mockLedgerRepo     *MockLedgerRepository
	service            portssvc.EntrySvcFacade
	ctx                context.Context
	actor              domain.Actor
	fiscalYear         *domain.FiscalYear
	salesJournal       *domain.Journal
}

func (suite *EntryServiceTestSuite) SetupTest() {
	suite.mockFiscalYearRepo = new(MockFiscalYearRepository)
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.service = services.NewEntryService(
		suite.mockFiscalYearRepo,
		suite.mockJournalRepo,
		suite.mockAccountRepo,
		suite.mockLedgerRepo,
	)
	suite.ctx = context.Background()
	suite.actor = domain.Actor{UserID: "u-1", Role: domain.RoleAccountant}
	suite.fiscalYear = &domain.FiscalYear{
		FiscalYearID: 10,
		CompanyID:    1,
		Year:         2024,
		StartDate:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
	}
	suite.salesJournal = &domain.Journal{JournalID: 3, CompanyID: 1, Code: "VE", Label: "Ventes", Type: domain.JournalSales}
}

func TestEntryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(EntryServiceTestSuite))
}

func (suite *EntryServiceTestSuite) expectAccount(id int64, number string) {
	suite.mockAccountRepo.On("FindAccountByNumber", suite.ctx, int64(1), number).
		Return(&domain.Account{AccountID: id, CompanyID: 1, Number: number}, nil)
}

func (suite *EntryServiceTestSuite) createRequest(debit, credit string) dto.CreateEntryRequest {
	return dto.CreateEntryRequest{
		CompanyID:    1,
		FiscalYearID: 10,
		JournalID:    3,
		EntryHeader:  dto.EntryHeader{Reference: "FA-001", Label: "Facture client", EntryDate: "2024-03-15"},
		Movements: []dto.MovementRequest{
			{AccountNumber: "411000", Debit: decimal.RequireFromString(debit)},
			{AccountNumber: "707000", Credit: decimal.RequireFromString(credit)},
		},
	}
}

func (suite *EntryServiceTestSuite) TestValidateEntry_BalancedAndUnbalanced() {
	suite.mockFiscalYearRepo.On("FindFiscalYearByID", suite.ctx, int64(10)).Return(suite.fiscalYear, nil)
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	balanced := accounting.EntryCandidate{Reference: "R1", Label: "Vente", EntryDate: date, Movements: []domain.Movement{
		{AccountNumber: "411000", Debit: decimal.NewFromInt(100), Credit: decimal.Zero},
		{AccountNumber: "707000", Debit: decimal.Zero, Credit: decimal.NewFromInt(100)},
	}}
	unbalanced := balanced
	unbalanced.Movements = []domain.Movement{
		{AccountNumber: "411000", Debit: decimal.NewFromInt(100), Credit: decimal.Zero},
		{AccountNumber: "707000", Debit: decimal.Zero, Credit: decimal.NewFromInt(50)},
	}

	ok, err := suite.service.ValidateEntry(suite.ctx, 10, balanced)
	suite.Require().NoError(err)
	suite.True(ok.Valid)

	ko, err := suite.service.ValidateEntry(suite.ctx, 10, unbalanced)
	suite.Require().NoError(err)
	suite.False(ko.Valid)
	suite.Equal(domain.RuleBalance, ko.Rule)
	suite.Contains(ko.Message, "unbalanced")
}

func (suite *EntryServiceTestSuite) TestValidateEntry_UnknownFiscalYear() {
	suite.mockFiscalYearRepo.On("FindFiscalYearByID", suite.ctx, int64(99)).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ValidateEntry(suite.ctx, 99, accounting.EntryCandidate{})

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *EntryServiceTestSuite) TestCreateEntry_Success() {
	suite.mockFiscalYearRepo.On("FindFiscalYearByID", suite.ctx, int64(10)).Return(suite.fiscalYear, nil).Once()
	suite.mockJournalRepo.On("FindJournalByID", suite.ctx, int64(3)).Return(suite.salesJournal, nil).Once()
	suite.expectAccount(21, "411000")
	suite.expectAccount(22, "707000")

	var saved domain.JournalEntry
	suite.mockJournalRepo.On("SaveEntry", suite.ctx, mock.AnythingOfType("domain.JournalEntry"), "VE", 2024).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.JournalEntry) }).
		Return(&domain.JournalEntry{EntryID: 500, Number: "VE-2024-00001"}, nil).Once()

	entry, err := suite.service.CreateEntry(suite.ctx, suite.createRequest("100", "100"), suite.actor)

	suite.Require().NoError(err)
	suite.Equal("VE-2024-00001", entry.Number)
	suite.Require().Len(saved.Movements, 2)
	suite.Equal(int64(21), saved.Movements[0].AccountID)
	suite.Equal(int64(22), saved.Movements[1].AccountID)
	suite.True(saved.Validated)
	suite.Equal("u-1", saved.CreatedBy)
	suite.Equal(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), saved.EntryDate)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *EntryServiceTestSuite) TestCreateEntry_UnbalancedIsRejectedBeforeSave() {
	suite.mockFiscalYearRepo.On("FindFiscalYearByID", suite.ctx, int64(10)).Return(suite.fiscalYear, nil).Once()
	suite.mockJournalRepo.On("FindJournalByID", suite.ctx, int64(3)).Return(suite.salesJournal, nil).Once()

	_, err := suite.service.CreateEntry(suite.ctx, suite.createRequest("100", "50"), suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(apperrors.Message(err), "off by 50.00")
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *EntryServiceTestSuite) TestCreateEntry_ClosedFiscalYear() {
	closed := *suite.fiscalYear
	closed.Closed = true
	suite.mockFiscalYearRepo.On("FindFiscalYearByID", suite.ctx, int64(10)).Return(&closed, nil).Once()

	_, err := suite.service.CreateEntry(suite.ctx, suite.createRequest("100", "100"), suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(apperrors.Message(err), "closed")
}

func (suite *EntryServiceTestSuite) TestCreateEntry_FiscalYearOfAnotherCompany() {
	other := *suite.fiscalYear
	other.CompanyID = 2
	suite.mockFiscalYearRepo.On("FindFiscalYearByID", suite.ctx, int64(10)).Return(&other, nil).Once()

	_, err := suite.service.CreateEntry(suite.ctx, suite.createRequest("100", "100"), suite.actor)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *EntryServiceTestSuite) TestCreateEntry_UnknownAccount() {
	suite.mockFiscalYearRepo.On("FindFiscalYearByID", suite.ctx, int64(10)).Return(suite.fiscalYear, nil).Once()
	suite.mockJournalRepo.On("FindJournalByID", suite.ctx, int64(3)).Return(suite.salesJournal, nil).Once()
	suite.expectAccount(21, "411000")
	suite.mockAccountRepo.On("FindAccountByNumber", suite.ctx, int64(1), "707000").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateEntry(suite.ctx, suite.createRequest("100", "100"), suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Equal("line 2: account 707000 does not exist", apperrors.Message(err))
}

func (suite *EntryServiceTestSuite) TestCreateEntry_ReaderIsForbidden() {
	_, err := suite.service.CreateEntry(suite.ctx, suite.createRequest("100", "100"), domain.Actor{UserID: "u-3", Role: domain.RoleReader})

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockFiscalYearRepo.AssertNotCalled(suite.T(), "FindFiscalYearByID", mock.Anything, mock.Anything)
}

func (suite *EntryServiceTestSuite) TestCreateEntry_RepositoryPanicBecomesInternalError() {
	suite.mockFiscalYearRepo.On("FindFiscalYearByID", suite.ctx, int64(10)).Return(suite.fiscalYear, nil).Once()
	suite.mockJournalRepo.On("FindJournalByID", suite.ctx, int64(3)).
		Panic("driver exploded").Once()

	entry, err := suite.service.CreateEntry(suite.ctx, suite.createRequest("100", "100"), suite.actor)

	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrInternal)
}

func (suite *EntryServiceTestSuite) TestCreateSalesEntry_SplitsVAT() {
	suite.mockFiscalYearRepo.On("FindFiscalYearByID", suite.ctx, int64(10)).Return(suite.fiscalYear, nil).Once()
	suite.mockJournalRepo.On("FindJournalByID", suite.ctx, int64(3)).Return(suite.salesJournal, nil).Once()
	suite.expectAccount(21, "411000")
	suite.expectAccount(22, "707000")
	suite.mockAccountRepo.On("FindAccountByNumber", suite.ctx, int64(1), "445711").Return(nil, apperrors.ErrNotFound)
	suite.expectAccount(23, "445710")

	var saved domain.JournalEntry
	suite.mockJournalRepo.On("SaveEntry", suite.ctx, mock.AnythingOfType("domain.JournalEntry"), "VE", 2024).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.JournalEntry) }).
		Return(&domain.JournalEntry{EntryID: 501, Number: "VE-2024-00002"}, nil).Once()

	req := dto.InvoiceEntryRequest{
		CompanyID:    1,
		FiscalYearID: 10,
		JournalID:    3,
		ThirdPartyID: 42,
		EntryHeader:  dto.EntryHeader{Reference: "FA-002", Label: "Vente marchandises", EntryDate: "2024-04-02"},
		NetAmount:    decimal.RequireFromString("1000"),
		VATRate:      accounting.VATRateNormal,
	}
	_, err := suite.service.CreateSalesEntry(suite.ctx, req, suite.actor)

	suite.Require().NoError(err)
	suite.Require().Len(saved.Movements, 3)
	suite.Equal("411000", saved.Movements[0].AccountNumber)
	suite.True(saved.Movements[0].Debit.Equal(decimal.RequireFromString("1200")))
	suite.Equal(int64(42), *saved.Movements[0].ThirdPartyID)
	suite.True(saved.Movements[1].Credit.Equal(decimal.RequireFromString("1000")))
	suite.Equal("445710", saved.Movements[2].AccountNumber)
	suite.True(saved.Movements[2].Credit.Equal(decimal.RequireFromString("200")))
}

func (suite *EntryServiceTestSuite) TestCreatePurchaseEntry_ZeroRateHasNoVATLine() {
	purchases := &domain.Journal{JournalID: 4, CompanyID: 1, Code: "AC", Type: domain.JournalPurchases}
	suite.mockFiscalYearRepo.On("FindFiscalYearByID", suite.ctx, int64(10)).Return(suite.fiscalYear, nil).Once()
	suite.mockJournalRepo.On("FindJournalByID", suite.ctx, int64(4)).Return(purchases, nil).Once()
	suite.expectAccount(31, "606000")
	suite.expectAccount(32, "401000")

	var saved domain.JournalEntry
	suite.mockJournalRepo.On("SaveEntry", suite.ctx, mock.AnythingOfType("domain.JournalEntry"), "AC", 2024).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.JournalEntry) }).
		Return(&domain.JournalEntry{EntryID: 502, Number: "AC-2024-00001"}, nil).Once()

	req := dto.InvoiceEntryRequest{
		CompanyID:    1,
		FiscalYearID: 10,
		JournalID:    4,
		ThirdPartyID: 7,
		EntryHeader:  dto.EntryHeader{Reference: "FF-9", Label: "Fournitures", EntryDate: "2024-05-10"},
		NetAmount:    decimal.RequireFromString("80"),
		VATRate:      decimal.Zero,
	}
	_, err := suite.service.CreatePurchaseEntry(suite.ctx, req, suite.actor)

	suite.Require().NoError(err)
	suite.Require().Len(saved.Movements, 2)
	suite.Equal("606000", saved.Movements[0].AccountNumber)
	suite.Equal("401000", saved.Movements[1].AccountNumber)
	suite.True(saved.Movements[1].Credit.Equal(decimal.RequireFromString("80")))
}

func (suite *EntryServiceTestSuite) TestCreatePurchaseEntry_NonStandardRateIsBookedWithWarning() {
	purchases := &domain.Journal{JournalID: 4, CompanyID: 1, Code: "AC", Type: domain.JournalPurchases}
	suite.mockFiscalYearRepo.On("FindFiscalYearByID", suite.ctx, int64(10)).Return(suite.fiscalYear, nil).Once()
	suite.mockJournalRepo.On("FindJournalByID", suite.ctx, int64(4)).Return(purchases, nil).Once()
	suite.expectAccount(31, "606000")
	suite.expectAccount(33, "445660")
	suite.expectAccount(32, "401000")
	suite.mockJournalRepo.On("SaveEntry", suite.ctx, mock.AnythingOfType("domain.JournalEntry"), "AC", 2024).
		Return(&domain.JournalEntry{EntryID: 503, Number: "AC-2024-00002"}, nil).Once()

	req := dto.InvoiceEntryRequest{
		CompanyID:    1,
		FiscalYearID: 10,
		JournalID:    4,
		ThirdPartyID: 7,
		EntryHeader:  dto.EntryHeader{Reference: "FF-10", Label: "Import", EntryDate: "2024-05-12"},
		NetAmount:    decimal.RequireFromString("100"),
		VATRate:      decimal.RequireFromString("0.07"),
	}
	entry, err := suite.service.CreatePurchaseEntry(suite.ctx, req, suite.actor)

	suite.Require().NoError(err)
	suite.Require().Len(entry.Warnings, 1)
	suite.Contains(entry.Warnings[0], "0.07 is not a standard French rate")
}

func (suite *EntryServiceTestSuite) TestCreateSalesEntry_StandardRateHasNoWarning() {
	suite.mockFiscalYearRepo.On("FindFiscalYearByID", suite.ctx, int64(10)).Return(suite.fiscalYear, nil).Once()
	suite.mockJournalRepo.On("FindJournalByID", suite.ctx, int64(3)).Return(suite.salesJournal, nil).Once()
	suite.expectAccount(21, "411000")
	suite.expectAccount(22, "707000")
	suite.expectAccount(24, "445712")
	suite.mockJournalRepo.On("SaveEntry", suite.ctx, mock.AnythingOfType("domain.JournalEntry"), "VE", 2024).
		Return(&domain.JournalEntry{EntryID: 504, Number: "VE-2024-00003"}, nil).Once()

	req := dto.InvoiceEntryRequest{
		CompanyID:    1,
		FiscalYearID: 10,
		JournalID:    3,
		ThirdPartyID: 42,
		EntryHeader:  dto.EntryHeader{Reference: "FA-003", Label: "Prestation", EntryDate: "2024-04-03"},
		NetAmount:    decimal.RequireFromString("50"),
		VATRate:      accounting.VATRateIntermediate,
	}
	entry, err := suite.service.CreateSalesEntry(suite.ctx, req, suite.actor)

	suite.Require().NoError(err)
	suite.Empty(entry.Warnings)
}

func (suite *EntryServiceTestSuite) TestCreateSalesEntry_RejectsNonPositiveNet() {
	req := dto.InvoiceEntryRequest{
		CompanyID:   1,
		EntryHeader: dto.EntryHeader{Reference: "FA-3", Label: "Vente", EntryDate: "2024-04-02"},
		NetAmount:   decimal.Zero,
		VATRate:     accounting.VATRateNormal,
	}

	_, err := suite.service.CreateSalesEntry(suite.ctx, req, suite.actor)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *EntryServiceTestSuite) TestGeneralLedger_RunningSolde() {
	suite.mockFiscalYearRepo.On("FindFiscalYearByID", suite.ctx, int64(10)).Return(suite.fiscalYear, nil).Once()
	suite.mockAccountRepo.On("FindAccountByNumber", suite.ctx, int64(1), "512000").
		Return(&domain.Account{AccountID: 5, Number: "512000", Label: "Banque"}, nil).Once()
	suite.mockLedgerRepo.On("FindAccountMovements", suite.ctx, int64(1), int64(10), "512000").Return([]domain.LedgerLine{
		{MovementID: 1, Debit: decimal.NewFromInt(500), Credit: decimal.Zero},
		{MovementID: 2, Debit: decimal.Zero, Credit: decimal.NewFromInt(120)},
		{MovementID: 3, Debit: decimal.NewFromInt(20), Credit: decimal.Zero},
	}, nil).Once()

	ledger, err := suite.service.GeneralLedger(suite.ctx, 1, 10, "512000")

	suite.Require().NoError(err)
	suite.Equal("Banque", ledger.AccountLabel)
	suite.True(ledger.Lines[1].RunningSolde.Equal(decimal.NewFromInt(380)))
	suite.True(ledger.Solde.Equal(decimal.NewFromInt(400)))
	suite.True(ledger.TotalDebit.Equal(decimal.NewFromInt(520)))
	suite.True(ledger.TotalCredit.Equal(decimal.NewFromInt(120)))
}

func (suite *EntryServiceTestSuite) TestListEntries_FiltersByJournal() {
	journalID := int64(3)
	filter := domain.EntryFilter{JournalID: &journalID}
	suite.mockFiscalYearRepo.On("FindFiscalYearByID", suite.ctx, int64(10)).Return(suite.fiscalYear, nil).Once()
	suite.mockJournalRepo.On("ListEntries", suite.ctx, int64(1), int64(10), filter).Return([]domain.EntrySummary{
		{EntryID: 5, Number: "VE-000001", JournalID: 3, JournalCode: "VE", TotalDebit: decimal.RequireFromString("120"), TotalCredit: decimal.RequireFromString("120"), LineCount: 3},
	}, nil).Once()

	entries, err := suite.service.ListEntries(suite.ctx, 1, 10, filter)

	suite.Require().NoError(err)
	suite.Require().Len(entries, 1)
	suite.Equal("VE", entries[0].JournalCode)
}

func (suite *EntryServiceTestSuite) TestListEntries_FiscalYearOfAnotherCompanyIsNotFound() {
	suite.mockFiscalYearRepo.On("FindFiscalYearByID", suite.ctx, int64(10)).Return(suite.fiscalYear, nil).Once()

	_, err := suite.service.ListEntries(suite.ctx, 2, 10, domain.EntryFilter{})

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "ListEntries", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
