package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/compta_core/internal/apperrors"
	"github.com/SscSPs/compta_core/internal/core/domain"
	portssvc "github.com/SscSPs/compta_core/internal/core/ports/services"
	"github.com/SscSPs/compta_core/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	mockReportingRepo  *MockReportingRepository
	mockBalanceRepo    *MockBalanceRepository
	mockFiscalYearRepo *MockFiscalYearRepository
	service            portssvc.ReportingService
	ctx                context.Context
	actor              domain.Actor
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.mockBalanceRepo = new(MockBalanceRepository)
	suite.mockFiscalYearRepo = new(MockFiscalYearRepository)
	suite.service = services.NewReportingService(suite.mockReportingRepo, suite.mockBalanceRepo, suite.mockFiscalYearRepo)
	suite.ctx = context.Background()
	suite.actor = domain.Actor{UserID: "u-1", Role: domain.RoleAdmin}
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}

func totals(number string, nature domain.Nature, debit, credit string) domain.AccountTotals {
	return domain.AccountTotals{
		AccountNumber: number,
		AccountLabel:  "compte " + number,
		Nature:        nature,
		TotalDebit:    decimal.RequireFromString(debit),
		TotalCredit:   decimal.RequireFromString(credit),
	}
}

var sheetFilter = domain.AccountFilter{Classes: []string{"1", "2", "3", "4", "5"}}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_DebtorSupplierStaysInLiabilities() {
	suite.mockReportingRepo.On("FindAccountTotals", suite.ctx, int64(1), int64(10), sheetFilter).Return([]domain.AccountTotals{
		totals("512000", domain.NatureActif, "30", "0"),
		totals("401000", domain.NaturePassif, "30", "0"),
	}, nil).Once()

	sheet, err := suite.service.BalanceSheet(suite.ctx, 1, 10)

	suite.Require().NoError(err)
	suite.Require().Len(sheet.Liabilities, 1)
	supplier := sheet.Liabilities[0]
	suite.Equal("401000", supplier.AccountNumber)
	suite.True(supplier.Amount.Equal(decimal.NewFromInt(30)))
	suite.True(supplier.Unusual)
	suite.True(sheet.TotalLiabilities.Equal(decimal.NewFromInt(30)))
	suite.True(sheet.TotalAssets.Equal(decimal.NewFromInt(30)))
	suite.True(sheet.Balanced)
	suite.Empty(sheet.Warning)
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_SkipsZeroAndVATNatureAndWarnsOnImbalance() {
	suite.mockReportingRepo.On("FindAccountTotals", suite.ctx, int64(1), int64(10), sheetFilter).Return([]domain.AccountTotals{
		totals("512000", domain.NatureActif, "1200", "0"),
		totals("411000", domain.NatureActif, "50", "50"),
		totals("445800", domain.NatureTVA, "10", "0"),
		totals("101000", domain.NaturePassif, "0", "1000"),
	}, nil).Once()

	sheet, err := suite.service.BalanceSheet(suite.ctx, 1, 10)

	suite.Require().NoError(err)
	suite.Len(sheet.Assets, 1)
	suite.Len(sheet.Liabilities, 1)
	suite.False(sheet.Liabilities[0].Unusual)
	suite.True(sheet.Difference.Equal(decimal.NewFromInt(200)))
	suite.False(sheet.Balanced)
	suite.Contains(sheet.Warning, "200.00")
}

func (suite *ReportingServiceTestSuite) TestIncomeStatement() {
	suite.mockReportingRepo.On("FindAccountTotals", suite.ctx, int64(1), int64(10), domain.AccountFilter{Classes: []string{"6", "7"}}).
		Return([]domain.AccountTotals{
			totals("606000", domain.NatureCharge, "300", "20"),
			totals("707000", domain.NatureProduit, "0", "1000"),
			totals("708000", domain.NatureProduit, "10", "60"),
		}, nil).Once()

	report, err := suite.service.IncomeStatement(suite.ctx, 1, 10)

	suite.Require().NoError(err)
	suite.Len(report.Charges, 1)
	suite.Len(report.Produits, 2)
	suite.True(report.TotalCharges.Equal(decimal.NewFromInt(280)))
	suite.True(report.TotalProduits.Equal(decimal.NewFromInt(1050)))
	suite.True(report.Result.Equal(decimal.NewFromInt(770)))
}

func (suite *ReportingServiceTestSuite) TestIncomeStatement_NetCreditChargesAreReportedAsMagnitude() {
	suite.mockReportingRepo.On("FindAccountTotals", suite.ctx, int64(1), int64(10), domain.AccountFilter{Classes: []string{"6", "7"}}).
		Return([]domain.AccountTotals{
			totals("609000", domain.NatureCharge, "0", "50"),
			totals("707000", domain.NatureProduit, "0", "1000"),
		}, nil).Once()

	report, err := suite.service.IncomeStatement(suite.ctx, 1, 10)

	suite.Require().NoError(err)
	suite.True(report.Charges[0].Amount.Equal(decimal.NewFromInt(-50)))
	suite.True(report.TotalCharges.Equal(decimal.NewFromInt(50)))
	suite.True(report.TotalProduits.Equal(decimal.NewFromInt(1000)))
	suite.True(report.Result.Equal(decimal.NewFromInt(1050)))
}

func (suite *ReportingServiceTestSuite) TestVATRecap() {
	suite.mockReportingRepo.On("FindAccountTotals", suite.ctx, int64(1), int64(10), domain.AccountFilter{Prefix: "445"}).
		Return([]domain.AccountTotals{
			totals("445660", domain.NatureActif, "40", "0"),
			totals("445711", domain.NaturePassif, "0", "200"),
			totals("445800", domain.NatureTVA, "5", "0"),
		}, nil).Once()

	recap, err := suite.service.VATRecap(suite.ctx, 1, 10)

	suite.Require().NoError(err)
	suite.True(recap.Collected.Equal(decimal.NewFromInt(200)))
	suite.True(recap.Deductible.Equal(decimal.NewFromInt(40)))
	suite.True(recap.Payable.Equal(decimal.NewFromInt(160)))
	suite.Equal(domain.VATDeductible, recap.Lines[0].Kind)
	suite.Equal(domain.VATCollected, recap.Lines[1].Kind)
	suite.Equal(domain.VATOther, recap.Lines[2].Kind)
}

func (suite *ReportingServiceTestSuite) TestComputeBalance_ReplacesStoredBalance() {
	fy := &domain.FiscalYear{FiscalYearID: 10, CompanyID: 1, Year: 2024}
	suite.mockFiscalYearRepo.On("FindFiscalYearByID", suite.ctx, int64(10)).Return(fy, nil).Once()
	suite.mockReportingRepo.On("FindAccountTotals", suite.ctx, int64(1), int64(10), domain.AccountFilter{}).Return([]domain.AccountTotals{
		totals("411000", domain.NatureActif, "120", "0"),
		totals("707000", domain.NatureProduit, "0", "100"),
		totals("445710", domain.NaturePassif, "0", "20"),
	}, nil).Once()

	var stored []domain.BalanceLine
	suite.mockBalanceRepo.On("ReplaceBalance", suite.ctx, int64(1), int64(10), mock.Anything).
		Run(func(args mock.Arguments) { stored = args.Get(3).([]domain.BalanceLine) }).
		Return(nil).Once()

	tb, err := suite.service.ComputeBalance(suite.ctx, 1, 10, suite.actor)

	suite.Require().NoError(err)
	suite.Len(stored, 3)
	suite.True(stored[1].Solde.Equal(decimal.NewFromInt(-100)))
	suite.True(tb.TotalDebit.Equal(tb.TotalCredit))
	suite.WithinDuration(time.Now(), tb.ComputedAt, time.Minute)
}

func (suite *ReportingServiceTestSuite) TestComputeBalance_DelegatesToProcedure() {
	procedures := new(MockProcedureRepository)
	svc := services.NewReportingService(suite.mockReportingRepo, suite.mockBalanceRepo, suite.mockFiscalYearRepo,
		services.WithProcedureBalance(procedures))
	suite.mockFiscalYearRepo.On("FindFiscalYearByID", suite.ctx, int64(10)).
		Return(&domain.FiscalYear{FiscalYearID: 10, CompanyID: 1}, nil).Once()
	procedures.On("ComputeBalance", suite.ctx, int64(1), int64(10)).Return(nil).Once()
	suite.mockBalanceRepo.On("FindBalance", suite.ctx, int64(1), int64(10)).Return([]domain.BalanceLine{}, nil).Once()

	tb, err := svc.ComputeBalance(suite.ctx, 1, 10, suite.actor)

	suite.Require().NoError(err)
	suite.Empty(tb.Lines)
	procedures.AssertExpectations(suite.T())
	suite.mockReportingRepo.AssertNotCalled(suite.T(), "FindAccountTotals", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestComputeBalance_ReaderIsForbidden() {
	_, err := suite.service.ComputeBalance(suite.ctx, 1, 10, domain.Actor{UserID: "u-9", Role: domain.RoleReader})

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *ReportingServiceTestSuite) TestGetBalance_PropagatesRepositoryError() {
	suite.mockBalanceRepo.On("FindBalance", suite.ctx, int64(1), int64(10)).
		Return(nil, apperrors.NewPersistenceError("failed to query balance", assertErr)).Once()

	_, err := suite.service.GetBalance(suite.ctx, 1, 10)

	suite.ErrorIs(err, apperrors.ErrPersistence)
	suite.ErrorIs(err, assertErr)
}
