package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/compta_core/internal/core/domain"
	portsrepo "github.com/SscSPs/compta_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/compta_core/internal/core/ports/services"
	"github.com/SscSPs/compta_core/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	reportingRepo    portsrepo.ReportingRepository
	balanceRepo      portsrepo.BalanceRepository
	fiscalYearRepo   portsrepo.FiscalYearReader
	procedureRepo    portsrepo.ProcedureRepository
	useProcedure     bool
	tolerance        decimal.Decimal
	collectedPrefix  string
	deductiblePrefix string
	balanceLocks     *keyedMutex
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithReportingAuditRecorder sets the audit recorder of the reporting service.
func WithReportingAuditRecorder(recorder portssvc.AuditRecorder) ReportingServiceOption {
	return func(s *reportingService) {
		s.Audit = recorder
	}
}

// WithStatementTolerance sets the tolerance used to call a balance sheet balanced.
func WithStatementTolerance(tolerance decimal.Decimal) ReportingServiceOption {
	return func(s *reportingService) {
		s.tolerance = tolerance
	}
}

// WithVATPrefixes sets the account prefixes of collected and deductible VAT.
func WithVATPrefixes(collected, deductible string) ReportingServiceOption {
	return func(s *reportingService) {
		s.collectedPrefix = collected
		s.deductiblePrefix = deductible
	}
}

// WithProcedureBalance delegates balance computation to the calculer_balance procedure.
func WithProcedureBalance(repo portsrepo.ProcedureRepository) ReportingServiceOption {
	return func(s *reportingService) {
		s.procedureRepo = repo
		s.useProcedure = repo != nil
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(
	reportingRepo portsrepo.ReportingRepository,
	balanceRepo portsrepo.BalanceRepository,
	fiscalYearRepo portsrepo.FiscalYearReader,
	options ...ReportingServiceOption,
) portssvc.ReportingService {
	svc := &reportingService{
		reportingRepo:    reportingRepo,
		balanceRepo:      balanceRepo,
		fiscalYearRepo:   fiscalYearRepo,
		tolerance:        accounting.DefaultTolerance,
		collectedPrefix:  accounting.DefaultCollectedPrefix,
		deductiblePrefix: accounting.DefaultDeductiblePrefix,
		balanceLocks:     newKeyedMutex(),
	}

	// Apply all options
	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// ComputeBalance recomputes the trial balance from the movements and replaces
// the stored one. Computations of the same fiscal year never interleave.
func (s *reportingService) ComputeBalance(ctx context.Context, companyID, fiscalYearID int64, actor domain.Actor) (balance *domain.TrialBalance, err error) {
	defer s.recoverOperation(ctx, "compute balance", &err)

	if err := s.AuthorizeWrite(ctx, actor, "balance.compute"); err != nil {
		return nil, err
	}
	s.RecordAudit(ctx, actor, "balance.compute", companyID, map[string]any{"fiscal_year_id": fiscalYearID})

	if _, err := loadFiscalYear(ctx, s.fiscalYearRepo, companyID, fiscalYearID); err != nil {
		return nil, err
	}

	unlock := s.balanceLocks.Lock(fmt.Sprintf("%d:%d", companyID, fiscalYearID))
	defer unlock()

	if s.useProcedure {
		if err := s.procedureRepo.ComputeBalance(ctx, companyID, fiscalYearID); err != nil {
			s.LogError(ctx, err, "Balance procedure failed",
				slog.Int64("company_id", companyID),
				slog.Int64("fiscal_year_id", fiscalYearID))
			return nil, fmt.Errorf("failed to compute balance: %w", err)
		}
		return s.GetBalance(ctx, companyID, fiscalYearID)
	}

	totals, err := s.reportingRepo.FindAccountTotals(ctx, companyID, fiscalYearID, domain.AccountFilter{})
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve account totals",
			slog.Int64("company_id", companyID),
			slog.Int64("fiscal_year_id", fiscalYearID))
		return nil, fmt.Errorf("failed to retrieve account totals: %w", err)
	}

	now := time.Now().UTC()
	lines := make([]domain.BalanceLine, len(totals))
	for i, t := range totals {
		lines[i] = domain.BalanceLine{
			CompanyID:     companyID,
			FiscalYearID:  fiscalYearID,
			AccountID:     t.AccountID,
			AccountNumber: t.AccountNumber,
			AccountLabel:  t.AccountLabel,
			TotalDebit:    t.TotalDebit,
			TotalCredit:   t.TotalCredit,
			Solde:         t.Solde(),
			ComputedAt:    now,
		}
	}

	if err := s.balanceRepo.ReplaceBalance(ctx, companyID, fiscalYearID, lines); err != nil {
		s.LogError(ctx, err, "Failed to store balance",
			slog.Int64("company_id", companyID),
			slog.Int64("fiscal_year_id", fiscalYearID))
		return nil, fmt.Errorf("failed to store balance: %w", err)
	}

	s.LogInfo(ctx, "Balance computed successfully",
		slog.Int64("company_id", companyID),
		slog.Int64("fiscal_year_id", fiscalYearID),
		slog.Int("line_count", len(lines)))
	return newTrialBalance(companyID, fiscalYearID, lines), nil
}

// GetBalance reads the stored trial balance.
func (s *reportingService) GetBalance(ctx context.Context, companyID, fiscalYearID int64) (*domain.TrialBalance, error) {
	lines, err := s.balanceRepo.FindBalance(ctx, companyID, fiscalYearID)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve balance",
			slog.Int64("company_id", companyID),
			slog.Int64("fiscal_year_id", fiscalYearID))
		return nil, fmt.Errorf("failed to retrieve balance: %w", err)
	}
	return newTrialBalance(companyID, fiscalYearID, lines), nil
}

// IncomeStatement computes the compte de résultat: charges are net debits of
// class 6, produits net credits of class 7. Result is computed from the signed
// totals before they are reported as magnitudes.
func (s *reportingService) IncomeStatement(ctx context.Context, companyID, fiscalYearID int64) (*domain.IncomeStatement, error) {
	totals, err := s.reportingRepo.FindAccountTotals(ctx, companyID, fiscalYearID, domain.AccountFilter{Classes: []string{"6", "7"}})
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve income statement data",
			slog.Int64("company_id", companyID),
			slog.Int64("fiscal_year_id", fiscalYearID))
		return nil, fmt.Errorf("failed to retrieve income statement data: %w", err)
	}

	report := &domain.IncomeStatement{
		Charges:       []domain.StatementLine{},
		Produits:      []domain.StatementLine{},
		TotalCharges:  decimal.Zero,
		TotalProduits: decimal.Zero,
	}
	for _, t := range totals {
		switch t.Class() {
		case "6":
			amount := t.TotalDebit.Sub(t.TotalCredit)
			report.Charges = append(report.Charges, domain.StatementLine{AccountNumber: t.AccountNumber, AccountLabel: t.AccountLabel, Amount: amount})
			report.TotalCharges = report.TotalCharges.Add(amount)
		case "7":
			amount := t.TotalCredit.Sub(t.TotalDebit)
			report.Produits = append(report.Produits, domain.StatementLine{AccountNumber: t.AccountNumber, AccountLabel: t.AccountLabel, Amount: amount})
			report.TotalProduits = report.TotalProduits.Add(amount)
		}
	}
	report.Result = report.TotalProduits.Sub(report.TotalCharges)
	// Totals are reported as magnitudes, the result keeps its sign.
	report.TotalCharges = report.TotalCharges.Abs()
	report.TotalProduits = report.TotalProduits.Abs()

	s.LogInfo(ctx, "Income statement generated successfully",
		slog.Int64("company_id", companyID),
		slog.Int64("fiscal_year_id", fiscalYearID),
		slog.String("result", report.Result.StringFixed(2)))
	return report, nil
}

// BalanceSheet computes the bilan from classes 1 to 5. Actif accounts go to
// assets, passif accounts to liabilities, both at |solde|. An imbalance is
// reported as a warning: the result of the period is not in equity yet.
func (s *reportingService) BalanceSheet(ctx context.Context, companyID, fiscalYearID int64) (*domain.BalanceSheet, error) {
	totals, err := s.reportingRepo.FindAccountTotals(ctx, companyID, fiscalYearID, domain.AccountFilter{Classes: []string{"1", "2", "3", "4", "5"}})
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve balance sheet data",
			slog.Int64("company_id", companyID),
			slog.Int64("fiscal_year_id", fiscalYearID))
		return nil, fmt.Errorf("failed to retrieve balance sheet data: %w", err)
	}

	sheet := &domain.BalanceSheet{
		Assets:           []domain.BalanceSheetLine{},
		Liabilities:      []domain.BalanceSheetLine{},
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
	}
	for _, t := range totals {
		solde := t.Solde()
		if solde.Abs().LessThanOrEqual(accounting.ZeroSoldeThreshold) {
			continue
		}
		line := domain.BalanceSheetLine{
			AccountNumber: t.AccountNumber,
			AccountLabel:  t.AccountLabel,
			Class:         t.Class(),
			Nature:        t.Nature,
			Solde:         solde,
			Amount:        solde.Abs(),
			Unusual:       accounting.IsUnusualSolde(t.Nature, solde),
		}
		switch t.Nature {
		case domain.NatureActif:
			sheet.Assets = append(sheet.Assets, line)
			sheet.TotalAssets = sheet.TotalAssets.Add(line.Amount)
		case domain.NaturePassif:
			sheet.Liabilities = append(sheet.Liabilities, line)
			sheet.TotalLiabilities = sheet.TotalLiabilities.Add(line.Amount)
		}
	}

	sheet.Difference = sheet.TotalAssets.Sub(sheet.TotalLiabilities)
	sheet.Balanced = accounting.WithinTolerance(sheet.Difference, s.tolerance)
	if !sheet.Balanced {
		sheet.Warning = fmt.Sprintf("assets and liabilities differ by %s; the result of the period is not carried into equity before closing",
			sheet.Difference.StringFixed(2))
	}

	s.LogInfo(ctx, "Balance sheet generated successfully",
		slog.Int64("company_id", companyID),
		slog.Int64("fiscal_year_id", fiscalYearID),
		slog.Bool("balanced", sheet.Balanced))
	return sheet, nil
}

// VATRecap sums collected VAT (net credits) and deductible VAT (net debits)
// over the 445 accounts.
func (s *reportingService) VATRecap(ctx context.Context, companyID, fiscalYearID int64) (*domain.VATRecap, error) {
	totals, err := s.reportingRepo.FindAccountTotals(ctx, companyID, fiscalYearID, domain.AccountFilter{Prefix: accounting.VATAccountsPrefix})
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve VAT data",
			slog.Int64("company_id", companyID),
			slog.Int64("fiscal_year_id", fiscalYearID))
		return nil, fmt.Errorf("failed to retrieve VAT data: %w", err)
	}

	recap := &domain.VATRecap{
		Lines:      make([]domain.VATLine, 0, len(totals)),
		Collected:  decimal.Zero,
		Deductible: decimal.Zero,
	}
	for _, t := range totals {
		line := domain.VATLine{
			AccountNumber: t.AccountNumber,
			AccountLabel:  t.AccountLabel,
			Kind:          domain.VATOther,
			TotalDebit:    t.TotalDebit,
			TotalCredit:   t.TotalCredit,
			Solde:         t.Solde(),
		}
		switch {
		case strings.HasPrefix(t.AccountNumber, s.collectedPrefix):
			line.Kind = domain.VATCollected
			recap.Collected = recap.Collected.Add(t.TotalCredit.Sub(t.TotalDebit))
		case strings.HasPrefix(t.AccountNumber, s.deductiblePrefix):
			line.Kind = domain.VATDeductible
			recap.Deductible = recap.Deductible.Add(t.TotalDebit.Sub(t.TotalCredit))
		}
		recap.Lines = append(recap.Lines, line)
	}
	recap.Payable = recap.Collected.Sub(recap.Deductible)
	return recap, nil
}

func newTrialBalance(companyID, fiscalYearID int64, lines []domain.BalanceLine) *domain.TrialBalance {
	tb := &domain.TrialBalance{
		CompanyID:    companyID,
		FiscalYearID: fiscalYearID,
		Lines:        lines,
		TotalDebit:   decimal.Zero,
		TotalCredit:  decimal.Zero,
	}
	if tb.Lines == nil {
		tb.Lines = []domain.BalanceLine{}
	}
	for _, l := range lines {
		tb.TotalDebit = tb.TotalDebit.Add(l.TotalDebit)
		tb.TotalCredit = tb.TotalCredit.Add(l.TotalCredit)
		if l.ComputedAt.After(tb.ComputedAt) {
			tb.ComputedAt = l.ComputedAt
		}
	}
	return tb
}
