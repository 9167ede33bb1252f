package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/compta_core/internal/apperrors"
	"github.com/SscSPs/compta_core/internal/core/domain"
	portsrepo "github.com/SscSPs/compta_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/compta_core/internal/core/ports/services"
	"github.com/SscSPs/compta_core/internal/dto"
	"github.com/SscSPs/compta_core/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// entryService implements the EntrySvcFacade interface
type entryService struct {
	BaseService
	fiscalYearRepo portsrepo.FiscalYearReader
	journalRepo    portsrepo.JournalRepositoryFacade
	accountRepo    portsrepo.AccountReader
	ledgerRepo     portsrepo.LedgerReader
	limits         accounting.Limits
}

// EntryServiceOption is a functional option for configuring the entry service
type EntryServiceOption func(*entryService)

// WithEntryLimits sets the bounds enforced on new entries.
func WithEntryLimits(limits accounting.Limits) EntryServiceOption {
	return func(s *entryService) {
		s.limits = limits
	}
}

// WithEntryAuditRecorder sets the audit recorder of the entry service.
func WithEntryAuditRecorder(recorder portssvc.AuditRecorder) EntryServiceOption {
	return func(s *entryService) {
		s.Audit = recorder
	}
}

// NewEntryService creates a new journal entry service.
func NewEntryService(
	fiscalYearRepo portsrepo.FiscalYearReader,
	journalRepo portsrepo.JournalRepositoryFacade,
	accountRepo portsrepo.AccountReader,
	ledgerRepo portsrepo.LedgerReader,
	options ...EntryServiceOption,
) portssvc.EntrySvcFacade {
	svc := &entryService{
		fiscalYearRepo: fiscalYearRepo,
		journalRepo:    journalRepo,
		accountRepo:    accountRepo,
		ledgerRepo:     ledgerRepo,
		limits:         accounting.DefaultLimits(),
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.EntrySvcFacade = (*entryService)(nil)

// ValidateEntry checks a candidate against the bounds of a fiscal year. A
// failing candidate is not an error: the result carries the verdict.
func (s *entryService) ValidateEntry(ctx context.Context, fiscalYearID int64, candidate accounting.EntryCandidate) (domain.ValidationResult, error) {
	fy, err := s.fiscalYearRepo.FindFiscalYearByID(ctx, fiscalYearID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.ValidationResult{}, apperrors.NewNotFoundError("fiscal year %d not found", fiscalYearID)
		}
		s.LogError(ctx, err, "Failed to load fiscal year", slog.Int64("fiscal_year_id", fiscalYearID))
		return domain.ValidationResult{}, fmt.Errorf("failed to load fiscal year %d: %w", fiscalYearID, err)
	}
	return accounting.ValidateEntry(candidate, fy.StartDate, fy.EndDate, s.limits), nil
}

// CreateEntry validates, numbers and persists a free-form entry.
func (s *entryService) CreateEntry(ctx context.Context, req dto.CreateEntryRequest, actor domain.Actor) (entry *domain.JournalEntry, err error) {
	defer s.recoverOperation(ctx, "create entry", &err)

	if err := s.AuthorizeWrite(ctx, actor, "entry.create"); err != nil {
		return nil, err
	}
	s.RecordAudit(ctx, actor, "entry.create", req.CompanyID, map[string]any{
		"fiscal_year_id": req.FiscalYearID,
		"journal_id":     req.JournalID,
		"reference":      req.Reference,
		"lines":          len(req.Movements),
	})

	candidate, err := dto.ToCandidate(req.EntryHeader, req.Movements)
	if err != nil {
		return nil, err
	}
	return s.bookEntry(ctx, req.CompanyID, req.FiscalYearID, req.JournalID, candidate, actor)
}

// CreateSalesEntry books a customer invoice: the customer is debited the
// gross amount, revenue and collected VAT are credited.
func (s *entryService) CreateSalesEntry(ctx context.Context, req dto.InvoiceEntryRequest, actor domain.Actor) (entry *domain.JournalEntry, err error) {
	defer s.recoverOperation(ctx, "create sales entry", &err)

	if err := s.AuthorizeWrite(ctx, actor, "entry.create_sales"); err != nil {
		return nil, err
	}
	s.RecordAudit(ctx, actor, "entry.create_sales", req.CompanyID, invoiceAuditDetails(req))

	entryDate, vat, gross, err := s.prepareInvoice(req)
	if err != nil {
		return nil, err
	}
	vatAccount, err := s.vatAccount(ctx, req.CompanyID, accounting.CollectedVATAccount(req.VATRate), accounting.AccountVATCollected)
	if err != nil {
		return nil, err
	}

	customer := req.ThirdPartyID
	movements := []domain.Movement{
		{AccountNumber: accounting.AccountCustomers, ThirdPartyID: &customer, Label: req.Label, Debit: gross, Credit: decimal.Zero},
		{AccountNumber: accounting.AccountSales, Label: req.Label, Debit: decimal.Zero, Credit: req.NetAmount},
	}
	if vat.IsPositive() {
		movements = append(movements, domain.Movement{
			AccountNumber: vatAccount,
			Label:         accounting.VATLabel(req.VATRate, true),
			Debit:         decimal.Zero,
			Credit:        vat,
		})
	}

	candidate := accounting.EntryCandidate{Reference: req.Reference, Label: req.Label, EntryDate: entryDate, Movements: movements}
	entry, err = s.bookEntry(ctx, req.CompanyID, req.FiscalYearID, req.JournalID, candidate, actor)
	if err != nil {
		return nil, err
	}
	entry.Warnings = vatWarnings(req.VATRate)
	return entry, nil
}

// CreatePurchaseEntry books a supplier invoice: purchases and deductible VAT
// are debited, the supplier is credited the gross amount.
func (s *entryService) CreatePurchaseEntry(ctx context.Context, req dto.InvoiceEntryRequest, actor domain.Actor) (entry *domain.JournalEntry, err error) {
	defer s.recoverOperation(ctx, "create purchase entry", &err)

	if err := s.AuthorizeWrite(ctx, actor, "entry.create_purchase"); err != nil {
		return nil, err
	}
	s.RecordAudit(ctx, actor, "entry.create_purchase", req.CompanyID, invoiceAuditDetails(req))

	entryDate, vat, gross, err := s.prepareInvoice(req)
	if err != nil {
		return nil, err
	}
	vatAccount, err := s.vatAccount(ctx, req.CompanyID, accounting.DeductibleVATAccount(req.VATRate), accounting.AccountVATDeductible)
	if err != nil {
		return nil, err
	}

	supplier := req.ThirdPartyID
	movements := []domain.Movement{
		{AccountNumber: accounting.AccountPurchases, Label: req.Label, Debit: req.NetAmount, Credit: decimal.Zero},
	}
	if vat.IsPositive() {
		movements = append(movements, domain.Movement{
			AccountNumber: vatAccount,
			Label:         accounting.VATLabel(req.VATRate, false),
			Debit:         vat,
			Credit:        decimal.Zero,
		})
	}
	movements = append(movements, domain.Movement{
		AccountNumber: accounting.AccountSuppliers,
		ThirdPartyID:  &supplier,
		Label:         req.Label,
		Debit:         decimal.Zero,
		Credit:        gross,
	})

	candidate := accounting.EntryCandidate{Reference: req.Reference, Label: req.Label, EntryDate: entryDate, Movements: movements}
	entry, err = s.bookEntry(ctx, req.CompanyID, req.FiscalYearID, req.JournalID, candidate, actor)
	if err != nil {
		return nil, err
	}
	entry.Warnings = vatWarnings(req.VATRate)
	return entry, nil
}

// GetEntry retrieves an entry with its movements.
func (s *entryService) GetEntry(ctx context.Context, entryID int64) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("entry %d not found", entryID)
		}
		s.LogError(ctx, err, "Failed to retrieve entry", slog.Int64("entry_id", entryID))
		return nil, fmt.Errorf("failed to retrieve entry %d: %w", entryID, err)
	}
	return entry, nil
}

// GeneralLedger lists the movements of one account with a running solde.
func (s *entryService) GeneralLedger(ctx context.Context, companyID, fiscalYearID int64, accountNumber string) (*domain.GeneralLedger, error) {
	if _, err := loadFiscalYear(ctx, s.fiscalYearRepo, companyID, fiscalYearID); err != nil {
		return nil, err
	}
	account, err := s.findAccount(ctx, companyID, accountNumber)
	if err != nil {
		return nil, err
	}

	lines, err := s.ledgerRepo.FindAccountMovements(ctx, companyID, fiscalYearID, accountNumber)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve account movements",
			slog.Int64("company_id", companyID),
			slog.String("account_number", accountNumber))
		return nil, fmt.Errorf("failed to retrieve movements of account %s: %w", accountNumber, err)
	}

	ledger := &domain.GeneralLedger{
		AccountNumber: account.Number,
		AccountLabel:  account.Label,
		Lines:         make([]domain.LedgerLine, len(lines)),
		TotalDebit:    decimal.Zero,
		TotalCredit:   decimal.Zero,
	}
	running := decimal.Zero
	for i, l := range lines {
		l.Solde = l.Debit.Sub(l.Credit)
		running = running.Add(l.Solde)
		l.RunningSolde = running
		ledger.TotalDebit = ledger.TotalDebit.Add(l.Debit)
		ledger.TotalCredit = ledger.TotalCredit.Add(l.Credit)
		ledger.Lines[i] = l
	}
	ledger.Solde = running
	return ledger, nil
}

// ListEntries lists the entries of a fiscal year of the company.
func (s *entryService) ListEntries(ctx context.Context, companyID, fiscalYearID int64, filter domain.EntryFilter) ([]domain.EntrySummary, error) {
	if _, err := loadFiscalYear(ctx, s.fiscalYearRepo, companyID, fiscalYearID); err != nil {
		return nil, err
	}
	entries, err := s.journalRepo.ListEntries(ctx, companyID, fiscalYearID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list entries",
			slog.Int64("company_id", companyID),
			slog.Int64("fiscal_year_id", fiscalYearID))
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	return entries, nil
}

// bookEntry is shared by every entry-creating operation.
func (s *entryService) bookEntry(ctx context.Context, companyID, fiscalYearID, journalID int64, candidate accounting.EntryCandidate, actor domain.Actor) (*domain.JournalEntry, error) {
	fy, err := loadFiscalYear(ctx, s.fiscalYearRepo, companyID, fiscalYearID)
	if err != nil {
		return nil, err
	}
	if fy.Closed {
		return nil, apperrors.NewValidationError("fiscal year %d is closed", fy.Year)
	}

	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("journal %d not found", journalID)
		}
		return nil, fmt.Errorf("failed to load journal %d: %w", journalID, err)
	}
	if journal.CompanyID != companyID {
		return nil, apperrors.NewNotFoundError("journal %d not found for company %d", journalID, companyID)
	}

	res := accounting.ValidateEntry(candidate, fy.StartDate, fy.EndDate, s.limits)
	if !res.Valid {
		s.LogDebug(ctx, "Entry rejected",
			slog.String("rule", string(res.Rule)),
			slog.String("message", res.Message))
		return nil, apperrors.NewValidationError("%s", res.Message)
	}

	movements, err := s.resolveAccounts(ctx, companyID, candidate.Movements)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entry := domain.JournalEntry{
		CompanyID:    companyID,
		FiscalYearID: fiscalYearID,
		JournalID:    journalID,
		EntryDate:    domain.DateOnly(candidate.EntryDate),
		Reference:    candidate.Reference,
		Label:        candidate.Label,
		Validated:    true,
		Movements:    movements,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	saved, err := s.journalRepo.SaveEntry(ctx, entry, journal.Code, fy.Year)
	if err != nil {
		s.LogError(ctx, err, "Failed to save entry",
			slog.Int64("company_id", companyID),
			slog.String("journal_code", journal.Code),
			slog.String("reference", candidate.Reference))
		return nil, fmt.Errorf("failed to save entry: %w", err)
	}

	s.LogInfo(ctx, "Entry created successfully",
		slog.Int64("entry_id", saved.EntryID),
		slog.String("number", saved.Number),
		slog.Int("line_count", len(saved.Movements)))
	return saved, nil
}

// resolveAccounts fills the account IDs of the movements from their numbers.
func (s *entryService) resolveAccounts(ctx context.Context, companyID int64, movements []domain.Movement) ([]domain.Movement, error) {
	resolved := make([]domain.Movement, len(movements))
	for i, m := range movements {
		account, err := s.accountRepo.FindAccountByNumber(ctx, companyID, m.AccountNumber)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewValidationError("line %d: account %s does not exist", i+1, m.AccountNumber)
			}
			return nil, fmt.Errorf("failed to resolve account %s: %w", m.AccountNumber, err)
		}
		m.AccountID = account.AccountID
		resolved[i] = m
	}
	return resolved, nil
}

func (s *entryService) findAccount(ctx context.Context, companyID int64, number string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByNumber(ctx, companyID, number)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("account %s not found", number)
		}
		return nil, fmt.Errorf("failed to load account %s: %w", number, err)
	}
	return account, nil
}

// vatAccount returns the rate-specific VAT account when the chart has it, the
// generic one otherwise.
func (s *entryService) vatAccount(ctx context.Context, companyID int64, specific, generic string) (string, error) {
	if specific == generic {
		return generic, nil
	}
	_, err := s.accountRepo.FindAccountByNumber(ctx, companyID, specific)
	if err == nil {
		return specific, nil
	}
	if errors.Is(err, apperrors.ErrNotFound) {
		return generic, nil
	}
	return "", fmt.Errorf("failed to resolve VAT account %s: %w", specific, err)
}

// prepareInvoice checks the invoice amounts and splits the gross amount.
func (s *entryService) prepareInvoice(req dto.InvoiceEntryRequest) (time.Time, decimal.Decimal, decimal.Decimal, error) {
	entryDate, err := req.ParseEntryDate()
	if err != nil {
		return time.Time{}, decimal.Zero, decimal.Zero, err
	}
	if !req.NetAmount.IsPositive() {
		return time.Time{}, decimal.Zero, decimal.Zero, apperrors.NewValidationError("net amount must be positive, got %s", req.NetAmount.String())
	}
	if err := accounting.ValidateVATRate(req.VATRate); err != nil {
		return time.Time{}, decimal.Zero, decimal.Zero, err
	}
	vat, gross := accounting.SplitGross(req.NetAmount, req.VATRate)
	return entryDate, vat, gross, nil
}

// vatWarnings flags an invoice rate that is not a French rate. The entry is
// still booked.
func vatWarnings(rate decimal.Decimal) []string {
	if accounting.IsStandardVATRate(rate) {
		return nil
	}
	return []string{fmt.Sprintf("VAT rate %s is not a standard French rate", rate.String())}
}

func invoiceAuditDetails(req dto.InvoiceEntryRequest) map[string]any {
	return map[string]any{
		"fiscal_year_id": req.FiscalYearID,
		"journal_id":     req.JournalID,
		"third_party_id": req.ThirdPartyID,
		"reference":      req.Reference,
		"net_amount":     req.NetAmount.String(),
		"vat_rate":       req.VATRate.String(),
	}
}
