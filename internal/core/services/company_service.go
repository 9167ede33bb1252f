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
)

// companyService implements the CompanyService interface
type companyService struct {
	BaseService
	companyRepo    portsrepo.CompanyReader
	fiscalYearRepo portsrepo.FiscalYearReader
	journalRepo    portsrepo.JournalReader
}

// NewCompanyService creates a new company browsing service.
func NewCompanyService(companyRepo portsrepo.CompanyReader, fiscalYearRepo portsrepo.FiscalYearReader, journalRepo portsrepo.JournalReader) portssvc.CompanyService {
	return &companyService{
		companyRepo:    companyRepo,
		fiscalYearRepo: fiscalYearRepo,
		journalRepo:    journalRepo,
	}
}

var _ portssvc.CompanyService = (*companyService)(nil)

func (s *companyService) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	companies, err := s.companyRepo.ListCompanies(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list companies")
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	return companies, nil
}

func (s *companyService) GetCompany(ctx context.Context, companyID int64) (*domain.Company, error) {
	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("company %d not found", companyID)
		}
		s.LogError(ctx, err, "Failed to load company", slog.Int64("company_id", companyID))
		return nil, fmt.Errorf("failed to load company %d: %w", companyID, err)
	}
	return company, nil
}

// ListFiscalYears checks the company exists so an unknown one is a 404, not an empty list.
func (s *companyService) ListFiscalYears(ctx context.Context, companyID int64) ([]domain.FiscalYear, error) {
	if _, err := s.GetCompany(ctx, companyID); err != nil {
		return nil, err
	}
	years, err := s.fiscalYearRepo.ListFiscalYears(ctx, companyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list fiscal years", slog.Int64("company_id", companyID))
		return nil, fmt.Errorf("failed to list fiscal years of company %d: %w", companyID, err)
	}
	return years, nil
}

// CurrentFiscalYear picks the open fiscal year whose bounds contain at.
func (s *companyService) CurrentFiscalYear(ctx context.Context, companyID int64, at time.Time) (*domain.FiscalYear, error) {
	years, err := s.ListFiscalYears(ctx, companyID)
	if err != nil {
		return nil, err
	}
	for i := range years {
		if !years[i].Closed && years[i].Contains(at) {
			return &years[i], nil
		}
	}
	return nil, apperrors.NewNotFoundError("no open fiscal year of company %d contains %s", companyID, at.Format(time.DateOnly))
}

func (s *companyService) ListJournals(ctx context.Context, companyID int64) ([]domain.Journal, error) {
	if _, err := s.GetCompany(ctx, companyID); err != nil {
		return nil, err
	}
	journals, err := s.journalRepo.ListJournals(ctx, companyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journals", slog.Int64("company_id", companyID))
		return nil, fmt.Errorf("failed to list journals of company %d: %w", companyID, err)
	}
	return journals, nil
}
