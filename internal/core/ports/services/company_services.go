package services

import (
	"context"
	"time"

	"github.com/SscSPs/compta_core/internal/core/domain"
	"github.com/SscSPs/compta_core/internal/dto"
)

// CompanyService browses companies and the books they own
type CompanyService interface {
	// ListCompanies returns every company ordered by name.
	ListCompanies(ctx context.Context) ([]domain.Company, error)

	// GetCompany retrieves one company.
	GetCompany(ctx context.Context, companyID int64) (*domain.Company, error)

	// ListFiscalYears returns the fiscal years of a company, most recent first.
	ListFiscalYears(ctx context.Context, companyID int64) ([]domain.FiscalYear, error)

	// CurrentFiscalYear returns the open fiscal year containing at.
	CurrentFiscalYear(ctx context.Context, companyID int64, at time.Time) (*domain.FiscalYear, error)

	// ListJournals returns the journals of a company ordered by code.
	ListJournals(ctx context.Context, companyID int64) ([]domain.Journal, error)
}

// ThirdPartyReaderSvc defines read operations on third parties
type ThirdPartyReaderSvc interface {
	// ListThirdParties returns the third parties of a company. An empty kind lists them all.
	ListThirdParties(ctx context.Context, companyID int64, kind domain.ThirdPartyKind) ([]domain.ThirdParty, error)

	// GetThirdParty retrieves a third party of a company.
	GetThirdParty(ctx context.Context, companyID, thirdPartyID int64) (*domain.ThirdParty, error)
}

// ThirdPartyWriterSvc defines write operations on third parties
type ThirdPartyWriterSvc interface {
	// CreateThirdParty adds a customer or supplier to a company.
	CreateThirdParty(ctx context.Context, companyID int64, req dto.CreateThirdPartyRequest, actor domain.Actor) (*domain.ThirdParty, error)

	// UpdateThirdParty renames or reclassifies a third party.
	UpdateThirdParty(ctx context.Context, companyID, thirdPartyID int64, req dto.UpdateThirdPartyRequest, actor domain.Actor) (*domain.ThirdParty, error)

	// DeleteThirdParty removes a third party no entry uses.
	DeleteThirdParty(ctx context.Context, companyID, thirdPartyID int64, actor domain.Actor) error
}

// ThirdPartySvcFacade combines all third-party service interfaces
type ThirdPartySvcFacade interface {
	ThirdPartyReaderSvc
	ThirdPartyWriterSvc
}
