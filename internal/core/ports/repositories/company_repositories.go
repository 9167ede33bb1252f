package repositories

import (
	"context"

	"github.com/SscSPs/compta_core/internal/core/domain"
)

// CompanyReader defines read operations for companies
type CompanyReader interface {
	// FindCompanyByID retrieves a company by its identifier.
	FindCompanyByID(ctx context.Context, companyID int64) (*domain.Company, error)

	// ListCompanies retrieves every company ordered by name.
	ListCompanies(ctx context.Context) ([]domain.Company, error)
}

// CompanyRepositoryFacade combines all company repository interfaces
type CompanyRepositoryFacade interface {
	CompanyReader
}

// ThirdPartyReader defines read operations for third parties (tiers)
type ThirdPartyReader interface {
	// FindThirdPartyByID retrieves a third party by its identifier.
	FindThirdPartyByID(ctx context.Context, thirdPartyID int64) (*domain.ThirdParty, error)

	// ListThirdParties retrieves the third parties of a company ordered by
	// code. An empty kind lists every kind.
	ListThirdParties(ctx context.Context, companyID int64, kind domain.ThirdPartyKind) ([]domain.ThirdParty, error)
}

// ThirdPartyWriter defines write operations for third parties
type ThirdPartyWriter interface {
	// SaveThirdParty inserts a third party and returns its new identifier.
	// A code already used in the company is apperrors.ErrDuplicate.
	SaveThirdParty(ctx context.Context, thirdParty domain.ThirdParty) (int64, error)

	// UpdateThirdParty rewrites the name and kind of a third party.
	UpdateThirdParty(ctx context.Context, thirdParty domain.ThirdParty) error

	// DeleteThirdParty removes a third party no movement points at. A third
	// party used in entries is apperrors.ErrConflict.
	DeleteThirdParty(ctx context.Context, thirdPartyID int64) error
}

// ThirdPartyRepositoryFacade combines all third-party repository interfaces
type ThirdPartyRepositoryFacade interface {
	ThirdPartyReader
	ThirdPartyWriter
}
