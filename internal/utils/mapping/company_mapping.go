package mapping

import (
	"github.com/SscSPs/compta_core/internal/core/domain"
	"github.com/SscSPs/compta_core/internal/models"
)

// ToDomainCompany converts a model Company to a domain Company
func ToDomainCompany(m models.Company) domain.Company {
	d := domain.Company{
		CompanyID: m.CompanyID,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
	}
	if m.Siren != nil {
		d.Siren = *m.Siren
	}
	return d
}

// ToModelThirdParty converts a domain ThirdParty to a model ThirdParty
func ToModelThirdParty(d domain.ThirdParty) models.ThirdParty {
	return models.ThirdParty{
		ThirdPartyID: d.ThirdPartyID,
		CompanyID:    d.CompanyID,
		Code:         d.Code,
		Name:         d.Name,
		Kind:         string(d.Kind),
	}
}

// ToDomainThirdParty converts a model ThirdParty to a domain ThirdParty
func ToDomainThirdParty(m models.ThirdParty) domain.ThirdParty {
	return domain.ThirdParty{
		ThirdPartyID: m.ThirdPartyID,
		CompanyID:    m.CompanyID,
		Code:         m.Code,
		Name:         m.Name,
		Kind:         domain.ThirdPartyKind(m.Kind),
	}
}
