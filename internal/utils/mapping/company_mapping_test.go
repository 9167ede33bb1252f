package mapping_test

import (
	"testing"

	"github.com/SscSPs/compta_core/internal/core/domain"
	"github.com/SscSPs/compta_core/internal/models"
	"github.com/SscSPs/compta_core/internal/utils/mapping"
	"github.com/stretchr/testify/assert"
)

func TestToDomainCompany_NullSiren(t *testing.T) {
	assert.Empty(t, mapping.ToDomainCompany(models.Company{CompanyID: 1, Name: "Atelier"}).Siren)

	siren := "552100554"
	assert.Equal(t, siren, mapping.ToDomainCompany(models.Company{CompanyID: 1, Siren: &siren}).Siren)
}

func TestThirdPartyMapping_KeepsKind(t *testing.T) {
	d := domain.ThirdParty{ThirdPartyID: 4, CompanyID: 1, Code: "C001", Name: "Dupont SA", Kind: domain.ThirdPartyClient}

	m := mapping.ToModelThirdParty(d)

	assert.Equal(t, "CLIENT", m.Kind)
	assert.Equal(t, d, mapping.ToDomainThirdParty(m))
}
