package domain

import "time"

// Company is the legal entity owning a chart, journals and fiscal years.
type Company struct {
	CompanyID int64     `json:"companyID"`
	Name      string    `json:"name"`
	Siren     string    `json:"siren,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ThirdPartyKind tells customers from suppliers.
type ThirdPartyKind string

const (
	ThirdPartyClient   ThirdPartyKind = "CLIENT"
	ThirdPartySupplier ThirdPartyKind = "FOURNISSEUR"
	ThirdPartyOther    ThirdPartyKind = "AUTRE"
)

// IsValid reports whether k is one of the known kinds.
func (k ThirdPartyKind) IsValid() bool {
	switch k {
	case ThirdPartyClient, ThirdPartySupplier, ThirdPartyOther:
		return true
	}
	return false
}

// ThirdParty (tiers) is a customer or supplier movements can point at. Its
// code is unique within the company.
type ThirdParty struct {
	ThirdPartyID int64          `json:"thirdPartyID"`
	CompanyID    int64          `json:"companyID"`
	Code         string         `json:"code"`
	Name         string         `json:"name"`
	Kind         ThirdPartyKind `json:"kind"`
}
