package models

import "time"

// Company represents a row of the companies table.
type Company struct {
	CompanyID int64     `db:"company_id"`
	Name      string    `db:"name"`
	Siren     *string   `db:"siren"` // Nullable
	CreatedAt time.Time `db:"created_at"`
}

// ThirdParty represents a row of the third_parties table.
type ThirdParty struct {
	ThirdPartyID int64  `db:"third_party_id"`
	CompanyID    int64  `db:"company_id"`
	Code         string `db:"code"`
	Name         string `db:"name"`
	Kind         string `db:"kind"`
}
