package dto

import (
	"time"

	"github.com/SscSPs/compta_core/internal/core/domain"
)

// ClassifyRequest asks whether a declared nature fits an account number.
type ClassifyRequest struct {
	AccountNumber string        `json:"accountNumber"`
	Nature        domain.Nature `json:"nature" binding:"required"`
}

// CreateAccountRequest defines the data needed to add an account to a chart.
type CreateAccountRequest struct {
	Number       string        `json:"number" binding:"required,pcg_account"`
	Label        string        `json:"label" binding:"required,max=255"`
	Nature       domain.Nature `json:"nature" binding:"required,oneof=actif passif charge produit tva"`
	Reconcilable bool          `json:"reconcilable"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID    int64         `json:"accountID"`
	CompanyID    int64         `json:"companyID"`
	Number       string        `json:"number"`
	Class        string        `json:"class"`
	Label        string        `json:"label"`
	Nature       domain.Nature `json:"nature"`
	Reconcilable bool          `json:"reconcilable"`
	CreatedAt    time.Time     `json:"createdAt"`
	CreatedBy    string        `json:"createdBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:    a.AccountID,
		CompanyID:    a.CompanyID,
		Number:       a.Number,
		Class:        a.Class(),
		Label:        a.Label,
		Nature:       a.Nature,
		Reconcilable: a.Reconcilable,
		CreatedAt:    a.CreatedAt,
		CreatedBy:    a.CreatedBy,
	}
}
