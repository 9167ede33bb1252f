package dto

import "github.com/SscSPs/compta_core/internal/core/domain"

// CreateThirdPartyRequest defines the data needed to add a customer or supplier.
type CreateThirdPartyRequest struct {
	Code string                `json:"code" binding:"required,max=20"`
	Name string                `json:"name" binding:"required,max=255"`
	Kind domain.ThirdPartyKind `json:"kind" binding:"required,oneof=CLIENT FOURNISSEUR AUTRE"`
}

// UpdateThirdPartyRequest rewrites a third party. The code cannot change.
type UpdateThirdPartyRequest struct {
	Name string                `json:"name" binding:"required,max=255"`
	Kind domain.ThirdPartyKind `json:"kind" binding:"required,oneof=CLIENT FOURNISSEUR AUTRE"`
}
