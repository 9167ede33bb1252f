package dto

// ReconcileRequest reconciles a set of movements. An empty code allocates the next one.
type ReconcileRequest struct {
	MovementIDs []int64 `json:"movementIDs" binding:"required,dive,gt=0"`
	Code        string  `json:"code" binding:"omitempty,len=2,alpha,uppercase"`
}

// AutoReconcileRequest runs automatic pairing on one account.
type AutoReconcileRequest struct {
	CompanyID     int64  `json:"companyID" binding:"required"`
	FiscalYearID  int64  `json:"fiscalYearID" binding:"required"`
	AccountNumber string `json:"accountNumber" binding:"required,pcg_account"`
	ThirdPartyID  *int64 `json:"thirdPartyID"`
}
