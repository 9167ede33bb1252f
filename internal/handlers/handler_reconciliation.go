package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/SscSPs/compta_core/internal/core/domain"
	portssvc "github.com/SscSPs/compta_core/internal/core/ports/services"
	"github.com/SscSPs/compta_core/internal/dto"
	"github.com/SscSPs/compta_core/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reconciliationHandler handles lettrage requests.
type reconciliationHandler struct {
	reconciliationService portssvc.ReconciliationService
}

func newReconciliationHandler(rs portssvc.ReconciliationService) *reconciliationHandler {
	return &reconciliationHandler{reconciliationService: rs}
}

func registerReconciliationRoutes(rg *gin.RouterGroup, scoped *gin.RouterGroup, reconciliationService portssvc.ReconciliationService) {
	h := newReconciliationHandler(reconciliationService)
	writers := middleware.RequireRole(domain.RoleAdmin, domain.RoleAccountant)

	reconciliations := rg.Group("/reconciliations", writers)
	{
		reconciliations.POST("", h.reconcile)
		reconciliations.POST("/auto", h.autoReconcile)
		reconciliations.DELETE("/:code", h.unreconcile)
	}

	scoped.GET("/accounts/:accountNumber/unreconciled", h.listUnreconciled)
	scoped.GET("/accounts/:accountNumber/groups", h.listGroups)
}

// reconcile godoc
// @Summary Reconcile movements
// @Description Assigns one code to a set of movements of one account whose solde is zero
// @Tags reconciliations
// @Accept  json
// @Produce  json
// @Param   request body dto.ReconcileRequest true "Movements and optional code"
// @Success 200 {object} dto.Result{data=domain.ReconciliationResult}
// @Failure 400 {object} dto.Result "Validation error"
// @Failure 409 {object} dto.Result "Movement already reconciled"
// @Failure 422 {object} dto.Result "Movements cannot be reconciled"
// @Security BearerAuth
// @Router /reconciliations [post]
func (h *reconciliationHandler) reconcile(c *gin.Context) {
	var req dto.ReconcileRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.reconciliationService.Reconcile(c.Request.Context(), req.MovementIDs, req.Code, middleware.ActorFromCtx(c.Request.Context()))
	if err != nil {
		respondError(c, err, "Failed to reconcile movements")
		return
	}
	c.JSON(http.StatusOK, dto.OK(res.Message, res))
}

// autoReconcile godoc
// @Summary Reconcile an account automatically
// @Description Pairs opposite movements of equal amount on one account
// @Tags reconciliations
// @Accept  json
// @Produce  json
// @Param   request body dto.AutoReconcileRequest true "Account scope"
// @Success 200 {object} dto.Result{data=domain.AutoReconciliationResult}
// @Failure 400 {object} dto.Result "Validation error"
// @Failure 422 {object} dto.Result "Account is not reconcilable"
// @Security BearerAuth
// @Router /reconciliations/auto [post]
func (h *reconciliationHandler) autoReconcile(c *gin.Context) {
	var req dto.AutoReconcileRequest
	if !bindJSON(c, &req) {
		return
	}
	scope := domain.ReconciliationScope{
		CompanyID:     req.CompanyID,
		FiscalYearID:  req.FiscalYearID,
		AccountNumber: req.AccountNumber,
		ThirdPartyID:  req.ThirdPartyID,
	}

	res, err := h.reconciliationService.AutoReconcile(c.Request.Context(), scope, middleware.ActorFromCtx(c.Request.Context()))
	if err != nil && res != nil {
		respondPartial(c, err, "Automatic reconciliation stopped", res.Message, res)
		return
	}
	if err != nil {
		respondError(c, err, "Automatic reconciliation failed")
		return
	}
	c.JSON(http.StatusOK, dto.OK(res.Message, res))
}

// unreconcile godoc
// @Summary Clear a reconciliation code
// @Tags reconciliations
// @Produce  json
// @Param   code path string true "Reconciliation code"
// @Success 200 {object} dto.Result{data=domain.UnreconciliationResult}
// @Failure 400 {object} dto.Result "Validation error"
// @Security BearerAuth
// @Router /reconciliations/{code} [delete]
func (h *reconciliationHandler) unreconcile(c *gin.Context) {
	res, err := h.reconciliationService.Unreconcile(c.Request.Context(), c.Param("code"), middleware.ActorFromCtx(c.Request.Context()))
	if err != nil {
		respondError(c, err, "Failed to clear reconciliation code")
		return
	}
	c.JSON(http.StatusOK, dto.OK(res.Message, res))
}

// listUnreconciled godoc
// @Summary Open movements of an account
// @Tags reconciliations
// @Produce  json
// @Param   companyID path int true "Company ID"
// @Param   fiscalYearID path int true "Fiscal year ID"
// @Param   accountNumber path string true "Account number"
// @Param   thirdPartyID query int false "Restrict to one third party"
// @Success 200 {object} dto.Result{data=[]domain.LedgerLine}
// @Security BearerAuth
// @Router /companies/{companyID}/fiscal-years/{fiscalYearID}/accounts/{accountNumber}/unreconciled [get]
func (h *reconciliationHandler) listUnreconciled(c *gin.Context) {
	companyID, fiscalYearID, ok := scopeParams(c)
	if !ok {
		return
	}
	scope := domain.ReconciliationScope{
		CompanyID:     companyID,
		FiscalYearID:  fiscalYearID,
		AccountNumber: c.Param("accountNumber"),
	}
	if raw := c.Query("thirdPartyID"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.Fail("invalid thirdPartyID: "+raw))
			return
		}
		scope.ThirdPartyID = &id
	}

	lines, err := h.reconciliationService.ListUnreconciled(c.Request.Context(), scope)
	if err != nil {
		respondError(c, err, "Failed to list unreconciled movements")
		return
	}
	c.JSON(http.StatusOK, dto.OK(fmt.Sprintf("%d unreconciled movement(s)", len(lines)), lines))
}

// listGroups godoc
// @Summary Reconciliation groups of an account
// @Tags reconciliations
// @Produce  json
// @Param   companyID path int true "Company ID"
// @Param   fiscalYearID path int true "Fiscal year ID"
// @Param   accountNumber path string true "Account number"
// @Success 200 {object} dto.Result{data=[]domain.ReconciliationGroup}
// @Security BearerAuth
// @Router /companies/{companyID}/fiscal-years/{fiscalYearID}/accounts/{accountNumber}/groups [get]
func (h *reconciliationHandler) listGroups(c *gin.Context) {
	companyID, fiscalYearID, ok := scopeParams(c)
	if !ok {
		return
	}

	groups, err := h.reconciliationService.ListGroups(c.Request.Context(), companyID, fiscalYearID, c.Param("accountNumber"))
	if err != nil {
		respondError(c, err, "Failed to list reconciliation groups")
		return
	}
	c.JSON(http.StatusOK, dto.OK(fmt.Sprintf("%d reconciliation group(s)", len(groups)), groups))
}
