package handlers

import (
	"net/http"

	"github.com/SscSPs/compta_core/internal/core/domain"
	portssvc "github.com/SscSPs/compta_core/internal/core/ports/services"
	"github.com/SscSPs/compta_core/internal/dto"
	"github.com/SscSPs/compta_core/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles statement requests.
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

func registerReportingRoutes(scoped *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	scoped.POST("/balance/compute", middleware.RequireRole(domain.RoleAdmin, domain.RoleAccountant), h.computeBalance)
	scoped.GET("/balance", h.getBalance)
	scoped.GET("/income-statement", h.incomeStatement)
	scoped.GET("/balance-sheet", h.balanceSheet)
	scoped.GET("/vat-recap", h.vatRecap)
}

// computeBalance godoc
// @Summary Recompute the trial balance
// @Description Replaces the stored balance of a fiscal year with fresh totals
// @Tags reporting
// @Produce  json
// @Param   companyID path int true "Company ID"
// @Param   fiscalYearID path int true "Fiscal year ID"
// @Success 200 {object} dto.Result{data=dto.TrialBalanceResponse}
// @Failure 403 {object} dto.Result "Insufficient role"
// @Failure 404 {object} dto.Result "Fiscal year not found"
// @Security BearerAuth
// @Router /companies/{companyID}/fiscal-years/{fiscalYearID}/balance/compute [post]
func (h *reportingHandler) computeBalance(c *gin.Context) {
	companyID, fiscalYearID, ok := scopeParams(c)
	if !ok {
		return
	}

	tb, err := h.reportingService.ComputeBalance(c.Request.Context(), companyID, fiscalYearID, middleware.ActorFromCtx(c.Request.Context()))
	if err != nil {
		respondError(c, err, "Failed to compute balance")
		return
	}
	c.JSON(http.StatusOK, dto.OK("balance computed", dto.ToTrialBalanceResponse(tb)))
}

// getBalance godoc
// @Summary Read the stored trial balance
// @Tags reporting
// @Produce  json
// @Param   companyID path int true "Company ID"
// @Param   fiscalYearID path int true "Fiscal year ID"
// @Success 200 {object} dto.Result{data=dto.TrialBalanceResponse}
// @Security BearerAuth
// @Router /companies/{companyID}/fiscal-years/{fiscalYearID}/balance [get]
func (h *reportingHandler) getBalance(c *gin.Context) {
	companyID, fiscalYearID, ok := scopeParams(c)
	if !ok {
		return
	}

	tb, err := h.reportingService.GetBalance(c.Request.Context(), companyID, fiscalYearID)
	if err != nil {
		respondError(c, err, "Failed to get balance")
		return
	}
	c.JSON(http.StatusOK, dto.OK("trial balance", dto.ToTrialBalanceResponse(tb)))
}

// incomeStatement godoc
// @Summary Income statement
// @Description Compte de résultat computed from classes 6 and 7
// @Tags reporting
// @Produce  json
// @Param   companyID path int true "Company ID"
// @Param   fiscalYearID path int true "Fiscal year ID"
// @Success 200 {object} dto.Result{data=domain.IncomeStatement}
// @Security BearerAuth
// @Router /companies/{companyID}/fiscal-years/{fiscalYearID}/income-statement [get]
func (h *reportingHandler) incomeStatement(c *gin.Context) {
	companyID, fiscalYearID, ok := scopeParams(c)
	if !ok {
		return
	}

	is, err := h.reportingService.IncomeStatement(c.Request.Context(), companyID, fiscalYearID)
	if err != nil {
		respondError(c, err, "Failed to compute income statement")
		return
	}
	c.JSON(http.StatusOK, dto.OK("result "+is.Result.StringFixed(2), is))
}

// balanceSheet godoc
// @Summary Balance sheet
// @Description Bilan computed from classes 1 to 5 by account nature
// @Tags reporting
// @Produce  json
// @Param   companyID path int true "Company ID"
// @Param   fiscalYearID path int true "Fiscal year ID"
// @Success 200 {object} dto.Result{data=domain.BalanceSheet}
// @Security BearerAuth
// @Router /companies/{companyID}/fiscal-years/{fiscalYearID}/balance-sheet [get]
func (h *reportingHandler) balanceSheet(c *gin.Context) {
	companyID, fiscalYearID, ok := scopeParams(c)
	if !ok {
		return
	}

	bs, err := h.reportingService.BalanceSheet(c.Request.Context(), companyID, fiscalYearID)
	if err != nil {
		respondError(c, err, "Failed to compute balance sheet")
		return
	}
	msg := "balance sheet is balanced"
	if !bs.Balanced {
		msg = bs.Warning
	}
	c.JSON(http.StatusOK, dto.OK(msg, bs))
}

// vatRecap godoc
// @Summary VAT recap
// @Tags reporting
// @Produce  json
// @Param   companyID path int true "Company ID"
// @Param   fiscalYearID path int true "Fiscal year ID"
// @Success 200 {object} dto.Result{data=domain.VATRecap}
// @Security BearerAuth
// @Router /companies/{companyID}/fiscal-years/{fiscalYearID}/vat-recap [get]
func (h *reportingHandler) vatRecap(c *gin.Context) {
	companyID, fiscalYearID, ok := scopeParams(c)
	if !ok {
		return
	}

	recap, err := h.reportingService.VATRecap(c.Request.Context(), companyID, fiscalYearID)
	if err != nil {
		respondError(c, err, "Failed to compute VAT recap")
		return
	}
	c.JSON(http.StatusOK, dto.OK("VAT payable "+recap.Payable.StringFixed(2), recap))
}
