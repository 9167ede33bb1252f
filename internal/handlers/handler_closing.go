package handlers

import (
	"fmt"
	"net/http"

	"github.com/SscSPs/compta_core/internal/core/domain"
	portssvc "github.com/SscSPs/compta_core/internal/core/ports/services"
	"github.com/SscSPs/compta_core/internal/dto"
	"github.com/SscSPs/compta_core/internal/middleware"
	"github.com/gin-gonic/gin"
)

// closingHandler handles period-end requests.
type closingHandler struct {
	closingService portssvc.ClosingService
}

func newClosingHandler(cs portssvc.ClosingService) *closingHandler {
	return &closingHandler{closingService: cs}
}

func registerClosingRoutes(scoped *gin.RouterGroup, closingService portssvc.ClosingService) {
	h := newClosingHandler(closingService)

	scoped.POST("/close", middleware.RequireRole(domain.RoleAdmin, domain.RoleAccountant), h.closeFiscalYear)
	scoped.GET("/fec", h.exportFEC)
	scoped.GET("/checks", h.consistencyChecks)
}

// closeFiscalYear godoc
// @Summary Close a fiscal year
// @Tags closing
// @Produce  json
// @Param   companyID path int true "Company ID"
// @Param   fiscalYearID path int true "Fiscal year ID"
// @Success 200 {object} dto.Result{data=domain.ClosingResult}
// @Failure 400 {object} dto.Result "Fiscal year already closed or unbalanced"
// @Failure 403 {object} dto.Result "Insufficient role"
// @Security BearerAuth
// @Router /companies/{companyID}/fiscal-years/{fiscalYearID}/close [post]
func (h *closingHandler) closeFiscalYear(c *gin.Context) {
	companyID, fiscalYearID, ok := scopeParams(c)
	if !ok {
		return
	}

	res, err := h.closingService.CloseFiscalYear(c.Request.Context(), companyID, fiscalYearID, middleware.ActorFromCtx(c.Request.Context()))
	if err != nil {
		respondError(c, err, "Failed to close fiscal year")
		return
	}
	c.JSON(http.StatusOK, dto.OK(res.Message, res))
}

// exportFEC godoc
// @Summary FEC export
// @Description Fichier des Écritures Comptables of a fiscal year
// @Tags closing
// @Produce  json
// @Param   companyID path int true "Company ID"
// @Param   fiscalYearID path int true "Fiscal year ID"
// @Success 200 {object} dto.Result{data=[]domain.FECRecord}
// @Security BearerAuth
// @Router /companies/{companyID}/fiscal-years/{fiscalYearID}/fec [get]
func (h *closingHandler) exportFEC(c *gin.Context) {
	companyID, fiscalYearID, ok := scopeParams(c)
	if !ok {
		return
	}

	records, err := h.closingService.ExportFEC(c.Request.Context(), companyID, fiscalYearID, middleware.ActorFromCtx(c.Request.Context()))
	if err != nil {
		respondError(c, err, "Failed to export FEC")
		return
	}
	c.JSON(http.StatusOK, dto.OK(fmt.Sprintf("%d FEC line(s)", len(records)), records))
}

// consistencyChecks godoc
// @Summary Consistency checks
// @Tags closing
// @Produce  json
// @Param   companyID path int true "Company ID"
// @Param   fiscalYearID path int true "Fiscal year ID"
// @Success 200 {object} dto.Result{data=[]domain.ConsistencyCheck}
// @Security BearerAuth
// @Router /companies/{companyID}/fiscal-years/{fiscalYearID}/checks [get]
func (h *closingHandler) consistencyChecks(c *gin.Context) {
	companyID, fiscalYearID, ok := scopeParams(c)
	if !ok {
		return
	}

	checks, err := h.closingService.RunConsistencyChecks(c.Request.Context(), companyID, fiscalYearID)
	if err != nil {
		respondError(c, err, "Failed to run consistency checks")
		return
	}
	failed := 0
	for _, check := range checks {
		if !check.Passed {
			failed++
		}
	}
	c.JSON(http.StatusOK, dto.Result{Success: failed == 0, Message: fmt.Sprintf("%d of %d check(s) failed", failed, len(checks)), Data: checks})
}
