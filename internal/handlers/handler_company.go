package handlers

import (
	"fmt"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/compta_core/internal/core/ports/services"
	"github.com/SscSPs/compta_core/internal/dto"
	"github.com/gin-gonic/gin"
)

// companyHandler serves the read-only company browsing routes.
type companyHandler struct {
	companyService portssvc.CompanyService
}

func newCompanyHandler(cs portssvc.CompanyService) *companyHandler {
	return &companyHandler{companyService: cs}
}

// registerCompanyRoutes registers company, fiscal year and journal listings.
func registerCompanyRoutes(rg *gin.RouterGroup, companyService portssvc.CompanyService) {
	h := newCompanyHandler(companyService)

	rg.GET("/companies", h.listCompanies)
	company := rg.Group("/companies/:companyID")
	{
		company.GET("", h.getCompany)
		company.GET("/fiscal-years", h.listFiscalYears)
		company.GET("/current-fiscal-year", h.currentFiscalYear)
		company.GET("/journals", h.listJournals)
	}
}

// listCompanies godoc
// @Summary List companies
// @Tags companies
// @Produce  json
// @Success 200 {object} dto.Result{data=[]domain.Company}
// @Security BearerAuth
// @Router /companies [get]
func (h *companyHandler) listCompanies(c *gin.Context) {
	companies, err := h.companyService.ListCompanies(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list companies")
		return
	}
	c.JSON(http.StatusOK, dto.OK(fmt.Sprintf("%d company(ies)", len(companies)), companies))
}

// getCompany godoc
// @Summary Get a company
// @Tags companies
// @Produce  json
// @Param   companyID path int true "Company ID"
// @Success 200 {object} dto.Result{data=domain.Company}
// @Failure 404 {object} dto.Result "Company not found"
// @Security BearerAuth
// @Router /companies/{companyID} [get]
func (h *companyHandler) getCompany(c *gin.Context) {
	companyID, ok := int64Param(c, "companyID")
	if !ok {
		return
	}
	company, err := h.companyService.GetCompany(c.Request.Context(), companyID)
	if err != nil {
		respondError(c, err, "Failed to get company")
		return
	}
	c.JSON(http.StatusOK, dto.OK("company "+company.Name, company))
}

// listFiscalYears godoc
// @Summary List the fiscal years of a company
// @Tags companies
// @Produce  json
// @Param   companyID path int true "Company ID"
// @Success 200 {object} dto.Result{data=[]domain.FiscalYear}
// @Failure 404 {object} dto.Result "Company not found"
// @Security BearerAuth
// @Router /companies/{companyID}/fiscal-years [get]
func (h *companyHandler) listFiscalYears(c *gin.Context) {
	companyID, ok := int64Param(c, "companyID")
	if !ok {
		return
	}
	years, err := h.companyService.ListFiscalYears(c.Request.Context(), companyID)
	if err != nil {
		respondError(c, err, "Failed to list fiscal years")
		return
	}
	c.JSON(http.StatusOK, dto.OK(fmt.Sprintf("%d fiscal year(s)", len(years)), years))
}

// currentFiscalYear godoc
// @Summary Current fiscal year of a company
// @Description Returns the open fiscal year containing the given date, today by default
// @Tags companies
// @Produce  json
// @Param   companyID path int true "Company ID"
// @Param   at query string false "Date (YYYY-MM-DD)"
// @Success 200 {object} dto.Result{data=domain.FiscalYear}
// @Failure 400 {object} dto.Result "Invalid date"
// @Failure 404 {object} dto.Result "No open fiscal year contains the date"
// @Security BearerAuth
// @Router /companies/{companyID}/current-fiscal-year [get]
func (h *companyHandler) currentFiscalYear(c *gin.Context) {
	companyID, ok := int64Param(c, "companyID")
	if !ok {
		return
	}
	at := time.Now()
	if raw := c.Query("at"); raw != "" {
		d, err := time.Parse(dto.DateLayout, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.Fail("invalid at: "+raw))
			return
		}
		at = d
	}

	fy, err := h.companyService.CurrentFiscalYear(c.Request.Context(), companyID, at)
	if err != nil {
		respondError(c, err, "Failed to find current fiscal year")
		return
	}
	c.JSON(http.StatusOK, dto.OK(fmt.Sprintf("fiscal year %d", fy.Year), fy))
}

// listJournals godoc
// @Summary List the journals of a company
// @Tags companies
// @Produce  json
// @Param   companyID path int true "Company ID"
// @Success 200 {object} dto.Result{data=[]domain.Journal}
// @Failure 404 {object} dto.Result "Company not found"
// @Security BearerAuth
// @Router /companies/{companyID}/journals [get]
func (h *companyHandler) listJournals(c *gin.Context) {
	companyID, ok := int64Param(c, "companyID")
	if !ok {
		return
	}
	journals, err := h.companyService.ListJournals(c.Request.Context(), companyID)
	if err != nil {
		respondError(c, err, "Failed to list journals")
		return
	}
	c.JSON(http.StatusOK, dto.OK(fmt.Sprintf("%d journal(s)", len(journals)), journals))
}
