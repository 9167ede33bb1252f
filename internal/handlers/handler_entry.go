package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/SscSPs/compta_core/internal/core/domain"
	portssvc "github.com/SscSPs/compta_core/internal/core/ports/services"
	"github.com/SscSPs/compta_core/internal/dto"
	"github.com/SscSPs/compta_core/internal/middleware"
	"github.com/gin-gonic/gin"
)

// entryHandler handles HTTP requests related to journal entries.
type entryHandler struct {
	entryService portssvc.EntrySvcFacade
}

func newEntryHandler(es portssvc.EntrySvcFacade) *entryHandler {
	return &entryHandler{entryService: es}
}

// registerEntryRoutes registers entry routes and the general ledger.
func registerEntryRoutes(rg *gin.RouterGroup, scoped *gin.RouterGroup, entryService portssvc.EntrySvcFacade) {
	h := newEntryHandler(entryService)
	writers := middleware.RequireRole(domain.RoleAdmin, domain.RoleAccountant)

	entries := rg.Group("/entries")
	{
		entries.POST("/validate", h.validateEntry)
		entries.POST("", writers, h.createEntry)
		entries.POST("/sales", writers, h.createSalesEntry)
		entries.POST("/purchases", writers, h.createPurchaseEntry)
		entries.GET("/:entryID", h.getEntry)
	}

	scoped.GET("/entries", h.listEntries)
	scoped.GET("/ledger/:accountNumber", h.generalLedger)
}

// validateEntry godoc
// @Summary Validate an entry
// @Description Runs the entry checks against a fiscal year without persisting anything
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   entry body dto.ValidateEntryRequest true "Candidate entry"
// @Success 200 {object} dto.Result{data=domain.ValidationResult}
// @Failure 400 {object} dto.Result "Invalid input format"
// @Failure 404 {object} dto.Result "Fiscal year not found"
// @Security BearerAuth
// @Router /entries/validate [post]
func (h *entryHandler) validateEntry(c *gin.Context) {
	var req dto.ValidateEntryRequest
	if !bindJSON(c, &req) {
		return
	}
	candidate, err := dto.ToCandidate(req.EntryHeader, req.Movements)
	if err != nil {
		respondError(c, err, "Invalid entry date")
		return
	}

	res, err := h.entryService.ValidateEntry(c.Request.Context(), req.FiscalYearID, candidate)
	if err != nil {
		respondError(c, err, "Failed to validate entry")
		return
	}
	c.JSON(http.StatusOK, dto.Result{Success: res.Valid, Message: res.Message, Data: res})
}

// createEntry godoc
// @Summary Book an entry
// @Description Validates, numbers and persists a journal entry
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   entry body dto.CreateEntryRequest true "Entry"
// @Success 201 {object} dto.Result{data=dto.EntryResponse}
// @Failure 400 {object} dto.Result "Validation error"
// @Failure 403 {object} dto.Result "Insufficient role"
// @Failure 404 {object} dto.Result "Fiscal year or journal not found"
// @Security BearerAuth
// @Router /entries [post]
func (h *entryHandler) createEntry(c *gin.Context) {
	var req dto.CreateEntryRequest
	if !bindJSON(c, &req) {
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Received request to create entry",
		slog.Int64("company_id", req.CompanyID), slog.Int64("journal_id", req.JournalID), slog.Int("lines", len(req.Movements)))

	entry, err := h.entryService.CreateEntry(c.Request.Context(), req, middleware.ActorFromCtx(c.Request.Context()))
	if err != nil {
		respondError(c, err, "Failed to create entry")
		return
	}
	c.JSON(http.StatusCreated, dto.OK(dto.EntryCreatedMessage(entry), dto.ToEntryResponse(entry)))
}

// createSalesEntry godoc
// @Summary Book a sales invoice
// @Description Books customer, revenue and collected VAT lines from a net amount
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   invoice body dto.InvoiceEntryRequest true "Invoice"
// @Success 201 {object} dto.Result{data=dto.EntryResponse}
// @Failure 400 {object} dto.Result "Validation error"
// @Failure 403 {object} dto.Result "Insufficient role"
// @Security BearerAuth
// @Router /entries/sales [post]
func (h *entryHandler) createSalesEntry(c *gin.Context) {
	var req dto.InvoiceEntryRequest
	if !bindJSON(c, &req) {
		return
	}

	entry, err := h.entryService.CreateSalesEntry(c.Request.Context(), req, middleware.ActorFromCtx(c.Request.Context()))
	if err != nil {
		respondError(c, err, "Failed to create sales entry")
		return
	}
	c.JSON(http.StatusCreated, dto.OK(dto.EntryCreatedMessage(entry), dto.ToEntryResponse(entry)))
}

// createPurchaseEntry godoc
// @Summary Book a purchase invoice
// @Description Books purchase, deductible VAT and supplier lines from a net amount
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   invoice body dto.InvoiceEntryRequest true "Invoice"
// @Success 201 {object} dto.Result{data=dto.EntryResponse}
// @Failure 400 {object} dto.Result "Validation error"
// @Failure 403 {object} dto.Result "Insufficient role"
// @Security BearerAuth
// @Router /entries/purchases [post]
func (h *entryHandler) createPurchaseEntry(c *gin.Context) {
	var req dto.InvoiceEntryRequest
	if !bindJSON(c, &req) {
		return
	}

	entry, err := h.entryService.CreatePurchaseEntry(c.Request.Context(), req, middleware.ActorFromCtx(c.Request.Context()))
	if err != nil {
		respondError(c, err, "Failed to create purchase entry")
		return
	}
	c.JSON(http.StatusCreated, dto.OK(dto.EntryCreatedMessage(entry), dto.ToEntryResponse(entry)))
}

// getEntry godoc
// @Summary Get an entry
// @Tags entries
// @Produce  json
// @Param   entryID path int true "Entry ID"
// @Success 200 {object} dto.Result{data=dto.EntryResponse}
// @Failure 404 {object} dto.Result "Entry not found"
// @Security BearerAuth
// @Router /entries/{entryID} [get]
func (h *entryHandler) getEntry(c *gin.Context) {
	entryID, ok := int64Param(c, "entryID")
	if !ok {
		return
	}

	entry, err := h.entryService.GetEntry(c.Request.Context(), entryID)
	if err != nil {
		respondError(c, err, "Failed to get entry")
		return
	}
	c.JSON(http.StatusOK, dto.OK("entry "+entry.Number, dto.ToEntryResponse(entry)))
}

// generalLedger godoc
// @Summary General ledger of an account
// @Description Lists the movements of an account over a fiscal year with a running solde
// @Tags reporting
// @Produce  json
// @Param   companyID path int true "Company ID"
// @Param   fiscalYearID path int true "Fiscal year ID"
// @Param   accountNumber path string true "Account number"
// @Success 200 {object} dto.Result{data=domain.GeneralLedger}
// @Failure 404 {object} dto.Result "Account not found"
// @Security BearerAuth
// @Router /companies/{companyID}/fiscal-years/{fiscalYearID}/ledger/{accountNumber} [get]
func (h *entryHandler) generalLedger(c *gin.Context) {
	companyID, fiscalYearID, ok := scopeParams(c)
	if !ok {
		return
	}

	ledger, err := h.entryService.GeneralLedger(c.Request.Context(), companyID, fiscalYearID, c.Param("accountNumber"))
	if err != nil {
		respondError(c, err, "Failed to build general ledger")
		return
	}
	c.JSON(http.StatusOK, dto.OK("general ledger of account "+ledger.AccountNumber, ledger))
}

// listEntries godoc
// @Summary List the entries of a fiscal year
// @Tags entries
// @Produce  json
// @Param   companyID path int true "Company ID"
// @Param   fiscalYearID path int true "Fiscal year ID"
// @Param   journalID query int false "Journal ID"
// @Success 200 {object} dto.Result{data=[]domain.EntrySummary}
// @Failure 400 {object} dto.Result "Invalid journalID"
// @Failure 404 {object} dto.Result "Fiscal year not found"
// @Security BearerAuth
// @Router /companies/{companyID}/fiscal-years/{fiscalYearID}/entries [get]
func (h *entryHandler) listEntries(c *gin.Context) {
	companyID, fiscalYearID, ok := scopeParams(c)
	if !ok {
		return
	}
	var filter domain.EntryFilter
	if raw := c.Query("journalID"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.Fail("invalid journalID: "+raw))
			return
		}
		filter.JournalID = &id
	}

	entries, err := h.entryService.ListEntries(c.Request.Context(), companyID, fiscalYearID, filter)
	if err != nil {
		respondError(c, err, "Failed to list entries")
		return
	}
	c.JSON(http.StatusOK, dto.OK(fmt.Sprintf("%d entry(ies)", len(entries)), entries))
}
