package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/SscSPs/compta_core/internal/core/domain"
	portssvc "github.com/SscSPs/compta_core/internal/core/ports/services"
	"github.com/SscSPs/compta_core/internal/dto"
	"github.com/SscSPs/compta_core/internal/middleware"
	"github.com/gin-gonic/gin"
)

// chartHandler handles HTTP requests on the chart of accounts.
type chartHandler struct {
	chartService portssvc.ChartSvcFacade
}

func newChartHandler(cs portssvc.ChartSvcFacade) *chartHandler {
	return &chartHandler{chartService: cs}
}

// registerChartRoutes registers classification and account routes.
func registerChartRoutes(rg *gin.RouterGroup, chartService portssvc.ChartSvcFacade) {
	h := newChartHandler(chartService)

	rg.POST("/accounts/classify", h.classify)

	accounts := rg.Group("/companies/:companyID/accounts")
	{
		accounts.GET("", h.listAccounts)
		accounts.POST("", middleware.RequireRole(domain.RoleAdmin, domain.RoleAccountant), h.createAccount)
		accounts.GET("/audit", h.auditChart)
	}
}

// classify godoc
// @Summary Check an account nature
// @Description Checks a declared nature against the PCG classification rules
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   request body dto.ClassifyRequest true "Account number and declared nature"
// @Success 200 {object} dto.Result{data=domain.ClassificationResult}
// @Failure 400 {object} dto.Result "Invalid input format"
// @Security BearerAuth
// @Router /accounts/classify [post]
func (h *chartHandler) classify(c *gin.Context) {
	var req dto.ClassifyRequest
	if !bindJSON(c, &req) {
		return
	}

	res := h.chartService.Classify(c.Request.Context(), req.AccountNumber, req.Nature)
	c.JSON(http.StatusOK, dto.Result{Success: res.Valid, Message: res.Message, Data: res})
}

// createAccount godoc
// @Summary Create an account
// @Description Adds a classified account to the chart of a company
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   companyID path int true "Company ID"
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.Result{data=dto.AccountResponse}
// @Failure 400 {object} dto.Result "Invalid input format or validation error"
// @Failure 403 {object} dto.Result "Insufficient role"
// @Failure 409 {object} dto.Result "Account already exists"
// @Failure 422 {object} dto.Result "Classification mismatch"
// @Security BearerAuth
// @Router /companies/{companyID}/accounts [post]
func (h *chartHandler) createAccount(c *gin.Context) {
	companyID, ok := int64Param(c, "companyID")
	if !ok {
		return
	}
	var req dto.CreateAccountRequest
	if !bindJSON(c, &req) {
		return
	}

	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received request to create account", slog.Int64("company_id", companyID), slog.String("number", req.Number))

	account, err := h.chartService.CreateAccount(c.Request.Context(), companyID, req, middleware.ActorFromCtx(c.Request.Context()))
	if err != nil {
		respondError(c, err, "Failed to create account")
		return
	}

	c.JSON(http.StatusCreated, dto.OK(fmt.Sprintf("account %s created", account.Number), dto.ToAccountResponse(account)))
}

// listAccounts godoc
// @Summary List accounts
// @Description Lists the chart of a company, optionally narrowed to a PCG class or a number/label search
// @Tags accounts
// @Produce  json
// @Param   companyID path int true "Company ID"
// @Param   class query string false "PCG class (1-7)"
// @Param   q query string false "Number prefix or label fragment"
// @Success 200 {object} dto.Result{data=[]dto.AccountResponse}
// @Failure 400 {object} dto.Result "Unknown class"
// @Security BearerAuth
// @Router /companies/{companyID}/accounts [get]
func (h *chartHandler) listAccounts(c *gin.Context) {
	companyID, ok := int64Param(c, "companyID")
	if !ok {
		return
	}
	search := domain.AccountSearch{Class: c.Query("class"), Query: c.Query("q")}

	accounts, err := h.chartService.ListAccounts(c.Request.Context(), companyID, search)
	if err != nil {
		respondError(c, err, "Failed to list accounts")
		return
	}

	res := make([]dto.AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = dto.ToAccountResponse(&accounts[i])
	}
	c.JSON(http.StatusOK, dto.OK(fmt.Sprintf("%d account(s)", len(res)), res))
}

// auditChart godoc
// @Summary Audit a chart of accounts
// @Description Classifies every account of a company and lists the mismatches
// @Tags accounts
// @Produce  json
// @Param   companyID path int true "Company ID"
// @Success 200 {object} dto.Result{data=[]domain.ClassificationIssue}
// @Failure 500 {object} dto.Result "Failed to read the chart"
// @Security BearerAuth
// @Router /companies/{companyID}/accounts/audit [get]
func (h *chartHandler) auditChart(c *gin.Context) {
	companyID, ok := int64Param(c, "companyID")
	if !ok {
		return
	}

	issues, err := h.chartService.AuditChart(c.Request.Context(), companyID)
	if err != nil {
		respondError(c, err, "Failed to audit chart")
		return
	}

	c.JSON(http.StatusOK, dto.OK(fmt.Sprintf("%d misclassified account(s)", len(issues)), issues))
}
