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

// thirdPartyHandler handles HTTP requests on customers and suppliers.
type thirdPartyHandler struct {
	thirdPartyService portssvc.ThirdPartySvcFacade
}

func newThirdPartyHandler(ts portssvc.ThirdPartySvcFacade) *thirdPartyHandler {
	return &thirdPartyHandler{thirdPartyService: ts}
}

// registerThirdPartyRoutes registers third-party management routes.
func registerThirdPartyRoutes(rg *gin.RouterGroup, thirdPartyService portssvc.ThirdPartySvcFacade) {
	h := newThirdPartyHandler(thirdPartyService)
	writers := middleware.RequireRole(domain.RoleAdmin, domain.RoleAccountant)

	tiers := rg.Group("/companies/:companyID/third-parties")
	{
		tiers.GET("", h.listThirdParties)
		tiers.POST("", writers, h.createThirdParty)
		tiers.GET("/:thirdPartyID", h.getThirdParty)
		tiers.PUT("/:thirdPartyID", writers, h.updateThirdParty)
		tiers.DELETE("/:thirdPartyID", writers, h.deleteThirdParty)
	}
}

// listThirdParties godoc
// @Summary List third parties
// @Tags third-parties
// @Produce  json
// @Param   companyID path int true "Company ID"
// @Param   kind query string false "CLIENT, FOURNISSEUR or AUTRE"
// @Success 200 {object} dto.Result{data=[]domain.ThirdParty}
// @Failure 400 {object} dto.Result "Unknown kind"
// @Security BearerAuth
// @Router /companies/{companyID}/third-parties [get]
func (h *thirdPartyHandler) listThirdParties(c *gin.Context) {
	companyID, ok := int64Param(c, "companyID")
	if !ok {
		return
	}
	kind := domain.ThirdPartyKind(c.Query("kind"))

	list, err := h.thirdPartyService.ListThirdParties(c.Request.Context(), companyID, kind)
	if err != nil {
		respondError(c, err, "Failed to list third parties")
		return
	}
	c.JSON(http.StatusOK, dto.OK(fmt.Sprintf("%d third part(ies)", len(list)), list))
}

// createThirdParty godoc
// @Summary Create a third party
// @Tags third-parties
// @Accept  json
// @Produce  json
// @Param   companyID path int true "Company ID"
// @Param   thirdParty body dto.CreateThirdPartyRequest true "Third party details"
// @Success 201 {object} dto.Result{data=domain.ThirdParty}
// @Failure 400 {object} dto.Result "Invalid input format or validation error"
// @Failure 403 {object} dto.Result "Insufficient role"
// @Failure 409 {object} dto.Result "Code already exists"
// @Security BearerAuth
// @Router /companies/{companyID}/third-parties [post]
func (h *thirdPartyHandler) createThirdParty(c *gin.Context) {
	companyID, ok := int64Param(c, "companyID")
	if !ok {
		return
	}
	var req dto.CreateThirdPartyRequest
	if !bindJSON(c, &req) {
		return
	}

	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received request to create third party", slog.Int64("company_id", companyID), slog.String("code", req.Code))

	tp, err := h.thirdPartyService.CreateThirdParty(c.Request.Context(), companyID, req, middleware.ActorFromCtx(c.Request.Context()))
	if err != nil {
		respondError(c, err, "Failed to create third party")
		return
	}
	c.JSON(http.StatusCreated, dto.OK(fmt.Sprintf("third party %s created", tp.Code), tp))
}

// getThirdParty godoc
// @Summary Get a third party
// @Tags third-parties
// @Produce  json
// @Param   companyID path int true "Company ID"
// @Param   thirdPartyID path int true "Third party ID"
// @Success 200 {object} dto.Result{data=domain.ThirdParty}
// @Failure 404 {object} dto.Result "Third party not found"
// @Security BearerAuth
// @Router /companies/{companyID}/third-parties/{thirdPartyID} [get]
func (h *thirdPartyHandler) getThirdParty(c *gin.Context) {
	companyID, thirdPartyID, ok := thirdPartyParams(c)
	if !ok {
		return
	}
	tp, err := h.thirdPartyService.GetThirdParty(c.Request.Context(), companyID, thirdPartyID)
	if err != nil {
		respondError(c, err, "Failed to get third party")
		return
	}
	c.JSON(http.StatusOK, dto.OK("third party "+tp.Code, tp))
}

// updateThirdParty godoc
// @Summary Update a third party
// @Tags third-parties
// @Accept  json
// @Produce  json
// @Param   companyID path int true "Company ID"
// @Param   thirdPartyID path int true "Third party ID"
// @Param   thirdParty body dto.UpdateThirdPartyRequest true "New name and kind"
// @Success 200 {object} dto.Result{data=domain.ThirdParty}
// @Failure 400 {object} dto.Result "Validation error"
// @Failure 403 {object} dto.Result "Insufficient role"
// @Failure 404 {object} dto.Result "Third party not found"
// @Security BearerAuth
// @Router /companies/{companyID}/third-parties/{thirdPartyID} [put]
func (h *thirdPartyHandler) updateThirdParty(c *gin.Context) {
	companyID, thirdPartyID, ok := thirdPartyParams(c)
	if !ok {
		return
	}
	var req dto.UpdateThirdPartyRequest
	if !bindJSON(c, &req) {
		return
	}

	tp, err := h.thirdPartyService.UpdateThirdParty(c.Request.Context(), companyID, thirdPartyID, req, middleware.ActorFromCtx(c.Request.Context()))
	if err != nil {
		respondError(c, err, "Failed to update third party")
		return
	}
	c.JSON(http.StatusOK, dto.OK(fmt.Sprintf("third party %s updated", tp.Code), tp))
}

// deleteThirdParty godoc
// @Summary Delete a third party
// @Description Refused while any movement points at the third party
// @Tags third-parties
// @Produce  json
// @Param   companyID path int true "Company ID"
// @Param   thirdPartyID path int true "Third party ID"
// @Success 200 {object} dto.Result
// @Failure 403 {object} dto.Result "Insufficient role"
// @Failure 404 {object} dto.Result "Third party not found"
// @Failure 409 {object} dto.Result "Third party used in entries"
// @Security BearerAuth
// @Router /companies/{companyID}/third-parties/{thirdPartyID} [delete]
func (h *thirdPartyHandler) deleteThirdParty(c *gin.Context) {
	companyID, thirdPartyID, ok := thirdPartyParams(c)
	if !ok {
		return
	}
	if err := h.thirdPartyService.DeleteThirdParty(c.Request.Context(), companyID, thirdPartyID, middleware.ActorFromCtx(c.Request.Context())); err != nil {
		respondError(c, err, "Failed to delete third party")
		return
	}
	c.JSON(http.StatusOK, dto.OK(fmt.Sprintf("third party %d deleted", thirdPartyID), nil))
}

func thirdPartyParams(c *gin.Context) (companyID, thirdPartyID int64, ok bool) {
	if companyID, ok = int64Param(c, "companyID"); !ok {
		return 0, 0, false
	}
	if thirdPartyID, ok = int64Param(c, "thirdPartyID"); !ok {
		return 0, 0, false
	}
	return companyID, thirdPartyID, true
}
