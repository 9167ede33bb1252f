package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/SscSPs/compta_core/internal/apperrors"
	"github.com/SscSPs/compta_core/internal/dto"
	"github.com/SscSPs/compta_core/internal/middleware"
	"github.com/gin-gonic/gin"
)

// respondError writes the failure envelope for err with the status of its kind.
func respondError(c *gin.Context, err error, logMsg string) {
	c.JSON(logFailure(c, err, logMsg), dto.Fail(apperrors.Message(err)))
}

// respondPartial answers a failure that still carries the work done before it.
func respondPartial(c *gin.Context, err error, logMsg, done string, data any) {
	status := logFailure(c, err, logMsg)
	c.JSON(status, dto.Result{Success: false, Message: done + ": " + apperrors.Message(err), Data: data})
}

func logFailure(c *gin.Context, err error, logMsg string) int {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := apperrors.StatusCode(err)
	if status >= http.StatusInternalServerError {
		logger.Error(logMsg, slog.String("error", err.Error()))
	} else {
		logger.Warn(logMsg, slog.String("error", err.Error()), slog.Int("status", status))
	}
	return status
}

// bindJSON binds the request body into req and answers 400 on failure.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind JSON", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.Fail("Invalid request format: "+err.Error()))
		return false
	}
	return true
}

// int64Param reads a positive integer path parameter and answers 400 otherwise.
func int64Param(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Invalid path parameter", slog.String("param", name), slog.String("value", raw))
		c.JSON(http.StatusBadRequest, dto.Fail("invalid "+name+": "+raw))
		return 0, false
	}
	return id, true
}

// scopeParams reads the company and fiscal year path parameters.
func scopeParams(c *gin.Context) (companyID, fiscalYearID int64, ok bool) {
	if companyID, ok = int64Param(c, "companyID"); !ok {
		return 0, 0, false
	}
	if fiscalYearID, ok = int64Param(c, "fiscalYearID"); !ok {
		return 0, 0, false
	}
	return companyID, fiscalYearID, true
}
