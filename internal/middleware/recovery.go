package middleware

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/compta_core/internal/dto"
	"github.com/gin-gonic/gin"
)

// Recovery turns a handler panic into a generic failure envelope.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		GetLoggerFromCtx(c.Request.Context()).Error("Panic recovered", slog.Any("panic", recovered))
		c.AbortWithStatusJSON(http.StatusInternalServerError, dto.Fail("unexpected error"))
	})
}
