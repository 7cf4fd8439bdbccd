package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/recipe-api/backend/internal/types"
)

// Recovery turns handler panics into a JSON 500 and counts them.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		panicRecoveries.Inc()
		slog.Error("panic recovered",
			"error", recovered,
			"request_id", RequestIDFromContext(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, types.ErrorResponse{Error: "internal server error"})
	})
}
