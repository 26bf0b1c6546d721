package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Recovery turns a panic into the API's failure envelope.
func Recovery(logger *zap.Logger, development bool) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		stack := string(debug.Stack())
		logger.Error("panic recovered",
			zap.Any("panic", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("stack", stack),
		)

		resp := gin.H{
			"success": false,
			"message": "Internal server error",
			"error":   fmt.Sprint(recovered),
		}
		if development {
			resp["stack"] = stack
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, resp)
	})
}
