package handlers

import (
	"errors"
	"net/http"
	"runtime/debug"

	"project-board-api/internal"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// renderData writes the success envelope.
func renderData(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

// renderList writes the success envelope with a count.
func renderList[T any](c *gin.Context, items []T) {
	if items == nil {
		items = []T{}
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(items),
		"data":    items,
	})
}

// renderError maps err to a status code and the failure envelope. msg is used
// when err does not carry a message meant for end users.
func (h *Handler) renderError(c *gin.Context, msg string, err error) {
	status := http.StatusInternalServerError
	resp := gin.H{"success": false, "message": msg}

	untyped := true
	var ierr *internal.Error
	if errors.As(err, &ierr) {
		untyped = false
		switch ierr.Code() {
		case internal.ErrorCodeNotFound:
			status = http.StatusNotFound
			resp["message"] = ierr.Message()
		case internal.ErrorCodeInvalidArgument:
			status = http.StatusBadRequest
			resp["message"] = ierr.Message()
			if orig := ierr.Unwrap(); orig != nil {
				resp["error"] = orig.Error()
			}
		case internal.ErrorCodeInvalidCredential,
			internal.ErrorCodeQuotaExceeded,
			internal.ErrorCodeContentBlocked,
			internal.ErrorCodeGenerationFailed:
			resp["message"] = ierr.Message()
		default:
			untyped = true
			resp["error"] = err.Error()
		}
	} else if err != nil {
		resp["error"] = err.Error()
	}

	if status >= http.StatusInternalServerError {
		h.logger.Error(msg,
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		if h.dev && untyped {
			resp["stack"] = string(debug.Stack())
		}
	}
	c.JSON(status, resp)
}

// renderBindError reports a malformed or invalid request body.
func (h *Handler) renderBindError(c *gin.Context, err error) {
	h.renderError(c, "Invalid request body", internal.WrapErrorf(err, internal.ErrorCodeInvalidArgument, "Validation failed"))
}
