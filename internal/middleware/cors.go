package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// OriginPolicy decides which browser origins may call the API.
type OriginPolicy struct {
	Allowed []string
	// PreviewSuffix admits preview deployments such as https://pr-12.vercel.app.
	PreviewSuffix string
}

// Allows reports whether origin may call the API. Requests without an Origin
// header (curl, server to server, the CLI) are always allowed.
func (p OriginPolicy) Allows(origin string) bool {
	if origin == "" {
		return true
	}
	for _, o := range p.Allowed {
		if strings.EqualFold(o, origin) {
			return true
		}
	}
	return p.PreviewSuffix != "" && strings.HasSuffix(origin, p.PreviewSuffix)
}

// CheckOrigin adapts the policy to a websocket upgrader.
func (p OriginPolicy) CheckOrigin(r *http.Request) bool {
	return p.Allows(r.Header.Get("Origin"))
}

// CORS answers preflight requests and sets the CORS headers for allowed origins.
func CORS(policy OriginPolicy) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if !policy.Allows(origin) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "Not allowed by CORS",
			})
			return
		}

		if origin != "" {
			h := c.Writer.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, PATCH, OPTIONS")
			h.Add("Vary", "Origin")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
