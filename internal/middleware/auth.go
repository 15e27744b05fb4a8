package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIKeyHeader is the request header carrying the shared-secret API key.
const APIKeyHeader = "X-Recipe-API-Key"

// APIKeyAuth creates a middleware that rejects requests whose API key header
// does not match the configured shared secret. Rejected requests never reach
// the handler.
func APIKeyAuth(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader(APIKeyHeader) != apiKey {
			c.Header("WWW-Authenticate", "API key")
			c.JSON(http.StatusForbidden, gin.H{"error": "Could not validate API Key"})
			c.Abort()
			return
		}
		c.Next()
	}
}
