package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/planhub-io/planhub/internal/config"
	"github.com/planhub-io/planhub/internal/modules/serializer"
)

// BearerAuth authenticates API requests against the configured bearer
// token. Session handling and per-user identity live in front of this
// service; the API itself carries a single opaque token.
func BearerAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
			return
		}
		raw := strings.TrimPrefix(auth, "Bearer ")

		if subtle.ConstantTimeCompare([]byte(raw), []byte(cfg.Auth.ApiBearerToken)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
			return
		}

		c.Next()
	}
}
