package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/farrowscore/api/util"
)

const UserIDHeader = "X-User-ID"

// UserIdentity copies the caller-supplied user id into the request context.
// Requests without the header stay anonymous.
func UserIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := strings.TrimSpace(c.GetHeader(UserIDHeader)); id != "" {
			c.Set(util.UserIDKey, id)
		}
		c.Next()
	}
}
