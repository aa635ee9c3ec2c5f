package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	sessionCookie = "sid"
	scopeCtxKey   = "scope"
	sessionMaxAge = 365 * 24 * 60 * 60
)

// sessionMiddleware resolves the scope from the sid cookie, issuing a new
// session id when the cookie is missing or malformed.
func sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(sessionCookie)
		if err != nil || uuid.Validate(sid) != nil {
			sid = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(sessionCookie, sid, sessionMaxAge, "/", "", false, true)
		}
		c.Set(scopeCtxKey, sid)
		c.Next()
	}
}

func scopeFrom(c *gin.Context) string {
	return c.GetString(scopeCtxKey)
}
