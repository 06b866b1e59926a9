package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	sessionCookie = "fg_session"
	sessionCtxKey = "sessionID"

	sessionMaxAge = 30 * 24 * 60 * 60
)

// sessionMiddleware reads the session cookie, issuing a fresh id when it
// is missing or not a uuid. The cart and checkout for a request are keyed
// by this id.
func sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(sessionCookie)
		if err != nil || uuid.Validate(id) != nil {
			id = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(sessionCookie, id, sessionMaxAge, "/", "", false, true)
		}
		c.Set(sessionCtxKey, id)
		c.Next()
	}
}

func sessionID(c *gin.Context) string {
	return c.GetString(sessionCtxKey)
}
