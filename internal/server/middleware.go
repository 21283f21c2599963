package server

import (
	"net/http"
	"time"

	session "auction-site/internal/sessionService"
	"auction-site/utils"

	"github.com/gin-gonic/gin"
)

// SessionResolver resolves a session token to the identity it is bound to
type SessionResolver interface {
	Resolve(token string) (session.Identity, error)
}

// RequestLoggerMiddleware logs incoming requests with timing
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next() // process request

	utils.Info("HTTP Request", map[string]any{
		"method":  c.Request.Method,
		"path":    c.Request.URL.Path,
		"status":  c.Writer.Status(),
		"latency": time.Since(start).String(),
	})
}

// AuthRequiredMiddleware redirects unauthenticated requests to the login page
// and attaches the resolved identity to the request context otherwise
func AuthRequiredMiddleware(sessions SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(session.CookieName)
		if err != nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		identity, err := sessions.Resolve(token)
		if err != nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		session.SetIdentity(c, identity)
		c.Next()
	}
}
