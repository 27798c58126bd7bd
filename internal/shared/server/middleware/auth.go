package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"healthart-backend/internal/sessions"
	"healthart-backend/internal/shared/auth"
	"healthart-backend/internal/shared/server/respond"
)

const (
	sessionIDKey = "sessionId"
	sessionKey   = "session"

	// SessionCookieName is the cookie carrying the signed session token.
	SessionCookieName = "healthart_session"
)

var publicPaths = map[string]struct{}{
	"/":              {},
	"/login":         {},
	"/callback":      {},
	"/favicon.ico":   {},
	"/metrics":       {},
	"/api/v1/health": {},
}

// SessionAuth resolves the session cookie into a server-side session.
// Page requests without a session are redirected to /login; API requests
// get a 401. Public paths pass through untouched.
func SessionAuth(store *sessions.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		path := c.Request.URL.Path
		if _, ok := publicPaths[path]; ok {
			c.Next()
			return
		}

		sess, ok := resolveSession(c, store)
		if !ok {
			if strings.HasPrefix(path, "/api/") {
				respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid session", nil)
				return
			}
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		c.Set(sessionIDKey, sess.ID)
		c.Set(sessionKey, sess)
		c.Next()
	}
}

func resolveSession(c *gin.Context, store *sessions.Store) (*sessions.Session, bool) {
	raw, err := c.Cookie(SessionCookieName)
	if err != nil || strings.TrimSpace(raw) == "" {
		return nil, false
	}
	claims, err := auth.VerifySession(raw)
	if err != nil {
		return nil, false
	}
	sess, err := store.Get(claims.SID)
	if err != nil {
		return nil, false
	}
	return sess, true
}

// SessionFromContext fetches the session set by SessionAuth.
func SessionFromContext(c *gin.Context) *sessions.Session {
	if c == nil {
		return nil
	}
	val, _ := c.Get(sessionKey)
	if sess, ok := val.(*sessions.Session); ok {
		return sess
	}
	return nil
}

// SessionIDFromContext fetches the session ID set by SessionAuth.
func SessionIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	return c.GetString(sessionIDKey)
}
