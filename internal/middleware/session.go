package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"carbonfront/internal/session"
)

// ContextKeySession is the gin context key holding the page session.
const ContextKeySession = "session"

var errNoSession = errors.New("session not found in context")

// Session attaches the caller's page session, issuing a cookie for new or
// expired sessions.
func Session(store *session.Store, cookieName string, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := c.Cookie(cookieName)
		sess, created := store.GetOrCreate(id)
		if created {
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(cookieName, sess.ID, 0, "/", "", secure, true)
		}
		c.Set(ContextKeySession, sess)
		c.Next()
	}
}

// GetSession extracts the page session from the gin context.
func GetSession(c *gin.Context) (*session.Session, error) {
	val, exists := c.Get(ContextKeySession)
	if !exists {
		return nil, errNoSession
	}
	sess, ok := val.(*session.Session)
	if !ok {
		return nil, errNoSession
	}
	return sess, nil
}
