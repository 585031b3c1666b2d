package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	CtxSubject = "auth_sub"
	CtxRole    = "auth_role"
)

// Require rejects requests without a valid bearer token carrying role.
func Require(iss *Issuer, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearer(c.Request)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		claims, err := iss.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		if claims.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Set(CtxSubject, claims.Subject)
		c.Set(CtxRole, claims.Role)
		c.Next()
	}
}

// Subject returns the authenticated subject set by Require.
func Subject(c *gin.Context) string {
	return c.GetString(CtxSubject)
}

func bearer(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		// browsers cannot set headers on websocket upgrades
		return r.URL.Query().Get("token")
	}
	return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
}
