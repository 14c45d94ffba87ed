// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file resolves the caller's identity from request headers. Token
// verification happens upstream (API gateway / reverse proxy); this service
// consumes the already-verified identity headers it forwards.
package middleware

import (
	"github.com/gin-gonic/gin"
)

const (
	// identityContextKey is the Gin context key holding the resolved client ID.
	identityContextKey = "userID"
	// roleContextKey is the Gin context key holding the forwarded role, if any.
	roleContextKey = "userRole"

	// userIDHeader carries the authenticated subject set by the edge proxy.
	userIDHeader = "X-User-ID"
	// userRoleHeader carries the subject's role set by the edge proxy.
	userRoleHeader = "X-User-Role"
)

// Identity copies the upstream identity headers into the Gin context.
//
// Requests without X-User-ID proceed anonymously; operations that require a
// caller reject at the service layer. No verification happens here — the
// headers are trusted because only the edge proxy can reach this service.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if uid := c.GetHeader(userIDHeader); uid != "" {
			c.Set(identityContextKey, uid)
		}
		if role := c.GetHeader(userRoleHeader); role != "" {
			c.Set(roleContextKey, role)
		}
		c.Next()
	}
}

// ClientID returns the resolved client identity, or "" for anonymous requests.
func ClientID(c *gin.Context) string {
	v, _ := c.Get(identityContextKey)
	return asString(v)
}

// Role returns the forwarded role, or "" when none was supplied.
func Role(c *gin.Context) string {
	v, _ := c.Get(roleContextKey)
	return asString(v)
}
