package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/address-book/pkg/apperr"
)

// Route access policies. Each is a predicate over the identity attached
// by AuthSession and the route parameters; policies compose left to
// right on a route and the first failure wins.

func deny(c *gin.Context) {
	_ = c.Error(apperr.Unauthorized())
	c.Abort()
}

// LoggedIn passes any authenticated caller.
func LoggedIn() gin.HandlerFunc {
	return func(c *gin.Context) {
		if IdentityFrom(c) == nil {
			deny(c)
			return
		}
		c.Next()
	}
}

// IsAdmin passes only callers with the admin flag.
func IsAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := IdentityFrom(c)
		if ident == nil || !ident.IsAdmin {
			deny(c)
			return
		}
		c.Next()
	}
}

// IsOwner passes when the caller's id matches the route parameter
// paramKey, or the caller is an admin. A missing identity is a caller
// bug (the route should also carry LoggedIn) and is denied rather than
// dereferenced.
func IsOwner(paramKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := IdentityFrom(c)
		if ident == nil {
			deny(c)
			return
		}
		if !ident.IsAdmin && ident.ID != c.Param(paramKey) {
			deny(c)
			return
		}
		c.Next()
	}
}
