package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ahinestrog/bookorders/internal/auth"
)

const identityKey = "identity"

// Identify resolves the bearer token into an auth.Identity for every
// request. Anonymous requests pass through; each handler decides whether
// authentication is required.
func Identify(provider auth.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := auth.Anonymous
		h := c.GetHeader("Authorization")
		if token, ok := strings.CutPrefix(h, "Bearer "); ok {
			ident = provider.Identify(c.Request.Context(), token)
		}
		c.Set(identityKey, ident)
		c.Next()
	}
}

func identityOf(c *gin.Context) auth.Identity {
	if v, ok := c.Get(identityKey); ok {
		if ident, ok := v.(auth.Identity); ok {
			return ident
		}
	}
	return auth.Anonymous
}
