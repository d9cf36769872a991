package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ticketline/ticketline/internal/identity"
)

// IdentityContextKey is a gin context key for the resolved caller identity.
const IdentityContextKey = "identity"

// AuthRequired resolves the caller through the identity provider and aborts
// unauthenticated requests.
func AuthRequired(provider identity.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := provider.Resolve(c.Request)
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Set(IdentityContextKey, id)
		c.Next()
	}
}

// AdminRequired aborts requests whose identity lacks the admin role. It must
// run after AuthRequired.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := CurrentIdentity(c)
		if !ok {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		if !id.Admin() {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
}

// CurrentIdentity extracts the resolved identity from context.
func CurrentIdentity(c *gin.Context) (identity.Identity, bool) {
	val, ok := c.Get(IdentityContextKey)
	if !ok {
		return identity.Identity{}, false
	}
	id, ok := val.(identity.Identity)
	return id, ok
}
