package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"lawdesk/internal/apperr"
	"lawdesk/internal/auth"
	"lawdesk/internal/model"
	"lawdesk/pkg/response"
)

const principalKey = "principal"

// Authenticate extracts the bearer token, verifies it against the live user
// row and stores the resulting principal in the gin context. Verification
// re-reads the user on every request, so blocking or deleting an account cuts
// off any token already in the wild.
func Authenticate(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "UNAUTHORIZED"))
			return
		}

		parts := strings.Split(header, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "UNAUTHORIZED"))
			return
		}

		principal, err := tokens.Verify(c.Request.Context(), parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, apperr.Key(err)))
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// RequireRole rejects authenticated principals whose role is not in the
// allowed set. Must run after Authenticate.
func RequireRole(allowed ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "UNAUTHORIZED"))
			return
		}
		if err := auth.RequireRole(p, allowed...); err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Error(http.StatusForbidden, apperr.Key(err)))
			return
		}
		c.Next()
	}
}

// PrincipalFrom returns the principal set by Authenticate.
func PrincipalFrom(c *gin.Context) (auth.Principal, bool) {
	value, exists := c.Get(principalKey)
	if !exists {
		return auth.Principal{}, false
	}
	p, ok := value.(auth.Principal)
	return p, ok
}
