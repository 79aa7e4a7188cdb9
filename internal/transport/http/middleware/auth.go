package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"maeul-forum/internal/core/auth"
	"maeul-forum/internal/domain"
	"maeul-forum/internal/repo"
	resp "maeul-forum/internal/transport/http/response"
)

// KeyCurrentUser holds the *domain.User resolved from the bearer token.
const KeyCurrentUser = "currentUser"

func BearerToken(c *gin.Context) string {
	ah := c.GetHeader("Authorization")
	if !strings.HasPrefix(ah, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(ah, "Bearer ")
}

// AuthRequired resolves the caller's identity. A structurally valid token
// is not enough: the account must still exist and be approved.
func AuthRequired(tokens *auth.Tokens, users *repo.UserRepo) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok := BearerToken(c)
		if tok == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Fail("authentication required"))
			return
		}
		claims, err := tokens.Parse(tok)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Fail("invalid token"))
			return
		}
		u, err := users.FindApproved(c.Request.Context(), claims.UID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, resp.Fail("internal server error"))
			return
		}
		if u == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Fail("account not approved"))
			return
		}
		c.Set(KeyCurrentUser, u)
		c.Next()
	}
}

// OptionalAuth resolves identity when a valid token is present and stays
// silent otherwise, so public reads can still personalize their response.
func OptionalAuth(tokens *auth.Tokens, users *repo.UserRepo) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tok := BearerToken(c); tok != "" {
			if claims, err := tokens.Parse(tok); err == nil {
				if u, err := users.FindApproved(c.Request.Context(), claims.UID); err == nil && u != nil {
					c.Set(KeyCurrentUser, u)
				}
			}
		}
		c.Next()
	}
}

// AdminRequired must run after AuthRequired.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := CurrentUser(c)
		if !ok || !u.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, resp.Fail("admin privileges required"))
			return
		}
		c.Next()
	}
}

func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, ok := c.Get(KeyCurrentUser)
	if !ok {
		return nil, false
	}
	u, ok := v.(*domain.User)
	return u, ok
}
