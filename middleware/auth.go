package middleware

import (
	"net/http"
	"strings"

	"kuuslauk/models"
	"kuuslauk/utils"

	"github.com/gin-gonic/gin"
)

const (
	ContextAdminClaims = "admin_claims"
	ContextAdminID     = "admin_id"
)

// SessionParser verifies an admin session token.
type SessionParser interface {
	ParseSession(token string) (*utils.AdminClaims, error)
}

// AdminAuth accepts the session cookie or an Authorization: Bearer header.
// The cookie wins when both are present.
func AdminAuth(parser SessionParser, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c, cookieName)
		if token == "" {
			abortUnauthorized(c, "Authentication required")
			return
		}

		claims, err := parser.ParseSession(token)
		if err != nil {
			abortUnauthorized(c, "Invalid or expired session")
			return
		}

		c.Set(ContextAdminClaims, claims)
		c.Set(ContextAdminID, claims.AdminID)
		c.Next()
	}
}

func sessionToken(c *gin.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// AdminClaims returns the claims stored by AdminAuth.
func AdminClaims(c *gin.Context) (*utils.AdminClaims, bool) {
	v, ok := c.Get(ContextAdminClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*utils.AdminClaims)
	return claims, ok
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
		Success:   false,
		Message:   message,
		Code:      models.ErrCodeUnauthorized,
		RequestID: RequestID(c),
	})
}
