package middleware

import (
	"net/http"
	"strings"

	"tutorhub/internal/domain"
	"tutorhub/internal/pkg/jwt"
	"tutorhub/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	ctxUserID = "user_id"
	ctxRole   = "role"
)

// JWTAuth validates the bearer token and stores the principal on the context.
func JWTAuth(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Abort(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "Authorization header is required")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			response.Abort(c, http.StatusUnauthorized, "INVALID_AUTH_FORMAT", "Authorization header must be 'Bearer <token>'")
			return
		}

		claims, err := jwtService.ValidateToken(strings.TrimSpace(parts[1]))
		if err != nil || !domain.Role(claims.Role).Valid() {
			response.Abort(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxRole, claims.Role)
		c.Next()
	}
}

// PrincipalFrom returns the caller stored by JWTAuth.
func PrincipalFrom(c *gin.Context) (domain.Principal, bool) {
	id := c.GetString(ctxUserID)
	role := c.GetString(ctxRole)
	if id == "" || role == "" {
		return domain.Principal{}, false
	}
	return domain.Principal{ID: id, Role: domain.Role(role)}, true
}

// MustPrincipal returns the caller or writes a 401 and reports false.
func MustPrincipal(c *gin.Context) (domain.Principal, bool) {
	p, ok := PrincipalFrom(c)
	if !ok {
		response.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
	}
	return p, ok
}
