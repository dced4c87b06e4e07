package middleware

import (
	"net/http"
	"strings"

	"github.com/propstake/token-ledger/internal/domain/entity"
	domainerr "github.com/propstake/token-ledger/internal/domain/error"
	coreport "github.com/propstake/token-ledger/internal/domain/port/core"
	"github.com/propstake/token-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Context keys populated by the auth middleware
const (
	ContextUserIDKey = "auth_user_id"
	ContextRoleKey   = "auth_role"
)

// tokenClaims are the claims carried by the identity provider's access token.
// The subject holds the user identifier.
type tokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Auth validates the Bearer token and stores the caller's identity and role
// in the request context
func Auth(secret string, logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
				Message: "Missing or malformed Authorization header",
			})
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		claims := &tokenClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid || claims.Subject == "" {
			logger.Warn("Rejected access token", map[string]any{
				"path": c.Request.URL.Path,
				"ip":   c.ClientIP(),
			})
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
				Message: "Invalid or expired token",
			})
			return
		}

		role := claims.Role
		if role == "" {
			role = string(entity.RoleUser)
		}

		c.Set(ContextUserIDKey, claims.Subject)
		c.Set(ContextRoleKey, role)
		c.Next()
	}
}

// RequireAdmin rejects callers whose token does not carry the admin role.
// Must run after Auth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextRoleKey) != string(entity.RoleAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrAgentForbidden),
				Message: "Admin role required",
			})
			return
		}
		c.Next()
	}
}
