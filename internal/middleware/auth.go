package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/recipe-api/backend/internal/service"
	"github.com/recipe-api/backend/internal/types"
)

// Context keys set by AuthMiddleware.
const (
	ContextUserID  = "user_id"
	ContextIsStaff = "is_staff"
	ContextClaims  = "claims"
)

// TokenValidator is an interface for validating JWT tokens
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*types.TokenClaims, error)
}

// AuthMiddleware creates a middleware that validates JWT tokens. Both the
// "Bearer" and the "Token" scheme are accepted.
func AuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, types.ErrorResponse{Error: "authentication credentials were not provided"})
			return
		}

		scheme, token, ok := strings.Cut(strings.TrimSpace(authHeader), " ")
		token = strings.TrimSpace(token)
		if !ok || token == "" || (!strings.EqualFold(scheme, "Bearer") && !strings.EqualFold(scheme, "Token")) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, types.ErrorResponse{Error: "invalid authorization header format"})
			return
		}

		claims, err := validator.ValidateToken(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, service.ErrInvalidToken) && !errors.Is(err, service.ErrTokenRevoked) {
				slog.Error("token validation failed", "error", err, "request_id", RequestIDFromContext(c))
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, types.ErrorResponse{Error: "invalid or expired token"})
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextIsStaff, claims.IsStaff)
		c.Set(ContextClaims, claims)
		c.Next()
	}
}

// RequireStaff rejects authenticated users without staff rights. It must
// run after AuthMiddleware.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(ContextIsStaff) {
			c.AbortWithStatusJSON(http.StatusForbidden, types.ErrorResponse{Error: "you do not have permission to perform this action"})
			return
		}
		c.Next()
	}
}
