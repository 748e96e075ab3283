package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lcarvalho/academico/internal/app/models"
	"github.com/lcarvalho/academico/internal/app/models/dto"
	"github.com/lcarvalho/academico/internal/pkg/auth"
)

// CredentialVerifier checks a username/password pair and returns the matching user.
type CredentialVerifier interface {
	VerifyCredentials(ctx context.Context, username, password string) (*models.User, error)
}

// AuthMiddleware for authentication
type AuthMiddleware struct {
	authService CredentialVerifier
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(authService CredentialVerifier) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
	}
}

// BasicAuth validates the "Authorization: Basic <token>" header on every
// request. The token is the reversible client-side credential encoding, so
// verification happens here on each call rather than at a login endpoint.
func (m *AuthMiddleware) BasicAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			errorDetail = errorDetail.WithDetails("Authorization header missing")

			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		token, err := auth.ExtractBasicToken(authHeader)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			errorDetail = errorDetail.WithDetails("Invalid authorization header format")

			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		username, password, err := auth.DecodeBasicCredentials(token)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid credentials")
			errorDetail = errorDetail.WithDetails("Malformed basic credentials")

			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		user, err := m.authService.VerifyCredentials(c.Request.Context(), username, password)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid credentials")

			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Set("userID", user.ID)
		c.Set("username", user.Username)

		c.Next()
	}
}
