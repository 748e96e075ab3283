package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lcarvalho/academico/internal/app/models"
	"github.com/lcarvalho/academico/internal/pkg/apperrors"
	"github.com/lcarvalho/academico/internal/pkg/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVerifier struct {
	username string
	password string
}

func (f *fakeVerifier) VerifyCredentials(ctx context.Context, username, password string) (*models.User, error) {
	if username != f.username || password != f.password {
		return nil, apperrors.ErrInvalidCredentials
	}
	return &models.User{ID: 1, Username: username}, nil
}

func newAuthTestRouter() (*gin.Engine, *string) {
	gin.SetMode(gin.TestMode)

	var seenUsername string
	mw := NewAuthMiddleware(&fakeVerifier{username: "admin", password: "admin123"})

	router := gin.New()
	router.GET("/protected", mw.BasicAuth(), func(c *gin.Context) {
		seenUsername = c.GetString("username")
		c.Status(http.StatusOK)
	})

	return router, &seenUsername
}

func doAuthRequest(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestBasicAuth(t *testing.T) {
	t.Run("accepts a valid token", func(t *testing.T) {
		router, seenUsername := newAuthTestRouter()
		token := auth.EncodeBasicCredentials("admin", "admin123")

		rec := doAuthRequest(router, "Basic "+token)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "admin", *seenUsername)
	})

	t.Run("rejects a missing header", func(t *testing.T) {
		router, _ := newAuthTestRouter()

		rec := doAuthRequest(router, "")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "AUTH_002")
	})

	t.Run("rejects a non-basic scheme", func(t *testing.T) {
		router, _ := newAuthTestRouter()

		rec := doAuthRequest(router, "Bearer sometoken")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects a token that is not base64", func(t *testing.T) {
		router, _ := newAuthTestRouter()

		rec := doAuthRequest(router, "Basic !!!not-base64!!!")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "AUTH_001")
	})

	t.Run("rejects wrong credentials", func(t *testing.T) {
		router, _ := newAuthTestRouter()
		token := auth.EncodeBasicCredentials("admin", "wrong")

		rec := doAuthRequest(router, "Basic "+token)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "AUTH_001")
	})
}
