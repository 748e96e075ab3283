package auth

import (
	"testing"

	"github.com/lcarvalho/academico/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeBasicCredentials(t *testing.T) {
	assert.Equal(t, "YWRtaW46YWRtaW4xMjM=", EncodeBasicCredentials("admin", "admin123"))
	assert.Equal(t, "dXNlcjp1c2VyMTIz", EncodeBasicCredentials("user", "user123"))
}

func TestDecodeBasicCredentials(t *testing.T) {
	t.Run("round trips", func(t *testing.T) {
		token := EncodeBasicCredentials("admin", "admin123")

		username, password, err := DecodeBasicCredentials(token)

		require.NoError(t, err)
		assert.Equal(t, "admin", username)
		assert.Equal(t, "admin123", password)
	})

	t.Run("password may contain a colon", func(t *testing.T) {
		token := EncodeBasicCredentials("admin", "pass:word")

		username, password, err := DecodeBasicCredentials(token)

		require.NoError(t, err)
		assert.Equal(t, "admin", username)
		assert.Equal(t, "pass:word", password)
	})

	t.Run("rejects invalid base64", func(t *testing.T) {
		_, _, err := DecodeBasicCredentials("%%%")
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("rejects a payload without separator", func(t *testing.T) {
		_, _, err := DecodeBasicCredentials(EncodeBasicCredentials("adminonly", ""))
		require.NoError(t, err)

		_, _, err = DecodeBasicCredentials("YWRtaW4=")
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})
}

func TestExtractBasicToken(t *testing.T) {
	t.Run("extracts the token", func(t *testing.T) {
		token, err := ExtractBasicToken("Basic YWRtaW46YWRtaW4xMjM=")

		require.NoError(t, err)
		assert.Equal(t, "YWRtaW46YWRtaW4xMjM=", token)
	})

	t.Run("rejects other schemes", func(t *testing.T) {
		_, err := ExtractBasicToken("Bearer abc")
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("rejects an empty token", func(t *testing.T) {
		_, err := ExtractBasicToken("Basic ")
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})
}
