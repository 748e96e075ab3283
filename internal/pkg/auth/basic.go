package auth

import (
	"encoding/base64"
	"strings"

	"github.com/lcarvalho/academico/internal/pkg/apperrors"
)

// EncodeBasicCredentials encodes a username/password pair into the token carried
// by the Authorization header. The encoding is reversible on purpose: the server
// verifies the credentials on every request, there is no issued session token.
func EncodeBasicCredentials(username, password string) string {
	return base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
}

// DecodeBasicCredentials decodes a Basic token back into its username/password pair.
func DecodeBasicCredentials(token string) (username, password string, err error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return "", "", apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "malformed basic credentials")
	}

	username, password, ok := strings.Cut(string(raw), ":")
	if !ok {
		return "", "", apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "malformed basic credentials")
	}

	return username, password, nil
}

// ExtractBasicToken extracts the token from an "Authorization: Basic <token>" header value.
func ExtractBasicToken(header string) (string, error) {
	const prefix = "Basic "
	if !strings.HasPrefix(header, prefix) {
		return "", apperrors.ErrUnauthorized
	}

	token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	if token == "" {
		return "", apperrors.ErrUnauthorized
	}

	return token, nil
}
