package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	m := NewTokenManager("secret", "issuer", 1)
	userID := uuid.New()

	token, expiresAt, err := m.Generate(userID, "alice")
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	require.Equal(t, userID, claims.UserID)
	require.Equal(t, "alice", claims.Username)
	require.Equal(t, userID.String(), claims.Subject)
}

func TestParseRejectsWrongSecretAndIssuer(t *testing.T) {
	token, _, err := NewTokenManager("secret", "issuer", 1).Generate(uuid.New(), "alice")
	require.NoError(t, err)

	_, err = NewTokenManager("other", "issuer", 1).Parse(token)
	require.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)

	_, err = NewTokenManager("secret", "someone-else", 1).Parse(token)
	require.ErrorIs(t, err, jwt.ErrTokenInvalidIssuer)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	m := NewTokenManager("secret", "issuer", 1)
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, _, err := m.Generate(uuid.New(), "alice")
	require.NoError(t, err)

	_, err = m.Parse(token)
	require.True(t, errors.Is(err, jwt.ErrTokenExpired))
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := NewTokenManager("secret", "issuer", 1).Parse("not-a-token")
	require.Error(t, err)
}
