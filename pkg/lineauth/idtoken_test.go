package lineauth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret, subject string, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestVerifyIDToken(t *testing.T) {
	verifier := NewVerifier("channel-secret")

	signed := signToken(t, "channel-secret", "U1234", time.Now().Add(time.Hour))
	subject, err := verifier.VerifyIDToken(signed)
	require.NoError(t, err)
	assert.Equal(t, "U1234", subject)
}

func TestVerifyIDTokenWrongSecret(t *testing.T) {
	verifier := NewVerifier("channel-secret")

	signed := signToken(t, "other-secret", "U1234", time.Now().Add(time.Hour))
	_, err := verifier.VerifyIDToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyIDTokenExpired(t *testing.T) {
	verifier := NewVerifier("channel-secret")

	signed := signToken(t, "channel-secret", "U1234", time.Now().Add(-time.Hour))
	_, err := verifier.VerifyIDToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyIDTokenMissingSubject(t *testing.T) {
	verifier := NewVerifier("channel-secret")

	signed := signToken(t, "channel-secret", "", time.Now().Add(time.Hour))
	_, err := verifier.VerifyIDToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifierDisabledWithoutSecret(t *testing.T) {
	assert.False(t, NewVerifier("").Enabled())
	assert.True(t, NewVerifier("channel-secret").Enabled())
}

func TestVerifyIDTokenGarbage(t *testing.T) {
	verifier := NewVerifier("channel-secret")

	_, err := verifier.VerifyIDToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
