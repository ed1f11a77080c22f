package jwttoken

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "rbconsole/pkg/domain-errors"
)

func issue(t *testing.T, claims jwt.RegisteredClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-only-key"))
	require.NoError(t, err)
	return token
}

func Test_Inspect_ValidToken(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	token := issue(t, jwt.RegisteredClaims{
		Subject:   "analyst@example.com",
		Issuer:    "rulebound",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(30 * time.Minute)),
	})

	info, err := Inspect(token)
	require.NoError(t, err)
	assert.Equal(t, "analyst@example.com", info.Subject)
	assert.Equal(t, "rulebound", info.Issuer)
	assert.True(t, info.IssuedAt.Equal(now))
	assert.False(t, info.Expired(now))
	assert.Equal(t, 30*time.Minute, info.Remaining(now))
}

func Test_Inspect_ExpiredToken(t *testing.T) {
	now := time.Now()
	token := issue(t, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour))})

	info, err := Inspect(token)
	require.NoError(t, err)
	assert.True(t, info.Expired(now))
	assert.Zero(t, info.Remaining(now))
}

func Test_Inspect_NoExpiry(t *testing.T) {
	info, err := Inspect(issue(t, jwt.RegisteredClaims{Subject: "svc"}))
	require.NoError(t, err)
	assert.False(t, info.Expired(time.Now().Add(24*365*time.Hour)))
}

func Test_Inspect_OpaqueToken(t *testing.T) {
	_, err := Inspect("invalid-token-string")
	require.ErrorIs(t, err, ErrOpaqueToken)
}

func Test_Inspect_EmptyToken(t *testing.T) {
	_, err := Inspect("")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}
