package utils

import (
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueVerifyRoundTrip(t *testing.T) {
	svc := NewTokenService([]byte("secret"), time.Hour)

	token, err := svc.Issue("a@b.com")
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", claims.Email)
}

func TestTokenExpiresAfterTTL(t *testing.T) {
	issued := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	svc := NewTokenService([]byte("secret"), 0).WithClock(func() time.Time { return issued })

	token, err := svc.Issue("a@b.com")
	require.NoError(t, err)

	inside := svc.WithClock(func() time.Time { return issued.Add(59 * time.Minute) })
	_, err = inside.Verify(token)
	assert.NoError(t, err)

	after := svc.WithClock(func() time.Time { return issued.Add(61 * time.Minute) })
	_, err = after.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsOtherSecret(t *testing.T) {
	token, err := NewTokenService([]byte("one"), time.Hour).Issue("a@b.com")
	require.NoError(t, err)

	_, err = NewTokenService([]byte("two"), time.Hour).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	svc := NewTokenService([]byte("secret"), time.Hour)
	for _, token := range []string{"", "abc", "a.b.c"} {
		_, err := svc.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken, token)
	}
}

func TestVerifyRejectsUnsignedToken(t *testing.T) {
	claims := &Claims{Email: "a@b.com", StandardClaims: jwt.StandardClaims{ExpiresAt: time.Now().Add(time.Hour).Unix()}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokenService([]byte("secret"), time.Hour).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssueYieldsDistinctTokens(t *testing.T) {
	svc := NewTokenService([]byte("secret"), time.Hour)

	first, err := svc.Issue("a@b.com")
	require.NoError(t, err)
	second, err := svc.Issue("a@b.com")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
