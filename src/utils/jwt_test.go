package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenServiceRoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret")

	token, err := svc.Generate("507f1f77bcf86cd799439011", "a@x.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "507f1f77bcf86cd799439011", claims.UserID)
	assert.Equal(t, "a@x.com", claims.Email)
}

func TestTokenServiceRejectsBadTokens(t *testing.T) {
	svc := NewTokenService("test-secret")

	t.Run("EmptyToken", func(t *testing.T) {
		_, err := svc.Parse("")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := svc.Parse("not.a.jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("TamperedSignature", func(t *testing.T) {
		token, err := svc.Generate("507f1f77bcf86cd799439011", "a@x.com")
		require.NoError(t, err)

		_, err = svc.Parse(token + "x")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		other := NewTokenService("a-different-secret")
		token, err := other.Generate("507f1f77bcf86cd799439011", "a@x.com")
		require.NoError(t, err)

		_, err = svc.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		claims := SessionClaims{
			UserID: "507f1f77bcf86cd799439011",
			Email:  "a@x.com",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			},
		}
		expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = svc.Parse(expired)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
