package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionTTL is the validity of both the signed token and the session cookie.
// The two expire independently, so they must be derived from the same value.
const SessionTTL = 7 * 24 * time.Hour

// ErrInvalidToken covers every structural, signature, and expiry failure.
// Callers must not trust any claim from a token that produced this error.
var ErrInvalidToken = errors.New("invalid token")

type SessionClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies session tokens with a secret injected at
// construction. There is no fallback secret; main refuses to start without one.
type TokenService struct {
	secret []byte
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret)}
}

// Generate issues a signed token binding the user identity, valid for SessionTTL.
func (s *TokenService) Generate(userID, email string) (string, error) {
	claims := SessionClaims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(SessionTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Parse verifies signature and expiry. Any failure wraps ErrInvalidToken;
// there is no partial decode. Only token-validation failures may carry that
// sentinel: if Parse ever grows a failure mode that is not the caller's
// token being bad, return it unwrapped so the auth gate reports it as an
// internal error instead of a 401.
func (s *TokenService) Parse(tokenStr string) (*SessionClaims, error) {
	if tokenStr == "" {
		return nil, fmt.Errorf("%w: empty token string", ErrInvalidToken)
	}

	token, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || token == nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: invalid token claims", ErrInvalidToken)
	}

	return claims, nil
}
