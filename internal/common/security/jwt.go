package security

import (
	"errors"
	"strconv"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

// TokenIssuer signs and verifies HS256 bearer tokens carrying a user id.
type TokenIssuer struct {
	auth *jwtauth.JWTAuth
	exp  time.Duration
	now  func() time.Time
}

func NewTokenIssuer(key []byte, exp time.Duration) *TokenIssuer {
	return &TokenIssuer{
		auth: jwtauth.New("HS256", key, nil),
		exp:  exp,
		now:  time.Now,
	}
}

// JWTAuth exposes the underlying verifier for jwtauth.Verifier middleware.
func (t *TokenIssuer) JWTAuth() *jwtauth.JWTAuth {
	return t.auth
}

func (t *TokenIssuer) GenerateToken(userID int) (string, error) {
	now := t.now()
	claims := jwt.MapClaims{
		"user_id": strconv.Itoa(userID),
		"exp":     now.Add(t.exp).Unix(),
		"iat":     now.Unix(),
	}
	_, tokenString, err := t.auth.Encode(claims)
	return tokenString, err
}

// GetUserIDFromClaims reads the user_id claim written by GenerateToken.
func GetUserIDFromClaims(claims map[string]interface{}) (int, error) {
	raw, ok := claims["user_id"].(string)
	if !ok {
		return 0, errors.New("user_id claim is missing or not a string")
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, errors.New("user_id claim is not a positive integer")
	}
	return id, nil
}
