package security

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer([]byte("test-secret"), time.Hour)

	token, err := issuer.GenerateToken(42)
	require.NoError(t, err)

	decoded, err := jwtauth.VerifyToken(issuer.JWTAuth(), token)
	require.NoError(t, err)
	claims, err := decoded.AsMap(context.Background())
	require.NoError(t, err)

	id, err := GetUserIDFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, 42, id)
}

func TestTokenFromOtherKeyIsRejected(t *testing.T) {
	token, err := NewTokenIssuer([]byte("one"), time.Hour).GenerateToken(1)
	require.NoError(t, err)

	_, err = jwtauth.VerifyToken(NewTokenIssuer([]byte("two"), time.Hour).JWTAuth(), token)
	assert.Error(t, err)
}

func TestGetUserIDFromClaims(t *testing.T) {
	_, err := GetUserIDFromClaims(map[string]interface{}{})
	assert.Error(t, err)

	_, err = GetUserIDFromClaims(map[string]interface{}{"user_id": "abc"})
	assert.Error(t, err)

	_, err = GetUserIDFromClaims(map[string]interface{}{"user_id": "0"})
	assert.Error(t, err)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)
	assert.True(t, CheckPasswordHash("s3cret", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}
