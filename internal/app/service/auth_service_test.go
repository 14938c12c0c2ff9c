package service

import (
	"context"
	"edu_platform/internal/common"
	"edu_platform/internal/common/security"
	"edu_platform/internal/domain/repository"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupAndLogin(t *testing.T) {
	tokens := security.NewTokenIssuer([]byte("test-secret"), time.Hour)
	svc := NewAuthService(repository.NewMemoryStore(), tokens)
	ctx := context.Background()

	signed, err := svc.Signup(ctx, SignupRequest{Username: " ana ", Password: "pw123456"})
	require.NoError(t, err)
	assert.Equal(t, "ana", signed.User.Username)
	assert.Empty(t, signed.User.HashedPassword)
	assert.NotEmpty(t, signed.Token)

	_, err = svc.Signup(ctx, SignupRequest{Username: "ana", Password: "other"})
	assert.ErrorIs(t, err, common.ErrConflict)

	logged, err := svc.Login(ctx, LoginRequest{Username: "ana", Password: "pw123456"})
	require.NoError(t, err)
	assert.Equal(t, signed.User.ID, logged.User.ID)

	_, err = svc.Login(ctx, LoginRequest{Username: "ana", Password: "wrong"})
	assert.ErrorIs(t, err, common.ErrUnauthorized)
	_, err = svc.Login(ctx, LoginRequest{Username: "nobody", Password: "pw123456"})
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestSignupRequiresCredentials(t *testing.T) {
	svc := NewAuthService(repository.NewMemoryStore(), security.NewTokenIssuer([]byte("k"), time.Hour))

	_, err := svc.Signup(context.Background(), SignupRequest{Username: "  ", Password: "x"})
	assert.ErrorIs(t, err, common.ErrBadRequest)
	_, err = svc.Login(context.Background(), LoginRequest{Username: "ana"})
	assert.ErrorIs(t, err, common.ErrBadRequest)
}
