package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davnat/scolaris/internal/app/models"
	"github.com/davnat/scolaris/internal/app/models/dto"
	"github.com/davnat/scolaris/internal/pkg/apperrors"
	authpkg "github.com/davnat/scolaris/internal/pkg/auth"
)

func newAuthFixture(t *testing.T) (*fakeUsers, *AuthService) {
	t.Helper()

	users := newFakeUsers()
	jwtService := authpkg.NewJWTService(authpkg.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test",
	})
	return users, NewAuthService(users, jwtService, zerolog.Nop())
}

func TestLogin(t *testing.T) {
	users, svc := newAuthFixture(t)

	hash, err := authpkg.HashPassword("s3cret-pass")
	require.NoError(t, err)
	users.byID[1] = &models.User{ID: 1, Email: "admin@example.edu", Password: hash, Role: models.RoleAdmin}

	tokens, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "admin@example.edu",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Equal(t, int(time.Hour.Seconds()), tokens.ExpiresIn)
}

func TestLoginWrongPassword(t *testing.T) {
	users, svc := newAuthFixture(t)

	hash, err := authpkg.HashPassword("s3cret-pass")
	require.NoError(t, err)
	users.byID[1] = &models.User{ID: 1, Email: "admin@example.edu", Password: hash, Role: models.RoleAdmin}

	_, err = svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "admin@example.edu",
		Password: "wrong-pass",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	_, svc := newAuthFixture(t)

	// An unknown email reads exactly like a wrong password.
	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@example.edu",
		Password: "whatever1",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}
