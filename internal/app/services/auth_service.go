package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/davnat/scolaris/internal/app/models"
	"github.com/davnat/scolaris/internal/app/models/dto"
	"github.com/davnat/scolaris/internal/pkg/apperrors"
	authpkg "github.com/davnat/scolaris/internal/pkg/auth"
)

// UserStore is the identity surface AuthService depends on.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// AuthService authenticates users and issues tokens.
type AuthService struct {
	users  UserStore
	jwt    *authpkg.JWTService
	logger zerolog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, jwt *authpkg.JWTService, logger zerolog.Logger) *AuthService {
	return &AuthService{
		users:  users,
		jwt:    jwt,
		logger: logger,
	}
}

// Login verifies credentials and returns a token pair. An unknown email
// and a wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !authpkg.CheckPassword(user.Password, req.Password) {
		s.logger.Warn().Str("email", req.Email).Msg("Login failed: wrong password")
		return nil, apperrors.ErrInvalidCredentials
	}

	accessToken, refreshToken, expiresIn, err := s.jwt.GenerateTokenPair(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Str("role", string(user.Role)).Msg("User logged in")
	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
	}, nil
}
