package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/EldritchWeaver/MatchPoint/models"
	"github.com/EldritchWeaver/MatchPoint/repositories"
)

// TokenResponse is the login payload: a bearer token and its type.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type AuthService interface {
	Login(ctx context.Context, credentials models.Credentials) (*TokenResponse, error)
}

type authService struct {
	userRepo repositories.UserRepository
	secret   []byte
	tokenTTL time.Duration
}

func NewAuthService(userRepo repositories.UserRepository, secret string, tokenTTL time.Duration) AuthService {
	return &authService{
		userRepo: userRepo,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
	}
}

// Login verifies the credentials against the stored bcrypt hash and issues
// an HS256 token. Unknown email and wrong password are indistinguishable to
// the caller.
func (s *authService) Login(ctx context.Context, credentials models.Credentials) (*TokenResponse, error) {
	if credentials.Email == "" || credentials.Password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByEmail(ctx, credentials.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(credentials.Password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to compare password hash: %w", err)
	}

	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   fmt.Sprintf("%d", user.ID),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &TokenResponse{AccessToken: signed, TokenType: "bearer"}, nil
}
