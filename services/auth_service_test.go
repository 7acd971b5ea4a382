package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/EldritchWeaver/MatchPoint/models"
)

const testJWTSecret = "test-secret"

func (e *testEnv) authService() AuthService {
	return NewAuthService(e.userRepo, testJWTSecret, 30*time.Minute)
}

func TestAuthServiceLogin(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.userService().Create(ctx, CreateUserInput{
		Name:     "Ana Torres",
		Nickname: "anat",
		Email:    "ana@example.com",
		Password: "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("Create user: %v", err)
	}

	token, err := env.authService().Login(ctx, models.Credentials{
		Email:    "ana@example.com",
		Password: "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token.TokenType != "bearer" {
		t.Fatalf("unexpected token type %q", token.TokenType)
	}

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token.AccessToken, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token does not parse: %v", err)
	}
	if claims.Subject != fmt.Sprintf("%d", user.ID) {
		t.Fatalf("expected subject %d, got %q", user.ID, claims.Subject)
	}
	if claims.ExpiresAt == nil || !claims.ExpiresAt.After(time.Now()) {
		t.Fatal("expected a future expiry")
	}
}

// Unknown email and wrong password are indistinguishable to the caller.
func TestAuthServiceLoginRejections(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.userService().Create(ctx, CreateUserInput{
		Name:     "Ana Torres",
		Nickname: "anat",
		Email:    "ana@example.com",
		Password: "s3cret-pass",
	}); err != nil {
		t.Fatalf("Create user: %v", err)
	}
	svc := env.authService()

	if _, err := svc.Login(ctx, models.Credentials{Email: "ana@example.com", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(ctx, models.Credentials{Email: "nobody@example.com", Password: "s3cret-pass"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", err)
	}
}
