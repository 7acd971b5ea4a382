package services

import (
	"context"
	"errors"
	"testing"

	"github.com/EldritchWeaver/MatchPoint/repositories"
	"github.com/EldritchWeaver/MatchPoint/utils"
)

func (e *testEnv) userService() UserService {
	return NewUserService(e.userRepo)
}

func TestUserServiceCreateHashesPassword(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	svc := env.userService()
	ctx := context.Background()

	user, err := svc.Create(ctx, CreateUserInput{
		Name:     "Ana Torres",
		Nickname: "anat",
		Email:    "ana@example.com",
		Password: "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if user.PasswordHash == "s3cret-pass" {
		t.Fatal("password stored in plaintext")
	}
	if !utils.CheckPasswordHash("s3cret-pass", user.PasswordHash) {
		t.Fatal("stored hash does not verify against the password")
	}
}

func TestUserServiceCreateValidation(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	svc := env.userService()
	ctx := context.Background()

	tests := []struct {
		name    string
		input   CreateUserInput
		wantErr error
	}{
		{"missing name", CreateUserInput{Nickname: "n", Email: "e@example.com", Password: "p"}, ErrNameRequired},
		{"missing nickname", CreateUserInput{Name: "N", Email: "e@example.com", Password: "p"}, ErrNicknameRequired},
		{"missing email", CreateUserInput{Name: "N", Nickname: "n", Password: "p"}, ErrEmailRequired},
		{"missing password", CreateUserInput{Name: "N", Nickname: "n", Email: "e@example.com"}, ErrPasswordRequired},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(ctx, tc.input); !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestUserServiceEmailConflict(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	svc := env.userService()
	ctx := context.Background()

	env.seedUser(t, "first")

	_, err := svc.Create(ctx, CreateUserInput{
		Name:     "Second",
		Nickname: "second",
		Email:    "first@example.com",
		Password: "p",
	})
	if !errors.Is(err, repositories.ErrUserEmailConflict) {
		t.Fatalf("expected ErrUserEmailConflict, got %v", err)
	}
}

func TestUserServiceUpdateKeepsHashWithoutPassword(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	svc := env.userService()
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateUserInput{
		Name:     "Ana Torres",
		Nickname: "anat",
		Email:    "ana@example.com",
		Password: "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := svc.Update(ctx, created.ID, UpdateUserInput{
		Name:     "Ana T.",
		Nickname: "anat",
		Email:    "ana@example.com",
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.PasswordHash != created.PasswordHash {
		t.Fatal("omitting the password must not change the hash")
	}

	newPass := "brand-new-pass"
	updated, err = svc.Update(ctx, created.ID, UpdateUserInput{
		Name:     "Ana T.",
		Nickname: "anat",
		Email:    "ana@example.com",
		Password: &newPass,
	})
	if err != nil {
		t.Fatalf("Update with password: %v", err)
	}
	if !utils.CheckPasswordHash(newPass, updated.PasswordHash) {
		t.Fatal("new password does not verify")
	}
}

func TestUserServiceDeleteAbsent(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	svc := env.userService()

	deleted, err := svc.Delete(context.Background(), 999)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if deleted {
		t.Fatal("expected no row to be deleted")
	}
}

func TestUserServiceDeleteCaptainBlocked(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	svc := env.userService()
	ctx := context.Background()

	captain := env.seedUser(t, "cap")
	env.seedTeam(t, "Blockers", captain.ID)

	_, err := svc.Delete(ctx, captain.ID)
	if !errors.Is(err, repositories.ErrUserInUse) {
		t.Fatalf("expected ErrUserInUse, got %v", err)
	}
}
