package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/EldritchWeaver/MatchPoint/models"
)

func TestMemberRepositoryDefaultsRole(t *testing.T) {
	t.Parallel()
	dbConn := openTestDB(t)
	repo := NewSQLiteMemberRepository(dbConn)
	ctx := context.Background()

	captain := seedUser(t, dbConn, "cap")
	player := seedUser(t, dbConn, "p1")
	team := seedTeam(t, dbConn, "Defaults", captain.ID)

	member := &models.Member{TeamID: team.ID, UserID: player.ID}
	if err := repo.Create(ctx, nil, member); err != nil {
		t.Fatalf("create member: %v", err)
	}
	if member.Role != models.RolePlayer {
		t.Fatalf("expected default role jugador, got %s", member.Role)
	}
}

func TestMemberRepositoryPairConflict(t *testing.T) {
	t.Parallel()
	dbConn := openTestDB(t)
	repo := NewSQLiteMemberRepository(dbConn)
	ctx := context.Background()

	captain := seedUser(t, dbConn, "cap")
	player := seedUser(t, dbConn, "p1")
	team := seedTeam(t, dbConn, "Doubles", captain.ID)

	first := &models.Member{TeamID: team.ID, UserID: player.ID}
	if err := repo.Create(ctx, nil, first); err != nil {
		t.Fatalf("create member: %v", err)
	}

	// The same pair again, even with another role, is a uniqueness failure.
	second := &models.Member{TeamID: team.ID, UserID: player.ID, Role: models.RoleSubstitute}
	if err := repo.Create(ctx, nil, second); !errors.Is(err, ErrMemberPairConflict) {
		t.Fatalf("expected ErrMemberPairConflict, got %v", err)
	}
}

func TestMemberRepositoryCaptainRoleExclusive(t *testing.T) {
	t.Parallel()
	dbConn := openTestDB(t)
	repo := NewSQLiteMemberRepository(dbConn)
	ctx := context.Background()

	captain := seedUser(t, dbConn, "cap")
	p1 := seedUser(t, dbConn, "p1")
	p2 := seedUser(t, dbConn, "p2")
	team := seedTeam(t, dbConn, "OneCaptain", captain.ID)

	first := &models.Member{TeamID: team.ID, UserID: p1.ID, Role: models.RoleCaptain}
	if err := repo.Create(ctx, nil, first); err != nil {
		t.Fatalf("create captain member: %v", err)
	}

	second := &models.Member{TeamID: team.ID, UserID: p2.ID, Role: models.RoleCaptain}
	if err := repo.Create(ctx, nil, second); !errors.Is(err, ErrMemberCaptainConflict) {
		t.Fatalf("expected ErrMemberCaptainConflict, got %v", err)
	}
}

func TestMemberRepositoryRefInvalid(t *testing.T) {
	t.Parallel()
	dbConn := openTestDB(t)
	repo := NewSQLiteMemberRepository(dbConn)

	member := &models.Member{TeamID: 999, UserID: 999}
	if err := repo.Create(context.Background(), nil, member); !errors.Is(err, ErrMemberRefInvalid) {
		t.Fatalf("expected ErrMemberRefInvalid, got %v", err)
	}
}

func TestMemberRepositoryHasMembership(t *testing.T) {
	t.Parallel()
	dbConn := openTestDB(t)
	repo := NewSQLiteMemberRepository(dbConn)
	ctx := context.Background()

	captain := seedUser(t, dbConn, "cap")
	player := seedUser(t, dbConn, "p1")
	outsider := seedUser(t, dbConn, "p2")
	team := seedTeam(t, dbConn, "Insiders", captain.ID)

	member := &models.Member{TeamID: team.ID, UserID: player.ID}
	if err := repo.Create(ctx, nil, member); err != nil {
		t.Fatalf("create member: %v", err)
	}

	has, err := repo.HasMembership(ctx, nil, player.ID)
	if err != nil || !has {
		t.Fatalf("expected membership for player: %v, %v", has, err)
	}
	has, err = repo.HasMembership(ctx, nil, outsider.ID)
	if err != nil || has {
		t.Fatalf("expected no membership for outsider: %v, %v", has, err)
	}
}
