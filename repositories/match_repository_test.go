package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/EldritchWeaver/MatchPoint/models"
)

func TestMatchRepositorySameTeamRejected(t *testing.T) {
	t.Parallel()
	dbConn := openTestDB(t)
	repo := NewSQLiteMatchRepository(dbConn)
	ctx := context.Background()

	organizer := seedUser(t, dbConn, "org")
	captain := seedUser(t, dbConn, "cap")
	team := seedTeam(t, dbConn, "Solo", captain.ID)
	tournament := seedTournament(t, dbConn, "Mirror Cup", organizer.ID)

	match := &models.Match{
		TournamentID:  tournament.ID,
		HomeTeamID:    team.ID,
		VisitorTeamID: team.ID,
		ScheduledAt:   time.Date(2026, 9, 3, 12, 0, 0, 0, time.UTC),
	}
	if err := repo.Create(ctx, nil, match); !errors.Is(err, ErrMatchInvalid) {
		t.Fatalf("expected ErrMatchInvalid, got %v", err)
	}
}

func TestMatchRepositoryRefInvalid(t *testing.T) {
	t.Parallel()
	dbConn := openTestDB(t)
	repo := NewSQLiteMatchRepository(dbConn)

	match := &models.Match{
		TournamentID:  999,
		HomeTeamID:    1,
		VisitorTeamID: 2,
		ScheduledAt:   time.Date(2026, 9, 3, 12, 0, 0, 0, time.UTC),
	}
	if err := repo.Create(context.Background(), nil, match); !errors.Is(err, ErrMatchRefInvalid) {
		t.Fatalf("expected ErrMatchRefInvalid, got %v", err)
	}
}

func TestMatchRepositoryUpdateResult(t *testing.T) {
	t.Parallel()
	dbConn := openTestDB(t)
	repo := NewSQLiteMatchRepository(dbConn)
	ctx := context.Background()

	organizer := seedUser(t, dbConn, "org")
	capA := seedUser(t, dbConn, "capa")
	capB := seedUser(t, dbConn, "capb")
	teamA := seedTeam(t, dbConn, "Reds", capA.ID)
	teamB := seedTeam(t, dbConn, "Blues", capB.ID)
	tournament := seedTournament(t, dbConn, "Derby", organizer.ID)

	match := &models.Match{
		TournamentID:  tournament.ID,
		HomeTeamID:    teamA.ID,
		VisitorTeamID: teamB.ID,
		ScheduledAt:   time.Date(2026, 9, 4, 20, 0, 0, 0, time.UTC),
	}
	if err := repo.Create(ctx, nil, match); err != nil {
		t.Fatalf("create match: %v", err)
	}
	if match.HasResult() {
		t.Fatal("new match must not have a result")
	}

	if err := repo.UpdateResult(ctx, match.ID, 3, 1); err != nil {
		t.Fatalf("UpdateResult: %v", err)
	}

	got, err := repo.GetByID(ctx, match.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !got.HasResult() || *got.HomeScore != 3 || *got.VisitorScore != 1 {
		t.Fatalf("unexpected result: %+v", got)
	}

	if err := repo.UpdateResult(ctx, 999, 1, 0); !errors.Is(err, ErrMatchNotFound) {
		t.Fatalf("expected ErrMatchNotFound, got %v", err)
	}
}

func TestMatchRepositoryListByTournamentOrdering(t *testing.T) {
	t.Parallel()
	dbConn := openTestDB(t)
	repo := NewSQLiteMatchRepository(dbConn)
	ctx := context.Background()

	organizer := seedUser(t, dbConn, "org")
	capA := seedUser(t, dbConn, "capa")
	capB := seedUser(t, dbConn, "capb")
	teamA := seedTeam(t, dbConn, "Early", capA.ID)
	teamB := seedTeam(t, dbConn, "Late", capB.ID)
	tournament := seedTournament(t, dbConn, "Schedule", organizer.ID)

	later := &models.Match{
		TournamentID:  tournament.ID,
		HomeTeamID:    teamA.ID,
		VisitorTeamID: teamB.ID,
		ScheduledAt:   time.Date(2026, 9, 6, 18, 0, 0, 0, time.UTC),
	}
	earlier := &models.Match{
		TournamentID:  tournament.ID,
		HomeTeamID:    teamB.ID,
		VisitorTeamID: teamA.ID,
		ScheduledAt:   time.Date(2026, 9, 2, 18, 0, 0, 0, time.UTC),
	}
	for _, m := range []*models.Match{later, earlier} {
		if err := repo.Create(ctx, nil, m); err != nil {
			t.Fatalf("create match: %v", err)
		}
	}

	matches, err := repo.ListByTournament(ctx, tournament.ID)
	if err != nil {
		t.Fatalf("ListByTournament: %v", err)
	}
	if len(matches) != 2 || matches[0].ID != earlier.ID {
		t.Fatalf("expected chronological order, got %+v", matches)
	}
}
