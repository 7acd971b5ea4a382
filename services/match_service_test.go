package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/EldritchWeaver/MatchPoint/live"
	"github.com/EldritchWeaver/MatchPoint/models"
)

func (e *testEnv) seedMatchFixture(t *testing.T) (teamA, teamB *models.Team, tournament *models.Tournament) {
	t.Helper()
	organizer := e.seedUser(t, "org")
	capA := e.seedUser(t, "capa")
	capB := e.seedUser(t, "capb")
	teamA = e.seedTeam(t, "Alpha", capA.ID)
	teamB = e.seedTeam(t, "Beta", capB.ID)
	tournament = e.seedTournament(t, "Fixture Cup", organizer.ID)
	return teamA, teamB, tournament
}

func TestMatchServiceCreate(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	svc := env.matchService(nil)
	ctx := context.Background()

	teamA, teamB, tournament := env.seedMatchFixture(t)

	match, err := svc.Create(ctx, MatchInput{
		TournamentID:  tournament.ID,
		HomeTeamID:    teamA.ID,
		VisitorTeamID: teamB.ID,
		ScheduledAt:   time.Date(2026, 9, 2, 12, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if match.HomeScore != nil || match.VisitorScore != nil {
		t.Fatal("expected match without a result")
	}
}

func TestMatchServiceSameTeamTwice(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	svc := env.matchService(nil)

	_, err := svc.Create(context.Background(), MatchInput{TournamentID: 1, HomeTeamID: 7, VisitorTeamID: 7})
	if !errors.Is(err, ErrSameTeamTwice) {
		t.Fatalf("expected ErrSameTeamTwice, got %v", err)
	}
}

func TestMatchServicePartialResult(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	svc := env.matchService(nil)

	home := 2
	_, err := svc.Create(context.Background(), MatchInput{
		TournamentID:  1,
		HomeTeamID:    1,
		VisitorTeamID: 2,
		HomeScore:     &home,
	})
	if !errors.Is(err, ErrPartialResult) {
		t.Fatalf("expected ErrPartialResult, got %v", err)
	}
}

func TestMatchServiceNegativeScore(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	svc := env.matchService(nil)

	home, visitor := -1, 3
	_, err := svc.Create(context.Background(), MatchInput{
		TournamentID:  1,
		HomeTeamID:    1,
		VisitorTeamID: 2,
		HomeScore:     &home,
		VisitorScore:  &visitor,
	})
	if !errors.Is(err, ErrNegativeScore) {
		t.Fatalf("expected ErrNegativeScore, got %v", err)
	}
}

func TestMatchServiceUpdateResultBroadcasts(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	hub := &recordingHub{}
	svc := env.matchService(hub)
	ctx := context.Background()

	teamA, teamB, tournament := env.seedMatchFixture(t)
	match, err := svc.Create(ctx, MatchInput{
		TournamentID:  tournament.ID,
		HomeTeamID:    teamA.ID,
		VisitorTeamID: teamB.ID,
		ScheduledAt:   time.Date(2026, 9, 2, 12, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := svc.UpdateResult(ctx, match.ID, 3, 1)
	if err != nil {
		t.Fatalf("UpdateResult: %v", err)
	}
	if updated.HomeScore == nil || *updated.HomeScore != 3 {
		t.Fatalf("unexpected home score %v", updated.HomeScore)
	}
	if updated.VisitorScore == nil || *updated.VisitorScore != 1 {
		t.Fatalf("unexpected visitor score %v", updated.VisitorScore)
	}

	sent := hub.sent()
	if len(sent) != 1 {
		t.Fatalf("expected 1 broadcast, got %d", len(sent))
	}
	if sent[0].room != live.TournamentRoom(tournament.ID) {
		t.Fatalf("unexpected room %q", sent[0].room)
	}
	payload, ok := sent[0].message.(map[string]interface{})
	if !ok {
		t.Fatalf("unexpected message type %T", sent[0].message)
	}
	if payload["type"] != "MATCH_RESULT_UPDATED" {
		t.Fatalf("unexpected event type %v", payload["type"])
	}

	if _, err := svc.UpdateResult(ctx, match.ID, -2, 0); !errors.Is(err, ErrNegativeScore) {
		t.Fatalf("expected ErrNegativeScore, got %v", err)
	}
}
