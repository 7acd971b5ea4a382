package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/EldritchWeaver/MatchPoint/db"
	"github.com/EldritchWeaver/MatchPoint/models"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dbConn, err := db.Open(filepath.Join(t.TempDir(), "test.db"), 5*time.Second)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { dbConn.Close() })
	return dbConn
}

func seedUser(t *testing.T, dbConn *sql.DB, tag string) *models.User {
	t.Helper()
	repo := NewSQLiteUserRepository(dbConn)
	user := &models.User{
		Name:         "User " + tag,
		Nickname:     "nick_" + tag,
		Email:        fmt.Sprintf("%s@example.com", tag),
		PasswordHash: "$2a$12$fakehashfortesting0000000000000000000000000000000000",
	}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("failed to seed user %s: %v", tag, err)
	}
	return user
}

func seedTeam(t *testing.T, dbConn *sql.DB, name string, captainID int) *models.Team {
	t.Helper()
	repo := NewSQLiteTeamRepository(dbConn)
	team := &models.Team{Name: name, CaptainID: captainID}
	if err := repo.Create(context.Background(), nil, team); err != nil {
		t.Fatalf("failed to seed team %s: %v", name, err)
	}
	return team
}

func seedTournament(t *testing.T, dbConn *sql.DB, name string, organizerID int) *models.Tournament {
	t.Helper()
	repo := NewSQLiteTournamentRepository(dbConn)
	tournament := &models.Tournament{
		Name:        name,
		StartDate:   time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 9, 7, 18, 0, 0, 0, time.UTC),
		MaxTeams:    8,
		OrganizerID: organizerID,
	}
	if err := repo.Create(context.Background(), nil, tournament); err != nil {
		t.Fatalf("failed to seed tournament %s: %v", name, err)
	}
	return tournament
}

func seedInscription(t *testing.T, dbConn *sql.DB, teamID, tournamentID int) *models.Inscription {
	t.Helper()
	repo := NewSQLiteInscriptionRepository(dbConn)
	inscription := &models.Inscription{TeamID: teamID, TournamentID: tournamentID}
	if err := repo.Create(context.Background(), nil, inscription); err != nil {
		t.Fatalf("failed to seed inscription: %v", err)
	}
	return inscription
}
