package services

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/EldritchWeaver/MatchPoint/db"
	"github.com/EldritchWeaver/MatchPoint/models"
	"github.com/EldritchWeaver/MatchPoint/repositories"
)

type testEnv struct {
	db              *sql.DB
	userRepo        repositories.UserRepository
	teamRepo        repositories.TeamRepository
	memberRepo      repositories.MemberRepository
	tournamentRepo  repositories.TournamentRepository
	inscriptionRepo repositories.InscriptionRepository
	paymentRepo     repositories.PaymentRepository
	matchRepo       repositories.MatchRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dbConn, err := db.Open(filepath.Join(t.TempDir(), "test.db"), 5*time.Second)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { dbConn.Close() })

	return &testEnv{
		db:              dbConn,
		userRepo:        repositories.NewSQLiteUserRepository(dbConn),
		teamRepo:        repositories.NewSQLiteTeamRepository(dbConn),
		memberRepo:      repositories.NewSQLiteMemberRepository(dbConn),
		tournamentRepo:  repositories.NewSQLiteTournamentRepository(dbConn),
		inscriptionRepo: repositories.NewSQLiteInscriptionRepository(dbConn),
		paymentRepo:     repositories.NewSQLitePaymentRepository(dbConn),
		matchRepo:       repositories.NewSQLiteMatchRepository(dbConn),
	}
}

func (e *testEnv) teamService() TeamService {
	return NewTeamService(e.db, e.teamRepo, e.userRepo, e.memberRepo, nil)
}

func (e *testEnv) memberService() MemberService {
	return NewMemberService(e.db, e.memberRepo, e.teamRepo, e.userRepo)
}

func (e *testEnv) tournamentService(hub Broadcaster) TournamentService {
	return NewTournamentService(e.db, e.tournamentRepo, e.userRepo, e.inscriptionRepo, e.paymentRepo, e.matchRepo, nil, hub, nil)
}

func (e *testEnv) matchService(hub Broadcaster) MatchService {
	return NewMatchService(e.matchRepo, hub, nil)
}

func (e *testEnv) seedUser(t *testing.T, tag string) *models.User {
	t.Helper()
	user := &models.User{
		Name:         "User " + tag,
		Nickname:     "nick_" + tag,
		Email:        fmt.Sprintf("%s@example.com", tag),
		PasswordHash: "x",
	}
	if err := e.userRepo.Create(context.Background(), user); err != nil {
		t.Fatalf("failed to seed user %s: %v", tag, err)
	}
	return user
}

func (e *testEnv) seedTeam(t *testing.T, name string, captainID int) *models.Team {
	t.Helper()
	team := &models.Team{Name: name, CaptainID: captainID}
	if err := e.teamRepo.Create(context.Background(), nil, team); err != nil {
		t.Fatalf("failed to seed team %s: %v", name, err)
	}
	return team
}

func (e *testEnv) seedTournament(t *testing.T, name string, organizerID int) *models.Tournament {
	t.Helper()
	tournament := &models.Tournament{
		Name:        name,
		StartDate:   time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 9, 7, 18, 0, 0, 0, time.UTC),
		MaxTeams:    8,
		OrganizerID: organizerID,
	}
	if err := e.tournamentRepo.Create(context.Background(), nil, tournament); err != nil {
		t.Fatalf("failed to seed tournament %s: %v", name, err)
	}
	return tournament
}

// recordingHub captures broadcasts for assertions.
type recordingHub struct {
	mu       sync.Mutex
	messages []broadcast
}

type broadcast struct {
	room    string
	message interface{}
}

func (h *recordingHub) BroadcastToRoom(roomID string, message interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages = append(h.messages, broadcast{room: roomID, message: message})
}

func (h *recordingHub) sent() []broadcast {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]broadcast(nil), h.messages...)
}
