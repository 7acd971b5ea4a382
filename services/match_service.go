package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/EldritchWeaver/MatchPoint/models"
	"github.com/EldritchWeaver/MatchPoint/repositories"
)

type MatchInput struct {
	TournamentID  int       `json:"id_torneo"`
	HomeTeamID    int       `json:"equipo_local"`
	VisitorTeamID int       `json:"equipo_visitante"`
	ScheduledAt   time.Time `json:"fecha"`
	HomeScore     *int      `json:"resultado_local"`
	VisitorScore  *int      `json:"resultado_visitante"`
}

type MatchService interface {
	Create(ctx context.Context, input MatchInput) (*models.Match, error)
	GetByID(ctx context.Context, id int) (*models.Match, error)
	List(ctx context.Context, skip, limit int) ([]models.Match, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]models.Match, error)
	UpdateResult(ctx context.Context, id int, homeScore, visitorScore int) (*models.Match, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type matchService struct {
	matchRepo repositories.MatchRepository
	hub       Broadcaster
	logger    *slog.Logger
}

func NewMatchService(matchRepo repositories.MatchRepository, hub Broadcaster, logger *slog.Logger) MatchService {
	return &matchService{matchRepo: matchRepo, hub: hub, logger: logger}
}

func (s *matchService) Create(ctx context.Context, input MatchInput) (*models.Match, error) {
	if input.HomeTeamID == input.VisitorTeamID {
		return nil, ErrSameTeamTwice
	}
	if err := validateScores(input.HomeScore, input.VisitorScore); err != nil {
		return nil, err
	}

	match := &models.Match{
		TournamentID:  input.TournamentID,
		HomeTeamID:    input.HomeTeamID,
		VisitorTeamID: input.VisitorTeamID,
		ScheduledAt:   input.ScheduledAt,
		HomeScore:     input.HomeScore,
		VisitorScore:  input.VisitorScore,
	}
	if err := s.matchRepo.Create(ctx, nil, match); err != nil {
		return nil, err
	}
	return match, nil
}

func (s *matchService) GetByID(ctx context.Context, id int) (*models.Match, error) {
	return s.matchRepo.GetByID(ctx, id)
}

func (s *matchService) List(ctx context.Context, skip, limit int) ([]models.Match, error) {
	return s.matchRepo.List(ctx, skip, limit)
}

func (s *matchService) ListByTournament(ctx context.Context, tournamentID int) ([]models.Match, error) {
	return s.matchRepo.ListByTournament(ctx, tournamentID)
}

// UpdateResult records both scores at once and notifies the tournament room.
func (s *matchService) UpdateResult(ctx context.Context, id int, homeScore, visitorScore int) (*models.Match, error) {
	if homeScore < 0 || visitorScore < 0 {
		return nil, ErrNegativeScore
	}
	if err := s.matchRepo.UpdateResult(ctx, id, homeScore, visitorScore); err != nil {
		return nil, err
	}
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.BroadcastToRoom(tournamentRoom(match.TournamentID), map[string]interface{}{
			"type":    "MATCH_RESULT_UPDATED",
			"payload": match,
		})
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "match result updated",
			slog.Int("match_id", id),
			slog.Int("resultado_local", homeScore),
			slog.Int("resultado_visitante", visitorScore),
		)
	}
	return match, nil
}

func (s *matchService) Delete(ctx context.Context, id int) (bool, error) {
	return s.matchRepo.Delete(ctx, id)
}

// validateScores accepts either no result or a complete non-negative one.
func validateScores(home, visitor *int) error {
	if (home == nil) != (visitor == nil) {
		return ErrPartialResult
	}
	if home != nil && (*home < 0 || *visitor < 0) {
		return ErrNegativeScore
	}
	return nil
}
