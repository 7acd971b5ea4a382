package services

import (
	"context"

	"github.com/EldritchWeaver/MatchPoint/models"
	"github.com/EldritchWeaver/MatchPoint/repositories"
)

type InscriptionInput struct {
	TeamID       int `json:"id_equipo"`
	TournamentID int `json:"id_torneo"`
}

type InscriptionService interface {
	Create(ctx context.Context, input InscriptionInput) (*models.Inscription, error)
	GetByID(ctx context.Context, id int) (*models.Inscription, error)
	List(ctx context.Context, skip, limit int) ([]models.Inscription, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]models.Inscription, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type inscriptionService struct {
	inscriptionRepo repositories.InscriptionRepository
}

func NewInscriptionService(inscriptionRepo repositories.InscriptionRepository) InscriptionService {
	return &inscriptionService{inscriptionRepo: inscriptionRepo}
}

// Create relies on the declared constraints: a duplicate (team, tournament)
// pair is a uniqueness failure, a missing reference a foreign-key failure.
// The two cannot co-occur, so a single insert preserves the enforcement
// order. Capacity (max_equipos) is intentionally not checked here.
func (s *inscriptionService) Create(ctx context.Context, input InscriptionInput) (*models.Inscription, error) {
	inscription := &models.Inscription{TeamID: input.TeamID, TournamentID: input.TournamentID}
	if err := s.inscriptionRepo.Create(ctx, nil, inscription); err != nil {
		return nil, err
	}
	return inscription, nil
}

func (s *inscriptionService) GetByID(ctx context.Context, id int) (*models.Inscription, error) {
	return s.inscriptionRepo.GetByID(ctx, id)
}

func (s *inscriptionService) List(ctx context.Context, skip, limit int) ([]models.Inscription, error) {
	return s.inscriptionRepo.List(ctx, skip, limit)
}

func (s *inscriptionService) ListByTournament(ctx context.Context, tournamentID int) ([]models.Inscription, error) {
	return s.inscriptionRepo.ListByTournament(ctx, tournamentID)
}

func (s *inscriptionService) Delete(ctx context.Context, id int) (bool, error) {
	return s.inscriptionRepo.Delete(ctx, id)
}
