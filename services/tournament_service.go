package services

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/EldritchWeaver/MatchPoint/models"
	"github.com/EldritchWeaver/MatchPoint/repositories"
	"github.com/EldritchWeaver/MatchPoint/storage"
)

type TournamentInput struct {
	Name        string                  `json:"nombre"`
	Description *string                 `json:"descripcion"`
	StartDate   time.Time               `json:"fecha_inicio"`
	EndDate     time.Time               `json:"fecha_fin"`
	MaxTeams    int                     `json:"max_equipos"`
	Status      models.TournamentStatus `json:"estado"`
	StreamURL   *string                 `json:"stream_url"`
	OrganizerID int                     `json:"id_organizador"`
}

type TournamentService interface {
	Create(ctx context.Context, input TournamentInput) (*models.Tournament, error)
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	GetSummary(ctx context.Context, id int) (*models.TournamentSummary, error)
	List(ctx context.Context, skip, limit int) ([]models.Tournament, error)
	ListByStatus(ctx context.Context, status string) ([]models.Tournament, error)
	Update(ctx context.Context, id int, input TournamentInput) (*models.Tournament, error)
	UpdateStatus(ctx context.Context, id int, status models.TournamentStatus) (*models.Tournament, error)
	UploadBanner(ctx context.Context, id int, contentType string, body io.Reader) (*models.Tournament, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type tournamentService struct {
	db              *sql.DB
	tournamentRepo  repositories.TournamentRepository
	userRepo        repositories.UserRepository
	inscriptionRepo repositories.InscriptionRepository
	paymentRepo     repositories.PaymentRepository
	matchRepo       repositories.MatchRepository
	uploader        storage.FileUploader
	hub             Broadcaster
	logger          *slog.Logger
}

func NewTournamentService(
	db *sql.DB,
	tournamentRepo repositories.TournamentRepository,
	userRepo repositories.UserRepository,
	inscriptionRepo repositories.InscriptionRepository,
	paymentRepo repositories.PaymentRepository,
	matchRepo repositories.MatchRepository,
	uploader storage.FileUploader,
	hub Broadcaster,
	logger *slog.Logger,
) TournamentService {
	return &tournamentService{
		db:              db,
		tournamentRepo:  tournamentRepo,
		userRepo:        userRepo,
		inscriptionRepo: inscriptionRepo,
		paymentRepo:     paymentRepo,
		matchRepo:       matchRepo,
		uploader:        uploader,
		hub:             hub,
		logger:          logger,
	}
}

func (s *tournamentService) Create(ctx context.Context, input TournamentInput) (*models.Tournament, error) {
	if err := validateTournamentInput(input); err != nil {
		return nil, err
	}

	tournament := &models.Tournament{
		Name:        input.Name,
		Description: input.Description,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		MaxTeams:    input.MaxTeams,
		Status:      input.Status,
		StreamURL:   input.StreamURL,
		OrganizerID: input.OrganizerID,
	}
	err := runInTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := s.checkTournamentRules(ctx, tx, input, 0); err != nil {
			return err
		}
		return s.tournamentRepo.Create(ctx, tx, tournament)
	})
	if err != nil {
		return nil, err
	}
	return tournament, nil
}

func (s *tournamentService) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	populateTournamentBannerURL(tournament, s.uploader)
	return tournament, nil
}

// GetSummary loads the tournament and its dependent rows, fanning the three
// child reads out concurrently.
func (s *tournamentService) GetSummary(ctx context.Context, id int) (*models.TournamentSummary, error) {
	tournament, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	summary := &models.TournamentSummary{Tournament: tournament}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		inscriptions, err := s.inscriptionRepo.ListByTournament(gctx, id)
		if err != nil {
			return fmt.Errorf("failed to list inscriptions: %w", err)
		}
		summary.Inscriptions = inscriptions
		return nil
	})
	g.Go(func() error {
		payments, err := s.paymentRepo.ListByTournament(gctx, id)
		if err != nil {
			return fmt.Errorf("failed to list payments: %w", err)
		}
		summary.Payments = payments
		return nil
	})
	g.Go(func() error {
		matches, err := s.matchRepo.ListByTournament(gctx, id)
		if err != nil {
			return fmt.Errorf("failed to list matches: %w", err)
		}
		summary.Matches = matches
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summary, nil
}

func (s *tournamentService) List(ctx context.Context, skip, limit int) ([]models.Tournament, error) {
	tournaments, err := s.tournamentRepo.List(ctx, skip, limit)
	if err != nil {
		return nil, err
	}
	for i := range tournaments {
		populateTournamentBannerURL(&tournaments[i], s.uploader)
	}
	return tournaments, nil
}

// ListByStatus filters without validating: an unknown status simply matches
// nothing.
func (s *tournamentService) ListByStatus(ctx context.Context, status string) ([]models.Tournament, error) {
	tournaments, err := s.tournamentRepo.ListByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	for i := range tournaments {
		populateTournamentBannerURL(&tournaments[i], s.uploader)
	}
	return tournaments, nil
}

func (s *tournamentService) Update(ctx context.Context, id int, input TournamentInput) (*models.Tournament, error) {
	if err := validateTournamentInput(input); err != nil {
		return nil, err
	}

	var tournament *models.Tournament
	err := runInTx(ctx, s.db, func(tx *sql.Tx) error {
		current, err := s.tournamentRepo.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := s.checkTournamentRules(ctx, tx, input, id); err != nil {
			return err
		}
		current.Name = input.Name
		current.Description = input.Description
		current.StartDate = input.StartDate
		current.EndDate = input.EndDate
		current.MaxTeams = input.MaxTeams
		current.Status = input.Status
		current.StreamURL = input.StreamURL
		current.OrganizerID = input.OrganizerID
		if err := s.tournamentRepo.Update(ctx, tx, current); err != nil {
			return err
		}
		tournament = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	populateTournamentBannerURL(tournament, s.uploader)
	return tournament, nil
}

// UpdateStatus sets the estado directly. Any of the three recognized values
// is accepted from any current value; only unknown strings are rejected.
func (s *tournamentService) UpdateStatus(ctx context.Context, id int, status models.TournamentStatus) (*models.Tournament, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	if err := s.tournamentRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	tournament, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.BroadcastToRoom(tournamentRoom(id), map[string]interface{}{
			"type":    "TOURNAMENT_STATUS_UPDATED",
			"payload": tournament,
		})
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "tournament status updated",
			slog.Int("tournament_id", id),
			slog.String("estado", string(status)),
		)
	}
	return tournament, nil
}

func (s *tournamentService) UploadBanner(ctx context.Context, id int, contentType string, body io.Reader) (*models.Tournament, error) {
	if s.uploader == nil {
		return nil, ErrUploaderDisabled
	}
	tournament, err := s.tournamentRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}

	ext, err := extensionForContentType(contentType)
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("tournaments/%d/banner_%s%s", id, uuid.NewString(), ext)

	if _, err := s.uploader.Upload(ctx, key, contentType, body); err != nil {
		return nil, fmt.Errorf("failed to upload banner: %w", err)
	}
	if err := s.tournamentRepo.UpdateBannerKey(ctx, id, &key); err != nil {
		return nil, err
	}

	if tournament.BannerKey != nil && *tournament.BannerKey != "" {
		_ = s.uploader.Delete(ctx, *tournament.BannerKey)
	}

	tournament.BannerKey = &key
	populateTournamentBannerURL(tournament, s.uploader)
	return tournament, nil
}

// Delete removes the tournament with its inscriptions, payments and matches.
func (s *tournamentService) Delete(ctx context.Context, id int) (bool, error) {
	return s.tournamentRepo.Delete(ctx, id)
}

func (s *tournamentService) checkTournamentRules(ctx context.Context, tx *sql.Tx, input TournamentInput, excludeID int) error {
	taken, err := s.tournamentRepo.ExistsName(ctx, tx, input.Name, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check tournament name: %w", err)
	}
	if taken {
		return ErrNameTaken
	}

	exists, err := s.userRepo.ExistsByID(ctx, tx, input.OrganizerID)
	if err != nil {
		return fmt.Errorf("failed to check organizer: %w", err)
	}
	if !exists {
		return repositories.ErrTournamentOrganizerInvalid
	}
	return nil
}

func validateTournamentInput(input TournamentInput) error {
	if input.Name == "" {
		return ErrNameRequired
	}
	if input.MaxTeams <= 0 {
		return ErrInvalidCapacity
	}
	if input.Status != "" && !input.Status.Valid() {
		return ErrInvalidStatus
	}
	if input.EndDate.Before(input.StartDate) {
		return ErrInvalidDateRange
	}
	return nil
}
