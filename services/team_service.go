package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/EldritchWeaver/MatchPoint/models"
	"github.com/EldritchWeaver/MatchPoint/repositories"
	"github.com/EldritchWeaver/MatchPoint/storage"
)

type TeamInput struct {
	Name      string `json:"nombre"`
	CaptainID int    `json:"id_capitan"`
}

type TeamService interface {
	Create(ctx context.Context, input TeamInput) (*models.Team, error)
	GetByID(ctx context.Context, id int) (*models.Team, error)
	List(ctx context.Context, skip, limit int) ([]models.Team, error)
	ListMembers(ctx context.Context, teamID int) ([]models.Member, error)
	Update(ctx context.Context, id int, input TeamInput) (*models.Team, error)
	UploadCrest(ctx context.Context, id int, contentType string, body io.Reader) (*models.Team, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type teamService struct {
	db         *sql.DB
	teamRepo   repositories.TeamRepository
	userRepo   repositories.UserRepository
	memberRepo repositories.MemberRepository
	uploader   storage.FileUploader
}

func NewTeamService(
	db *sql.DB,
	teamRepo repositories.TeamRepository,
	userRepo repositories.UserRepository,
	memberRepo repositories.MemberRepository,
	uploader storage.FileUploader,
) TeamService {
	return &teamService{
		db:         db,
		teamRepo:   teamRepo,
		userRepo:   userRepo,
		memberRepo: memberRepo,
		uploader:   uploader,
	}
}

// Create checks name uniqueness, captain existence and captain exclusivity
// in that order, then inserts, all in one transaction.
func (s *teamService) Create(ctx context.Context, input TeamInput) (*models.Team, error) {
	if input.Name == "" {
		return nil, ErrNameRequired
	}

	team := &models.Team{Name: input.Name, CaptainID: input.CaptainID}
	err := runInTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := s.checkTeamRules(ctx, tx, input, 0); err != nil {
			return err
		}
		return s.teamRepo.Create(ctx, tx, team)
	})
	if err != nil {
		return nil, err
	}
	return team, nil
}

func (s *teamService) GetByID(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	populateTeamCrestURL(team, s.uploader)
	return team, nil
}

func (s *teamService) List(ctx context.Context, skip, limit int) ([]models.Team, error) {
	teams, err := s.teamRepo.List(ctx, skip, limit)
	if err != nil {
		return nil, err
	}
	for i := range teams {
		populateTeamCrestURL(&teams[i], s.uploader)
	}
	return teams, nil
}

func (s *teamService) ListMembers(ctx context.Context, teamID int) ([]models.Member, error) {
	if _, err := s.teamRepo.GetByID(ctx, nil, teamID); err != nil {
		return nil, err
	}
	return s.memberRepo.ListByTeam(ctx, teamID)
}

func (s *teamService) Update(ctx context.Context, id int, input TeamInput) (*models.Team, error) {
	if input.Name == "" {
		return nil, ErrNameRequired
	}

	var team *models.Team
	err := runInTx(ctx, s.db, func(tx *sql.Tx) error {
		current, err := s.teamRepo.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := s.checkTeamRules(ctx, tx, input, id); err != nil {
			return err
		}
		current.Name = input.Name
		current.CaptainID = input.CaptainID
		if err := s.teamRepo.Update(ctx, tx, current); err != nil {
			return err
		}
		team = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	populateTeamCrestURL(team, s.uploader)
	return team, nil
}

func (s *teamService) UploadCrest(ctx context.Context, id int, contentType string, body io.Reader) (*models.Team, error) {
	if s.uploader == nil {
		return nil, ErrUploaderDisabled
	}
	team, err := s.teamRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}

	ext, err := extensionForContentType(contentType)
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("teams/%d/crest_%s%s", id, uuid.NewString(), ext)

	if _, err := s.uploader.Upload(ctx, key, contentType, body); err != nil {
		return nil, fmt.Errorf("failed to upload crest: %w", err)
	}
	if err := s.teamRepo.UpdateCrestKey(ctx, id, &key); err != nil {
		return nil, err
	}

	if team.CrestKey != nil && *team.CrestKey != "" {
		// The new crest is already stored; a leaked old object is not
		// worth failing the request over.
		_ = s.uploader.Delete(ctx, *team.CrestKey)
	}

	team.CrestKey = &key
	populateTeamCrestURL(team, s.uploader)
	return team, nil
}

func (s *teamService) Delete(ctx context.Context, id int) (bool, error) {
	return s.teamRepo.Delete(ctx, id)
}

func (s *teamService) checkTeamRules(ctx context.Context, tx *sql.Tx, input TeamInput, excludeID int) error {
	existing, err := s.teamRepo.FindByName(ctx, tx, input.Name)
	if err != nil && !errors.Is(err, repositories.ErrTeamNotFound) {
		return fmt.Errorf("failed to check team name: %w", err)
	}
	if existing != nil && existing.ID != excludeID {
		return ErrNameTaken
	}

	exists, err := s.userRepo.ExistsByID(ctx, tx, input.CaptainID)
	if err != nil {
		return fmt.Errorf("failed to check captain: %w", err)
	}
	if !exists {
		return repositories.ErrTeamCaptainInvalid
	}

	captained, err := s.teamRepo.FindByCaptain(ctx, tx, input.CaptainID)
	if err != nil && !errors.Is(err, repositories.ErrTeamNotFound) {
		return fmt.Errorf("failed to check captain exclusivity: %w", err)
	}
	if captained != nil && captained.ID != excludeID {
		return ErrCaptainAlreadyAssigned
	}
	return nil
}
