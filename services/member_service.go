package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/EldritchWeaver/MatchPoint/models"
	"github.com/EldritchWeaver/MatchPoint/repositories"
)

type MemberInput struct {
	TeamID int               `json:"id_equipo"`
	UserID int               `json:"id_usuario"`
	Role   models.MemberRole `json:"rol"`
}

type MemberService interface {
	Create(ctx context.Context, input MemberInput) (*models.Member, error)
	GetByID(ctx context.Context, id int) (*models.Member, error)
	List(ctx context.Context, skip, limit int) ([]models.Member, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type memberService struct {
	db         *sql.DB
	memberRepo repositories.MemberRepository
	teamRepo   repositories.TeamRepository
	userRepo   repositories.UserRepository
}

func NewMemberService(
	db *sql.DB,
	memberRepo repositories.MemberRepository,
	teamRepo repositories.TeamRepository,
	userRepo repositories.UserRepository,
) MemberService {
	return &memberService{
		db:         db,
		memberRepo: memberRepo,
		teamRepo:   teamRepo,
		userRepo:   userRepo,
	}
}

// Create enforces, in order: the (team, user) pair is new, both references
// exist, and the user is not already on any team. The whole sequence runs in
// one transaction; the captain-per-team rule is settled by the partial unique
// index at insert time.
func (s *memberService) Create(ctx context.Context, input MemberInput) (*models.Member, error) {
	if input.Role != "" && !input.Role.Valid() {
		return nil, ErrInvalidRole
	}

	member := &models.Member{TeamID: input.TeamID, UserID: input.UserID, Role: input.Role}
	err := runInTx(ctx, s.db, func(tx *sql.Tx) error {
		existing, err := s.memberRepo.FindByTeamAndUser(ctx, tx, input.TeamID, input.UserID)
		if err != nil && !errors.Is(err, repositories.ErrMemberNotFound) {
			return fmt.Errorf("failed to check membership pair: %w", err)
		}
		if existing != nil {
			return repositories.ErrMemberPairConflict
		}

		teamExists, err := s.teamRepo.ExistsByID(ctx, tx, input.TeamID)
		if err != nil {
			return fmt.Errorf("failed to check team: %w", err)
		}
		userExists, err := s.userRepo.ExistsByID(ctx, tx, input.UserID)
		if err != nil {
			return fmt.Errorf("failed to check user: %w", err)
		}
		if !teamExists || !userExists {
			return repositories.ErrMemberRefInvalid
		}

		onTeam, err := s.memberRepo.HasMembership(ctx, tx, input.UserID)
		if err != nil {
			return fmt.Errorf("failed to check existing membership: %w", err)
		}
		if onTeam {
			return ErrUserAlreadyOnTeam
		}

		if err := s.memberRepo.Create(ctx, tx, member); err != nil {
			if errors.Is(err, repositories.ErrMemberCaptainConflict) {
				return ErrCaptainAlreadyAssigned
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return member, nil
}

func (s *memberService) GetByID(ctx context.Context, id int) (*models.Member, error) {
	return s.memberRepo.GetByID(ctx, id)
}

func (s *memberService) List(ctx context.Context, skip, limit int) ([]models.Member, error) {
	return s.memberRepo.List(ctx, skip, limit)
}

func (s *memberService) Delete(ctx context.Context, id int) (bool, error) {
	return s.memberRepo.Delete(ctx, id)
}
