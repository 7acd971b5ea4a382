package services

import (
	"context"
	"fmt"

	"github.com/EldritchWeaver/MatchPoint/models"
	"github.com/EldritchWeaver/MatchPoint/repositories"
	"github.com/EldritchWeaver/MatchPoint/utils"
)

type CreateUserInput struct {
	Name     string `json:"nombre"`
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateUserInput struct {
	Name     string  `json:"nombre"`
	Nickname string  `json:"nickname"`
	Email    string  `json:"email"`
	Password *string `json:"password,omitempty"`
}

type UserService interface {
	Create(ctx context.Context, input CreateUserInput) (*models.User, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByNickname(ctx context.Context, nickname string) (*models.User, error)
	List(ctx context.Context, skip, limit int) ([]models.User, error)
	Update(ctx context.Context, id int, input UpdateUserInput) (*models.User, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type userService struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) Create(ctx context.Context, input CreateUserInput) (*models.User, error) {
	if err := validateUserInput(input.Name, input.Nickname, input.Email); err != nil {
		return nil, err
	}
	if input.Password == "" {
		return nil, ErrPasswordRequired
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         input.Name,
		Nickname:     input.Nickname,
		Email:        input.Email,
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id int) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.userRepo.GetByEmail(ctx, email)
}

func (s *userService) GetByNickname(ctx context.Context, nickname string) (*models.User, error) {
	return s.userRepo.GetByNickname(ctx, nickname)
}

func (s *userService) List(ctx context.Context, skip, limit int) ([]models.User, error) {
	return s.userRepo.List(ctx, skip, limit)
}

func (s *userService) Update(ctx context.Context, id int, input UpdateUserInput) (*models.User, error) {
	if err := validateUserInput(input.Name, input.Nickname, input.Email); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Name = input.Name
	user.Nickname = input.Nickname
	user.Email = input.Email
	if input.Password != nil {
		if *input.Password == "" {
			return nil, ErrPasswordRequired
		}
		hash, err := utils.HashPassword(*input.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id int) (bool, error) {
	return s.userRepo.Delete(ctx, id)
}

func validateUserInput(name, nickname, email string) error {
	if name == "" {
		return ErrNameRequired
	}
	if nickname == "" {
		return ErrNicknameRequired
	}
	if email == "" {
		return ErrEmailRequired
	}
	return nil
}
