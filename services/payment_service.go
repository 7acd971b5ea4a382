package services

import (
	"context"

	"github.com/EldritchWeaver/MatchPoint/models"
	"github.com/EldritchWeaver/MatchPoint/repositories"
)

type PaymentInput struct {
	TeamID       int                  `json:"id_equipo"`
	TournamentID int                  `json:"id_torneo"`
	AmountCents  int64                `json:"monto_cent"`
	Status       models.PaymentStatus `json:"estado"`
}

type PaymentService interface {
	Create(ctx context.Context, input PaymentInput) (*models.Payment, error)
	GetByID(ctx context.Context, id int) (*models.Payment, error)
	List(ctx context.Context, skip, limit int) ([]models.Payment, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]models.Payment, error)
	UpdateStatus(ctx context.Context, id int, status models.PaymentStatus) (*models.Payment, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type paymentService struct {
	paymentRepo repositories.PaymentRepository
}

func NewPaymentService(paymentRepo repositories.PaymentRepository) PaymentService {
	return &paymentService{paymentRepo: paymentRepo}
}

func (s *paymentService) Create(ctx context.Context, input PaymentInput) (*models.Payment, error) {
	if input.AmountCents < 0 {
		return nil, ErrNegativeAmount
	}
	if input.Status != "" && !input.Status.Valid() {
		return nil, ErrInvalidPayStatus
	}

	payment := &models.Payment{
		TeamID:       input.TeamID,
		TournamentID: input.TournamentID,
		AmountCents:  input.AmountCents,
		Status:       input.Status,
	}
	if err := s.paymentRepo.Create(ctx, nil, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *paymentService) GetByID(ctx context.Context, id int) (*models.Payment, error) {
	return s.paymentRepo.GetByID(ctx, id)
}

func (s *paymentService) List(ctx context.Context, skip, limit int) ([]models.Payment, error) {
	return s.paymentRepo.List(ctx, skip, limit)
}

func (s *paymentService) ListByTournament(ctx context.Context, tournamentID int) ([]models.Payment, error) {
	return s.paymentRepo.ListByTournament(ctx, tournamentID)
}

// UpdateStatus moves a payment between pendiente and confirmado. Both
// directions are allowed.
func (s *paymentService) UpdateStatus(ctx context.Context, id int, status models.PaymentStatus) (*models.Payment, error) {
	if !status.Valid() {
		return nil, ErrInvalidPayStatus
	}
	if err := s.paymentRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.paymentRepo.GetByID(ctx, id)
}

func (s *paymentService) Delete(ctx context.Context, id int) (bool, error) {
	return s.paymentRepo.Delete(ctx, id)
}
