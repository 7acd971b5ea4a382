package services

import (
	"context"
	"errors"
	"testing"

	"github.com/EldritchWeaver/MatchPoint/models"
	"github.com/EldritchWeaver/MatchPoint/repositories"
)

func (e *testEnv) paymentService() PaymentService {
	return NewPaymentService(e.paymentRepo)
}

func TestPaymentServiceCreateDefaultsPending(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	svc := env.paymentService()
	ctx := context.Background()

	organizer := env.seedUser(t, "org")
	captain := env.seedUser(t, "cap")
	team := env.seedTeam(t, "Payers", captain.ID)
	tournament := env.seedTournament(t, "Paid Cup", organizer.ID)

	payment, err := svc.Create(ctx, PaymentInput{TeamID: team.ID, TournamentID: tournament.ID, AmountCents: 2500})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if payment.Status != models.PaymentPending {
		t.Fatalf("expected default estado pendiente, got %s", payment.Status)
	}
	if payment.PaidAt.IsZero() {
		t.Fatal("expected fecha_pago to be set")
	}
}

func TestPaymentServiceNegativeAmount(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	svc := env.paymentService()

	_, err := svc.Create(context.Background(), PaymentInput{TeamID: 1, TournamentID: 1, AmountCents: -100})
	if !errors.Is(err, ErrNegativeAmount) {
		t.Fatalf("expected ErrNegativeAmount, got %v", err)
	}
}

func TestPaymentServiceInvalidStatus(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	svc := env.paymentService()

	_, err := svc.Create(context.Background(), PaymentInput{TeamID: 1, TournamentID: 1, AmountCents: 100, Status: "rechazado"})
	if !errors.Is(err, ErrInvalidPayStatus) {
		t.Fatalf("expected ErrInvalidPayStatus, got %v", err)
	}
}

func TestPaymentServiceInvalidReferences(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	svc := env.paymentService()

	_, err := svc.Create(context.Background(), PaymentInput{TeamID: 999, TournamentID: 999, AmountCents: 100})
	if !errors.Is(err, repositories.ErrPaymentRefInvalid) {
		t.Fatalf("expected ErrPaymentRefInvalid, got %v", err)
	}
}

// Confirmation can be reverted: pendiente and confirmado are both reachable
// from each other.
func TestPaymentServiceUpdateStatusBothDirections(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	svc := env.paymentService()
	ctx := context.Background()

	organizer := env.seedUser(t, "org")
	captain := env.seedUser(t, "cap")
	team := env.seedTeam(t, "Payers", captain.ID)
	tournament := env.seedTournament(t, "Paid Cup", organizer.ID)

	payment, err := svc.Create(ctx, PaymentInput{TeamID: team.ID, TournamentID: tournament.ID, AmountCents: 2500})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	confirmed, err := svc.UpdateStatus(ctx, payment.ID, models.PaymentConfirmed)
	if err != nil {
		t.Fatalf("UpdateStatus confirm: %v", err)
	}
	if confirmed.Status != models.PaymentConfirmed {
		t.Fatalf("expected confirmado, got %s", confirmed.Status)
	}

	reverted, err := svc.UpdateStatus(ctx, payment.ID, models.PaymentPending)
	if err != nil {
		t.Fatalf("UpdateStatus revert: %v", err)
	}
	if reverted.Status != models.PaymentPending {
		t.Fatalf("expected pendiente, got %s", reverted.Status)
	}

	if _, err := svc.UpdateStatus(ctx, payment.ID, "rechazado"); !errors.Is(err, ErrInvalidPayStatus) {
		t.Fatalf("expected ErrInvalidPayStatus, got %v", err)
	}
}
