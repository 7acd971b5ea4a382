package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/EldritchWeaver/MatchPoint/models"
)

func TestPaymentRepositoryDefaultsAndStatus(t *testing.T) {
	t.Parallel()
	dbConn := openTestDB(t)
	repo := NewSQLitePaymentRepository(dbConn)
	ctx := context.Background()

	organizer := seedUser(t, dbConn, "org")
	captain := seedUser(t, dbConn, "cap")
	team := seedTeam(t, dbConn, "Payers", captain.ID)
	tournament := seedTournament(t, dbConn, "Paid Cup", organizer.ID)

	payment := &models.Payment{TeamID: team.ID, TournamentID: tournament.ID, AmountCents: 2500}
	if err := repo.Create(ctx, nil, payment); err != nil {
		t.Fatalf("create payment: %v", err)
	}
	if payment.Status != models.PaymentPending {
		t.Fatalf("expected default estado pendiente, got %s", payment.Status)
	}
	if payment.PaidAt.IsZero() {
		t.Fatal("expected server-assigned payment time")
	}

	if _, err := repo.GetByID(ctx, payment.ID); err != nil {
		t.Fatalf("GetByID: %v", err)
	}

	if err := repo.UpdateStatus(ctx, payment.ID, models.PaymentConfirmed); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	got, err := repo.GetByID(ctx, payment.ID)
	if err != nil {
		t.Fatalf("GetByID after update: %v", err)
	}
	if got.Status != models.PaymentConfirmed {
		t.Fatalf("expected confirmado, got %s", got.Status)
	}
}

func TestPaymentRepositoryNegativeAmountRejected(t *testing.T) {
	t.Parallel()
	dbConn := openTestDB(t)
	repo := NewSQLitePaymentRepository(dbConn)
	ctx := context.Background()

	organizer := seedUser(t, dbConn, "org")
	captain := seedUser(t, dbConn, "cap")
	team := seedTeam(t, dbConn, "Debtors", captain.ID)
	tournament := seedTournament(t, dbConn, "Debt Cup", organizer.ID)

	payment := &models.Payment{TeamID: team.ID, TournamentID: tournament.ID, AmountCents: -1}
	if err := repo.Create(ctx, nil, payment); !errors.Is(err, ErrPaymentInvalid) {
		t.Fatalf("expected ErrPaymentInvalid, got %v", err)
	}
}

func TestPaymentRepositoryRefInvalid(t *testing.T) {
	t.Parallel()
	dbConn := openTestDB(t)
	repo := NewSQLitePaymentRepository(dbConn)

	payment := &models.Payment{TeamID: 999, TournamentID: 999, AmountCents: 100}
	if err := repo.Create(context.Background(), nil, payment); !errors.Is(err, ErrPaymentRefInvalid) {
		t.Fatalf("expected ErrPaymentRefInvalid, got %v", err)
	}
}

func TestInscriptionRepositoryPairConflict(t *testing.T) {
	t.Parallel()
	dbConn := openTestDB(t)
	repo := NewSQLiteInscriptionRepository(dbConn)
	ctx := context.Background()

	organizer := seedUser(t, dbConn, "org")
	captain := seedUser(t, dbConn, "cap")
	team := seedTeam(t, dbConn, "Joiners", captain.ID)
	tournament := seedTournament(t, dbConn, "Join Cup", organizer.ID)

	seedInscription(t, dbConn, team.ID, tournament.ID)

	dup := &models.Inscription{TeamID: team.ID, TournamentID: tournament.ID}
	if err := repo.Create(ctx, nil, dup); !errors.Is(err, ErrInscriptionConflict) {
		t.Fatalf("expected ErrInscriptionConflict, got %v", err)
	}
}

func TestInscriptionRepositoryRefInvalid(t *testing.T) {
	t.Parallel()
	dbConn := openTestDB(t)
	repo := NewSQLiteInscriptionRepository(dbConn)

	inscription := &models.Inscription{TeamID: 999, TournamentID: 999}
	if err := repo.Create(context.Background(), nil, inscription); !errors.Is(err, ErrInscriptionRefInvalid) {
		t.Fatalf("expected ErrInscriptionRefInvalid, got %v", err)
	}
}
