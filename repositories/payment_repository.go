package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/EldritchWeaver/MatchPoint/models"
)

var (
	ErrPaymentNotFound   = errors.New("payment not found")
	ErrPaymentRefInvalid = errors.New("payment team or tournament reference invalid")
	ErrPaymentInvalid    = errors.New("payment violates a declared check")
)

type PaymentRepository interface {
	Create(ctx context.Context, exec SQLExecutor, payment *models.Payment) error
	GetByID(ctx context.Context, id int) (*models.Payment, error)
	List(ctx context.Context, skip, limit int) ([]models.Payment, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]models.Payment, error)
	UpdateStatus(ctx context.Context, id int, status models.PaymentStatus) error
	Delete(ctx context.Context, id int) (bool, error)
}

type sqlitePaymentRepository struct {
	db *sql.DB
}

func NewSQLitePaymentRepository(db *sql.DB) PaymentRepository {
	return &sqlitePaymentRepository{db: db}
}

func (r *sqlitePaymentRepository) exec(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *sqlitePaymentRepository) Create(ctx context.Context, exec SQLExecutor, payment *models.Payment) error {
	if payment.Status == "" {
		payment.Status = models.PaymentPending
	}
	payment.PaidAt = time.Now().UTC().Truncate(time.Millisecond)

	query := `
		INSERT INTO pagos (id_equipo, id_torneo, monto_cent, estado, fecha_pago)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id`

	err := r.exec(exec).QueryRowContext(ctx, query,
		payment.TeamID,
		payment.TournamentID,
		payment.AmountCents,
		payment.Status,
		toMillis(payment.PaidAt),
	).Scan(&payment.ID)

	if err != nil {
		err = classifyConstraintError(err)
		if cerr, ok := AsConstraintError(err); ok {
			switch cerr.Kind {
			case KindForeignKey:
				return ErrPaymentRefInvalid
			case KindCheck:
				return ErrPaymentInvalid
			}
		}
		return err
	}
	return nil
}

func (r *sqlitePaymentRepository) GetByID(ctx context.Context, id int) (*models.Payment, error) {
	query := `
		SELECT id, id_equipo, id_torneo, monto_cent, estado, fecha_pago
		FROM pagos
		WHERE id = ?`

	payment := &models.Payment{}
	var paidAt int64
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&payment.ID,
		&payment.TeamID,
		&payment.TournamentID,
		&payment.AmountCents,
		&payment.Status,
		&paidAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	payment.PaidAt = fromMillis(paidAt)
	return payment, nil
}

func (r *sqlitePaymentRepository) List(ctx context.Context, skip, limit int) ([]models.Payment, error) {
	query := `
		SELECT id, id_equipo, id_torneo, monto_cent, estado, fecha_pago
		FROM pagos
		ORDER BY id ASC
		LIMIT ? OFFSET ?`
	return r.listPayments(ctx, query, limit, skip)
}

func (r *sqlitePaymentRepository) ListByTournament(ctx context.Context, tournamentID int) ([]models.Payment, error) {
	query := `
		SELECT id, id_equipo, id_torneo, monto_cent, estado, fecha_pago
		FROM pagos
		WHERE id_torneo = ?
		ORDER BY id ASC`
	return r.listPayments(ctx, query, tournamentID)
}

func (r *sqlitePaymentRepository) UpdateStatus(ctx context.Context, id int, status models.PaymentStatus) error {
	result, err := r.db.ExecContext(ctx, `UPDATE pagos SET estado = ? WHERE id = ?`, status, id)
	if err != nil {
		err = classifyConstraintError(err)
		if cerr, ok := AsConstraintError(err); ok && cerr.Kind == KindCheck {
			return ErrPaymentInvalid
		}
		return err
	}
	return checkAffectedRows(result, ErrPaymentNotFound)
}

func (r *sqlitePaymentRepository) Delete(ctx context.Context, id int) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM pagos WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check affected rows: %w", err)
	}
	return rowsAffected > 0, nil
}

func (r *sqlitePaymentRepository) listPayments(ctx context.Context, query string, args ...any) ([]models.Payment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := make([]models.Payment, 0)
	for rows.Next() {
		var payment models.Payment
		var paidAt int64
		if err := rows.Scan(&payment.ID, &payment.TeamID, &payment.TournamentID, &payment.AmountCents, &payment.Status, &paidAt); err != nil {
			return nil, err
		}
		payment.PaidAt = fromMillis(paidAt)
		payments = append(payments, payment)
	}
	return payments, rows.Err()
}
