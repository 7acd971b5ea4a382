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
	ErrInscriptionNotFound   = errors.New("inscription not found")
	ErrInscriptionConflict   = errors.New("team already inscribed in this tournament")
	ErrInscriptionRefInvalid = errors.New("inscription team or tournament reference invalid")
)

type InscriptionRepository interface {
	Create(ctx context.Context, exec SQLExecutor, inscription *models.Inscription) error
	GetByID(ctx context.Context, id int) (*models.Inscription, error)
	List(ctx context.Context, skip, limit int) ([]models.Inscription, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]models.Inscription, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type sqliteInscriptionRepository struct {
	db *sql.DB
}

func NewSQLiteInscriptionRepository(db *sql.DB) InscriptionRepository {
	return &sqliteInscriptionRepository{db: db}
}

func (r *sqliteInscriptionRepository) exec(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *sqliteInscriptionRepository) Create(ctx context.Context, exec SQLExecutor, inscription *models.Inscription) error {
	inscription.RegisteredAt = time.Now().UTC().Truncate(time.Millisecond)

	query := `
		INSERT INTO inscripciones (id_equipo, id_torneo, fecha_inscripcion)
		VALUES (?, ?, ?)
		RETURNING id`

	err := r.exec(exec).QueryRowContext(ctx, query,
		inscription.TeamID,
		inscription.TournamentID,
		toMillis(inscription.RegisteredAt),
	).Scan(&inscription.ID)

	if err != nil {
		err = classifyConstraintError(err)
		if cerr, ok := AsConstraintError(err); ok {
			switch cerr.Kind {
			case KindUnique:
				return ErrInscriptionConflict
			case KindForeignKey:
				return ErrInscriptionRefInvalid
			}
		}
		return err
	}
	return nil
}

func (r *sqliteInscriptionRepository) GetByID(ctx context.Context, id int) (*models.Inscription, error) {
	query := `
		SELECT id, id_equipo, id_torneo, fecha_inscripcion
		FROM inscripciones
		WHERE id = ?`

	inscription := &models.Inscription{}
	var registeredAt int64
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&inscription.ID,
		&inscription.TeamID,
		&inscription.TournamentID,
		&registeredAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInscriptionNotFound
		}
		return nil, err
	}
	inscription.RegisteredAt = fromMillis(registeredAt)
	return inscription, nil
}

func (r *sqliteInscriptionRepository) List(ctx context.Context, skip, limit int) ([]models.Inscription, error) {
	query := `
		SELECT id, id_equipo, id_torneo, fecha_inscripcion
		FROM inscripciones
		ORDER BY id ASC
		LIMIT ? OFFSET ?`
	return r.listInscriptions(ctx, query, limit, skip)
}

func (r *sqliteInscriptionRepository) ListByTournament(ctx context.Context, tournamentID int) ([]models.Inscription, error) {
	query := `
		SELECT id, id_equipo, id_torneo, fecha_inscripcion
		FROM inscripciones
		WHERE id_torneo = ?
		ORDER BY id ASC`
	return r.listInscriptions(ctx, query, tournamentID)
}

func (r *sqliteInscriptionRepository) Delete(ctx context.Context, id int) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM inscripciones WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check affected rows: %w", err)
	}
	return rowsAffected > 0, nil
}

func (r *sqliteInscriptionRepository) listInscriptions(ctx context.Context, query string, args ...any) ([]models.Inscription, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	inscriptions := make([]models.Inscription, 0)
	for rows.Next() {
		var inscription models.Inscription
		var registeredAt int64
		if err := rows.Scan(&inscription.ID, &inscription.TeamID, &inscription.TournamentID, &registeredAt); err != nil {
			return nil, err
		}
		inscription.RegisteredAt = fromMillis(registeredAt)
		inscriptions = append(inscriptions, inscription)
	}
	return inscriptions, rows.Err()
}
