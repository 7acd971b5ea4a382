package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/EldritchWeaver/MatchPoint/models"
)

var (
	ErrMatchNotFound   = errors.New("match not found")
	ErrMatchRefInvalid = errors.New("match tournament or team reference invalid")
	ErrMatchInvalid    = errors.New("match violates a declared check")
)

type MatchRepository interface {
	Create(ctx context.Context, exec SQLExecutor, match *models.Match) error
	GetByID(ctx context.Context, id int) (*models.Match, error)
	List(ctx context.Context, skip, limit int) ([]models.Match, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]models.Match, error)
	UpdateResult(ctx context.Context, id int, homeScore, visitorScore int) error
	Delete(ctx context.Context, id int) (bool, error)
}

type sqliteMatchRepository struct {
	db *sql.DB
}

func NewSQLiteMatchRepository(db *sql.DB) MatchRepository {
	return &sqliteMatchRepository{db: db}
}

func (r *sqliteMatchRepository) exec(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *sqliteMatchRepository) Create(ctx context.Context, exec SQLExecutor, match *models.Match) error {
	query := `
		INSERT INTO partidos (id_torneo, equipo_local, equipo_visitante, fecha, resultado_local, resultado_visitante)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id`

	err := r.exec(exec).QueryRowContext(ctx, query,
		match.TournamentID,
		match.HomeTeamID,
		match.VisitorTeamID,
		toMillis(match.ScheduledAt),
		match.HomeScore,
		match.VisitorScore,
	).Scan(&match.ID)

	if err != nil {
		err = classifyConstraintError(err)
		if cerr, ok := AsConstraintError(err); ok {
			switch cerr.Kind {
			case KindForeignKey:
				return ErrMatchRefInvalid
			case KindCheck:
				return ErrMatchInvalid
			}
		}
		return err
	}
	return nil
}

func (r *sqliteMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	query := `
		SELECT id, id_torneo, equipo_local, equipo_visitante, fecha, resultado_local, resultado_visitante
		FROM partidos
		WHERE id = ?`

	row := r.db.QueryRowContext(ctx, query, id)
	match, err := scanMatch(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return match, nil
}

func (r *sqliteMatchRepository) List(ctx context.Context, skip, limit int) ([]models.Match, error) {
	query := `
		SELECT id, id_torneo, equipo_local, equipo_visitante, fecha, resultado_local, resultado_visitante
		FROM partidos
		ORDER BY id ASC
		LIMIT ? OFFSET ?`
	return r.listMatches(ctx, query, limit, skip)
}

func (r *sqliteMatchRepository) ListByTournament(ctx context.Context, tournamentID int) ([]models.Match, error) {
	query := `
		SELECT id, id_torneo, equipo_local, equipo_visitante, fecha, resultado_local, resultado_visitante
		FROM partidos
		WHERE id_torneo = ?
		ORDER BY fecha ASC, id ASC`
	return r.listMatches(ctx, query, tournamentID)
}

// UpdateResult records both scores in one statement so the schema rule that
// the two results are set together always holds.
func (r *sqliteMatchRepository) UpdateResult(ctx context.Context, id int, homeScore, visitorScore int) error {
	query := `
		UPDATE partidos SET
			resultado_local = ?,
			resultado_visitante = ?
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, homeScore, visitorScore, id)
	if err != nil {
		err = classifyConstraintError(err)
		if cerr, ok := AsConstraintError(err); ok && cerr.Kind == KindCheck {
			return ErrMatchInvalid
		}
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *sqliteMatchRepository) Delete(ctx context.Context, id int) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM partidos WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check affected rows: %w", err)
	}
	return rowsAffected > 0, nil
}

func (r *sqliteMatchRepository) listMatches(ctx context.Context, query string, args ...any) ([]models.Match, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]models.Match, 0)
	for rows.Next() {
		match, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, *match)
	}
	return matches, rows.Err()
}

func scanMatch(row rowScanner) (*models.Match, error) {
	match := &models.Match{}
	var scheduledAt int64
	err := row.Scan(
		&match.ID,
		&match.TournamentID,
		&match.HomeTeamID,
		&match.VisitorTeamID,
		&scheduledAt,
		&match.HomeScore,
		&match.VisitorScore,
	)
	if err != nil {
		return nil, err
	}
	match.ScheduledAt = fromMillis(scheduledAt)
	return match, nil
}
