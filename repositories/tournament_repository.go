package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/EldritchWeaver/MatchPoint/models"
)

var (
	ErrTournamentNotFound         = errors.New("tournament not found")
	ErrTournamentOrganizerInvalid = errors.New("tournament organizer reference invalid")
)

type TournamentRepository interface {
	Create(ctx context.Context, exec SQLExecutor, tournament *models.Tournament) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Tournament, error)
	ExistsName(ctx context.Context, exec SQLExecutor, name string, excludeID int) (bool, error)
	ExistsByID(ctx context.Context, exec SQLExecutor, id int) (bool, error)
	List(ctx context.Context, skip, limit int) ([]models.Tournament, error)
	ListByStatus(ctx context.Context, status string) ([]models.Tournament, error)
	Update(ctx context.Context, exec SQLExecutor, tournament *models.Tournament) error
	UpdateStatus(ctx context.Context, id int, status models.TournamentStatus) error
	UpdateBannerKey(ctx context.Context, id int, key *string) error
	Delete(ctx context.Context, id int) (bool, error)
}

type sqliteTournamentRepository struct {
	db *sql.DB
}

func NewSQLiteTournamentRepository(db *sql.DB) TournamentRepository {
	return &sqliteTournamentRepository{db: db}
}

func (r *sqliteTournamentRepository) exec(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *sqliteTournamentRepository) Create(ctx context.Context, exec SQLExecutor, tournament *models.Tournament) error {
	if tournament.Status == "" {
		tournament.Status = models.StatusScheduled
	}

	query := `
		INSERT INTO torneos (nombre, descripcion, fecha_inicio, fecha_fin, max_equipos, estado, stream_url, id_organizador)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`

	err := r.exec(exec).QueryRowContext(ctx, query,
		tournament.Name,
		tournament.Description,
		toMillis(tournament.StartDate),
		toMillis(tournament.EndDate),
		tournament.MaxTeams,
		tournament.Status,
		tournament.StreamURL,
		tournament.OrganizerID,
	).Scan(&tournament.ID)

	if err != nil {
		err = classifyConstraintError(err)
		if cerr, ok := AsConstraintError(err); ok && cerr.Kind == KindForeignKey {
			return ErrTournamentOrganizerInvalid
		}
		return err
	}
	return nil
}

// GetByID accepts the transaction executor so reads inside a transaction do
// not compete with it for the single pooled connection.
func (r *sqliteTournamentRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Tournament, error) {
	query := `
		SELECT id, nombre, descripcion, fecha_inicio, fecha_fin, max_equipos, estado, stream_url, id_organizador, banner_key
		FROM torneos
		WHERE id = ?`

	row := r.exec(exec).QueryRowContext(ctx, query, id)
	tournament, err := scanTournament(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return tournament, nil
}

// ExistsName reports whether another tournament (excluding excludeID) already
// holds this exact name. Name comparison is case-sensitive.
func (r *sqliteTournamentRepository) ExistsName(ctx context.Context, exec SQLExecutor, name string, excludeID int) (bool, error) {
	var found int
	err := r.exec(exec).QueryRowContext(ctx,
		`SELECT 1 FROM torneos WHERE nombre = ? AND id != ? LIMIT 1`,
		name, excludeID,
	).Scan(&found)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *sqliteTournamentRepository) ExistsByID(ctx context.Context, exec SQLExecutor, id int) (bool, error) {
	var found int
	err := r.exec(exec).QueryRowContext(ctx, `SELECT 1 FROM torneos WHERE id = ?`, id).Scan(&found)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *sqliteTournamentRepository) List(ctx context.Context, skip, limit int) ([]models.Tournament, error) {
	query := `
		SELECT id, nombre, descripcion, fecha_inicio, fecha_fin, max_equipos, estado, stream_url, id_organizador, banner_key
		FROM torneos
		ORDER BY id ASC
		LIMIT ? OFFSET ?`
	return r.listTournaments(ctx, query, limit, skip)
}

// ListByStatus is a pure filter: an unrecognized status yields an empty
// slice, never an error.
func (r *sqliteTournamentRepository) ListByStatus(ctx context.Context, status string) ([]models.Tournament, error) {
	query := `
		SELECT id, nombre, descripcion, fecha_inicio, fecha_fin, max_equipos, estado, stream_url, id_organizador, banner_key
		FROM torneos
		WHERE estado = ?
		ORDER BY id ASC`
	return r.listTournaments(ctx, query, status)
}

func (r *sqliteTournamentRepository) Update(ctx context.Context, exec SQLExecutor, tournament *models.Tournament) error {
	query := `
		UPDATE torneos SET
			nombre = ?,
			descripcion = ?,
			fecha_inicio = ?,
			fecha_fin = ?,
			max_equipos = ?,
			estado = ?,
			stream_url = ?,
			id_organizador = ?
		WHERE id = ?`

	result, err := r.exec(exec).ExecContext(ctx, query,
		tournament.Name,
		tournament.Description,
		toMillis(tournament.StartDate),
		toMillis(tournament.EndDate),
		tournament.MaxTeams,
		tournament.Status,
		tournament.StreamURL,
		tournament.OrganizerID,
		tournament.ID,
	)
	if err != nil {
		err = classifyConstraintError(err)
		if cerr, ok := AsConstraintError(err); ok && cerr.Kind == KindForeignKey {
			return ErrTournamentOrganizerInvalid
		}
		return err
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *sqliteTournamentRepository) UpdateStatus(ctx context.Context, id int, status models.TournamentStatus) error {
	result, err := r.db.ExecContext(ctx, `UPDATE torneos SET estado = ? WHERE id = ?`, status, id)
	if err != nil {
		return classifyConstraintError(err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *sqliteTournamentRepository) UpdateBannerKey(ctx context.Context, id int, key *string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE torneos SET banner_key = ? WHERE id = ?`, key, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

// Delete removes the tournament together with its inscriptions, payments and
// matches (schema cascade, one atomic statement). Deleting an absent id
// reports false, not an error.
func (r *sqliteTournamentRepository) Delete(ctx context.Context, id int) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM torneos WHERE id = ?`, id)
	if err != nil {
		return false, classifyConstraintError(err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check affected rows: %w", err)
	}
	return rowsAffected > 0, nil
}

func (r *sqliteTournamentRepository) listTournaments(ctx context.Context, query string, args ...any) ([]models.Tournament, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tournaments := make([]models.Tournament, 0)
	for rows.Next() {
		tournament, err := scanTournament(rows)
		if err != nil {
			return nil, err
		}
		tournaments = append(tournaments, *tournament)
	}
	return tournaments, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTournament(row rowScanner) (*models.Tournament, error) {
	tournament := &models.Tournament{}
	var startDate, endDate int64
	err := row.Scan(
		&tournament.ID,
		&tournament.Name,
		&tournament.Description,
		&startDate,
		&endDate,
		&tournament.MaxTeams,
		&tournament.Status,
		&tournament.StreamURL,
		&tournament.OrganizerID,
		&tournament.BannerKey,
	)
	if err != nil {
		return nil, err
	}
	tournament.StartDate = fromMillis(startDate)
	tournament.EndDate = fromMillis(endDate)
	return tournament, nil
}
