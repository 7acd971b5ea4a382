package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/EldritchWeaver/MatchPoint/models"
)

var (
	ErrTeamNotFound       = errors.New("team not found")
	ErrTeamNameConflict   = errors.New("team name conflict")
	ErrTeamCaptainInvalid = errors.New("team captain reference invalid")
	ErrTeamInUse          = errors.New("team has scheduled matches")
)

type TeamRepository interface {
	Create(ctx context.Context, exec SQLExecutor, team *models.Team) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Team, error)
	FindByName(ctx context.Context, exec SQLExecutor, name string) (*models.Team, error)
	FindByCaptain(ctx context.Context, exec SQLExecutor, captainID int) (*models.Team, error)
	ExistsByID(ctx context.Context, exec SQLExecutor, id int) (bool, error)
	List(ctx context.Context, skip, limit int) ([]models.Team, error)
	Update(ctx context.Context, exec SQLExecutor, team *models.Team) error
	UpdateCrestKey(ctx context.Context, id int, key *string) error
	Delete(ctx context.Context, id int) (bool, error)
}

type sqliteTeamRepository struct {
	db *sql.DB
}

func NewSQLiteTeamRepository(db *sql.DB) TeamRepository {
	return &sqliteTeamRepository{db: db}
}

func (r *sqliteTeamRepository) exec(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *sqliteTeamRepository) Create(ctx context.Context, exec SQLExecutor, team *models.Team) error {
	query := `
		INSERT INTO equipos (nombre, id_capitan)
		VALUES (?, ?)
		RETURNING id`

	err := r.exec(exec).QueryRowContext(ctx, query, team.Name, team.CaptainID).Scan(&team.ID)
	if err != nil {
		err = classifyConstraintError(err)
		if constraintDetailContains(err, KindUnique, "equipos.nombre") {
			return ErrTeamNameConflict
		}
		if cerr, ok := AsConstraintError(err); ok && cerr.Kind == KindForeignKey {
			return ErrTeamCaptainInvalid
		}
		return err
	}
	return nil
}

// GetByID accepts the transaction executor so reads inside a transaction do
// not compete with it for the single pooled connection.
func (r *sqliteTeamRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Team, error) {
	return r.scanTeam(ctx, exec, `SELECT id, nombre, id_capitan, crest_key FROM equipos WHERE id = ?`, id)
}

func (r *sqliteTeamRepository) FindByName(ctx context.Context, exec SQLExecutor, name string) (*models.Team, error) {
	return r.scanTeam(ctx, exec, `SELECT id, nombre, id_capitan, crest_key FROM equipos WHERE nombre = ?`, name)
}

func (r *sqliteTeamRepository) FindByCaptain(ctx context.Context, exec SQLExecutor, captainID int) (*models.Team, error) {
	return r.scanTeam(ctx, exec, `SELECT id, nombre, id_capitan, crest_key FROM equipos WHERE id_capitan = ? LIMIT 1`, captainID)
}

func (r *sqliteTeamRepository) ExistsByID(ctx context.Context, exec SQLExecutor, id int) (bool, error) {
	var found int
	err := r.exec(exec).QueryRowContext(ctx, `SELECT 1 FROM equipos WHERE id = ?`, id).Scan(&found)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *sqliteTeamRepository) List(ctx context.Context, skip, limit int) ([]models.Team, error) {
	query := `
		SELECT id, nombre, id_capitan, crest_key
		FROM equipos
		ORDER BY id ASC
		LIMIT ? OFFSET ?`

	rows, err := r.db.QueryContext(ctx, query, limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]models.Team, 0)
	for rows.Next() {
		var team models.Team
		if err := rows.Scan(&team.ID, &team.Name, &team.CaptainID, &team.CrestKey); err != nil {
			return nil, err
		}
		teams = append(teams, team)
	}
	return teams, rows.Err()
}

func (r *sqliteTeamRepository) Update(ctx context.Context, exec SQLExecutor, team *models.Team) error {
	query := `
		UPDATE equipos SET
			nombre = ?,
			id_capitan = ?
		WHERE id = ?`

	result, err := r.exec(exec).ExecContext(ctx, query, team.Name, team.CaptainID, team.ID)
	if err != nil {
		err = classifyConstraintError(err)
		if constraintDetailContains(err, KindUnique, "equipos.nombre") {
			return ErrTeamNameConflict
		}
		if cerr, ok := AsConstraintError(err); ok && cerr.Kind == KindForeignKey {
			return ErrTeamCaptainInvalid
		}
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *sqliteTeamRepository) UpdateCrestKey(ctx context.Context, id int, key *string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE equipos SET crest_key = ? WHERE id = ?`, key, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

// Delete removes the team. Memberships, inscriptions and payments cascade;
// matches referencing the team as home or visitor block the delete with
// ErrTeamInUse. Deleting an absent id reports false, not an error.
func (r *sqliteTeamRepository) Delete(ctx context.Context, id int) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM equipos WHERE id = ?`, id)
	if err != nil {
		err = classifyConstraintError(err)
		if cerr, ok := AsConstraintError(err); ok && cerr.Kind == KindForeignKey {
			return false, ErrTeamInUse
		}
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check affected rows: %w", err)
	}
	return rowsAffected > 0, nil
}

func (r *sqliteTeamRepository) scanTeam(ctx context.Context, exec SQLExecutor, query string, args ...any) (*models.Team, error) {
	team := &models.Team{}
	err := r.exec(exec).QueryRowContext(ctx, query, args...).Scan(
		&team.ID,
		&team.Name,
		&team.CaptainID,
		&team.CrestKey,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return team, nil
}
