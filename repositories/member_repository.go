package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/EldritchWeaver/MatchPoint/models"
)

var (
	ErrMemberNotFound        = errors.New("team member not found")
	ErrMemberPairConflict    = errors.New("user already joined this team")
	ErrMemberCaptainConflict = errors.New("team already has a captain membership")
	ErrMemberRefInvalid      = errors.New("member team or user reference invalid")
)

type MemberRepository interface {
	Create(ctx context.Context, exec SQLExecutor, member *models.Member) error
	GetByID(ctx context.Context, id int) (*models.Member, error)
	FindByTeamAndUser(ctx context.Context, exec SQLExecutor, teamID, userID int) (*models.Member, error)
	HasMembership(ctx context.Context, exec SQLExecutor, userID int) (bool, error)
	List(ctx context.Context, skip, limit int) ([]models.Member, error)
	ListByTeam(ctx context.Context, teamID int) ([]models.Member, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type sqliteMemberRepository struct {
	db *sql.DB
}

func NewSQLiteMemberRepository(db *sql.DB) MemberRepository {
	return &sqliteMemberRepository{db: db}
}

func (r *sqliteMemberRepository) exec(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *sqliteMemberRepository) Create(ctx context.Context, exec SQLExecutor, member *models.Member) error {
	if member.Role == "" {
		member.Role = models.RolePlayer
	}

	query := `
		INSERT INTO miembros_equipo (id_equipo, id_usuario, rol)
		VALUES (?, ?, ?)
		RETURNING id`

	err := r.exec(exec).QueryRowContext(ctx, query, member.TeamID, member.UserID, member.Role).Scan(&member.ID)
	if err != nil {
		err = classifyConstraintError(err)
		if cerr, ok := AsConstraintError(err); ok {
			switch cerr.Kind {
			case KindUnique:
				// The driver reports the violated columns, not the index
				// name. The (team, user) pair constraint names id_usuario;
				// the one-captain partial index names only id_equipo.
				if constraintDetailContains(err, KindUnique, "id_usuario") {
					return ErrMemberPairConflict
				}
				return ErrMemberCaptainConflict
			case KindForeignKey:
				return ErrMemberRefInvalid
			}
		}
		return err
	}
	return nil
}

func (r *sqliteMemberRepository) GetByID(ctx context.Context, id int) (*models.Member, error) {
	return r.scanMember(ctx, nil, `SELECT id, id_equipo, id_usuario, rol FROM miembros_equipo WHERE id = ?`, id)
}

func (r *sqliteMemberRepository) FindByTeamAndUser(ctx context.Context, exec SQLExecutor, teamID, userID int) (*models.Member, error) {
	query := `SELECT id, id_equipo, id_usuario, rol FROM miembros_equipo WHERE id_equipo = ? AND id_usuario = ?`
	return r.scanMember(ctx, exec, query, teamID, userID)
}

// HasMembership reports whether the user belongs to any team, regardless of
// which one. Team membership is exclusive system-wide.
func (r *sqliteMemberRepository) HasMembership(ctx context.Context, exec SQLExecutor, userID int) (bool, error) {
	var found int
	err := r.exec(exec).QueryRowContext(ctx, `SELECT 1 FROM miembros_equipo WHERE id_usuario = ? LIMIT 1`, userID).Scan(&found)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *sqliteMemberRepository) List(ctx context.Context, skip, limit int) ([]models.Member, error) {
	query := `
		SELECT id, id_equipo, id_usuario, rol
		FROM miembros_equipo
		ORDER BY id ASC
		LIMIT ? OFFSET ?`
	return r.listMembers(ctx, query, limit, skip)
}

func (r *sqliteMemberRepository) ListByTeam(ctx context.Context, teamID int) ([]models.Member, error) {
	query := `
		SELECT id, id_equipo, id_usuario, rol
		FROM miembros_equipo
		WHERE id_equipo = ?
		ORDER BY id ASC`
	return r.listMembers(ctx, query, teamID)
}

func (r *sqliteMemberRepository) Delete(ctx context.Context, id int) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM miembros_equipo WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check affected rows: %w", err)
	}
	return rowsAffected > 0, nil
}

func (r *sqliteMemberRepository) listMembers(ctx context.Context, query string, args ...any) ([]models.Member, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := make([]models.Member, 0)
	for rows.Next() {
		var member models.Member
		if err := rows.Scan(&member.ID, &member.TeamID, &member.UserID, &member.Role); err != nil {
			return nil, err
		}
		members = append(members, member)
	}
	return members, rows.Err()
}

func (r *sqliteMemberRepository) scanMember(ctx context.Context, exec SQLExecutor, query string, args ...any) (*models.Member, error) {
	member := &models.Member{}
	err := r.exec(exec).QueryRowContext(ctx, query, args...).Scan(
		&member.ID,
		&member.TeamID,
		&member.UserID,
		&member.Role,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return member, nil
}
