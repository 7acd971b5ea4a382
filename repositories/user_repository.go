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
	ErrUserNotFound      = errors.New("user not found")
	ErrUserEmailConflict = errors.New("user email conflict")
	ErrUserInUse         = errors.New("user is referenced by a team or tournament")
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByNickname(ctx context.Context, nickname string) (*models.User, error)
	ExistsByID(ctx context.Context, exec SQLExecutor, id int) (bool, error)
	List(ctx context.Context, skip, limit int) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id int) (bool, error)
}

type sqliteUserRepository struct {
	db *sql.DB
}

func NewSQLiteUserRepository(db *sql.DB) UserRepository {
	return &sqliteUserRepository{db: db}
}

func (r *sqliteUserRepository) Create(ctx context.Context, user *models.User) error {
	user.RegisteredAt = time.Now().UTC().Truncate(time.Millisecond)

	query := `
		INSERT INTO usuarios (nombre, nickname, email, pwd_hash, fecha_reg)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		user.Name,
		user.Nickname,
		user.Email,
		user.PasswordHash,
		toMillis(user.RegisteredAt),
	).Scan(&user.ID)

	if err != nil {
		err = classifyConstraintError(err)
		if constraintDetailContains(err, KindUnique, "usuarios.email") {
			return ErrUserEmailConflict
		}
		return err
	}
	return nil
}

func (r *sqliteUserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	query := `
		SELECT id, nombre, nickname, email, pwd_hash, fecha_reg
		FROM usuarios
		WHERE id = ?`
	return r.scanUser(ctx, query, id)
}

func (r *sqliteUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, nombre, nickname, email, pwd_hash, fecha_reg
		FROM usuarios
		WHERE email = ?`
	return r.scanUser(ctx, query, email)
}

func (r *sqliteUserRepository) GetByNickname(ctx context.Context, nickname string) (*models.User, error) {
	query := `
		SELECT id, nombre, nickname, email, pwd_hash, fecha_reg
		FROM usuarios
		WHERE nickname = ?
		LIMIT 1`
	return r.scanUser(ctx, query, nickname)
}

func (r *sqliteUserRepository) ExistsByID(ctx context.Context, exec SQLExecutor, id int) (bool, error) {
	if exec == nil {
		exec = r.db
	}
	var found int
	err := exec.QueryRowContext(ctx, `SELECT 1 FROM usuarios WHERE id = ?`, id).Scan(&found)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *sqliteUserRepository) List(ctx context.Context, skip, limit int) ([]models.User, error) {
	query := `
		SELECT id, nombre, nickname, email, pwd_hash, fecha_reg
		FROM usuarios
		ORDER BY id ASC
		LIMIT ? OFFSET ?`

	rows, err := r.db.QueryContext(ctx, query, limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		var user models.User
		var registeredAt int64
		if err := rows.Scan(&user.ID, &user.Name, &user.Nickname, &user.Email, &user.PasswordHash, &registeredAt); err != nil {
			return nil, err
		}
		user.RegisteredAt = fromMillis(registeredAt)
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *sqliteUserRepository) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE usuarios SET
			nombre = ?,
			nickname = ?,
			email = ?,
			pwd_hash = ?
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		user.Name,
		user.Nickname,
		user.Email,
		user.PasswordHash,
		user.ID,
	)
	if err != nil {
		err = classifyConstraintError(err)
		if constraintDetailContains(err, KindUnique, "usuarios.email") {
			return ErrUserEmailConflict
		}
		return err
	}
	return checkAffectedRows(result, ErrUserNotFound)
}

// Delete removes the user. Membership rows cascade; a user still referenced
// as team captain or tournament organizer blocks the delete with ErrUserInUse.
// Deleting an absent id reports false, not an error.
func (r *sqliteUserRepository) Delete(ctx context.Context, id int) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM usuarios WHERE id = ?`, id)
	if err != nil {
		err = classifyConstraintError(err)
		if cerr, ok := AsConstraintError(err); ok && cerr.Kind == KindForeignKey {
			return false, ErrUserInUse
		}
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check affected rows: %w", err)
	}
	return rowsAffected > 0, nil
}

func (r *sqliteUserRepository) scanUser(ctx context.Context, query string, args ...any) (*models.User, error) {
	user := &models.User{}
	var registeredAt int64
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&user.ID,
		&user.Name,
		&user.Nickname,
		&user.Email,
		&user.PasswordHash,
		&registeredAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.RegisteredAt = fromMillis(registeredAt)
	return user, nil
}
