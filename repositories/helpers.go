package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// SQLExecutor abstracts *sql.DB and *sql.Tx so a repository method can run
// either standalone or inside a caller-managed transaction.
type SQLExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// ViolationKind classifies a column-level constraint failure.
type ViolationKind string

const (
	KindUnique     ViolationKind = "UNIQUE"
	KindForeignKey ViolationKind = "FOREIGN_KEY"
	KindCheck      ViolationKind = "CHECK"
)

// ConstraintError reports a declared constraint rejected by the store.
type ConstraintError struct {
	Kind   ViolationKind
	Detail string
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("constraint violation (%s): %s", e.Kind, e.Detail)
}

// AsConstraintError unwraps err into a *ConstraintError, if it is one.
func AsConstraintError(err error) (*ConstraintError, bool) {
	var cerr *ConstraintError
	if errors.As(err, &cerr) {
		return cerr, true
	}
	return nil, false
}

// classifyConstraintError maps a sqlite driver error to a ConstraintError.
// Errors that are not constraint failures pass through unchanged.
func classifyConstraintError(err error) error {
	if err == nil {
		return nil
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return &ConstraintError{Kind: KindUnique, Detail: err.Error()}
		case sqlite3lib.SQLITE_CONSTRAINT_FOREIGNKEY, sqlite3lib.SQLITE_CONSTRAINT_TRIGGER:
			return &ConstraintError{Kind: KindForeignKey, Detail: err.Error()}
		case sqlite3lib.SQLITE_CONSTRAINT_CHECK, sqlite3lib.SQLITE_CONSTRAINT_NOTNULL:
			return &ConstraintError{Kind: KindCheck, Detail: err.Error()}
		}
	}
	message := strings.ToLower(err.Error())
	switch {
	case strings.Contains(message, "unique constraint failed"):
		return &ConstraintError{Kind: KindUnique, Detail: err.Error()}
	case strings.Contains(message, "foreign key constraint failed"):
		return &ConstraintError{Kind: KindForeignKey, Detail: err.Error()}
	case strings.Contains(message, "check constraint failed"):
		return &ConstraintError{Kind: KindCheck, Detail: err.Error()}
	}
	return err
}

// constraintDetailContains reports whether err is a ConstraintError of the
// given kind whose detail mentions needle (a column or index name).
func constraintDetailContains(err error, kind ViolationKind, needle string) bool {
	cerr, ok := AsConstraintError(err)
	return ok && cerr.Kind == kind && strings.Contains(cerr.Detail, needle)
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

func checkAffectedRows(result sql.Result, notFoundError error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return notFoundError
	}
	return nil
}
