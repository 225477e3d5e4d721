package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a lookup by primary key matches nothing.
var ErrNotFound = gorm.ErrRecordNotFound

// ConstraintKind classifies integrity violations reported by PostgreSQL.
type ConstraintKind int

const (
	UniqueViolation ConstraintKind = iota + 1
	ForeignKeyViolation
	CheckViolation
)

func (k ConstraintKind) String() string {
	switch k {
	case UniqueViolation:
		return "unique"
	case ForeignKeyViolation:
		return "foreign key"
	case CheckViolation:
		return "check"
	default:
		return "unknown"
	}
}

// ConstraintError is a translated integrity violation. Constraint is the
// named constraint from the schema migrations.
type ConstraintError struct {
	Kind       ConstraintKind
	Constraint string
	Err        error
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("%s constraint %q violated: %v", e.Kind, e.Constraint, e.Err)
}

func (e *ConstraintError) Unwrap() error { return e.Err }

// AsConstraintError extracts a ConstraintError from err's chain.
func AsConstraintError(err error) (*ConstraintError, bool) {
	var ce *ConstraintError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// PostgreSQL SQLSTATE codes
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// translate maps driver errors to repository errors; anything else passes
// through unchanged.
func translate(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgUniqueViolation:
		return &ConstraintError{Kind: UniqueViolation, Constraint: pgErr.ConstraintName, Err: err}
	case pgForeignKeyViolation:
		return &ConstraintError{Kind: ForeignKeyViolation, Constraint: pgErr.ConstraintName, Err: err}
	case pgCheckViolation:
		return &ConstraintError{Kind: CheckViolation, Constraint: pgErr.ConstraintName, Err: err}
	default:
		return err
	}
}
