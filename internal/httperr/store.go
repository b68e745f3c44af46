package httperr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

// StoreError wraps a persistence failure. Conflict is set when the store
// rejected a write because of a uniqueness or exclusion constraint.
type StoreError struct {
	Op       string
	Table    string
	Conflict bool
	Err      error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s %s: %v", e.Op, e.Table, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func NewStoreError(op, table string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return &StoreError{
		Op:       op,
		Table:    table,
		Conflict: isConstraintViolation(err),
		Err:      err,
	}
}

func IsStore(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}

// IsConflict reports whether err is a store conflict (lost write race).
func IsConflict(err error) bool {
	var se *StoreError
	if errors.As(err, &se) {
		return se.Conflict
	}
	return isConstraintViolation(err)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound)
}

// IsExclusionConflict matches PostgreSQL exclusion (23P01) and unique (23505)
// violations.
func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23P01" || pgErr.Code == "23505"
	}
	return false
}

func isConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || IsExclusionConflict(err) {
		return true
	}
	// sqlite without error translation
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
