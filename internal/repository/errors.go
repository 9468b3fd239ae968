package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrNotFound    = errors.New("record not found")
	ErrDuplicateID = errors.New("record with this id already exists")
	// ErrOverbooking is raised by databases that enforce non-overlap with an
	// exclusion constraint.
	ErrOverbooking = errors.New("overlapping booking")
)

const (
	pgUniqueViolation    = "23505"
	pgExclusionViolation = "23P01"
)

// translateDBError maps driver errors onto the package sentinels.
func translateDBError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateID
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s", ErrDuplicateID, pgErr.Detail)
		case pgExclusionViolation:
			return fmt.Errorf("%w: %s", ErrOverbooking, pgErr.Detail)
		}
	}

	// modernc.org/sqlite errors carry no typed code gorm can translate.
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return ErrDuplicateID
	}
	return err
}
