package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"studiobook/internal/domain"
)

// PostgreSQL codes that mean another writer got there first.
var pgConflictCodes = map[string]bool{
	"40001": true, // serialization_failure
	"40P01": true, // deadlock_detected
	"55P03": true, // lock_not_available
	"23505": true, // unique_violation
	"23P01": true, // exclusion_violation
}

// translateError maps driver errors onto domain.ErrRecordNotFound and
// domain.ErrWriteConflict. Anything else is returned unchanged.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrRecordNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgConflictCodes[pgErr.Code] {
		return fmt.Errorf("%w: %s (%s)", domain.ErrWriteConflict, pgErr.Message, pgErr.Code)
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() & 0xff {
		case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
			return fmt.Errorf("%w: %s", domain.ErrWriteConflict, liteErr.Error())
		case sqlite3.SQLITE_CONSTRAINT:
			if liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
				return fmt.Errorf("%w: %s", domain.ErrWriteConflict, liteErr.Error())
			}
		}
	}
	return err
}
