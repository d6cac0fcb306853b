package sqlite

import (
	"errors"

	"github.com/mattn/go-sqlite3"

	"github.com/maxviazov/lead-service/internal/repository"
)

// mapError translates sqlite constraint failures to repository errors.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	var sqlErr sqlite3.Error
	if errors.As(err, &sqlErr) {
		switch sqlErr.ExtendedCode {
		case sqlite3.ErrConstraintPrimaryKey, sqlite3.ErrConstraintUnique:
			return repository.ErrAlreadyExists
		}
		if sqlErr.Code == sqlite3.ErrBusy || sqlErr.Code == sqlite3.ErrLocked {
			return repository.ErrConflict
		}
	}
	return err
}
