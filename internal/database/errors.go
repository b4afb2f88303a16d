package database

import (
	"errors"

	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

var (
	// ErrNotFound means the record does not exist or is not visible to
	// the requesting user. The two cases are indistinguishable on purpose.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate means a write violated a composite uniqueness
	// constraint (title+owner, user+book, username, email).
	ErrDuplicate = errors.New("record already exists")
)

// TranslateError maps driver and gorm errors onto the repository
// sentinels. Unique violations must be detected here, at the storage
// layer, so a check-then-insert race still resolves to exactly one
// success.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return ErrDuplicate
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}
