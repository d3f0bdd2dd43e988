package database

import (
	"errors"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

const pqUniqueViolation = "23505"

// IsUniqueViolation reports whether err comes from a unique index rejecting
// an insert. gorm translates the error for sqlite; lib/pq errors pass
// through untranslated.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqUniqueViolation
	}
	return false
}

// IsNotFound reports whether err is gorm's missing-row error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// SupportsRowLocks reports whether SELECT ... FOR UPDATE is available.
// sqlite serialises writers on its own and rejects the clause.
func SupportsRowLocks(db *gorm.DB) bool {
	return db.Dialector.Name() == "postgres"
}
