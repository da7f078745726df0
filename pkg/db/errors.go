package db

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

const (
	pgCodeUndefinedColumn = "42703"
	pgCodeUndefinedTable  = "42P01"
	pgCodeUniqueViolation = "23505"
)

// IsNotFound reports whether err is GORM's missing-record error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsUndefinedColumn reports whether err is a postgres undefined-column error.
func IsUndefinedColumn(err error) bool {
	return hasPGCode(err, pgCodeUndefinedColumn)
}

// IsUndefinedTable reports whether err is a postgres undefined-table error.
func IsUndefinedTable(err error) bool {
	return hasPGCode(err, pgCodeUndefinedTable)
}

// IsUniqueViolation reports whether err is a postgres unique violation.
func IsUniqueViolation(err error) bool {
	return hasPGCode(err, pgCodeUniqueViolation)
}

func hasPGCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return pgxErr.Code == code
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == code
	}
	return false
}
