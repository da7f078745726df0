package db

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(gorm.ErrRecordNotFound) {
		t.Fatal("expected gorm record-not-found to match")
	}
	if !IsNotFound(fmt.Errorf("load line: %w", gorm.ErrRecordNotFound)) {
		t.Fatal("expected wrapped record-not-found to match")
	}
	if IsNotFound(fmt.Errorf("boom")) {
		t.Fatal("plain errors must not match")
	}
}

func TestPGCodeMatchers(t *testing.T) {
	pgx := &pgconn.PgError{Code: pgCodeUndefinedColumn}
	if !IsUndefinedColumn(pgx) {
		t.Fatal("pgx undefined column not detected")
	}
	if IsUndefinedTable(pgx) {
		t.Fatal("undefined column must not match undefined table")
	}

	libpq := &pq.Error{Code: pq.ErrorCode(pgCodeUndefinedTable)}
	if !IsUndefinedTable(fmt.Errorf("create item: %w", libpq)) {
		t.Fatal("wrapped pq undefined table not detected")
	}

	if !IsUniqueViolation(&pgconn.PgError{Code: pgCodeUniqueViolation}) {
		t.Fatal("unique violation not detected")
	}
	if IsUniqueViolation(nil) {
		t.Fatal("nil must not match")
	}
}
