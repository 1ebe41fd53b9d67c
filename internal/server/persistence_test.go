package server

import (
	"errors"
	"testing"

	"github.com/jackc/pgconn"
)

func TestIsUniqueViolation(t *testing.T) {
	uniqueErr := &pgconn.PgError{Code: "23505"}
	if !isUniqueViolation(uniqueErr) {
		t.Fatalf("expected code 23505 to read as a unique violation")
	}

	otherErr := &pgconn.PgError{Code: "22001"}
	if isUniqueViolation(otherErr) {
		t.Fatalf("expected code 22001 not to read as a unique violation")
	}
	if isUniqueViolation(errors.New("broken pipe")) {
		t.Fatalf("expected a plain error not to read as a unique violation")
	}
}
