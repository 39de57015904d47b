package checkin

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestUniqueViolationDetection(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505", ConstraintName: "users_checkins_pkey"}
	if !isUniqueViolation(unique) {
		t.Fatal("expected 23505 to be a unique violation")
	}
	if !isUniqueViolation(fmt.Errorf("insert state: %w", unique)) {
		t.Fatal("expected wrapped 23505 to be a unique violation")
	}
	if isUniqueViolation(&pgconn.PgError{Code: "40001"}) {
		t.Fatal("serialization failure is not a unique violation")
	}
	if isUniqueViolation(errors.New("connection reset")) {
		t.Fatal("plain error is not a unique violation")
	}
}
