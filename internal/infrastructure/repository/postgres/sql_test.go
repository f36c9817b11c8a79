package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
)

func TestIsUniqueViolation(t *testing.T) {
	t.Run("matches unique_violation code", func(t *testing.T) {
		err := &pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"}
		if !isUniqueViolation(err) {
			t.Fatalf("expected true for 23505")
		}
	})

	t.Run("matches wrapped error", func(t *testing.T) {
		err := fmt.Errorf("insert round: %w", &pq.Error{Code: "23505"})
		if !isUniqueViolation(err) {
			t.Fatalf("expected true for wrapped 23505")
		}
	})

	t.Run("ignores other pq codes", func(t *testing.T) {
		err := &pq.Error{Code: "23503", Message: "foreign key violation"}
		if isUniqueViolation(err) {
			t.Fatalf("expected false for non-unique violation")
		}
	})

	t.Run("ignores plain errors", func(t *testing.T) {
		if isUniqueViolation(errors.New("duplicate key value violates unique constraint")) {
			t.Fatalf("expected false for a non-pq error")
		}
	})
}

func TestIsNotFound(t *testing.T) {
	if !isNotFound(sql.ErrNoRows) {
		t.Fatalf("expected true for sql.ErrNoRows")
	}
	if !isNotFound(fmt.Errorf("get player: %w", sql.ErrNoRows)) {
		t.Fatalf("expected true for wrapped sql.ErrNoRows")
	}
	if isNotFound(errors.New("connection refused")) {
		t.Fatalf("expected false for unrelated error")
	}
}

func TestUnixTimeConversions(t *testing.T) {
	t.Run("round trip keeps UTC seconds", func(t *testing.T) {
		in := time.Date(2026, 8, 14, 20, 30, 0, 0, time.FixedZone("WIB", 7*3600))
		out := unixToTime(timeToUnix(in))
		if !out.Equal(in.Truncate(time.Second)) {
			t.Fatalf("round trip mismatch: %v vs %v", out, in)
		}
		if out.Location() != time.UTC {
			t.Fatalf("expected UTC location, got %v", out.Location())
		}
	})

	t.Run("zero value guards", func(t *testing.T) {
		if got := timeToUnix(time.Time{}); got != 0 {
			t.Fatalf("zero time must map to 0, got %d", got)
		}
		if got := unixToTime(0); !got.IsZero() {
			t.Fatalf("0 must map to the zero time, got %v", got)
		}
	})
}
