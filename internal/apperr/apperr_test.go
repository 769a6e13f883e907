package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		kind Kind
		want int
	}{
		{Unauthorized, http.StatusUnauthorized},
		{Forbidden, http.StatusForbidden},
		{NotFound, http.StatusNotFound},
		{Conflict, http.StatusConflict},
		{Validation, http.StatusBadRequest},
		{Duplicate, http.StatusBadRequest},
	}
	for _, tc := range cases {
		if got := Status(New(tc.kind, "KEY")); got != tc.want {
			t.Errorf("kind %d: got %d, want %d", tc.kind, got, tc.want)
		}
	}
}

func TestStatusUnclassified(t *testing.T) {
	if got := Status(errors.New("boom")); got != http.StatusInternalServerError {
		t.Fatalf("unclassified error: got %d", got)
	}
}

func TestKeyFallback(t *testing.T) {
	if got := Key(New(NotFound, "CASE_NOT_FOUND")); got != "CASE_NOT_FOUND" {
		t.Fatalf("got %s", got)
	}
	if got := Key(errors.New("boom")); got != "INTERNAL_ERROR" {
		t.Fatalf("fallback: got %s", got)
	}
}

func TestIsMatchesWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", New(Conflict, "CASE_ALREADY_DELETED"))
	if !Is(wrapped, Conflict) {
		t.Fatal("Is must see through wrapping")
	}
	if Is(wrapped, NotFound) {
		t.Fatal("Is must respect the kind")
	}
}

func TestErrorStringIncludesDetail(t *testing.T) {
	err := Newf(NotFound, "STAFF_NOT_FOUND", "staff id %d", 42)
	if err.Error() != "STAFF_NOT_FOUND: staff id 42" {
		t.Fatalf("got %q", err.Error())
	}
	bare := New(NotFound, "STAFF_NOT_FOUND")
	if bare.Error() != "STAFF_NOT_FOUND" {
		t.Fatalf("got %q", bare.Error())
	}
}
