package apperror

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// TABLE-DRIVEN TESTS:
// Each case checks that errors.Is() correctly identifies the error type,
// even through additional fmt.Errorf("%w") wrapping by the service layer.

func TestErrorsIs(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		target    error
		wantMatch bool
	}{
		{
			name:      "NotFound wraps ErrNotFound",
			err:       NotFound("User", "id", "abc123"),
			target:    ErrNotFound,
			wantMatch: true,
		},
		{
			name:      "Duplicate wraps ErrDuplicate",
			err:       Duplicate("User", "username", "alice"),
			target:    ErrDuplicate,
			wantMatch: true,
		},
		{
			name:      "ValidationFailed wraps ErrValidation",
			err:       ValidationFailed("content", "content is required"),
			target:    ErrValidation,
			wantMatch: true,
		},
		{
			name:      "Database wraps ErrDatabase",
			err:       Database("fetch users", errors.New("disk I/O error")),
			target:    ErrDatabase,
			wantMatch: true,
		},
		{
			name:      "NotFound does NOT match ErrDuplicate",
			err:       NotFound("Guide", "id", "abc123"),
			target:    ErrDuplicate,
			wantMatch: false,
		},
		{
			name:      "Duplicate does NOT match ErrNotFound",
			err:       Duplicate("User", "email", "a@x.com"),
			target:    ErrNotFound,
			wantMatch: false,
		},
		{
			name:      "service-level wrapping preserves the chain",
			err:       fmt.Errorf("creating user: %w", Duplicate("User", "username", "alice")),
			target:    ErrDuplicate,
			wantMatch: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Is(tt.err, tt.target); got != tt.wantMatch {
				t.Errorf("errors.Is() = %v, want %v", got, tt.wantMatch)
			}
		})
	}
}

func TestErrorsAs(t *testing.T) {
	err := fmt.Errorf("updating user: %w", Duplicate("User", "email", "a@x.com"))

	var appErr *AppError
	if !errors.As(err, &appErr) {
		t.Fatal("errors.As() failed to extract *AppError from wrapped chain")
	}
	if appErr.Entity != "User" || appErr.Field != "email" || appErr.Value != "a@x.com" {
		t.Errorf("AppError context = (%q, %q, %q), want (User, email, a@x.com)",
			appErr.Entity, appErr.Field, appErr.Value)
	}
}

func TestNotFoundMessage(t *testing.T) {
	err := NotFound("Guide", "id", "g1")
	want := "Guide not found with id: g1"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestDatabasePreservesCauseButHidesIt(t *testing.T) {
	cause := errors.New("SQLITE_BUSY: database is locked")
	err := Database("delete guide", cause)

	// The cause must stay reachable for diagnostics...
	if !errors.Is(err, cause) {
		t.Error("Database() lost the underlying cause from the error chain")
	}
	// ...but must never appear in the user-facing message.
	if strings.Contains(err.Error(), "SQLITE_BUSY") {
		t.Errorf("Error() leaks driver internals: %q", err.Error())
	}
}
