package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/studygen/backend/internal/apperror"
	"github.com/studygen/backend/internal/model"
)

// Each test gets its own ":memory:" database — fast, isolated, destroyed
// when the connection closes.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func saveTestUser(t *testing.T, repo *UserRepo, username, email string) *model.User {
	t.Helper()
	user := &model.User{Username: username, Email: email, Password: "secret"}
	if err := repo.Save(context.Background(), user); err != nil {
		t.Fatalf("failed to save test user: %v", err)
	}
	return user
}

func TestUserSave_AssignsIDAndTimestamps(t *testing.T) {
	repo := newTestDB(t).Users()

	user := &model.User{Username: "alice", Email: "a@x.com", Password: "pw"}
	if err := repo.Save(context.Background(), user); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if user.ID == "" {
		t.Error("Save() did not assign user.ID")
	}
	if user.CreatedAt.IsZero() {
		t.Error("Save() did not set user.CreatedAt")
	}
	if user.UpdatedAt.IsZero() {
		t.Error("Save() did not set user.UpdatedAt")
	}
	if user.GuideIDs == nil {
		t.Error("Save() left GuideIDs nil, want empty slice")
	}
}

func TestUserSave_RoundTripsGuideIDs(t *testing.T) {
	repo := newTestDB(t).Users()

	user := saveTestUser(t, repo, "alice", "a@x.com")
	user.GuideIDs = []string{"g1", "g2"}
	if err := repo.Save(context.Background(), user); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := repo.FindByID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if len(loaded.GuideIDs) != 2 || loaded.GuideIDs[0] != "g1" || loaded.GuideIDs[1] != "g2" {
		t.Errorf("GuideIDs = %v, want [g1 g2]", loaded.GuideIDs)
	}
	if loaded.Password != "secret" {
		t.Errorf("Password = %q, want the stored opaque value", loaded.Password)
	}
}

func TestUserSave_UpdatePreservesIdentityRefreshesUpdatedAt(t *testing.T) {
	repo := newTestDB(t).Users()

	user := saveTestUser(t, repo, "alice", "a@x.com")
	originalID := user.ID
	originalCreated := user.CreatedAt

	user.Email = "new@x.com"
	if err := repo.Save(context.Background(), user); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := repo.FindByID(context.Background(), originalID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if loaded.Email != "new@x.com" {
		t.Errorf("Email = %q, want new@x.com", loaded.Email)
	}
	if !loaded.CreatedAt.Equal(originalCreated) {
		t.Errorf("CreatedAt changed on update: %v → %v", originalCreated, loaded.CreatedAt)
	}
	if loaded.UpdatedAt.Before(originalCreated) {
		t.Error("UpdatedAt was not refreshed on update")
	}
}

func TestUserFindByUsername(t *testing.T) {
	repo := newTestDB(t).Users()

	saved := saveTestUser(t, repo, "alice", "a@x.com")
	saveTestUser(t, repo, "bob", "b@x.com")

	found, err := repo.FindByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("FindByUsername() error = %v", err)
	}
	if found.ID != saved.ID {
		t.Errorf("FindByUsername() returned user %s, want %s", found.ID, saved.ID)
	}

	_, err = repo.FindByUsername(context.Background(), "nobody")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("FindByUsername(nobody) error = %v, want ErrNotFound", err)
	}
}

func TestUserFindByEmail(t *testing.T) {
	repo := newTestDB(t).Users()

	saved := saveTestUser(t, repo, "alice", "a@x.com")

	found, err := repo.FindByEmail(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("FindByEmail() error = %v", err)
	}
	if found.ID != saved.ID {
		t.Errorf("FindByEmail() returned user %s, want %s", found.ID, saved.ID)
	}

	_, err = repo.FindByEmail(context.Background(), "missing@x.com")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("FindByEmail(missing) error = %v, want ErrNotFound", err)
	}
}

func TestUserFindByID_NotFound(t *testing.T) {
	repo := newTestDB(t).Users()

	_, err := repo.FindByID(context.Background(), "nonexistent")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("FindByID(nonexistent) error = %v, want ErrNotFound", err)
	}

	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Entity != "User" {
		t.Errorf("not-found error should identify the User entity, got %+v", appErr)
	}
}

func TestUserDelete(t *testing.T) {
	repo := newTestDB(t).Users()

	user := saveTestUser(t, repo, "alice", "a@x.com")

	if err := repo.Delete(context.Background(), user.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	_, err := repo.FindByID(context.Background(), user.ID)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("FindByID after delete error = %v, want ErrNotFound", err)
	}

	if err := repo.Delete(context.Background(), user.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
}

func TestUserFindAll(t *testing.T) {
	repo := newTestDB(t).Users()

	all, err := repo.FindAll(context.Background())
	if err != nil {
		t.Fatalf("FindAll() error = %v", err)
	}
	if len(all) != 0 {
		t.Errorf("FindAll() on empty collection = %d users, want 0", len(all))
	}

	saveTestUser(t, repo, "alice", "a@x.com")
	saveTestUser(t, repo, "bob", "b@x.com")

	all, err = repo.FindAll(context.Background())
	if err != nil {
		t.Fatalf("FindAll() error = %v", err)
	}
	if len(all) != 2 {
		t.Errorf("FindAll() = %d users, want 2", len(all))
	}
}

// The store itself enforces NO uniqueness on username or email — that rule
// lives entirely in the service-level guard, and the guard is check-then-act.
// This test pins down the structural half of that contract: writing two
// users with the same username straight through the repository succeeds,
// which is exactly what a lost race at the service layer would produce.
func TestUserSave_NoStructuralUniqueness(t *testing.T) {
	repo := newTestDB(t).Users()

	saveTestUser(t, repo, "alice", "a@x.com")
	saveTestUser(t, repo, "alice", "b@y.com") // same username, different user

	all, err := repo.FindAll(context.Background())
	if err != nil {
		t.Fatalf("FindAll() error = %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("store rejected the duplicate username; got %d users, want 2", len(all))
	}
}
