package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/studygen/backend/internal/apperror"
	"github.com/studygen/backend/internal/model"
)

func saveTestGuide(t *testing.T, repo *GuideRepo, content string) *model.Guide {
	t.Helper()
	guide := &model.Guide{Content: content}
	if err := repo.Save(context.Background(), guide); err != nil {
		t.Fatalf("failed to save test guide: %v", err)
	}
	return guide
}

func TestGuideSave_AssignsID(t *testing.T) {
	repo := newTestDB(t).Guides()

	guide := &model.Guide{Content: "chapter one"}
	if err := repo.Save(context.Background(), guide); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if guide.ID == "" {
		t.Error("Save() did not assign guide.ID")
	}
}

func TestGuideSave_UpdateKeepsID(t *testing.T) {
	repo := newTestDB(t).Guides()

	guide := saveTestGuide(t, repo, "v1")
	originalID := guide.ID

	guide.Content = "v2"
	if err := repo.Save(context.Background(), guide); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if guide.ID != originalID {
		t.Errorf("Save() changed the id on update: %s → %s", originalID, guide.ID)
	}

	loaded, err := repo.FindByID(context.Background(), originalID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if loaded.Content != "v2" {
		t.Errorf("Content = %q, want v2", loaded.Content)
	}
}

func TestGuideFindByID_NotFound(t *testing.T) {
	repo := newTestDB(t).Guides()

	_, err := repo.FindByID(context.Background(), "nonexistent")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("FindByID(nonexistent) error = %v, want ErrNotFound", err)
	}

	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Entity != "Guide" {
		t.Errorf("not-found error should identify the Guide entity, got %+v", appErr)
	}
}

func TestGuideExistsByID(t *testing.T) {
	repo := newTestDB(t).Guides()

	guide := saveTestGuide(t, repo, "exists")

	exists, err := repo.ExistsByID(context.Background(), guide.ID)
	if err != nil {
		t.Fatalf("ExistsByID() error = %v", err)
	}
	if !exists {
		t.Error("ExistsByID() = false for a saved guide")
	}

	exists, err = repo.ExistsByID(context.Background(), "nonexistent")
	if err != nil {
		t.Fatalf("ExistsByID() error = %v", err)
	}
	if exists {
		t.Error("ExistsByID() = true for a missing guide")
	}
}

func TestGuideDelete(t *testing.T) {
	repo := newTestDB(t).Guides()

	guide := saveTestGuide(t, repo, "doomed")

	if err := repo.Delete(context.Background(), guide.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if err := repo.Delete(context.Background(), guide.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
}

func TestGuideFindAll(t *testing.T) {
	repo := newTestDB(t).Guides()

	saveTestGuide(t, repo, "one")
	saveTestGuide(t, repo, "two")
	saveTestGuide(t, repo, "three")

	all, err := repo.FindAll(context.Background())
	if err != nil {
		t.Fatalf("FindAll() error = %v", err)
	}
	if len(all) != 3 {
		t.Errorf("FindAll() = %d guides, want 3", len(all))
	}
}
