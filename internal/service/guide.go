package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/studygen/backend/internal/apperror"
	"github.com/studygen/backend/internal/model"
	"github.com/studygen/backend/internal/repository"
)

// GuideService handles business logic for guides, including the one
// invariant this system lives or dies by: every id in a user's guideIds
// list refers to a guide that exists.
//
// The store cannot enforce that — there are no foreign keys and no
// transaction spans both collections — so this service is the ONLY
// component that ever touches users and guides in the same operation.
// Keeping the cross-collection logic here, and nowhere else, is what stops
// the invariant-preserving code from being duplicated or bypassed.
type GuideService struct {
	guides repository.GuideRepository
	users  repository.UserRepository
	logger *slog.Logger
}

// NewGuideService creates a new GuideService.
func NewGuideService(guides repository.GuideRepository, users repository.UserRepository, logger *slog.Logger) *GuideService {
	return &GuideService{
		guides: guides,
		users:  users,
		logger: logger,
	}
}

// FindAll returns every guide.
func (s *GuideService) FindAll(ctx context.Context) ([]model.Guide, error) {
	guides, err := s.guides.FindAll(ctx)
	if err != nil {
		s.logger.Error("failed to fetch guides", slog.String("error", err.Error()))
		return nil, fmt.Errorf("fetching guides: %w", err)
	}
	return guides, nil
}

// FindByID returns the guide with the given id.
func (s *GuideService) FindByID(ctx context.Context, id string) (*model.Guide, error) {
	if id = strings.TrimSpace(id); id == "" {
		return nil, apperror.ValidationFailed("id", "guide ID is required")
	}
	return s.guides.FindByID(ctx, id)
}

// Create persists a new guide and, when userID is non-empty, links it into
// that user's guide list.
//
// ORDER AND PARTIAL FAILURE:
// The guide is saved FIRST, then the user is loaded and linked. If the user
// turns out not to exist, the guide has already been persisted and is NOT
// rolled back — there is no transaction spanning the two collections to
// roll back with. The caller gets a User not-found error and the guide
// survives as unreferenced, which is harmless: an orphaned guide breaks no
// invariant, only a dangling id in a user would.
//
// The link is idempotent: an id already present in the list is never
// appended again.
func (s *GuideService) Create(ctx context.Context, content, userID string) (*model.Guide, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperror.ValidationFailed("content", "content is required")
	}

	guide := &model.Guide{Content: content}
	if err := s.guides.Save(ctx, guide); err != nil {
		s.logger.Error("failed to create guide", slog.String("error", err.Error()))
		return nil, fmt.Errorf("creating guide: %w", err)
	}

	s.logger.Info("guide created", slog.String("id", guide.ID))

	if userID != "" {
		user, err := s.users.FindByID(ctx, userID)
		if err != nil {
			// The guide stays. Surface the bad userId as-is.
			return nil, err
		}

		if user.AddGuide(guide.ID) {
			if err := s.users.Save(ctx, user); err != nil {
				s.logger.Error("failed to link guide to user",
					slog.String("userId", user.ID),
					slog.String("guideId", guide.ID),
					slog.String("error", err.Error()),
				)
				return nil, fmt.Errorf("linking guide to user: %w", err)
			}
			s.logger.Info("guide added to user's guide list",
				slog.String("userId", user.ID),
				slog.String("guideId", guide.ID),
			)
		}
	}

	return guide, nil
}

// Update replaces the guide's content. No relationship impact.
func (s *GuideService) Update(ctx context.Context, id, content string) (*model.Guide, error) {
	if id = strings.TrimSpace(id); id == "" {
		return nil, apperror.ValidationFailed("id", "guide ID is required")
	}
	if strings.TrimSpace(content) == "" {
		return nil, apperror.ValidationFailed("content", "content is required")
	}

	guide, err := s.guides.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	guide.Content = content

	if err := s.guides.Save(ctx, guide); err != nil {
		s.logger.Error("failed to update guide",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating guide: %w", err)
	}

	s.logger.Info("guide updated", slog.String("id", guide.ID))

	return guide, nil
}

// Delete removes a guide, cascading the removal of its id out of every
// user's guide list first.
//
// THE ORDER OF THE THREE STEPS IS THE WHOLE POINT:
//
//  1. Existence check — fail not-found before any mutation.
//  2. Unlink: scan all users and rewrite every one whose list contains the
//     id. Each rewrite is its own single-document save.
//  3. Only then delete the guide document itself.
//
// A crash after step 2 but before step 3 leaves an orphaned guide that no
// user references — harmless. The reverse order would risk a crash leaving
// users pointing at a guide that no longer exists, a dangling reference
// the design forbids. The scan is a full-collection pass: the store keeps
// no reverse index from guide ids to users.
func (s *GuideService) Delete(ctx context.Context, id string) error {
	if id = strings.TrimSpace(id); id == "" {
		return apperror.ValidationFailed("id", "guide ID is required")
	}

	exists, err := s.guides.ExistsByID(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting guide: %w", err)
	}
	if !exists {
		return apperror.NotFound("Guide", "id", id)
	}

	users, err := s.users.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("deleting guide: %w", err)
	}

	for i := range users {
		user := &users[i]
		if user.RemoveGuide(id) {
			if err := s.users.Save(ctx, user); err != nil {
				s.logger.Error("failed to unlink guide from user",
					slog.String("userId", user.ID),
					slog.String("guideId", id),
					slog.String("error", err.Error()),
				)
				return fmt.Errorf("unlinking guide from user: %w", err)
			}
			s.logger.Info("guide removed from user's guide list",
				slog.String("userId", user.ID),
				slog.String("guideId", id),
			)
		}
	}

	if err := s.guides.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("guide deleted", slog.String("id", id))
	return nil
}
