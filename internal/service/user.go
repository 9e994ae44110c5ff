// Package service contains the business logic layer of the application.
//
// The layering follows the usual shape: handlers parse HTTP and write
// responses, services enforce the domain rules, repositories talk to the
// store. The rules that matter here are the two consistency obligations the
// store cannot enforce for us:
//
//  1. Username and email are unique across users (uniquenessGuard — advisory
//     check-then-act, see uniqueness.go).
//  2. Every id in User.GuideIDs refers to a guide that exists
//     (GuideService — the only component allowed to touch both
//     collections, see guide.go).
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

// UserService handles business logic for user accounts.
type UserService struct {
	repo   repository.UserRepository
	guard  *uniquenessGuard
	logger *slog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(repo repository.UserRepository, logger *slog.Logger) *UserService {
	return &UserService{
		repo:   repo,
		guard:  &uniquenessGuard{users: repo},
		logger: logger,
	}
}

// FindAll returns every user.
func (s *UserService) FindAll(ctx context.Context) ([]model.User, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("failed to fetch users", slog.String("error", err.Error()))
		return nil, fmt.Errorf("fetching users: %w", err)
	}
	return users, nil
}

// FindByID returns the user with the given id.
func (s *UserService) FindByID(ctx context.Context, id string) (*model.User, error) {
	if id = strings.TrimSpace(id); id == "" {
		return nil, apperror.ValidationFailed("id", "user ID is required")
	}
	return s.repo.FindByID(ctx, id)
}

// FindByUsername returns the user holding the username.
func (s *UserService) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	if username = strings.TrimSpace(username); username == "" {
		return nil, apperror.ValidationFailed("username", "username is required")
	}
	return s.repo.FindByUsername(ctx, username)
}

// FindByEmail returns the user holding the email.
func (s *UserService) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if email = strings.TrimSpace(email); email == "" {
		return nil, apperror.ValidationFailed("email", "email is required")
	}
	return s.repo.FindByEmail(ctx, email)
}

// Create validates the identity fields against every existing user and, on
// success, persists a new user with an empty guide list.
//
// Both guard checks run before the write. If another create with the same
// username lands between our check and our save, the store accepts both —
// the guard is advisory (see uniqueness.go).
func (s *UserService) Create(ctx context.Context, username, email, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if username == "" {
		return nil, apperror.ValidationFailed("username", "username is required")
	}
	if email == "" {
		return nil, apperror.ValidationFailed("email", "email is required")
	}
	if password == "" {
		return nil, apperror.ValidationFailed("password", "password is required")
	}

	if err := s.guard.checkUsernameAvailable(ctx, username, ""); err != nil {
		return nil, err
	}
	if err := s.guard.checkEmailAvailable(ctx, email, ""); err != nil {
		return nil, err
	}

	user := &model.User{
		Username: username,
		Email:    email,
		Password: password,
		GuideIDs: []string{}, // a new user owns no guides yet
	}

	if err := s.repo.Save(ctx, user); err != nil {
		s.logger.Error("failed to create user",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating user: %w", err)
	}

	s.logger.Info("user created",
		slog.String("id", user.ID),
		slog.String("username", user.Username),
	)

	return user, nil
}

// Update modifies an existing user.
//
// Each identity field is re-validated ONLY when the request value differs
// from the stored one. Re-checking an unchanged username would always
// collide — with the user itself — so unchanged fields skip the guard
// entirely. When a field does change, the guard excludes this user's own id
// from the collision check.
//
// Password is replaced only when the request supplies a non-empty value;
// an empty password means "keep the current one".
func (s *UserService) Update(ctx context.Context, id, username, email, password string) (*model.User, error) {
	id = strings.TrimSpace(id)
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if id == "" {
		return nil, apperror.ValidationFailed("id", "user ID is required")
	}
	if username == "" {
		return nil, apperror.ValidationFailed("username", "username is required")
	}
	if email == "" {
		return nil, apperror.ValidationFailed("email", "email is required")
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if username != user.Username {
		if err := s.guard.checkUsernameAvailable(ctx, username, id); err != nil {
			return nil, err
		}
		user.Username = username
	}

	if email != user.Email {
		if err := s.guard.checkEmailAvailable(ctx, email, id); err != nil {
			return nil, err
		}
		user.Email = email
	}

	if password != "" {
		user.Password = password
	}

	if err := s.repo.Save(ctx, user); err != nil {
		s.logger.Error("failed to update user",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating user: %w", err)
	}

	s.logger.Info("user updated", slog.String("id", user.ID))

	return user, nil
}

// Delete removes a user by id.
//
// Deleting a user does NOT cascade into guides: the guides it referenced
// simply become unreferenced. Guides carry no back-pointer, so nothing on
// the guide side can dangle — the asymmetry with guide deletion (which does
// cascade into users) is intentional.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if id = strings.TrimSpace(id); id == "" {
		return apperror.ValidationFailed("id", "user ID is required")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("user deleted", slog.String("id", id))
	return nil
}
