package service

import (
	"context"
	"errors"

	"github.com/studygen/backend/internal/apperror"
	"github.com/studygen/backend/internal/repository"
)

// uniquenessGuard enforces the username/email uniqueness rules for users.
//
// THIS IS CHECK-THEN-ACT, NOT A STORE CONSTRAINT.
// The store has no unique index on either field; the guard reads the
// collection and the caller writes afterwards. Two concurrent creates with
// the same username can both pass the check before either write lands —
// that window is an accepted property of the design, kept deliberately
// (and demonstrated by TestUserSave_NoStructuralUniqueness in the sqlite
// package) rather than papered over with locking the store doesn't have.
type uniquenessGuard struct {
	users repository.UserRepository
}

// checkUsernameAvailable fails with a duplicate error if a user OTHER THAN
// excludeID already holds the username. Pass excludeID == "" on creation,
// where any match at all is a collision.
func (g *uniquenessGuard) checkUsernameAvailable(ctx context.Context, username, excludeID string) error {
	existing, err := g.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil // nobody holds it
		}
		return err
	}
	if existing.ID == excludeID {
		return nil // it's the record being updated
	}
	return apperror.Duplicate("User", "username", username)
}

// checkEmailAvailable is the email counterpart of checkUsernameAvailable.
func (g *uniquenessGuard) checkEmailAvailable(ctx context.Context, email, excludeID string) error {
	existing, err := g.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.ID == excludeID {
		return nil
	}
	return apperror.Duplicate("User", "email", email)
}
