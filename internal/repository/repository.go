// Package repository defines the per-collection storage interfaces.
//
// Each method is a single round trip against one collection. The store
// offers NO multi-document transactions — callers that need to touch both
// collections (the guide service's cascade) sequence the calls themselves
// and must order them so a crash between calls never leaves a dangling
// guide id (see service.GuideService).
package repository

import (
	"context"

	"github.com/studygen/backend/internal/model"
)

// UserRepository provides typed access to the users collection.
//
// Save has upsert semantics: a user with an empty ID gets a store-assigned
// id and CreatedAt; an existing id replaces the whole document. Either way
// the write is one atomic single-document operation.
//
// FindByUsername and FindByEmail return apperror.ErrNotFound when no user
// holds the value — the uniqueness guard relies on that distinction.
type UserRepository interface {
	FindAll(ctx context.Context) ([]model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Save(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id string) error
}

// GuideRepository provides typed access to the guides collection.
type GuideRepository interface {
	FindAll(ctx context.Context) ([]model.Guide, error)
	FindByID(ctx context.Context, id string) (*model.Guide, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	Save(ctx context.Context, guide *model.Guide) error
	Delete(ctx context.Context, id string) error
}
