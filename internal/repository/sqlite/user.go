package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/rs/xid"
	"github.com/studygen/backend/internal/apperror"
	"github.com/studygen/backend/internal/model"
	"github.com/studygen/backend/internal/repository"
)

// UserRepo is the users collection. Created with DB.Users().
type UserRepo struct {
	conn *sql.DB
}

// compile-time check that *UserRepo implements repository.UserRepository
var _ repository.UserRepository = (*UserRepo)(nil)

// FindAll returns every user document in the collection.
// There is no pagination — the cascade in the guide service depends on
// seeing the complete collection.
func (r *UserRepo) FindAll(ctx context.Context) ([]model.User, error) {
	rows, err := r.conn.QueryContext(ctx, `SELECT doc FROM users`)
	if err != nil {
		return nil, apperror.Database("fetch users", err)
	}
	defer rows.Close()

	users := make([]model.User, 0)
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, apperror.Database("fetch users", err)
		}
		u, err := decodeUser(doc)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Database("fetch users", err)
	}

	return users, nil
}

// FindByID returns the user with the given id, or apperror.ErrNotFound.
func (r *UserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	return r.findWhere(ctx, `id = ?`, id, "id")
}

// FindByUsername scans the collection for a user holding the username.
//
// json_extract pulls the field out of the stored document, so this is a
// full-collection scan — the collection has no index on the path, which is
// exactly what keeps the identity guard advisory rather than structural.
func (r *UserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.findWhere(ctx, `json_extract(doc, '$.username') = ?`, username, "username")
}

// FindByEmail scans the collection for a user holding the email.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findWhere(ctx, `json_extract(doc, '$.email') = ?`, email, "email")
}

func (r *UserRepo) findWhere(ctx context.Context, where, value, field string) (*model.User, error) {
	var doc string
	err := r.conn.QueryRowContext(ctx,
		`SELECT doc FROM users WHERE `+where, value,
	).Scan(&doc)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("User", field, value)
		}
		return nil, apperror.Database("fetch user", err)
	}
	return decodeUser(doc)
}

// Save upserts the whole user document in a single statement.
//
// A user with an empty ID is new: we assign an xid and stamp CreatedAt.
// UpdatedAt is refreshed on every write. The caller's struct is modified in
// place so it always reflects what was persisted.
//
// ON CONFLICT ... DO UPDATE keeps the write a single atomic statement —
// replacing the whole document is the only way to mutate a user, the same
// whole-document semantics the services are designed around.
func (r *UserRepo) Save(ctx context.Context, user *model.User) error {
	now := time.Now().UTC()
	if user.ID == "" {
		user.ID = xid.New().String()
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	if user.GuideIDs == nil {
		user.GuideIDs = []string{} // store [] rather than null
	}

	doc, err := json.Marshal(user)
	if err != nil {
		return apperror.Database("save user", err)
	}

	_, err = r.conn.ExecContext(ctx,
		`INSERT INTO users (id, doc) VALUES (?, ?)
		 ON CONFLICT(id) DO UPDATE SET doc = excluded.doc`,
		user.ID, string(doc),
	)
	if err != nil {
		return apperror.Database("save user", err)
	}

	return nil
}

// Delete removes the user document. RowsAffected distinguishes "deleted"
// from "was never there" without a prior SELECT.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	result, err := r.conn.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return apperror.Database("delete user", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperror.Database("delete user", err)
	}
	if affected == 0 {
		return apperror.NotFound("User", "id", id)
	}

	return nil
}

func decodeUser(doc string) (*model.User, error) {
	var u model.User
	if err := json.Unmarshal([]byte(doc), &u); err != nil {
		return nil, apperror.Database("decode user document", err)
	}
	if u.GuideIDs == nil {
		u.GuideIDs = []string{}
	}
	return &u, nil
}
