package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/rs/xid"
	"github.com/studygen/backend/internal/apperror"
	"github.com/studygen/backend/internal/model"
	"github.com/studygen/backend/internal/repository"
)

// GuideRepo is the guides collection. Created with DB.Guides().
type GuideRepo struct {
	conn *sql.DB
}

// compile-time check that *GuideRepo implements repository.GuideRepository
var _ repository.GuideRepository = (*GuideRepo)(nil)

// FindAll returns every guide document in the collection.
func (r *GuideRepo) FindAll(ctx context.Context) ([]model.Guide, error) {
	rows, err := r.conn.QueryContext(ctx, `SELECT doc FROM guides`)
	if err != nil {
		return nil, apperror.Database("fetch guides", err)
	}
	defer rows.Close()

	guides := make([]model.Guide, 0)
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, apperror.Database("fetch guides", err)
		}
		var g model.Guide
		if err := json.Unmarshal([]byte(doc), &g); err != nil {
			return nil, apperror.Database("decode guide document", err)
		}
		guides = append(guides, g)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Database("fetch guides", err)
	}

	return guides, nil
}

// FindByID returns the guide with the given id, or apperror.ErrNotFound.
func (r *GuideRepo) FindByID(ctx context.Context, id string) (*model.Guide, error) {
	var doc string
	err := r.conn.QueryRowContext(ctx,
		`SELECT doc FROM guides WHERE id = ?`, id,
	).Scan(&doc)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("Guide", "id", id)
		}
		return nil, apperror.Database("fetch guide", err)
	}

	var g model.Guide
	if err := json.Unmarshal([]byte(doc), &g); err != nil {
		return nil, apperror.Database("decode guide document", err)
	}
	return &g, nil
}

// ExistsByID reports whether a guide with the id is in the collection.
// The guide service checks this before any mutation of its delete cascade.
func (r *GuideRepo) ExistsByID(ctx context.Context, id string) (bool, error) {
	var one int
	err := r.conn.QueryRowContext(ctx,
		`SELECT 1 FROM guides WHERE id = ?`, id,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, apperror.Database("check guide existence", err)
	}
	return true, nil
}

// Save upserts the whole guide document in a single statement, assigning a
// store id when the guide is new.
func (r *GuideRepo) Save(ctx context.Context, guide *model.Guide) error {
	if guide.ID == "" {
		guide.ID = xid.New().String()
	}

	doc, err := json.Marshal(guide)
	if err != nil {
		return apperror.Database("save guide", err)
	}

	_, err = r.conn.ExecContext(ctx,
		`INSERT INTO guides (id, doc) VALUES (?, ?)
		 ON CONFLICT(id) DO UPDATE SET doc = excluded.doc`,
		guide.ID, string(doc),
	)
	if err != nil {
		return apperror.Database("save guide", err)
	}

	return nil
}

// Delete removes the guide document.
func (r *GuideRepo) Delete(ctx context.Context, id string) error {
	result, err := r.conn.ExecContext(ctx, `DELETE FROM guides WHERE id = ?`, id)
	if err != nil {
		return apperror.Database("delete guide", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperror.Database("delete guide", err)
	}
	if affected == 0 {
		return apperror.NotFound("Guide", "id", id)
	}

	return nil
}
