// Package sqlite implements the repository interfaces on top of SQLite
// used as a document store.
//
// WHY A DOCUMENT STORE ON SQLITE?
// The data model is document-shaped: a User embeds its guideIds list inside
// the record, and there are no foreign keys between users and guides. So
// each collection is a two-column table — (id, doc) — where doc is the whole
// record as JSON. Single-field lookups (username, email) go through SQLite's
// json_extract over a full scan of the collection.
//
// Deliberate non-features, matching the consistency model the services are
// written against:
//   - No UNIQUE index on username/email json paths. Uniqueness is enforced
//     by the service-level guard (check-then-act), and the guard is
//     advisory: the store will happily hold two users with the same
//     username if the guard is bypassed or raced.
//   - No transaction ever spans two collections. Each repository call is
//     one SQL statement — atomic for a single document, nothing more.
//
// WHY modernc.org/sqlite?
// Pure Go translation of SQLite — no CGo, no C compiler, cross-compiles
// anywhere Go runs. ":memory:" databases make tests fast and isolated.
package sqlite

import (
	"database/sql"
	"fmt"

	// Side-effect import: registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool. The per-collection repositories
// (Users, Guides) share this one pool.
type DB struct {
	conn *sql.DB
}

// Users returns the users collection repository.
func (db *DB) Users() *UserRepo {
	return &UserRepo{conn: db.conn}
}

// Guides returns the guides collection repository.
func (db *DB) Guides() *GuideRepo {
	return &GuideRepo{conn: db.conn}
}

// New opens the database, enables WAL mode, and creates the collection
// tables. Use ":memory:" for an in-memory database (tests).
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// Fail fast on a bad path or permissions instead of on the first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL allows concurrent reads while a write is in progress — needed
	// because every request shares this one pool.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool. Always defer this next to New().
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the collection tables.
//
// Each collection is id → JSON document. There is intentionally no schema
// beyond the primary key: the document is the schema, exactly like the
// document database this layer stands in for. In particular there is NO
// unique index on $.username or $.email — see the package comment.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id  TEXT PRIMARY KEY,
			doc TEXT NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("creating users collection: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS guides (
			id  TEXT PRIMARY KEY,
			doc TEXT NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("creating guides collection: %w", err)
	}

	return nil
}
