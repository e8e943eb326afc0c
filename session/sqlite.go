package session

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore persists session records in a small SQLite database so that a
// login survives process restarts, the terminal equivalent of browser local
// storage. One row per audience.
type SQLiteStore struct {
	db *sql.DB

	setStmt *sql.Stmt
	getStmt *sql.Stmt
}

// NewSQLiteStore opens (or creates) the session database at dbPath, applies
// schema migrations, and prepares common statements.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	// Ensure directory exists so first-run succeeds.
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create session dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=1", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := applyMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	store := &SQLiteStore{db: db}
	if err := store.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// Close releases prepared statements and closes the DB.
func (s *SQLiteStore) Close() error {
	if s.setStmt != nil {
		s.setStmt.Close()
	}
	if s.getStmt != nil {
		s.getStmt.Close()
	}
	return s.db.Close()
}

// ---------------------------------------------------------------------------
// Schema migration
// ---------------------------------------------------------------------------

const schemaVersion = 1

func applyMigrations(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT);`); err != nil {
		return err
	}

	var current int
	_ = db.QueryRow(`SELECT value FROM meta WHERE key='schema_version';`).Scan(&current)
	if current >= schemaVersion {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
            audience TEXT PRIMARY KEY,
            token TEXT NOT NULL,
            role TEXT NOT NULL,
            name TEXT NOT NULL DEFAULT ''
        );`,
		`INSERT INTO meta(key,value) VALUES('schema_version',?)
            ON CONFLICT(key) DO UPDATE SET value=excluded.value;`,
	}

	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt, schemaVersion); err != nil {
			return fmt.Errorf("apply migration: %w", err)
		}
	}

	return tx.Commit()
}

// ---------------------------------------------------------------------------
// Prepared statements
// ---------------------------------------------------------------------------

func (s *SQLiteStore) prepareStatements() error {
	var err error
	if s.setStmt, err = s.db.Prepare(`INSERT INTO sessions(audience,token,role,name) VALUES(?,?,?,?)
        ON CONFLICT(audience) DO UPDATE SET token=excluded.token, role=excluded.role, name=excluded.name`); err != nil {
		return err
	}
	if s.getStmt, err = s.db.Prepare(`SELECT token,role,name FROM sessions WHERE audience=?`); err != nil {
		return err
	}
	return nil
}

// ---------------------------------------------------------------------------
// Store implementation
// ---------------------------------------------------------------------------

// Set writes the whole record in one statement, so a reader can never see a
// token without the role it was issued with.
func (s *SQLiteStore) Set(aud Audience, rec Record) error {
	if _, err := s.setStmt.Exec(string(aud), rec.Token, rec.Role, rec.Name); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Get fetches the record for one audience. The second result reports whether
// a session is present.
func (s *SQLiteStore) Get(aud Audience) (Record, bool, error) {
	var rec Record
	err := s.getStmt.QueryRow(string(aud)).Scan(&rec.Token, &rec.Role, &rec.Name)
	if err == sql.ErrNoRows {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, fmt.Errorf("read session: %w", err)
	}
	return rec, true, nil
}

// Clear removes every audience's session (logout).
func (s *SQLiteStore) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM sessions`); err != nil {
		return fmt.Errorf("clear sessions: %w", err)
	}
	return nil
}
