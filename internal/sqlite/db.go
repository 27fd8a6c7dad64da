package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One connection: a single editor writes, and ":memory:" databases are
	// per connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	return &DB{db}, nil
}

// RunMigrations creates the schema if it does not exist yet.
func (db *DB) RunMigrations() error {
	migration := `
-- Master inventory table, one row per item in table order
CREATE TABLE IF NOT EXISTS items (
    position INTEGER PRIMARY KEY,
    municipio_id TEXT NOT NULL DEFAULT '',
    municipio_nome TEXT NOT NULL DEFAULT '',
    item_id TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL DEFAULT '',
    categoria TEXT NOT NULL DEFAULT '',
    nome TEXT NOT NULL DEFAULT '',
    endereco TEXT NOT NULL DEFAULT '',
    telefone TEXT NOT NULL DEFAULT '',
    email TEXT NOT NULL DEFAULT '',
    site TEXT NOT NULL DEFAULT '',
    latitude TEXT NOT NULL DEFAULT '',
    longitude TEXT NOT NULL DEFAULT '',
    descricao TEXT NOT NULL DEFAULT '',
    validacao_preliminar TEXT NOT NULL DEFAULT '',
    obs_preliminar TEXT NOT NULL DEFAULT '',
    enviar_campo TEXT NOT NULL DEFAULT '0',
    visitado TEXT NOT NULL DEFAULT '0',
    obs_campo TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_items_municipio ON items(municipio_nome);

-- Table metadata; revision is bumped on every save
CREATE TABLE IF NOT EXISTS table_meta (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

-- Activity log
CREATE TABLE IF NOT EXISTS activity_log (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    session_id TEXT NOT NULL,
    activity_type TEXT NOT NULL,
    municipality TEXT NOT NULL DEFAULT '',
    page TEXT NOT NULL DEFAULT '',
    summary TEXT NOT NULL,
    details TEXT NOT NULL DEFAULT '',
    row_count INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_activity_session ON activity_log(session_id);
CREATE INDEX IF NOT EXISTS idx_activity_created_at ON activity_log(created_at);
`

	_, err := db.Exec(migration)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// Open connects to dataSourceName and runs migrations.
func Open(dataSourceName string) (*DB, error) {
	db, err := New(dataSourceName)
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
