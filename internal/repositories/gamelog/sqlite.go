package gamelog

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	// registers the "sqlite" driver
	_ "modernc.org/sqlite"

	"github.com/KirkDiggler/agent-sandbox/internal/entities"
	"github.com/KirkDiggler/agent-sandbox/internal/errors"
	"github.com/KirkDiggler/agent-sandbox/internal/pkg/clock"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS game_logs (
	seq        INTEGER PRIMARY KEY AUTOINCREMENT,
	id         TEXT NOT NULL UNIQUE,
	event_type TEXT NOT NULL,
	content    TEXT NOT NULL,
	created_at TEXT NOT NULL
);`

// SQLiteConfig contains configuration for the SQLite game log repository
type SQLiteConfig struct {
	// Path of the database file; ":memory:" is accepted for tests
	Path  string
	Clock clock.Clock
}

// Validate validates the SQLiteConfig
func (cfg *SQLiteConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Path == "" {
		return errors.InvalidArgument("path cannot be empty")
	}
	return nil
}

// SQLiteRepository is a game log backed by a single SQLite file
type SQLiteRepository struct {
	db    *sql.DB
	clock clock.Clock
}

// OpenSQLite opens (creating if needed) the database and its schema
func OpenSQLite(cfg *SQLiteConfig) (*SQLiteRepository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, errors.Wrapf(err, "failed to create directory for %s", cfg.Path)
		}
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open sqlite database")
	}
	// single writer; a second connection to ":memory:" would see an empty database
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	for _, stmt := range []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		sqliteSchema,
	} {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, errors.Wrapf(err, "failed to initialize sqlite database")
		}
	}

	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}

	return &SQLiteRepository{db: db, clock: clk}, nil
}

// Close releases the database handle
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// Append implements Repository
func (r *SQLiteRepository) Append(ctx context.Context, input AppendInput) (*AppendOutput, error) {
	if err := validateLog(input.Log); err != nil {
		return nil, err
	}
	if input.Log.CreatedAt.IsZero() {
		input.Log.CreatedAt = r.clock.Now()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO game_logs (id, event_type, content, created_at) VALUES (?, ?, ?, ?)`,
		input.Log.ID,
		string(input.Log.Kind),
		input.Log.Content,
		input.Log.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to append game log")
	}

	return &AppendOutput{Log: input.Log}, nil
}

// ListRecent implements Repository
func (r *SQLiteRepository) ListRecent(ctx context.Context, input ListRecentInput) (*ListRecentOutput, error) {
	if input.Limit <= 0 {
		return &ListRecentOutput{Logs: []*entities.GameLog{}}, nil
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, event_type, content, created_at FROM game_logs ORDER BY seq DESC LIMIT ?`,
		input.Limit,
	)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to query game logs")
	}
	defer func() { _ = rows.Close() }()

	logs := make([]*entities.GameLog, 0, input.Limit)
	for rows.Next() {
		var (
			l         entities.GameLog
			kind      string
			createdAt string
		)
		if err := rows.Scan(&l.ID, &kind, &l.Content, &createdAt); err != nil {
			return nil, errors.Wrapf(err, "failed to scan game log")
		}
		l.Kind = entities.LogKind(kind)
		if l.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, errors.Wrapf(err, "game log %s has a bad timestamp", l.ID)
		}
		logs = append(logs, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to read game logs")
	}

	return &ListRecentOutput{Logs: logs}, nil
}

var _ Repository = (*SQLiteRepository)(nil)
