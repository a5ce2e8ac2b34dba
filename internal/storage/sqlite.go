// Package storage provides SQLite-based persistence for best times and run history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// timeLayout is how timestamps are written. SQLite's CURRENT_TIMESTAMP uses the same layout.
const timeLayout = "2006-01-02 15:04:05"

// DefaultDifficulty is recorded when a run or time carries no difficulty.
const DefaultDifficulty = "normal"

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist and upgrades
// databases written before runs carried a difficulty.
func (s *Store) migrate(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS leaderboard (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			variant TEXT NOT NULL,
			difficulty TEXT NOT NULL DEFAULT 'normal',
			username TEXT NOT NULL,
			time_remaining REAL NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(variant, difficulty, username)
		);

		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			variant TEXT NOT NULL,
			difficulty TEXT NOT NULL DEFAULT 'normal',
			username TEXT NOT NULL,
			outcome TEXT NOT NULL,
			reason TEXT NOT NULL DEFAULT '',
			time_remaining REAL NOT NULL DEFAULT 0,
			materials_collected INTEGER NOT NULL DEFAULT 0,
			total_materials INTEGER NOT NULL DEFAULT 0,
			vitality_left INTEGER NOT NULL DEFAULT 0,
			finished_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_runs_variant ON runs(variant);
		CREATE INDEX IF NOT EXISTS idx_runs_finished ON runs(finished_at DESC);
	`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return err
	}
	if err := s.upgradeDifficulty(ctx); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`CREATE INDEX IF NOT EXISTS idx_leaderboard_top
		 ON leaderboard(variant, difficulty, time_remaining DESC)`)
	return err
}

// upgradeDifficulty adds the difficulty column to tables created without it.
// Old best times were keyed by variant and user only; they are kept as
// normal-difficulty entries. SQLite cannot change a UNIQUE constraint in
// place, so the leaderboard table is rebuilt.
func (s *Store) upgradeDifficulty(ctx context.Context) error {
	hasRuns, err := s.hasColumn(ctx, "runs", "difficulty")
	if err != nil {
		return err
	}
	hasBoard, err := s.hasColumn(ctx, "leaderboard", "difficulty")
	if err != nil {
		return err
	}
	if hasRuns && hasBoard {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("cannot begin upgrade: %w", err)
	}
	defer tx.Rollback()

	if !hasRuns {
		if _, err := tx.ExecContext(ctx,
			"ALTER TABLE runs ADD COLUMN difficulty TEXT NOT NULL DEFAULT 'normal'"); err != nil {
			return fmt.Errorf("cannot add runs.difficulty: %w", err)
		}
	}
	if !hasBoard {
		stmts := []string{
			"DROP INDEX IF EXISTS idx_leaderboard_top",
			"ALTER TABLE leaderboard RENAME TO leaderboard_old",
			`CREATE TABLE leaderboard (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				variant TEXT NOT NULL,
				difficulty TEXT NOT NULL DEFAULT 'normal',
				username TEXT NOT NULL,
				time_remaining REAL NOT NULL,
				updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				UNIQUE(variant, difficulty, username)
			)`,
			`INSERT INTO leaderboard (id, variant, difficulty, username, time_remaining, updated_at)
			 SELECT id, variant, 'normal', username, time_remaining, updated_at FROM leaderboard_old`,
			"DROP TABLE leaderboard_old",
		}
		for _, stmt := range stmts {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("cannot rebuild leaderboard: %w", err)
			}
		}
	}
	return tx.Commit()
}

func (s *Store) hasColumn(ctx context.Context, table, column string) (bool, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name FROM pragma_table_info(?)", table)
	if err != nil {
		return false, fmt.Errorf("cannot inspect %s: %w", table, err)
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return false, fmt.Errorf("cannot inspect %s: %w", table, err)
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// ClearScores deletes the leaderboard and run history of a variant.
func (s *Store) ClearScores(ctx context.Context, variant string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM leaderboard WHERE variant = ?", variant); err != nil {
		return fmt.Errorf("storage: cannot clear leaderboard: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM runs WHERE variant = ?", variant); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string, depending on how the driver
// decoded the column.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse(timeLayout, v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Format(timeLayout)
}

func orDefault(difficulty string) string {
	if difficulty == "" {
		return DefaultDifficulty
	}
	return difficulty
}
