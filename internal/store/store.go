// Package store handles SQLite persistence of the leaderboard.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/verte-zerg/dalgona/internal/model"
	"github.com/verte-zerg/dalgona/internal/ranking"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for ranking records.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS rankings (
			position INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			level INTEGER NOT NULL,
			total_time INTEGER NOT NULL,
			date TEXT NOT NULL
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Load returns the stored leaderboard in rank order.
func (s *Store) Load(ctx context.Context) (ranking.Board, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, level, total_time, date FROM rankings ORDER BY position ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var board ranking.Board
	for rows.Next() {
		var rec model.RankingRecord
		if err := rows.Scan(&rec.Name, &rec.Level, &rec.TotalTime, &rec.Date); err != nil {
			return nil, err
		}
		board = append(board, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ranking.Normalize(board), nil
}

// Save replaces the stored leaderboard with board.
func (s *Store) Save(ctx context.Context, board ranking.Board) (err error) {
	board = ranking.Normalize(append(ranking.Board(nil), board...))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM rankings`); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO rankings (position, name, level, total_time, date) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			// Best-effort statement close.
			_ = cerr
		}
	}()
	for i, rec := range board {
		if _, err = stmt.ExecContext(ctx, i+1, rec.Name, rec.Level, rec.TotalTime, rec.Date); err != nil {
			return fmt.Errorf("insert ranking %d: %w", i+1, err)
		}
	}
	return tx.Commit()
}
