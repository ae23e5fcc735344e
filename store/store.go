package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"homeworlds/game"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

var (
	ErrNotFound = errors.New("snapshot not found")
	ErrCorrupt  = errors.New("snapshot corrupt")
)

const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
	id TEXT PRIMARY KEY,
	seats INTEGER NOT NULL,
	turns INTEGER NOT NULL,
	is_over BOOLEAN NOT NULL,
	state_blob BLOB NOT NULL,
	blob_hash TEXT NOT NULL,
	updated_at INTEGER NOT NULL
);`

// Summary describes a stored game without loading its history
type Summary struct {
	ID      string
	Seats   int
	Turns   int
	Over    bool
	Updated time.Time
}

// Store keeps game snapshots in SQLite as lz4-compressed JSON
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path. ":memory:" gives a private
// in-memory database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite allows one writer; in-memory databases exist per connection
	db.SetMaxOpenConns(1)
	if path != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to enable WAL: %w", err)
		}
	}
	s, err := New(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an open database and creates the schema if needed.
func New(db *sql.DB) (*Store, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save inserts or replaces the snapshot stored under its game id.
func (s *Store) Save(ctx context.Context, snap game.Snapshot) error {
	if snap.GameID == "" {
		return fmt.Errorf("failed to save snapshot: missing game id")
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	blob, err := compress(data)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
INSERT INTO snapshots (id, seats, turns, is_over, state_blob, blob_hash, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	seats = excluded.seats,
	turns = excluded.turns,
	is_over = excluded.is_over,
	state_blob = excluded.state_blob,
	blob_hash = excluded.blob_hash,
	updated_at = excluded.updated_at`,
		snap.GameID, snap.SeatCount, turns(snap), snap.Over, blob, checksum(blob), time.Now().UTC().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", snap.GameID, err)
	}
	log.Debug().Msgf("saved game %s (%d bytes, %d compressed)", snap.GameID, len(data), len(blob))
	return nil
}

// Load returns the snapshot stored under id. Blobs that fail their checksum
// or do not decode report ErrCorrupt.
func (s *Store) Load(ctx context.Context, id string) (game.Snapshot, error) {
	var blob []byte
	var hash string
	err := s.db.QueryRowContext(ctx, "SELECT state_blob, blob_hash FROM snapshots WHERE id = ?", id).Scan(&blob, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return game.Snapshot{}, fmt.Errorf("game %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return game.Snapshot{}, fmt.Errorf("failed to load snapshot %s: %w", id, err)
	}

	if checksum(blob) != hash {
		return game.Snapshot{}, fmt.Errorf("game %s: checksum mismatch: %w", id, ErrCorrupt)
	}
	data, err := decompress(blob)
	if err != nil {
		return game.Snapshot{}, fmt.Errorf("game %s: %v: %w", id, err, ErrCorrupt)
	}
	var snap game.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return game.Snapshot{}, fmt.Errorf("game %s: %v: %w", id, err, ErrCorrupt)
	}
	return snap, nil
}

// List returns summaries of all stored games, most recently updated first.
func (s *Store) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, seats, turns, is_over, updated_at FROM snapshots ORDER BY updated_at DESC, id")
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var summaries []Summary
	for rows.Next() {
		var sum Summary
		var updated int64
		if err := rows.Scan(&sum.ID, &sum.Seats, &sum.Turns, &sum.Over, &updated); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot row: %w", err)
		}
		sum.Updated = time.UnixMilli(updated).UTC()
		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	return summaries, nil
}

// turns counts the moves in a history, whose first entry is the empty board
func turns(snap game.Snapshot) int {
	return max(len(snap.History)-1, 0)
}
