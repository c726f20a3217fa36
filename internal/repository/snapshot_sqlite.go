package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/MauroGomes09/Unireserva/internal/model"
	_ "modernc.org/sqlite" // pure go sqlite driver
)

// SQLiteSnapshot keeps the table as a JSON payload in a single SQLite row.
type SQLiteSnapshot struct {
	db   *sql.DB
	path string
}

// NewSQLiteSnapshot opens (or creates) the database and the snapshot table.
func NewSQLiteSnapshot(ctx context.Context, path string) (*SQLiteSnapshot, error) {
	if path == "" {
		path = "unireserva.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// one writer at a time; sqlite serialises anyway
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS room_snapshots (
		name TEXT PRIMARY KEY,
		payload BLOB NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create snapshot table: %w", err)
	}
	return &SQLiteSnapshot{db: db, path: path}, nil
}

func (s *SQLiteSnapshot) Load(ctx context.Context) (model.RoomTable, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM room_snapshots WHERE name = ?`, SnapshotName).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: sqlite %s", ErrSnapshotNotFound, s.path)
	}
	if err != nil {
		return nil, fmt.Errorf("select snapshot: %w", err)
	}
	return DecodeSnapshot(payload)
}

func (s *SQLiteSnapshot) Flush(ctx context.Context, table model.RoomTable) error {
	data, err := EncodeSnapshot(table)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO room_snapshots (name, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		SnapshotName, data, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("upsert snapshot: %w", err)
	}
	return nil
}

// DB exposes the underlying handle for tests
func (s *SQLiteSnapshot) DB() *sql.DB { return s.db }

func (s *SQLiteSnapshot) Close() error { return s.db.Close() }
