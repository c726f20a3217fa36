package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/MauroGomes09/Unireserva/internal/model"
)

// FileSnapshot stores the table as one human-readable JSON file.
//
// Flush writes a temp file in the same directory, syncs it and renames it over
// the target, so a crash leaves either the old or the new document.
type FileSnapshot struct {
	path string
}

// NewFileSnapshot creates the parent directory if needed.
func NewFileSnapshot(path string) (*FileSnapshot, error) {
	if path == "" {
		path = SnapshotName + ".json"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create snapshot dir: %w", err)
		}
	}
	return &FileSnapshot{path: path}, nil
}

// Path returns the target file
func (s *FileSnapshot) Path() string { return s.path }

func (s *FileSnapshot) Load(ctx context.Context) (model.RoomTable, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, s.path)
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	return DecodeSnapshot(data)
}

func (s *FileSnapshot) Flush(ctx context.Context, table model.RoomTable) error {
	data, err := EncodeSnapshot(table)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".rooms-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp snapshot: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp snapshot: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod temp snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

func (s *FileSnapshot) Close() error { return nil }
