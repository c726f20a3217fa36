package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MauroGomes09/Unireserva/internal/model"
)

// SnapshotName is the logical name of the persisted room table. File and
// object drivers derive their default key from it, SQL drivers use it as the row key.
const SnapshotName = "rooms"

var (
	// ErrSnapshotNotFound is returned by Load when no durable copy exists yet.
	ErrSnapshotNotFound = errors.New("snapshot not found")
	// ErrSnapshotMalformed is returned by Load when the durable copy cannot be decoded.
	ErrSnapshotMalformed = errors.New("snapshot malformed")
)

// Snapshotter persists the entire room table. Flush always rewrites the whole
// dataset, there is no incremental write.
type Snapshotter interface {
	Load(ctx context.Context) (model.RoomTable, error)
	Flush(ctx context.Context, table model.RoomTable) error
	Close() error
}

// EncodeSnapshot renders the table as indented JSON.
func EncodeSnapshot(table model.RoomTable) ([]byte, error) {
	if table == nil {
		table = model.RoomTable{}
	}
	data, err := json.MarshalIndent(table.Clone(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses a JSON room table. A document that is not a JSON
// object wraps ErrSnapshotMalformed.
func DecodeSnapshot(data []byte) (model.RoomTable, error) {
	var table model.RoomTable
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSnapshotMalformed, err)
	}
	if table == nil {
		return nil, fmt.Errorf("%w: document is not an object", ErrSnapshotMalformed)
	}
	return table.Clone(), nil
}
