package repository

import (
	"context"
	"fmt"

	"github.com/MauroGomes09/Unireserva/internal/model"
	"github.com/MauroGomes09/Unireserva/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresSnapshot stores the table as JSONB in the room_snapshots table.
// The table is created by the goose migrations run at startup.
type PostgresSnapshot struct {
	*base.Repository
}

func NewPostgresSnapshot(pool *pgxpool.Pool) *PostgresSnapshot {
	return &PostgresSnapshot{Repository: base.NewRepository(pool)}
}

func (s *PostgresSnapshot) Load(ctx context.Context) (model.RoomTable, error) {
	query := `
		SELECT payload
		FROM room_snapshots
		WHERE name = $1
	`

	var payload []byte
	err := s.QueryRow(ctx, query, SnapshotName).Scan(&payload)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, fmt.Errorf("%w: postgres", ErrSnapshotNotFound)
		}
		return nil, fmt.Errorf("select snapshot: %w", err)
	}
	return DecodeSnapshot(payload)
}

func (s *PostgresSnapshot) Flush(ctx context.Context, table model.RoomTable) error {
	data, err := EncodeSnapshot(table)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO room_snapshots (name, payload, updated_at)
		VALUES ($1, $2::jsonb, now())
		ON CONFLICT (name) DO UPDATE
		SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at
	`

	affected, err := s.ExecAffected(ctx, query, SnapshotName, string(data))
	if err != nil {
		return fmt.Errorf("upsert snapshot: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("upsert snapshot: no rows written")
	}
	return nil
}

// Close is a no-op: the pool is owned by whoever created it.
func (s *PostgresSnapshot) Close() error { return nil }
