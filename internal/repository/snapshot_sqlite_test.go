package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/MauroGomes09/Unireserva/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteSnapshotContract(t *testing.T) {
	s, err := NewSQLiteSnapshot(context.Background(), filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	runSnapshotterContract(t, s)

	var rows int
	require.NoError(t, s.DB().QueryRow(`SELECT COUNT(*) FROM room_snapshots`).Scan(&rows))
	assert.Equal(t, 1, rows, "flush must upsert a single row")
}

func TestSQLiteSnapshotPersistAndReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	ctx := context.Background()

	s, err := NewSQLiteSnapshot(ctx, path)
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	table := model.RoomTable{"A101": {aliceMorning}}
	require.NoError(t, s.Flush(ctx, table))
	require.NoError(t, s.Close())

	reopened, err := NewSQLiteSnapshot(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	got, err := reopened.Load(ctx)
	require.NoError(t, err)
	assert.True(t, got.Equal(table))
}
