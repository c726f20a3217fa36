package repository

import (
	"context"
	"testing"

	"github.com/MauroGomes09/Unireserva/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runSnapshotterContract checks the behaviour every driver must share.
// s must start with no durable copy.
func runSnapshotterContract(t *testing.T, s Snapshotter) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Load(ctx)
	require.ErrorIs(t, err, ErrSnapshotNotFound)

	first := model.RoomTable{"A101": {aliceMorning, bobLate}, "B202": {}}
	require.NoError(t, s.Flush(ctx, first))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.True(t, got.Equal(first), "got %v", got)

	second := model.RoomTable{"A101": {bobLate}, "B202": {aliceMorning}}
	require.NoError(t, s.Flush(ctx, second))

	got, err = s.Load(ctx)
	require.NoError(t, err)
	assert.True(t, got.Equal(second), "flush must overwrite the whole table, got %v", got)
}

func TestMemorySnapshotContract(t *testing.T) {
	s := NewMemorySnapshot(nil)
	runSnapshotterContract(t, s)
	assert.Equal(t, 2, s.Flushes())
}

func TestDecodeSnapshotRejectsNonObjects(t *testing.T) {
	for _, doc := range []string{"", "null", "[]", "{", `{"A101": "nope"}`} {
		_, err := DecodeSnapshot([]byte(doc))
		assert.ErrorIs(t, err, ErrSnapshotMalformed, "%q", doc)
	}

	table, err := DecodeSnapshot([]byte(`{"A101": null, "B202": []}`))
	require.NoError(t, err)
	assert.NotNil(t, table["A101"])
	assert.Empty(t, table["B202"])
}

func TestEncodeSnapshotIsIndentedAndStable(t *testing.T) {
	data, err := EncodeSnapshot(model.RoomTable{"A101": {aliceMorning}, "B202": nil})
	require.NoError(t, err)

	want := `{
  "A101": [
    {
      "user": "alice",
      "date": "2024-05-01",
      "time_slot": "08:00-09:30"
    }
  ],
  "B202": []
}`
	assert.Equal(t, want, string(data))

	empty, err := EncodeSnapshot(nil)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(empty))
}
