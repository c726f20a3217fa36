package app

import (
	"context"
	"testing"
	"time"

	"github.com/MauroGomes09/Unireserva/internal/model"
	"github.com/MauroGomes09/Unireserva/internal/repository"
	"github.com/MauroGomes09/Unireserva/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newAuditedService(t *testing.T) (*service.BookingService, *repository.MemorySnapshot) {
	t.Helper()
	table := model.RoomTable{"A101": {}}
	snap := repository.NewMemorySnapshot(table)
	svc := service.NewBookingService(repository.NewReservationStore(table), snap, nil, zaptest.NewLogger(t))
	return svc, snap
}

func TestAuditorNoDrift(t *testing.T) {
	svc, snap := newAuditedService(t)
	_, err := svc.BookRoom(context.Background(), "A101", "alice", "2024-05-01", "08:00-09:30")
	require.NoError(t, err)

	a := NewAuditor(svc, snap, time.Minute, zaptest.NewLogger(t))
	assert.False(t, a.Audit(context.Background()))
	assert.Equal(t, 1, snap.Flushes())
}

func TestAuditorRewritesDriftedSnapshot(t *testing.T) {
	svc, snap := newAuditedService(t)
	ctx := context.Background()
	_, err := svc.BookRoom(ctx, "A101", "alice", "2024-05-01", "08:00-09:30")
	require.NoError(t, err)

	require.NoError(t, snap.Flush(ctx, model.RoomTable{"A101": {}}))

	a := NewAuditor(svc, snap, time.Minute, zaptest.NewLogger(t))
	assert.True(t, a.Audit(ctx))

	durable, err := snap.Load(ctx)
	require.NoError(t, err)
	assert.True(t, durable.Equal(svc.Snapshot()))
}

func TestAuditorLoopStops(t *testing.T) {
	svc, snap := newAuditedService(t)
	require.NoError(t, snap.Flush(context.Background(), model.RoomTable{}))

	a := NewAuditor(svc, snap, 5*time.Millisecond, zaptest.NewLogger(t))
	a.Start(context.Background())

	assert.Eventually(t, func() bool {
		durable, err := snap.Load(context.Background())
		return err == nil && durable.Equal(svc.Snapshot())
	}, time.Second, 5*time.Millisecond)

	a.Stop()
	a.Stop()
}

func TestAuditorDisabled(t *testing.T) {
	svc, snap := newAuditedService(t)
	a := NewAuditor(svc, snap, 0, zaptest.NewLogger(t))
	a.Start(context.Background())
	a.Stop()
	assert.Zero(t, snap.Flushes())
}
