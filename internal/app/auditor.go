package app

import (
	"context"
	"time"

	"github.com/MauroGomes09/Unireserva/internal/model"
	"github.com/MauroGomes09/Unireserva/internal/repository"
	"go.uber.org/zap"
)

// SnapshotSource is the part of the booking service the auditor compares against.
type SnapshotSource interface {
	Snapshot() model.RoomTable
	Resync(ctx context.Context) error
}

// Auditor periodically reloads the durable copy and re-flushes the in-memory
// table when the two have drifted (e.g. the file was edited or truncated by hand).
type Auditor struct {
	source    SnapshotSource
	snapshots repository.Snapshotter
	interval  time.Duration
	logger    *zap.Logger
	stopChan  chan struct{}
	done      chan struct{}
}

func NewAuditor(source SnapshotSource, snapshots repository.Snapshotter, interval time.Duration, logger *zap.Logger) *Auditor {
	return &Auditor{
		source:    source,
		snapshots: snapshots,
		interval:  interval,
		logger:    logger,
		stopChan:  make(chan struct{}),
	}
}

// Start launches the audit loop. A non-positive interval disables it.
func (a *Auditor) Start(ctx context.Context) {
	if a.interval <= 0 {
		a.logger.Debug("Snapshot auditor disabled")
		return
	}
	a.logger.Info("Starting snapshot auditor", zap.Duration("interval", a.interval))
	a.done = make(chan struct{})
	go a.run(ctx)
}

// Stop ends the audit loop and waits for it to exit
func (a *Auditor) Stop() {
	select {
	case <-a.stopChan:
	default:
		close(a.stopChan)
	}
	if a.done != nil {
		<-a.done
	}
}

func (a *Auditor) run(ctx context.Context) {
	defer close(a.done)
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.Audit(ctx)
		case <-a.stopChan:
			a.logger.Info("Snapshot auditor stopped")
			return
		case <-ctx.Done():
			a.logger.Info("Snapshot auditor cancelled")
			return
		}
	}
}

// Audit runs one comparison and reports whether the durable copy had drifted.
func (a *Auditor) Audit(ctx context.Context) bool {
	durable, err := a.snapshots.Load(ctx)
	if err != nil {
		a.logger.Warn("Durable snapshot unreadable, rewriting", zap.Error(err))
	} else if durable.Equal(a.source.Snapshot()) {
		return false
	} else {
		a.logger.Warn("Durable snapshot drifted from memory, rewriting")
	}

	if err := a.source.Resync(ctx); err != nil {
		a.logger.Error("Failed to rewrite snapshot", zap.Error(err))
	}
	return true
}
