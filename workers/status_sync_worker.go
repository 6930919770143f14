package workers

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// StatusSyncer is the slice of the status-sync service the worker needs.
type StatusSyncer interface {
	SyncAll() (int, error)
}

// StatusSyncWorker runs the room-status synchronizer pass on a fixed
// interval until its context is cancelled.
type StatusSyncWorker struct {
	syncer   StatusSyncer
	interval time.Duration
}

func NewStatusSyncWorker(syncer StatusSyncer, interval time.Duration) *StatusSyncWorker {
	return &StatusSyncWorker{syncer: syncer, interval: interval}
}

func (w *StatusSyncWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	logrus.Infof("room status sync worker started (every %s)", w.interval)

	for {
		select {
		case <-ctx.Done():
			logrus.Info("room status sync worker stopped")
			return
		case <-ticker.C:
			changed, err := w.syncer.SyncAll()
			if err != nil {
				logrus.Errorf("room status sync pass failed: %v", err)
				continue
			}
			if changed > 0 {
				logrus.Infof("room status sync pass updated %d room(s)", changed)
			}
		}
	}
}
