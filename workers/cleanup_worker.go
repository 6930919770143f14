package workers

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// ReservationCleaner is the slice of the reservation service the daily
// sweep needs.
type ReservationCleaner interface {
	CleanupExpired() error
}

// CleanupWorker runs the daily reservation sweep: archive past paid stays,
// revert past unpaid ones to pending.
type CleanupWorker struct {
	cleaner  ReservationCleaner
	interval time.Duration
}

func NewCleanupWorker(cleaner ReservationCleaner, interval time.Duration) *CleanupWorker {
	return &CleanupWorker{cleaner: cleaner, interval: interval}
}

func (w *CleanupWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	logrus.Infof("reservation cleanup worker started (every %s)", w.interval)

	for {
		select {
		case <-ctx.Done():
			logrus.Info("reservation cleanup worker stopped")
			return
		case <-ticker.C:
			if err := w.cleaner.CleanupExpired(); err != nil {
				logrus.Errorf("reservation cleanup pass failed: %v", err)
			}
		}
	}
}
