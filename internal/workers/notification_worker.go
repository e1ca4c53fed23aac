package workers

import (
	"context"
	"time"

	"dormdesk_backend/internal/logger"
	"dormdesk_backend/internal/repositories"
)

// NotificationWorker - фоновая чистка ленты уведомлений.
// Удаляет прочитанные уведомления старше срока хранения.
type NotificationWorker struct {
	notificationRepo repositories.NotificationRepository
	retention        time.Duration
	interval         time.Duration
}

func NewNotificationWorker(notificationRepo repositories.NotificationRepository, retentionDays int) *NotificationWorker {
	return &NotificationWorker{
		notificationRepo: notificationRepo,
		retention:        time.Duration(retentionDays) * 24 * time.Hour,
		interval:         time.Hour,
	}
}

// Start запускает цикл чистки; останавливается по отмене контекста
func (w *NotificationWorker) Start(ctx context.Context) {
	go w.pruneLoop(ctx)
}

func (w *NotificationWorker) pruneLoop(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("notification worker stopped")
			return
		case <-ticker.C:
			w.pruneOnce()
		}
	}
}

func (w *NotificationWorker) pruneOnce() {
	cutoff := time.Now().Add(-w.retention)
	deleted, err := w.notificationRepo.DeleteReadOlderThan(cutoff)
	if err != nil {
		logger.WithError(err).Error("failed to prune notifications")
		return
	}
	if deleted > 0 {
		logger.Info("pruned read notifications", "count", deleted)
	}
}
