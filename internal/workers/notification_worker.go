package workers

import (
	"context"
	"time"

	"medcase_backend/internal/logger"
	"medcase_backend/internal/repositories"
)

const notificationRetention = 90 * 24 * time.Hour

// NotificationWorker deletes read notifications past the retention
// window.
type NotificationWorker struct {
	notificationRepo repositories.NotificationRepository
	interval         time.Duration
}

func NewNotificationWorker(notificationRepo repositories.NotificationRepository) *NotificationWorker {
	return &NotificationWorker{
		notificationRepo: notificationRepo,
		interval:         24 * time.Hour,
	}
}

func (w *NotificationWorker) Start(ctx context.Context) {
	go w.purgeOldNotifications(ctx)
}

func (w *NotificationWorker) purgeOldNotifications(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.WorkerLog("notification", "stopped", nil)
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-notificationRetention)
			deleted, err := w.notificationRepo.DeleteOldRead(cutoff)
			if err != nil {
				logger.WorkerLog("notification", "purge old notifications", err)
			} else if deleted > 0 {
				logger.Info("purged old read notifications", "worker", "notification", "count", deleted)
			}
		}
	}
}
