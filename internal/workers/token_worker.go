package workers

import (
	"context"
	"time"

	"medcase_backend/internal/logger"
	"medcase_backend/internal/repositories"
)

// TokenWorker purges expired refresh tokens so the sessions table does
// not grow without bound.
type TokenWorker struct {
	tokenRepo repositories.RefreshTokenRepository
	interval  time.Duration
}

func NewTokenWorker(tokenRepo repositories.RefreshTokenRepository) *TokenWorker {
	return &TokenWorker{
		tokenRepo: tokenRepo,
		interval:  time.Hour,
	}
}

func (w *TokenWorker) Start(ctx context.Context) {
	go w.purgeExpiredTokens(ctx)
}

func (w *TokenWorker) purgeExpiredTokens(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.WorkerLog("token", "stopped", nil)
			return
		case <-ticker.C:
			deleted, err := w.tokenRepo.DeleteExpired()
			if err != nil {
				logger.WorkerLog("token", "purge expired refresh tokens", err)
			} else if deleted > 0 {
				logger.Info("purged expired refresh tokens", "worker", "token", "count", deleted)
			}
		}
	}
}
