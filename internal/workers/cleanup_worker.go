package workers

import (
	"context"
	"fmt"
	"time"

	"gigup_backend/internal/logger"
	"gigup_backend/internal/metrics"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

const cleanupWorkerName = "verification_cleanup"

// Purger - часть VerificationService, нужная воркеру
type Purger interface {
	PurgeExpired(ctx context.Context, db *gorm.DB, olderThan time.Duration) (int64, error)
}

// CleanupWorker по расписанию удаляет использованные и просроченные коды подтверждения
type CleanupWorker struct {
	db        *gorm.DB
	purger    Purger
	schedule  string
	olderThan time.Duration
	cron      *cron.Cron
}

func NewCleanupWorker(db *gorm.DB, purger Purger, schedule string, olderThan time.Duration) *CleanupWorker {
	return &CleanupWorker{
		db:        db,
		purger:    purger,
		schedule:  schedule,
		olderThan: olderThan,
		cron:      cron.New(),
	}
}

// Start регистрирует задачу и запускает планировщик. Планировщик
// останавливается вместе с ctx
func (w *CleanupWorker) Start(ctx context.Context) error {
	if _, err := w.cron.AddFunc(w.schedule, func() {
		_, _ = w.RunOnce(ctx)
	}); err != nil {
		return fmt.Errorf("invalid cleanup schedule %q: %w", w.schedule, err)
	}

	w.cron.Start()
	logger.Info("Cleanup worker started", "schedule", w.schedule, "older_than", w.olderThan.String())

	go func() {
		<-ctx.Done()
		<-w.cron.Stop().Done()
		logger.Info("Cleanup worker stopped")
	}()
	return nil
}

// RunOnce выполняет один проход очистки
func (w *CleanupWorker) RunOnce(ctx context.Context) (int64, error) {
	purged, err := w.purger.PurgeExpired(ctx, w.db.WithContext(ctx), w.olderThan)
	if err != nil {
		logger.WorkerLog(cleanupWorkerName, "purge", err)
		return 0, err
	}

	metrics.CleanupPurgedTotal.Add(float64(purged))
	logger.WorkerLog(cleanupWorkerName, "purge", nil, "purged", purged)
	return purged, nil
}
