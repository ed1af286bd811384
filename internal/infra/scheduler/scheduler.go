package scheduler

import (
	"context"
	"time"

	"pick_day_bot/internal/domain/calendar"
	"pick_day_bot/internal/infra/clock"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Reconciler is the single daily operation the scheduler drives.
type Reconciler interface {
	Reconcile(ctx context.Context, today calendar.Date) ([]string, error)
}

// DailyScheduler triggers one reconciliation per day for the active group.
// The reconciliation itself is idempotent, so an occasional duplicate firing
// (deploy restart, manual trigger on the same day) is harmless.
type DailyScheduler struct {
	cronEngine    *cron.Cron
	reconciler    Reconciler
	location      *time.Location
	cronSpecDaily string
	logger        *logrus.Entry
}

func NewDailyScheduler(reconciler Reconciler, location *time.Location, cronSpecDaily string, logger *logrus.Entry) *DailyScheduler {
	return &DailyScheduler{
		cronEngine:    cron.New(cron.WithLocation(location)),
		reconciler:    reconciler,
		location:      location,
		cronSpecDaily: cronSpecDaily,
		logger:        logger,
	}
}

func (s *DailyScheduler) Start() {
	s.logger.Info("Starting daily reconciliation scheduler...")

	_, err := s.cronEngine.AddFunc(s.cronSpecDaily, func() {
		s.logger.Info("Cron job triggered for daily reconciliation.")
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		today := clock.TodayIn(time.Now(), s.location)
		summary, err := s.reconciler.Reconcile(ctx, today)
		if err != nil {
			s.logger.WithError(err).Error("Daily reconciliation failed")
			return
		}
		for _, line := range summary {
			s.logger.WithField("summary", line).Info("Reconciliation action")
		}
	})
	if err != nil {
		s.logger.WithError(err).Fatal("Could not add daily reconciliation cron job")
	}

	s.cronEngine.Start()
	s.logger.WithField("spec", s.cronSpecDaily).Info("Daily scheduler started.")
}

func (s *DailyScheduler) Stop() {
	s.logger.Info("Stopping daily scheduler...")
	ctx := s.cronEngine.Stop() // Stops new firings, waits for running jobs.
	<-ctx.Done()
	s.logger.Info("Daily scheduler gracefully stopped.")
}
