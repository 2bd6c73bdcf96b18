package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// CycleRunner is the slice of the reminder service the scheduler drives.
type CycleRunner interface {
	RunCycle(ctx context.Context) error
}

// ReminderScheduler owns the periodic tick: one evaluation per wall-clock
// minute in the configured reference zone. Any error inside a cycle is logged
// and the next cycle runs regardless; the loop only stops at shutdown.
type ReminderScheduler struct {
	cronEngine *cron.Cron
	reminders  CycleRunner
	logger     *logrus.Logger
	cronSpec   string
	timeout    time.Duration
}

func NewReminderScheduler(reminders CycleRunner, loc *time.Location, cronSpec string, timeout time.Duration, logger *logrus.Logger) *ReminderScheduler {
	if timeout <= 0 {
		timeout = 50 * time.Second // must finish inside the minute
	}
	return &ReminderScheduler{
		cronEngine: cron.New(cron.WithLocation(loc)),
		reminders:  reminders,
		logger:     logger,
		cronSpec:   cronSpec,
		timeout:    timeout,
	}
}

func (s *ReminderScheduler) Start() error {
	_, err := s.cronEngine.AddFunc(s.cronSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		if err := s.reminders.RunCycle(ctx); err != nil {
			s.logger.WithError(err).Error("Reminder cycle failed; next cycle will run as scheduled")
		}
	})
	if err != nil {
		return err
	}

	s.cronEngine.Start()
	s.logger.WithField("spec", s.cronSpec).Info("Reminder scheduler started")
	return nil
}

// Stop halts scheduling and waits for an in-flight cycle to finish; partial
// notification fan-out at shutdown is accepted, interruption mid-iteration is
// not.
func (s *ReminderScheduler) Stop() {
	ctx := s.cronEngine.Stop()
	<-ctx.Done()
	s.logger.Info("Reminder scheduler gracefully stopped")
}
