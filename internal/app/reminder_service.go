package app

import (
	"context"
	"time"

	"medicine_reminder/internal/domain/medicine"
	"medicine_reminder/internal/domain/schedule"
	"medicine_reminder/internal/domain/user"
	idb "medicine_reminder/internal/infra/database"

	"github.com/sirupsen/logrus"
)

// ReminderService is the tick matcher: once per minute the scheduler asks it
// to evaluate "now" against every schedule and fan out reminder-due
// notifications. It never writes to the ledger; marking a dose is always the
// user's action.
type ReminderService struct {
	schedRepo  schedule.Repository
	medRepo    medicine.Repository
	userRepo   user.Repository
	dispatcher *Dispatcher
	clock      Clock
	loc        *time.Location
	logger     *logrus.Logger
}

func NewReminderService(
	sr schedule.Repository,
	mr medicine.Repository,
	ur user.Repository,
	d *Dispatcher,
	clock Clock,
	loc *time.Location,
	logger *logrus.Logger,
) *ReminderService {
	return &ReminderService{
		schedRepo:  sr,
		medRepo:    mr,
		userRepo:   ur,
		dispatcher: d,
		clock:      clock,
		loc:        loc,
		logger:     logger,
	}
}

// RunCycle performs one evaluation: match the current "HH:MM" exactly, apply
// each schedule's day policy, resolve medicine and owner, and dispatch one
// reminder per surviving (user, medicine, time) pair. A bad record is logged
// and skipped; the cycle itself only fails when the schedule query does.
// There is no tolerance window: a delayed tick misses its minute for the day.
func (s *ReminderService) RunCycle(ctx context.Context) error {
	now := s.clock.Now().In(s.loc)
	nowTime := ClockTime(now, s.loc)
	nowDay := WeekdayLabel(now, s.loc)

	scheds, err := s.schedRepo.ListByTime(ctx, nowTime)
	if err != nil {
		return err
	}
	if len(scheds) == 0 {
		return nil
	}
	s.logger.WithFields(logrus.Fields{"time": nowTime, "weekday": nowDay, "matched": len(scheds)}).
		Debug("Reminder cycle matched schedules")

	for _, sc := range scheds {
		if !sc.FiresOn(nowDay, now) {
			continue
		}

		med, err := s.medRepo.GetByID(ctx, sc.UserID, sc.MedicineID)
		if err != nil {
			if err == idb.ErrMedicineNotFound {
				s.logger.WithFields(logrus.Fields{"schedule_id": sc.ID, "medicine_id": sc.MedicineID}).
					Warn("Skipping orphaned schedule: medicine missing")
				continue
			}
			s.logger.WithFields(logrus.Fields{"schedule_id": sc.ID}).
				WithError(err).Error("Failed to resolve medicine for schedule")
			continue
		}

		u, err := s.userRepo.GetByID(ctx, sc.UserID)
		if err != nil {
			if err == idb.ErrUserNotFound {
				s.logger.WithFields(logrus.Fields{"schedule_id": sc.ID, "user_id": sc.UserID}).
					Warn("Skipping orphaned schedule: user missing")
				continue
			}
			s.logger.WithFields(logrus.Fields{"schedule_id": sc.ID}).
				WithError(err).Error("Failed to resolve user for schedule")
			continue
		}

		s.logger.WithFields(logrus.Fields{"user_id": u.ID, "medicine": med.Name, "time": nowTime}).
			Info("Sending medicine reminder")
		s.dispatcher.SendReminder(ctx, u, med, nowTime)
	}
	return nil
}
