package app

import (
	"context"
	"fmt"

	"medicine_reminder/internal/domain/medicine"
	"medicine_reminder/internal/domain/schedule"
	idb "medicine_reminder/internal/infra/database"

	"github.com/sirupsen/logrus"
)

// Custom application-level errors for the schedule service.
var (
	ErrEmptyTimes      = fmt.Errorf("schedule requires at least one time")
	ErrBadFrequency    = fmt.Errorf("frequency must be DAILY, ALTERNATE or CUSTOM")
	ErrCustomNeedsDays = fmt.Errorf("CUSTOM frequency requires a non-empty day set")
	ErrBadWeekday      = fmt.Errorf("weekday must be one of Mon..Sun")
)

// ScheduleService owns the dosing-schedule lifecycle. A medicine carries at
// most one schedule; Replace is the upsert that keeps it that way.
type ScheduleService struct {
	schedRepo schedule.Repository
	medRepo   medicine.Repository
	logger    *logrus.Logger
}

func NewScheduleService(sr schedule.Repository, mr medicine.Repository, logger *logrus.Logger) *ScheduleService {
	return &ScheduleService{schedRepo: sr, medRepo: mr, logger: logger}
}

// ScheduleInput carries the caller-supplied schedule fields.
type ScheduleInput struct {
	Times     []string
	Frequency string
	Days      []string
}

// ResolvedSchedule is a schedule with its medicine's display fields attached.
// The aggregations and the transport layer only ever see this one shape.
type ResolvedSchedule struct {
	Schedule     *schedule.Schedule
	MedicineName string
	Dosage       string
}

func validateInput(in ScheduleInput) (times []string, freq schedule.Frequency, days []string, err error) {
	if len(in.Times) == 0 {
		return nil, "", nil, ErrEmptyTimes
	}
	times, err = NormalizeTimes(in.Times)
	if err != nil {
		return nil, "", nil, err
	}

	freq = schedule.Frequency(in.Frequency)
	if freq == "" {
		freq = schedule.FrequencyDaily
	}
	switch freq {
	case schedule.FrequencyDaily, schedule.FrequencyAlternate:
		days = nil
	case schedule.FrequencyCustom:
		if len(in.Days) == 0 {
			return nil, "", nil, ErrCustomNeedsDays
		}
		seen := make(map[string]struct{}, len(in.Days))
		for _, d := range in.Days {
			ok := false
			for _, w := range schedule.Weekdays {
				if d == w {
					ok = true
					break
				}
			}
			if !ok {
				return nil, "", nil, fmt.Errorf("invalid day %q: %w", d, ErrBadWeekday)
			}
			if _, dup := seen[d]; dup {
				continue
			}
			seen[d] = struct{}{}
			days = append(days, d)
		}
	default:
		return nil, "", nil, ErrBadFrequency
	}
	return times, freq, days, nil
}

// Create validates and stores a new schedule for a medicine the user owns.
// A medicine carries at most one schedule; a second Create is rejected with
// ErrDuplicateSchedule and callers wanting overwrite semantics use Replace.
func (s *ScheduleService) Create(ctx context.Context, userID, medicineID int64, in ScheduleInput) (*schedule.Schedule, error) {
	times, freq, days, err := validateInput(in)
	if err != nil {
		return nil, err
	}
	if _, err := s.medRepo.GetByID(ctx, userID, medicineID); err != nil {
		return nil, err
	}
	if _, err := s.schedRepo.GetByMedicine(ctx, userID, medicineID); err == nil {
		return nil, idb.ErrDuplicateSchedule
	} else if err != idb.ErrScheduleNotFound {
		return nil, fmt.Errorf("failed to look up schedule for medicine %d: %w", medicineID, err)
	}

	sc := &schedule.Schedule{
		UserID:     userID,
		MedicineID: medicineID,
		Times:      times,
		Frequency:  freq,
		Days:       days,
	}
	if err := s.schedRepo.Create(ctx, sc); err != nil {
		return nil, fmt.Errorf("failed to create schedule: %w", err)
	}
	return sc, nil
}

// Replace is the upsert edit path: the medicine's schedule is fully
// overwritten with the new times, frequency and days, and created when the
// medicine has none yet.
func (s *ScheduleService) Replace(ctx context.Context, userID, medicineID int64, in ScheduleInput) (*schedule.Schedule, error) {
	times, freq, days, err := validateInput(in)
	if err != nil {
		return nil, err
	}
	if _, err := s.medRepo.GetByID(ctx, userID, medicineID); err != nil {
		return nil, err
	}

	existing, err := s.schedRepo.GetByMedicine(ctx, userID, medicineID)
	if err != nil {
		if err != idb.ErrScheduleNotFound {
			return nil, fmt.Errorf("failed to look up schedule for medicine %d: %w", medicineID, err)
		}
		sc := &schedule.Schedule{
			UserID:     userID,
			MedicineID: medicineID,
			Times:      times,
			Frequency:  freq,
			Days:       days,
		}
		if err := s.schedRepo.Create(ctx, sc); err != nil {
			return nil, fmt.Errorf("failed to create schedule: %w", err)
		}
		return sc, nil
	}

	existing.Times = times
	existing.Frequency = freq
	existing.Days = days
	if err := s.schedRepo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to replace schedule %d: %w", existing.ID, err)
	}
	return existing, nil
}

func (s *ScheduleService) Delete(ctx context.Context, userID, scheduleID int64) error {
	return s.schedRepo.Delete(ctx, userID, scheduleID)
}

// List returns the user's schedules, each resolved to its medicine's display
// fields. Schedules whose medicine has gone missing are skipped and logged;
// they are orphans awaiting cleanup, not an error the caller can act on.
func (s *ScheduleService) List(ctx context.Context, userID int64) ([]ResolvedSchedule, error) {
	scheds, err := s.schedRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}

	out := make([]ResolvedSchedule, 0, len(scheds))
	for _, sc := range scheds {
		med, err := s.medRepo.GetByID(ctx, userID, sc.MedicineID)
		if err != nil {
			if err == idb.ErrMedicineNotFound {
				s.logger.WithFields(logrus.Fields{"schedule_id": sc.ID, "medicine_id": sc.MedicineID}).
					Warn("Skipping orphaned schedule: medicine missing")
				continue
			}
			return nil, fmt.Errorf("failed to resolve medicine %d: %w", sc.MedicineID, err)
		}
		out = append(out, ResolvedSchedule{
			Schedule:     sc,
			MedicineName: med.Name,
			Dosage:       med.Dosage,
		})
	}
	return out, nil
}
