package app

import (
	"context"
	"fmt"
	"sort"
	"time"

	"medicine_reminder/internal/domain/intake"
	"medicine_reminder/internal/domain/medicine"
	"medicine_reminder/internal/domain/schedule"
	idb "medicine_reminder/internal/infra/database"

	"github.com/sirupsen/logrus"
)

// TimelineSlot is one (time, medicine) unit of today's plan with its inferred
// status: the log's outcome when a log exists, UPCOMING otherwise. Derived on
// read, never persisted.
type TimelineSlot struct {
	Time         string
	MedicineID   int64
	MedicineName string
	Dosage       string
	Status       intake.Status
}

// StatusUpcoming marks a slot no outcome has been recorded for yet.
const StatusUpcoming intake.Status = "UPCOMING"

// WeekdayCount is one bucket of the adherence histogram.
type WeekdayCount struct {
	Day   string
	Taken int
}

// MedicineReport is one medicine's slice of the month: its schedule pattern
// plus the chronological logs that fall inside the month. A medicine with no
// logs still appears, with an empty list.
type MedicineReport struct {
	MedicineID   int64
	Name         string
	Dosage       string
	Instructions string
	Times        []string
	Frequency    schedule.Frequency
	Days         []string
	Logs         []*intake.Log
}

// MonthlyReport groups a user's month of adherence per medicine.
type MonthlyReport struct {
	Month     time.Month
	Year      int
	Medicines []MedicineReport
}

// AdherenceService is the read side: pure views over current schedule and
// ledger state. Nothing here mutates anything; two calls with no write in
// between return identical results.
type AdherenceService struct {
	schedRepo  schedule.Repository
	medRepo    medicine.Repository
	intakeRepo intake.Repository
	clock      Clock
	loc        *time.Location
	logger     *logrus.Logger
}

func NewAdherenceService(
	sr schedule.Repository,
	mr medicine.Repository,
	ir intake.Repository,
	clock Clock,
	loc *time.Location,
	logger *logrus.Logger,
) *AdherenceService {
	return &AdherenceService{
		schedRepo:  sr,
		medRepo:    mr,
		intakeRepo: ir,
		clock:      clock,
		loc:        loc,
		logger:     logger,
	}
}

// TodayTimeline builds the user's per-slot plan for today: every (schedule,
// time) pair resolved to its medicine, matched against today's logs, sorted
// ascending by time of day.
func (s *AdherenceService) TodayTimeline(ctx context.Context, userID int64) ([]TimelineSlot, error) {
	now := s.clock.Now().In(s.loc)

	scheds, err := s.schedRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	logs, err := s.intakeRepo.ListByDate(ctx, userID, intake.DateKey(now))
	if err != nil {
		return nil, fmt.Errorf("failed to list today's logs: %w", err)
	}

	type slotKey struct {
		medicineID int64
		hhmm       string
	}
	logged := make(map[slotKey]intake.Status, len(logs))
	for _, l := range logs {
		logged[slotKey{l.MedicineID, l.Time}] = l.Status
	}

	slots := make([]TimelineSlot, 0)
	for _, sc := range scheds {
		med, err := s.medRepo.GetByID(ctx, userID, sc.MedicineID)
		if err != nil {
			if err == idb.ErrMedicineNotFound {
				s.logger.WithFields(logrus.Fields{"schedule_id": sc.ID, "medicine_id": sc.MedicineID}).
					Warn("Skipping orphaned schedule in timeline")
				continue
			}
			return nil, fmt.Errorf("failed to resolve medicine %d: %w", sc.MedicineID, err)
		}
		for _, t := range sc.Times {
			status, ok := logged[slotKey{sc.MedicineID, t}]
			if !ok {
				status = StatusUpcoming
			}
			slots = append(slots, TimelineSlot{
				Time:         t,
				MedicineID:   med.ID,
				MedicineName: med.Name,
				Dosage:       med.Dosage,
				Status:       status,
			})
		}
	}

	sort.SliceStable(slots, func(i, j int) bool {
		if slots[i].Time != slots[j].Time {
			return slots[i].Time < slots[j].Time
		}
		return slots[i].MedicineName < slots[j].MedicineName
	})
	return slots, nil
}

// SkippedToday is the MISSED subset of today's timeline.
func (s *AdherenceService) SkippedToday(ctx context.Context, userID int64) ([]TimelineSlot, error) {
	slots, err := s.TodayTimeline(ctx, userID)
	if err != nil {
		return nil, err
	}
	skipped := make([]TimelineSlot, 0)
	for _, sl := range slots {
		if sl.Status == intake.StatusMissed {
			skipped = append(skipped, sl)
		}
	}
	return skipped, nil
}

// NextDose picks the next scheduled time for the user: among schedules whose
// day policy passes today, the smallest time >= now, wrapping to the smallest
// time overall when the day's times are exhausted. ok is false when no valid
// schedule exists.
func (s *AdherenceService) NextDose(ctx context.Context, userID int64) (string, bool, error) {
	now := s.clock.Now().In(s.loc)
	nowTime := ClockTime(now, s.loc)
	nowDay := WeekdayLabel(now, s.loc)

	scheds, err := s.schedRepo.ListByUser(ctx, userID)
	if err != nil {
		return "", false, fmt.Errorf("failed to list schedules: %w", err)
	}

	times := make([]string, 0)
	for _, sc := range scheds {
		if !sc.FiresOn(nowDay, now) {
			continue
		}
		if _, err := s.medRepo.GetByID(ctx, userID, sc.MedicineID); err != nil {
			if err == idb.ErrMedicineNotFound {
				continue
			}
			return "", false, fmt.Errorf("failed to resolve medicine %d: %w", sc.MedicineID, err)
		}
		times = append(times, sc.Times...)
	}
	if len(times) == 0 {
		return "", false, nil
	}
	sort.Strings(times)

	for _, t := range times {
		if t >= nowTime {
			return t, true, nil
		}
	}
	return times[0], true, nil // wrap to the next cycle's first dose
}

// WeekdayAdherence buckets every TAKEN log by the weekday of its slot date,
// in fixed Mon..Sun order. The histogram is cumulative over all history, not
// per calendar week.
func (s *AdherenceService) WeekdayAdherence(ctx context.Context, userID int64) ([]WeekdayCount, error) {
	logs, err := s.intakeRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list intake history: %w", err)
	}

	counts := make(map[string]int, len(schedule.Weekdays))
	for _, l := range logs {
		if l.Status != intake.StatusTaken {
			continue
		}
		counts[l.Date.Format("Mon")]++
	}

	out := make([]WeekdayCount, 0, len(schedule.Weekdays))
	for _, d := range schedule.Weekdays {
		out = append(out, WeekdayCount{Day: d, Taken: counts[d]})
	}
	return out, nil
}

// CurrentMonth returns the month and year of "now" in the reference zone, the
// default period for the month report.
func (s *AdherenceService) CurrentMonth() (time.Month, int) {
	now := s.clock.Now().In(s.loc)
	return now.Month(), now.Year()
}

// Report assembles the month view: one entry per medicine the user owns, with
// its schedule pattern and the month's logs in chronological order.
func (s *AdherenceService) Report(ctx context.Context, userID int64, month time.Month, year int) (*MonthlyReport, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)

	meds, err := s.medRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list medicines: %w", err)
	}
	scheds, err := s.schedRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	logs, err := s.intakeRepo.ListByRange(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list month logs: %w", err)
	}

	schedByMed := make(map[int64]*schedule.Schedule, len(scheds))
	for _, sc := range scheds {
		schedByMed[sc.MedicineID] = sc
	}
	logsByMed := make(map[int64][]*intake.Log, len(logs))
	for _, l := range logs {
		logsByMed[l.MedicineID] = append(logsByMed[l.MedicineID], l)
	}

	report := &MonthlyReport{Month: month, Year: year, Medicines: make([]MedicineReport, 0, len(meds))}
	for _, med := range meds {
		entry := MedicineReport{
			MedicineID:   med.ID,
			Name:         med.Name,
			Dosage:       med.Dosage,
			Instructions: med.Instructions.String,
			Logs:         []*intake.Log{},
		}
		if sc, ok := schedByMed[med.ID]; ok {
			entry.Times = sc.Times
			entry.Frequency = sc.Frequency
			entry.Days = sc.Days
		}
		if ml, ok := logsByMed[med.ID]; ok {
			sort.SliceStable(ml, func(i, j int) bool {
				if !ml[i].Date.Equal(ml[j].Date) {
					return ml[i].Date.Before(ml[j].Date)
				}
				return ml[i].Time < ml[j].Time
			})
			entry.Logs = ml
		}
		report.Medicines = append(report.Medicines, entry)
	}
	return report, nil
}
