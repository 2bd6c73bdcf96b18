package app

import (
	"context"
	"testing"
	"time"

	"medicine_reminder/internal/domain/intake"
	"medicine_reminder/internal/domain/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2024-03-04 is a Monday.
var monday = time.Date(2024, 3, 4, 10, 30, 0, 0, time.UTC)

func newAdherenceService(env *testEnv, now time.Time) *AdherenceService {
	return NewAdherenceService(env.schedRepo, env.medRepo, env.intakeRepo, FixedClock{T: now}, time.UTC, env.logger)
}

func TestAdherence_TodayTimeline_Completeness(t *testing.T) {
	env := newTestEnv(t)
	med := env.seedMedicine(t, 1, "Paracetamol", "500mg")
	env.seedSchedule(t, 1, med.ID, []string{"08:00", "20:00"}, schedule.FrequencyDaily, nil, time.Time{})

	require.NoError(t, env.intakeRepo.Create(context.Background(), &intake.Log{
		UserID:     1,
		MedicineID: med.ID,
		Date:       intake.DateKey(monday),
		Time:       "08:00",
		Status:     intake.StatusTaken,
	}))

	svc := newAdherenceService(env, monday)
	slots, err := svc.TodayTimeline(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, "08:00", slots[0].Time)
	assert.Equal(t, intake.StatusTaken, slots[0].Status)
	assert.Equal(t, "20:00", slots[1].Time)
	assert.Equal(t, StatusUpcoming, slots[1].Status)
	assert.Equal(t, "Paracetamol", slots[1].MedicineName)
}

func TestAdherence_SkippedToday(t *testing.T) {
	env := newTestEnv(t)
	med := env.seedMedicine(t, 1, "Paracetamol", "500mg")
	env.seedSchedule(t, 1, med.ID, []string{"08:00", "14:00"}, schedule.FrequencyDaily, nil, time.Time{})

	require.NoError(t, env.intakeRepo.Create(context.Background(), &intake.Log{
		UserID: 1, MedicineID: med.ID, Date: intake.DateKey(monday), Time: "08:00", Status: intake.StatusMissed,
	}))

	svc := newAdherenceService(env, monday)
	skipped, err := svc.SkippedToday(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, skipped, 1)
	assert.Equal(t, "08:00", skipped[0].Time)
}

func TestAdherence_NextDose_PicksNextToday(t *testing.T) {
	env := newTestEnv(t)
	med := env.seedMedicine(t, 1, "Paracetamol", "500mg")
	env.seedSchedule(t, 1, med.ID, []string{"06:00", "22:00"}, schedule.FrequencyDaily, nil, time.Time{})

	svc := newAdherenceService(env, monday) // 10:30
	next, ok, err := svc.NextDose(context.Background(), 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "22:00", next)
}

func TestAdherence_NextDose_WrapsAround(t *testing.T) {
	env := newTestEnv(t)
	med := env.seedMedicine(t, 1, "Paracetamol", "500mg")
	env.seedSchedule(t, 1, med.ID, []string{"06:00", "22:00"}, schedule.FrequencyDaily, nil, time.Time{})

	lateNight := time.Date(2024, 3, 4, 23, 0, 0, 0, time.UTC)
	svc := newAdherenceService(env, lateNight)
	next, ok, err := svc.NextDose(context.Background(), 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "06:00", next, "past the last dose the next one is tomorrow's first")
}

func TestAdherence_NextDose_AppliesDayFilter(t *testing.T) {
	env := newTestEnv(t)
	med := env.seedMedicine(t, 1, "Paracetamol", "500mg")
	// Fires Tuesdays only; today is Monday.
	env.seedSchedule(t, 1, med.ID, []string{"08:00"}, schedule.FrequencyCustom, []string{"Tue"}, time.Time{})

	svc := newAdherenceService(env, monday)
	_, ok, err := svc.NextDose(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, ok, "no schedule valid today means no next dose")
}

func TestAdherence_CurrentMonth_UsesReferenceZone(t *testing.T) {
	env := newTestEnv(t)
	ist, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	// 2024-03-31 22:00 UTC is already 2024-04-01 03:30 in Kolkata.
	boundary := time.Date(2024, 3, 31, 22, 0, 0, 0, time.UTC)
	svc := NewAdherenceService(env.schedRepo, env.medRepo, env.intakeRepo, FixedClock{T: boundary}, ist, env.logger)

	month, year := svc.CurrentMonth()
	assert.Equal(t, time.April, month)
	assert.Equal(t, 2024, year)
}

func TestAdherence_WeekdayHistogram(t *testing.T) {
	env := newTestEnv(t)
	med := env.seedMedicine(t, 1, "Paracetamol", "500mg")
	ctx := context.Background()

	// Two TAKEN on Mondays (a week apart), one TAKEN on Tuesday, one MISSED
	// on Wednesday (must not count).
	entries := []struct {
		date   time.Time
		hhmm   string
		status intake.Status
	}{
		{time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), "08:00", intake.StatusTaken},
		{time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), "08:00", intake.StatusTaken},
		{time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), "08:00", intake.StatusTaken},
		{time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC), "08:00", intake.StatusMissed},
	}
	for _, e := range entries {
		require.NoError(t, env.intakeRepo.Create(ctx, &intake.Log{
			UserID: 1, MedicineID: med.ID, Date: e.date, Time: e.hhmm, Status: e.status,
		}))
	}

	svc := newAdherenceService(env, monday)
	counts, err := svc.WeekdayAdherence(ctx, 1)
	require.NoError(t, err)
	require.Len(t, counts, 7)
	assert.Equal(t, WeekdayCount{Day: "Mon", Taken: 2}, counts[0])
	assert.Equal(t, WeekdayCount{Day: "Tue", Taken: 1}, counts[1])
	assert.Equal(t, WeekdayCount{Day: "Wed", Taken: 0}, counts[2])
	assert.Equal(t, WeekdayCount{Day: "Sun", Taken: 0}, counts[6])
}

func TestAdherence_MonthlyReport_Grouping(t *testing.T) {
	env := newTestEnv(t)
	withLog := env.seedMedicine(t, 1, "Paracetamol", "500mg")
	without := env.seedMedicine(t, 1, "Vitamin D", "1000IU")
	env.seedSchedule(t, 1, withLog.ID, []string{"08:00"}, schedule.FrequencyDaily, nil, time.Time{})
	env.seedSchedule(t, 1, without.ID, []string{"09:00"}, schedule.FrequencyDaily, nil, time.Time{})
	ctx := context.Background()

	require.NoError(t, env.intakeRepo.Create(ctx, &intake.Log{
		UserID: 1, MedicineID: withLog.ID,
		Date: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), Time: "08:00", Status: intake.StatusTaken,
	}))
	// Outside the requested month: must not appear.
	require.NoError(t, env.intakeRepo.Create(ctx, &intake.Log{
		UserID: 1, MedicineID: withLog.ID,
		Date: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), Time: "08:00", Status: intake.StatusTaken,
	}))

	svc := newAdherenceService(env, monday)
	report, err := svc.Report(ctx, 1, time.March, 2024)
	require.NoError(t, err)
	require.Len(t, report.Medicines, 2)

	first := report.Medicines[0]
	assert.Equal(t, "Paracetamol", first.Name)
	require.Len(t, first.Logs, 1)
	assert.Equal(t, "2024-03-05", first.Logs[0].Date.Format("2006-01-02"))

	second := report.Medicines[1]
	assert.Equal(t, "Vitamin D", second.Name)
	assert.NotNil(t, second.Logs)
	assert.Empty(t, second.Logs, "medicine without logs still appears, with an empty list")
	assert.Equal(t, []string{"09:00"}, second.Times)
}

func TestAdherence_ReadsAreIdempotent(t *testing.T) {
	env := newTestEnv(t)
	med := env.seedMedicine(t, 1, "Paracetamol", "500mg")
	env.seedSchedule(t, 1, med.ID, []string{"08:00", "20:00"}, schedule.FrequencyDaily, nil, time.Time{})

	svc := newAdherenceService(env, monday)
	ctx := context.Background()

	a, err := svc.TodayTimeline(ctx, 1)
	require.NoError(t, err)
	b, err := svc.TodayTimeline(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
