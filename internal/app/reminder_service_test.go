package app

import (
	"context"
	"testing"
	"time"

	"medicine_reminder/internal/domain/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReminderService(env *testEnv, now time.Time) *ReminderService {
	return NewReminderService(env.schedRepo, env.medRepo, env.userRepo, env.dispatcher, FixedClock{T: now}, time.UTC, env.logger)
}

func TestReminder_DailyFiresOnExactMinute(t *testing.T) {
	env := newTestEnv(t)
	u := env.seedUser(t, 1, "", false)
	med := env.seedMedicine(t, 1, "Paracetamol", "500mg")
	env.seedSchedule(t, 1, med.ID, []string{"08:00"}, schedule.FrequencyDaily, nil, time.Time{})

	at := time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)
	svc := newReminderService(env, at)
	require.NoError(t, svc.RunCycle(context.Background()))

	msgs := env.mailer.messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, u.Email, msgs[0].To)
	assert.Equal(t, "Medicine Reminder", msgs[0].Subject)
	assert.Contains(t, msgs[0].Body, "Paracetamol")
	assert.Contains(t, msgs[0].Body, "08:00")
}

func TestReminder_NoMatchOutsideMinute(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, 1, "", false)
	med := env.seedMedicine(t, 1, "Paracetamol", "500mg")
	env.seedSchedule(t, 1, med.ID, []string{"08:00"}, schedule.FrequencyDaily, nil, time.Time{})

	svc := newReminderService(env, time.Date(2024, 3, 4, 8, 1, 0, 0, time.UTC))
	require.NoError(t, svc.RunCycle(context.Background()))
	assert.Empty(t, env.mailer.messages(), "no tolerance window: 08:01 never matches 08:00")
}

func TestReminder_CustomDayFilter(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, 1, "", false)
	med := env.seedMedicine(t, 1, "Paracetamol", "500mg")
	env.seedSchedule(t, 1, med.ID, []string{"08:00"}, schedule.FrequencyCustom, []string{"Mon", "Wed"}, time.Time{})
	ctx := context.Background()

	// Monday: fires.
	svc := newReminderService(env, time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC))
	require.NoError(t, svc.RunCycle(ctx))
	assert.Len(t, env.mailer.messages(), 1)

	// Tuesday, same time: does not fire.
	svc = newReminderService(env, time.Date(2024, 3, 5, 8, 0, 0, 0, time.UTC))
	require.NoError(t, svc.RunCycle(ctx))
	assert.Len(t, env.mailer.messages(), 1)

	// Wednesday: fires again.
	svc = newReminderService(env, time.Date(2024, 3, 6, 8, 0, 0, 0, time.UTC))
	require.NoError(t, svc.RunCycle(ctx))
	assert.Len(t, env.mailer.messages(), 2)
}

func TestReminder_AlternateCadence(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, 1, "", false)
	med := env.seedMedicine(t, 1, "Paracetamol", "500mg")
	anchor := time.Date(2024, 3, 1, 9, 15, 0, 0, time.UTC)
	env.seedSchedule(t, 1, med.ID, []string{"08:00"}, schedule.FrequencyAlternate, nil, anchor)
	ctx := context.Background()

	// Anchor day itself: fires.
	svc := newReminderService(env, time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC))
	require.NoError(t, svc.RunCycle(ctx))
	assert.Len(t, env.mailer.messages(), 1)

	// Next day: off-cadence.
	svc = newReminderService(env, time.Date(2024, 3, 2, 8, 0, 0, 0, time.UTC))
	require.NoError(t, svc.RunCycle(ctx))
	assert.Len(t, env.mailer.messages(), 1)

	// Two days after the anchor: fires.
	svc = newReminderService(env, time.Date(2024, 3, 3, 8, 0, 0, 0, time.UTC))
	require.NoError(t, svc.RunCycle(ctx))
	assert.Len(t, env.mailer.messages(), 2)
}

func TestReminder_SkipsOrphanedSchedule(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, 1, "", false)
	med := env.seedMedicine(t, 1, "Paracetamol", "500mg")
	env.seedSchedule(t, 1, med.ID, []string{"08:00"}, schedule.FrequencyDaily, nil, time.Time{})
	// Schedule whose medicine is gone and whose user doesn't exist.
	env.seedSchedule(t, 77, med.ID+999, []string{"08:00"}, schedule.FrequencyDaily, nil, time.Time{})

	svc := newReminderService(env, time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC))
	require.NoError(t, svc.RunCycle(context.Background()), "orphans are skipped, not fatal")
	assert.Len(t, env.mailer.messages(), 1, "the healthy schedule still fires")
}

func TestReminder_PrefersTelegramWhenLinked(t *testing.T) {
	env := newTestEnv(t)
	u := env.seedUser(t, 1, "", false)
	u.TelegramChatID.Int64 = 424242
	u.TelegramChatID.Valid = true
	env.userRepo.Put(*u)
	med := env.seedMedicine(t, 1, "Paracetamol", "500mg")
	env.seedSchedule(t, 1, med.ID, []string{"08:00"}, schedule.FrequencyDaily, nil, time.Time{})

	svc := newReminderService(env, time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC))
	require.NoError(t, svc.RunCycle(context.Background()))

	assert.Empty(t, env.mailer.messages())
	msgs := env.telegram.messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "424242", msgs[0].To)
}
