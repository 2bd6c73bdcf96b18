package app

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"medicine_reminder/internal/domain/medicine"
	"medicine_reminder/internal/domain/notify"
	"medicine_reminder/internal/domain/schedule"
	"medicine_reminder/internal/domain/user"
	"medicine_reminder/internal/infra/memory"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

// fakeNotifier records every message it is asked to send; it can be told to
// fail to exercise the best-effort guarantees.
type fakeNotifier struct {
	mu   sync.Mutex
	sent []notify.Message
	fail error
}

func (f *fakeNotifier) Send(ctx context.Context, msg notify.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return f.fail
	}
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeNotifier) messages() []notify.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]notify.Message(nil), f.sent...)
}

type testEnv struct {
	medRepo    *memory.MedicineRepo
	schedRepo  *memory.ScheduleRepo
	intakeRepo *memory.IntakeRepo
	userRepo   *memory.UserRepo
	mailer     *fakeNotifier
	telegram   *fakeNotifier
	dispatcher *Dispatcher
	logger     *logrus.Logger
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	mailer := &fakeNotifier{}
	tg := &fakeNotifier{}
	return &testEnv{
		medRepo:    memory.NewMedicineRepo(),
		schedRepo:  memory.NewScheduleRepo(),
		intakeRepo: memory.NewIntakeRepo(),
		userRepo:   memory.NewUserRepo(),
		mailer:     mailer,
		telegram:   tg,
		dispatcher: NewDispatcher(mailer, tg, time.Second, log),
		logger:     log,
	}
}

func (e *testEnv) seedUser(t *testing.T, id int64, guardian string, notifyGuardian bool) *user.User {
	t.Helper()
	u := user.User{
		ID:             id,
		Name:           fmt.Sprintf("User %d", id),
		Email:          fmt.Sprintf("user%d@example.com", id),
		NotifyGuardian: notifyGuardian,
		Timezone:       "UTC",
		IsActive:       true,
	}
	if guardian != "" {
		u.GuardianEmail = sql.NullString{String: guardian, Valid: true}
	}
	e.userRepo.Put(u)
	return &u
}

func (e *testEnv) seedMedicine(t *testing.T, userID int64, name, dosage string) *medicine.Medicine {
	t.Helper()
	m := &medicine.Medicine{
		UserID:    userID,
		Name:      name,
		Type:      medicine.TypeTablet,
		Dosage:    dosage,
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		IsActive:  true,
	}
	require.NoError(t, e.medRepo.Create(context.Background(), m))
	return m
}

func (e *testEnv) seedSchedule(t *testing.T, userID, medicineID int64, times []string, freq schedule.Frequency, days []string, createdAt time.Time) *schedule.Schedule {
	t.Helper()
	s := &schedule.Schedule{
		UserID:     userID,
		MedicineID: medicineID,
		Times:      times,
		Frequency:  freq,
		Days:       days,
		CreatedAt:  createdAt,
	}
	require.NoError(t, e.schedRepo.Create(context.Background(), s))
	return s
}
