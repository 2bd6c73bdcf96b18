package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"medicine_reminder/internal/domain/intake"
	idb "medicine_reminder/internal/infra/database"
)

type IntakeRepo struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]intake.Log
	slots  map[string]struct{} // uniqueness guard over (user, medicine, date, time)
}

func NewIntakeRepo() *IntakeRepo {
	return &IntakeRepo{
		byID:  make(map[int64]intake.Log),
		slots: make(map[string]struct{}),
	}
}

func slotKey(l *intake.Log) string {
	return fmt.Sprintf("%d|%d|%s|%s", l.UserID, l.MedicineID, l.Date.Format("2006-01-02"), l.Time)
}

// Create holds the mutex across the check and the insert, so the uniqueness
// guarantee is atomic exactly like the Postgres unique index.
func (r *IntakeRepo) Create(ctx context.Context, l *intake.Log) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := slotKey(l)
	if _, exists := r.slots[key]; exists {
		return idb.ErrDuplicateIntake
	}

	r.nextID++
	l.ID = r.nextID
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now()
	}
	r.slots[key] = struct{}{}
	r.byID[l.ID] = *l
	return nil
}

func (r *IntakeRepo) ListByDate(ctx context.Context, userID int64, date time.Time) ([]*intake.Log, error) {
	day := intake.DateKey(date)
	return r.list(userID, func(l intake.Log) bool { return l.Date.Equal(day) }, byTimeAsc), nil
}

func (r *IntakeRepo) ListByRange(ctx context.Context, userID int64, from, to time.Time) ([]*intake.Log, error) {
	lo, hi := intake.DateKey(from), intake.DateKey(to)
	return r.list(userID, func(l intake.Log) bool {
		return !l.Date.Before(lo) && !l.Date.After(hi)
	}, byDateAsc), nil
}

func (r *IntakeRepo) ListByUser(ctx context.Context, userID int64) ([]*intake.Log, error) {
	return r.list(userID, func(intake.Log) bool { return true }, byDateDesc), nil
}

func (r *IntakeRepo) DeleteByMedicine(ctx context.Context, userID, medicineID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, l := range r.byID {
		if l.UserID == userID && l.MedicineID == medicineID {
			delete(r.slots, slotKey(&l))
			delete(r.byID, id)
		}
	}
	return nil
}

type order func(a, b *intake.Log) bool

func byTimeAsc(a, b *intake.Log) bool { return a.Time < b.Time }

func byDateAsc(a, b *intake.Log) bool {
	if !a.Date.Equal(b.Date) {
		return a.Date.Before(b.Date)
	}
	return a.Time < b.Time
}

func byDateDesc(a, b *intake.Log) bool {
	if !a.Date.Equal(b.Date) {
		return a.Date.After(b.Date)
	}
	return a.Time > b.Time
}

func (r *IntakeRepo) list(userID int64, keep func(intake.Log) bool, less order) []*intake.Log {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*intake.Log, 0)
	for _, l := range r.byID {
		if l.UserID == userID && keep(l) {
			cp := l
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}
