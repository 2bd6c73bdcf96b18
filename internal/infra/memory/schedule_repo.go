package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"medicine_reminder/internal/domain/schedule"
	idb "medicine_reminder/internal/infra/database"
)

type ScheduleRepo struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]schedule.Schedule
}

func NewScheduleRepo() *ScheduleRepo {
	return &ScheduleRepo{byID: make(map[int64]schedule.Schedule)}
}

// Create holds the lock across the per-medicine check and the insert, matching
// the schedule_medicine_unique constraint of the Postgres schema.
func (r *ScheduleRepo) Create(ctx context.Context, s *schedule.Schedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.byID {
		if existing.MedicineID == s.MedicineID {
			return idb.ErrDuplicateSchedule
		}
	}

	r.nextID++
	s.ID = r.nextID
	now := time.Now()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = now
	r.byID[s.ID] = clone(*s)
	return nil
}

func (r *ScheduleRepo) GetByID(ctx context.Context, userID, id int64) (*schedule.Schedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byID[id]
	if !ok || s.UserID != userID {
		return nil, idb.ErrScheduleNotFound
	}
	cp := clone(s)
	return &cp, nil
}

func (r *ScheduleRepo) GetByMedicine(ctx context.Context, userID, medicineID int64) (*schedule.Schedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.byID {
		if s.UserID == userID && s.MedicineID == medicineID {
			cp := clone(s)
			return &cp, nil
		}
	}
	return nil, idb.ErrScheduleNotFound
}

func (r *ScheduleRepo) ListByUser(ctx context.Context, userID int64) ([]*schedule.Schedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*schedule.Schedule, 0)
	for _, s := range r.byID {
		if s.UserID == userID {
			cp := clone(s)
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *ScheduleRepo) ListByTime(ctx context.Context, hhmm string) ([]*schedule.Schedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*schedule.Schedule, 0)
	for _, s := range r.byID {
		for _, t := range s.Times {
			if t == hhmm {
				cp := clone(s)
				out = append(out, &cp)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *ScheduleRepo) Update(ctx context.Context, s *schedule.Schedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[s.ID]
	if !ok || existing.UserID != s.UserID {
		return idb.ErrScheduleNotFound
	}
	s.CreatedAt = existing.CreatedAt
	s.UpdatedAt = time.Now()
	r.byID[s.ID] = clone(*s)
	return nil
}

func (r *ScheduleRepo) Delete(ctx context.Context, userID, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.byID[id]
	if !ok || s.UserID != userID {
		return idb.ErrScheduleNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *ScheduleRepo) DeleteByMedicine(ctx context.Context, userID, medicineID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, s := range r.byID {
		if s.UserID == userID && s.MedicineID == medicineID {
			delete(r.byID, id)
		}
	}
	return nil
}

// clone copies the schedule with its slices so callers can't mutate stored state.
func clone(s schedule.Schedule) schedule.Schedule {
	s.Times = append([]string(nil), s.Times...)
	s.Days = append([]string(nil), s.Days...)
	return s
}
