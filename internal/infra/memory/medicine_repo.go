// Package memory provides map-backed repository implementations used by the
// dev store mode and by the service tests. They enforce the same invariants
// as the Postgres repositories, including the intake slot uniqueness, under a
// mutex instead of a unique index.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"medicine_reminder/internal/domain/medicine"
	idb "medicine_reminder/internal/infra/database"
)

type MedicineRepo struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]medicine.Medicine
}

func NewMedicineRepo() *MedicineRepo {
	return &MedicineRepo{byID: make(map[int64]medicine.Medicine)}
}

func (r *MedicineRepo) Create(ctx context.Context, m *medicine.Medicine) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	m.ID = r.nextID
	now := time.Now()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now
	r.byID[m.ID] = *m
	return nil
}

func (r *MedicineRepo) GetByID(ctx context.Context, userID, id int64) (*medicine.Medicine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.byID[id]
	if !ok || m.UserID != userID {
		return nil, idb.ErrMedicineNotFound
	}
	cp := m
	return &cp, nil
}

func (r *MedicineRepo) ListByUser(ctx context.Context, userID int64) ([]*medicine.Medicine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*medicine.Medicine, 0)
	for _, m := range r.byID {
		if m.UserID == userID {
			cp := m
			out = append(out, &cp)
		}
	}
	// Stable order by creation, matching the Postgres ORDER BY.
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MedicineRepo) Update(ctx context.Context, m *medicine.Medicine) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[m.ID]
	if !ok || existing.UserID != m.UserID {
		return idb.ErrMedicineNotFound
	}
	m.UpdatedAt = time.Now()
	r.byID[m.ID] = *m
	return nil
}

func (r *MedicineRepo) Delete(ctx context.Context, userID, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.byID[id]
	if !ok || m.UserID != userID {
		return idb.ErrMedicineNotFound
	}
	delete(r.byID, id)
	return nil
}
