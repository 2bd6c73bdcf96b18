package memory

import (
	"context"
	"sync"

	"medicine_reminder/internal/domain/user"
	idb "medicine_reminder/internal/infra/database"
)

type UserRepo struct {
	mu   sync.RWMutex
	byID map[int64]user.User
}

func NewUserRepo() *UserRepo {
	return &UserRepo{byID: make(map[int64]user.User)}
}

// Put seeds or replaces a user. The user projection is read-only for the
// services; this exists for dev fixtures and tests.
func (r *UserRepo) Put(u user.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[u.ID] = u
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, idb.ErrUserNotFound
	}
	cp := u
	return &cp, nil
}
