// Package memory provides in-memory repository implementations. They back
// the test suites and double as a zero-dependency store for local
// experiments; production wiring uses the postgres package.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/address-book/internal/domain/entity"
	"github.com/oksasatya/address-book/internal/domain/repository"
)

type UserRepository struct {
	mu    sync.RWMutex
	users map[string]entity.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]entity.User)}
}

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u.ID = uuid.NewString()
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	r.users[u.ID] = *u
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *UserRepository) GetByGithubID(_ context.Context, githubUserID int64) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.GithubUserID == githubUserID {
			u := u
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) SetAdmin(_ context.Context, id string, isAdmin bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.IsAdmin = isAdmin
	u.UpdatedAt = time.Now().UTC()
	r.users[id] = u
	return nil
}

func (r *UserRepository) List(_ context.Context) ([]entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	users := make([]entity.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, u)
	}
	return users, nil
}

// Delete removes a user outright. No HTTP surface reaches this; it exists
// so tests can exercise the stale-token path.
func (r *UserRepository) Delete(_ context.Context, id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
}

var _ repository.UserRepository = (*UserRepository)(nil)
