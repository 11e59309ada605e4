package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/address-book/internal/domain/entity"
	"github.com/oksasatya/address-book/internal/domain/repository"
)

type AddressRepository struct {
	mu    sync.RWMutex
	addrs map[string]entity.Address
}

func NewAddressRepository() *AddressRepository {
	return &AddressRepository{addrs: make(map[string]entity.Address)}
}

func (r *AddressRepository) Create(_ context.Context, a *entity.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a.ID = uuid.NewString()
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	r.addrs[a.ID] = *a
	return nil
}

func (r *AddressRepository) DeleteByOwner(_ context.Context, id, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.addrs[id]; ok && a.UserID == ownerID {
		delete(r.addrs, id)
	}
	return nil
}

func (r *AddressRepository) ListByUser(_ context.Context, userID string) ([]entity.Address, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var addrs []entity.Address
	for _, a := range r.addrs {
		if a.UserID == userID {
			addrs = append(addrs, a)
		}
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i].CreatedAt.Before(addrs[j].CreatedAt) })
	return addrs, nil
}

var _ repository.AddressRepository = (*AddressRepository)(nil)
