package repository

import (
	"context"

	"github.com/oksasatya/address-book/internal/domain/entity"
)

// AddressRepository defines the interface for address-related database
// operations.
type AddressRepository interface {
	// Create inserts a with its owner in a single statement and fills in
	// the generated id and timestamps. An address never exists without an
	// owner.
	Create(ctx context.Context, a *entity.Address) error
	// DeleteByOwner removes the address only when it belongs to ownerID.
	// Deleting a missing or foreign-owned id is a silent no-op.
	DeleteByOwner(ctx context.Context, id, ownerID string) error
	ListByUser(ctx context.Context, userID string) ([]entity.Address, error)
}
