package application

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/address-book/internal/domain/entity"
	repo "github.com/oksasatya/address-book/internal/domain/repository"
	"github.com/oksasatya/address-book/pkg/apperr"
)

// AddressService manages the owned address records. Payloads are opaque:
// stored and returned byte-for-byte, never inspected.
type AddressService struct {
	Addrs  repo.AddressRepository
	Logger *logrus.Logger
}

func NewAddressService(addrs repo.AddressRepository, logger *logrus.Logger) *AddressService {
	return &AddressService{Addrs: addrs, Logger: logger}
}

// Create inserts an address owned by ownerID. Insert and association are
// one statement; the record never exists unowned.
func (s *AddressService) Create(ctx context.Context, ownerID string, payload json.RawMessage) (*entity.Address, error) {
	a := &entity.Address{UserID: ownerID, JSON: payload}
	if err := s.Addrs.Create(ctx, a); err != nil {
		return nil, apperr.Persistence(err)
	}
	s.Logger.WithFields(logrus.Fields{"address_id": a.ID, "user_id": ownerID}).Debug("address created")
	return a, nil
}

// Delete removes address id when it belongs to ownerID (the owner named
// in the URL, which access policy has already vetted). Missing or
// foreign-owned ids are a silent no-op.
func (s *AddressService) Delete(ctx context.Context, ownerID, id string) error {
	if err := s.Addrs.DeleteByOwner(ctx, id, ownerID); err != nil {
		return apperr.Persistence(err)
	}
	return nil
}
