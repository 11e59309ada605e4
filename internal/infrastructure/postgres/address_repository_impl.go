package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/address-book/internal/domain/entity"
	"github.com/oksasatya/address-book/internal/domain/repository"
)

type AddressRepository struct {
	pool *pgxpool.Pool
}

func NewAddressRepository(pool *pgxpool.Pool) *AddressRepository {
	return &AddressRepository{pool: pool}
}

func (r *AddressRepository) Create(ctx context.Context, a *entity.Address) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO addresses (user_id, json)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`, a.UserID, a.JSON)

	return row.Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

func (r *AddressRepository) DeleteByOwner(ctx context.Context, id, ownerID string) error {
	// No rows affected is still success; delete is a no-op for missing or
	// foreign-owned ids.
	_, err := r.pool.Exec(ctx, `
		DELETE FROM addresses
		WHERE id = $1 AND user_id = $2
	`, id, ownerID)
	return err
}

func (r *AddressRepository) ListByUser(ctx context.Context, userID string) ([]entity.Address, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, json, created_at, updated_at
		FROM addresses
		WHERE user_id = $1
		ORDER BY created_at
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var addrs []entity.Address
	for rows.Next() {
		var a entity.Address
		if err := rows.Scan(&a.ID, &a.UserID, &a.JSON, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		addrs = append(addrs, a)
	}
	return addrs, rows.Err()
}

var _ repository.AddressRepository = (*AddressRepository)(nil)
