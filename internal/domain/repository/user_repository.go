package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/address-book/internal/domain/entity"
)

// ErrNotFound is returned by lookups that match no row.
var ErrNotFound = errors.New("not found")

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	// Create inserts u and fills in the generated id and timestamps.
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByGithubID(ctx context.Context, githubUserID int64) (*entity.User, error)
	// SetAdmin persists the admin flag. The login flow is the only caller.
	SetAdmin(ctx context.Context, id string, isAdmin bool) error
	List(ctx context.Context) ([]entity.User, error)
}
