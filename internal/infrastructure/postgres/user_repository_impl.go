package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/address-book/internal/domain/entity"
	"github.com/oksasatya/address-book/internal/domain/repository"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (github_user_id, name, is_admin)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, u.GithubUserID, u.Name, u.IsAdmin)

	return row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getBy(ctx, `
		SELECT id, github_user_id, name, is_admin, created_at, updated_at
		FROM users
		WHERE id = $1
	`, id)
}

func (r *UserRepository) GetByGithubID(ctx context.Context, githubUserID int64) (*entity.User, error) {
	return r.getBy(ctx, `
		SELECT id, github_user_id, name, is_admin, created_at, updated_at
		FROM users
		WHERE github_user_id = $1
	`, githubUserID)
}

func (r *UserRepository) getBy(ctx context.Context, query string, arg any) (*entity.User, error) {
	u := &entity.User{}
	row := r.pool.QueryRow(ctx, query, arg)
	if err := row.Scan(&u.ID, &u.GithubUserID, &u.Name, &u.IsAdmin,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) SetAdmin(ctx context.Context, id string, isAdmin bool) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET is_admin = $1, updated_at = now()
		WHERE id = $2
	`, isAdmin, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context) ([]entity.User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, github_user_id, name, is_admin, created_at, updated_at
		FROM users
		ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.GithubUserID, &u.Name, &u.IsAdmin,
			&u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

var _ repository.UserRepository = (*UserRepository)(nil)
