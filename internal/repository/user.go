package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

// UserRepository persists user accounts.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Create inserts a user and returns the stored row. The unique
// constraint on email surfaces as a pg error for the caller to map.
func (r *UserRepository) Create(ctx context.Context, email, passwordHash, firstName string) (*User, error) {
	rows, err := r.pool.Query(ctx, `
		insert into users (email, password_hash, first_name)
		values ($1, $2, $3)
		returning *`,
		email, passwordHash, firstName,
	)
	if err != nil {
		return nil, err
	}

	user, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[User])
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetByEmail fetches an active user by email address.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	rows, err := r.pool.Query(ctx, `
		select * from users
		where email = $1 and is_deleted = false`,
		email,
	)
	if err != nil {
		return nil, err
	}

	user, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[User])
	if err != nil {
		return nil, errors.Wrap(err, "table:users:")
	}
	return user, nil
}

// GetByID fetches an active user by internal id.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*User, error) {
	rows, err := r.pool.Query(ctx, `
		select * from users
		where id = $1 and is_deleted = false`,
		id,
	)
	if err != nil {
		return nil, err
	}

	user, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[User])
	if err != nil {
		return nil, errors.Wrap(err, "table:users:")
	}
	return user, nil
}
