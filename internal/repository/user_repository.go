package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/hustle-village/internal/domain"
)

// UserRepository is the directory mapping verified identities to profiles.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpsertByEmail(ctx context.Context, user *domain.User) error
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

const userColumns = `id, email, full_name, phone_number, role, created_at, updated_at`

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email=$1`
	return r.fetchSingle(ctx, query, email)
}

// UpsertByEmail inserts a profile on first verification and refreshes the
// name/phone on later ones. Blank incoming values never clobber stored ones.
func (r *userRepository) UpsertByEmail(ctx context.Context, user *domain.User) error {
	if user.Role == "" {
		user.Role = domain.UserRoleSeller
	}
	const query = `
        INSERT INTO users (email, full_name, phone_number, role)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (email) DO UPDATE SET
            full_name = COALESCE(NULLIF(EXCLUDED.full_name, ''), users.full_name),
            phone_number = COALESCE(NULLIF(EXCLUDED.phone_number, ''), users.phone_number),
            updated_at = NOW()
        RETURNING ` + userColumns
	return r.pool.QueryRow(ctx, query,
		user.Email,
		user.FullName,
		user.PhoneNumber,
		user.Role,
	).Scan(
		&user.ID,
		&user.Email,
		&user.FullName,
		&user.PhoneNumber,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
}

func (r *userRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.FullName,
		&user.PhoneNumber,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}
