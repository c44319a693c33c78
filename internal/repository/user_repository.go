package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ecuaforma/simulador-backend/internal/model"
)

// UserRepository handles candidate account data access.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// GetByID retrieves a user by id.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	u := &model.User{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, google_id, email, nombre, created_at FROM usuarios WHERE id = $1`, id,
	).Scan(&u.ID, &u.GoogleID, &u.Email, &u.Name, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// UpsertByGoogleID creates the account on first sign-in and refreshes the
// profile fields on every subsequent one.
func (r *UserRepository) UpsertByGoogleID(ctx context.Context, googleID, email, name string) (*model.User, error) {
	u := &model.User{}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO usuarios (google_id, email, nombre)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (google_id) DO UPDATE SET email = EXCLUDED.email, nombre = EXCLUDED.nombre
		 RETURNING id, google_id, email, nombre, created_at`,
		googleID, email, name,
	).Scan(&u.ID, &u.GoogleID, &u.Email, &u.Name, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}
