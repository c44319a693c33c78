package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AccessRepository reads per-user grants for private simulators. Grants are
// written out of band; this application only consumes them.
type AccessRepository struct {
	pool *pgxpool.Pool
}

// NewAccessRepository creates a new AccessRepository.
func NewAccessRepository(pool *pgxpool.Pool) *AccessRepository {
	return &AccessRepository{pool: pool}
}

// ListSimulatorIDs returns the simulator ids the user has been granted.
func (r *AccessRepository) ListSimulatorIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT simulador_id FROM accesos_simuladores WHERE usuario_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// HasAccess reports whether a grant exists for (user, simulator).
func (r *AccessRepository) HasAccess(ctx context.Context, userID, simulatorID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM accesos_simuladores
			WHERE usuario_id = $1 AND simulador_id = $2
		)`, userID, simulatorID).Scan(&exists)
	return exists, err
}
