package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ecuaforma/simulador-backend/internal/model"
)

// ResultRepository handles attempt-result persistence. Rows are insert-only.
type ResultRepository struct {
	pool *pgxpool.Pool
}

// NewResultRepository creates a new ResultRepository.
func NewResultRepository(pool *pgxpool.Pool) *ResultRepository {
	return &ResultRepository{pool: pool}
}

// Insert stores one attempt result.
func (r *ResultRepository) Insert(ctx context.Context, res *model.Result) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO resultados (simulador_id, usuario_id, email, puntaje, aciertos, total_preguntas)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		res.SimulatorID, res.UserID, res.Email, res.Score, res.Correct, res.Total,
	).Scan(&res.ID, &res.CreatedAt)
}

// BulkInsert stores a batch of attempt results in one statement, preserving
// the submission timestamps carried by each row.
func (r *ResultRepository) BulkInsert(ctx context.Context, results []model.Result) error {
	if len(results) == 0 {
		return nil
	}

	n := len(results)
	simIDs := make([]*uuid.UUID, 0, n)
	userIDs := make([]*uuid.UUID, 0, n)
	emails := make([]*string, 0, n)
	scores := make([]int, 0, n)
	corrects := make([]int, 0, n)
	totals := make([]int, 0, n)
	createdAts := make([]time.Time, 0, n)

	for i := range results {
		simIDs = append(simIDs, results[i].SimulatorID)
		userIDs = append(userIDs, results[i].UserID)
		emails = append(emails, results[i].Email)
		scores = append(scores, results[i].Score)
		corrects = append(corrects, results[i].Correct)
		totals = append(totals, results[i].Total)
		createdAts = append(createdAts, results[i].CreatedAt)
	}

	query := `
		INSERT INTO resultados (simulador_id, usuario_id, email, puntaje, aciertos, total_preguntas, created_at)
		SELECT u.simulador_id, u.usuario_id, u.email, u.puntaje, u.aciertos, u.total_preguntas, u.created_at
		FROM UNNEST(
			$1::uuid[],
			$2::uuid[],
			$3::text[],
			$4::int[],
			$5::int[],
			$6::int[],
			$7::timestamptz[]
		) AS u (simulador_id, usuario_id, email, puntaje, aciertos, total_preguntas, created_at)
	`

	_, err := r.pool.Exec(ctx, query, simIDs, userIDs, emails, scores, corrects, totals, createdAts)
	return err
}

// ListHistoryByUser returns the user's results joined with their simulators,
// newest first. The simulator side is nil for attempts whose simulator was
// deleted since.
func (r *ResultRepository) ListHistoryByUser(ctx context.Context, userID uuid.UUID) ([]model.HistoryEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT r.id, r.puntaje, r.aciertos, r.total_preguntas, r.created_at,
		        s.nombre, s.slug, s.institucion, s.categoria
		 FROM resultados r
		 LEFT JOIN simuladores s ON s.id = r.simulador_id
		 WHERE r.usuario_id = $1
		 ORDER BY r.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.HistoryEntry
	for rows.Next() {
		var e model.HistoryEntry
		var name, slug, institution, category *string
		if err := rows.Scan(&e.ID, &e.Score, &e.Correct, &e.Total, &e.CreatedAt,
			&name, &slug, &institution, &category); err != nil {
			return nil, err
		}
		if name != nil {
			e.Simulator = &model.SimulatorRef{
				Name:        *name,
				Slug:        *slug,
				Institution: *institution,
				Category:    *category,
			}
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
