package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ecuaforma/simulador-backend/internal/model"
)

// QuestionRepository handles question data access.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

const questionColumns = `id, simulador_id, pregunta, pregunta_img_url, opciones, respuesta, feedback, youtube_url, orden`

// ListBySimulator retrieves all questions for a simulator, ordered by orden
// with the row id as tiebreak for legacy rows sharing an order value.
func (r *QuestionRepository) ListBySimulator(ctx context.Context, simulatorID uuid.UUID) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+questionColumns+`
		 FROM preguntas WHERE simulador_id = $1
		 ORDER BY orden ASC, id ASC`, simulatorID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		var q model.Question
		if err := rows.Scan(&q.ID, &q.SimulatorID, &q.Prompt, &q.PromptImageURL,
			&q.Options, &q.Answer, &q.Feedback, &q.YouTubeURL, &q.Order); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// GetByID retrieves one question.
func (r *QuestionRepository) GetByID(ctx context.Context, id int64) (*model.Question, error) {
	q := &model.Question{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+questionColumns+` FROM preguntas WHERE id = $1`, id,
	).Scan(&q.ID, &q.SimulatorID, &q.Prompt, &q.PromptImageURL,
		&q.Options, &q.Answer, &q.Feedback, &q.YouTubeURL, &q.Order)
	if err != nil {
		return nil, err
	}
	return q, nil
}

// CountBySimulator returns how many questions a simulator has.
func (r *QuestionRepository) CountBySimulator(ctx context.Context, simulatorID uuid.UUID) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM preguntas WHERE simulador_id = $1`, simulatorID).Scan(&n)
	return n, err
}

// Create inserts a new question. Options and the answer copy are stored as
// JSONB.
func (r *QuestionRepository) Create(ctx context.Context, q *model.Question) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO preguntas (simulador_id, pregunta, pregunta_img_url, opciones, respuesta, feedback, youtube_url, orden)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		q.SimulatorID, q.Prompt, q.PromptImageURL, q.Options, q.Answer, q.Feedback, q.YouTubeURL, q.Order,
	).Scan(&q.ID)
}

// Delete removes one question. Remaining order values are not renumbered;
// gaps are tolerated downstream. Returns the number of rows removed.
func (r *QuestionRepository) Delete(ctx context.Context, id int64) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM preguntas WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// OrderUpdate is one (id, orden) pair of a reorder commit.
type OrderUpdate struct {
	ID    int64
	Order int
}

// BulkUpdateOrder persists recomputed order values for a whole question set
// in one statement. This is a single round trip but carries no transactional
// guarantee in the semantic sense: callers reload the list afterwards to
// resynchronize with whatever was actually stored.
func (r *QuestionRepository) BulkUpdateOrder(ctx context.Context, updates []OrderUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(updates))
	ordens := make([]int, 0, len(updates))
	for _, u := range updates {
		ids = append(ids, u.ID)
		ordens = append(ordens, u.Order)
	}

	query := `
		UPDATE preguntas AS p
		SET orden = t.orden
		FROM (
			SELECT u.id, u.orden
			FROM UNNEST(
				$1::bigint[],
				$2::int[]
			) AS u (id, orden)
		) AS t
		WHERE p.id = t.id
	`

	_, err := r.pool.Exec(ctx, query, ids, ordens)
	return err
}
