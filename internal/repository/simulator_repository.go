package repository

import (
	"context"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ecuaforma/simulador-backend/internal/model"
)

// SimulatorRepository handles simulator data access.
type SimulatorRepository struct {
	pool *pgxpool.Pool
}

// NewSimulatorRepository creates a new SimulatorRepository.
func NewSimulatorRepository(pool *pgxpool.Pool) *SimulatorRepository {
	return &SimulatorRepository{pool: pool}
}

const simulatorColumns = `id, nombre, slug, institucion, categoria, materia, publico, created_at`

// visibility is the predicate deciding which rows a caller may see: every
// public simulator, plus private ones with an access grant for the caller.
// Anonymous callers (nil userID) see only public rows.
func visibility(userID *uuid.UUID, args []interface{}) (string, []interface{}) {
	if userID == nil {
		return `publico = TRUE`, args
	}
	args = append(args, *userID)
	n := strconv.Itoa(len(args))
	return `(publico = TRUE OR EXISTS (
		SELECT 1 FROM accesos_simuladores a
		WHERE a.simulador_id = simuladores.id AND a.usuario_id = $` + n + `))`, args
}

// GetBySlug retrieves a simulator by its slug, visibility unchecked — callers
// classify private access themselves to distinguish locked from missing.
func (r *SimulatorRepository) GetBySlug(ctx context.Context, slug string) (*model.Simulator, error) {
	s := &model.Simulator{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+simulatorColumns+` FROM simuladores WHERE slug = $1`, slug,
	).Scan(&s.ID, &s.Name, &s.Slug, &s.Institution, &s.Category, &s.Subject, &s.Public, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// GetByID retrieves a simulator by its UUID.
func (r *SimulatorRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Simulator, error) {
	s := &model.Simulator{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+simulatorColumns+` FROM simuladores WHERE id = $1`, id,
	).Scan(&s.ID, &s.Name, &s.Slug, &s.Institution, &s.Category, &s.Subject, &s.Public, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// ListVisible returns every simulator the caller may see, newest first.
func (r *SimulatorRepository) ListVisible(ctx context.Context, userID *uuid.UUID) ([]model.Simulator, error) {
	where, args := visibility(userID, nil)
	rows, err := r.pool.Query(ctx,
		`SELECT `+simulatorColumns+` FROM simuladores WHERE `+where+` ORDER BY created_at DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSimulators(rows)
}

// DistinctInstitutions returns the distinct institution values among visible
// simulators. Values differing only in case collapse to one entry; the kept
// spelling is the alphabetically first.
func (r *SimulatorRepository) DistinctInstitutions(ctx context.Context, userID *uuid.UUID) ([]string, error) {
	where, args := visibility(userID, nil)
	return r.distinctValues(ctx,
		`SELECT DISTINCT ON (LOWER(institucion)) institucion
		 FROM simuladores WHERE `+where+`
		 ORDER BY LOWER(institucion), institucion`, args)
}

// DistinctCategories returns the distinct categories of one institution
// among visible simulators. Institution matching is case-insensitive.
func (r *SimulatorRepository) DistinctCategories(ctx context.Context, userID *uuid.UUID, institution string) ([]string, error) {
	args := []interface{}{institution}
	where, args := visibility(userID, args)
	return r.distinctValues(ctx,
		`SELECT DISTINCT ON (LOWER(categoria)) categoria
		 FROM simuladores
		 WHERE LOWER(institucion) = LOWER($1) AND `+where+`
		 ORDER BY LOWER(categoria), categoria`, args)
}

// DistinctSubjects returns the distinct subjects of one institution+category
// among visible simulators.
func (r *SimulatorRepository) DistinctSubjects(ctx context.Context, userID *uuid.UUID, institution, category string) ([]string, error) {
	args := []interface{}{institution, category}
	where, args := visibility(userID, args)
	return r.distinctValues(ctx,
		`SELECT DISTINCT ON (LOWER(materia)) materia
		 FROM simuladores
		 WHERE LOWER(institucion) = LOWER($1) AND LOWER(categoria) = LOWER($2) AND `+where+`
		 ORDER BY LOWER(materia), materia`, args)
}

// ListByTaxonomy returns the visible simulators at one full taxonomy path.
func (r *SimulatorRepository) ListByTaxonomy(ctx context.Context, userID *uuid.UUID, institution, category, subject string) ([]model.Simulator, error) {
	args := []interface{}{institution, category, subject}
	where, args := visibility(userID, args)
	rows, err := r.pool.Query(ctx,
		`SELECT `+simulatorColumns+`
		 FROM simuladores
		 WHERE LOWER(institucion) = LOWER($1)
		   AND LOWER(categoria) = LOWER($2)
		   AND LOWER(materia) = LOWER($3)
		   AND `+where+`
		 ORDER BY nombre`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSimulators(rows)
}

// ListByIDs returns the simulators in the given id set (the caller's access
// grants), newest first.
func (r *SimulatorRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Simulator, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+simulatorColumns+` FROM simuladores WHERE id = ANY($1) ORDER BY created_at DESC`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSimulators(rows)
}

// ListSummaries returns all simulators with their question counts for the
// admin dashboard, newest first, optionally filtered by a name/institution
// search term.
func (r *SimulatorRepository) ListSummaries(ctx context.Context, search string) ([]model.SimulatorSummary, error) {
	query := `SELECT s.id, s.nombre, s.slug, s.institucion, s.categoria, s.materia, s.publico, s.created_at,
	                 COUNT(p.id) AS total_preguntas
	          FROM simuladores s
	          LEFT JOIN preguntas p ON p.simulador_id = s.id`
	var args []interface{}
	if search != "" {
		query += ` WHERE s.nombre ILIKE '%' || $1 || '%' OR s.institucion ILIKE '%' || $1 || '%'`
		args = append(args, search)
	}
	query += ` GROUP BY s.id ORDER BY s.created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.SimulatorSummary
	for rows.Next() {
		var s model.SimulatorSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Slug, &s.Institution, &s.Category, &s.Subject,
			&s.Public, &s.CreatedAt, &s.QuestionCount); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ListPublicSlugs returns slug and creation time of every public simulator,
// for the sitemap feed.
func (r *SimulatorRepository) ListPublicSlugs(ctx context.Context) ([]model.SitemapEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT slug, created_at FROM simuladores WHERE publico = TRUE ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.SitemapEntry
	for rows.Next() {
		var e model.SitemapEntry
		if err := rows.Scan(&e.Slug, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Create inserts a new simulator.
func (r *SimulatorRepository) Create(ctx context.Context, s *model.Simulator) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO simuladores (nombre, slug, institucion, categoria, materia, publico)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		s.Name, s.Slug, s.Institution, s.Category, s.Subject, s.Public,
	).Scan(&s.ID, &s.CreatedAt)
}

// Delete removes a simulator. Questions cascade; resultados keep a null
// simulator reference. Returns the number of rows removed.
func (r *SimulatorRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM simuladores WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *SimulatorRepository) distinctValues(ctx context.Context, query string, args []interface{}) ([]string, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func scanSimulators(rows pgx.Rows) ([]model.Simulator, error) {
	var out []model.Simulator
	for rows.Next() {
		var s model.Simulator
		if err := rows.Scan(&s.ID, &s.Name, &s.Slug, &s.Institution, &s.Category, &s.Subject,
			&s.Public, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
