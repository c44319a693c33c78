package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"

	"github.com/ecuaforma/simulador-backend/internal/model"
	"github.com/ecuaforma/simulador-backend/internal/repository"
	"github.com/ecuaforma/simulador-backend/internal/slug"
)

var (
	// ErrSlugTaken is returned when another simulator already owns the slug
	// derived from the requested name.
	ErrSlugTaken = errors.New("slug already in use")
	// ErrSlugEmpty is returned when the name reduces to an empty slug
	// (e.g. a name made entirely of punctuation).
	ErrSlugEmpty = errors.New("name produces an empty slug")
)

// SimulatorService handles the admin side of simulator management.
type SimulatorService struct {
	simulatorRepo *repository.SimulatorRepository
	catalog       *CatalogService
}

// NewSimulatorService creates a new SimulatorService.
func NewSimulatorService(simulatorRepo *repository.SimulatorRepository, catalog *CatalogService) *SimulatorService {
	return &SimulatorService{simulatorRepo: simulatorRepo, catalog: catalog}
}

// ListSummaries returns every simulator with its question count for the
// dashboard, optionally filtered by a search term.
func (s *SimulatorService) ListSummaries(ctx context.Context, search string) ([]model.SimulatorSummary, error) {
	summaries, err := s.simulatorRepo.ListSummaries(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("list simulators: %w", err)
	}
	if summaries == nil {
		summaries = []model.SimulatorSummary{}
	}
	return summaries, nil
}

// Create derives the slug from the name, checks it is unused and inserts the
// simulator. The slug is fixed at creation; renames do not exist.
func (s *SimulatorService) Create(ctx context.Context, req *model.CreateSimulatorRequest) (*model.Simulator, error) {
	sl := slug.Make(req.Name)
	if sl == "" {
		return nil, ErrSlugEmpty
	}

	_, err := s.simulatorRepo.GetBySlug(ctx, sl)
	if err == nil {
		return nil, ErrSlugTaken
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("check slug: %w", err)
	}

	public := true
	if req.Public != nil {
		public = *req.Public
	}

	sim := &model.Simulator{
		Name:        req.Name,
		Slug:        sl,
		Institution: req.Institution,
		Category:    req.Category,
		Subject:     req.Subject,
		Public:      public,
	}
	if err := s.simulatorRepo.Create(ctx, sim); err != nil {
		// Two concurrent creates with the same name can both pass the slug
		// check; the unique index catches the loser.
		if isUniqueViolation(err) {
			return nil, ErrSlugTaken
		}
		return nil, fmt.Errorf("create simulator: %w", err)
	}

	s.catalog.InvalidateSitemap(ctx)
	log.Info().Str("simulator_id", sim.ID.String()).Str("slug", sim.Slug).Msg("Simulator created")
	return sim, nil
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// Delete removes a simulator; its questions cascade away and past results
// keep a null reference.
func (s *SimulatorService) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := s.simulatorRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete simulator: %w", err)
	}
	if affected == 0 {
		return ErrSimulatorNotFound
	}

	s.catalog.InvalidateSitemap(ctx)
	log.Info().Str("simulator_id", id.String()).Msg("Simulator deleted")
	return nil
}
