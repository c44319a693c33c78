package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/ecuaforma/simulador-backend/internal/config"
	"github.com/ecuaforma/simulador-backend/internal/model"
	"github.com/ecuaforma/simulador-backend/internal/repository"
)

const sitemapCacheTTL = 1 * time.Hour

var (
	// ErrSimulatorNotFound is returned when no simulator matches.
	ErrSimulatorNotFound = errors.New("simulator not found")
	// ErrLoginRequired is returned when an anonymous caller hits a private
	// simulator.
	ErrLoginRequired = errors.New("login required")
	// ErrAccessDenied is returned when a signed-in caller lacks a grant for
	// a private simulator.
	ErrAccessDenied = errors.New("access denied")
)

// CatalogService serves the public browsing surface: the taxonomy drill-down,
// simulator detail with visibility classification, the caller's granted
// courses and the sitemap feed.
type CatalogService struct {
	simulatorRepo *repository.SimulatorRepository
	accessRepo    *repository.AccessRepository
	questionRepo  *repository.QuestionRepository
	rdb           *redis.Client
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(
	simulatorRepo *repository.SimulatorRepository,
	accessRepo *repository.AccessRepository,
	questionRepo *repository.QuestionRepository,
	rdb *redis.Client,
) *CatalogService {
	return &CatalogService{
		simulatorRepo: simulatorRepo,
		accessRepo:    accessRepo,
		questionRepo:  questionRepo,
		rdb:           rdb,
	}
}

// Institutions lists the distinct institutions visible to the caller.
func (s *CatalogService) Institutions(ctx context.Context, userID *uuid.UUID) ([]string, error) {
	return s.simulatorRepo.DistinctInstitutions(ctx, userID)
}

// Categories lists the distinct categories of one institution.
func (s *CatalogService) Categories(ctx context.Context, userID *uuid.UUID, institution string) ([]string, error) {
	return s.simulatorRepo.DistinctCategories(ctx, userID, institution)
}

// Subjects lists the distinct subjects of one institution and category.
func (s *CatalogService) Subjects(ctx context.Context, userID *uuid.UUID, institution, category string) ([]string, error) {
	return s.simulatorRepo.DistinctSubjects(ctx, userID, institution, category)
}

// Simulators lists the visible simulators at one taxonomy path.
func (s *CatalogService) Simulators(ctx context.Context, userID *uuid.UUID, institution, category, subject string) ([]model.Simulator, error) {
	return s.simulatorRepo.ListByTaxonomy(ctx, userID, institution, category, subject)
}

// GetSimulator resolves a slug and classifies the caller's standing:
// ErrSimulatorNotFound when no such slug exists, ErrLoginRequired when the
// simulator is private and the caller is anonymous, ErrAccessDenied when the
// caller is signed in but holds no grant. The returned summary carries the
// question count shown on the detail page.
func (s *CatalogService) GetSimulator(ctx context.Context, userID *uuid.UUID, slug string) (*model.SimulatorSummary, error) {
	sim, err := s.simulatorRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSimulatorNotFound
		}
		return nil, fmt.Errorf("get simulator: %w", err)
	}

	if !sim.Public {
		if userID == nil {
			return nil, ErrLoginRequired
		}
		granted, err := s.accessRepo.HasAccess(ctx, *userID, sim.ID)
		if err != nil {
			return nil, fmt.Errorf("check access: %w", err)
		}
		if !granted {
			return nil, ErrAccessDenied
		}
	}

	count, err := s.questionRepo.CountBySimulator(ctx, sim.ID)
	if err != nil {
		return nil, fmt.Errorf("count questions: %w", err)
	}
	return &model.SimulatorSummary{Simulator: *sim, QuestionCount: count}, nil
}

// MyCourses lists the private simulators the caller has been granted.
func (s *CatalogService) MyCourses(ctx context.Context, userID uuid.UUID) ([]model.Simulator, error) {
	ids, err := s.accessRepo.ListSimulatorIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list grants: %w", err)
	}
	if len(ids) == 0 {
		return []model.Simulator{}, nil
	}
	return s.simulatorRepo.ListByIDs(ctx, ids)
}

// Sitemap returns slug and creation time of every public simulator. The list
// changes rarely and is fetched by crawlers, so it is cached in Redis.
func (s *CatalogService) Sitemap(ctx context.Context) ([]model.SitemapEntry, error) {
	key := config.CacheKey.PublicSlugsKey()

	cached, err := s.rdb.Get(ctx, key).Result()
	if err == nil {
		var entries []model.SitemapEntry
		if err := json.Unmarshal([]byte(cached), &entries); err == nil {
			return entries, nil
		}
		// Corrupt cache entry: fall through to the database.
		s.rdb.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		log.Warn().Err(err).Msg("Sitemap cache read failed, serving from database")
	}

	entries, err := s.simulatorRepo.ListPublicSlugs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list public slugs: %w", err)
	}
	if entries == nil {
		entries = []model.SitemapEntry{}
	}

	if data, err := json.Marshal(entries); err == nil {
		if err := s.rdb.Set(ctx, key, data, sitemapCacheTTL).Err(); err != nil {
			log.Warn().Err(err).Msg("Sitemap cache write failed")
		}
	}
	return entries, nil
}

// InvalidateSitemap drops the cached sitemap after catalog mutations.
func (s *CatalogService) InvalidateSitemap(ctx context.Context) {
	if err := s.rdb.Del(ctx, config.CacheKey.PublicSlugsKey()).Err(); err != nil {
		log.Warn().Err(err).Msg("Sitemap cache invalidation failed")
	}
}
