package main

import (
	"context"
	"fmt"

	"github.com/ecuaforma/simulador-backend/internal/config"
	"github.com/ecuaforma/simulador-backend/internal/database"
	"github.com/ecuaforma/simulador-backend/internal/logger"
	"github.com/ecuaforma/simulador-backend/internal/model"
	"github.com/ecuaforma/simulador-backend/internal/repository"
	"github.com/ecuaforma/simulador-backend/internal/slug"
)

func text(v string) model.Option {
	return model.Option{Kind: model.OptionKindText, Value: v}
}

func strPtr(v string) *string {
	return &v
}

// seedQuestion bundles one demo question definition.
type seedQuestion struct {
	prompt   string
	options  []model.Option
	correct  int
	feedback string
	video    string
}

func main() {
	cfg := config.Load()
	log := logger.Setup("seed", cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	simulatorRepo := repository.NewSimulatorRepository(pool)
	questionRepo := repository.NewQuestionRepository(pool)

	name := "Matemáticas Fase 1 - Demostración"
	sim := &model.Simulator{
		Name:        name,
		Slug:        slug.Make(name),
		Institution: "ESPOL",
		Category:    "Admisión",
		Subject:     "Matemáticas",
		Public:      true,
	}

	if existing, err := simulatorRepo.GetBySlug(ctx, sim.Slug); err == nil {
		log.Info().Str("slug", existing.Slug).Msg("Demo simulator already seeded, nothing to do")
		return
	}

	if err := simulatorRepo.Create(ctx, sim); err != nil {
		log.Fatal().Err(err).Msg("Failed to create demo simulator")
	}

	questions := []seedQuestion{
		{
			prompt:   "¿Cuál es el resultado de 7 × 8?",
			options:  []model.Option{text("54"), text("56"), text("58"), text("64")},
			correct:  1,
			feedback: "Multiplica 7 por 8: 7 × 8 = 56.",
		},
		{
			prompt:   "Si x + 3 = 10, ¿cuánto vale x?",
			options:  []model.Option{text("3"), text("7"), text("10"), text("13")},
			correct:  1,
			feedback: "Resta 3 a ambos lados: x = 10 − 3 = 7.",
			video:    "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		},
		{
			prompt:   "¿Cuál es la raíz cuadrada de 144?",
			options:  []model.Option{text("10"), text("11"), text("12"), text("14")},
			correct:  2,
			feedback: "12 × 12 = 144.",
		},
	}

	for i, sq := range questions {
		q := &model.Question{
			SimulatorID: sim.ID,
			Prompt:      sq.prompt,
			Options:     sq.options,
			Answer:      sq.options[sq.correct],
			Order:       i + 1,
		}
		if sq.feedback != "" {
			q.Feedback = strPtr(sq.feedback)
		}
		if sq.video != "" {
			q.YouTubeURL = strPtr(sq.video)
		}
		if err := questionRepo.Create(ctx, q); err != nil {
			log.Fatal().Err(err).Int("index", i).Msg("Failed to create demo question")
		}
	}

	fmt.Printf("Seeded simulator '%s' (%s) with %d questions\n", sim.Name, sim.Slug, len(questions))
}
