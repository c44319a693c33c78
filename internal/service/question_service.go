package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	"github.com/ecuaforma/simulador-backend/internal/model"
	"github.com/ecuaforma/simulador-backend/internal/repository"
)

var (
	// ErrQuestionNotFound is returned when a question id does not exist or
	// belongs to a different simulator.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrDuplicateOption is returned when two options of one question share
	// the same value. Answer checking compares values, so duplicates would
	// make correctness ambiguous.
	ErrDuplicateOption = errors.New("duplicate option value")
)

// optionLabels maps the payload's correct-answer letter to an option index.
var optionLabels = map[string]int{"A": 0, "B": 1, "C": 2, "D": 3}

// QuestionService handles the admin side of the question bank: create,
// delete, list and reorder.
type QuestionService struct {
	questionRepo  *repository.QuestionRepository
	simulatorRepo *repository.SimulatorRepository
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(questionRepo *repository.QuestionRepository, simulatorRepo *repository.SimulatorRepository) *QuestionService {
	return &QuestionService{questionRepo: questionRepo, simulatorRepo: simulatorRepo}
}

// List returns the simulator's questions in display order.
func (s *QuestionService) List(ctx context.Context, simulatorID uuid.UUID) ([]model.Question, error) {
	if err := s.ensureSimulator(ctx, simulatorID); err != nil {
		return nil, err
	}
	questions, err := s.questionRepo.ListBySimulator(ctx, simulatorID)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	if questions == nil {
		questions = []model.Question{}
	}
	return questions, nil
}

// Create adds a question to a simulator. When no explicit order is given the
// question is appended after the current set. The append position is read
// with a count query, not a lock; two concurrent creates can land on the
// same order value, which list ordering tolerates via the id tiebreak.
func (s *QuestionService) Create(ctx context.Context, simulatorID uuid.UUID, req *model.CreateQuestionRequest) (*model.Question, error) {
	if err := s.ensureSimulator(ctx, simulatorID); err != nil {
		return nil, err
	}

	options := make([]model.Option, len(req.Options))
	seen := make(map[string]struct{}, len(req.Options))
	for i, in := range req.Options {
		value := strings.TrimSpace(in.Value)
		if _, dup := seen[value]; dup {
			return nil, ErrDuplicateOption
		}
		seen[value] = struct{}{}
		options[i] = model.Option{Kind: model.OptionKind(in.Kind), Value: value}
	}

	order := req.Order
	if order == 0 {
		count, err := s.questionRepo.CountBySimulator(ctx, simulatorID)
		if err != nil {
			return nil, fmt.Errorf("count questions: %w", err)
		}
		order = count + 1
	}

	q := &model.Question{
		SimulatorID: simulatorID,
		Prompt:      req.Prompt,
		Options:     options,
		Answer:      options[optionLabels[req.Correct]],
		Order:       order,
	}
	if req.PromptImageURL != "" {
		q.PromptImageURL = &req.PromptImageURL
	}
	if req.Feedback != "" {
		q.Feedback = &req.Feedback
	}
	if req.YouTubeURL != "" {
		q.YouTubeURL = &req.YouTubeURL
	}

	if err := s.questionRepo.Create(ctx, q); err != nil {
		return nil, fmt.Errorf("create question: %w", err)
	}

	log.Info().Int64("question_id", q.ID).Str("simulator_id", simulatorID.String()).Msg("Question created")
	return q, nil
}

// Delete removes one question. Order values of the remaining questions are
// left untouched; downstream ordering tolerates gaps.
func (s *QuestionService) Delete(ctx context.Context, simulatorID uuid.UUID, questionID int64) error {
	q, err := s.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrQuestionNotFound
		}
		return fmt.Errorf("get question: %w", err)
	}
	if q.SimulatorID != simulatorID {
		return ErrQuestionNotFound
	}

	affected, err := s.questionRepo.Delete(ctx, questionID)
	if err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	if affected == 0 {
		return ErrQuestionNotFound
	}
	return nil
}

// Move relocates one question to a 1-based display position and renumbers
// the whole set densely. Out-of-range targets and moves to the current
// position change nothing. The bulk write is not transactional across the
// list, so the returned list is reloaded from the store rather than trusted
// from memory.
func (s *QuestionService) Move(ctx context.Context, simulatorID uuid.UUID, questionID int64, position int) ([]model.Question, error) {
	questions, err := s.List(ctx, simulatorID)
	if err != nil {
		return nil, err
	}

	current := -1
	for i, q := range questions {
		if q.ID == questionID {
			current = i
			break
		}
	}
	if current == -1 {
		return nil, ErrQuestionNotFound
	}

	updates := relocate(questions, current, position)
	if len(updates) == 0 {
		return questions, nil
	}

	if err := s.questionRepo.BulkUpdateOrder(ctx, updates); err != nil {
		return nil, fmt.Errorf("persist order: %w", err)
	}

	reloaded, err := s.questionRepo.ListBySimulator(ctx, simulatorID)
	if err != nil {
		return nil, fmt.Errorf("reload questions: %w", err)
	}
	return reloaded, nil
}

// relocate computes the dense renumbering that moves questions[current] to
// the 1-based target position. It returns nil when the move is out of range
// or a no-op. Every question gets a fresh order = index + 1 so that legacy
// gaps and duplicates heal on the first move.
func relocate(questions []model.Question, current, position int) []repository.OrderUpdate {
	n := len(questions)
	if position < 1 || position > n {
		return nil
	}
	target := position - 1
	if target == current {
		return nil
	}

	reordered := make([]model.Question, 0, n)
	reordered = append(reordered, questions[:current]...)
	reordered = append(reordered, questions[current+1:]...)
	reordered = append(reordered[:target], append([]model.Question{questions[current]}, reordered[target:]...)...)

	updates := make([]repository.OrderUpdate, n)
	for i, q := range reordered {
		updates[i] = repository.OrderUpdate{ID: q.ID, Order: i + 1}
	}
	return updates
}

func (s *QuestionService) ensureSimulator(ctx context.Context, simulatorID uuid.UUID) error {
	if _, err := s.simulatorRepo.GetByID(ctx, simulatorID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrSimulatorNotFound
		}
		return fmt.Errorf("get simulator: %w", err)
	}
	return nil
}
