// Package quiz implements the state machine driving one simulator attempt:
// Presenting(i) → Verified(i, outcome) → Presenting(i+1) … → Completed.
// Sessions are pure in-memory values; the service layer owns persistence.
package quiz

import (
	"errors"
	"math"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/ecuaforma/simulador-backend/internal/model"
)

// State is the coarse session state.
type State string

const (
	StatePresenting State = "PRESENTING"
	StateVerified   State = "VERIFIED"
	StateCompleted  State = "COMPLETED"
)

// Outcome of verifying one answer.
type Outcome string

const (
	OutcomeCorrect   Outcome = "correct"
	OutcomeIncorrect Outcome = "incorrect"
)

var (
	ErrNoQuestions   = errors.New("simulator has no questions")
	ErrNoSelection   = errors.New("no option selected")
	ErrUnknownOption = errors.New("selected option does not belong to the question")
	ErrNotVerified   = errors.New("current question has not been verified")
	ErrCompleted     = errors.New("session is already completed")
	ErrNotCompleted  = errors.New("session is not completed")
)

// Session is one attempt at a simulator. Questions hold independently
// shuffled option lists; Answers records the locked-in choice per index.
// The whole value serializes to JSON for the Redis session store — it never
// reaches a client as-is, so carrying the answer copies is safe.
type Session struct {
	ID          uuid.UUID        `json:"id"`
	SimulatorID uuid.UUID        `json:"simulador_id"`
	UserID      *uuid.UUID       `json:"usuario_id,omitempty"`
	Email       *string          `json:"email,omitempty"`
	Questions   []model.Question `json:"questions"`
	Index       int              `json:"index"`
	State       State            `json:"state"`
	Tentative   *model.Option    `json:"tentative,omitempty"`
	Answers     []*model.Option  `json:"answers"`
	StartedAt   time.Time        `json:"started_at"`
}

// Summary is the outcome of a finalized session. Score is rounded to the
// nearest integer for persistence; ScoreExact keeps the unrounded value for
// display.
type Summary struct {
	Correct    int     `json:"aciertos"`
	Total      int     `json:"total_preguntas"`
	Score      int     `json:"puntaje"`
	ScoreExact float64 `json:"puntaje_exacto"`
}

// New starts a session over the given questions. Each question's options are
// shuffled independently; question order is preserved. The caller passes
// questions already sorted by their order value.
func New(simulatorID uuid.UUID, userID *uuid.UUID, email *string, questions []model.Question) (*Session, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	s := &Session{
		ID:          uuid.New(),
		SimulatorID: simulatorID,
		UserID:      userID,
		Email:       email,
		Questions:   make([]model.Question, len(questions)),
		State:       StatePresenting,
		Answers:     make([]*model.Option, len(questions)),
		StartedAt:   time.Now().UTC(),
	}
	copy(s.Questions, questions)
	s.shuffleOptions()
	return s, nil
}

// shuffleOptions replaces each question's option slice with a fresh shuffled
// copy. The denormalized answer copy travels with the question, so
// correctness never depends on option position.
func (s *Session) shuffleOptions() {
	for i := range s.Questions {
		opts := make([]model.Option, len(s.Questions[i].Options))
		copy(opts, s.Questions[i].Options)
		rand.Shuffle(len(opts), func(a, b int) {
			opts[a], opts[b] = opts[b], opts[a]
		})
		s.Questions[i].Options = opts
	}
}

// Current returns the question being presented or verified.
func (s *Session) Current() *model.Question {
	return &s.Questions[s.Index]
}

// Select records a tentative choice for the current question. Once the
// question is verified the answer is locked and further selections are
// silently ignored.
func (s *Session) Select(opt model.Option) error {
	switch s.State {
	case StateCompleted:
		return ErrCompleted
	case StateVerified:
		return nil // answer locked; deliberate no-op
	}

	q := s.Current()
	found := false
	for _, o := range q.Options {
		if o.Value == opt.Value {
			opt = o // adopt the stored kind for the matched value
			found = true
			break
		}
	}
	if !found {
		return ErrUnknownOption
	}

	s.Tentative = &opt
	return nil
}

// Verify locks the tentative choice as the recorded answer for the current
// question and reveals the outcome. Correctness is value equality against
// the stored answer copy, independent of post-shuffle position. If two
// options ever shared a value the outcome would be decided by the stored
// copy alone; creation-side validation rejects such questions.
func (s *Session) Verify() (Outcome, error) {
	switch s.State {
	case StateCompleted:
		return "", ErrCompleted
	case StateVerified:
		return s.outcomeAt(s.Index), nil
	}
	if s.Tentative == nil {
		return "", ErrNoSelection
	}

	s.Answers[s.Index] = s.Tentative
	s.State = StateVerified

	return s.outcomeAt(s.Index), nil
}

// Advance moves to the next question, or finalizes the session when the
// verified question was the last one. The summary is non-nil only on
// completion.
func (s *Session) Advance() (*Summary, error) {
	switch s.State {
	case StateCompleted:
		return nil, ErrCompleted
	case StatePresenting:
		return nil, ErrNotVerified
	}

	s.Tentative = nil
	if s.Index+1 < len(s.Questions) {
		s.Index++
		s.State = StatePresenting
		return nil, nil
	}

	sum := s.Finalize()
	return &sum, nil
}

// Finalize scores the session and transitions to Completed. An unverified
// tentative choice on the current question is recorded as-is first — not
// reachable through the normal flow, but guarded defensively.
func (s *Session) Finalize() Summary {
	if s.State != StateCompleted {
		if s.Tentative != nil && s.Answers[s.Index] == nil {
			s.Answers[s.Index] = s.Tentative
		}
		s.State = StateCompleted
		s.Tentative = nil
	}

	total := len(s.Questions)
	correct := 0
	for i := range s.Questions {
		if s.Answers[i] != nil && s.Answers[i].Value == s.Questions[i].Answer.Value {
			correct++
		}
	}

	exact := float64(correct) / float64(total) * 100
	return Summary{
		Correct:    correct,
		Total:      total,
		Score:      int(math.Round(exact)),
		ScoreExact: exact,
	}
}

// Restart reshuffles options fresh and returns to the first question with
// all recorded answers cleared. The question set is the originally loaded
// one; no new fetch happens.
func (s *Session) Restart() error {
	if s.State != StateCompleted {
		return ErrNotCompleted
	}

	s.Index = 0
	s.State = StatePresenting
	s.Tentative = nil
	s.Answers = make([]*model.Option, len(s.Questions))
	s.shuffleOptions()
	return nil
}

func (s *Session) outcomeAt(i int) Outcome {
	if s.Answers[i] != nil && s.Answers[i].Value == s.Questions[i].Answer.Value {
		return OutcomeCorrect
	}
	return OutcomeIncorrect
}
