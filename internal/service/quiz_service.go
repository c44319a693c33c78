package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/ecuaforma/simulador-backend/internal/config"
	"github.com/ecuaforma/simulador-backend/internal/model"
	"github.com/ecuaforma/simulador-backend/internal/quiz"
	"github.com/ecuaforma/simulador-backend/internal/video"
)

// ErrSessionNotFound is returned when a session id is unknown or expired.
var ErrSessionNotFound = errors.New("quiz session not found")

// QuestionView is the client-facing projection of the current question. It
// carries no answer copy and no feedback; those surface only through the
// verification reveal.
type QuestionView struct {
	Index          int            `json:"index"`
	Total          int            `json:"total"`
	Prompt         string         `json:"pregunta"`
	PromptImageURL *string        `json:"pregunta_img_url,omitempty"`
	Options        []model.Option `json:"opciones"`
	Selected       *model.Option  `json:"seleccion,omitempty"`
}

// SessionView is the client-facing projection of a session.
type SessionView struct {
	SessionID uuid.UUID     `json:"session_id"`
	State     quiz.State    `json:"state"`
	Question  *QuestionView `json:"pregunta,omitempty"`
	Summary   *quiz.Summary `json:"resumen,omitempty"`
}

// RevealView is the verification outcome shown after locking an answer.
type RevealView struct {
	Outcome          quiz.Outcome  `json:"resultado"`
	Correct          model.Option  `json:"respuesta"`
	Feedback         *string       `json:"feedback,omitempty"`
	VideoURL         *string       `json:"youtube_url,omitempty"`
	VideoThumbnail   *string       `json:"youtube_thumbnail,omitempty"`
	Question         *QuestionView `json:"pregunta"`
}

// QuizService drives quiz attempts. Session state lives in Redis under a
// TTL; a session that goes idle past the TTL simply disappears.
type QuizService struct {
	cfg           *config.Config
	rdb           *redis.Client
	catalog       *CatalogService
	questionSvc   *QuestionService
}

// NewQuizService creates a new QuizService.
func NewQuizService(cfg *config.Config, rdb *redis.Client, catalog *CatalogService, questionSvc *QuestionService) *QuizService {
	return &QuizService{cfg: cfg, rdb: rdb, catalog: catalog, questionSvc: questionSvc}
}

// Start resolves the simulator by slug (honoring visibility for the caller),
// loads its questions and opens a fresh session.
func (s *QuizService) Start(ctx context.Context, userID *uuid.UUID, email *string, slug string) (*SessionView, error) {
	sim, err := s.catalog.GetSimulator(ctx, userID, slug)
	if err != nil {
		return nil, err
	}

	questions, err := s.questionSvc.List(ctx, sim.ID)
	if err != nil {
		return nil, err
	}

	session, err := quiz.New(sim.ID, userID, email, questions)
	if err != nil {
		return nil, err
	}

	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	log.Info().
		Str("session_id", session.ID.String()).
		Str("simulator_id", sim.ID.String()).
		Int("questions", len(questions)).
		Msg("Quiz session started")

	return s.view(session, nil), nil
}

// Get returns the current state of a session.
func (s *QuizService) Get(ctx context.Context, sessionID uuid.UUID) (*SessionView, error) {
	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.view(session, nil), nil
}

// Select records a tentative choice for the current question.
func (s *QuizService) Select(ctx context.Context, sessionID uuid.UUID, opt model.Option) (*SessionView, error) {
	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := session.Select(opt); err != nil {
		return nil, err
	}
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	return s.view(session, nil), nil
}

// Verify locks the tentative choice and reveals the outcome together with
// the correct option, feedback and the explanation video when present.
func (s *QuizService) Verify(ctx context.Context, sessionID uuid.UUID) (*RevealView, error) {
	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	outcome, err := session.Verify()
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	q := session.Current()
	reveal := &RevealView{
		Outcome:  outcome,
		Correct:  q.Answer,
		Feedback: q.Feedback,
		VideoURL: q.YouTubeURL,
		Question: s.questionView(session),
	}
	if q.YouTubeURL != nil {
		if thumb := video.YouTubeThumbnail(*q.YouTubeURL); thumb != "" {
			reveal.VideoThumbnail = &thumb
		}
	}
	return reveal, nil
}

// Advance moves to the next question or, after the last one, finalizes the
// attempt: the summary is computed, the session is stored as completed and
// the result is queued for persistence when the caller is signed in.
func (s *QuizService) Advance(ctx context.Context, sessionID uuid.UUID) (*SessionView, error) {
	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	summary, err := session.Advance()
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	if summary != nil {
		s.enqueueResult(ctx, session, summary)
	}
	return s.view(session, summary), nil
}

// Restart reopens a completed session from the first question with fresh
// option shuffles.
func (s *QuizService) Restart(ctx context.Context, sessionID uuid.UUID) (*SessionView, error) {
	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := session.Restart(); err != nil {
		return nil, err
	}
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	return s.view(session, nil), nil
}

// enqueueResult hands the scored attempt to the persistence worker.
// Anonymous attempts are scored but never recorded; a queue failure is
// logged and swallowed so the caller still sees their summary.
func (s *QuizService) enqueueResult(ctx context.Context, session *quiz.Session, summary *quiz.Summary) {
	if session.UserID == nil {
		return
	}

	simID := session.SimulatorID
	result := model.Result{
		SimulatorID: &simID,
		UserID:      session.UserID,
		Email:       session.Email,
		Score:       summary.Score,
		Correct:     summary.Correct,
		Total:       summary.Total,
		CreatedAt:   time.Now().UTC(),
	}

	payload, err := json.Marshal(result)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal quiz result")
		return
	}
	if err := s.rdb.LPush(ctx, config.WorkerKey.PersistResultsQueue, payload).Err(); err != nil {
		log.Error().Err(err).
			Str("session_id", session.ID.String()).
			Msg("Failed to enqueue quiz result, attempt will be missing from history")
	}
}

func (s *QuizService) load(ctx context.Context, sessionID uuid.UUID) (*quiz.Session, error) {
	data, err := s.rdb.Get(ctx, config.CacheKey.QuizSessionKey(sessionID.String())).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	var session quiz.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &session, nil
}

// save writes the session back and refreshes its TTL, so an active attempt
// never expires mid-quiz.
func (s *QuizService) save(ctx context.Context, session *quiz.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	key := config.CacheKey.QuizSessionKey(session.ID.String())
	if err := s.rdb.Set(ctx, key, data, s.cfg.QuizSessionTTL).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

func (s *QuizService) view(session *quiz.Session, summary *quiz.Summary) *SessionView {
	v := &SessionView{
		SessionID: session.ID,
		State:     session.State,
	}
	if session.State == quiz.StateCompleted {
		if summary == nil {
			sum := session.Finalize()
			summary = &sum
		}
		v.Summary = summary
		return v
	}
	v.Question = s.questionView(session)
	return v
}

func (s *QuizService) questionView(session *quiz.Session) *QuestionView {
	q := session.Current()
	return &QuestionView{
		Index:          session.Index,
		Total:          len(session.Questions),
		Prompt:         q.Prompt,
		PromptImageURL: q.PromptImageURL,
		Options:        q.Options,
		Selected:       session.Tentative,
	}
}
