package quiz

import (
	"fmt"
	"sort"
	"testing"

	"github.com/google/uuid"

	"github.com/ecuaforma/simulador-backend/internal/model"
)

func makeQuestions(n int) []model.Question {
	qs := make([]model.Question, n)
	for i := range qs {
		opts := []model.Option{
			{Kind: model.OptionKindText, Value: fmt.Sprintf("q%d-a", i)},
			{Kind: model.OptionKindText, Value: fmt.Sprintf("q%d-b", i)},
			{Kind: model.OptionKindText, Value: fmt.Sprintf("q%d-c", i)},
			{Kind: model.OptionKindText, Value: fmt.Sprintf("q%d-d", i)},
		}
		qs[i] = model.Question{
			ID:      int64(i + 1),
			Prompt:  fmt.Sprintf("pregunta %d", i+1),
			Options: opts,
			Answer:  opts[i%4],
			Order:   i + 1,
		}
	}
	return qs
}

func sortedValues(opts []model.Option) []string {
	vals := make([]string, len(opts))
	for i, o := range opts {
		vals[i] = o.Value
	}
	sort.Strings(vals)
	return vals
}

func TestNewShufflePreservesOptionSet(t *testing.T) {
	orig := makeQuestions(5)
	s, err := New(uuid.New(), nil, nil, orig)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for i := range orig {
		got := sortedValues(s.Questions[i].Options)
		want := sortedValues(orig[i].Options)
		if len(got) != len(want) {
			t.Fatalf("question %d: option count changed: %d != %d", i, len(got), len(want))
		}
		for j := range want {
			if got[j] != want[j] {
				t.Errorf("question %d: option multiset changed: %v != %v", i, got, want)
				break
			}
		}
		if s.Questions[i].Answer != orig[i].Answer {
			t.Errorf("question %d: answer copy mutated by shuffle", i)
		}
	}

	if s.Index != 0 || s.State != StatePresenting {
		t.Errorf("fresh session must present question 0, got index=%d state=%s", s.Index, s.State)
	}
}

func TestNewRejectsEmptyQuestionSet(t *testing.T) {
	if _, err := New(uuid.New(), nil, nil, nil); err != ErrNoQuestions {
		t.Fatalf("expected ErrNoQuestions, got %v", err)
	}
}

func TestSelectVerifyAdvanceFlow(t *testing.T) {
	qs := makeQuestions(2)
	s, _ := New(uuid.New(), nil, nil, qs)

	// Verifying with no selection fails.
	if _, err := s.Verify(); err != ErrNoSelection {
		t.Fatalf("expected ErrNoSelection, got %v", err)
	}

	// Advancing before verification fails.
	if _, err := s.Advance(); err != ErrNotVerified {
		t.Fatalf("expected ErrNotVerified, got %v", err)
	}

	// A value that is not one of the options is rejected.
	if err := s.Select(model.Option{Kind: model.OptionKindText, Value: "nope"}); err != ErrUnknownOption {
		t.Fatalf("expected ErrUnknownOption, got %v", err)
	}

	// Answer Q1 correctly.
	if err := s.Select(s.Questions[0].Answer); err != nil {
		t.Fatalf("select: %v", err)
	}
	out, err := s.Verify()
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if out != OutcomeCorrect {
		t.Fatalf("expected correct, got %s", out)
	}

	// Selection after verification is a locked no-op.
	wrong := wrongOption(s, 0)
	if err := s.Select(wrong); err != nil {
		t.Fatalf("post-verify select should be a silent no-op, got %v", err)
	}
	if s.Answers[0].Value != s.Questions[0].Answer.Value {
		t.Fatal("recorded answer changed after verification")
	}

	// Re-verifying returns the same outcome without error.
	if out, err := s.Verify(); err != nil || out != OutcomeCorrect {
		t.Fatalf("re-verify = (%s, %v)", out, err)
	}

	sum, err := s.Advance()
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if sum != nil {
		t.Fatal("advance mid-session must not finalize")
	}
	if s.Index != 1 || s.State != StatePresenting {
		t.Fatalf("expected Presenting(1), got %s(%d)", s.State, s.Index)
	}

	// Answer Q2 incorrectly and finish.
	if err := s.Select(wrongOption(s, 1)); err != nil {
		t.Fatalf("select: %v", err)
	}
	if out, _ := s.Verify(); out != OutcomeIncorrect {
		t.Fatalf("expected incorrect, got %s", out)
	}
	sum, err = s.Advance()
	if err != nil {
		t.Fatalf("final advance: %v", err)
	}
	if sum == nil {
		t.Fatal("advancing past the last question must finalize")
	}
	if sum.Correct != 1 || sum.Total != 2 || sum.Score != 50 {
		t.Fatalf("summary = %+v, want 1/2 = 50", sum)
	}
	if s.State != StateCompleted {
		t.Fatalf("expected Completed, got %s", s.State)
	}
}

func TestFinalizeRecordsUnverifiedTentative(t *testing.T) {
	qs := makeQuestions(1)
	s, _ := New(uuid.New(), nil, nil, qs)

	if err := s.Select(s.Questions[0].Answer); err != nil {
		t.Fatalf("select: %v", err)
	}

	// Finish without verifying: the tentative choice still counts.
	sum := s.Finalize()
	if sum.Correct != 1 || sum.Score != 100 {
		t.Fatalf("summary = %+v, want a recorded correct answer", sum)
	}
}

func TestScoreRounding(t *testing.T) {
	cases := []struct {
		total, correct, want int
	}{
		{3, 1, 33},
		{3, 2, 67},
		{6, 1, 17},
		{7, 5, 71},
		{4, 4, 100},
		{4, 0, 0},
	}

	for _, tc := range cases {
		qs := makeQuestions(tc.total)
		s, _ := New(uuid.New(), nil, nil, qs)
		for i := 0; i < tc.total; i++ {
			var pick model.Option
			if i < tc.correct {
				pick = s.Questions[i].Answer
			} else {
				pick = wrongOption(s, i)
			}
			if err := s.Select(pick); err != nil {
				t.Fatalf("select q%d: %v", i, err)
			}
			if _, err := s.Verify(); err != nil {
				t.Fatalf("verify q%d: %v", i, err)
			}
			if _, err := s.Advance(); err != nil {
				t.Fatalf("advance q%d: %v", i, err)
			}
		}

		sum := s.Finalize()
		if sum.Correct != tc.correct || sum.Score != tc.want {
			t.Errorf("%d/%d: got score %d (correct %d), want %d",
				tc.correct, tc.total, sum.Score, sum.Correct, tc.want)
		}
	}
}

func TestRestart(t *testing.T) {
	qs := makeQuestions(2)
	s, _ := New(uuid.New(), nil, nil, qs)

	if err := s.Restart(); err != ErrNotCompleted {
		t.Fatalf("restart before completion should fail, got %v", err)
	}

	for i := 0; i < 2; i++ {
		_ = s.Select(s.Questions[i].Answer)
		_, _ = s.Verify()
		_, _ = s.Advance()
	}
	if s.State != StateCompleted {
		t.Fatalf("expected Completed, got %s", s.State)
	}

	if err := s.Restart(); err != nil {
		t.Fatalf("restart: %v", err)
	}
	if s.Index != 0 || s.State != StatePresenting {
		t.Fatalf("expected Presenting(0), got %s(%d)", s.State, s.Index)
	}
	for i, a := range s.Answers {
		if a != nil {
			t.Errorf("answer %d not cleared by restart", i)
		}
	}
	// Question set unchanged, options still the same multiset.
	for i := range qs {
		got := sortedValues(s.Questions[i].Options)
		want := sortedValues(qs[i].Options)
		for j := range want {
			if got[j] != want[j] {
				t.Fatalf("question %d options diverged after restart: %v != %v", i, got, want)
			}
		}
	}
}

// wrongOption returns an option of question i that is not its answer.
func wrongOption(s *Session, i int) model.Option {
	for _, o := range s.Questions[i].Options {
		if o.Value != s.Questions[i].Answer.Value {
			return o
		}
	}
	panic("question has no incorrect option")
}
