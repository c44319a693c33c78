package service

import (
	"testing"

	"github.com/ecuaforma/simulador-backend/internal/model"
	"github.com/ecuaforma/simulador-backend/internal/repository"
)

func questionList(ids ...int64) []model.Question {
	out := make([]model.Question, len(ids))
	for i, id := range ids {
		out[i] = model.Question{ID: id, Order: i + 1}
	}
	return out
}

func TestRelocateMovesLastToFront(t *testing.T) {
	questions := questionList(10, 20, 30)

	updates := relocate(questions, 2, 1)
	if len(updates) != 3 {
		t.Fatalf("expected 3 updates, got %d", len(updates))
	}

	want := []repository.OrderUpdate{
		{ID: 30, Order: 1},
		{ID: 10, Order: 2},
		{ID: 20, Order: 3},
	}
	for i, u := range updates {
		if u != want[i] {
			t.Errorf("update %d = %+v, want %+v", i, u, want[i])
		}
	}
}

func TestRelocateOutOfRangeIsNoop(t *testing.T) {
	questions := questionList(10, 20, 30)

	for _, position := range []int{0, -1, 4, 100} {
		if updates := relocate(questions, 1, position); updates != nil {
			t.Errorf("position %d: expected no-op, got %d updates", position, len(updates))
		}
	}
}

func TestRelocateSamePositionIsNoop(t *testing.T) {
	questions := questionList(10, 20, 30)

	if updates := relocate(questions, 1, 2); updates != nil {
		t.Errorf("expected no-op, got %d updates", len(updates))
	}
}

func TestRelocateSingleStepDown(t *testing.T) {
	questions := questionList(10, 20, 30, 40)

	updates := relocate(questions, 1, 3)

	want := []repository.OrderUpdate{
		{ID: 10, Order: 1},
		{ID: 30, Order: 2},
		{ID: 20, Order: 3},
		{ID: 40, Order: 4},
	}
	for i, u := range updates {
		if u != want[i] {
			t.Errorf("update %d = %+v, want %+v", i, u, want[i])
		}
	}
}

// Any valid move must assign the order values {1..N} bijectively over the
// same question ids, no matter where the item lands.
func TestRelocateIsPermutation(t *testing.T) {
	questions := questionList(7, 3, 99, 12, 5)
	n := len(questions)

	for current := 0; current < n; current++ {
		for position := 1; position <= n; position++ {
			updates := relocate(questions, current, position)
			if position-1 == current {
				if updates != nil {
					t.Errorf("current %d position %d: expected no-op", current, position)
				}
				continue
			}

			if len(updates) != n {
				t.Fatalf("current %d position %d: got %d updates, want %d", current, position, len(updates), n)
			}

			seenIDs := make(map[int64]bool, n)
			seenOrders := make(map[int]bool, n)
			for _, u := range updates {
				if seenIDs[u.ID] {
					t.Errorf("current %d position %d: duplicate id %d", current, position, u.ID)
				}
				seenIDs[u.ID] = true
				if u.Order < 1 || u.Order > n || seenOrders[u.Order] {
					t.Errorf("current %d position %d: bad order %d", current, position, u.Order)
				}
				seenOrders[u.Order] = true

				if u.ID == questions[current].ID && u.Order != position {
					t.Errorf("current %d position %d: moved item got order %d", current, position, u.Order)
				}
			}
			for _, q := range questions {
				if !seenIDs[q.ID] {
					t.Errorf("current %d position %d: id %d missing from updates", current, position, q.ID)
				}
			}
		}
	}
}

// Moves heal legacy gaps and duplicates: whatever the stored order values
// were, the committed set is densely renumbered from 1.
func TestRelocateRenumbersDensely(t *testing.T) {
	questions := []model.Question{
		{ID: 1, Order: 2},
		{ID: 2, Order: 2},
		{ID: 3, Order: 9},
	}

	updates := relocate(questions, 0, 3)

	want := []repository.OrderUpdate{
		{ID: 2, Order: 1},
		{ID: 3, Order: 2},
		{ID: 1, Order: 3},
	}
	for i, u := range updates {
		if u != want[i] {
			t.Errorf("update %d = %+v, want %+v", i, u, want[i])
		}
	}
}
