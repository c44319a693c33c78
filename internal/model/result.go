package model

import (
	"time"

	"github.com/google/uuid"
)

// Result is one persisted attempt outcome ("resultado"). Insert-only: the
// application never mutates or deletes rows. SimulatorID is nullable because
// history outlives simulator deletion.
type Result struct {
	ID          int64      `json:"id"`
	SimulatorID *uuid.UUID `json:"simulador_id"`
	UserID      *uuid.UUID `json:"usuario_id,omitempty"`
	Email       *string    `json:"email,omitempty"`
	Score       int        `json:"puntaje"`
	Correct     int        `json:"aciertos"`
	Total       int        `json:"total_preguntas"`
	CreatedAt   time.Time  `json:"created_at"`
}

// HistoryEntry is a result joined with its simulator for the attempt-history
// view. Simulator is nil when the simulator has since been deleted.
type HistoryEntry struct {
	ID        int64         `json:"id"`
	Score     int           `json:"puntaje"`
	Correct   int           `json:"aciertos"`
	Total     int           `json:"total_preguntas"`
	CreatedAt time.Time     `json:"created_at"`
	Simulator *SimulatorRef `json:"simulador"`
}
