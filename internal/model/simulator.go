package model

import (
	"time"

	"github.com/google/uuid"
)

// Simulator represents one practice exam definition ("simulador").
// The taxonomy fields are free text entered by the administrator.
type Simulator struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"nombre"`
	Slug        string    `json:"slug"`
	Institution string    `json:"institucion"`
	Category    string    `json:"categoria"`
	Subject     string    `json:"materia"`
	Public      bool      `json:"publico"`
	CreatedAt   time.Time `json:"created_at"`
}

// SimulatorSummary is a simulator row with its question count, as shown on
// the admin dashboard.
type SimulatorSummary struct {
	Simulator
	QuestionCount int `json:"total_preguntas"`
}

// SimulatorRef is the subset of simulator fields embedded in history entries.
type SimulatorRef struct {
	Name        string `json:"nombre"`
	Slug        string `json:"slug"`
	Institution string `json:"institucion"`
	Category    string `json:"categoria"`
}

// SitemapEntry is one public simulator reference for the sitemap feed.
type SitemapEntry struct {
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateSimulatorRequest is the payload for creating a new simulator.
// The slug is derived server-side from the name, once, at creation time.
type CreateSimulatorRequest struct {
	Name        string `json:"nombre" binding:"required,min=3,max=255"`
	Institution string `json:"institucion" binding:"required,min=2,max=120"`
	Category    string `json:"categoria" binding:"required,min=2,max=120"`
	Subject     string `json:"materia" binding:"required,min=2,max=120"`
	// Public defaults to true when omitted, matching the creation form.
	Public *bool `json:"publico" binding:"omitempty"`
}
