package model

import (
	"github.com/google/uuid"
)

// OptionKind tags how an answer option is rendered and validated.
type OptionKind string

const (
	OptionKindText  OptionKind = "text"
	OptionKindImage OptionKind = "image"
)

// Option is one selectable answer: plain text (possibly containing math
// markup) or an image URL. Two options are the same answer iff their values
// are equal; the kind is presentation only.
type Option struct {
	Kind  OptionKind `json:"type"`
	Value string     `json:"value"`
}

// Question represents a single multiple-choice question ("pregunta").
// Answer holds a full copy of the correct option, not an index into Options;
// correctness checks compare option values.
type Question struct {
	ID             int64     `json:"id"`
	SimulatorID    uuid.UUID `json:"simulador_id"`
	Prompt         string    `json:"pregunta"`
	PromptImageURL *string   `json:"pregunta_img_url,omitempty"`
	Options        []Option  `json:"opciones"`
	Answer         Option    `json:"respuesta"`
	Feedback       *string   `json:"feedback,omitempty"`
	YouTubeURL     *string   `json:"youtube_url,omitempty"`
	Order          int       `json:"orden"`
}

// OptionInput is one option in a create-question payload.
type OptionInput struct {
	Kind  string `json:"type" binding:"required,oneof=text image"`
	Value string `json:"value" binding:"required,max=2000"`
}

// CreateQuestionRequest is the payload for adding a question to a simulator.
// Correct designates which of the four options is the answer. Order is
// optional; when omitted the question is appended after the current set.
type CreateQuestionRequest struct {
	Prompt         string        `json:"pregunta" binding:"required,min=1,max=4000"`
	PromptImageURL string        `json:"pregunta_img_url" binding:"omitempty,url"`
	Options        []OptionInput `json:"opciones" binding:"required,len=4,dive"`
	Correct        string        `json:"correcta" binding:"required,oneof=A B C D"`
	Feedback       string        `json:"feedback" binding:"omitempty,max=2000"`
	YouTubeURL     string        `json:"youtube_url" binding:"omitempty,url"`
	Order          int           `json:"orden" binding:"omitempty,min=1"`
}

// MoveQuestionRequest is the payload for moving a question to a 1-based
// display position.
type MoveQuestionRequest struct {
	Position int `json:"position" binding:"required,min=1"`
}
