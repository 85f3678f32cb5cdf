package models

import (
	"time"

	"github.com/google/uuid"
)

// Note represents a free-form note. Summary is filled in by the AI
// summarizer and is empty until a summary has been requested.
type Note struct {
	ID        uuid.UUID `json:"id"`
	Content   string    `json:"content"`
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
