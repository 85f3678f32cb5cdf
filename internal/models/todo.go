package models

import (
	"time"

	"github.com/google/uuid"
)

// Todo represents a one-time task.
type Todo struct {
	ID        uuid.UUID `json:"id"`
	Text      string    `json:"text"`
	Done      bool      `json:"done"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
