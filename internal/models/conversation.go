package models

import (
	"time"

	"github.com/google/uuid"
)

// Conversation is an append-only analytics record of one answered query.
// It is never mutated and never read back into the retrieval path.
type Conversation struct {
	ID           int64     `db:"id"`
	SessionID    uuid.UUID `db:"session_id"`
	Domain       string    `db:"domain"`
	Question     string    `db:"question"`
	Answer       string    `db:"answer"`
	ResponseTime float64   `db:"response_time"` // seconds
	CreatedAt    time.Time `db:"created_at"`
}
