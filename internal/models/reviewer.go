package models

import (
	"time"

	"github.com/google/uuid"
)

// Reviewer is an account allowed to verify or reject staged submissions
// and to mutate the committed knowledge base.
type Reviewer struct {
	ID        uuid.UUID `db:"id"`
	Username  string    `db:"username"`
	Email     string    `db:"email"`
	Password  string    `db:"password"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
