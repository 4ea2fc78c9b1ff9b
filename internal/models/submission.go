package models

import "time"

// Submission is a candidate knowledge item in the unverified staging area.
// It lives in staging until a reviewer verifies (promoting it into the
// knowledge base) or rejects it; it never exists in both places at once.
type Submission struct {
	ID          int64     `db:"id"`
	Domain      string    `db:"domain"`
	Question    string    `db:"question"`
	Answer      string    `db:"answer"`
	Keywords    string    `db:"keywords"`
	Language    string    `db:"language"`
	SubmittedBy string    `db:"submitted_by"`
	Verified    bool      `db:"verified"`
	CreatedAt   time.Time `db:"created_at"`
}
