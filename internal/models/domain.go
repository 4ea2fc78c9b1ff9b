package models

import "time"

// Domain is a named partition of the knowledge base with its own
// independent similarity index. Names are unique and immutable.
type Domain struct {
	ID          int64     `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
}

// DomainStats aggregates per-domain usage of the knowledge base.
type DomainStats struct {
	Name           string     `db:"name"`
	Description    string     `db:"description"`
	KnowledgeCount int64      `db:"knowledge_count"`
	TotalUsage     int64      `db:"total_usage"`
	LastUsed       *time.Time `db:"last_used"`
}
