package models

import "time"

// KnowledgeItem is a stored (question, answer) pair, the atomic unit of
// retrievable knowledge. The (domain_id, question) pair is unique; upserting
// the same question replaces the prior answer.
type KnowledgeItem struct {
	ID         int64      `db:"id"`
	DomainID   int64      `db:"domain_id"`
	Question   string     `db:"question"`
	Answer     string     `db:"answer"`
	Keywords   string     `db:"keywords"` // space-separated, feeds text search only
	Confidence float64    `db:"confidence"`
	UsageCount int64      `db:"usage_count"`
	LastUsed   *time.Time `db:"last_used"`
	Embedding  []float32  `db:"embedding"` // reserved for dense-vector deployments
	Verified   bool       `db:"verified"`
	CreatedAt  time.Time  `db:"created_at"`
}

// SearchMatch is a text-search hit annotated with its domain name.
type SearchMatch struct {
	Domain     string  `db:"domain"`
	Question   string  `db:"question"`
	Answer     string  `db:"answer"`
	Keywords   string  `db:"keywords"`
	Confidence float64 `db:"confidence"`
}
