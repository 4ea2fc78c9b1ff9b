package service

import (
	"context"

	"askhub/internal/models"

	"github.com/google/uuid"
)

// Storage interfaces implemented by internal/repository. Services depend on
// these rather than concrete repositories so the retrieval logic can be
// exercised against in-memory fakes.

type DomainStore interface {
	Create(ctx context.Context, name, description string) (bool, error)
	GetByName(ctx context.Context, name string) (*models.Domain, error)
	List(ctx context.Context) ([]*models.Domain, error)
	Stats(ctx context.Context) ([]*models.DomainStats, error)
}

type KnowledgeStore interface {
	Upsert(ctx context.Context, domainID int64, item *models.KnowledgeItem) error
	ListByDomain(ctx context.Context, domain string) ([]*models.KnowledgeItem, error)
	RecordUsage(ctx context.Context, domain, question string) error
	SearchText(ctx context.Context, queryText, domain string, limit int) ([]*models.SearchMatch, error)
}

type SubmissionStore interface {
	Create(ctx context.Context, sub *models.Submission) error
	List(ctx context.Context) ([]*models.Submission, error)
	Delete(ctx context.Context, id int64) error
	// Promote removes the submission from staging and upserts the item into
	// the knowledge base as one atomic operation.
	Promote(ctx context.Context, id int64, domainID int64, item *models.KnowledgeItem) error
}

type ConversationLog interface {
	Append(ctx context.Context, conv *models.Conversation) error
}

type ReviewerStore interface {
	Create(ctx context.Context, reviewer *models.Reviewer) error
	GetByEmail(ctx context.Context, email string) (*models.Reviewer, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Reviewer, error)
}
