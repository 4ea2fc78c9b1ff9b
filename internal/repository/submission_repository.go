package repository

import (
	"context"

	"askhub/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type SubmissionRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewSubmissionRepository(db *pgxpool.Pool, logger *zap.Logger) *SubmissionRepository {
	return &SubmissionRepository{
		db:     db,
		logger: logger,
	}
}

// Create appends a submission to the staging area. There is no uniqueness
// constraint across staged items; duplicates accumulate until reviewed.
func (r *SubmissionRepository) Create(ctx context.Context, sub *models.Submission) error {
	query := squirrel.Insert("submissions").
		Columns("domain", "question", "answer", "keywords", "language", "submitted_by", "verified").
		Values(sub.Domain, sub.Question, sub.Answer, sub.Keywords, sub.Language, sub.SubmittedBy, sub.Verified).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// List returns staged submissions in storage order.
func (r *SubmissionRepository) List(ctx context.Context) ([]*models.Submission, error) {
	query := squirrel.Select(
		"id", "domain", "question", "answer", "keywords",
		"language", "submitted_by", "verified", "created_at",
	).
		From("submissions").
		OrderBy("id ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []*models.Submission
	for rows.Next() {
		var sub models.Submission
		if err := rows.Scan(
			&sub.ID, &sub.Domain, &sub.Question, &sub.Answer, &sub.Keywords,
			&sub.Language, &sub.SubmittedBy, &sub.Verified, &sub.CreatedAt,
		); err != nil {
			return nil, err
		}
		subs = append(subs, &sub)
	}

	return subs, rows.Err()
}

// Promote deletes the submission from staging and upserts the item into
// knowledge_items inside a single transaction. Either both rows change or
// neither does: a storage failure leaves the submission staged, and the item
// never exists in staging and the knowledge base at the same time.
func (r *SubmissionRepository) Promote(ctx context.Context, id int64, domainID int64, item *models.KnowledgeItem) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	del := squirrel.Delete("submissions").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := del.ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		return err
	}

	ins := squirrel.Insert("knowledge_items").
		Columns("domain_id", "question", "answer", "keywords", "confidence", "verified").
		Values(domainID, item.Question, item.Answer, item.Keywords, item.Confidence, item.Verified).
		Suffix(`ON CONFLICT (domain_id, question) DO UPDATE SET
			answer = EXCLUDED.answer,
			keywords = EXCLUDED.keywords,
			confidence = EXCLUDED.confidence,
			verified = EXCLUDED.verified,
			last_used = NULL`).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err = ins.ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Delete removes a submission from staging.
func (r *SubmissionRepository) Delete(ctx context.Context, id int64) error {
	query := squirrel.Delete("submissions").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}
