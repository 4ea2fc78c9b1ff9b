package repository

import (
	"context"

	"askhub/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type KnowledgeRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewKnowledgeRepository(db *pgxpool.Pool, logger *zap.Logger) *KnowledgeRepository {
	return &KnowledgeRepository{
		db:     db,
		logger: logger,
	}
}

// Upsert inserts a knowledge item or, when the (domain_id, question) pair
// already exists, replaces its answer and keywords. usage_count is
// preserved for existing rows and starts at 0 for new ones; last_used is
// reset either way.
func (r *KnowledgeRepository) Upsert(ctx context.Context, domainID int64, item *models.KnowledgeItem) error {
	query := squirrel.Insert("knowledge_items").
		Columns("domain_id", "question", "answer", "keywords", "confidence", "verified").
		Values(domainID, item.Question, item.Answer, item.Keywords, item.Confidence, item.Verified).
		Suffix(`ON CONFLICT (domain_id, question) DO UPDATE SET
			answer = EXCLUDED.answer,
			keywords = EXCLUDED.keywords,
			confidence = EXCLUDED.confidence,
			verified = EXCLUDED.verified,
			last_used = NULL`).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// ListByDomain returns the domain's items ordered by descending usage_count,
// then descending confidence, so the most relied-upon answers come first.
// This ordering also fixes the index build order.
func (r *KnowledgeRepository) ListByDomain(ctx context.Context, domain string) ([]*models.KnowledgeItem, error) {
	query := squirrel.Select(
		"k.id", "k.domain_id", "k.question", "k.answer", "k.keywords",
		"k.confidence", "k.usage_count", "k.last_used", "k.embedding",
		"k.verified", "k.created_at",
	).
		From("knowledge_items k").
		Join("domains d ON k.domain_id = d.id").
		Where(squirrel.Eq{"d.name": domain}).
		OrderBy("k.usage_count DESC", "k.confidence DESC", "k.id ASC").
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

	var items []*models.KnowledgeItem
	for rows.Next() {
		var item models.KnowledgeItem
		var embedding pgtype.FlatArray[float32]

		if err := rows.Scan(
			&item.ID, &item.DomainID, &item.Question, &item.Answer, &item.Keywords,
			&item.Confidence, &item.UsageCount, &item.LastUsed, &embedding,
			&item.Verified, &item.CreatedAt,
		); err != nil {
			return nil, err
		}

		item.Embedding = []float32(embedding)
		items = append(items, &item)
	}

	return items, rows.Err()
}

// RecordUsage increments the item's usage counter and refreshes last_used.
// A missing row is a silent no-op: the item may have been replaced between
// match and update.
func (r *KnowledgeRepository) RecordUsage(ctx context.Context, domain, question string) error {
	query := squirrel.Update("knowledge_items").
		Set("usage_count", squirrel.Expr("usage_count + 1")).
		Set("last_used", squirrel.Expr("now()")).
		Where(squirrel.Eq{"question": question}).
		Where(squirrel.Expr("domain_id IN (SELECT id FROM domains WHERE name = ?)", domain)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// SearchText performs an ILIKE substring search across question, answer and
// keywords as the cheap fallback path independent of the vector index.
// An empty domain searches all domains.
func (r *KnowledgeRepository) SearchText(ctx context.Context, queryText, domain string, limit int) ([]*models.SearchMatch, error) {
	pattern := "%" + queryText + "%"

	query := squirrel.Select("d.name", "k.question", "k.answer", "k.keywords", "k.confidence").
		From("knowledge_items k").
		Join("domains d ON k.domain_id = d.id").
		Where(squirrel.Or{
			squirrel.ILike{"k.question": pattern},
			squirrel.ILike{"k.answer": pattern},
			squirrel.ILike{"k.keywords": pattern},
		}).
		OrderBy("k.usage_count DESC", "k.confidence DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	if domain != "" {
		query = query.Where(squirrel.Eq{"d.name": domain})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []*models.SearchMatch
	for rows.Next() {
		var m models.SearchMatch
		if err := rows.Scan(
			&m.Domain, &m.Question, &m.Answer, &m.Keywords, &m.Confidence,
		); err != nil {
			return nil, err
		}
		matches = append(matches, &m)
	}

	return matches, rows.Err()
}
