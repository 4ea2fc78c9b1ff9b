package repository

import (
	"context"

	"askhub/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type DomainRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewDomainRepository(db *pgxpool.Pool, logger *zap.Logger) *DomainRepository {
	return &DomainRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new domain. Duplicate names are an idempotent no-op:
// the method reports false without an error.
func (r *DomainRepository) Create(ctx context.Context, name, description string) (bool, error) {
	query := squirrel.Insert("domains").
		Columns("name", "description").
		Values(name, description).
		Suffix("ON CONFLICT (name) DO NOTHING").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return false, err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}

func (r *DomainRepository) GetByName(ctx context.Context, name string) (*models.Domain, error) {
	query := squirrel.Select("id", "name", "description", "created_at").
		From("domains").
		Where(squirrel.Eq{"name": name}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var domain models.Domain
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&domain.ID, &domain.Name, &domain.Description, &domain.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &domain, nil
}

func (r *DomainRepository) List(ctx context.Context) ([]*models.Domain, error) {
	query := squirrel.Select("id", "name", "description", "created_at").
		From("domains").
		OrderBy("name ASC").
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

	var domains []*models.Domain
	for rows.Next() {
		var domain models.Domain
		if err := rows.Scan(
			&domain.ID, &domain.Name, &domain.Description, &domain.CreatedAt,
		); err != nil {
			return nil, err
		}
		domains = append(domains, &domain)
	}

	return domains, rows.Err()
}

// Stats aggregates per-domain knowledge counts, summed usage and the most
// recent usage timestamp.
func (r *DomainRepository) Stats(ctx context.Context) ([]*models.DomainStats, error) {
	query := squirrel.Select(
		"d.name",
		"d.description",
		"COUNT(k.id) AS knowledge_count",
		"COALESCE(SUM(k.usage_count), 0) AS total_usage",
		"MAX(k.last_used) AS last_used",
	).
		From("domains d").
		LeftJoin("knowledge_items k ON d.id = k.domain_id").
		GroupBy("d.name", "d.description").
		OrderBy("d.name ASC").
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

	var stats []*models.DomainStats
	for rows.Next() {
		var s models.DomainStats
		if err := rows.Scan(
			&s.Name, &s.Description, &s.KnowledgeCount, &s.TotalUsage, &s.LastUsed,
		); err != nil {
			return nil, err
		}
		stats = append(stats, &s)
	}

	return stats, rows.Err()
}
