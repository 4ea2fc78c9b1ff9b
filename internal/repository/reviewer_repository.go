package repository

import (
	"context"

	"askhub/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type ReviewerRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewReviewerRepository(db *pgxpool.Pool, logger *zap.Logger) *ReviewerRepository {
	return &ReviewerRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ReviewerRepository) Create(ctx context.Context, reviewer *models.Reviewer) error {
	query := squirrel.Insert("reviewers").
		Columns("id", "username", "email", "password", "created_at", "updated_at").
		Values(reviewer.ID, reviewer.Username, reviewer.Email, reviewer.Password, reviewer.CreatedAt, reviewer.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *ReviewerRepository) GetByEmail(ctx context.Context, email string) (*models.Reviewer, error) {
	query := squirrel.Select("id", "username", "email", "password", "created_at", "updated_at").
		From("reviewers").
		Where(squirrel.Eq{"email": email}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var reviewer models.Reviewer
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&reviewer.ID, &reviewer.Username, &reviewer.Email, &reviewer.Password, &reviewer.CreatedAt, &reviewer.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &reviewer, nil
}

func (r *ReviewerRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Reviewer, error) {
	query := squirrel.Select("id", "username", "email", "password", "created_at", "updated_at").
		From("reviewers").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var reviewer models.Reviewer
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&reviewer.ID, &reviewer.Username, &reviewer.Email, &reviewer.Password, &reviewer.CreatedAt, &reviewer.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &reviewer, nil
}
