package repository

import (
	"context"

	"askhub/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type ConversationRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewConversationRepository(db *pgxpool.Pool, logger *zap.Logger) *ConversationRepository {
	return &ConversationRepository{
		db:     db,
		logger: logger,
	}
}

// Append writes one conversation record. Records are append-only analytics
// data and are never read back by the retrieval path.
func (r *ConversationRepository) Append(ctx context.Context, conv *models.Conversation) error {
	query := squirrel.Insert("conversations").
		Columns("session_id", "domain", "question", "answer", "response_time").
		Values(conv.SessionID, conv.Domain, conv.Question, conv.Answer, conv.ResponseTime).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}
