package service

import (
	"context"
	"errors"
	"fmt"

	"askhub/internal/dto"
	"askhub/internal/models"

	"go.uber.org/zap"
)

var ErrIndexOutOfRange = errors.New("submission index out of range")

// SubmissionService is the staging pipeline for untrusted candidate
// knowledge. Staged items are invisible to the query path until a reviewer
// verifies them; verification is the single path by which submitted content
// becomes searchable.
type SubmissionService struct {
	subs    SubmissionStore
	domains DomainStore
	engine  *QueryService
	logger  *zap.Logger
}

func NewSubmissionService(
	subs SubmissionStore,
	domains DomainStore,
	engine *QueryService,
	logger *zap.Logger,
) *SubmissionService {
	return &SubmissionService{
		subs:    subs,
		domains: domains,
		engine:  engine,
		logger:  logger,
	}
}

// Submit appends a candidate to the staging area. There is no uniqueness
// check across staged items; duplicates accumulate until reviewed.
func (s *SubmissionService) Submit(ctx context.Context, req *dto.SubmitRequest) error {
	sub := &models.Submission{
		Domain:      sanitizeUTF8(req.Domain),
		Question:    sanitizeUTF8(req.Question),
		Answer:      sanitizeUTF8(req.Answer),
		Keywords:    sanitizeUTF8(req.Keywords),
		Language:    req.Language,
		SubmittedBy: req.SubmittedBy,
		Verified:    false,
	}
	if sub.Language == "" {
		sub.Language = "en"
	}
	if sub.SubmittedBy == "" {
		sub.SubmittedBy = "anonymous"
	}

	if err := s.subs.Create(ctx, sub); err != nil {
		return fmt.Errorf("failed to stage submission: %w", err)
	}

	s.logger.Info("Submission staged",
		zap.String("domain", sub.Domain),
		zap.String("submitted_by", sub.SubmittedBy),
	)
	return nil
}

// List returns staged submissions in storage order, annotated with their
// position index used by Verify and Reject.
func (s *SubmissionService) List(ctx context.Context) ([]*dto.SubmissionResponse, error) {
	subs, err := s.subs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}

	out := make([]*dto.SubmissionResponse, len(subs))
	for i, sub := range subs {
		out[i] = &dto.SubmissionResponse{
			Index:       i,
			Domain:      sub.Domain,
			Question:    sub.Question,
			Answer:      sub.Answer,
			Language:    sub.Language,
			SubmittedBy: sub.SubmittedBy,
			Verified:    sub.Verified,
			CreatedAt:   sub.CreatedAt,
		}
	}

	return out, nil
}

// Verify promotes the staged item at the given position into the committed
// knowledge base: it is removed from staging, marked verified, upserted into
// the store and the domain's index is rebuilt before the call returns. The
// domain is created on the fly if it does not exist yet. Removal and upsert
// commit together, so the item never exists in both places at once and a
// storage failure leaves it staged.
func (s *SubmissionService) Verify(ctx context.Context, position int) (*dto.SubmissionResponse, error) {
	subs, err := s.subs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	if position < 0 || position >= len(subs) {
		return nil, ErrIndexOutOfRange
	}
	sub := subs[position]

	if _, err := s.domains.Create(ctx, sub.Domain, ""); err != nil {
		return nil, fmt.Errorf("failed to ensure domain %q: %w", sub.Domain, err)
	}
	domain, err := s.domains.GetByName(ctx, sub.Domain)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve domain %q: %w", sub.Domain, err)
	}

	item := &models.KnowledgeItem{
		Question:   sub.Question,
		Answer:     sub.Answer,
		Keywords:   sub.Keywords,
		Confidence: 1.0,
		Verified:   true,
	}
	if err := s.subs.Promote(ctx, sub.ID, domain.ID, item); err != nil {
		return nil, fmt.Errorf("failed to promote submission: %w", err)
	}

	if err := s.engine.Refresh(ctx, sub.Domain); err != nil {
		return nil, err
	}

	s.logger.Info("Submission verified",
		zap.String("domain", sub.Domain),
		zap.String("question", sub.Question),
	)

	return &dto.SubmissionResponse{
		Index:       position,
		Domain:      sub.Domain,
		Question:    sub.Question,
		Answer:      sub.Answer,
		Language:    sub.Language,
		SubmittedBy: sub.SubmittedBy,
		Verified:    true,
		CreatedAt:   sub.CreatedAt,
	}, nil
}

// Reject discards the staged item at the given position with no further
// effect.
func (s *SubmissionService) Reject(ctx context.Context, position int) error {
	subs, err := s.subs.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list submissions: %w", err)
	}
	if position < 0 || position >= len(subs) {
		return ErrIndexOutOfRange
	}

	if err := s.subs.Delete(ctx, subs[position].ID); err != nil {
		return fmt.Errorf("failed to reject submission: %w", err)
	}

	s.logger.Info("Submission rejected",
		zap.String("domain", subs[position].Domain),
		zap.String("question", subs[position].Question),
	)
	return nil
}
