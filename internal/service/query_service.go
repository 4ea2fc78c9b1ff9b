package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"askhub/internal/dto"
	"askhub/internal/index"
	"askhub/internal/models"
	"askhub/internal/nlp"
	"askhub/pkg/config"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

var ErrDomainNotFound = errors.New("domain not found")

const (
	msgUnknownDomain = "I don't have knowledge about this domain yet."
	msgNoKnowledge   = "No knowledge available for this domain."
)

// fallbackResponses is the fixed rotation of clarification prompts returned
// when no stored answer clears the similarity threshold. Fallbacks always
// carry 0.0 confidence so callers can tell them apart from real matches.
var fallbackResponses = []string{
	"I'm still learning about this topic. Could you provide more context?",
	"That's an interesting question. Let me research this further.",
	"I understand your question, but I need more specific information.",
	"Could you rephrase your question or ask about another topic?",
	"I'm continuously learning. Please try another question.",
}

// QueryService answers questions against the per-domain similarity index.
// It owns an in-process snapshot of each domain's knowledge set, rebuilt in
// full from the store by Refresh; the snapshot and the fitted model for a
// domain are always swapped together.
type QueryService struct {
	domains   DomainStore
	knowledge KnowledgeStore
	convos    ConversationLog
	idx       *index.Index
	cfg       *config.RetrievalConfig
	logger    *zap.Logger

	mu        sync.RWMutex
	snapshots map[string][]*models.KnowledgeItem
}

func NewQueryService(
	domains DomainStore,
	knowledge KnowledgeStore,
	convos ConversationLog,
	idx *index.Index,
	cfg *config.RetrievalConfig,
	logger *zap.Logger,
) *QueryService {
	return &QueryService{
		domains:   domains,
		knowledge: knowledge,
		convos:    convos,
		idx:       idx,
		cfg:       cfg,
		logger:    logger,
		snapshots: make(map[string][]*models.KnowledgeItem),
	}
}

// RefreshAll rebuilds the snapshot and index for every domain in the store.
// Called once at startup and after bulk imports.
func (s *QueryService) RefreshAll(ctx context.Context) error {
	domains, err := s.domains.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list domains: %w", err)
	}

	for _, domain := range domains {
		if err := s.Refresh(ctx, domain.Name); err != nil {
			return err
		}
	}

	s.logger.Info("Knowledge index rebuilt", zap.Int("domains", len(domains)))
	return nil
}

// Refresh reloads one domain's committed items from the store and rebuilds
// its TF-IDF model. The rebuild completes before any mutation that triggered
// it is considered done; concurrent readers observe either the previous or
// the new model, never a mixture.
func (s *QueryService) Refresh(ctx context.Context, domain string) error {
	items, err := s.knowledge.ListByDomain(ctx, domain)
	if err != nil {
		return fmt.Errorf("failed to load knowledge for %q: %w", domain, err)
	}

	questions := make([]string, len(items))
	for i, item := range items {
		questions[i] = nlp.Normalize(item.Question, s.cfg.DefaultLanguage)
	}

	s.mu.Lock()
	s.snapshots[domain] = items
	s.idx.Build(domain, questions)
	s.mu.Unlock()

	s.logger.Debug("Domain index rebuilt",
		zap.String("domain", domain),
		zap.Int("items", len(items)),
	)
	return nil
}

// Answer runs the retrieval pipeline: normalize, search the domain index,
// accept the best match if it clears the threshold, otherwise fall back to
// a clarification prompt at 0.0 confidence. Accepted matches record usage;
// every answered query is appended to the conversation log.
func (s *QueryService) Answer(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	start := time.Now()

	domain := req.Domain
	if domain == "" {
		domain = "general"
	}
	language := req.Language
	if language == "" {
		language = s.cfg.DefaultLanguage
	}

	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		sessionID = uuid.New()
	}

	answer, confidence, matched, err := s.lookup(ctx, domain, req.Question, language)
	if err != nil {
		return nil, err
	}

	resp := &dto.ChatResponse{
		Answer:       answer,
		Confidence:   confidence,
		Domain:       domain,
		SessionID:    sessionID.String(),
		ResponseTime: time.Since(start).Seconds(),
	}

	if matched != nil {
		if err := s.knowledge.RecordUsage(ctx, domain, matched.Question); err != nil {
			return nil, fmt.Errorf("failed to record usage: %w", err)
		}
	}

	conv := &models.Conversation{
		SessionID:    sessionID,
		Domain:       domain,
		Question:     req.Question,
		Answer:       answer,
		ResponseTime: resp.ResponseTime,
	}
	if err := s.convos.Append(ctx, conv); err != nil {
		// Analytics only; the answer is already decided.
		s.logger.Warn("Failed to append conversation record", zap.Error(err))
	}

	return resp, nil
}

// lookup resolves the answer text and confidence for a question. The third
// return value is the matched item when a real knowledge-base answer was
// used, nil for every fallback path.
func (s *QueryService) lookup(ctx context.Context, domain, question, language string) (string, float64, *models.KnowledgeItem, error) {
	normalized := nlp.Normalize(question, language)
	if normalized == "" {
		return pickFallback(), 0, nil, nil
	}

	s.mu.RLock()
	items, known := s.snapshots[domain]
	if !known {
		s.mu.RUnlock()
		return msgUnknownDomain, 0, nil, nil
	}
	if len(items) == 0 {
		s.mu.RUnlock()
		return msgNoKnowledge, 0, nil, nil
	}

	bestIdx, bestScore, err := s.idx.Search(domain, normalized)
	s.mu.RUnlock()
	if err != nil {
		if errors.Is(err, index.ErrNoKnowledge) {
			return msgNoKnowledge, 0, nil, nil
		}
		return "", 0, nil, err
	}

	if bestScore > s.cfg.Threshold {
		item := items[bestIdx]
		return item.Answer, bestScore, item, nil
	}

	return pickFallback(), 0, nil, nil
}

// AddKnowledge upserts an item into the store and synchronously rebuilds the
// domain's index, keeping the persistent store and the in-process cache
// consistent.
func (s *QueryService) AddKnowledge(ctx context.Context, domain, question, answer, keywords string) error {
	d, err := s.domains.GetByName(ctx, domain)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrDomainNotFound
		}
		return fmt.Errorf("failed to resolve domain %q: %w", domain, err)
	}

	item := &models.KnowledgeItem{
		Question:   sanitizeUTF8(question),
		Answer:     sanitizeUTF8(answer),
		Keywords:   sanitizeUTF8(keywords),
		Confidence: 1.0,
		Verified:   true,
	}
	if err := s.knowledge.Upsert(ctx, d.ID, item); err != nil {
		return fmt.Errorf("failed to upsert knowledge: %w", err)
	}

	return s.Refresh(ctx, domain)
}

// KnownDomain reports whether the engine has a snapshot for the domain.
func (s *QueryService) KnownDomain(domain string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.snapshots[domain]
	return ok
}

func pickFallback() string {
	return fallbackResponses[rand.Intn(len(fallbackResponses))]
}
