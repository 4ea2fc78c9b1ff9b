package service

import (
	"context"
	"errors"
	"fmt"

	"askhub/internal/dto"
	"askhub/internal/models"
	"askhub/pkg/config"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// KnowledgeService exposes the administrative view of the knowledge base:
// domain management, the text-search fallback path, usage statistics and the
// JSON export/import boundary.
type KnowledgeService struct {
	domains   DomainStore
	knowledge KnowledgeStore
	cfg       *config.RetrievalConfig
	logger    *zap.Logger
}

func NewKnowledgeService(
	domains DomainStore,
	knowledge KnowledgeStore,
	cfg *config.RetrievalConfig,
	logger *zap.Logger,
) *KnowledgeService {
	return &KnowledgeService{
		domains:   domains,
		knowledge: knowledge,
		cfg:       cfg,
		logger:    logger,
	}
}

// CreateDomain creates a domain; re-creating an existing name is an
// idempotent no-op reported as created=false.
func (s *KnowledgeService) CreateDomain(ctx context.Context, name, description string) (bool, error) {
	created, err := s.domains.Create(ctx, sanitizeUTF8(name), sanitizeUTF8(description))
	if err != nil {
		return false, fmt.Errorf("failed to create domain: %w", err)
	}
	if created {
		s.logger.Info("Domain created", zap.String("domain", name))
	}
	return created, nil
}

// ListDomains returns every domain with its aggregated stats.
func (s *KnowledgeService) ListDomains(ctx context.Context) ([]*dto.DomainInfo, error) {
	stats, err := s.domains.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load domain stats: %w", err)
	}

	out := make([]*dto.DomainInfo, len(stats))
	for i, st := range stats {
		out[i] = &dto.DomainInfo{
			Name:           st.Name,
			Description:    st.Description,
			KnowledgeCount: st.KnowledgeCount,
			TotalUsage:     st.TotalUsage,
			LastUsed:       st.LastUsed,
		}
	}

	return out, nil
}

// GetKnowledge returns a domain's items ordered by usage then confidence.
// limit <= 0 returns all items.
func (s *KnowledgeService) GetKnowledge(ctx context.Context, domain string, limit int) ([]*dto.KnowledgeItemResponse, error) {
	if _, err := s.domains.GetByName(ctx, domain); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDomainNotFound
		}
		return nil, fmt.Errorf("failed to resolve domain %q: %w", domain, err)
	}

	items, err := s.knowledge.ListByDomain(ctx, domain)
	if err != nil {
		return nil, fmt.Errorf("failed to load knowledge: %w", err)
	}
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	out := make([]*dto.KnowledgeItemResponse, len(items))
	for i, item := range items {
		out[i] = &dto.KnowledgeItemResponse{
			Question:   item.Question,
			Answer:     item.Answer,
			Keywords:   item.Keywords,
			Confidence: item.Confidence,
			UsageCount: item.UsageCount,
		}
	}

	return out, nil
}

// Search runs the substring fallback search across question, answer and
// keywords. It is independent of the vector index.
func (s *KnowledgeService) Search(ctx context.Context, query, domain string) ([]*dto.SearchMatchResponse, error) {
	matches, err := s.knowledge.SearchText(ctx, query, domain, s.cfg.SearchLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to search knowledge: %w", err)
	}

	out := make([]*dto.SearchMatchResponse, len(matches))
	for i, m := range matches {
		out[i] = &dto.SearchMatchResponse{
			Domain:     m.Domain,
			Question:   m.Question,
			Answer:     m.Answer,
			Keywords:   m.Keywords,
			Confidence: m.Confidence,
		}
	}

	return out, nil
}

// Export serializes the whole knowledge base into the interchange format:
// domain name mapped to its ordered item list.
func (s *KnowledgeService) Export(ctx context.Context) (map[string][]dto.ExportItem, error) {
	domains, err := s.domains.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list domains: %w", err)
	}

	out := make(map[string][]dto.ExportItem, len(domains))
	for _, domain := range domains {
		items, err := s.knowledge.ListByDomain(ctx, domain.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to export domain %q: %w", domain.Name, err)
		}

		exported := make([]dto.ExportItem, len(items))
		for i, item := range items {
			exported[i] = dto.ExportItem{
				Question:   item.Question,
				Answer:     item.Answer,
				Keywords:   item.Keywords,
				Confidence: item.Confidence,
				UsageCount: item.UsageCount,
			}
		}
		out[domain.Name] = exported
	}

	return out, nil
}

// Import re-creates domains as needed and upserts every item, last write
// winning on duplicate questions. The caller is responsible for triggering
// an index rebuild for every domain in the result.
func (s *KnowledgeService) Import(ctx context.Context, data map[string][]dto.ExportItem) (*dto.ImportResult, error) {
	result := &dto.ImportResult{}

	for name, items := range data {
		created, err := s.domains.Create(ctx, sanitizeUTF8(name), "")
		if err != nil {
			return nil, fmt.Errorf("failed to create domain %q: %w", name, err)
		}
		if created {
			result.Domains++
		}

		domain, err := s.domains.GetByName(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve domain %q: %w", name, err)
		}

		for _, entry := range items {
			confidence := entry.Confidence
			if confidence == 0 {
				confidence = 1.0
			}
			item := &models.KnowledgeItem{
				Question:   sanitizeUTF8(entry.Question),
				Answer:     sanitizeUTF8(entry.Answer),
				Keywords:   sanitizeUTF8(entry.Keywords),
				Confidence: confidence,
				Verified:   true,
			}
			if err := s.knowledge.Upsert(ctx, domain.ID, item); err != nil {
				return nil, fmt.Errorf("failed to import item into %q: %w", name, err)
			}
			result.Items++
		}

		result.Updated = append(result.Updated, name)
	}

	s.logger.Info("Knowledge imported",
		zap.Int("domains", result.Domains),
		zap.Int("items", result.Items),
	)
	return result, nil
}
