package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"askhub/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// memStore is an in-memory stand-in for the Postgres repositories. It
// mirrors their observable behavior: idempotent domain creation, upsert by
// (domain, question), store ordering by usage then confidence, and
// pgx.ErrNoRows for missing domains.
type memStore struct {
	mu sync.Mutex

	nextDomainID int64
	domains      []*models.Domain
	items        map[int64][]*models.KnowledgeItem

	nextSubID int64
	subs      []*models.Submission

	convos []*models.Conversation
}

func newMemStore() *memStore {
	return &memStore{items: make(map[int64][]*models.KnowledgeItem)}
}

func (m *memStore) Create(ctx context.Context, name, description string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.domains {
		if d.Name == name {
			return false, nil
		}
	}
	m.nextDomainID++
	m.domains = append(m.domains, &models.Domain{
		ID:          m.nextDomainID,
		Name:        name,
		Description: description,
		CreatedAt:   time.Now(),
	})
	return true, nil
}

func (m *memStore) GetByName(ctx context.Context, name string) (*models.Domain, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.domains {
		if d.Name == name {
			return d, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memStore) List(ctx context.Context) ([]*models.Domain, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*models.Domain(nil), m.domains...), nil
}

func (m *memStore) Stats(ctx context.Context) ([]*models.DomainStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stats := make([]*models.DomainStats, len(m.domains))
	for i, d := range m.domains {
		st := &models.DomainStats{Name: d.Name, Description: d.Description}
		for _, item := range m.items[d.ID] {
			st.KnowledgeCount++
			st.TotalUsage += item.UsageCount
			if item.LastUsed != nil && (st.LastUsed == nil || item.LastUsed.After(*st.LastUsed)) {
				st.LastUsed = item.LastUsed
			}
		}
		stats[i] = st
	}
	return stats, nil
}

func (m *memStore) Upsert(ctx context.Context, domainID int64, item *models.KnowledgeItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	item.DomainID = domainID
	for _, existing := range m.items[domainID] {
		if existing.Question == item.Question {
			existing.Answer = item.Answer
			existing.Keywords = item.Keywords
			existing.Confidence = item.Confidence
			existing.Verified = item.Verified
			existing.LastUsed = nil
			return nil
		}
	}
	clone := *item
	clone.ID = int64(len(m.items[domainID]) + 1)
	m.items[domainID] = append(m.items[domainID], &clone)
	return nil
}

func (m *memStore) ListByDomain(ctx context.Context, domain string) ([]*models.KnowledgeItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var domainID int64
	for _, d := range m.domains {
		if d.Name == domain {
			domainID = d.ID
		}
	}
	out := append([]*models.KnowledgeItem(nil), m.items[domainID]...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].UsageCount != out[j].UsageCount {
			return out[i].UsageCount > out[j].UsageCount
		}
		if out[i].Confidence != out[j].Confidence {
			return out[i].Confidence > out[j].Confidence
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *memStore) RecordUsage(ctx context.Context, domain, question string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.domains {
		if d.Name != domain {
			continue
		}
		for _, item := range m.items[d.ID] {
			if item.Question == question {
				item.UsageCount++
				now := time.Now()
				item.LastUsed = &now
			}
		}
	}
	return nil
}

func (m *memStore) SearchText(ctx context.Context, queryText, domain string, limit int) ([]*models.SearchMatch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	needle := strings.ToLower(queryText)
	var out []*models.SearchMatch
	for _, d := range m.domains {
		if domain != "" && d.Name != domain {
			continue
		}
		for _, item := range m.items[d.ID] {
			haystack := strings.ToLower(item.Question + " " + item.Answer + " " + item.Keywords)
			if strings.Contains(haystack, needle) {
				out = append(out, &models.SearchMatch{
					Domain:     d.Name,
					Question:   item.Question,
					Answer:     item.Answer,
					Keywords:   item.Keywords,
					Confidence: item.Confidence,
				})
				if limit > 0 && len(out) >= limit {
					return out, nil
				}
			}
		}
	}
	return out, nil
}

func (m *memStore) CreateSubmission(ctx context.Context, sub *models.Submission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextSubID++
	clone := *sub
	clone.ID = m.nextSubID
	clone.CreatedAt = time.Now()
	m.subs = append(m.subs, &clone)
	return nil
}

func (m *memStore) ListSubmissions(ctx context.Context) ([]*models.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*models.Submission(nil), m.subs...), nil
}

func (m *memStore) DeleteSubmission(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, sub := range m.subs {
		if sub.ID == id {
			m.subs = append(m.subs[:i], m.subs[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *memStore) PromoteSubmission(ctx context.Context, id int64, domainID int64, item *models.KnowledgeItem) error {
	if err := m.DeleteSubmission(ctx, id); err != nil {
		return err
	}
	return m.Upsert(ctx, domainID, item)
}

func (m *memStore) Append(ctx context.Context, conv *models.Conversation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.convos = append(m.convos, conv)
	return nil
}

func (m *memStore) usageCount(domain, question string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.domains {
		if d.Name != domain {
			continue
		}
		for _, item := range m.items[d.ID] {
			if item.Question == question {
				return item.UsageCount
			}
		}
	}
	return 0
}

// memSubmissionStore adapts memStore to the SubmissionStore interface, whose
// method names collide with the domain store's.
type memSubmissionStore struct {
	*memStore
}

func (m memSubmissionStore) Create(ctx context.Context, sub *models.Submission) error {
	return m.CreateSubmission(ctx, sub)
}

func (m memSubmissionStore) List(ctx context.Context) ([]*models.Submission, error) {
	return m.ListSubmissions(ctx)
}

func (m memSubmissionStore) Delete(ctx context.Context, id int64) error {
	return m.DeleteSubmission(ctx, id)
}

func (m memSubmissionStore) Promote(ctx context.Context, id int64, domainID int64, item *models.KnowledgeItem) error {
	return m.PromoteSubmission(ctx, id, domainID, item)
}

// memReviewerStore is an in-memory ReviewerStore keyed by email.
type memReviewerStore struct {
	mu        sync.Mutex
	reviewers map[string]*models.Reviewer
}

func newMemReviewerStore() *memReviewerStore {
	return &memReviewerStore{reviewers: make(map[string]*models.Reviewer)}
}

func (m *memReviewerStore) Create(ctx context.Context, reviewer *models.Reviewer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reviewers[reviewer.Email] = reviewer
	return nil
}

func (m *memReviewerStore) GetByEmail(ctx context.Context, email string) (*models.Reviewer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.reviewers[email]; ok {
		return r, nil
	}
	return nil, pgx.ErrNoRows
}

func (m *memReviewerStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Reviewer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.reviewers {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, pgx.ErrNoRows
}
