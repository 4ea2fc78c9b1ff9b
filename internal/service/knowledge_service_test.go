package service

import (
	"context"
	"testing"

	"askhub/internal/dto"
	"askhub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestKnowledgeService(t *testing.T) (*KnowledgeService, *memStore) {
	t.Helper()
	store := newMemStore()
	svc := NewKnowledgeService(store, store, testRetrievalConfig(), zap.NewNop())
	return svc, store
}

func testItem(question string) *models.KnowledgeItem {
	return &models.KnowledgeItem{
		Question:   question,
		Answer:     "an answer",
		Confidence: 1.0,
		Verified:   true,
	}
}

func TestCreateDomain_Idempotent(t *testing.T) {
	svc, _ := newTestKnowledgeService(t)
	ctx := context.Background()

	created, err := svc.CreateDomain(ctx, "legal", "Legal matters")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.CreateDomain(ctx, "legal", "another description")
	require.NoError(t, err)
	assert.False(t, created)

	domains, err := svc.ListDomains(ctx)
	require.NoError(t, err)
	require.Len(t, domains, 1)
	assert.Equal(t, "Legal matters", domains[0].Description)
}

func TestGetKnowledge_UnknownDomain(t *testing.T) {
	svc, _ := newTestKnowledgeService(t)

	_, err := svc.GetKnowledge(context.Background(), "astrology", 10)
	assert.ErrorIs(t, err, ErrDomainNotFound)
}

func TestGetKnowledge_Limit(t *testing.T) {
	svc, store := newTestKnowledgeService(t)
	ctx := context.Background()

	_, err := svc.CreateDomain(ctx, "tech", "")
	require.NoError(t, err)
	domain, err := store.GetByName(ctx, "tech")
	require.NoError(t, err)

	questions := []string{"first", "second", "third"}
	for _, q := range questions {
		require.NoError(t, store.Upsert(ctx, domain.ID, testItem(q)))
	}

	items, err := svc.GetKnowledge(ctx, "tech", 2)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	items, err = svc.GetKnowledge(ctx, "tech", 0)
	require.NoError(t, err)
	assert.Len(t, items, 3)
}

func TestSearch_MatchesKeywords(t *testing.T) {
	svc, store := newTestKnowledgeService(t)
	ctx := context.Background()

	_, err := svc.CreateDomain(ctx, "legal", "")
	require.NoError(t, err)
	domain, err := store.GetByName(ctx, "legal")
	require.NoError(t, err)

	item := testItem("What is a breach of contract?")
	item.Answer = "A failure to perform."
	item.Keywords = "breach contract obligation"
	require.NoError(t, store.Upsert(ctx, domain.ID, item))

	matches, err := svc.Search(ctx, "obligation", "")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "legal", matches[0].Domain)
	assert.Equal(t, "What is a breach of contract?", matches[0].Question)

	matches, err = svc.Search(ctx, "obligation", "medical")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestExportImport_RoundTrip(t *testing.T) {
	svc, store := newTestKnowledgeService(t)
	ctx := context.Background()

	_, err := svc.CreateDomain(ctx, "legal", "")
	require.NoError(t, err)
	domain, err := store.GetByName(ctx, "legal")
	require.NoError(t, err)

	item := testItem("What is a breach of contract?")
	item.Answer = "A failure to perform."
	require.NoError(t, store.Upsert(ctx, domain.ID, item))

	exported, err := svc.Export(ctx)
	require.NoError(t, err)
	require.Contains(t, exported, "legal")
	require.Len(t, exported["legal"], 1)
	assert.Equal(t, "A failure to perform.", exported["legal"][0].Answer)

	// Import into a fresh store recreates domains and items.
	fresh, _ := newTestKnowledgeService(t)
	result, err := fresh.Import(ctx, exported)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Domains)
	assert.Equal(t, 1, result.Items)
	assert.Equal(t, []string{"legal"}, result.Updated)

	items, err := fresh.GetKnowledge(ctx, "legal", 0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "A failure to perform.", items[0].Answer)
}

func TestImport_DefaultsConfidence(t *testing.T) {
	svc, _ := newTestKnowledgeService(t)
	ctx := context.Background()

	result, err := svc.Import(ctx, map[string][]dto.ExportItem{
		"tech": {{Question: "What is Go?", Answer: "A programming language."}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Items)

	items, err := svc.GetKnowledge(ctx, "tech", 0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1.0, items[0].Confidence)
}

func TestImport_LastWriteWins(t *testing.T) {
	svc, _ := newTestKnowledgeService(t)
	ctx := context.Background()

	_, err := svc.Import(ctx, map[string][]dto.ExportItem{
		"tech": {
			{Question: "What is Go?", Answer: "first answer"},
			{Question: "What is Go?", Answer: "second answer"},
		},
	})
	require.NoError(t, err)

	items, err := svc.GetKnowledge(ctx, "tech", 0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "second answer", items[0].Answer)
}
