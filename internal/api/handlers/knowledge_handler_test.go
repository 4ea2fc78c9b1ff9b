package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"askhub/internal/dto"
	"askhub/internal/index"
	"askhub/internal/models"
	"askhub/internal/service"
	"askhub/pkg/config"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubStore backs the handler tests with just enough storage behavior:
// idempotent domain creation and empty knowledge sets.
type stubStore struct {
	nextID  int64
	domains map[string]*models.Domain
}

func newStubStore() *stubStore {
	return &stubStore{domains: make(map[string]*models.Domain)}
}

func (s *stubStore) Create(ctx context.Context, name, description string) (bool, error) {
	if _, ok := s.domains[name]; ok {
		return false, nil
	}
	s.nextID++
	s.domains[name] = &models.Domain{ID: s.nextID, Name: name, Description: description}
	return true, nil
}

func (s *stubStore) GetByName(ctx context.Context, name string) (*models.Domain, error) {
	if d, ok := s.domains[name]; ok {
		return d, nil
	}
	return nil, pgx.ErrNoRows
}

func (s *stubStore) List(ctx context.Context) ([]*models.Domain, error) {
	out := make([]*models.Domain, 0, len(s.domains))
	for _, d := range s.domains {
		out = append(out, d)
	}
	return out, nil
}

func (s *stubStore) Stats(ctx context.Context) ([]*models.DomainStats, error) {
	out := make([]*models.DomainStats, 0, len(s.domains))
	for _, d := range s.domains {
		out = append(out, &models.DomainStats{Name: d.Name, Description: d.Description})
	}
	return out, nil
}

func (s *stubStore) Upsert(ctx context.Context, domainID int64, item *models.KnowledgeItem) error {
	return nil
}

func (s *stubStore) ListByDomain(ctx context.Context, domain string) ([]*models.KnowledgeItem, error) {
	return nil, nil
}

func (s *stubStore) RecordUsage(ctx context.Context, domain, question string) error {
	return nil
}

func (s *stubStore) SearchText(ctx context.Context, queryText, domain string, limit int) ([]*models.SearchMatch, error) {
	return nil, nil
}

func (s *stubStore) Append(ctx context.Context, conv *models.Conversation) error {
	return nil
}

func newTestApp(t *testing.T) (*fiber.App, *service.QueryService) {
	t.Helper()
	store := newStubStore()
	cfg := &config.RetrievalConfig{Threshold: 0.3, MaxFeatures: 1000, SearchLimit: 10, DefaultLanguage: "en"}
	queryService := service.NewQueryService(store, store, store, index.New(cfg.MaxFeatures), cfg, zap.NewNop())
	knowledgeService := service.NewKnowledgeService(store, store, cfg, zap.NewNop())
	handler := NewKnowledgeHandler(knowledgeService, queryService, zap.NewNop())

	app := fiber.New()
	app.Post("/domains", handler.CreateDomain)
	return app, queryService
}

func postJSON(t *testing.T, app *fiber.App, path string, payload any) int {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	return resp.StatusCode
}

func TestCreateDomain_RegistersWithEngine(t *testing.T) {
	app, queryService := newTestApp(t)

	status := postJSON(t, app, "/domains", dto.CreateDomainRequest{Name: "legal"})
	assert.Equal(t, fiber.StatusCreated, status)

	// The empty domain is queryable immediately, without a restart or a
	// knowledge mutation in between.
	assert.True(t, queryService.KnownDomain("legal"))
}

func TestCreateDomain_ExistingNameIsNoOp(t *testing.T) {
	app, queryService := newTestApp(t)

	require.Equal(t, fiber.StatusCreated, postJSON(t, app, "/domains", dto.CreateDomainRequest{Name: "legal"}))
	assert.Equal(t, fiber.StatusOK, postJSON(t, app, "/domains", dto.CreateDomainRequest{Name: "legal"}))
	assert.True(t, queryService.KnownDomain("legal"))
}

func TestCreateDomain_MissingName(t *testing.T) {
	app, _ := newTestApp(t)

	assert.Equal(t, fiber.StatusBadRequest, postJSON(t, app, "/domains", dto.CreateDomainRequest{}))
}
