package handlers

import (
	"errors"

	"askhub/internal/dto"
	"askhub/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type KnowledgeHandler struct {
	knowledgeService *service.KnowledgeService
	queryService     *service.QueryService
	logger           *zap.Logger
}

func NewKnowledgeHandler(
	knowledgeService *service.KnowledgeService,
	queryService *service.QueryService,
	logger *zap.Logger,
) *KnowledgeHandler {
	return &KnowledgeHandler{
		knowledgeService: knowledgeService,
		queryService:     queryService,
		logger:           logger,
	}
}

// ListDomains godoc
// @Summary List domains
// @Description List all domains with their knowledge counts and usage stats
// @Tags knowledge
// @Produce json
// @Success 200 {array} dto.DomainInfo
// @Router /api/v1/domains [get]
func (h *KnowledgeHandler) ListDomains(c *fiber.Ctx) error {
	domains, err := h.knowledgeService.ListDomains(c.Context())
	if err != nil {
		h.logger.Error("Failed to list domains", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list domains",
		})
	}

	return c.JSON(domains)
}

// CreateDomain godoc
// @Summary Create a domain
// @Description Create a new domain; re-creating an existing name is a no-op
// @Tags knowledge
// @Accept json
// @Produce json
// @Param request body dto.CreateDomainRequest true "Domain"
// @Security Bearer
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /api/v1/domains [post]
func (h *KnowledgeHandler) CreateDomain(c *fiber.Ctx) error {
	var req dto.CreateDomainRequest
	if err := c.BodyParser(&req); err != nil || req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Domain name is required",
		})
	}

	created, err := h.knowledgeService.CreateDomain(c.Context(), req.Name, req.Description)
	if err != nil {
		h.logger.Error("Failed to create domain", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create domain",
		})
	}

	// Register the empty domain with the engine right away so queries
	// against it get the no-knowledge answer instead of unknown-domain.
	if created {
		if err := h.queryService.Refresh(c.Context(), req.Name); err != nil {
			h.logger.Error("Failed to register domain index", zap.String("domain", req.Name), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to create domain",
			})
		}
	}

	status := fiber.StatusCreated
	if !created {
		status = fiber.StatusOK
	}
	return c.Status(status).JSON(fiber.Map{
		"name":    req.Name,
		"created": created,
	})
}

// GetKnowledge godoc
// @Summary Get domain knowledge
// @Description Get a domain's knowledge items ordered by usage and confidence
// @Tags knowledge
// @Produce json
// @Param name path string true "Domain name"
// @Param limit query int false "Limit" default(50)
// @Success 200 {array} dto.KnowledgeItemResponse
// @Failure 404 {object} map[string]string
// @Router /api/v1/domains/{name}/knowledge [get]
func (h *KnowledgeHandler) GetKnowledge(c *fiber.Ctx) error {
	domain := c.Params("name")
	limit := c.QueryInt("limit", 50)

	items, err := h.knowledgeService.GetKnowledge(c.Context(), domain, limit)
	if err != nil {
		if errors.Is(err, service.ErrDomainNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Domain not found",
			})
		}
		h.logger.Error("Failed to get knowledge", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get knowledge",
		})
	}

	return c.JSON(items)
}

// UpsertKnowledge godoc
// @Summary Add or replace a knowledge item
// @Description Upsert a (question, answer) pair and rebuild the domain's index
// @Tags knowledge
// @Accept json
// @Produce json
// @Param name path string true "Domain name"
// @Param request body dto.UpsertKnowledgeRequest true "Knowledge item"
// @Security Bearer
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/domains/{name}/knowledge [post]
func (h *KnowledgeHandler) UpsertKnowledge(c *fiber.Ctx) error {
	domain := c.Params("name")

	var req dto.UpsertKnowledgeRequest
	if err := c.BodyParser(&req); err != nil || req.Question == "" || req.Answer == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Question and answer are required",
		})
	}

	if err := h.queryService.AddKnowledge(c.Context(), domain, req.Question, req.Answer, req.Keywords); err != nil {
		if errors.Is(err, service.ErrDomainNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Domain not found",
			})
		}
		h.logger.Error("Failed to upsert knowledge", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to upsert knowledge",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "ok",
	})
}

// Search godoc
// @Summary Text search
// @Description Substring search across questions, answers and keywords
// @Tags knowledge
// @Produce json
// @Param q query string true "Search query"
// @Param domain query string false "Restrict to domain"
// @Success 200 {array} dto.SearchMatchResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/search [get]
func (h *KnowledgeHandler) Search(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Query parameter q is required",
		})
	}

	matches, err := h.knowledgeService.Search(c.Context(), query, c.Query("domain"))
	if err != nil {
		h.logger.Error("Failed to search knowledge", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to search knowledge",
		})
	}

	return c.JSON(matches)
}

// Stats godoc
// @Summary Domain statistics
// @Description Per-domain knowledge counts, summed usage and last usage time
// @Tags knowledge
// @Produce json
// @Success 200 {array} dto.DomainInfo
// @Router /api/v1/stats [get]
func (h *KnowledgeHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.knowledgeService.ListDomains(c.Context())
	if err != nil {
		h.logger.Error("Failed to load stats", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load stats",
		})
	}

	return c.JSON(stats)
}

// Export godoc
// @Summary Export knowledge base
// @Description Export every domain's items as the JSON interchange document
// @Tags knowledge
// @Produce json
// @Success 200 {object} map[string][]dto.ExportItem
// @Router /api/v1/export [get]
func (h *KnowledgeHandler) Export(c *fiber.Ctx) error {
	data, err := h.knowledgeService.Export(c.Context())
	if err != nil {
		h.logger.Error("Failed to export knowledge", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to export knowledge",
		})
	}

	return c.JSON(data)
}

// Import godoc
// @Summary Import knowledge base
// @Description Import a JSON interchange document and rebuild affected domain indexes
// @Tags knowledge
// @Accept json
// @Produce json
// @Param request body map[string][]dto.ExportItem true "Interchange document"
// @Security Bearer
// @Success 200 {object} dto.ImportResult
// @Failure 400 {object} map[string]string
// @Router /api/v1/import [post]
func (h *KnowledgeHandler) Import(c *fiber.Ctx) error {
	var data map[string][]dto.ExportItem
	if err := c.BodyParser(&data); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	result, err := h.knowledgeService.Import(c.Context(), data)
	if err != nil {
		h.logger.Error("Failed to import knowledge", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to import knowledge",
		})
	}

	// Rebuild the index for every domain the import touched.
	for _, domain := range result.Updated {
		if err := h.queryService.Refresh(c.Context(), domain); err != nil {
			h.logger.Error("Failed to rebuild domain index", zap.String("domain", domain), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Import succeeded but index rebuild failed",
			})
		}
	}

	return c.JSON(result)
}
