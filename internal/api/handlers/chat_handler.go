package handlers

import (
	"askhub/internal/dto"
	"askhub/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ChatHandler struct {
	queryService *service.QueryService
	logger       *zap.Logger
}

func NewChatHandler(queryService *service.QueryService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		queryService: queryService,
		logger:       logger,
	}
}

// Ask godoc
// @Summary Ask a question
// @Description Answer a free-text question against a domain's knowledge base. A confidence of 0.0 means no real knowledge-base match was used.
// @Tags chat
// @Accept json
// @Produce json
// @Param request body dto.ChatRequest true "Chat request"
// @Success 200 {object} dto.ChatResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/chat [post]
func (h *ChatHandler) Ask(c *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	resp, err := h.queryService.Answer(c.Context(), &req)
	if err != nil {
		h.logger.Error("Failed to answer question", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to answer question",
		})
	}

	return c.JSON(resp)
}
