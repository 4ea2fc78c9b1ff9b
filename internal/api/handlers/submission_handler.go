package handlers

import (
	"errors"
	"strconv"

	"askhub/internal/dto"
	"askhub/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type SubmissionHandler struct {
	submissionService *service.SubmissionService
	logger            *zap.Logger
}

func NewSubmissionHandler(submissionService *service.SubmissionService, logger *zap.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		submissionService: submissionService,
		logger:            logger,
	}
}

// Submit godoc
// @Summary Submit candidate knowledge
// @Description Stage a candidate (question, answer) pair for review; it is not searchable until verified
// @Tags submissions
// @Accept json
// @Produce json
// @Param request body dto.SubmitRequest true "Submission"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /api/v1/submissions [post]
func (h *SubmissionHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitRequest
	if err := c.BodyParser(&req); err != nil || req.Domain == "" || req.Question == "" || req.Answer == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Domain, question and answer are required",
		})
	}

	if err := h.submissionService.Submit(c.Context(), &req); err != nil {
		h.logger.Error("Failed to stage submission", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to stage submission",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "staged",
	})
}

// List godoc
// @Summary List staged submissions
// @Description List staged submissions in storage order with their positions
// @Tags submissions
// @Produce json
// @Success 200 {array} dto.SubmissionResponse
// @Router /api/v1/submissions [get]
func (h *SubmissionHandler) List(c *fiber.Ctx) error {
	subs, err := h.submissionService.List(c.Context())
	if err != nil {
		h.logger.Error("Failed to list submissions", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list submissions",
		})
	}

	return c.JSON(subs)
}

// Verify godoc
// @Summary Verify a staged submission
// @Description Promote the submission at the given position into the knowledge base and rebuild its domain index
// @Tags submissions
// @Produce json
// @Param index path int true "Submission position"
// @Security Bearer
// @Success 200 {object} dto.SubmissionResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/submissions/{index}/verify [post]
func (h *SubmissionHandler) Verify(c *fiber.Ctx) error {
	position, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid submission index",
		})
	}

	sub, err := h.submissionService.Verify(c.Context(), position)
	if err != nil {
		if errors.Is(err, service.ErrIndexOutOfRange) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Submission index out of range",
			})
		}
		h.logger.Error("Failed to verify submission", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to verify submission",
		})
	}

	return c.JSON(sub)
}

// Reject godoc
// @Summary Reject a staged submission
// @Description Discard the submission at the given position
// @Tags submissions
// @Produce json
// @Param index path int true "Submission position"
// @Security Bearer
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/submissions/{index} [delete]
func (h *SubmissionHandler) Reject(c *fiber.Ctx) error {
	position, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid submission index",
		})
	}

	if err := h.submissionService.Reject(c.Context(), position); err != nil {
		if errors.Is(err, service.ErrIndexOutOfRange) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Submission index out of range",
			})
		}
		h.logger.Error("Failed to reject submission", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to reject submission",
		})
	}

	return c.JSON(fiber.Map{
		"status": "rejected",
	})
}
