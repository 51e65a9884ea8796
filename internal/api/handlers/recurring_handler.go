package handlers

import (
	"spendwise/internal/dto"
	"spendwise/internal/service"
	"spendwise/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RecurringHandler struct {
	recurringService *service.RecurringService
	logger           *zap.Logger
}

func NewRecurringHandler(recurringService *service.RecurringService, logger *zap.Logger) *RecurringHandler {
	return &RecurringHandler{
		recurringService: recurringService,
		logger:           logger,
	}
}

func (h *RecurringHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateRecurringRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	template, err := h.recurringService.Create(c.Context(), middleware.UserID(c), &req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewRecurringResponse(template))
}

func (h *RecurringHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid template id",
		})
	}

	template, err := h.recurringService.Get(c.Context(), middleware.UserID(c), id)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(dto.NewRecurringResponse(template))
}

func (h *RecurringHandler) List(c *fiber.Ctx) error {
	templates, err := h.recurringService.List(c.Context(), middleware.UserID(c))
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(dto.NewRecurringListResponse(templates))
}

// ListUpcoming returns active templates due within their reminder window.
func (h *RecurringHandler) ListUpcoming(c *fiber.Ctx) error {
	templates, err := h.recurringService.ListUpcoming(c.Context(), middleware.UserID(c))
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(dto.NewRecurringListResponse(templates))
}

func (h *RecurringHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid template id",
		})
	}

	var req dto.UpdateRecurringRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	template, err := h.recurringService.Update(c.Context(), middleware.UserID(c), id, &req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(dto.NewRecurringResponse(template))
}

func (h *RecurringHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid template id",
		})
	}

	if err := h.recurringService.Delete(c.Context(), middleware.UserID(c), id); err != nil {
		return respondError(c, h.logger, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Generate materializes the template's next expense on demand.
func (h *RecurringHandler) Generate(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid template id",
		})
	}

	expense, template, err := h.recurringService.GenerateOne(c.Context(), middleware.UserID(c), id)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.GenerateResponse{
		Expense:  dto.NewExpenseResponse(expense),
		Template: dto.NewRecurringResponse(template),
	})
}
