package handlers

import (
	"spendwise/internal/dto"
	"spendwise/internal/service"
	"spendwise/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BudgetHandler struct {
	budgetService *service.BudgetService
	logger        *zap.Logger
}

func NewBudgetHandler(budgetService *service.BudgetService, logger *zap.Logger) *BudgetHandler {
	return &BudgetHandler{
		budgetService: budgetService,
		logger:        logger,
	}
}

func (h *BudgetHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateBudgetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	budget, err := h.budgetService.Create(c.Context(), middleware.UserID(c), &req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewBudgetResponse(budget))
}

func (h *BudgetHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid budget id",
		})
	}

	budget, err := h.budgetService.Get(c.Context(), middleware.UserID(c), id)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(dto.NewBudgetResponse(budget))
}

func (h *BudgetHandler) List(c *fiber.Ctx) error {
	budgets, err := h.budgetService.List(c.Context(), middleware.UserID(c))
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(dto.NewBudgetListResponse(budgets))
}

// GetProgress returns the budget with derived fields recomputed from the live
// expense set.
func (h *BudgetHandler) GetProgress(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid budget id",
		})
	}

	budget, err := h.budgetService.GetProgress(c.Context(), middleware.UserID(c), id)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(dto.NewBudgetResponse(budget))
}

func (h *BudgetHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid budget id",
		})
	}

	var req dto.UpdateBudgetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	budget, err := h.budgetService.Update(c.Context(), middleware.UserID(c), id, &req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(dto.NewBudgetResponse(budget))
}

func (h *BudgetHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid budget id",
		})
	}

	if err := h.budgetService.Delete(c.Context(), middleware.UserID(c), id); err != nil {
		return respondError(c, h.logger, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
