package handlers

import (
	"spendwise/internal/dto"
	"spendwise/internal/service"
	"spendwise/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ExpenseHandler struct {
	expenseService *service.ExpenseService
	logger         *zap.Logger
}

func NewExpenseHandler(expenseService *service.ExpenseService, logger *zap.Logger) *ExpenseHandler {
	return &ExpenseHandler{
		expenseService: expenseService,
		logger:         logger,
	}
}

func (h *ExpenseHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	expense, err := h.expenseService.Create(c.Context(), middleware.UserID(c), &req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewExpenseResponse(expense))
}

func (h *ExpenseHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid expense id",
		})
	}

	expense, err := h.expenseService.Get(c.Context(), middleware.UserID(c), id)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(dto.NewExpenseResponse(expense))
}

func (h *ExpenseHandler) List(c *fiber.Ctx) error {
	expenses, err := h.expenseService.List(c.Context(), middleware.UserID(c), c.Query("from"), c.Query("to"))
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(dto.NewExpenseListResponse(expenses))
}

func (h *ExpenseHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid expense id",
		})
	}

	var req dto.UpdateExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	expense, err := h.expenseService.Update(c.Context(), middleware.UserID(c), id, &req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(dto.NewExpenseResponse(expense))
}

func (h *ExpenseHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid expense id",
		})
	}

	if err := h.expenseService.Delete(c.Context(), middleware.UserID(c), id); err != nil {
		return respondError(c, h.logger, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// SuggestCategory runs the classifier without creating anything.
func (h *ExpenseHandler) SuggestCategory(c *fiber.Ctx) error {
	var req dto.SuggestCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Description == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Description is required",
		})
	}

	suggestion := h.expenseService.SuggestCategory(c.Context(), &req)
	return c.JSON(dto.SuggestCategoryResponse{
		Category:    string(suggestion.Category),
		Confidence:  suggestion.Confidence,
		Reasoning:   suggestion.Reasoning,
		AIGenerated: suggestion.AIGenerated,
	})
}
