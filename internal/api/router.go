package api

import (
	"spendwise/internal/api/handlers"
	"spendwise/pkg/auth"
	"spendwise/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func SetupRouter(
	authHandler *handlers.AuthHandler,
	expenseHandler *handlers.ExpenseHandler,
	budgetHandler *handlers.BudgetHandler,
	recurringHandler *handlers.RecurringHandler,
	jwtManager *auth.JWTManager,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	// Auth routes (public)
	authGroup := app.Group("/user/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.RefreshToken)

	// Protected routes
	protected := app.Group("/api/v1", middleware.AuthMiddleware(jwtManager, appLogger))

	expenses := protected.Group("/expenses")
	expenses.Post("", expenseHandler.Create)
	expenses.Post("/suggest-category", expenseHandler.SuggestCategory)
	expenses.Get("", expenseHandler.List)
	expenses.Get("/:id", expenseHandler.Get)
	expenses.Put("/:id", expenseHandler.Update)
	expenses.Delete("/:id", expenseHandler.Delete)

	budgets := protected.Group("/budgets")
	budgets.Post("", budgetHandler.Create)
	budgets.Get("", budgetHandler.List)
	budgets.Get("/:id", budgetHandler.Get)
	budgets.Get("/:id/progress", budgetHandler.GetProgress)
	budgets.Put("/:id", budgetHandler.Update)
	budgets.Delete("/:id", budgetHandler.Delete)

	recurring := protected.Group("/recurring")
	recurring.Post("", recurringHandler.Create)
	recurring.Get("", recurringHandler.List)
	recurring.Get("/upcoming", recurringHandler.ListUpcoming)
	recurring.Get("/:id", recurringHandler.Get)
	recurring.Put("/:id", recurringHandler.Update)
	recurring.Delete("/:id", recurringHandler.Delete)
	recurring.Post("/:id/generate", recurringHandler.Generate)

	return app
}
