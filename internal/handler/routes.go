package handler

import (
	"github.com/fintrackhq/fintrack-backend/internal/middleware"
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, userHandler *UserHandler, expenseHandler *ExpenseHandler, budgetHandler *BudgetHandler, wsHandler *WebSocketHandler) {
	api := e.Group("/api")

	// User routes; register and login are public
	users := api.Group("/users")
	users.POST("/register", userHandler.Register)
	users.POST("/login", userHandler.Login)
	users.GET("/:userId", userHandler.GetUser, authMiddleware.Authenticate())

	// Expense routes (protected)
	expenses := api.Group("/expenses")
	expenses.Use(authMiddleware.Authenticate())
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.GET("/user/:userId", expenseHandler.GetExpenses)
	expenses.DELETE("/:id/user/:userId", expenseHandler.DeleteExpense)
	expenses.GET("/summary/:userId/:month/:year", expenseHandler.GetMonthlySummary)
	expenses.GET("/breakdown/:userId/:month/:year", expenseHandler.GetCategoryBreakdown)

	// Budget routes (protected)
	budgets := api.Group("/budgets")
	budgets.Use(authMiddleware.Authenticate())
	budgets.GET("/user/:userId", budgetHandler.GetBudgets)
	budgets.POST("", budgetHandler.SetBudget)
	budgets.PUT("/:id", budgetHandler.UpdateBudget)
	budgets.DELETE("/:id/user/:userId", budgetHandler.DeleteBudget)
	budgets.GET("/status/:userId/:month/:year", budgetHandler.GetBudgetStatuses)

	// WebSocket endpoint; token is validated in the handler
	e.GET("/ws", wsHandler.HandleWS)
}
