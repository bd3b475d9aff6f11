package handlers

import (
	"net/http"

	"auditionhub_backend/internal/services"
	"auditionhub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ExpenseHandler struct {
	*BaseHandler
	expenseService services.ExpenseService
}

func NewExpenseHandler(base *BaseHandler, expenseService services.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{
		BaseHandler:    base,
		expenseService: expenseService,
	}
}

func (h *ExpenseHandler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	expenses := rg.Group("/expenses")
	expenses.Use(authMW)
	{
		expenses.GET("", h.ListExpenses)
		expenses.POST("", h.CreateExpense)
		expenses.GET("/summary", h.Summary)
		expenses.GET("/:id", h.GetExpense)
		expenses.PUT("/:id", h.UpdateExpense)
		expenses.DELETE("/:id", h.DeleteExpense)
	}
}

func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateExpenseRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, expense)
}

func (h *ExpenseHandler) ListExpenses(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var query dto.ExpenseListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	expenses, err := h.expenseService.ListExpenses(h.GetDB(c), userID, &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, expenses)
}

// Summary godoc
// @Summary Expense totals for the same filters as the list
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Param category query string false "Category or ALL"
// @Param start_date query string false "YYYY-MM-DD, inclusive"
// @Param end_date query string false "YYYY-MM-DD, inclusive"
// @Success 200 {object} dto.ExpenseSummary
// @Router /expenses/summary [get]
func (h *ExpenseHandler) Summary(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var query dto.ExpenseListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	summary, err := h.expenseService.Summary(h.GetDB(c), userID, &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *ExpenseHandler) GetExpense(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	expense, err := h.expenseService.GetExpense(h.GetDB(c), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, expense)
}

func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateExpenseRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	expense, err := h.expenseService.UpdateExpense(c.Request.Context(), h.GetDB(c), userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, expense)
}

func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.expenseService.DeleteExpense(c.Request.Context(), h.GetDB(c), userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
