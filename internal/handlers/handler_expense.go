package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/teaminfinity/expense_management/internal/core/domain"
	portssvc "github.com/teaminfinity/expense_management/internal/core/ports/services"
	"github.com/teaminfinity/expense_management/internal/dto"
	"github.com/teaminfinity/expense_management/internal/middleware"
)

// expenseHandler handles HTTP requests related to expenses.
type expenseHandler struct {
	expenseService  portssvc.ExpenseSvcFacade
	approvalService portssvc.ApprovalSvcFacade
}

// newExpenseHandler creates a new expenseHandler.
func newExpenseHandler(es portssvc.ExpenseSvcFacade, as portssvc.ApprovalSvcFacade) *expenseHandler {
	return &expenseHandler{
		expenseService:  es,
		approvalService: as,
	}
}

// registerExpenseRoutes registers all expense-related routes.
func registerExpenseRoutes(rg *gin.RouterGroup, expenseService portssvc.ExpenseSvcFacade, approvalService portssvc.ApprovalSvcFacade) {
	h := newExpenseHandler(expenseService, approvalService)

	expenses := rg.Group("/expenses")
	{
		expenses.POST("", h.submitExpense)
		expenses.GET("", h.listExpenses)
		expenses.GET("/company/pending", h.listPendingCompanyExpenses) // Admin/manager only
		expenses.GET("/:id", h.getExpense)
		expenses.GET("/:id/steps", h.listExpenseSteps)
	}
}

// submitExpense godoc
// @Summary Submit an expense
// @Description Creates an expense and materializes its approval step chain from the company's rules. With no resolvable approvers the expense is approved immediately.
// @Tags expenses
// @Accept json
// @Produce json
// @Param expense body dto.SubmitExpenseRequest true "Expense details"
// @Success 201 {object} dto.ExpenseResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /expenses [post]
func (h *expenseHandler) submitExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SubmitExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	actingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	expense, err := h.expenseService.SubmitExpense(c.Request.Context(), req, actingUserID)
	if err != nil {
		logger.Error("Failed to submit expense", slog.String("error", err.Error()))
		respondError(c, err, "Failed to submit expense")
		return
	}

	c.JSON(http.StatusCreated, dto.ToExpenseResponse(expense))
}

// listExpenses godoc
// @Summary List own expenses
// @Description Lists the acting user's expenses, newest first. Filter by status or page with nextToken.
// @Tags expenses
// @Produce json
// @Param status query string false "Filter by status (PENDING, APPROVED, REJECTED)"
// @Param limit query int false "Page size (default 20)"
// @Param nextToken query string false "Continuation token from a previous page"
// @Success 200 {object} dto.ListExpensesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /expenses [get]
func (h *expenseHandler) listExpenses(c *gin.Context) {
	actingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if statusParam := c.Query("status"); statusParam != "" {
		expenses, err := h.expenseService.ListUserExpensesByStatus(c.Request.Context(), actingUserID, domain.ExpenseStatus(statusParam))
		if err != nil {
			respondError(c, err, "Failed to list expenses")
			return
		}
		c.JSON(http.StatusOK, dto.ListExpensesResponse{Expenses: dto.ToExpenseResponses(expenses)})
		return
	}

	var params dto.ListExpensesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.expenseService.ListUserExpenses(c.Request.Context(), actingUserID, params)
	if err != nil {
		respondError(c, err, "Failed to list expenses")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// listPendingCompanyExpenses godoc
// @Summary List pending company expenses
// @Description Lists all PENDING expenses across the acting user's company. Admin and manager only.
// @Tags expenses
// @Produce json
// @Success 200 {array} dto.ExpenseResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /expenses/company/pending [get]
func (h *expenseHandler) listPendingCompanyExpenses(c *gin.Context) {
	actingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	expenses, err := h.expenseService.ListPendingCompanyExpenses(c.Request.Context(), actingUserID)
	if err != nil {
		respondError(c, err, "Failed to list company expenses")
		return
	}

	c.JSON(http.StatusOK, dto.ToExpenseResponses(expenses))
}

// getExpense godoc
// @Summary Get an expense by ID
// @Description Retrieves one expense of the acting user's company.
// @Tags expenses
// @Produce json
// @Param id path string true "Expense ID"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /expenses/{id} [get]
func (h *expenseHandler) getExpense(c *gin.Context) {
	expenseID := c.Param("id")

	actingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	expense, err := h.expenseService.GetExpenseByID(c.Request.Context(), expenseID, actingUserID)
	if err != nil {
		respondError(c, err, "Failed to retrieve expense")
		return
	}

	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// listExpenseSteps godoc
// @Summary List approval steps of an expense
// @Description Lists all approval steps of an expense ordered by sequence.
// @Tags expenses
// @Produce json
// @Param id path string true "Expense ID"
// @Success 200 {array} dto.ApprovalStepResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /expenses/{id}/steps [get]
func (h *expenseHandler) listExpenseSteps(c *gin.Context) {
	expenseID := c.Param("id")

	actingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	steps, err := h.approvalService.ListStepsForExpense(c.Request.Context(), expenseID, actingUserID)
	if err != nil {
		respondError(c, err, "Failed to list approval steps")
		return
	}

	c.JSON(http.StatusOK, dto.ToApprovalStepResponses(steps))
}
