package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/teaminfinity/expense_management/internal/core/domain"
)

// SubmitExpenseRequest defines the data for a new expense submission.
type SubmitExpenseRequest struct {
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	CurrencyCode    string          `json:"currencyCode" binding:"required,len=3"`
	Category        string          `json:"category" binding:"required"`
	Description     string          `json:"description"`
	ExpenseDate     time.Time       `json:"expenseDate" binding:"required"`
	ReceiptImageURL *string         `json:"receiptImageURL"`
}

// ExpenseResponse is the external representation of an expense.
type ExpenseResponse struct {
	ExpenseID       string               `json:"expenseID"`
	UserID          string               `json:"userID"`
	Amount          decimal.Decimal      `json:"amount"`
	CurrencyCode    string               `json:"currencyCode"`
	Category        string               `json:"category"`
	Description     string               `json:"description"`
	ExpenseDate     time.Time            `json:"expenseDate"`
	ReceiptImageURL *string              `json:"receiptImageURL,omitempty"`
	Status          domain.ExpenseStatus `json:"status"`
	CreatedAt       time.Time            `json:"createdAt"`
}

// ToExpenseResponse converts a domain Expense to its response DTO.
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:       e.ExpenseID,
		UserID:          e.UserID,
		Amount:          e.Amount,
		CurrencyCode:    e.CurrencyCode,
		Category:        e.Category,
		Description:     e.Description,
		ExpenseDate:     e.ExpenseDate,
		ReceiptImageURL: e.ReceiptImageURL,
		Status:          e.Status,
		CreatedAt:       e.CreatedAt,
	}
}

// ToExpenseResponses converts a slice of domain expenses to response DTOs.
func ToExpenseResponses(expenses []domain.Expense) []ExpenseResponse {
	responses := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		responses[i] = ToExpenseResponse(&expenses[i])
	}
	return responses
}

// ListExpensesParams defines query parameters for listing expenses.
type ListExpensesParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListExpensesResponse wraps a page of expenses with the continuation token.
type ListExpensesResponse struct {
	Expenses  []ExpenseResponse `json:"expenses"`
	NextToken *string           `json:"nextToken,omitempty"`
}
