package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OcrRequest carries the receipt image reference to extract fields from.
type OcrRequest struct {
	ImageURL string `json:"imageURL" binding:"required,url"`
}

// OcrResponse holds the fields extracted from a receipt image.
type OcrResponse struct {
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`
	ExpenseDate  time.Time       `json:"expenseDate"`
	Merchant     string          `json:"merchant"`
	Category     string          `json:"category"`
}
