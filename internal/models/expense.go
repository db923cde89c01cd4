package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is the persistence shape of a reimbursement request.
type Expense struct {
	ExpenseID       string          `db:"expense_id"`
	CompanyID       string          `db:"company_id"`
	UserID          string          `db:"user_id"`
	Amount          decimal.Decimal `db:"amount"`
	CurrencyCode    string          `db:"currency_code"`
	Category        string          `db:"category"`
	Description     string          `db:"description"`
	ExpenseDate     time.Time       `db:"expense_date"`
	ReceiptImageURL *string         `db:"receipt_image_url"`
	Status          string          `db:"status"`
	AuditFields
}
