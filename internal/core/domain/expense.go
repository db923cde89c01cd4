package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseStatus indicates the aggregate state of an expense.
// APPROVED and REJECTED are terminal; the status is derived from the
// decisions of the expense's approval steps and never set directly by a client.
type ExpenseStatus string

const (
	ExpensePending  ExpenseStatus = "PENDING"
	ExpenseApproved ExpenseStatus = "APPROVED"
	ExpenseRejected ExpenseStatus = "REJECTED"
)

// IsTerminal reports whether no further status transition is possible.
func (s ExpenseStatus) IsTerminal() bool {
	return s == ExpenseApproved || s == ExpenseRejected
}

// Expense represents a single reimbursement request submitted by a user.
// All fields except Status are immutable after submission.
type Expense struct {
	ExpenseID       string          `json:"expenseID"` // Primary Key (UUID)
	CompanyID       string          `json:"companyID"`
	UserID          string          `json:"userID"` // Submitting user
	Amount          decimal.Decimal `json:"amount"`
	CurrencyCode    string          `json:"currencyCode"`
	Category        string          `json:"category"`
	Description     string          `json:"description"`
	ExpenseDate     time.Time       `json:"expenseDate"`
	ReceiptImageURL *string         `json:"receiptImageURL,omitempty"`
	Status          ExpenseStatus   `json:"status"`
	AuditFields
}
