package mapping

import (
	"github.com/teaminfinity/expense_management/internal/core/domain"
	"github.com/teaminfinity/expense_management/internal/models"
)

// ToModelExpense converts a domain Expense to a model Expense.
func ToModelExpense(d domain.Expense) models.Expense {
	return models.Expense{
		ExpenseID:       d.ExpenseID,
		CompanyID:       d.CompanyID,
		UserID:          d.UserID,
		Amount:          d.Amount,
		CurrencyCode:    d.CurrencyCode,
		Category:        d.Category,
		Description:     d.Description,
		ExpenseDate:     d.ExpenseDate,
		ReceiptImageURL: d.ReceiptImageURL,
		Status:          string(d.Status),
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainExpense converts a model Expense to a domain Expense.
func ToDomainExpense(m models.Expense) domain.Expense {
	return domain.Expense{
		ExpenseID:       m.ExpenseID,
		CompanyID:       m.CompanyID,
		UserID:          m.UserID,
		Amount:          m.Amount,
		CurrencyCode:    m.CurrencyCode,
		Category:        m.Category,
		Description:     m.Description,
		ExpenseDate:     m.ExpenseDate,
		ReceiptImageURL: m.ReceiptImageURL,
		Status:          domain.ExpenseStatus(m.Status),
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainExpenseSlice converts a slice of model Expenses to domain Expenses.
func ToDomainExpenseSlice(ms []models.Expense) []domain.Expense {
	ds := make([]domain.Expense, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainExpense(m)
	}
	return ds
}

// ToModelApprovalStep converts a domain ApprovalStep to a model ApprovalStep.
func ToModelApprovalStep(d domain.ApprovalStep) models.ApprovalStep {
	return models.ApprovalStep{
		StepID:      d.StepID,
		ExpenseID:   d.ExpenseID,
		ApproverID:  d.ApproverID,
		Sequence:    d.Sequence,
		Decision:    string(d.Decision),
		Comments:    d.Comments,
		DecidedAt:   d.DecidedAt,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainApprovalStep converts a model ApprovalStep to a domain ApprovalStep.
func ToDomainApprovalStep(m models.ApprovalStep) domain.ApprovalStep {
	return domain.ApprovalStep{
		StepID:      m.StepID,
		ExpenseID:   m.ExpenseID,
		ApproverID:  m.ApproverID,
		Sequence:    m.Sequence,
		Decision:    domain.ApprovalDecision(m.Decision),
		Comments:    m.Comments,
		DecidedAt:   m.DecidedAt,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainApprovalStepSlice converts a slice of model steps to domain steps.
func ToDomainApprovalStepSlice(ms []models.ApprovalStep) []domain.ApprovalStep {
	ds := make([]domain.ApprovalStep, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainApprovalStep(m)
	}
	return ds
}
