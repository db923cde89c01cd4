package approval

import "github.com/teaminfinity/expense_management/internal/core/domain"

// ComputeExpenseStatus derives the aggregate expense status from the full set
// of its approval steps:
//
//   - any REJECTED step makes the expense REJECTED, regardless of the state of
//     the other steps
//   - otherwise, the expense is APPROVED once every step is APPROVED
//     (vacuously true for an empty step set)
//   - otherwise it stays PENDING
//
// The computation is idempotent and independent of decision arrival order:
// re-running it after any subset of decisions yields the same result for the
// same step states.
func ComputeExpenseStatus(steps []domain.ApprovalStep) domain.ExpenseStatus {
	allApproved := true
	for _, step := range steps {
		if step.Decision == domain.DecisionRejected {
			return domain.ExpenseRejected
		}
		if step.Decision != domain.DecisionApproved {
			allApproved = false
		}
	}

	if allApproved {
		return domain.ExpenseApproved
	}
	return domain.ExpensePending
}
