package approval

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/teaminfinity/expense_management/internal/core/domain"
)

func steps(decisions ...domain.ApprovalDecision) []domain.ApprovalStep {
	result := make([]domain.ApprovalStep, len(decisions))
	for i, d := range decisions {
		result[i] = domain.ApprovalStep{Sequence: i + 1, Decision: d}
	}
	return result
}

func TestComputeExpenseStatus(t *testing.T) {
	tests := []struct {
		name  string
		steps []domain.ApprovalStep
		want  domain.ExpenseStatus
	}{
		{
			name:  "no steps is vacuously approved",
			steps: nil,
			want:  domain.ExpenseApproved,
		},
		{
			name:  "all pending stays pending",
			steps: steps(domain.DecisionPending, domain.DecisionPending),
			want:  domain.ExpensePending,
		},
		{
			name:  "partial approval stays pending",
			steps: steps(domain.DecisionApproved, domain.DecisionPending),
			want:  domain.ExpensePending,
		},
		{
			name:  "all approved closes the expense",
			steps: steps(domain.DecisionApproved, domain.DecisionApproved, domain.DecisionApproved),
			want:  domain.ExpenseApproved,
		},
		{
			name:  "single rejection dominates pending steps",
			steps: steps(domain.DecisionPending, domain.DecisionRejected, domain.DecisionPending),
			want:  domain.ExpenseRejected,
		},
		{
			name:  "rejection dominates approvals",
			steps: steps(domain.DecisionApproved, domain.DecisionApproved, domain.DecisionRejected),
			want:  domain.ExpenseRejected,
		},
		{
			name:  "single approved step",
			steps: steps(domain.DecisionApproved),
			want:  domain.ExpenseApproved,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeExpenseStatus(tt.steps))
		})
	}
}

// The derived status must not depend on the order decisions arrived in, only
// on the step states themselves.
func TestComputeExpenseStatus_OrderIndependent(t *testing.T) {
	a := steps(domain.DecisionRejected, domain.DecisionApproved)
	b := steps(domain.DecisionApproved, domain.DecisionRejected)
	assert.Equal(t, ComputeExpenseStatus(a), ComputeExpenseStatus(b))
	assert.Equal(t, domain.ExpenseRejected, ComputeExpenseStatus(a))
}
