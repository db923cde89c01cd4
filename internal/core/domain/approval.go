package domain

import "time"

// ApprovalDecision is the state of a single approval step.
// A step transitions PENDING -> APPROVED or PENDING -> REJECTED exactly once
// and is immutable thereafter.
type ApprovalDecision string

const (
	DecisionPending  ApprovalDecision = "PENDING"
	DecisionApproved ApprovalDecision = "APPROVED"
	DecisionRejected ApprovalDecision = "REJECTED"
)

// ApprovalStep is one approver's unit of decision work for one expense.
// Sequence is 1-based and reflects the resolved approver order; it is
// informational only and does not gate when an approver may act.
type ApprovalStep struct {
	StepID     string           `json:"stepID"` // Primary Key (UUID)
	ExpenseID  string           `json:"expenseID"`
	ApproverID string           `json:"approverID"`
	Sequence   int              `json:"sequence"`
	Decision   ApprovalDecision `json:"decision"`
	Comments   *string          `json:"comments,omitempty"`
	DecidedAt  *time.Time       `json:"decidedAt,omitempty"`
	AuditFields
}
