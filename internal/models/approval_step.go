package models

import "time"

// ApprovalStep is the persistence shape of one approver's decision step.
type ApprovalStep struct {
	StepID     string     `db:"step_id"`
	ExpenseID  string     `db:"expense_id"`
	ApproverID string     `db:"approver_id"`
	Sequence   int        `db:"sequence"`
	Decision   string     `db:"decision"`
	Comments   *string    `db:"comments"`
	DecidedAt  *time.Time `db:"decided_at"`
	AuditFields
}
