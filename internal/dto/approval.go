package dto

import (
	"time"

	"github.com/teaminfinity/expense_management/internal/core/domain"
)

// ApprovalDecisionRequest carries an approver's decision on a step.
type ApprovalDecisionRequest struct {
	Decision domain.ApprovalDecision `json:"decision" binding:"required,oneof=APPROVED REJECTED"`
	Comments *string                 `json:"comments"`
}

// ApprovalStepResponse is the external representation of an approval step.
type ApprovalStepResponse struct {
	StepID     string                  `json:"stepID"`
	ExpenseID  string                  `json:"expenseID"`
	ApproverID string                  `json:"approverID"`
	Sequence   int                     `json:"sequence"`
	Decision   domain.ApprovalDecision `json:"decision"`
	Comments   *string                 `json:"comments,omitempty"`
	DecidedAt  *time.Time              `json:"decidedAt,omitempty"`
}

// ToApprovalStepResponse converts a domain step to its response DTO.
func ToApprovalStepResponse(s *domain.ApprovalStep) ApprovalStepResponse {
	return ApprovalStepResponse{
		StepID:     s.StepID,
		ExpenseID:  s.ExpenseID,
		ApproverID: s.ApproverID,
		Sequence:   s.Sequence,
		Decision:   s.Decision,
		Comments:   s.Comments,
		DecidedAt:  s.DecidedAt,
	}
}

// ToApprovalStepResponses converts a slice of domain steps to response DTOs.
func ToApprovalStepResponses(steps []domain.ApprovalStep) []ApprovalStepResponse {
	responses := make([]ApprovalStepResponse, len(steps))
	for i := range steps {
		responses[i] = ToApprovalStepResponse(&steps[i])
	}
	return responses
}
