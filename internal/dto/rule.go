package dto

import (
	"github.com/shopspring/decimal"

	"github.com/teaminfinity/expense_management/internal/core/domain"
)

// CreateApprovalRuleRequest defines the data for a new company approval rule.
type CreateApprovalRuleRequest struct {
	RuleType            domain.ApprovalRuleType `json:"ruleType" binding:"required,oneof=PERCENTAGE SPECIFIC_APPROVER HYBRID"`
	ThresholdAmount     *decimal.Decimal        `json:"thresholdAmount"`
	ThresholdPercentage *decimal.Decimal        `json:"thresholdPercentage"`
	SpecificApproverID  *string                 `json:"specificApproverID"`
	Sequence            int                     `json:"sequence" binding:"required,min=1"`
}

// UpdateApprovalRuleRequest updates an existing rule. Pointers distinguish
// omitted fields from zero values.
type UpdateApprovalRuleRequest struct {
	ThresholdAmount     *decimal.Decimal `json:"thresholdAmount"`
	ThresholdPercentage *decimal.Decimal `json:"thresholdPercentage"`
	SpecificApproverID  *string          `json:"specificApproverID"`
	Sequence            *int             `json:"sequence"`
	Active              *bool            `json:"active"`
}

// ApprovalRuleResponse is the external representation of an approval rule.
type ApprovalRuleResponse struct {
	RuleID              string                  `json:"ruleID"`
	CompanyID           string                  `json:"companyID"`
	RuleType            domain.ApprovalRuleType `json:"ruleType"`
	ThresholdAmount     *decimal.Decimal        `json:"thresholdAmount,omitempty"`
	ThresholdPercentage *decimal.Decimal        `json:"thresholdPercentage,omitempty"`
	SpecificApproverID  *string                 `json:"specificApproverID,omitempty"`
	Sequence            int                     `json:"sequence"`
	Active              bool                    `json:"active"`
}

// ToApprovalRuleResponse converts a domain rule to its response DTO.
func ToApprovalRuleResponse(r *domain.ApprovalRule) ApprovalRuleResponse {
	return ApprovalRuleResponse{
		RuleID:              r.RuleID,
		CompanyID:           r.CompanyID,
		RuleType:            r.RuleType,
		ThresholdAmount:     r.ThresholdAmount,
		ThresholdPercentage: r.ThresholdPercentage,
		SpecificApproverID:  r.SpecificApproverID,
		Sequence:            r.Sequence,
		Active:              r.Active,
	}
}

// ToApprovalRuleResponses converts a slice of domain rules to response DTOs.
func ToApprovalRuleResponses(rules []domain.ApprovalRule) []ApprovalRuleResponse {
	responses := make([]ApprovalRuleResponse, len(rules))
	for i := range rules {
		responses[i] = ToApprovalRuleResponse(&rules[i])
	}
	return responses
}
