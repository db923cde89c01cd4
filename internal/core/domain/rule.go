package domain

import "github.com/shopspring/decimal"

// ApprovalRuleType distinguishes the supported rule variants.
type ApprovalRuleType string

const (
	RuleTypePercentage       ApprovalRuleType = "PERCENTAGE"
	RuleTypeSpecificApprover ApprovalRuleType = "SPECIFIC_APPROVER"
	RuleTypeHybrid           ApprovalRuleType = "HYBRID"
)

// ApprovalRule is company-scoped configuration contributing zero or one
// approver to an expense's approval chain. Rules are evaluated in ascending
// Sequence order; only Active rules participate.
type ApprovalRule struct {
	RuleID              string           `json:"ruleID"` // Primary Key (UUID)
	CompanyID           string           `json:"companyID"`
	RuleType            ApprovalRuleType `json:"ruleType"`
	ThresholdAmount     *decimal.Decimal `json:"thresholdAmount,omitempty"`
	ThresholdPercentage *decimal.Decimal `json:"thresholdPercentage,omitempty"` // 0-100
	SpecificApproverID  *string          `json:"specificApproverID,omitempty"`
	Sequence            int              `json:"sequence"`
	Active              bool             `json:"active"`
	AuditFields
}
