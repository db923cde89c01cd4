package models

import "github.com/shopspring/decimal"

// ApprovalRule is the persistence shape of a company approval rule.
type ApprovalRule struct {
	RuleID              string              `db:"rule_id"`
	CompanyID           string              `db:"company_id"`
	RuleType            string              `db:"rule_type"`
	ThresholdAmount     decimal.NullDecimal `db:"threshold_amount"`
	ThresholdPercentage decimal.NullDecimal `db:"threshold_percentage"`
	SpecificApproverID  *string             `db:"specific_approver_id"`
	Sequence            int                 `db:"sequence"`
	Active              bool                `db:"active"`
	AuditFields
}
