// Package approval contains the pure approval-workflow calculations:
// rule evaluation, approver resolution and expense status derivation.
// Nothing in this package performs I/O; every function is safe for
// concurrent use and deterministic for identical inputs.
package approval

import (
	"github.com/shopspring/decimal"

	"github.com/teaminfinity/expense_management/internal/core/domain"
)

var oneHundred = decimal.NewFromInt(100)

// DetermineApprovers resolves the ordered, duplicate-free approver list for an
// expense from the company's active rules and its reporting-manager policy.
//
// The submitter's direct manager comes first when the company flag is set and
// a manager exists. Rules are then evaluated in the order given (callers must
// supply active rules sorted by sequence ascending); each contributes at most
// one approver, first-seen wins on duplicates. The result may be empty, which
// the caller must treat as a valid outcome.
func DetermineApprovers(expense domain.Expense, rules []domain.ApprovalRule, managerID *string, isManagerApprover bool) []string {
	approvers := make([]string, 0, len(rules)+1)
	seen := make(map[string]struct{}, len(rules)+1)

	if isManagerApprover && managerID != nil {
		approvers = append(approvers, *managerID)
		seen[*managerID] = struct{}{}
	}

	for _, rule := range rules {
		approverID := EvaluateRule(expense, rule)
		if approverID == nil {
			continue
		}
		if _, dup := seen[*approverID]; dup {
			continue
		}
		approvers = append(approvers, *approverID)
		seen[*approverID] = struct{}{}
	}

	return approvers
}

// EvaluateRule evaluates a single approval rule against an expense and returns
// the user ID of the approver it contributes, or nil when the rule does not
// apply. Misconfigured rules (missing thresholds for their type) contribute
// nothing rather than failing, so a bad rule cannot block resolution.
func EvaluateRule(expense domain.Expense, rule domain.ApprovalRule) *string {
	switch rule.RuleType {
	case domain.RuleTypePercentage:
		return evaluatePercentageRule(expense, rule)
	case domain.RuleTypeSpecificApprover:
		return rule.SpecificApproverID
	case domain.RuleTypeHybrid:
		return evaluateHybridRule(expense, rule)
	default:
		return nil
	}
}

// evaluatePercentageRule triggers when the expense amount strictly exceeds
// thresholdAmount * thresholdPercentage / 100. Equal amounts do not trigger.
func evaluatePercentageRule(expense domain.Expense, rule domain.ApprovalRule) *string {
	if rule.ThresholdAmount == nil || rule.ThresholdPercentage == nil {
		return nil
	}

	thresholdValue := rule.ThresholdAmount.Mul(*rule.ThresholdPercentage).Div(oneHundred)

	if expense.Amount.GreaterThan(thresholdValue) {
		return rule.SpecificApproverID
	}
	return nil
}

// evaluateHybridRule compares the expense amount directly against
// thresholdAmount, ignoring the percentage entirely. Kept as a distinct
// variant even though it overlaps with a 100% percentage rule.
func evaluateHybridRule(expense domain.Expense, rule domain.ApprovalRule) *string {
	if rule.ThresholdAmount == nil {
		return nil
	}
	if expense.Amount.GreaterThan(*rule.ThresholdAmount) {
		return rule.SpecificApproverID
	}
	return nil
}
