package mapping

import (
	"github.com/shopspring/decimal"

	"github.com/teaminfinity/expense_management/internal/core/domain"
	"github.com/teaminfinity/expense_management/internal/models"
)

// ToModelApprovalRule converts a domain ApprovalRule to a model ApprovalRule.
func ToModelApprovalRule(d domain.ApprovalRule) models.ApprovalRule {
	m := models.ApprovalRule{
		RuleID:             d.RuleID,
		CompanyID:          d.CompanyID,
		RuleType:           string(d.RuleType),
		SpecificApproverID: d.SpecificApproverID,
		Sequence:           d.Sequence,
		Active:             d.Active,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
	if d.ThresholdAmount != nil {
		m.ThresholdAmount = decimal.NullDecimal{Decimal: *d.ThresholdAmount, Valid: true}
	}
	if d.ThresholdPercentage != nil {
		m.ThresholdPercentage = decimal.NullDecimal{Decimal: *d.ThresholdPercentage, Valid: true}
	}
	return m
}

// ToDomainApprovalRule converts a model ApprovalRule to a domain ApprovalRule.
func ToDomainApprovalRule(m models.ApprovalRule) domain.ApprovalRule {
	d := domain.ApprovalRule{
		RuleID:             m.RuleID,
		CompanyID:          m.CompanyID,
		RuleType:           domain.ApprovalRuleType(m.RuleType),
		SpecificApproverID: m.SpecificApproverID,
		Sequence:           m.Sequence,
		Active:             m.Active,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
	if m.ThresholdAmount.Valid {
		amount := m.ThresholdAmount.Decimal
		d.ThresholdAmount = &amount
	}
	if m.ThresholdPercentage.Valid {
		pct := m.ThresholdPercentage.Decimal
		d.ThresholdPercentage = &pct
	}
	return d
}

// ToDomainApprovalRuleSlice converts a slice of model rules to domain rules.
func ToDomainApprovalRuleSlice(ms []models.ApprovalRule) []domain.ApprovalRule {
	ds := make([]domain.ApprovalRule, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainApprovalRule(m)
	}
	return ds
}
