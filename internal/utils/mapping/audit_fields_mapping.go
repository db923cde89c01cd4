package mapping

import (
	"github.com/teaminfinity/expense_management/internal/core/domain"
	"github.com/teaminfinity/expense_management/internal/models"
)

// ToModelAuditFields converts domain audit fields to the model representation.
func ToModelAuditFields(d domain.AuditFields) models.AuditFields {
	return models.AuditFields{
		CreatedAt:     d.CreatedAt,
		CreatedBy:     d.CreatedBy,
		LastUpdatedAt: d.LastUpdatedAt,
		LastUpdatedBy: d.LastUpdatedBy,
	}
}

// ToDomainAuditFields converts model audit fields to the domain representation.
func ToDomainAuditFields(m models.AuditFields) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
		LastUpdatedAt: m.LastUpdatedAt,
		LastUpdatedBy: m.LastUpdatedBy,
	}
}
