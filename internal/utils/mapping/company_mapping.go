package mapping

import (
	"github.com/teaminfinity/expense_management/internal/core/domain"
	"github.com/teaminfinity/expense_management/internal/models"
)

// ToModelCompany converts a domain Company to a model Company.
func ToModelCompany(d domain.Company) models.Company {
	return models.Company{
		CompanyID:           d.CompanyID,
		Name:                d.Name,
		Country:             d.Country,
		DefaultCurrencyCode: d.DefaultCurrencyCode,
		IsManagerApprover:   d.IsManagerApprover,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCompany converts a model Company to a domain Company.
func ToDomainCompany(m models.Company) domain.Company {
	return domain.Company{
		CompanyID:           m.CompanyID,
		Name:                m.Name,
		Country:             m.Country,
		DefaultCurrencyCode: m.DefaultCurrencyCode,
		IsManagerApprover:   m.IsManagerApprover,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}
