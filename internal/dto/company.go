package dto

import "github.com/teaminfinity/expense_management/internal/core/domain"

// UpdateCompanyRequest updates mutable company settings.
// Pointer distinguishes "not provided" from false.
type UpdateCompanyRequest struct {
	IsManagerApprover *bool `json:"isManagerApprover"`
}

// CompanyResponse is the external representation of a company.
type CompanyResponse struct {
	CompanyID           string `json:"companyID"`
	Name                string `json:"name"`
	Country             string `json:"country"`
	DefaultCurrencyCode string `json:"defaultCurrencyCode"`
	IsManagerApprover   bool   `json:"isManagerApprover"`
}

// ToCompanyResponse converts a domain Company to its response DTO.
func ToCompanyResponse(c *domain.Company) CompanyResponse {
	return CompanyResponse{
		CompanyID:           c.CompanyID,
		Name:                c.Name,
		Country:             c.Country,
		DefaultCurrencyCode: c.DefaultCurrencyCode,
		IsManagerApprover:   c.IsManagerApprover,
	}
}
