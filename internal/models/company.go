package models

// Company is the persistence shape of a tenant company.
type Company struct {
	CompanyID           string `db:"company_id"`
	Name                string `db:"name"`
	Country             string `db:"country"`
	DefaultCurrencyCode string `db:"default_currency_code"`
	IsManagerApprover   bool   `db:"is_manager_approver"`
	AuditFields
}
