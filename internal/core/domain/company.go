package domain

// Company represents an isolated tenant owning users, rules and expenses.
type Company struct {
	CompanyID           string `json:"companyID"` // Primary Key (UUID)
	Name                string `json:"name"`
	Country             string `json:"country"`
	DefaultCurrencyCode string `json:"defaultCurrencyCode"` // Derived from country at signup (e.g., "USD")
	IsManagerApprover   bool   `json:"isManagerApprover"`   // When true, the submitter's manager is approver #1
	AuditFields
}
