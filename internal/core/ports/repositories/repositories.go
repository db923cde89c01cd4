package repositories

// RepositoryProvider bundles all repository facades for dependency injection
// into the service container.
type RepositoryProvider struct {
	UserRepo    UserRepositoryFacade
	CompanyRepo CompanyRepositoryFacade
	RuleRepo    ApprovalRuleRepositoryFacade
	ExpenseRepo ExpenseRepositoryWithTx
}
