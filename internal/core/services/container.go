package services

import (
	portsrepo "github.com/teaminfinity/expense_management/internal/core/ports/repositories"
	portssvc "github.com/teaminfinity/expense_management/internal/core/ports/services"
	"github.com/teaminfinity/expense_management/internal/platform/config"
)

// NewServiceContainer wires all application services with their repository
// dependencies.
func NewServiceContainer(repos *portsrepo.RepositoryProvider, cfg *config.Config) *portssvc.ServiceContainer {
	integrationSvc := NewIntegrationService(cfg)

	return &portssvc.ServiceContainer{
		Auth:        NewAuthService(cfg, repos.UserRepo, repos.CompanyRepo, integrationSvc),
		User:        NewUserService(repos.UserRepo),
		Company:     NewCompanyService(repos.CompanyRepo, repos.UserRepo),
		Rule:        NewApprovalRuleService(repos.RuleRepo, repos.UserRepo),
		Expense:     NewExpenseService(repos.ExpenseRepo, repos.RuleRepo, repos.UserRepo, repos.CompanyRepo),
		Approval:    NewApprovalService(repos.ExpenseRepo, repos.UserRepo),
		Integration: integrationSvc,
		Ocr:         NewOcrService(),
	}
}
