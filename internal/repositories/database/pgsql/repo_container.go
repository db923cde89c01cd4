package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/teaminfinity/expense_management/internal/core/ports/repositories"
)

// NewRepositoryProvider wires all pgx-backed repositories onto one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:    newPgxUserRepository(dbPool),
		CompanyRepo: newPgxCompanyRepository(dbPool),
		RuleRepo:    newPgxApprovalRuleRepository(dbPool),
		ExpenseRepo: newPgxExpenseRepository(dbPool),
	}
}
