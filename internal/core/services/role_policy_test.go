package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/teaminfinity/expense_management/internal/core/domain"
	"github.com/teaminfinity/expense_management/internal/core/services"
)

func TestDecideInitialRole(t *testing.T) {
	assert.Equal(t, domain.RoleAdmin, services.DecideInitialRole(0), "first user of a company becomes admin")
	assert.Equal(t, domain.RoleEmployee, services.DecideInitialRole(1))
	assert.Equal(t, domain.RoleEmployee, services.DecideInitialRole(250))
}
