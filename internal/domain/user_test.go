package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleName(t *testing.T) {
	assert.Equal(t, "Administrador", RoleName(RoleAdministrator))
	assert.Equal(t, "Cliente", RoleName(RoleCustomer))
	assert.Equal(t, "", RoleName(99))
}

func TestRoleConstants(t *testing.T) {
	assert.Equal(t, 1, RoleAdministrator)
	assert.Equal(t, 2, RoleCustomer)
}
