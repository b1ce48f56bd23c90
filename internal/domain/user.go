package domain

import "time"

type User struct {
	ID           uint
	FirstName    string
	LastName     string
	Username     string
	Email        string
	PasswordHash string
	RoleID       int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Role struct {
	ID   int
	Name string
}

const (
	RoleAdministrator = 1
	RoleCustomer      = 2
)

func RoleName(roleID int) string {
	switch roleID {
	case RoleAdministrator:
		return "Administrador"
	case RoleCustomer:
		return "Cliente"
	}
	return ""
}
