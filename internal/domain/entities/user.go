package entities

import (
	"errors"

	"github.com/rafabene/agendamento-backend/internal/domain/valueobjects"
)

var (
	ErrInvalidUserData = errors.New("invalid user data")
)

// User representa um utilizador do sistema (paciente ou administrador)
type User struct {
	ID       uint
	Email    valueobjects.Email
	Name     string
	GoogleID *string
	Role     Role
}

// IsAdmin verifica se o usuário é admin
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// HasPermission verifica se o usuário tem uma permissão
func (u *User) HasPermission(permission Permission) bool {
	return u.Role.HasPermission(permission)
}

// GetPermissions retorna todas as permissões do usuário
func (u *User) GetPermissions() []string {
	perms := u.Role.GetPermissions()
	result := make([]string, len(perms))
	for i, p := range perms {
		result[i] = string(p)
	}
	return result
}

// Validate valida regras de negócio da entidade User
func (u *User) Validate() error {
	if u.Email.String() == "" {
		return errors.New("email is required")
	}

	if u.Name == "" {
		return errors.New("name is required")
	}

	if !u.Role.IsValid() {
		return errors.New("invalid role")
	}

	return nil
}
