package entities

// Role representa o papel de um usuário no sistema
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// IsValid verifica se o role é conhecido
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleUser
}

// Permission representa uma permissão específica
type Permission string

const (
	// User permissions
	PermissionUsersManage Permission = "users.manage"

	// Catálogo (especialidades e médicos)
	PermissionCatalogManage Permission = "catalog.manage"

	// Appointment permissions
	PermissionAppointmentsBook    Permission = "appointments.book"
	PermissionAppointmentsReadAll Permission = "appointments.read_all"
	PermissionAppointmentsExport  Permission = "appointments.export"
)

// RolePermissions mapeia roles para suas permissões
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionUsersManage,
		PermissionCatalogManage,
		PermissionAppointmentsBook,
		PermissionAppointmentsReadAll,
		PermissionAppointmentsExport,
	},
	RoleUser: {
		PermissionAppointmentsBook,
	},
}

// GetPermissions retorna permissões de um role
func (r Role) GetPermissions() []Permission {
	return RolePermissions[r]
}

// HasPermission verifica se role tem permissão
func (r Role) HasPermission(permission Permission) bool {
	permissions := RolePermissions[r]
	for _, p := range permissions {
		if p == permission {
			return true
		}
	}
	return false
}
