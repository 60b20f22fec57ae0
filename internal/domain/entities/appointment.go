package entities

import (
	"github.com/rafabene/agendamento-backend/internal/domain/valueobjects"
)

// Appointment é uma consulta que liga um paciente a um médico num horário
type Appointment struct {
	ID           uint
	Slot         valueobjects.Slot
	Notes        *string
	UserID       uint
	DoctorID     uint
	ReminderSent bool

	// Associações carregadas nas leituras
	Patient *User
	Doctor  *Doctor
}

// Specialty devolve a especialidade alcançada através do médico
func (a *Appointment) Specialty() *Specialty {
	if a.Doctor == nil {
		return nil
	}
	return a.Doctor.Specialty
}

// CanBeAccessedBy aplica a regra de acesso: admin vê tudo,
// um utilizador comum apenas as próprias consultas.
func (a *Appointment) CanBeAccessedBy(user *User) bool {
	if user == nil || !user.Role.IsValid() {
		return false
	}
	if user.IsAdmin() {
		return true
	}
	return user.ID == a.UserID
}
