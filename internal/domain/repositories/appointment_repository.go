package repositories

import (
	"context"

	"github.com/rafabene/agendamento-backend/internal/domain/entities"
)

// AppointmentRepository define a persistência de consultas.
// As leituras carregam sempre paciente, médico e especialidade do médico.
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *entities.Appointment) error
	FindByID(ctx context.Context, id uint) (*entities.Appointment, error)
	Update(ctx context.Context, appointment *entities.Appointment) error
	Delete(ctx context.Context, id uint) (bool, error)
	DeleteByUser(ctx context.Context, userID uint) error
	List(ctx context.Context, filters AppointmentFilters) ([]*entities.Appointment, error)
	Count(ctx context.Context, filters AppointmentFilters) (int64, error)
	MarkReminderSent(ctx context.Context, ids []uint) error
}

// AppointmentFilters contém filtros para listagem de consultas.
// Ordenação fixa: date ASC, time ASC.
type AppointmentFilters struct {
	PatientID   *uint
	DoctorID    *uint
	SpecialtyID *uint
	FromDate    string // YYYY-MM-DD, inclusivo
	ToDate      string // YYYY-MM-DD, inclusivo

	// Janela de lembretes: consultas entre From e Until (date+time) ainda sem lembrete
	ReminderWindow *ReminderWindow
}

// ReminderWindow delimita consultas por instante (date, time) em UTC
type ReminderWindow struct {
	FromDate  string
	FromClock string
	ToDate    string
	ToClock   string
}
