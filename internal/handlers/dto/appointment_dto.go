package dto

import (
	"github.com/rafabene/agendamento-backend/internal/domain/entities"
	"github.com/rafabene/agendamento-backend/internal/domain/ports"
)

// CreateAppointmentRequest é o corpo de POST /appointments
type CreateAppointmentRequest struct {
	Data            string  `json:"data" binding:"required"`
	MedicoID        uint    `json:"medicoId" binding:"required,gt=0"`
	EspecialidadeID uint    `json:"especialidadeId" binding:"required,gt=0"`
	Descricao       *string `json:"descricao"`
}

// UpdateAppointmentRequest é o corpo de PUT /appointments/:id
type UpdateAppointmentRequest struct {
	Data            *string `json:"data" binding:"omitempty,min=1"`
	MedicoID        *uint   `json:"medicoId" binding:"omitempty,gt=0"`
	EspecialidadeID *uint   `json:"especialidadeId" binding:"omitempty,gt=0"`
	Descricao       *string `json:"descricao"`
}

// AppointmentResponse é a forma pública de uma consulta.
// data é o instante UTC recombinado (YYYY-MM-DDTHH:MM:SS.000Z).
type AppointmentResponse struct {
	ID        uint      `json:"id"`
	Data      string    `json:"data"`
	Descricao *string   `json:"descricao"`
	Specialty *NamedRef `json:"specialty"`
	Medico    *NamedRef `json:"medico"`
	Paciente  *NamedRef `json:"paciente"`
}

// ToAppointmentResponse converte uma consulta com relações carregadas
func ToAppointmentResponse(appointment *entities.Appointment) AppointmentResponse {
	response := AppointmentResponse{
		ID:        appointment.ID,
		Data:      appointment.Slot.ISO(),
		Descricao: appointment.Notes,
	}
	if specialty := appointment.Specialty(); specialty != nil {
		response.Specialty = &NamedRef{ID: specialty.ID, Name: specialty.Name}
	}
	if appointment.Doctor != nil {
		response.Medico = &NamedRef{ID: appointment.Doctor.ID, Name: appointment.Doctor.Name}
	}
	if appointment.Patient != nil {
		response.Paciente = &NamedRef{ID: appointment.Patient.ID, Name: appointment.Patient.Name}
	}
	return response
}

// ToAppointmentResponses converte uma lista de consultas
func ToAppointmentResponses(appointments []*entities.Appointment) []AppointmentResponse {
	responses := make([]AppointmentResponse, len(appointments))
	for i, a := range appointments {
		responses[i] = ToAppointmentResponse(a)
	}
	return responses
}

// AppointmentEventPresenter converte o payload dos eventos para AppointmentResponse
// antes de os entregar ao publisher seguinte (o hub websocket).
type AppointmentEventPresenter struct {
	next ports.EventPublisher
}

// NewAppointmentEventPresenter cria um presenter sobre next
func NewAppointmentEventPresenter(next ports.EventPublisher) *AppointmentEventPresenter {
	return &AppointmentEventPresenter{next: next}
}

func (p *AppointmentEventPresenter) Publish(event ports.AppointmentEvent) {
	if appointment, ok := event.Payload.(*entities.Appointment); ok {
		event.Payload = ToAppointmentResponse(appointment)
	}
	p.next.Publish(event)
}
