package ports

// Tipos de evento publicados sobre consultas
const (
	EventAppointmentCreated  = "appointment.created"
	EventAppointmentUpdated  = "appointment.updated"
	EventAppointmentDeleted  = "appointment.deleted"
	EventAppointmentReminder = "appointment.reminder"
)

// AppointmentEvent é entregue aos clientes em tempo real.
// OwnerID é usado para filtrar quem recebe o evento.
type AppointmentEvent struct {
	Type    string `json:"type"`
	OwnerID uint   `json:"-"`
	Payload any    `json:"appointment"`
}

// EventPublisher publica eventos de domínio
type EventPublisher interface {
	Publish(event AppointmentEvent)
}

// NoopPublisher descarta eventos
type NoopPublisher struct{}

func (NoopPublisher) Publish(AppointmentEvent) {}
