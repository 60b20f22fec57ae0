package services

import (
	"context"
	"strings"

	"github.com/rafabene/agendamento-backend/internal/domain/entities"
	"github.com/rafabene/agendamento-backend/internal/domain/errors"
	"github.com/rafabene/agendamento-backend/internal/domain/ports"
	"github.com/rafabene/agendamento-backend/internal/domain/repositories"
	"github.com/rafabene/agendamento-backend/internal/domain/valueobjects"
)

// AppointmentService aplica as regras de marcação e de acesso às consultas
type AppointmentService struct {
	appointmentRepo repositories.AppointmentRepository
	doctorRepo      repositories.DoctorRepository
	uow             ports.UnitOfWork
	publisher       ports.EventPublisher
	logger          ports.Logger
}

// NewAppointmentService cria um novo AppointmentService.
// publisher nil descarta os eventos.
func NewAppointmentService(
	appointmentRepo repositories.AppointmentRepository,
	doctorRepo repositories.DoctorRepository,
	uow ports.UnitOfWork,
	publisher ports.EventPublisher,
	logger ports.Logger,
) *AppointmentService {
	if publisher == nil {
		publisher = ports.NoopPublisher{}
	}
	return &AppointmentService{
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
		uow:             uow,
		publisher:       publisher,
		logger:          logger,
	}
}

// ListAppointmentsInput são os filtros pedidos pelo cliente
type ListAppointmentsInput struct {
	PatientID   *uint
	DoctorID    *uint
	SpecialtyID *uint
	FromDate    string // YYYY-MM-DD
	ToDate      string // YYYY-MM-DD
}

// CreateAppointmentInput representa o corpo de POST /appointments
type CreateAppointmentInput struct {
	When        string
	DoctorID    uint
	SpecialtyID uint
	Notes       *string
}

// UpdateAppointmentInput representa o corpo de PUT /appointments/:id
type UpdateAppointmentInput struct {
	When        *string
	Notes       *string
	DoctorID    *uint
	SpecialtyID *uint
}

// ListAppointments lista consultas. Um utilizador comum fica sempre restrito às suas.
func (s *AppointmentService) ListAppointments(ctx context.Context, actor *entities.User, input ListAppointmentsInput) ([]*entities.Appointment, error) {
	if actor == nil {
		return nil, errors.ErrUnauthorized
	}

	filters := repositories.AppointmentFilters{
		PatientID:   input.PatientID,
		DoctorID:    input.DoctorID,
		SpecialtyID: input.SpecialtyID,
		FromDate:    input.FromDate,
		ToDate:      input.ToDate,
	}

	if !actor.HasPermission(entities.PermissionAppointmentsReadAll) {
		if input.PatientID != nil && *input.PatientID != actor.ID {
			return nil, errors.ErrForbidden
		}
		own := actor.ID
		filters.PatientID = &own
	}

	return s.appointmentRepo.List(ctx, filters)
}

// GetAppointment busca uma consulta aplicando a regra de acesso
func (s *AppointmentService) GetAppointment(ctx context.Context, actor *entities.User, id uint) (*entities.Appointment, error) {
	return s.findAccessible(ctx, actor, id)
}

// CreateAppointment marca uma consulta para o utilizador autenticado
func (s *AppointmentService) CreateAppointment(ctx context.Context, actor *entities.User, input CreateAppointmentInput) (*entities.Appointment, error) {
	if actor == nil {
		return nil, errors.ErrUnauthorized
	}

	slot, err := valueobjects.ParseSlot(input.When)
	if err != nil {
		return nil, errors.ErrInvalidSlot
	}

	appointment := &entities.Appointment{
		Slot:     slot,
		Notes:    normalizeNotes(input.Notes),
		UserID:   actor.ID,
		DoctorID: input.DoctorID,
	}

	err = s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		doctor, err := s.doctorRepo.FindByID(txCtx, input.DoctorID)
		if err != nil {
			return err
		}
		if doctor == nil {
			return errors.ErrInvalidDoctor
		}
		if !doctor.BelongsTo(input.SpecialtyID) {
			return errors.ErrDoctorSpecialty
		}

		if err := s.appointmentRepo.Create(txCtx, appointment); err != nil {
			return err
		}

		appointment, err = s.appointmentRepo.FindByID(txCtx, appointment.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("appointment created",
		"appointment_id", appointment.ID,
		"user_id", appointment.UserID,
		"doctor_id", appointment.DoctorID,
		"at", appointment.Slot.ISO(),
	)
	s.publish(ports.EventAppointmentCreated, appointment)

	return appointment, nil
}

// UpdateAppointment altera data, notas e/ou médico
func (s *AppointmentService) UpdateAppointment(ctx context.Context, actor *entities.User, id uint, input UpdateAppointmentInput) (*entities.Appointment, error) {
	var appointment *entities.Appointment

	err := s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		var err error
		appointment, err = s.findAccessible(txCtx, actor, id)
		if err != nil {
			return err
		}

		if input.When != nil {
			slot, err := valueobjects.ParseSlot(*input.When)
			if err != nil {
				return errors.ErrInvalidSlot
			}
			if !slot.Time().Equal(appointment.Slot.Time()) {
				appointment.Slot = slot
				appointment.ReminderSent = false
			}
		}

		if input.Notes != nil {
			appointment.Notes = normalizeNotes(input.Notes)
		}

		doctor := appointment.Doctor
		if input.DoctorID != nil {
			doctor, err = s.doctorRepo.FindByID(txCtx, *input.DoctorID)
			if err != nil {
				return err
			}
			if doctor == nil {
				return errors.ErrInvalidDoctor
			}
			appointment.DoctorID = doctor.ID
		}

		if input.SpecialtyID != nil {
			if doctor == nil || !doctor.BelongsTo(*input.SpecialtyID) {
				return errors.ErrDoctorSpecialty
			}
		}

		// especialidadeId só valida, não altera nada
		if input.When == nil && input.Notes == nil && input.DoctorID == nil {
			return errors.ErrNoUpdatableFields
		}

		if err := s.appointmentRepo.Update(txCtx, appointment); err != nil {
			return err
		}

		appointment, err = s.appointmentRepo.FindByID(txCtx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("appointment updated", "appointment_id", id, "user_id", appointment.UserID)
	s.publish(ports.EventAppointmentUpdated, appointment)

	return appointment, nil
}

// DeleteAppointment remove uma consulta
func (s *AppointmentService) DeleteAppointment(ctx context.Context, actor *entities.User, id uint) error {
	var appointment *entities.Appointment

	err := s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		var err error
		appointment, err = s.findAccessible(txCtx, actor, id)
		if err != nil {
			return err
		}

		deleted, err := s.appointmentRepo.Delete(txCtx, id)
		if err != nil {
			return err
		}
		if !deleted {
			return errors.ErrAppointmentNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("appointment deleted", "appointment_id", id, "user_id", appointment.UserID)
	s.publish(ports.EventAppointmentDeleted, appointment)

	return nil
}

func (s *AppointmentService) findAccessible(ctx context.Context, actor *entities.User, id uint) (*entities.Appointment, error) {
	if actor == nil {
		return nil, errors.ErrUnauthorized
	}

	appointment, err := s.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, errors.ErrAppointmentNotFound
	}
	if !appointment.CanBeAccessedBy(actor) {
		return nil, errors.ErrForbidden
	}
	return appointment, nil
}

func (s *AppointmentService) publish(eventType string, appointment *entities.Appointment) {
	s.publisher.Publish(ports.AppointmentEvent{
		Type:    eventType,
		OwnerID: appointment.UserID,
		Payload: appointment,
	})
}

// normalizeNotes converte notas vazias em nil
func normalizeNotes(notes *string) *string {
	if notes == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*notes)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
