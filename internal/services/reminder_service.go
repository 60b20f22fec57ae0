package services

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/rafabene/agendamento-backend/internal/domain/ports"
	"github.com/rafabene/agendamento-backend/internal/domain/repositories"
	"github.com/rafabene/agendamento-backend/internal/domain/valueobjects"
)

// ReminderService procura consultas próximas e emite lembretes
type ReminderService struct {
	appointmentRepo repositories.AppointmentRepository
	publisher       ports.EventPublisher
	logger          ports.Logger
	leadTime        time.Duration
	now             func() time.Time
}

// NewReminderService cria um ReminderService; leadTime é a antecedência do lembrete
func NewReminderService(
	appointmentRepo repositories.AppointmentRepository,
	publisher ports.EventPublisher,
	logger ports.Logger,
	leadTime time.Duration,
) *ReminderService {
	if publisher == nil {
		publisher = ports.NoopPublisher{}
	}
	return &ReminderService{
		appointmentRepo: appointmentRepo,
		publisher:       publisher,
		logger:          logger.With("component", "reminders"),
		leadTime:        leadTime,
		now:             time.Now,
	}
}

// SendDueReminders envia lembretes das consultas entre agora e agora+leadTime
// que ainda não foram lembradas. Devolve quantas foram marcadas.
func (s *ReminderService) SendDueReminders(ctx context.Context) (int, error) {
	from := valueobjects.SlotFromTime(s.now())
	until := valueobjects.SlotFromTime(from.Time().Add(s.leadTime))

	due, err := s.appointmentRepo.List(ctx, repositories.AppointmentFilters{
		ReminderWindow: &repositories.ReminderWindow{
			FromDate:  from.Date(),
			FromClock: from.Clock(),
			ToDate:    until.Date(),
			ToClock:   until.Clock(),
		},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to query upcoming appointments: %w", err)
	}

	if len(due) == 0 {
		return 0, nil
	}

	ids := make([]uint, 0, len(due))
	for _, appointment := range due {
		s.logger.Info("appointment reminder",
			"appointment_id", appointment.ID,
			"user_id", appointment.UserID,
			"at", appointment.Slot.ISO(),
		)
		s.publisher.Publish(ports.AppointmentEvent{
			Type:    ports.EventAppointmentReminder,
			OwnerID: appointment.UserID,
			Payload: appointment,
		})
		ids = append(ids, appointment.ID)
	}

	if err := s.appointmentRepo.MarkReminderSent(ctx, ids); err != nil {
		return 0, fmt.Errorf("failed to mark reminders: %w", err)
	}

	return len(ids), nil
}

// Start agenda SendDueReminders a cada interval. O chamador faz Stop no scheduler.
func (s *ReminderService) Start(ctx context.Context, interval time.Duration) (*gocron.Scheduler, error) {
	scheduler := gocron.NewScheduler(time.UTC)
	scheduler.SingletonModeAll()

	_, err := scheduler.Every(interval).Do(func() {
		sent, err := s.SendDueReminders(ctx)
		if err != nil {
			s.logger.Error("reminder run failed", "error", err)
			return
		}
		if sent > 0 {
			s.logger.Info("reminders sent", "count", sent)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to schedule reminders: %w", err)
	}

	scheduler.StartAsync()
	s.logger.Info("reminder job started", "interval", interval.String(), "lead_time", s.leadTime.String())

	return scheduler, nil
}
