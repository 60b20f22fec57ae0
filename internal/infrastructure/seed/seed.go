// Package seed popula uma base vazia com dados de demonstração da clínica.
package seed

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/rafabene/agendamento-backend/internal/domain/entities"
	"github.com/rafabene/agendamento-backend/internal/domain/ports"
	"github.com/rafabene/agendamento-backend/internal/domain/repositories"
	"github.com/rafabene/agendamento-backend/internal/domain/valueobjects"
)

//go:embed data.json
var demoData []byte

type dataset struct {
	Users []struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		GoogleID string `json:"google_id"`
		Role     string `json:"role"`
	} `json:"users"`
	Specialties []string `json:"specialties"`
	Doctors     []struct {
		Name      string `json:"name"`
		Specialty int    `json:"specialty"`
	} `json:"doctors"`
	Appointments []struct {
		Date   string `json:"date"`
		Time   string `json:"time"`
		Notes  string `json:"notes"`
		User   int    `json:"user"`
		Doctor int    `json:"doctor"`
	} `json:"appointments"`
}

// Seeder insere os dados de demonstração
type Seeder struct {
	users        repositories.UserRepository
	specialties  repositories.SpecialtyRepository
	doctors      repositories.DoctorRepository
	appointments repositories.AppointmentRepository
	uow          ports.UnitOfWork
	logger       ports.Logger
}

// NewSeeder cria um novo Seeder
func NewSeeder(
	users repositories.UserRepository,
	specialties repositories.SpecialtyRepository,
	doctors repositories.DoctorRepository,
	appointments repositories.AppointmentRepository,
	uow ports.UnitOfWork,
	logger ports.Logger,
) *Seeder {
	return &Seeder{
		users:        users,
		specialties:  specialties,
		doctors:      doctors,
		appointments: appointments,
		uow:          uow,
		logger:       logger,
	}
}

// Run insere tudo numa única transação, apenas se a tabela de usuários estiver vazia.
// Devolve false quando nada foi feito.
func (s *Seeder) Run(ctx context.Context) (bool, error) {
	count, err := s.users.Count(ctx)
	if err != nil {
		return false, err
	}
	if count > 0 {
		s.logger.Info("seed skipped, database not empty", "users", count)
		return false, nil
	}

	var data dataset
	if err := json.Unmarshal(demoData, &data); err != nil {
		return false, fmt.Errorf("invalid seed data: %w", err)
	}

	err = s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		userIDs := make([]uint, len(data.Users))
		for i, u := range data.Users {
			email, err := valueobjects.NewEmail(u.Email)
			if err != nil {
				return fmt.Errorf("seed user %s: %w", u.Email, err)
			}
			googleID := u.GoogleID
			user := &entities.User{Name: u.Name, Email: email, GoogleID: &googleID, Role: entities.Role(u.Role)}
			if err := s.users.Create(txCtx, user); err != nil {
				return err
			}
			userIDs[i] = user.ID
		}

		specialtyIDs := make([]uint, len(data.Specialties))
		for i, name := range data.Specialties {
			specialty := &entities.Specialty{Name: name}
			if err := s.specialties.Create(txCtx, specialty); err != nil {
				return err
			}
			specialtyIDs[i] = specialty.ID
		}

		doctorIDs := make([]uint, len(data.Doctors))
		for i, d := range data.Doctors {
			doctor := &entities.Doctor{Name: d.Name, SpecialtyID: specialtyIDs[d.Specialty]}
			if err := s.doctors.Create(txCtx, doctor); err != nil {
				return err
			}
			doctorIDs[i] = doctor.ID
		}

		for _, a := range data.Appointments {
			slot, err := valueobjects.NewSlot(a.Date, a.Time)
			if err != nil {
				return fmt.Errorf("seed appointment %s %s: %w", a.Date, a.Time, err)
			}
			notes := a.Notes
			appointment := &entities.Appointment{
				Slot:     slot,
				Notes:    &notes,
				UserID:   userIDs[a.User],
				DoctorID: doctorIDs[a.Doctor],
			}
			if err := s.appointments.Create(txCtx, appointment); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("seed failed: %w", err)
	}

	s.logger.Info("database seeded",
		"users", len(data.Users),
		"specialties", len(data.Specialties),
		"doctors", len(data.Doctors),
		"appointments", len(data.Appointments),
	)
	return true, nil
}
