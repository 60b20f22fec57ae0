package services

import (
	"context"
	"strings"

	"github.com/rafabene/agendamento-backend/internal/domain/entities"
	"github.com/rafabene/agendamento-backend/internal/domain/errors"
	"github.com/rafabene/agendamento-backend/internal/domain/ports"
	"github.com/rafabene/agendamento-backend/internal/domain/repositories"
)

// SpecialtyService gere o catálogo de especialidades
type SpecialtyService struct {
	specialtyRepo repositories.SpecialtyRepository
	uow           ports.UnitOfWork
	logger        ports.Logger
}

// NewSpecialtyService cria um novo SpecialtyService
func NewSpecialtyService(
	specialtyRepo repositories.SpecialtyRepository,
	uow ports.UnitOfWork,
	logger ports.Logger,
) *SpecialtyService {
	return &SpecialtyService{
		specialtyRepo: specialtyRepo,
		uow:           uow,
		logger:        logger,
	}
}

// ListSpecialties lista as especialidades por nome
func (s *SpecialtyService) ListSpecialties(ctx context.Context) ([]*entities.Specialty, error) {
	return s.specialtyRepo.List(ctx)
}

// GetSpecialty devolve a especialidade com os seus médicos
func (s *SpecialtyService) GetSpecialty(ctx context.Context, id uint) (*entities.Specialty, error) {
	specialty, err := s.specialtyRepo.FindByID(ctx, id, true)
	if err != nil {
		return nil, err
	}
	if specialty == nil {
		return nil, errors.ErrSpecialtyNotFound
	}
	return specialty, nil
}

// CreateSpecialty cria uma especialidade com nome único
func (s *SpecialtyService) CreateSpecialty(ctx context.Context, name string) (*entities.Specialty, error) {
	specialty := &entities.Specialty{Name: strings.TrimSpace(name)}
	if err := specialty.Validate(); err != nil {
		return nil, errors.NewBusinessRuleError("invalid specialty", err)
	}

	err := s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		existing, err := s.specialtyRepo.FindByName(txCtx, specialty.Name)
		if err != nil {
			return err
		}
		if existing != nil {
			return errors.ErrSpecialtyExists
		}
		return s.specialtyRepo.Create(txCtx, specialty)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("specialty created", "specialty_id", specialty.ID, "name", specialty.Name)
	return specialty, nil
}

// UpdateSpecialty renomeia uma especialidade
func (s *SpecialtyService) UpdateSpecialty(ctx context.Context, id uint, name string) (*entities.Specialty, error) {
	var specialty *entities.Specialty

	err := s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		var err error
		specialty, err = s.specialtyRepo.FindByID(txCtx, id, false)
		if err != nil {
			return err
		}
		if specialty == nil {
			return errors.ErrSpecialtyNotFound
		}

		specialty.Name = strings.TrimSpace(name)
		if err := specialty.Validate(); err != nil {
			return errors.NewBusinessRuleError("invalid specialty", err)
		}

		existing, err := s.specialtyRepo.FindByName(txCtx, specialty.Name)
		if err != nil {
			return err
		}
		if existing != nil && existing.ID != id {
			return errors.ErrSpecialtyExists
		}

		return s.specialtyRepo.Update(txCtx, specialty)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("specialty updated", "specialty_id", id)
	return specialty, nil
}

// DeleteSpecialty remove uma especialidade sem médicos associados
func (s *SpecialtyService) DeleteSpecialty(ctx context.Context, id uint) error {
	err := s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		specialty, err := s.specialtyRepo.FindByID(txCtx, id, false)
		if err != nil {
			return err
		}
		if specialty == nil {
			return errors.ErrSpecialtyNotFound
		}

		doctors, err := s.specialtyRepo.CountDoctors(txCtx, id)
		if err != nil {
			return err
		}
		if doctors > 0 {
			return errors.ErrSpecialtyInUse
		}

		_, err = s.specialtyRepo.Delete(txCtx, id)
		return err
	})
	if err != nil {
		return err
	}

	s.logger.Info("specialty deleted", "specialty_id", id)
	return nil
}

// DoctorService gere os médicos
type DoctorService struct {
	doctorRepo      repositories.DoctorRepository
	specialtyRepo   repositories.SpecialtyRepository
	appointmentRepo repositories.AppointmentRepository
	uow             ports.UnitOfWork
	logger          ports.Logger
}

// NewDoctorService cria um novo DoctorService
func NewDoctorService(
	doctorRepo repositories.DoctorRepository,
	specialtyRepo repositories.SpecialtyRepository,
	appointmentRepo repositories.AppointmentRepository,
	uow ports.UnitOfWork,
	logger ports.Logger,
) *DoctorService {
	return &DoctorService{
		doctorRepo:      doctorRepo,
		specialtyRepo:   specialtyRepo,
		appointmentRepo: appointmentRepo,
		uow:             uow,
		logger:          logger,
	}
}

// UpdateDoctorInput contém os campos alteráveis de um médico
type UpdateDoctorInput struct {
	Name        *string
	SpecialtyID *uint
}

// ListDoctors lista os médicos com a especialidade
func (s *DoctorService) ListDoctors(ctx context.Context) ([]*entities.Doctor, error) {
	return s.doctorRepo.List(ctx)
}

// GetDoctor busca um médico por ID
func (s *DoctorService) GetDoctor(ctx context.Context, id uint) (*entities.Doctor, error) {
	doctor, err := s.doctorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, errors.ErrDoctorNotFound
	}
	return doctor, nil
}

// CreateDoctor cria um médico numa especialidade existente
func (s *DoctorService) CreateDoctor(ctx context.Context, name string, specialtyID uint) (*entities.Doctor, error) {
	doctor := &entities.Doctor{Name: strings.TrimSpace(name), SpecialtyID: specialtyID}
	if err := doctor.Validate(); err != nil {
		return nil, errors.NewBusinessRuleError("invalid doctor", err)
	}

	err := s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.requireSpecialty(txCtx, specialtyID); err != nil {
			return err
		}
		if err := s.doctorRepo.Create(txCtx, doctor); err != nil {
			return err
		}

		created, err := s.doctorRepo.FindByID(txCtx, doctor.ID)
		if err != nil {
			return err
		}
		doctor = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("doctor created", "doctor_id", doctor.ID, "specialty_id", specialtyID)
	return doctor, nil
}

// UpdateDoctor altera nome e/ou especialidade
func (s *DoctorService) UpdateDoctor(ctx context.Context, id uint, input UpdateDoctorInput) (*entities.Doctor, error) {
	if input.Name == nil && input.SpecialtyID == nil {
		return nil, errors.ErrNoUpdatableFields
	}

	var doctor *entities.Doctor
	err := s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		var err error
		doctor, err = s.doctorRepo.FindByID(txCtx, id)
		if err != nil {
			return err
		}
		if doctor == nil {
			return errors.ErrDoctorNotFound
		}

		if input.Name != nil {
			doctor.Name = strings.TrimSpace(*input.Name)
		}
		if input.SpecialtyID != nil {
			if err := s.requireSpecialty(txCtx, *input.SpecialtyID); err != nil {
				return err
			}
			doctor.SpecialtyID = *input.SpecialtyID
		}
		if err := doctor.Validate(); err != nil {
			return errors.NewBusinessRuleError("invalid doctor", err)
		}

		if err := s.doctorRepo.Update(txCtx, doctor); err != nil {
			return err
		}

		doctor, err = s.doctorRepo.FindByID(txCtx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("doctor updated", "doctor_id", id)
	return doctor, nil
}

// DeleteDoctor remove um médico sem consultas
func (s *DoctorService) DeleteDoctor(ctx context.Context, id uint) error {
	err := s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		doctor, err := s.doctorRepo.FindByID(txCtx, id)
		if err != nil {
			return err
		}
		if doctor == nil {
			return errors.ErrDoctorNotFound
		}

		bookings, err := s.appointmentRepo.Count(txCtx, repositories.AppointmentFilters{DoctorID: &id})
		if err != nil {
			return err
		}
		if bookings > 0 {
			return errors.ErrDoctorHasBookings
		}

		_, err = s.doctorRepo.Delete(txCtx, id)
		return err
	})
	if err != nil {
		return err
	}

	s.logger.Info("doctor deleted", "doctor_id", id)
	return nil
}

// DoctorAppointments lista a agenda de um médico
func (s *DoctorService) DoctorAppointments(ctx context.Context, id uint) ([]*entities.Appointment, error) {
	if _, err := s.GetDoctor(ctx, id); err != nil {
		return nil, err
	}
	return s.appointmentRepo.List(ctx, repositories.AppointmentFilters{DoctorID: &id})
}

func (s *DoctorService) requireSpecialty(ctx context.Context, id uint) error {
	specialty, err := s.specialtyRepo.FindByID(ctx, id, false)
	if err != nil {
		return err
	}
	if specialty == nil {
		return errors.ErrInvalidSpecialty
	}
	return nil
}
