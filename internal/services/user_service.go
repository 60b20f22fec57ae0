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

// UserService contém a lógica de negócio para usuários
type UserService struct {
	userRepo        repositories.UserRepository
	appointmentRepo repositories.AppointmentRepository
	uow             ports.UnitOfWork
	logger          ports.Logger
}

// NewUserService cria um novo UserService
func NewUserService(
	userRepo repositories.UserRepository,
	appointmentRepo repositories.AppointmentRepository,
	uow ports.UnitOfWork,
	logger ports.Logger,
) *UserService {
	return &UserService{
		userRepo:        userRepo,
		appointmentRepo: appointmentRepo,
		uow:             uow,
		logger:          logger,
	}
}

// CreateUserInput representa os dados para criar um usuário
type CreateUserInput struct {
	Name     string
	Email    string
	GoogleID string
	Role     string // vazio = user
}

// UpdateUserInput contém os campos alteráveis (email e google_id não são)
type UpdateUserInput struct {
	Name *string
	Role *string
}

// CreateUser cria um novo usuário
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*entities.User, error) {
	s.logger.Info("creating user", "email", input.Email)

	email, err := valueobjects.NewEmail(input.Email)
	if err != nil {
		return nil, errors.ErrInvalidEmail
	}

	role, err := parseRole(input.Role)
	if err != nil {
		return nil, err
	}

	googleID := strings.TrimSpace(input.GoogleID)
	user := &entities.User{
		Name:     strings.TrimSpace(input.Name),
		Email:    email,
		GoogleID: &googleID,
		Role:     role,
	}
	if err := user.Validate(); err != nil {
		return nil, errors.NewBusinessRuleError("invalid user", err)
	}

	err = s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		existing, err := s.userRepo.FindByEmail(txCtx, email.String())
		if err != nil {
			return err
		}
		if existing != nil {
			return errors.ErrEmailAlreadyExists
		}

		existing, err = s.userRepo.FindByGoogleID(txCtx, googleID)
		if err != nil {
			return err
		}
		if existing != nil {
			return errors.ErrGoogleIDExists
		}

		return s.userRepo.Create(txCtx, user)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user created", "user_id", user.ID, "role", user.Role)
	return user, nil
}

// GetUser busca um usuário por ID
func (s *UserService) GetUser(ctx context.Context, id uint) (*entities.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.ErrUserNotFound
	}
	return user, nil
}

// ListUsers lista usuários com filtros
func (s *UserService) ListUsers(ctx context.Context, filters repositories.UserFilters) ([]*entities.User, error) {
	return s.userRepo.List(ctx, filters)
}

// UpdateUser altera nome e/ou papel
func (s *UserService) UpdateUser(ctx context.Context, id uint, input UpdateUserInput) (*entities.User, error) {
	if input.Name == nil && input.Role == nil {
		return nil, errors.ErrNoUpdatableFields
	}

	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = strings.TrimSpace(*input.Name)
	}
	if input.Role != nil {
		role, err := parseRole(*input.Role)
		if err != nil {
			return nil, err
		}
		user.Role = role
	}
	if err := user.Validate(); err != nil {
		return nil, errors.NewBusinessRuleError("invalid user", err)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user updated", "user_id", user.ID)
	return user, nil
}

// DeleteUser remove o usuário e as suas consultas na mesma transação
func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	err := s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.appointmentRepo.DeleteByUser(txCtx, id); err != nil {
			return err
		}

		deleted, err := s.userRepo.Delete(txCtx, id)
		if err != nil {
			return err
		}
		if !deleted {
			return errors.ErrUserNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("user deleted", "user_id", id)
	return nil
}

// UserAppointments lista as consultas de um usuário, opcionalmente de uma especialidade.
// Apenas o próprio ou um admin.
func (s *UserService) UserAppointments(ctx context.Context, actor *entities.User, userID uint, specialtyID *uint) ([]*entities.Appointment, error) {
	if err := s.checkSelfOrAdmin(ctx, actor, userID); err != nil {
		return nil, err
	}

	return s.appointmentRepo.List(ctx, repositories.AppointmentFilters{
		PatientID:   &userID,
		SpecialtyID: specialtyID,
	})
}

// UserDoctors devolve os médicos distintos com quem o usuário tem consultas,
// pela ordem da primeira consulta
func (s *UserService) UserDoctors(ctx context.Context, actor *entities.User, userID uint) ([]*entities.Doctor, error) {
	appointments, err := s.UserAppointments(ctx, actor, userID, nil)
	if err != nil {
		return nil, err
	}

	seen := make(map[uint]struct{}, len(appointments))
	doctors := make([]*entities.Doctor, 0, len(appointments))
	for _, a := range appointments {
		if a.Doctor == nil {
			continue
		}
		if _, ok := seen[a.Doctor.ID]; ok {
			continue
		}
		seen[a.Doctor.ID] = struct{}{}
		doctors = append(doctors, a.Doctor)
	}
	return doctors, nil
}

func (s *UserService) checkSelfOrAdmin(ctx context.Context, actor *entities.User, userID uint) error {
	if actor == nil {
		return errors.ErrUnauthorized
	}
	if !actor.IsAdmin() && actor.ID != userID {
		return errors.ErrForbidden
	}
	if actor.IsAdmin() && actor.ID != userID {
		if _, err := s.GetUser(ctx, userID); err != nil {
			return err
		}
	}
	return nil
}

func parseRole(value string) (entities.Role, error) {
	if value == "" {
		return entities.RoleUser, nil
	}
	role := entities.Role(strings.ToLower(strings.TrimSpace(value)))
	if !role.IsValid() {
		return "", errors.ErrInvalidRole
	}
	return role, nil
}
