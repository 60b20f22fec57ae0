package repositories

import (
	"context"

	"github.com/rafabene/agendamento-backend/internal/domain/entities"
)

// SpecialtyRepository define a persistência de especialidades
type SpecialtyRepository interface {
	Create(ctx context.Context, specialty *entities.Specialty) error
	FindByID(ctx context.Context, id uint, withDoctors bool) (*entities.Specialty, error)
	FindByName(ctx context.Context, name string) (*entities.Specialty, error)
	Update(ctx context.Context, specialty *entities.Specialty) error
	Delete(ctx context.Context, id uint) (bool, error)
	List(ctx context.Context) ([]*entities.Specialty, error)
	CountDoctors(ctx context.Context, id uint) (int64, error)
}

// DoctorRepository define a persistência de médicos
type DoctorRepository interface {
	Create(ctx context.Context, doctor *entities.Doctor) error
	FindByID(ctx context.Context, id uint) (*entities.Doctor, error)
	Update(ctx context.Context, doctor *entities.Doctor) error
	Delete(ctx context.Context, id uint) (bool, error)
	List(ctx context.Context) ([]*entities.Doctor, error)
}
