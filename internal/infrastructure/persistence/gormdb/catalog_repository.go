package gormdb

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/rafabene/agendamento-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/agendamento-backend/internal/domain/errors"
	"github.com/rafabene/agendamento-backend/internal/domain/repositories"
)

// SpecialtyRepository implementa repositories.SpecialtyRepository
type SpecialtyRepository struct {
	db *gorm.DB
}

// NewSpecialtyRepository cria um novo SpecialtyRepository
func NewSpecialtyRepository(db *gorm.DB) repositories.SpecialtyRepository {
	return &SpecialtyRepository{db: db}
}

func (r *SpecialtyRepository) Create(ctx context.Context, specialty *entities.Specialty) error {
	model := &SpecialtyModel{Name: specialty.Name}

	if err := dbFrom(ctx, r.db).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrSpecialtyExists
		}
		return err
	}

	specialty.ID = model.ID
	return nil
}

func (r *SpecialtyRepository) FindByID(ctx context.Context, id uint, withDoctors bool) (*entities.Specialty, error) {
	var model SpecialtyModel

	query := dbFrom(ctx, r.db)
	if withDoctors {
		query = query.Preload("Doctors", func(db *gorm.DB) *gorm.DB {
			return db.Order("doctors.name ASC")
		})
	}

	if err := query.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return toSpecialtyEntity(&model), nil
}

func (r *SpecialtyRepository) FindByName(ctx context.Context, name string) (*entities.Specialty, error) {
	var model SpecialtyModel

	if err := dbFrom(ctx, r.db).Where("name = ?", name).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return toSpecialtyEntity(&model), nil
}

func (r *SpecialtyRepository) Update(ctx context.Context, specialty *entities.Specialty) error {
	err := dbFrom(ctx, r.db).Model(&SpecialtyModel{ID: specialty.ID}).Update("name", specialty.Name).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domainerrors.ErrSpecialtyExists
	}
	return err
}

func (r *SpecialtyRepository) Delete(ctx context.Context, id uint) (bool, error) {
	result := dbFrom(ctx, r.db).Delete(&SpecialtyModel{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *SpecialtyRepository) List(ctx context.Context) ([]*entities.Specialty, error) {
	var models []*SpecialtyModel

	if err := dbFrom(ctx, r.db).Order("name ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	specialties := make([]*entities.Specialty, 0, len(models))
	for _, model := range models {
		specialties = append(specialties, toSpecialtyEntity(model))
	}
	return specialties, nil
}

func (r *SpecialtyRepository) CountDoctors(ctx context.Context, id uint) (int64, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&DoctorModel{}).Where("specialty_id = ?", id).Count(&count).Error
	return count, err
}

// DoctorRepository implementa repositories.DoctorRepository
type DoctorRepository struct {
	db *gorm.DB
}

// NewDoctorRepository cria um novo DoctorRepository
func NewDoctorRepository(db *gorm.DB) repositories.DoctorRepository {
	return &DoctorRepository{db: db}
}

func (r *DoctorRepository) Create(ctx context.Context, doctor *entities.Doctor) error {
	model := &DoctorModel{Name: doctor.Name, SpecialtyID: doctor.SpecialtyID}

	if err := dbFrom(ctx, r.db).Create(model).Error; err != nil {
		return err
	}

	doctor.ID = model.ID
	return nil
}

func (r *DoctorRepository) FindByID(ctx context.Context, id uint) (*entities.Doctor, error) {
	var model DoctorModel

	if err := dbFrom(ctx, r.db).Preload("Specialty").First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return toDoctorEntity(&model), nil
}

func (r *DoctorRepository) Update(ctx context.Context, doctor *entities.Doctor) error {
	return dbFrom(ctx, r.db).Model(&DoctorModel{ID: doctor.ID}).Updates(map[string]any{
		"name":         doctor.Name,
		"specialty_id": doctor.SpecialtyID,
	}).Error
}

func (r *DoctorRepository) Delete(ctx context.Context, id uint) (bool, error) {
	result := dbFrom(ctx, r.db).Delete(&DoctorModel{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *DoctorRepository) List(ctx context.Context) ([]*entities.Doctor, error) {
	var models []*DoctorModel

	if err := dbFrom(ctx, r.db).Preload("Specialty").Order("id ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	doctors := make([]*entities.Doctor, 0, len(models))
	for _, model := range models {
		doctors = append(doctors, toDoctorEntity(model))
	}
	return doctors, nil
}

// Conversores
func toSpecialtyEntity(model *SpecialtyModel) *entities.Specialty {
	specialty := &entities.Specialty{
		ID:   model.ID,
		Name: model.Name,
	}
	if model.Doctors != nil {
		specialty.Doctors = make([]*entities.Doctor, 0, len(model.Doctors))
		for i := range model.Doctors {
			specialty.Doctors = append(specialty.Doctors, toDoctorEntity(&model.Doctors[i]))
		}
	}
	return specialty
}

func toDoctorEntity(model *DoctorModel) *entities.Doctor {
	doctor := &entities.Doctor{
		ID:          model.ID,
		Name:        model.Name,
		SpecialtyID: model.SpecialtyID,
	}
	if model.Specialty != nil {
		doctor.Specialty = &entities.Specialty{
			ID:   model.Specialty.ID,
			Name: model.Specialty.Name,
		}
	}
	return doctor
}
