package gormdb

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/rafabene/agendamento-backend/internal/domain/entities"
	"github.com/rafabene/agendamento-backend/internal/domain/repositories"
	"github.com/rafabene/agendamento-backend/internal/domain/valueobjects"
)

// AppointmentRepository implementa repositories.AppointmentRepository
type AppointmentRepository struct {
	db *gorm.DB
}

// NewAppointmentRepository cria um novo AppointmentRepository
func NewAppointmentRepository(db *gorm.DB) repositories.AppointmentRepository {
	return &AppointmentRepository{db: db}
}

func (r *AppointmentRepository) Create(ctx context.Context, appointment *entities.Appointment) error {
	model := toAppointmentModel(appointment)

	if err := dbFrom(ctx, r.db).Omit("Patient", "Doctor").Create(model).Error; err != nil {
		return err
	}

	appointment.ID = model.ID
	return nil
}

func (r *AppointmentRepository) FindByID(ctx context.Context, id uint) (*entities.Appointment, error) {
	var model AppointmentModel

	err := withDetails(dbFrom(ctx, r.db)).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return toAppointmentEntity(&model)
}

func (r *AppointmentRepository) Update(ctx context.Context, appointment *entities.Appointment) error {
	model := toAppointmentModel(appointment)

	return dbFrom(ctx, r.db).Model(&AppointmentModel{ID: model.ID}).Updates(map[string]any{
		"date":          model.Date,
		"time":          model.Time,
		"notes":         model.Notes,
		"doctor_id":     model.DoctorID,
		"reminder_sent": model.ReminderSent,
	}).Error
}

func (r *AppointmentRepository) Delete(ctx context.Context, id uint) (bool, error) {
	result := dbFrom(ctx, r.db).Delete(&AppointmentModel{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *AppointmentRepository) DeleteByUser(ctx context.Context, userID uint) error {
	return dbFrom(ctx, r.db).Where("user_id = ?", userID).Delete(&AppointmentModel{}).Error
}

func (r *AppointmentRepository) List(ctx context.Context, filters repositories.AppointmentFilters) ([]*entities.Appointment, error) {
	var models []*AppointmentModel

	db := dbFrom(ctx, r.db)
	query := applyAppointmentFilters(db, withDetails(db.Model(&AppointmentModel{})), filters).
		Order("appointments.date ASC").
		Order("appointments.time ASC").
		Order("appointments.id ASC")

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	appointments := make([]*entities.Appointment, 0, len(models))
	for _, model := range models {
		appointment, err := toAppointmentEntity(model)
		if err != nil {
			return nil, err
		}
		appointments = append(appointments, appointment)
	}

	return appointments, nil
}

func (r *AppointmentRepository) Count(ctx context.Context, filters repositories.AppointmentFilters) (int64, error) {
	var count int64

	db := dbFrom(ctx, r.db)
	err := applyAppointmentFilters(db, db.Model(&AppointmentModel{}), filters).Count(&count).Error
	return count, err
}

func (r *AppointmentRepository) MarkReminderSent(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return dbFrom(ctx, r.db).Model(&AppointmentModel{}).
		Where("id IN ?", ids).
		Update("reminder_sent", true).Error
}

// withDetails carrega paciente, médico e especialidade do médico
func withDetails(db *gorm.DB) *gorm.DB {
	return db.Preload("Patient").Preload("Doctor.Specialty")
}

func applyAppointmentFilters(db, query *gorm.DB, filters repositories.AppointmentFilters) *gorm.DB {
	if filters.PatientID != nil {
		query = query.Where("appointments.user_id = ?", *filters.PatientID)
	}
	if filters.DoctorID != nil {
		query = query.Where("appointments.doctor_id = ?", *filters.DoctorID)
	}
	if filters.SpecialtyID != nil {
		doctors := db.Session(&gorm.Session{NewDB: true}).
			Model(&DoctorModel{}).
			Select("id").
			Where("specialty_id = ?", *filters.SpecialtyID)
		query = query.Where("appointments.doctor_id IN (?)", doctors)
	}
	if filters.FromDate != "" {
		query = query.Where("appointments.date >= ?", filters.FromDate)
	}
	if filters.ToDate != "" {
		query = query.Where("appointments.date <= ?", filters.ToDate)
	}
	if w := filters.ReminderWindow; w != nil {
		query = query.
			Where("appointments.reminder_sent = ?", false).
			Where("(appointments.date > ? OR (appointments.date = ? AND appointments.time >= ?))", w.FromDate, w.FromDate, w.FromClock).
			Where("(appointments.date < ? OR (appointments.date = ? AND appointments.time <= ?))", w.ToDate, w.ToDate, w.ToClock)
	}
	return query
}

// Conversores
func toAppointmentModel(appointment *entities.Appointment) *AppointmentModel {
	return &AppointmentModel{
		ID:           appointment.ID,
		Date:         appointment.Slot.Date(),
		Time:         appointment.Slot.Clock(),
		Notes:        appointment.Notes,
		UserID:       appointment.UserID,
		DoctorID:     appointment.DoctorID,
		ReminderSent: appointment.ReminderSent,
	}
}

func toAppointmentEntity(model *AppointmentModel) (*entities.Appointment, error) {
	slot, err := valueobjects.NewSlot(model.Date, model.Time)
	if err != nil {
		return nil, err
	}

	appointment := &entities.Appointment{
		ID:           model.ID,
		Slot:         slot,
		Notes:        model.Notes,
		UserID:       model.UserID,
		DoctorID:     model.DoctorID,
		ReminderSent: model.ReminderSent,
	}

	if model.Patient != nil {
		patient, err := toUserEntity(model.Patient)
		if err != nil {
			return nil, err
		}
		appointment.Patient = patient
	}
	if model.Doctor != nil {
		appointment.Doctor = toDoctorEntity(model.Doctor)
	}

	return appointment, nil
}
