package dto

import (
	"github.com/rafabene/agendamento-backend/internal/domain/entities"
)

// SpecialtyRequest é o corpo de POST e PUT /specialties
type SpecialtyRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

// SpecialtyDetailResponse inclui os médicos da especialidade
type SpecialtyDetailResponse struct {
	ID      uint       `json:"id"`
	Name    string     `json:"name"`
	Doctors []NamedRef `json:"doctors"`
}

// CreateDoctorRequest é o corpo de POST /doctors
type CreateDoctorRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	SpecialtyID uint   `json:"specialty_id" binding:"required,gt=0"`
}

// UpdateDoctorRequest é o corpo de PUT /doctors/:id
type UpdateDoctorRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=255"`
	SpecialtyID *uint   `json:"specialty_id" binding:"omitempty,gt=0"`
}

// DoctorResponse representa um médico com a especialidade embutida
type DoctorResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	SpecialtyID uint      `json:"specialty_id"`
	Specialty   *NamedRef `json:"specialty"`
}

// ToSpecialtyResponses converte especialidades para {id, name}
func ToSpecialtyResponses(specialties []*entities.Specialty) []NamedRef {
	responses := make([]NamedRef, len(specialties))
	for i, s := range specialties {
		responses[i] = NamedRef{ID: s.ID, Name: s.Name}
	}
	return responses
}

// ToSpecialtyDetailResponse converte uma especialidade com os seus médicos
func ToSpecialtyDetailResponse(specialty *entities.Specialty) SpecialtyDetailResponse {
	doctors := make([]NamedRef, len(specialty.Doctors))
	for i, d := range specialty.Doctors {
		doctors[i] = NamedRef{ID: d.ID, Name: d.Name}
	}
	return SpecialtyDetailResponse{ID: specialty.ID, Name: specialty.Name, Doctors: doctors}
}

// ToDoctorResponse converte um médico
func ToDoctorResponse(doctor *entities.Doctor) DoctorResponse {
	response := DoctorResponse{
		ID:          doctor.ID,
		Name:        doctor.Name,
		SpecialtyID: doctor.SpecialtyID,
	}
	if doctor.Specialty != nil {
		response.Specialty = &NamedRef{ID: doctor.Specialty.ID, Name: doctor.Specialty.Name}
	}
	return response
}

// ToDoctorResponses converte uma lista de médicos
func ToDoctorResponses(doctors []*entities.Doctor) []DoctorResponse {
	responses := make([]DoctorResponse, len(doctors))
	for i, d := range doctors {
		responses[i] = ToDoctorResponse(d)
	}
	return responses
}

// ToDoctorRefs converte médicos para {id, name}
func ToDoctorRefs(doctors []*entities.Doctor) []NamedRef {
	responses := make([]NamedRef, len(doctors))
	for i, d := range doctors {
		responses[i] = NamedRef{ID: d.ID, Name: d.Name}
	}
	return responses
}
