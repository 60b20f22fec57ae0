package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/agendamento-backend/internal/domain/ports"
	"github.com/rafabene/agendamento-backend/internal/handlers/dto"
	"github.com/rafabene/agendamento-backend/internal/services"
)

// SpecialtyHandler expõe /specialties
type SpecialtyHandler struct {
	specialtyService *services.SpecialtyService
	logger           ports.Logger
}

// NewSpecialtyHandler cria um novo SpecialtyHandler
func NewSpecialtyHandler(specialtyService *services.SpecialtyService, logger ports.Logger) *SpecialtyHandler {
	return &SpecialtyHandler{specialtyService: specialtyService, logger: logger}
}

// ListSpecialties lista especialidades por nome
//
//	@Summary	Lista especialidades
//	@Tags		specialties
//	@Produce	json
//	@Success	200	{array}	dto.NamedRef
//	@Router		/specialties [get]
func (h *SpecialtyHandler) ListSpecialties(c *gin.Context) {
	specialties, err := h.specialtyService.ListSpecialties(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSpecialtyResponses(specialties))
}

// GetSpecialty devolve a especialidade com os seus médicos
//
//	@Summary	Busca especialidade
//	@Tags		specialties
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		int	true	"id da especialidade"
//	@Success	200	{object}	dto.SpecialtyDetailResponse
//	@Failure	404	{object}	dto.ErrorResponse
//	@Router		/specialties/{id} [get]
func (h *SpecialtyHandler) GetSpecialty(c *gin.Context) {
	id, ok := pathID(c, "id", "specialty")
	if !ok {
		return
	}

	specialty, err := h.specialtyService.GetSpecialty(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSpecialtyDetailResponse(specialty))
}

// CreateSpecialty cria uma especialidade
//
//	@Summary	Cria especialidade
//	@Tags		specialties
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		dto.SpecialtyRequest	true	"especialidade"
//	@Success	201		{object}	dto.NamedRef
//	@Failure	400		{object}	dto.ErrorResponse
//	@Router		/specialties [post]
func (h *SpecialtyHandler) CreateSpecialty(c *gin.Context) {
	var req dto.SpecialtyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	specialty, err := h.specialtyService.CreateSpecialty(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NamedRef{ID: specialty.ID, Name: specialty.Name})
}

// UpdateSpecialty renomeia uma especialidade
//
//	@Summary	Atualiza especialidade
//	@Tags		specialties
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int						true	"id da especialidade"
//	@Param		body	body		dto.SpecialtyRequest	true	"especialidade"
//	@Success	200		{object}	dto.NamedRef
//	@Failure	400		{object}	dto.ErrorResponse
//	@Failure	404		{object}	dto.ErrorResponse
//	@Router		/specialties/{id} [put]
func (h *SpecialtyHandler) UpdateSpecialty(c *gin.Context) {
	id, ok := pathID(c, "id", "specialty")
	if !ok {
		return
	}

	if _, err := h.specialtyService.GetSpecialty(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	var req dto.SpecialtyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	specialty, err := h.specialtyService.UpdateSpecialty(c.Request.Context(), id, req.Name)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NamedRef{ID: specialty.ID, Name: specialty.Name})
}

// DeleteSpecialty remove uma especialidade sem médicos
//
//	@Summary	Remove especialidade
//	@Tags		specialties
//	@Security	BearerAuth
//	@Param		id	path	int	true	"id da especialidade"
//	@Success	204
//	@Failure	400	{object}	dto.ErrorResponse
//	@Failure	404	{object}	dto.ErrorResponse
//	@Router		/specialties/{id} [delete]
func (h *SpecialtyHandler) DeleteSpecialty(c *gin.Context) {
	id, ok := pathID(c, "id", "specialty")
	if !ok {
		return
	}

	if err := h.specialtyService.DeleteSpecialty(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DoctorHandler expõe /doctors
type DoctorHandler struct {
	doctorService *services.DoctorService
	logger        ports.Logger
}

// NewDoctorHandler cria um novo DoctorHandler
func NewDoctorHandler(doctorService *services.DoctorService, logger ports.Logger) *DoctorHandler {
	return &DoctorHandler{doctorService: doctorService, logger: logger}
}

// ListDoctors lista médicos com a especialidade
//
//	@Summary	Lista médicos
//	@Tags		doctors
//	@Produce	json
//	@Success	200	{array}	dto.DoctorResponse
//	@Router		/doctors [get]
func (h *DoctorHandler) ListDoctors(c *gin.Context) {
	doctors, err := h.doctorService.ListDoctors(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToDoctorResponses(doctors))
}

// GetDoctor busca um médico
//
//	@Summary	Busca médico
//	@Tags		doctors
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		int	true	"id do médico"
//	@Success	200	{object}	dto.DoctorResponse
//	@Failure	404	{object}	dto.ErrorResponse
//	@Router		/doctors/{id} [get]
func (h *DoctorHandler) GetDoctor(c *gin.Context) {
	id, ok := pathID(c, "id", "doctor")
	if !ok {
		return
	}

	doctor, err := h.doctorService.GetDoctor(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToDoctorResponse(doctor))
}

// CreateDoctor cria um médico
//
//	@Summary	Cria médico
//	@Tags		doctors
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		dto.CreateDoctorRequest	true	"médico"
//	@Success	201		{object}	dto.DoctorResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Router		/doctors [post]
func (h *DoctorHandler) CreateDoctor(c *gin.Context) {
	var req dto.CreateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	doctor, err := h.doctorService.CreateDoctor(c.Request.Context(), req.Name, req.SpecialtyID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToDoctorResponse(doctor))
}

// UpdateDoctor altera nome e/ou especialidade
//
//	@Summary	Atualiza médico
//	@Tags		doctors
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int						true	"id do médico"
//	@Param		body	body		dto.UpdateDoctorRequest	true	"campos"
//	@Success	200		{object}	dto.DoctorResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Failure	404		{object}	dto.ErrorResponse
//	@Router		/doctors/{id} [put]
func (h *DoctorHandler) UpdateDoctor(c *gin.Context) {
	id, ok := pathID(c, "id", "doctor")
	if !ok {
		return
	}

	if _, err := h.doctorService.GetDoctor(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	var req dto.UpdateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	doctor, err := h.doctorService.UpdateDoctor(c.Request.Context(), id, services.UpdateDoctorInput{
		Name:        req.Name,
		SpecialtyID: req.SpecialtyID,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToDoctorResponse(doctor))
}

// DeleteDoctor remove um médico sem consultas
//
//	@Summary	Remove médico
//	@Tags		doctors
//	@Security	BearerAuth
//	@Param		id	path	int	true	"id do médico"
//	@Success	204
//	@Failure	400	{object}	dto.ErrorResponse
//	@Failure	404	{object}	dto.ErrorResponse
//	@Router		/doctors/{id} [delete]
func (h *DoctorHandler) DeleteDoctor(c *gin.Context) {
	id, ok := pathID(c, "id", "doctor")
	if !ok {
		return
	}

	if err := h.doctorService.DeleteDoctor(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DoctorAppointments lista a agenda do médico
//
//	@Summary	Consultas de um médico
//	@Tags		doctors
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		int	true	"id do médico"
//	@Success	200	{array}		dto.AppointmentResponse
//	@Failure	404	{object}	dto.ErrorResponse
//	@Router		/doctors/{id}/appointments [get]
func (h *DoctorHandler) DoctorAppointments(c *gin.Context) {
	id, ok := pathID(c, "id", "doctor")
	if !ok {
		return
	}

	appointments, err := h.doctorService.DoctorAppointments(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAppointmentResponses(appointments))
}
