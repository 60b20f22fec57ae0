package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/agendamento-backend/internal/domain/ports"
	"github.com/rafabene/agendamento-backend/internal/handlers/dto"
	"github.com/rafabene/agendamento-backend/internal/handlers/middleware"
	"github.com/rafabene/agendamento-backend/internal/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// AppointmentHandler expõe /appointments
type AppointmentHandler struct {
	appointmentService *services.AppointmentService
	exportService      *services.ExportService
	logger             ports.Logger
}

// NewAppointmentHandler cria um novo AppointmentHandler
func NewAppointmentHandler(
	appointmentService *services.AppointmentService,
	exportService *services.ExportService,
	logger ports.Logger,
) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentService: appointmentService,
		exportService:      exportService,
		logger:             logger,
	}
}

// listInput lê os filtros de listagem. medicoId e especialidadeId são aceitos como alias.
func listInput(c *gin.Context) (services.ListAppointmentsInput, bool) {
	var input services.ListAppointmentsInput
	var ok bool

	if input.PatientID, ok = queryID(c, "patientId"); !ok {
		return input, false
	}
	if input.DoctorID, ok = queryID(c, "doctorId", "medicoId"); !ok {
		return input, false
	}
	if input.SpecialtyID, ok = queryID(c, "specialtyId", "especialidadeId"); !ok {
		return input, false
	}
	if input.FromDate, ok = queryDate(c, "from"); !ok {
		return input, false
	}
	if input.ToDate, ok = queryDate(c, "to"); !ok {
		return input, false
	}
	return input, true
}

// ListAppointments lista consultas visíveis ao utilizador
//
//	@Summary	Lista consultas
//	@Tags		appointments
//	@Security	BearerAuth
//	@Produce	json
//	@Param		patientId	query		int		false	"paciente (apenas admin para outros)"
//	@Param		doctorId	query		int		false	"médico (alias medicoId)"
//	@Param		specialtyId	query		int		false	"especialidade (alias especialidadeId)"
//	@Param		from		query		string	false	"data inicial YYYY-MM-DD"
//	@Param		to			query		string	false	"data final YYYY-MM-DD"
//	@Success	200			{array}		dto.AppointmentResponse
//	@Failure	400			{object}	dto.ErrorResponse
//	@Failure	403			{object}	dto.ErrorResponse
//	@Router		/appointments [get]
func (h *AppointmentHandler) ListAppointments(c *gin.Context) {
	input, ok := listInput(c)
	if !ok {
		return
	}

	appointments, err := h.appointmentService.ListAppointments(c.Request.Context(), middleware.CurrentUser(c), input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAppointmentResponses(appointments))
}

// ExportAppointments devolve a lista filtrada em XLSX
//
//	@Summary	Exporta consultas
//	@Tags		appointments
//	@Security	BearerAuth
//	@Produce	application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
//	@Param		doctorId	query	int		false	"médico"
//	@Param		specialtyId	query	int		false	"especialidade"
//	@Param		from		query	string	false	"data inicial YYYY-MM-DD"
//	@Param		to			query	string	false	"data final YYYY-MM-DD"
//	@Success	200
//	@Failure	403	{object}	dto.ErrorResponse
//	@Router		/appointments/export [get]
func (h *AppointmentHandler) ExportAppointments(c *gin.Context) {
	input, ok := listInput(c)
	if !ok {
		return
	}

	buf, err := h.exportService.ExportAppointments(c.Request.Context(), middleware.CurrentUser(c), input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="consultas.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// GetAppointment busca uma consulta
//
//	@Summary	Busca consulta
//	@Tags		appointments
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		int	true	"id da consulta"
//	@Success	200	{object}	dto.AppointmentResponse
//	@Failure	403	{object}	dto.ErrorResponse
//	@Failure	404	{object}	dto.ErrorResponse
//	@Router		/appointments/{id} [get]
func (h *AppointmentHandler) GetAppointment(c *gin.Context) {
	id, ok := pathID(c, "id", "appointment")
	if !ok {
		return
	}

	appointment, err := h.appointmentService.GetAppointment(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAppointmentResponse(appointment))
}

// CreateAppointment marca uma consulta para o utilizador autenticado
//
//	@Summary	Marca consulta
//	@Tags		appointments
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		dto.CreateAppointmentRequest	true	"consulta"
//	@Success	201		{object}	dto.AppointmentResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Router		/appointments [post]
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req dto.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	appointment, err := h.appointmentService.CreateAppointment(c.Request.Context(), middleware.CurrentUser(c), services.CreateAppointmentInput{
		When:        req.Data,
		DoctorID:    req.MedicoID,
		SpecialtyID: req.EspecialidadeID,
		Notes:       req.Descricao,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToAppointmentResponse(appointment))
}

// UpdateAppointment altera data, descrição ou médico
//
//	@Summary	Atualiza consulta
//	@Tags		appointments
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int								true	"id da consulta"
//	@Param		body	body		dto.UpdateAppointmentRequest	true	"campos"
//	@Success	200		{object}	dto.AppointmentResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Failure	403		{object}	dto.ErrorResponse
//	@Failure	404		{object}	dto.ErrorResponse
//	@Router		/appointments/{id} [put]
func (h *AppointmentHandler) UpdateAppointment(c *gin.Context) {
	id, ok := pathID(c, "id", "appointment")
	if !ok {
		return
	}

	// 404/403 antes da validação do corpo
	if _, err := h.appointmentService.GetAppointment(c.Request.Context(), middleware.CurrentUser(c), id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	var req dto.UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	appointment, err := h.appointmentService.UpdateAppointment(c.Request.Context(), middleware.CurrentUser(c), id, services.UpdateAppointmentInput{
		When:        req.Data,
		Notes:       req.Descricao,
		DoctorID:    req.MedicoID,
		SpecialtyID: req.EspecialidadeID,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAppointmentResponse(appointment))
}

// DeleteAppointment remove uma consulta
//
//	@Summary	Remove consulta
//	@Tags		appointments
//	@Security	BearerAuth
//	@Param		id	path	int	true	"id da consulta"
//	@Success	204
//	@Failure	403	{object}	dto.ErrorResponse
//	@Failure	404	{object}	dto.ErrorResponse
//	@Router		/appointments/{id} [delete]
func (h *AppointmentHandler) DeleteAppointment(c *gin.Context) {
	id, ok := pathID(c, "id", "appointment")
	if !ok {
		return
	}

	if err := h.appointmentService.DeleteAppointment(c.Request.Context(), middleware.CurrentUser(c), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
