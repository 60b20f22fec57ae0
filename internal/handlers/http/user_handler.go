package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/agendamento-backend/internal/domain/entities"
	"github.com/rafabene/agendamento-backend/internal/domain/ports"
	"github.com/rafabene/agendamento-backend/internal/domain/repositories"
	"github.com/rafabene/agendamento-backend/internal/handlers/dto"
	"github.com/rafabene/agendamento-backend/internal/handlers/middleware"
	"github.com/rafabene/agendamento-backend/internal/services"
)

// UserHandler lida com requisições HTTP relacionadas a usuários
type UserHandler struct {
	userService *services.UserService
	logger      ports.Logger
}

// NewUserHandler cria um novo UserHandler
func NewUserHandler(userService *services.UserService, logger ports.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// ListUsers lista usuários
//
//	@Summary	Lista usuários
//	@Tags		users
//	@Security	BearerAuth
//	@Produce	json
//	@Param		role		query		string	false	"admin ou user"
//	@Param		page		query		int		false	"página (começa em 1)"
//	@Param		page_size	query		int		false	"itens por página"
//	@Success	200			{array}		dto.NamedRef
//	@Failure	403			{object}	dto.ErrorResponse
//	@Router		/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	filters := repositories.UserFilters{}

	if raw := c.Query("role"); raw != "" {
		role := entities.Role(raw)
		if !role.IsValid() {
			dto.Abort(c, dto.BadRequestErrorResponseI18n(c, "error.invalid_filter", map[string]any{"Field": "role"}))
			return
		}
		filters.Role = &role
	}
	filters.Page, _ = strconv.Atoi(c.Query("page"))
	filters.PageSize, _ = strconv.Atoi(c.Query("page_size"))

	users, err := h.userService.ListUsers(c.Request.Context(), filters)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserSummaries(users))
}

// Me devolve o utilizador autenticado
//
//	@Summary	Utilizador autenticado
//	@Tags		users
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{object}	dto.UserResponse
//	@Failure	404	{object}	dto.ErrorResponse
//	@Router		/users/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	user, err := h.userService.GetUser(c.Request.Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// CreateUser cria um novo usuário
//
//	@Summary	Cria usuário
//	@Tags		users
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		dto.CreateUserRequest	true	"usuário"
//	@Success	201		{object}	dto.UserResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Router		/users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), services.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		GoogleID: req.GoogleID,
		Role:     req.Role,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// GetUser busca um usuário por ID
//
//	@Summary	Busca usuário
//	@Tags		users
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		int	true	"id do usuário"
//	@Success	200	{object}	dto.UserResponse
//	@Failure	404	{object}	dto.ErrorResponse
//	@Router		/users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := pathID(c, "id", "user")
	if !ok {
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// UpdateUser altera nome e papel
//
//	@Summary	Atualiza usuário
//	@Tags		users
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int						true	"id do usuário"
//	@Param		body	body		dto.UpdateUserRequest	true	"campos"
//	@Success	200		{object}	dto.UserResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Failure	404		{object}	dto.ErrorResponse
//	@Router		/users/{id} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := pathID(c, "id", "user")
	if !ok {
		return
	}

	if _, err := h.userService.GetUser(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), id, services.UpdateUserInput{
		Name: req.Name,
		Role: req.Role,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// DeleteUser remove o usuário e as suas consultas
//
//	@Summary	Remove usuário
//	@Tags		users
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		int	true	"id do usuário"
//	@Success	200	{object}	dto.MessageResponse
//	@Failure	404	{object}	dto.ErrorResponse
//	@Router		/users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := pathID(c, "id", "user")
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: dto.T(c, "message.user_deleted")})
}

// UserAppointments lista as consultas do usuário
//
//	@Summary	Consultas de um usuário
//	@Tags		users
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		int	true	"id do usuário"
//	@Success	200	{array}		dto.AppointmentResponse
//	@Failure	403	{object}	dto.ErrorResponse
//	@Router		/users/{id}/appointments [get]
func (h *UserHandler) UserAppointments(c *gin.Context) {
	h.listAppointments(c, false)
}

// UserSpecialtyAppointments lista as consultas do usuário numa especialidade
//
//	@Summary	Consultas de um usuário numa especialidade
//	@Tags		users
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id			path		int	true	"id do usuário"
//	@Param		specialtyId	path		int	true	"id da especialidade"
//	@Success	200			{array}		dto.AppointmentResponse
//	@Failure	403			{object}	dto.ErrorResponse
//	@Router		/users/{id}/specialties/{specialtyId}/appointments [get]
func (h *UserHandler) UserSpecialtyAppointments(c *gin.Context) {
	h.listAppointments(c, true)
}

func (h *UserHandler) listAppointments(c *gin.Context, bySpecialty bool) {
	id, ok := pathID(c, "id", "user")
	if !ok {
		return
	}

	var specialtyID *uint
	if bySpecialty {
		value, ok := pathID(c, "specialtyId", "specialty")
		if !ok {
			return
		}
		specialtyID = &value
	}

	appointments, err := h.userService.UserAppointments(c.Request.Context(), middleware.CurrentUser(c), id, specialtyID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAppointmentResponses(appointments))
}

// UserDoctors lista os médicos com quem o usuário tem consultas
//
//	@Summary	Médicos de um usuário
//	@Tags		users
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		int	true	"id do usuário"
//	@Success	200	{array}		dto.NamedRef
//	@Failure	403	{object}	dto.ErrorResponse
//	@Router		/users/{id}/doctors [get]
func (h *UserHandler) UserDoctors(c *gin.Context) {
	id, ok := pathID(c, "id", "user")
	if !ok {
		return
	}

	doctors, err := h.userService.UserDoctors(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDoctorRefs(doctors))
}
