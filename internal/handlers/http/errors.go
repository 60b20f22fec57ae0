package http

import (
	errs "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/agendamento-backend/internal/domain/errors"
	"github.com/rafabene/agendamento-backend/internal/domain/ports"
	"github.com/rafabene/agendamento-backend/internal/handlers/dto"
	"github.com/rafabene/agendamento-backend/internal/handlers/middleware"
)

// errorStatus mapeia cada erro de domínio para o status HTTP
var errorStatus = []struct {
	err    error
	status int
}{
	{errors.ErrUserNotFound, http.StatusNotFound},
	{errors.ErrSpecialtyNotFound, http.StatusNotFound},
	{errors.ErrDoctorNotFound, http.StatusNotFound},
	{errors.ErrAppointmentNotFound, http.StatusNotFound},

	{errors.ErrUnauthorized, http.StatusUnauthorized},
	{errors.ErrOAuthState, http.StatusUnauthorized},
	{errors.ErrOAuthExchange, http.StatusUnauthorized},
	{errors.ErrForbidden, http.StatusForbidden},

	{errors.ErrEmailAlreadyExists, http.StatusBadRequest},
	{errors.ErrGoogleIDExists, http.StatusBadRequest},
	{errors.ErrSpecialtyExists, http.StatusBadRequest},
	{errors.ErrSpecialtyInUse, http.StatusBadRequest},
	{errors.ErrDoctorHasBookings, http.StatusBadRequest},
	{errors.ErrInvalidSpecialty, http.StatusBadRequest},
	{errors.ErrInvalidDoctor, http.StatusBadRequest},
	{errors.ErrDoctorSpecialty, http.StatusBadRequest},
	{errors.ErrNoUpdatableFields, http.StatusBadRequest},
	{errors.ErrInvalidEmail, http.StatusBadRequest},
	{errors.ErrInvalidRole, http.StatusBadRequest},
	{errors.ErrInvalidSlot, http.StatusBadRequest},
}

// respondError traduz o erro de domínio numa resposta RFC 7807
func respondError(c *gin.Context, logger ports.Logger, err error) {
	for _, entry := range errorStatus {
		if !errs.Is(err, entry.err) {
			continue
		}

		key := entry.err.Error()
		switch entry.status {
		case http.StatusNotFound:
			dto.Abort(c, dto.NotFoundErrorResponseI18n(c, key))
		case http.StatusUnauthorized:
			dto.Abort(c, dto.UnauthorizedErrorResponseI18n(c, key))
		case http.StatusForbidden:
			dto.Abort(c, dto.ForbiddenErrorResponseI18n(c))
		default:
			dto.Abort(c, dto.BadRequestErrorResponseI18n(c, key))
		}
		return
	}

	logger.Error("unexpected error",
		"error", err,
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"request_id", c.GetString(middleware.RequestIDContextKey),
	)
	dto.Abort(c, dto.InternalErrorResponseI18n(c))
}

// respondBindError responde 400 com os erros de validação traduzidos
func respondBindError(c *gin.Context, err error) {
	dto.Abort(c, dto.ValidationErrorResponseI18n(c, dto.TranslateValidationErrors(c, err)))
}
