package errors

import "errors"

// Business errors
// Nota: Estes são códigos de erro (message IDs para i18n).
// As traduções estão em internal/infrastructure/i18n/locales/*.json
var (
	ErrUserNotFound        = errors.New("error.user_not_found")
	ErrEmailAlreadyExists  = errors.New("error.email_already_exists")
	ErrGoogleIDExists      = errors.New("error.google_id_already_exists")
	ErrSpecialtyNotFound   = errors.New("error.specialty_not_found")
	ErrSpecialtyExists     = errors.New("error.specialty_already_exists")
	ErrSpecialtyInUse      = errors.New("error.specialty_in_use")
	ErrDoctorNotFound      = errors.New("error.doctor_not_found")
	ErrDoctorHasBookings   = errors.New("error.doctor_has_appointments")
	ErrInvalidSpecialty    = errors.New("error.invalid_specialty")
	ErrInvalidDoctor       = errors.New("error.invalid_doctor")
	ErrDoctorSpecialty     = errors.New("error.doctor_specialty_mismatch")
	ErrAppointmentNotFound = errors.New("error.appointment_not_found")
	ErrNoUpdatableFields   = errors.New("error.no_updatable_fields")
	ErrUnauthorized        = errors.New("error.unauthorized")
	ErrForbidden           = errors.New("error.forbidden")
	ErrOAuthState          = errors.New("error.oauth_state")
	ErrOAuthExchange       = errors.New("error.oauth_exchange")
)

// Domain errors
var (
	ErrInvalidEmail = errors.New("error.invalid_email")
	ErrInvalidRole  = errors.New("error.invalid_role")
	ErrInvalidSlot  = errors.New("error.invalid_datetime")
)

// ProblemType define tipos de problemas (URIs RFC 7807)
// Nota: O domínio base virá de configuração (API_BASE_URL)
//
//nolint:misspell
const (
	ProblemTypeValidation   = "/problems/validation-error"
	ProblemTypeNotFound     = "/problems/not-found"
	ProblemTypeConflict     = "/problems/conflict"
	ProblemTypeUnauthorized = "/problems/unauthorized"
	ProblemTypeForbidden    = "/problems/forbidden"
	ProblemTypeInternal     = "/problems/internal-error"
	ProblemTypeBadRequest   = "/problems/bad-request"
	ProblemTypeRateLimited  = "/problems/rate-limited"
)

// DomainError representa um erro de domínio com contexto adicional
type DomainError struct {
	Type    string
	Title   string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewBusinessRuleError embrulha um erro de negócio com uma mensagem de contexto
func NewBusinessRuleError(message string, err error) *DomainError {
	return &DomainError{
		Type:    ProblemTypeBadRequest,
		Title:   "error.bad_request.title",
		Message: message,
		Err:     err,
	}
}
