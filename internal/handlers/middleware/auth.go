package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/agendamento-backend/internal/domain/entities"
	"github.com/rafabene/agendamento-backend/internal/handlers/dto"
)

const (
	// UserContextKey guarda o *entities.User autenticado
	UserContextKey = "auth_user"
	// TokenContextKey guarda o token bruto apresentado
	TokenContextKey = "auth_token"
)

// Authenticator valida um token de sessão
type Authenticator interface {
	Authenticate(token string) (*entities.User, error)
}

// AuthMiddleware exige um token válido em Authorization: Bearer ou ?token=
type AuthMiddleware struct {
	authenticator Authenticator
}

// NewAuthMiddleware cria um novo AuthMiddleware
func NewAuthMiddleware(authenticator Authenticator) *AuthMiddleware {
	return &AuthMiddleware{authenticator: authenticator}
}

// RequireAuth responde 401 quando o token falta ou é inválido
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ExtractToken(c)
		if token == "" {
			dto.Abort(c, dto.UnauthorizedErrorResponseI18n(c, "error.unauthorized.detail"))
			return
		}

		user, err := m.authenticator.Authenticate(token)
		if err != nil {
			dto.Abort(c, dto.UnauthorizedErrorResponseI18n(c, "error.invalid_token"))
			return
		}

		c.Set(UserContextKey, user)
		c.Set(TokenContextKey, token)
		c.Next()
	}
}

// RequirePermission responde 403 quando o utilizador não tem a permissão
func RequirePermission(permission entities.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			dto.Abort(c, dto.UnauthorizedErrorResponseI18n(c, "error.unauthorized.detail"))
			return
		}
		if !user.HasPermission(permission) {
			dto.Abort(c, dto.ForbiddenErrorResponseI18n(c))
			return
		}
		c.Next()
	}
}

// CurrentUser devolve o utilizador autenticado ou nil
func CurrentUser(c *gin.Context) *entities.User {
	value, ok := c.Get(UserContextKey)
	if !ok {
		return nil
	}
	user, _ := value.(*entities.User)
	return user
}

// ExtractToken lê o bearer token do header ou do query parameter token
func ExtractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if scheme, token, found := strings.Cut(header, " "); found && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(token)
	}
	return c.Query("token")
}
