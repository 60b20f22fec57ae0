package http

import (
	"fmt"
	"html"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/agendamento-backend/internal/domain/ports"
	"github.com/rafabene/agendamento-backend/internal/handlers/dto"
	"github.com/rafabene/agendamento-backend/internal/handlers/middleware"
	"github.com/rafabene/agendamento-backend/internal/services"
)

const (
	stateCookie       = "oauth_state"
	stateCookieMaxAge = 600
)

// AuthHandler trata do login com Google
type AuthHandler struct {
	authService  *services.AuthService
	frontendURL  string
	secureCookie bool
	logger       ports.Logger
}

// NewAuthHandler cria um novo AuthHandler. frontendURL recebe o redirect dos logins com state=react.
func NewAuthHandler(authService *services.AuthService, frontendURL string, secureCookie bool, logger ports.Logger) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		frontendURL:  strings.TrimRight(frontendURL, "/"),
		secureCookie: secureCookie,
		logger:       logger,
	}
}

// LoginPage mostra um link para iniciar o login
//
//	@Summary	Página de login
//	@Tags		auth
//	@Produce	html
//	@Success	200
//	@Router		/login [get]
func (h *AuthHandler) LoginPage(c *gin.Context) {
	label := html.EscapeString(dto.T(c, "message.login_page"))
	page := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>%s</title></head>
<body><a href="/auth/google">%s</a></body>
</html>`, label, label)

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}

// GoogleLogin redireciona para o consentimento do Google
//
//	@Summary	Inicia login com Google
//	@Tags		auth
//	@Param		state	query	string	false	"origem (react)"
//	@Success	302
//	@Failure	429	{object}	dto.ErrorResponse
//	@Router		/auth/google [get]
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	start := h.authService.BeginLogin(c.Query("state"))

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(stateCookie, start.Nonce, stateCookieMaxAge, "/auth", "", h.secureCookie, true)
	c.Redirect(http.StatusFound, start.RedirectURL)
}

// GoogleCallback conclui o login e emite o JWT
//
//	@Summary	Callback OAuth do Google
//	@Tags		auth
//	@Produce	json
//	@Param		code	query		string	true	"código OAuth"
//	@Param		state	query		string	true	"state devolvido pelo Google"
//	@Success	200		{object}	dto.LoginResponse
//	@Success	302
//	@Router		/auth/google/callback [get]
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	nonce, _ := c.Cookie(stateCookie)
	c.SetCookie(stateCookie, "", -1, "/auth", "", h.secureCookie, true)

	result, err := h.authService.CompleteLogin(c.Request.Context(), c.Query("code"), c.Query("state"), nonce)
	if err != nil {
		h.logger.Warn("google login failed", "error", err)
		c.Redirect(http.StatusFound, "/auth/failure")
		return
	}

	if result.Origin == services.OriginReact {
		c.Redirect(http.StatusFound, h.frontendURL+"/?token="+url.QueryEscape(result.Token))
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Message: dto.T(c, "message.login_success"),
		Token:   result.Token,
		User:    dto.ToUserResponse(result.User),
	})
}

// Failure responde 401 após um login falhado
//
//	@Summary	Falha de login
//	@Tags		auth
//	@Produce	json
//	@Failure	401	{object}	dto.ErrorResponse
//	@Router		/auth/failure [get]
func (h *AuthHandler) Failure(c *gin.Context) {
	dto.Abort(c, dto.UnauthorizedErrorResponseI18n(c, "error.auth_failure"))
}

// Token ecoa o token apresentado
//
//	@Summary	Token atual
//	@Tags		auth
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{object}	dto.TokenResponse
//	@Failure	401	{object}	dto.ErrorResponse
//	@Router		/auth/token [get]
func (h *AuthHandler) Token(c *gin.Context) {
	c.JSON(http.StatusOK, dto.TokenResponse{Token: c.GetString(middleware.TokenContextKey)})
}
