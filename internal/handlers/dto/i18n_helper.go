package dto

import (
	"github.com/gin-gonic/gin"

	"github.com/rafabene/agendamento-backend/internal/infrastructure/i18n"
)

const (
	// LanguageContextKey é a chave usada para armazenar o idioma no contexto do Gin
	LanguageContextKey = "language"
	// I18nServiceContextKey é a chave usada para armazenar o serviço i18n no contexto
	I18nServiceContextKey = "i18n_service"
)

// T é um helper para traduzir mensagens no contexto do Gin
// Uso: dto.T(c, "error.invalid_id", map[string]any{"Resource": "user"})
func T(c *gin.Context, key string, params ...map[string]any) string {
	service, ok := i18nService(c)
	if !ok {
		// Sem serviço no contexto devolve a chave
		return key
	}

	return service.T(GetLanguage(c), key, params...)
}

// GetLanguage retorna o idioma configurado no contexto da requisição
func GetLanguage(c *gin.Context) string {
	if lang, ok := c.Get(LanguageContextKey); ok {
		if langStr, ok := lang.(string); ok {
			return langStr
		}
	}

	if service, ok := i18nService(c); ok {
		return service.GetDefaultLanguage()
	}
	return "pt"
}

func i18nService(c *gin.Context) (*i18n.Service, bool) {
	value, exists := c.Get(I18nServiceContextKey)
	if !exists {
		return nil, false
	}
	service, ok := value.(*i18n.Service)
	return service, ok
}
