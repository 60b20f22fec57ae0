package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/agendamento-backend/internal/handlers/dto"
	"github.com/rafabene/agendamento-backend/internal/infrastructure/i18n"
)

const (
	// LanguageContextKey é a chave usada para armazenar o idioma no contexto do Gin
	LanguageContextKey = dto.LanguageContextKey
	// I18nServiceContextKey é a chave usada para armazenar o serviço i18n no contexto
	I18nServiceContextKey = dto.I18nServiceContextKey
)

// I18nMiddleware gerencia a detecção de idioma nas requisições
type I18nMiddleware struct {
	i18nService *i18n.Service
}

// NewI18nMiddleware cria um novo middleware de i18n
func NewI18nMiddleware(i18nService *i18n.Service) *I18nMiddleware {
	return &I18nMiddleware{
		i18nService: i18nService,
	}
}

// DetectLanguage detecta e configura o idioma da requisição
// Prioridade:
// 1. Query parameter ?lang=pt (override explícito)
// 2. Accept-Language header (preferência do browser)
// 3. Idioma padrão (fallback)
func (m *I18nMiddleware) DetectLanguage() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := m.resolve(c.Query("lang"))

		if lang == "" {
			lang = m.parseAcceptLanguage(c.GetHeader("Accept-Language"))
		}

		if lang == "" {
			lang = m.i18nService.GetDefaultLanguage()
		}

		c.Set(LanguageContextKey, lang)
		c.Set(I18nServiceContextKey, m.i18nService)

		c.Next()
	}
}

// parseAcceptLanguage analisa o header Accept-Language e retorna o melhor idioma suportado
// Exemplo: "pt-BR,pt;q=0.9,en-US;q=0.8,en;q=0.7" -> "pt"
func (m *I18nMiddleware) parseAcceptLanguage(acceptLang string) string {
	if acceptLang == "" {
		return ""
	}

	for _, lang := range strings.Split(acceptLang, ",") {
		// Remover peso (;q=0.9) se existir
		lang, _, _ = strings.Cut(strings.TrimSpace(lang), ";")

		if resolved := m.resolve(lang); resolved != "" {
			return resolved
		}
	}

	return ""
}

// resolve devolve lang se suportado, senão a variação sem região (pt-BR -> pt)
func (m *I18nMiddleware) resolve(lang string) string {
	if lang == "" {
		return ""
	}
	if m.i18nService.IsLanguageSupported(lang) {
		return lang
	}
	if base, _, found := strings.Cut(lang, "-"); found && m.i18nService.IsLanguageSupported(base) {
		return base
	}
	return ""
}
