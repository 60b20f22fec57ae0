package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader é o header de correlação devolvido em todas as respostas
	RequestIDHeader = "X-Request-ID"
	// RequestIDContextKey guarda o id no contexto do Gin
	RequestIDContextKey = "request_id"
	// BaseURLContextKey guarda a URL base usada nos tipos RFC 7807
	BaseURLContextKey = "base_url"
)

// RequestID reaproveita o X-Request-ID recebido ou gera um uuid novo
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}

		c.Set(RequestIDContextKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// BaseURL adiciona a URL base da API ao contexto
func BaseURL(baseURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(BaseURLContextKey, baseURL)
		c.Next()
	}
}
