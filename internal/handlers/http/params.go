package http

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/agendamento-backend/internal/domain/valueobjects"
	"github.com/rafabene/agendamento-backend/internal/handlers/dto"
)

// pathID lê um id numérico do path. Responde 400 e devolve false quando é inválido.
func pathID(c *gin.Context, name, resource string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 0)
	if err != nil || id == 0 {
		dto.Abort(c, dto.BadRequestErrorResponseI18n(c, "error.invalid_id", map[string]any{"Resource": resource}))
		return 0, false
	}
	return uint(id), true
}

// queryID lê um id opcional do query string, aceitando nomes alternativos.
// Devolve nil quando nenhum dos nomes está presente.
func queryID(c *gin.Context, names ...string) (*uint, bool) {
	for _, name := range names {
		raw, ok := c.GetQuery(name)
		if !ok || raw == "" {
			continue
		}
		id, err := strconv.ParseUint(raw, 10, 0)
		if err != nil || id == 0 {
			dto.Abort(c, dto.BadRequestErrorResponseI18n(c, "error.invalid_filter", map[string]any{"Field": name}))
			return nil, false
		}
		value := uint(id)
		return &value, true
	}
	return nil, true
}

// queryDate lê um limite de data (from/to) e devolve a parte YYYY-MM-DD em UTC
func queryDate(c *gin.Context, name string) (string, bool) {
	raw := c.Query(name)
	if raw == "" {
		return "", true
	}
	if len(raw) == len("2006-01-02") {
		raw += "T00:00:00Z"
	}
	slot, err := valueobjects.ParseSlot(raw)
	if err != nil {
		dto.Abort(c, dto.BadRequestErrorResponseI18n(c, "error.invalid_filter", map[string]any{"Field": name}))
		return "", false
	}
	return slot.Date(), true
}
