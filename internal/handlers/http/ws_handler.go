package http

import (
	"github.com/gin-gonic/gin"

	"github.com/rafabene/agendamento-backend/internal/domain/ports"
	"github.com/rafabene/agendamento-backend/internal/handlers/middleware"
	"github.com/rafabene/agendamento-backend/internal/infrastructure/realtime"
)

// RealtimeHandler liga clientes websocket ao hub de eventos
type RealtimeHandler struct {
	hub    *realtime.Hub
	logger ports.Logger
}

// NewRealtimeHandler cria um novo RealtimeHandler
func NewRealtimeHandler(hub *realtime.Hub, logger ports.Logger) *RealtimeHandler {
	return &RealtimeHandler{hub: hub, logger: logger}
}

// Appointments abre o stream de eventos de consultas
//
//	@Summary	Eventos de consultas (websocket)
//	@Tags		realtime
//	@Param		token	query	string	false	"JWT quando não há header Authorization"
//	@Success	101
//	@Failure	401	{object}	dto.ErrorResponse
//	@Router		/ws/appointments [get]
func (h *RealtimeHandler) Appointments(c *gin.Context) {
	user := middleware.CurrentUser(c)

	// o upgrader já respondeu ao cliente em caso de erro
	if err := h.hub.Serve(c.Writer, c.Request, user.ID, user.IsAdmin()); err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err, "user_id", user.ID)
	}
}
