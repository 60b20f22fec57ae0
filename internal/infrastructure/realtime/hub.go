// Package realtime entrega eventos de consultas a clientes WebSocket.
package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rafabene/agendamento-backend/internal/domain/ports"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 16
	eventBuffer    = 256
)

// Hub faz fan-out de ports.AppointmentEvent para os clientes ligados.
// Admins recebem todos os eventos, os restantes apenas os das suas consultas.
type Hub struct {
	mu       sync.RWMutex
	clients  map[*client]struct{}
	events   chan ports.AppointmentEvent
	upgrader websocket.Upgrader
	logger   ports.Logger
}

type client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	userID uint
	admin  bool
	once   sync.Once
}

// NewHub cria o hub. checkOrigin nil aceita qualquer origem.
func NewHub(logger ports.Logger, checkOrigin func(r *http.Request) bool) *Hub {
	if checkOrigin == nil {
		checkOrigin = func(*http.Request) bool { return true }
	}
	return &Hub{
		clients: make(map[*client]struct{}),
		events:  make(chan ports.AppointmentEvent, eventBuffer),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
		logger: logger.With("component", "realtime"),
	}
}

// Publish implementa ports.EventPublisher. Não bloqueia: com o buffer cheio o evento é descartado.
func (h *Hub) Publish(event ports.AppointmentEvent) {
	select {
	case h.events <- event:
	default:
		h.logger.Warn("event dropped, buffer full", "type", event.Type)
	}
}

// Run distribui eventos até o contexto ser cancelado; no fim fecha todas as ligações
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case event := <-h.events:
			h.dispatch(event)
		}
	}
}

func (h *Hub) dispatch(event ports.AppointmentEvent) {
	message, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("failed to encode event", "type", event.Type, "error", err)
		return
	}

	h.mu.RLock()
	var slow []*client
	for c := range h.clients {
		if !c.admin && c.userID != event.OwnerID {
			continue
		}
		select {
		case c.send <- message:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.logger.Warn("dropping slow client", "user_id", c.userID)
		h.unregister(c)
	}
}

// ClientCount devolve o número de ligações ativas
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Serve faz o upgrade do pedido e associa a ligação ao utilizador autenticado
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, userID uint, admin bool) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	c := &client{
		hub:    h,
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		userID: userID,
		admin:  admin,
	}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	h.logger.Debug("client connected", "user_id", userID, "admin", admin)

	go c.writePump()
	go c.readPump()
	return nil
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		c.once.Do(func() { close(c.send) })
	}
	h.mu.Unlock()
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	for c := range h.clients {
		delete(h.clients, c)
		c.once.Do(func() { close(c.send) })
	}
	h.mu.Unlock()
}

// readPump só serve para detetar o fecho da ligação e responder a pongs
func (c *client) readPump() {
	defer func() {
		c.hub.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
