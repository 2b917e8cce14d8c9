// Package ws difunde la vista del tablero a los navegadores conectados por websocket.
package ws

import (
	"context"
	"encoding/json"
	"sync/atomic"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/rice-stock/internal/application/dto"
)

// sendBuffer mensajes pendientes por cliente antes de considerarlo lento.
const sendBuffer = 16

type client struct {
	id   string
	send chan []byte
}

// Hub registro de clientes. Solo Run toca el mapa; el resto se comunica por canales.
type Hub struct {
	log zerolog.Logger

	clients    map[string]*client
	register   chan *client
	unregister chan string
	broadcast  chan []byte
	done       chan struct{}
	count      atomic.Int64
}

// NewHub construye el hub; hay que arrancar Run en su propia gorutina.
func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		log:        log,
		clients:    make(map[string]*client),
		register:   make(chan *client),
		unregister: make(chan string),
		broadcast:  make(chan []byte, sendBuffer),
		done:       make(chan struct{}),
	}
}

// Run atiende altas, bajas y difusión hasta que ctx termina.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for id, c := range h.clients {
				delete(h.clients, id)
				close(c.send)
			}
			h.count.Store(0)
			return

		case c := <-h.register:
			h.clients[c.id] = c
			h.count.Store(int64(len(h.clients)))
			h.log.Debug().Str("client", c.id).Int("clients", len(h.clients)).Msg("cliente ws conectado")

		case id := <-h.unregister:
			if c, ok := h.clients[id]; ok {
				delete(h.clients, id)
				h.count.Store(int64(len(h.clients)))
				close(c.send)
			}

		case msg := <-h.broadcast:
			for id, c := range h.clients {
				select {
				case c.send <- msg:
				default:
					h.log.Warn().Str("client", id).Msg("cliente ws lento, desconectado")
					delete(h.clients, id)
					close(c.send)
				}
			}
			h.count.Store(int64(len(h.clients)))
		}
	}
}

// Publish encola la vista para todos los clientes. No bloquea: si la cola está llena la vista se descarta,
// la siguiente transición trae el estado completo.
func (h *Hub) Publish(view dto.DashboardView) {
	msg, err := json.Marshal(view)
	if err != nil {
		h.log.Error().Err(err).Msg("serializar vista")
		return
	}
	select {
	case h.broadcast <- msg:
	default:
		h.log.Debug().Msg("cola ws llena, vista descartada")
	}
}

// Count clientes conectados.
func (h *Hub) Count() int {
	return int(h.count.Load())
}

// UpgradeOnly rechaza con 426 las peticiones que no piden websocket.
func UpgradeOnly(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return c.SendStatus(fiber.StatusUpgradeRequired)
}

// Handler conexión websocket: envía primero la vista actual y luego cada transición.
func (h *Hub) Handler(current func() dto.DashboardView) fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		c := &client{id: uuid.NewString(), send: make(chan []byte, sendBuffer)}
		if msg, err := json.Marshal(current()); err == nil {
			c.send <- msg
		}

		select {
		case h.register <- c:
		case <-h.done:
			return
		}

		// Lectura solo para detectar el cierre; el cliente no envía comandos por aquí.
		go func() {
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					break
				}
			}
			select {
			case h.unregister <- c.id:
			case <-h.done:
			}
		}()

		for msg := range c.send {
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				h.log.Debug().Err(err).Str("client", c.id).Msg("escritura ws fallida")
				break
			}
		}
	})
}
