package ws

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/shopspring/decimal"
)

// ActivityEvent is the live counterpart of the history feed: every sale, buy
// and exchange is pushed to connected dashboard clients as it happens.
type ActivityEvent struct {
	Type      string          `json:"type"` // "sale", "add", "exchange"
	Title     string          `json:"title"`
	Subtitle  string          `json:"subtitle"`
	Amount    decimal.Decimal `json:"amount"`
	Actor     string          `json:"actor"`
	CreatedAt time.Time       `json:"created_at"`
}

type Hub struct {
	Clients    map[*websocket.Conn]bool
	Register   chan *websocket.Conn
	Unregister chan *websocket.Conn
	Broadcast  chan []byte
	mutex      sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*websocket.Conn]bool),
		Register:   make(chan *websocket.Conn),
		Unregister: make(chan *websocket.Conn),
		Broadcast:  make(chan []byte),
	}
}

// PublishActivity serializes and broadcasts an activity event. Safe to call
// from a goroutine after the owning transaction commits.
func (h *Hub) PublishActivity(event ActivityEvent) {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	msg, err := json.Marshal(event)
	if err != nil {
		return
	}
	h.Broadcast <- msg
}

func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.Register:
			h.mutex.Lock()
			h.Clients[conn] = true
			h.mutex.Unlock()
			log.Println("New WS client connected")

		case conn := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.Clients[conn]; ok {
				delete(h.Clients, conn)
				conn.Close()
			}
			h.mutex.Unlock()

		case message := <-h.Broadcast:
			h.mutex.Lock()
			for conn := range h.Clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					conn.Close()
					delete(h.Clients, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}
