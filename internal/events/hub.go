package events

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 16
)

type wsClient struct {
	riderID string
	conn    *websocket.Conn
	send    chan []byte
}

// Hub pushes delivery events to riders connected over WebSocket. Order
// availability and status changes go to every rider; assignments only to
// the assigned rider.
type Hub struct {
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[*wsClient]struct{}
}

func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		clients: make(map[*wsClient]struct{}),
	}
}

func (h *Hub) Publish(_ context.Context, ev Event) error {
	if ev.Type == TypeOrderConfirmed {
		return nil
	}
	msg, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	h.mu.RLock()
	var slow []*wsClient
	for c := range h.clients {
		if ev.Type == TypeDeliveryAssigned && c.riderID != ev.RiderID {
			continue
		}
		select {
		case c.send <- msg:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		log.Printf("[ws] dropping slow rider=%s", c.riderID)
		h.remove(c)
	}
	return nil
}

// Serve upgrades the request and streams events to riderID until the
// connection closes.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, riderID string) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade rider=%s: %v", riderID, err)
		return
	}
	c := &wsClient{riderID: riderID, conn: conn, send: make(chan []byte, sendBuffer)}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	log.Printf("[ws] rider=%s connected", riderID)

	go h.writeLoop(c)
	h.readLoop(c)
}

// Connected returns the number of open rider connections.
func (h *Hub) Connected() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) remove(c *wsClient) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// readLoop only handles control frames; riders do not send commands here.
func (h *Hub) readLoop(c *wsClient) {
	defer func() {
		h.remove(c)
		_ = c.conn.Close()
		log.Printf("[ws] rider=%s disconnected", c.riderID)
	}()
	c.conn.SetReadLimit(512)
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

func (h *Hub) writeLoop(c *wsClient) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
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
