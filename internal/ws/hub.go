// Package ws fans report updates out to every connected subscriber. All
// clients share one broadcast group; payloads are arbitrary JSON.
package ws

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type Hub struct {
	mu      sync.RWMutex
	clients map[*websocket.Conn]bool
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]bool),
	}
}

func (h *Hub) AddConnection(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[conn] = true
	log.Info().Int("total", len(h.clients)).Msg("ws client connected")
}

func (h *Hub) RemoveConnection(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		conn.Close()
		log.Info().Int("total", len(h.clients)).Msg("ws client disconnected")
	}
}

func (h *Hub) Broadcast(message Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	data, err := json.Marshal(message)
	if err != nil {
		log.Error().Err(err).Msg("ws marshal error")
		return
	}

	for conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Warn().Err(err).Msg("ws write error, dropping client")
			conn.Close()
			delete(h.clients, conn)
		}
	}
}
