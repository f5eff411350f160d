// Package feed streams game notifications to external viewers over a
// websocket, for overlays and second-screen HUDs.
package feed

import (
	"encoding/json"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/punch-escape/internal/games/escape"
)

// clientBuffer is how many frames a client may lag behind before frames are dropped.
const clientBuffer = 32

// State is the latest known state served on /state.
type State struct {
	Phase string      `json:"phase"`
	HUD   *escape.HUD `json:"hud,omitempty"`
	Seq   uint64      `json:"seq"`
}

type client struct {
	id      string
	send    chan []byte
	dropped int
}

// Hub fans notifications out to connected websocket clients.
// It implements escape.Notifier and never blocks the caller.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*client
	state   State
	logger  *log.Logger
}

// NewHub creates an empty hub.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		clients: make(map[string]*client),
		state:   State{Phase: "idle"},
		logger:  logger,
	}
}

// Notify implements escape.Notifier.
func (h *Hub) Notify(n escape.Notification) {
	data, err := json.Marshal(n)
	if err != nil {
		h.logger.Debug("feed: marshal failed", "kind", n.Kind, "err", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.state.Seq++
	switch n.Kind {
	case escape.KindHUD:
		if n.HUD != nil {
			hud := *n.HUD
			h.state.HUD = &hud
		}
	case escape.KindState:
		h.state.Phase = n.Phase
	}

	for _, c := range h.clients {
		select {
		case c.send <- data:
		default:
			c.dropped++
			if c.dropped == 1 || c.dropped%100 == 0 {
				h.logger.Debug("feed: client lagging, dropping frames", "client", c.id, "dropped", c.dropped)
			}
		}
	}
}

// State returns a copy of the latest state.
func (h *Hub) State() State {
	h.mu.RLock()
	defer h.mu.RUnlock()
	s := h.state
	if s.HUD != nil {
		hud := *s.HUD
		s.HUD = &hud
	}
	return s
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// register adds a client and queues the current state as its first frame.
func (h *Hub) register() *client {
	c := &client{id: uuid.NewString(), send: make(chan []byte, clientBuffer)}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.id] = c

	if h.state.HUD != nil {
		hud := *h.state.HUD
		if data, err := json.Marshal(escape.Notification{Kind: escape.KindHUD, HUD: &hud}); err == nil {
			c.send <- data
		}
	}
	if data, err := json.Marshal(escape.Notification{Kind: escape.KindState, Phase: h.state.Phase}); err == nil {
		c.send <- data
	}
	return c
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c.id]; ok {
		delete(h.clients, c.id)
		close(c.send)
	}
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, c := range h.clients {
		delete(h.clients, id)
		close(c.send)
	}
}

var _ escape.Notifier = (*Hub)(nil)
