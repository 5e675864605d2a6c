package websocket

import (
	"sync"

	"github.com/dom/notes-api/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const broadcastBufferSize = 256

// Hub tracks live connections per user and pushes note events to the
// connections of the note's owner only.
type Hub struct {
	clients    map[uuid.UUID]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan domain.NoteEvent
	stop       chan struct{}
	done       chan struct{} // closed when Run() exits, or by Stop if Run never started
	started    bool
	stopped    bool
	log        zerolog.Logger
	mu         sync.RWMutex
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan domain.NoteEvent, broadcastBufferSize),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
		log:        log.With().Str("component", "hub").Logger(),
	}
}

// Run processes registrations and events until Stop. Calling it again, or
// after Stop, returns immediately.
func (h *Hub) Run() {
	h.mu.Lock()
	if h.started || h.stopped {
		h.mu.Unlock()
		return
	}
	h.started = true
	h.mu.Unlock()

	defer close(h.done)

	for {
		select {
		case <-h.stop:
			h.mu.Lock()
			h.stopped = true
			for _, conns := range h.clients {
				for client := range conns {
					client.Close()
				}
			}
			h.clients = make(map[uuid.UUID]map[*Client]bool)
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			conns, ok := h.clients[client.userID]
			if !ok {
				conns = make(map[*Client]bool)
				h.clients[client.userID] = conns
			}
			conns[client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			h.remove(client)
			h.mu.Unlock()

		case event := <-h.broadcast:
			h.dispatch(event)
		}
	}
}

// Stop closes every connection and blocks until Run has exited. It is safe
// to call when Run was never started.
func (h *Hub) Stop() {
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return
	}
	h.stopped = true
	started := h.started
	h.mu.Unlock()

	close(h.stop)
	if !started {
		close(h.done)
		return
	}
	<-h.done
}

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		client.Close()
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Publish queues event for delivery. It never blocks a request: when the
// queue is full the event is dropped.
func (h *Hub) Publish(event domain.NoteEvent) {
	select {
	case h.broadcast <- event:
	case <-h.done:
	default:
		h.log.Warn().
			Str("user_id", event.OwnerID.String()).
			Str("event", string(event.Type)).
			Msg("broadcast queue full, dropping event")
	}
}

// ClientCount returns the number of live connections for userID.
func (h *Hub) ClientCount(userID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

func (h *Hub) dispatch(event domain.NoteEvent) {
	data, err := encodeEvent(event)
	if err != nil {
		h.log.Error().Err(err).Str("note_id", event.NoteID.String()).Msg("failed to encode note event")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients[event.OwnerID] {
		h.trySend(client, data)
	}
}

// deliver sends data to a single client from outside the Run loop.
func (h *Hub) deliver(client *Client, data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopped || !h.clients[client.userID][client] {
		return
	}
	h.trySend(client, data)
}

// trySend drops a client whose buffer is full. Caller holds h.mu.
func (h *Hub) trySend(client *Client, data []byte) {
	select {
	case client.send <- data:
	default:
		h.log.Warn().Str("user_id", client.userID.String()).Msg("slow websocket client, disconnecting")
		h.remove(client)
	}
}

// remove drops client from the registry. Caller holds h.mu.
func (h *Hub) remove(client *Client) {
	conns, ok := h.clients[client.userID]
	if !ok || !conns[client] {
		return
	}
	delete(conns, client)
	if len(conns) == 0 {
		delete(h.clients, client.userID)
	}
	client.Close()
}
