package websocket

import (
	"log"
	"sync"

	"github.com/shelterplus/shelterplus-api/internal/metrics"
)

// Hub fans realtime events out to per-game rooms. A room is the set of
// clients that joined a game id; rooms appear on first join and vanish with
// their last member. Emit is at-most-once: no room, no delivery.
type Hub struct {
	rooms      map[string]map[*Client]bool
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	joinGame   chan *JoinGameRequest
	leaveGame  chan *Client
	broadcast  chan *roomEvent
	stop       chan struct{}
	done       chan struct{} // closed when Run() exits
	stopped    bool
	mu         sync.RWMutex
}

type JoinGameRequest struct {
	Client *Client
	GameID string
}

type roomEvent struct {
	gameID  string
	message *Message
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		joinGame:   make(chan *JoinGameRequest),
		leaveGame:  make(chan *Client),
		broadcast:  make(chan *roomEvent, 64),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case <-h.stop:
			h.mu.Lock()
			h.stopped = true
			for client := range h.clients {
				client.Close()
			}
			h.clients = make(map[*Client]bool)
			h.rooms = make(map[string]map[*Client]bool)
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			if !h.stopped {
				h.clients[client] = true
			}
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if !h.stopped {
				if _, ok := h.clients[client]; ok {
					delete(h.clients, client)
					h.removeFromRoom(client)
					client.Close()
				}
			}
			h.mu.Unlock()

		case req := <-h.joinGame:
			h.mu.Lock()
			if !h.stopped {
				h.removeFromRoom(req.Client)
				room, ok := h.rooms[req.GameID]
				if !ok {
					room = make(map[*Client]bool)
					h.rooms[req.GameID] = room
				}
				room[req.Client] = true
				req.Client.gameID = req.GameID
			}
			h.mu.Unlock()

			if msg, err := NewMessage(MessageTypeJoined, JoinedPayload{GameID: req.GameID}); err == nil {
				req.Client.Send(msg)
			}

		case client := <-h.leaveGame:
			h.mu.Lock()
			if !h.stopped {
				h.removeFromRoom(client)
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			h.mu.RLock()
			room := h.rooms[event.gameID]
			members := make([]*Client, 0, len(room))
			for client := range room {
				members = append(members, client)
			}
			h.mu.RUnlock()

			if len(members) == 0 {
				metrics.RealtimeSkipped.Inc()
				continue
			}
			for _, client := range members {
				client.Send(event.message)
			}
			metrics.RealtimeEmits.Inc()
		}
	}
}

// Stop gracefully shuts down the hub. It blocks until Run() has exited.
func (h *Hub) Stop() {
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return
	}
	h.mu.Unlock()

	close(h.stop)
	<-h.done
}

// Emit pushes a named event to everyone in the game's room. Safe to call from
// any goroutine; drops the event if the hub is stopped or its queue is full.
func (h *Hub) Emit(gameID, event string, payload interface{}) {
	h.mu.RLock()
	stopped := h.stopped
	h.mu.RUnlock()
	if stopped {
		metrics.RealtimeSkipped.Inc()
		return
	}

	msg, err := NewMessage(MessageTypeEvent, EventPayload{Event: event, Data: payload})
	if err != nil {
		log.Printf("ERROR [ws.Emit] failed to build %s message: %v", event, err)
		return
	}

	select {
	case h.broadcast <- &roomEvent{gameID: gameID, message: msg}:
	default:
		metrics.RealtimeSkipped.Inc()
		log.Printf("WARN [ws.Emit] broadcast queue full, dropping %s for game %s", event, gameID)
	}
}

func (h *Hub) Register(client *Client) {
	h.mu.RLock()
	stopped := h.stopped
	h.mu.RUnlock()
	if stopped {
		return
	}

	select {
	case h.register <- client:
	case <-h.done:
	}
}

// Unregister safely unregisters a client, handling the case where the hub may
// already be stopped.
func (h *Hub) Unregister(client *Client) {
	h.mu.RLock()
	stopped := h.stopped
	h.mu.RUnlock()
	if stopped {
		return
	}

	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// RoomSize reports how many clients joined a game's room.
func (h *Hub) RoomSize(gameID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[gameID])
}

// removeFromRoom must be called with h.mu held.
func (h *Hub) removeFromRoom(client *Client) {
	if client.gameID == "" {
		return
	}
	if room, ok := h.rooms[client.gameID]; ok {
		delete(room, client)
		if len(room) == 0 {
			delete(h.rooms, client.gameID)
		}
	}
	client.gameID = ""
}
