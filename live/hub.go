package live

import (
	"encoding/json"
	"log/slog"
	"strconv"
	"sync"
)

// Message is the envelope pushed to connected clients. Type names the
// mutation (MEMBER_JOINED, ANNOUNCEMENT_POSTED, ...), Payload carries the
// member-visible club snapshot.
type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
	RoomID  string      `json:"room_id,omitempty"`
}

// Hub fans club updates out to websocket clients. Each club is a room;
// clients register for one room and receive every broadcast addressed to it.
type Hub struct {
	Register   chan *Client
	Unregister chan *Client

	rooms  map[string]map[*Client]bool
	mu     sync.RWMutex
	logger *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		rooms:      make(map[string]map[*Client]bool),
		logger:     logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			if _, ok := h.rooms[client.room]; !ok {
				h.rooms[client.room] = make(map[*Client]bool)
			}
			h.rooms[client.room][client] = true
			h.logger.Debug("client registered",
				slog.String("room", client.room),
				slog.Int("room_size", len(h.rooms[client.room])))
			h.mu.Unlock()

		case client := <-h.Unregister:
			h.mu.Lock()
			if clients, ok := h.rooms[client.room]; ok {
				if _, okClient := clients[client]; okClient {
					client.closeSend()
					delete(clients, client)
					if len(clients) == 0 {
						delete(h.rooms, client.room)
					}
					h.logger.Debug("client unregistered", slog.String("room", client.room))
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastClubUpdate satisfies services.ClubBroadcaster. A marshal failure
// or an empty room drops the message; live updates are best effort and the
// client re-fetches over HTTP on reconnect.
func (h *Hub) BroadcastClubUpdate(clubID int, event string, payload interface{}) {
	room := roomID(clubID)
	message, err := json.Marshal(Message{
		Type:    event,
		Payload: payload,
		RoomID:  room,
	})
	if err != nil {
		h.logger.Error("failed to marshal club update",
			slog.String("room", room), slog.Any("error", err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	clients, ok := h.rooms[room]
	if !ok {
		return
	}
	for client := range clients {
		client.trySend(message)
	}
}

func roomID(clubID int) string {
	return strconv.Itoa(clubID)
}
