package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/lawrencemparker/Stride4Stride/live"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser clients connect from the app origin; cross-origin websocket
	// access is allowed and authorization happens at the HTTP layer.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type WebSocketHandler struct {
	hub *live.Hub
}

func NewWebSocketHandler(hub *live.Hub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

// Subscribe upgrades the connection and registers it for the club's live
// updates.
func (h *WebSocketHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	clubID, err := getIDFromURL(r, "clubID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("websocket upgrade failed",
			slog.String("path", r.URL.Path), slog.Any("error", err))
		return
	}

	client := live.NewClient(h.hub, conn, clubID)
	h.hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
