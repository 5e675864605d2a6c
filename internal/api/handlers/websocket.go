package handlers

import (
	"net/http"

	"github.com/dom/notes-api/internal/api/middleware"
	"github.com/dom/notes-api/internal/api/response"
	"github.com/dom/notes-api/internal/websocket"
	ws "github.com/gorilla/websocket"
	"github.com/rs/zerolog/hlog"
)

type WebSocketHandler struct {
	hub      *websocket.Hub
	verifier middleware.TokenVerifier
	upgrader ws.Upgrader
}

// NewWebSocketHandler creates the handler. allowOrigin decides which
// browser origins may open a connection.
func NewWebSocketHandler(hub *websocket.Hub, verifier middleware.TokenVerifier, allowOrigin func(origin string) bool) *WebSocketHandler {
	return &WebSocketHandler{
		hub:      hub,
		verifier: verifier,
		upgrader: ws.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowOrigin(origin)
			},
		},
	}
}

// Handle authenticates the ?token= query parameter and upgrades the
// connection. Browsers cannot set headers on websocket requests.
func (h *WebSocketHandler) Handle(w http.ResponseWriter, r *http.Request) {
	log := hlog.FromRequest(r)

	token := r.URL.Query().Get("token")
	if token == "" {
		response.Message(w, http.StatusUnauthorized, "Access token required")
		return
	}

	claims, err := h.verifier.Verify(token)
	if err != nil {
		log.Debug().Err(err).Msg("websocket token verification failed")
		response.Message(w, http.StatusForbidden, "Invalid or expired token")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := websocket.NewClient(h.hub, conn, claims.UserID, *log)
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
