package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/EldritchWeaver/MatchPoint/live"
	"github.com/EldritchWeaver/MatchPoint/services"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// TODO: restrict Origin once the frontend domain is fixed.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type LiveHandler struct {
	hub               *live.Hub
	tournamentService services.TournamentService
	logger            *slog.Logger
}

func NewLiveHandler(hub *live.Hub, tournamentService services.TournamentService, logger *slog.Logger) *LiveHandler {
	return &LiveHandler{hub: hub, tournamentService: tournamentService, logger: logger}
}

// ServeWs upgrades the connection and joins the client to the tournament
// room. The tournament must exist.
func (h *LiveHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	if _, err := h.tournamentService.GetByID(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed",
			slog.Int("tournament_id", id),
			slog.Any("error", err),
		)
		return
	}

	client := &live.Client{
		Hub:  h.hub,
		Conn: conn,
		Send: make(chan []byte, 256),
		Room: live.TournamentRoom(id),
	}
	h.hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
