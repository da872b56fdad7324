package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/linskybing/issue-desk/internal/api/middleware"
	"github.com/linskybing/issue-desk/internal/application"
	"github.com/linskybing/issue-desk/internal/domain/user"
	"github.com/linskybing/issue-desk/pkg/response"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// EventsHandler streams committed lifecycle events so views can refresh.
type EventsHandler struct {
	hub     *application.EventHub
	tickets *application.TicketService
	logger  *slog.Logger
}

func NewEventsHandler(hub *application.EventHub, tickets *application.TicketService, logger *slog.Logger) *EventsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &EventsHandler{hub: hub, tickets: tickets, logger: logger}
}

// Stream handles GET /ws/events.
// @Summary Lifecycle event stream
// @Tags events
// @Produce json
// @Success 101 {string} string "Switching Protocols"
// @Failure 401 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /ws/events [get]
func (h *EventsHandler) Stream(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		unauthorized(c)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "websocket upgrade failed: " + err.Error()})
		return
	}
	events, cancel := h.hub.Subscribe()
	defer cancel()
	defer func() { _ = conn.Close() }()

	// Reader side: only needed for pongs and to notice the peer leaving.
	done := make(chan struct{})
	conn.SetReadLimit(4 * 1024)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()
	h.logger.Info("event stream opened", "actor", actor.ID)

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if !h.visible(c, actor, ev) {
				continue
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(ev); err != nil {
				h.logger.Warn("event stream write failed", "actor", actor.ID, "error", err)
				return
			}
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			h.logger.Info("event stream closed", "actor", actor.ID)
			return
		}
	}
}

// visible hides events about tickets the actor may not read. Deleted tickets
// are announced to everyone.
func (h *EventsHandler) visible(c *gin.Context, actor user.Actor, ev application.Event) bool {
	if ev.IssueID == "" || ev.Type == application.EventIssueDeleted {
		return true
	}
	_, err := h.tickets.GetVisible(c.Request.Context(), actor, ev.IssueID)
	return err == nil
}
