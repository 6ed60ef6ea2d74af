package handler

import (
	"net/http"
	"time"

	"shree-admin/internal/audit"
	"shree-admin/internal/domain/notification"
	apperrors "shree-admin/pkg/errors"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	streamWriteWait  = 10 * time.Second
	streamPongWait   = 60 * time.Second
	streamPingPeriod = (streamPongWait * 9) / 10
	streamReadLimit  = 512

	msgMarkSeenFailed = "Failed to mark notifications as seen"
	msgPollFailed     = "Failed to load notifications"
)

// NotificationResponse carries the badge counts. Total is always the sum
// of the three counts.
type NotificationResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Counts  notification.View `json:"counts"`
}

type NotificationHandler struct {
	base
	upgrader websocket.Upgrader
}

func NewNotificationHandler(workspaces Workspaces, recorder audit.Recorder) *NotificationHandler {
	return &NotificationHandler{
		base: newBase(workspaces, recorder),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// Get polls once and returns the counts. A failed poll answers with the
// last known counts.
func (h *NotificationHandler) Get(c echo.Context) error {
	ws, err := h.workspace(c)
	if err != nil {
		return handleHTTPError(c, err)
	}

	resp := NotificationResponse{Success: true}
	if err := ws.Notifications.Poll(c.Request().Context()); err != nil {
		resp.Success = false
		resp.Message = apperrors.Message(err, msgPollFailed)
	}
	resp.Counts = ws.Notifications.Counts().View()
	return c.JSON(http.StatusOK, resp)
}

// MarkSeen clears one badge. The local count stays cleared even when the
// backend call fails; the next poll brings back whatever is still unseen.
func (h *NotificationHandler) MarkSeen(c echo.Context) error {
	ws, err := h.workspace(c)
	if err != nil {
		return handleHTTPError(c, err)
	}

	t := notification.Type(c.Param(paramType))
	if err := t.Validate(); err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidType)
	}

	resp := NotificationResponse{Success: true}
	status := audit.StatusSuccess
	if err := ws.Notifications.MarkSeen(c.Request().Context(), t); err != nil {
		resp.Success = false
		resp.Message = apperrors.Message(err, msgMarkSeenFailed)
		status = audit.StatusFailure
	}
	resp.Counts = ws.Notifications.Counts().View()

	h.audit.Record(c, audit.ResourceTypeNotification, string(t), audit.ActionUpdate, status, resp.Message)
	return c.JSON(http.StatusOK, resp)
}

// Stream pushes the counts over a websocket whenever they change.
func (h *NotificationHandler) Stream(c echo.Context) error {
	ws, err := h.workspace(c)
	if err != nil {
		return handleHTTPError(c, err)
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade has already written the error response.
		c.Logger().Warnf("notification stream upgrade failed: %v", err)
		return nil
	}

	updates, unsubscribe := ws.Notifications.Subscribe()
	defer unsubscribe()

	done := make(chan struct{})
	go readPump(conn, done)
	writePump(conn, updates, done)
	return nil
}

// readPump discards client messages and closes done when the peer goes
// away.
func readPump(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)

	conn.SetReadLimit(streamReadLimit)
	_ = conn.SetReadDeadline(time.Now().Add(streamPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(streamPongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func writePump(conn *websocket.Conn, updates <-chan notification.View, done <-chan struct{}) {
	ticker := time.NewTicker(streamPingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case view, ok := <-updates:
			_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := conn.WriteJSON(view); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
