package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/CMAtreya/Smart-Project-Management-System-sub000/internal/auth"
	"github.com/CMAtreya/Smart-Project-Management-System-sub000/internal/ws"
)

type WSHandler struct {
	Hub                  *ws.Hub
	JWTSecret            string
	WSInsecureSkipVerify bool
}

// Handle upgrades the connection and runs the relay read loop. Browser native
// WebSocket cannot set an Authorization header, so the token rides in a query
// param.
func (h *WSHandler) Handle(c *gin.Context) {
	tokenStr := c.Query("token")
	if tokenStr == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "missing token"})
		return
	}

	caller, err := auth.ParseToken(tokenStr, h.JWTSecret)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid token"})
		return
	}

	opts := &websocket.AcceptOptions{}
	// Accept rejects cross-origin by default; dev frontends run on another
	// port. Never enable this in production.
	if h.WSInsecureSkipVerify {
		opts.InsecureSkipVerify = true
	}

	conn, err := websocket.Accept(c.Writer, c.Request, opts)
	if err != nil {
		return // Accept already wrote the error response
	}

	client := h.Hub.AddClient(caller.UserID, caller.Name, conn)
	defer h.Hub.RemoveClient(client)

	readCtx := c.Request.Context()
	for {
		var ev ws.ClientEvent
		if err := wsjson.Read(readCtx, conn, &ev); err != nil {
			if !errors.Is(err, context.Canceled) {
				logrus.WithField("user", caller.UserID).WithError(err).Debug("ws read ended")
			}
			return
		}

		switch ev.Type {
		case ws.EventJoinRoom:
			h.Hub.Join(client, ev.Room)
		case ws.EventLeaveRoom:
			h.Hub.Leave(client, ev.Room)
		case ws.EventSendMessage:
			h.Hub.Relay(ev.Room, client, ws.Event{
				Type: ws.EventReceiveMessage,
				Room: ev.Room,
				Data: ev.Data,
			})
		default:
			logrus.WithField("type", ev.Type).Debug("ws unknown event")
		}
	}
}
