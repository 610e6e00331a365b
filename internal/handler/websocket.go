package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"lan_relay/internal/config"
	"lan_relay/internal/service"
	"lan_relay/pkg/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // any device on the LAN may join
	},
}

type WebSocketHandler struct {
	session service.SessionService
	ingress service.IngressService
	cfg     config.SessionConfig
	log     logger.Logger
}

func NewWebSocketHandler(session service.SessionService, ingress service.IngressService, cfg config.SessionConfig, log logger.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		session: session,
		ingress: ingress,
		cfg:     cfg,
		log:     log,
	}
}

// HandleSession upgrades the request and runs the peer until it disconnects.
func (h *WebSocketHandler) HandleSession(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error("Failed to upgrade connection", "error", err)
		return
	}

	newConnection(conn, h.session, h.ingress, h.cfg, h.log).serve()
}
