package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"lan_relay/internal/service"
	"lan_relay/pkg/logger"
)

type HealthHandler struct {
	share   service.ShareService
	session service.SessionService
	files   service.FileService
	log     logger.Logger
}

func NewHealthHandler(share service.ShareService, session service.SessionService, files service.FileService, log logger.Logger) *HealthHandler {
	return &HealthHandler{
		share:   share,
		session: session,
		files:   files,
		log:     log,
	}
}

func (h *HealthHandler) Check(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "lan-relay",
	})
}

// ServerInfo returns the address peers should open, as text and as a QR code.
func (h *HealthHandler) ServerInfo(c *gin.Context) {
	url := h.share.BaseURL(c.Request)
	qr, err := h.share.QRCode(url)
	if err != nil {
		h.log.Warn("QR code unavailable", "error", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"server_url": url,
		"qr_code":    qr,
		"peers":      h.session.PeerCount(),
		"files":      h.files.Stats(),
	})
}
