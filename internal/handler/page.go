package handler

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"lan_relay/internal/service"
	"lan_relay/pkg/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded page templates for gin's HTML renderer.
func Templates() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.html"))
}

type PageHandler struct {
	share   service.ShareService
	session service.SessionService
	log     logger.Logger
}

func NewPageHandler(share service.ShareService, session service.SessionService, log logger.Logger) *PageHandler {
	return &PageHandler{
		share:   share,
		session: session,
		log:     log,
	}
}

// Index renders the landing page with the join address and its QR code.
func (h *PageHandler) Index(c *gin.Context) {
	url := h.share.BaseURL(c.Request)
	qr, err := h.share.QRCode(url)
	if err != nil {
		h.log.Warn("Rendering page without QR code", "error", err)
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"ServerURL": url,
		"QRCode":    qr,
	})
}

// History returns the session timeline as JSON.
func (h *PageHandler) History(c *gin.Context) {
	c.JSON(http.StatusOK, h.session.History())
}
