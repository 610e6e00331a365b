package service

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/skip2/go-qrcode"
	"lan_relay/internal/config"
	"lan_relay/pkg/logger"
)

// qrModulePixels is the rendered size of one QR module.
const qrModulePixels = 10

// ShareService resolves the address peers should open and renders it as a QR code.
type ShareService interface {
	BaseURL(r *http.Request) string
	QRCode(url string) (string, error)
}

type shareService struct {
	mode      string
	staticURL string
	log       logger.Logger

	mu       sync.Mutex
	staticQR string
}

func NewShareService(cfg *config.Config, log logger.Logger) ShareService {
	staticURL := cfg.Address.PublicURL
	if staticURL == "" {
		staticURL = fmt.Sprintf("http://%s:%d", cfg.Address.HostIP, cfg.Server.Port)
	}
	return &shareService{
		mode:      cfg.Address.Mode,
		staticURL: staticURL,
		log:       log,
	}
}

func (s *shareService) BaseURL(r *http.Request) string {
	if s.mode == config.AddressModeStatic || r == nil {
		return s.staticURL
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
	}
	return scheme + "://" + r.Host
}

// QRCode returns a base64-encoded PNG. Only the static URL is cached; per-request
// hosts are rendered on every call.
func (s *shareService) QRCode(url string) (string, error) {
	cacheable := url == s.staticURL
	if cacheable {
		s.mu.Lock()
		cached := s.staticQR
		s.mu.Unlock()
		if cached != "" {
			return cached, nil
		}
	}

	code, err := qrcode.New(url, qrcode.Low)
	if err != nil {
		s.log.Error("Failed to build QR code", "url", url, "error", err)
		return "", err
	}
	png, err := code.PNG(-qrModulePixels)
	if err != nil {
		return "", err
	}
	encoded := base64.StdEncoding.EncodeToString(png)

	if cacheable {
		s.mu.Lock()
		s.staticQR = encoded
		s.mu.Unlock()
	}
	return encoded, nil
}
