package handler

import (
	"lan_relay/internal/config"
	"lan_relay/internal/service"
	"lan_relay/pkg/logger"
)

type Handlers struct {
	Health    *HealthHandler
	Page      *PageHandler
	File      *FileHandler
	Stats     *StatsHandler
	WebSocket *WebSocketHandler
}

func NewHandlers(services *service.Services, cfg *config.Config, log logger.Logger) *Handlers {
	return &Handlers{
		Health:    NewHealthHandler(services.Share, services.Session, services.Files, log),
		Page:      NewPageHandler(services.Share, services.Session, log),
		File:      NewFileHandler(services.Ingress, services.Files, log),
		Stats:     NewStatsHandler(services.Stats, log),
		WebSocket: NewWebSocketHandler(services.Session, services.Ingress, cfg.Session, log.With("component", "websocket")),
	}
}
