package service

import (
	"lan_relay/internal/config"
	"lan_relay/internal/repository"
	"lan_relay/pkg/logger"
)

// Services is the session context: one per process, handed to every entry point.
type Services struct {
	Session   SessionService
	Ingress   IngressService
	Files     FileService
	Share     ShareService
	Stats     StatsService
	RateLimit RateLimitService
}

func NewServices(repos *repository.Repositories, cfg *config.Config, log logger.Logger) *Services {
	session := NewSessionService(repos.History, log.With("component", "session"))
	files := NewFileService(repos.Files)

	services := &Services{
		Session: session,
		Ingress: NewIngressService(session, repos.Files, cfg.Server.MaxUploadSize, log.With("component", "ingress")),
		Files:   files,
		Share:   NewShareService(cfg, log),
		Stats:   NewStatsService(session, files, log),
	}

	if repos.RateLimit != nil {
		services.RateLimit = NewRateLimitService(repos.RateLimit, log)
	}

	return services
}
