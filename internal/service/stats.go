package service

import (
	"github.com/samber/lo"
	"lan_relay/internal/domain"
	"lan_relay/pkg/logger"
)

type StatsService interface {
	GetSessionStats() domain.SessionStats
}

type statsService struct {
	session SessionService
	files   FileService
	log     logger.Logger
}

func NewStatsService(session SessionService, files FileService, log logger.Logger) StatsService {
	return &statsService{
		session: session,
		files:   files,
		log:     log,
	}
}

func (s *statsService) GetSessionStats() domain.SessionStats {
	history := s.session.History()
	byKind := lo.CountValuesBy(history, func(m domain.Message) domain.MessageKind {
		return m.Kind
	})
	fileStats := s.files.Stats()

	return domain.SessionStats{
		Peers:        s.session.PeerCount(),
		Messages:     len(history),
		TextMessages: byKind[domain.MessageKindText],
		FileMessages: byKind[domain.MessageKindFile],
		StoredFiles:  fileStats.Count,
		StoredBytes:  fileStats.Bytes,
	}
}
