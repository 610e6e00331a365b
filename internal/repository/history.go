package repository

import (
	"sync"

	"lan_relay/internal/domain"
	"lan_relay/pkg/logger"
)

// HistoryRepository is the append-only session timeline.
type HistoryRepository interface {
	Append(msg domain.Message) error
	Snapshot() []domain.Message
	Len() int
}

type historyRepository struct {
	mu       sync.RWMutex
	messages []domain.Message
	log      logger.Logger
}

func NewHistoryRepository(log logger.Logger) HistoryRepository {
	return &historyRepository{log: log}
}

func (r *historyRepository) Append(msg domain.Message) error {
	if err := msg.Validate(); err != nil {
		r.log.Warn("Rejected invalid message", "error", err)
		return err
	}

	r.mu.Lock()
	r.messages = append(r.messages, msg)
	r.mu.Unlock()
	return nil
}

// Snapshot returns a copy of the timeline in append order.
func (r *historyRepository) Snapshot() []domain.Message {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Message, len(r.messages))
	copy(out, r.messages)
	return out
}

func (r *historyRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.messages)
}
