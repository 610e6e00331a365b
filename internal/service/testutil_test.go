package service

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"lan_relay/internal/domain"
	"lan_relay/internal/repository"
	"lan_relay/pkg/logger"
)

// fakePeer records delivered events. A capacity of zero means unbounded.
type fakePeer struct {
	id       string
	capacity int

	mu     sync.Mutex
	events []domain.Event
	closed bool
}

func newFakePeer(capacity int) *fakePeer {
	return &fakePeer{id: uuid.NewString(), capacity: capacity}
}

func (p *fakePeer) ID() string { return p.id }

func (p *fakePeer) Deliver(evt domain.Event) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed || (p.capacity > 0 && len(p.events) >= p.capacity) {
		return false
	}
	p.events = append(p.events, evt)
	return true
}

func (p *fakePeer) Close() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
}

func (p *fakePeer) isClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

func (p *fakePeer) received() []domain.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.Event, len(p.events))
	copy(out, p.events)
	return out
}

// decodeHistory splits a peer's events into the load_history snapshot and the
// new_message broadcasts that followed it.
func decodeHistory(t *testing.T, events []domain.Event) (snapshot, broadcast []domain.Message) {
	t.Helper()
	require.NotEmpty(t, events)
	require.Equal(t, domain.EventLoadHistory, events[0].Name)
	require.NoError(t, json.Unmarshal(events[0].Data, &snapshot))

	for _, evt := range events[1:] {
		require.Equal(t, domain.EventNewMessage, evt.Name)
		var msg domain.Message
		require.NoError(t, json.Unmarshal(evt.Data, &msg))
		broadcast = append(broadcast, msg)
	}
	return snapshot, broadcast
}

func newTestSession() (SessionService, repository.HistoryRepository) {
	history := repository.NewHistoryRepository(logger.NewNop())
	return NewSessionService(history, logger.NewNop()), history
}
