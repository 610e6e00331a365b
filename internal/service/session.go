package service

import (
	"errors"
	"fmt"
	"sync"

	"github.com/samber/lo"
	"lan_relay/internal/domain"
	"lan_relay/internal/repository"
	"lan_relay/pkg/logger"
)

var (
	ErrPeerBackpressure = errors.New("peer send buffer full")
	ErrSessionClosed    = errors.New("session closed")
)

// Peer is a broadcast target. Deliver must not block: it queues the event and
// reports false when the peer cannot accept it.
type Peer interface {
	ID() string
	Deliver(evt domain.Event) bool
	Close()
}

type SessionService interface {
	Connect(peer Peer) error
	Disconnect(peer Peer)
	Publish(msg domain.Message) error
	History() []domain.Message
	PeerCount() int
	Shutdown()
}

type sessionService struct {
	// mu orders every append against every registration, so a joining peer
	// sees each message exactly once: either in its snapshot or as a broadcast.
	mu      sync.Mutex
	peers   map[Peer]struct{}
	closed  bool
	history repository.HistoryRepository
	log     logger.Logger
}

func NewSessionService(history repository.HistoryRepository, log logger.Logger) SessionService {
	return &sessionService{
		peers:   make(map[Peer]struct{}),
		history: history,
		log:     log,
	}
}

func (s *sessionService) Connect(peer Peer) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}

	evt, err := domain.NewLoadHistoryEvent(s.history.Snapshot())
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("encode history: %w", err)
	}

	if !peer.Deliver(evt) {
		s.mu.Unlock()
		peer.Close()
		return ErrPeerBackpressure
	}

	s.peers[peer] = struct{}{}
	count := len(s.peers)
	s.mu.Unlock()

	s.log.Info("Peer connected", "peer_id", peer.ID(), "peers", count)
	return nil
}

func (s *sessionService) Disconnect(peer Peer) {
	s.mu.Lock()
	_, ok := s.peers[peer]
	delete(s.peers, peer)
	count := len(s.peers)
	s.mu.Unlock()

	if ok {
		s.log.Info("Peer disconnected", "peer_id", peer.ID(), "peers", count)
	}
}

// Publish appends msg to the history and queues it for every registered peer.
// Peers whose buffers are full are dropped; their failure never reaches the
// caller.
func (s *sessionService) Publish(msg domain.Message) error {
	evt, err := domain.NewMessageEvent(msg)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if err := s.history.Append(msg); err != nil {
		s.mu.Unlock()
		return err
	}

	var dropped []Peer
	for peer := range s.peers {
		if !peer.Deliver(evt) {
			delete(s.peers, peer)
			dropped = append(dropped, peer)
		}
	}
	s.mu.Unlock()

	for _, peer := range dropped {
		s.log.Warn("Dropping slow peer", "peer_id", peer.ID(), "message_id", msg.ID)
		peer.Close()
	}
	return nil
}

func (s *sessionService) History() []domain.Message {
	return s.history.Snapshot()
}

func (s *sessionService) PeerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.peers)
}

// Shutdown closes every peer and refuses new connections.
func (s *sessionService) Shutdown() {
	s.mu.Lock()
	s.closed = true
	peers := lo.Keys(s.peers)
	s.peers = make(map[Peer]struct{})
	s.mu.Unlock()

	for _, peer := range peers {
		peer.Close()
	}
	s.log.Info("Session closed", "peers", len(peers))
}
