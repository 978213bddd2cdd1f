package events

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/roomctl/zrcbridge/internal/app"
)

var ErrBackpressure = errors.New("backpressure")

// subscriber is one WebSocket client listening to a room's events.
type subscriber struct {
	sid  string
	conn wsConn
	send chan []byte

	mu     sync.Mutex
	closed bool
}

func newSubscriber(sid string, conn wsConn) *subscriber {
	return &subscriber{
		sid:  sid,
		conn: conn,
		send: make(chan []byte, 32),
	}
}

func (s *subscriber) trySend(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.New("subscriber closed")
	}
	select {
	case s.send <- data:
		return nil
	default:
		return ErrBackpressure
	}
}

func (s *subscriber) close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	close(s.send)
	s.mu.Unlock()
	_ = s.conn.Close()
}

// Hub tracks which subscribers listen to which room and implements
// app.Broadcaster. A subscriber that cannot keep up is dropped rather than
// allowed to stall delivery to the rest of the room.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[*subscriber]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[*subscriber]struct{})}
}

func (h *Hub) add(roomID string, s *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.subs[roomID]
	if !ok {
		set = make(map[*subscriber]struct{})
		h.subs[roomID] = set
	}
	set[s] = struct{}{}
	log.Info().Str("module", "adapters.events").Str("room", roomID).Str("sid", s.sid).Msg("subscriber added")
}

func (h *Hub) remove(roomID string, s *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.subs[roomID]; ok {
		delete(set, s)
		if len(set) == 0 {
			delete(h.subs, roomID)
		}
	}
	log.Info().Str("module", "adapters.events").Str("room", roomID).Str("sid", s.sid).Msg("subscriber removed")
}

// SubscriberCount reports how many clients listen to roomID.
func (h *Hub) SubscriberCount(roomID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[roomID])
}

// Broadcast sends the event to every subscriber of the room.
func (h *Hub) Broadcast(roomID string, event app.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("module", "adapters.events").Msg("marshal event")
		return
	}

	h.mu.RLock()
	targets := make([]*subscriber, 0, len(h.subs[roomID]))
	for s := range h.subs[roomID] {
		targets = append(targets, s)
	}
	h.mu.RUnlock()

	for _, s := range targets {
		if err := s.trySend(data); err != nil {
			log.Warn().Str("module", "adapters.events").Str("room", roomID).Str("sid", s.sid).Msg("dropping slow subscriber")
			h.remove(roomID, s)
			s.close()
		}
	}
}
