package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/roomctl/zrcbridge/internal/config"
	"github.com/roomctl/zrcbridge/zrc"
)

// RoomStatus is a read-only view of one managed room for APIs.
type RoomStatus struct {
	RoomID          string `json:"room_id"`
	Paired          bool   `json:"paired"`
	ConnectionState string `json:"connection_state"`
	MeetingStatus   string `json:"meeting_status"`
}

// Manager owns the service handles for every room this process controls.
// It creates each vendor RoomsService once, wires the per-room event sinks
// to the broadcaster, and drives the vendor heartbeat. The vendor keeps
// ownership of every handle; the manager only maps room ids to borrows.
type Manager struct {
	cfg    *config.Config
	sdk    zrc.SDK
	events Broadcaster

	mu    sync.RWMutex
	rooms map[string]zrc.RoomsService
}

func NewManager(cfg *config.Config, sdk zrc.SDK, events Broadcaster) *Manager {
	return &Manager{
		cfg:    cfg,
		sdk:    sdk,
		events: events,
		rooms:  make(map[string]zrc.RoomsService),
	}
}

// RegisterMetadataSink installs the config-backed identity handler on the
// SDK singleton. Must be called once before any pairing operation.
func (m *Manager) RegisterMetadataSink() error {
	if code := zrc.RegisterSink(m.sdk, newSinkHandler(m.cfg.Sink)); code != zrc.SDKErrSuccess {
		return fmt.Errorf("register SDK sink: %s", code)
	}
	log.Info().Str("module", "app.manager").Msg("SDK metadata sink registered")
	return nil
}

// CreateRoomService returns the service for roomID, creating it and wiring
// its event sinks on first use.
func (m *Manager) CreateRoomService(roomID string) zrc.RoomsService {
	m.mu.RLock()
	room, ok := m.rooms[roomID]
	m.mu.RUnlock()
	if ok {
		return room
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if room, ok = m.rooms[roomID]; ok {
		return room
	}

	room = m.sdk.CreateRoomsService(roomID)
	room.RegisterSink(&roomEventSink{roomID: roomID, events: m.events})
	room.GetMeetingService().RegisterSink(&meetingEventSink{roomID: roomID, events: m.events})
	room.GetPreMeetingService().RegisterSink(&preMeetingEventSink{roomID: roomID, events: m.events})
	m.rooms[roomID] = room

	log.Info().Str("module", "app.manager").Str("room", roomID).Msg("room service created")
	return room
}

// RoomService returns an existing service without creating one.
func (m *Manager) RoomService(roomID string) (zrc.RoomsService, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	room, ok := m.rooms[roomID]
	return room, ok
}

// Rooms snapshots the status of every managed room.
func (m *Manager) Rooms() []RoomStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]RoomStatus, 0, len(m.rooms))
	for id, room := range m.rooms {
		state := room.GetPreMeetingService().GetConnectionState()
		out = append(out, RoomStatus{
			RoomID:          id,
			Paired:          state == zrc.ConnectionStateConnected,
			ConnectionState: state.String(),
			MeetingStatus:   room.GetMeetingService().GetMeetingStatus().String(),
		})
	}
	return out
}

// Status reports one room, if managed.
func (m *Manager) Status(roomID string) (RoomStatus, bool) {
	m.mu.RLock()
	room, ok := m.rooms[roomID]
	m.mu.RUnlock()
	if !ok {
		return RoomStatus{}, false
	}
	state := room.GetPreMeetingService().GetConnectionState()
	return RoomStatus{
		RoomID:          roomID,
		Paired:          state == zrc.ConnectionStateConnected,
		ConnectionState: state.String(),
		MeetingStatus:   room.GetMeetingService().GetMeetingStatus().String(),
	}, true
}

// RunHeartbeat drives the vendor event loop until ctx is canceled. The
// vendor delivers queued callbacks from inside HeartBeat, so every sink
// event this process sees originates here.
func (m *Manager) RunHeartbeat(ctx context.Context) {
	interval := m.cfg.HeartbeatInterval
	if interval <= 0 {
		interval = 150 * time.Millisecond
	}
	log.Info().Str("module", "app.manager").Dur("interval", interval).Msg("heartbeat loop started")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "app.manager").Msg("heartbeat loop stopped")
			return
		case <-ticker.C:
			if code := m.sdk.HeartBeat(); code != zrc.SDKErrSuccess {
				log.Error().Str("module", "app.manager").Str("code", code.String()).Msg("heartbeat error")
			}
		}
	}
}

// Shutdown releases the vendor singleton. Every room service borrow becomes
// invalid after this returns.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	m.rooms = make(map[string]zrc.RoomsService)
	m.mu.Unlock()
	if err := zrc.DestroyInstance(); err != nil {
		log.Warn().Err(err).Str("module", "app.manager").Msg("destroy instance")
		return
	}
	log.Info().Str("module", "app.manager").Msg("SDK instance destroyed")
}
