// Package loopback is an in-memory stand-in for the vendor Zoom Rooms
// Controller SDK. It implements the zrc surface with a shallow state machine
// so the control service and its tests can run without the native library.
// It mirrors the vendor's Linux delivery model: events queue up and are
// delivered from inside HeartBeat, on the calling goroutine.
package loopback

import (
	"sync"

	"github.com/roomctl/zrcbridge/zrc"
)

// Register installs a loopback provider as the process-wide SDK source.
func Register() {
	zrc.RegisterProvider(&provider{})
}

type provider struct {
	mu  sync.Mutex
	sim *Simulator
}

func (p *provider) GetInstance() zrc.SDK {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.sim == nil {
		p.sim = New()
	}
	return p.sim
}

func (p *provider) DestroyInstance() {
	p.mu.Lock()
	p.sim = nil
	p.mu.Unlock()
}

// Simulator implements zrc.SDK plus simulation controls that the vendor
// surface does not expose (ForceUnpair).
type Simulator struct {
	mu      sync.Mutex
	sink    zrc.Sink
	rooms   map[string]*roomService
	pending []func()
}

func New() *Simulator {
	return &Simulator{rooms: make(map[string]*roomService)}
}

// HeartBeat delivers every event queued since the previous call.
func (s *Simulator) HeartBeat() zrc.SDKError {
	s.mu.Lock()
	queue := s.pending
	s.pending = nil
	s.mu.Unlock()
	for _, fire := range queue {
		fire()
	}
	return zrc.SDKErrSuccess
}

func (s *Simulator) ForceFlushLog() zrc.SDKError { return zrc.SDKErrSuccess }

func (s *Simulator) CreateRoomsService(roomID string) zrc.RoomsService {
	if roomID == "" {
		roomID = zrc.DefaultRoomID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.rooms[roomID]; ok {
		return r
	}
	r := &roomService{
		sim:    s,
		roomID: roomID,
		pre:    &preMeetingService{},
		meet:   &meetingService{},
	}
	r.meet.room = r
	s.rooms[roomID] = r
	return r
}

func (s *Simulator) QueryAllRoomsServices() []zrc.RoomInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]zrc.RoomInfo, 0, len(s.rooms))
	for id, r := range s.rooms {
		r.mu.Lock()
		canRetry := r.activationCode != ""
		r.mu.Unlock()
		out = append(out, zrc.RoomInfo{
			RoomName:       id,
			DisplayName:    id,
			RoomID:         id,
			CanRetryToPair: canRetry,
		})
	}
	return out
}

func (s *Simulator) RegisterSink(sink zrc.Sink) zrc.SDKError {
	s.mu.Lock()
	s.sink = sink
	s.mu.Unlock()
	return zrc.SDKErrSuccess
}

// ForceUnpair simulates the vendor dropping a pairing on its own, e.g. an
// expired token. The event is delivered on the next HeartBeat.
func (s *Simulator) ForceUnpair(roomID string, reason zrc.RoomUnpairedReason) {
	s.mu.Lock()
	r, ok := s.rooms[roomID]
	s.mu.Unlock()
	if !ok {
		return
	}
	r.mu.Lock()
	r.paired = false
	r.pre.setState(zrc.ConnectionStateDisconnected)
	r.mu.Unlock()
	s.enqueue(func() {
		if sink := r.roomSink(); sink != nil {
			sink.OnRoomUnpaired(reason)
		}
		if sink := r.pre.sinkRef(); sink != nil {
			sink.OnConnectionStateChanged(zrc.ConnectionStateDisconnected)
		}
	})
}

func (s *Simulator) enqueue(fire func()) {
	s.mu.Lock()
	s.pending = append(s.pending, fire)
	s.mu.Unlock()
}

// identityCheck replays the metadata queries the vendor issues while pairing.
// A failing sink callback fails the whole operation, it never falls back.
func (s *Simulator) identityCheck() zrc.SDKError {
	s.mu.Lock()
	sink := s.sink
	s.mu.Unlock()
	if sink == nil {
		return zrc.SDKErrInternalError
	}
	queries := []func() (string, error){
		sink.OnGetDeviceManufacturer,
		sink.OnGetDeviceModel,
		sink.OnGetAppName,
		sink.OnGetAppVersion,
		sink.OnGetAppContentDirPath,
	}
	for _, q := range queries {
		if _, err := q(); err != nil {
			return zrc.SDKErrInternalError
		}
	}
	return zrc.SDKErrSuccess
}
