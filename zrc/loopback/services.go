package loopback

import (
	"sync"

	"github.com/roomctl/zrcbridge/zrc"
)

type roomService struct {
	sim    *Simulator
	roomID string

	mu             sync.Mutex
	paired         bool
	activationCode string
	sink           zrc.RoomsServiceSink

	pre  *preMeetingService
	meet *meetingService
}

func (r *roomService) PairRoomWithActivationCode(code string) zrc.SDKError {
	if code == "" {
		return zrc.SDKErrInternalError
	}
	if res := r.sim.identityCheck(); res != zrc.SDKErrSuccess {
		return res
	}
	r.mu.Lock()
	r.activationCode = code
	r.paired = true
	r.mu.Unlock()

	r.sim.enqueue(func() {
		r.pre.setState(zrc.ConnectionStateEstablished)
		if sink := r.pre.sinkRef(); sink != nil {
			sink.OnConnectionStateChanged(zrc.ConnectionStateEstablished)
		}
	})
	r.sim.enqueue(func() {
		r.pre.setState(zrc.ConnectionStateConnected)
		if sink := r.pre.sinkRef(); sink != nil {
			sink.OnConnectionStateChanged(zrc.ConnectionStateConnected)
		}
		if sink := r.roomSink(); sink != nil {
			sink.OnPairRoomResult(zrc.SDKErrSuccess)
		}
	})
	return zrc.SDKErrSuccess
}

func (r *roomService) UnpairRoom() zrc.SDKError {
	r.mu.Lock()
	if !r.paired {
		r.mu.Unlock()
		return zrc.SDKErrInternalError
	}
	r.paired = false
	r.mu.Unlock()

	r.sim.enqueue(func() {
		r.pre.setState(zrc.ConnectionStateDisconnected)
		if sink := r.pre.sinkRef(); sink != nil {
			sink.OnConnectionStateChanged(zrc.ConnectionStateDisconnected)
		}
	})
	return zrc.SDKErrSuccess
}

func (r *roomService) RetryToPairRoom() zrc.SDKError {
	r.mu.Lock()
	code := r.activationCode
	r.mu.Unlock()
	if code == "" {
		return zrc.SDKErrInternalError
	}
	return r.PairRoomWithActivationCode(code)
}

func (r *roomService) GetPreMeetingService() zrc.PreMeetingService { return r.pre }
func (r *roomService) GetMeetingService() zrc.MeetingService       { return r.meet }

func (r *roomService) RegisterSink(sink zrc.RoomsServiceSink) zrc.SDKError {
	r.mu.Lock()
	r.sink = sink
	r.mu.Unlock()
	return zrc.SDKErrSuccess
}

func (r *roomService) roomSink() zrc.RoomsServiceSink {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sink
}

func (r *roomService) isPaired() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.paired
}

type preMeetingService struct {
	mu    sync.Mutex
	state zrc.ConnectionState
	sink  zrc.PreMeetingServiceSink
}

func (p *preMeetingService) GetConnectionState() zrc.ConnectionState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *preMeetingService) RegisterSink(sink zrc.PreMeetingServiceSink) zrc.SDKError {
	p.mu.Lock()
	p.sink = sink
	p.mu.Unlock()
	return zrc.SDKErrSuccess
}

func (p *preMeetingService) setState(state zrc.ConnectionState) {
	p.mu.Lock()
	p.state = state
	p.mu.Unlock()
}

func (p *preMeetingService) sinkRef() zrc.PreMeetingServiceSink {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sink
}

type meetingService struct {
	room *roomService

	mu         sync.Mutex
	status     zrc.MeetingStatus
	sink       zrc.MeetingServiceSink
	audioMuted bool
	videoMuted bool
}

func (m *meetingService) StartInstantMeeting() zrc.SDKError {
	return m.connect()
}

func (m *meetingService) JoinMeeting(meetingNumber, password string) zrc.SDKError {
	if meetingNumber == "" {
		return zrc.SDKErrInternalError
	}
	return m.connect()
}

func (m *meetingService) connect() zrc.SDKError {
	if !m.room.isPaired() {
		return zrc.SDKErrInternalError
	}
	m.room.sim.enqueue(func() {
		m.setStatus(zrc.MeetingStatusConnectingToMeeting)
		if sink := m.sinkRef(); sink != nil {
			sink.OnUpdateMeetingStatus(zrc.MeetingStatusConnectingToMeeting)
		}
	})
	m.room.sim.enqueue(func() {
		m.setStatus(zrc.MeetingStatusInMeeting)
		if sink := m.sinkRef(); sink != nil {
			sink.OnUpdateMeetingStatus(zrc.MeetingStatusInMeeting)
			sink.OnConfReady()
		}
	})
	return zrc.SDKErrSuccess
}

func (m *meetingService) ExitMeeting(cmd zrc.ExitMeetingCmd) zrc.SDKError {
	m.mu.Lock()
	inMeeting := m.status == zrc.MeetingStatusInMeeting || m.status == zrc.MeetingStatusConnectingToMeeting
	m.mu.Unlock()
	if !inMeeting {
		return zrc.SDKErrInternalError
	}
	m.room.sim.enqueue(func() {
		m.setStatus(zrc.MeetingStatusNotInMeeting)
		if sink := m.sinkRef(); sink != nil {
			sink.OnUpdateMeetingStatus(zrc.MeetingStatusNotInMeeting)
			sink.OnExitMeetingNotification()
		}
	})
	return zrc.SDKErrSuccess
}

func (m *meetingService) GetMeetingStatus() zrc.MeetingStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

func (m *meetingService) GetMeetingAudioHelper() zrc.MeetingAudioHelper { return (*audioHelper)(m) }
func (m *meetingService) GetMeetingVideoHelper() zrc.MeetingVideoHelper { return (*videoHelper)(m) }

func (m *meetingService) RegisterSink(sink zrc.MeetingServiceSink) zrc.SDKError {
	m.mu.Lock()
	m.sink = sink
	m.mu.Unlock()
	return zrc.SDKErrSuccess
}

func (m *meetingService) setStatus(status zrc.MeetingStatus) {
	m.mu.Lock()
	m.status = status
	m.mu.Unlock()
}

func (m *meetingService) sinkRef() zrc.MeetingServiceSink {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sink
}

type audioHelper meetingService

func (h *audioHelper) MuteAudio(mute bool) zrc.SDKError {
	m := (*meetingService)(h)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.status != zrc.MeetingStatusInMeeting {
		return zrc.SDKErrInternalError
	}
	m.audioMuted = mute
	return zrc.SDKErrSuccess
}

type videoHelper meetingService

func (h *videoHelper) MuteVideo(mute bool) zrc.SDKError {
	m := (*meetingService)(h)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.status != zrc.MeetingStatusInMeeting {
		return zrc.SDKErrInternalError
	}
	m.videoMuted = mute
	return zrc.SDKErrSuccess
}
