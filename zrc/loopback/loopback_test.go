package loopback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roomctl/zrcbridge/zrc"
)

type recordingRoomSink struct {
	pairResults []zrc.SDKError
	unpaired    []zrc.RoomUnpairedReason
}

func (s *recordingRoomSink) OnPairRoomResult(result zrc.SDKError) {
	s.pairResults = append(s.pairResults, result)
}

func (s *recordingRoomSink) OnRoomUnpaired(reason zrc.RoomUnpairedReason) {
	s.unpaired = append(s.unpaired, reason)
}

type recordingMeetingSink struct {
	statuses  []zrc.MeetingStatus
	confReady int
	exits     int
}

func (s *recordingMeetingSink) OnUpdateMeetingStatus(status zrc.MeetingStatus) {
	s.statuses = append(s.statuses, status)
}

func (s *recordingMeetingSink) OnConfReady()               { s.confReady++ }
func (s *recordingMeetingSink) OnExitMeetingNotification() { s.exits++ }

type recordingPreSink struct {
	states []zrc.ConnectionState
}

func (s *recordingPreSink) OnConnectionStateChanged(state zrc.ConnectionState) {
	s.states = append(s.states, state)
}

func drain(sim *Simulator) {
	// A couple of beats flushes every queued transition.
	for i := 0; i < 4; i++ {
		sim.HeartBeat()
	}
}

func pairedRoom(t *testing.T, sim *Simulator, roomID string) zrc.RoomsService {
	t.Helper()
	sim.RegisterSink(zrc.NewSinkAdapter(nil))
	room := sim.CreateRoomsService(roomID)
	require.Equal(t, zrc.SDKErrSuccess, room.PairRoomWithActivationCode("123-456-789"))
	drain(sim)
	return room
}

func TestInitialStateBeforeAnyActivity(t *testing.T) {
	sim := New()
	room := sim.CreateRoomsService("boardroom")

	assert.Equal(t, zrc.MeetingStatusNotInMeeting, room.GetMeetingService().GetMeetingStatus())
	assert.Equal(t, zrc.ConnectionStateNone, room.GetPreMeetingService().GetConnectionState())
}

func TestCreateRoomsServiceIsIdempotent(t *testing.T) {
	sim := New()
	a := sim.CreateRoomsService("boardroom")
	b := sim.CreateRoomsService("boardroom")
	assert.Same(t, a, b)

	d := sim.CreateRoomsService("")
	assert.Same(t, d, sim.CreateRoomsService(zrc.DefaultRoomID))
}

func TestPairingDeliversEventsOnHeartBeat(t *testing.T) {
	sim := New()
	sim.RegisterSink(zrc.NewSinkAdapter(nil))
	room := sim.CreateRoomsService("boardroom")

	roomSink := &recordingRoomSink{}
	preSink := &recordingPreSink{}
	room.RegisterSink(roomSink)
	room.GetPreMeetingService().RegisterSink(preSink)

	require.Equal(t, zrc.SDKErrSuccess, room.PairRoomWithActivationCode("123-456-789"))

	// Nothing arrives before the heartbeat.
	assert.Empty(t, roomSink.pairResults)
	assert.Empty(t, preSink.states)

	drain(sim)

	assert.Equal(t, []zrc.SDKError{zrc.SDKErrSuccess}, roomSink.pairResults)
	assert.Equal(t, []zrc.ConnectionState{
		zrc.ConnectionStateEstablished,
		zrc.ConnectionStateConnected,
	}, preSink.states)
	assert.Equal(t, zrc.ConnectionStateConnected, room.GetPreMeetingService().GetConnectionState())
}

func TestPairingRequiresActivationCode(t *testing.T) {
	sim := New()
	sim.RegisterSink(zrc.NewSinkAdapter(nil))
	room := sim.CreateRoomsService("boardroom")
	assert.Equal(t, zrc.SDKErrInternalError, room.PairRoomWithActivationCode(""))
}

type brokenSinkHandler struct{}

func (brokenSinkHandler) OnGetAppName() int { return 7 }

func TestPairingFailsWhenSinkConversionFails(t *testing.T) {
	sim := New()
	sim.RegisterSink(zrc.NewSinkAdapter(brokenSinkHandler{}))
	room := sim.CreateRoomsService("boardroom")
	assert.Equal(t, zrc.SDKErrInternalError, room.PairRoomWithActivationCode("123-456-789"))
}

func TestRetryToPairRequiresPreviousCode(t *testing.T) {
	sim := New()
	sim.RegisterSink(zrc.NewSinkAdapter(nil))
	room := sim.CreateRoomsService("boardroom")

	assert.Equal(t, zrc.SDKErrInternalError, room.RetryToPairRoom())

	require.Equal(t, zrc.SDKErrSuccess, room.PairRoomWithActivationCode("123-456-789"))
	drain(sim)
	require.Equal(t, zrc.SDKErrSuccess, room.UnpairRoom())
	drain(sim)

	assert.Equal(t, zrc.SDKErrSuccess, room.RetryToPairRoom())
}

func TestMeetingLifecycle(t *testing.T) {
	sim := New()
	room := pairedRoom(t, sim, "boardroom")
	meet := room.GetMeetingService()

	meetSink := &recordingMeetingSink{}
	meet.RegisterSink(meetSink)

	require.Equal(t, zrc.SDKErrSuccess, meet.StartInstantMeeting())
	drain(sim)

	assert.Equal(t, zrc.MeetingStatusInMeeting, meet.GetMeetingStatus())
	assert.Equal(t, []zrc.MeetingStatus{
		zrc.MeetingStatusConnectingToMeeting,
		zrc.MeetingStatusInMeeting,
	}, meetSink.statuses)
	assert.Equal(t, 1, meetSink.confReady)

	require.Equal(t, zrc.SDKErrSuccess, meet.ExitMeeting(zrc.ExitMeetingCmdLeave))
	drain(sim)

	assert.Equal(t, zrc.MeetingStatusNotInMeeting, meet.GetMeetingStatus())
	assert.Equal(t, 1, meetSink.exits)
}

func TestMeetingRequiresPairing(t *testing.T) {
	sim := New()
	room := sim.CreateRoomsService("boardroom")
	meet := room.GetMeetingService()

	assert.Equal(t, zrc.SDKErrInternalError, meet.StartInstantMeeting())
	assert.Equal(t, zrc.SDKErrInternalError, meet.JoinMeeting("987654321", ""))
	assert.Equal(t, zrc.SDKErrInternalError, meet.ExitMeeting(zrc.ExitMeetingCmdEnd))
}

func TestJoinMeetingRequiresNumber(t *testing.T) {
	sim := New()
	room := pairedRoom(t, sim, "boardroom")
	assert.Equal(t, zrc.SDKErrInternalError, room.GetMeetingService().JoinMeeting("", ""))
}

func TestMuteHelpersRequireActiveMeeting(t *testing.T) {
	sim := New()
	room := pairedRoom(t, sim, "boardroom")
	meet := room.GetMeetingService()

	assert.Equal(t, zrc.SDKErrInternalError, meet.GetMeetingAudioHelper().MuteAudio(true))

	require.Equal(t, zrc.SDKErrSuccess, meet.StartInstantMeeting())
	drain(sim)

	assert.Equal(t, zrc.SDKErrSuccess, meet.GetMeetingAudioHelper().MuteAudio(true))
	assert.Equal(t, zrc.SDKErrSuccess, meet.GetMeetingVideoHelper().MuteVideo(true))
}

func TestForceUnpair(t *testing.T) {
	sim := New()
	room := pairedRoom(t, sim, "boardroom")

	roomSink := &recordingRoomSink{}
	room.RegisterSink(roomSink)

	sim.ForceUnpair("boardroom", zrc.RoomUnpairedReasonTokenInvalid)
	drain(sim)

	assert.Equal(t, []zrc.RoomUnpairedReason{zrc.RoomUnpairedReasonTokenInvalid}, roomSink.unpaired)
	assert.Equal(t, zrc.ConnectionStateDisconnected, room.GetPreMeetingService().GetConnectionState())
}

func TestQueryAllRoomsServices(t *testing.T) {
	sim := New()
	sim.RegisterSink(zrc.NewSinkAdapter(nil))
	sim.CreateRoomsService("boardroom")
	room := sim.CreateRoomsService("lobby")
	require.Equal(t, zrc.SDKErrSuccess, room.PairRoomWithActivationCode("111-222-333"))

	infos := sim.QueryAllRoomsServices()
	require.Len(t, infos, 2)

	byID := map[string]zrc.RoomInfo{}
	for _, info := range infos {
		byID[info.RoomID] = info
	}
	assert.False(t, byID["boardroom"].CanRetryToPair)
	assert.True(t, byID["lobby"].CanRetryToPair)
}

func TestProviderLifecycle(t *testing.T) {
	p := &provider{}
	sdk := p.GetInstance()
	assert.Same(t, sdk, p.GetInstance())
	p.DestroyInstance()
	assert.NotSame(t, sdk, p.GetInstance())
}
