package zrc

// The per-room service handles below are references into vendor-owned
// memory. The binding must not destroy them, copy them, or extend their
// lifetime beyond the singleton's; callers inherit the same borrow contract.
//
// None of these methods add validation, retries or caching. Each is a
// one-argument-for-one-argument forward into the vendor SDK, and any
// blocking (network pairing, meeting setup) happens inside the vendor call
// on the caller's goroutine.

// RoomsService is the room-management handle obtained from the singleton.
type RoomsService interface {
	PairRoomWithActivationCode(code string) SDKError
	UnpairRoom() SDKError
	RetryToPairRoom() SDKError

	GetPreMeetingService() PreMeetingService
	GetMeetingService() MeetingService

	// RegisterSink installs the room event sink, replacing any previous one.
	RegisterSink(RoomsServiceSink) SDKError
}

// PreMeetingService exposes the room's pre-meeting channel.
type PreMeetingService interface {
	GetConnectionState() ConnectionState
	RegisterSink(PreMeetingServiceSink) SDKError
}

// MeetingService exposes meeting control for a paired room.
type MeetingService interface {
	StartInstantMeeting() SDKError
	JoinMeeting(meetingNumber, password string) SDKError
	ExitMeeting(cmd ExitMeetingCmd) SDKError
	GetMeetingStatus() MeetingStatus

	GetMeetingAudioHelper() MeetingAudioHelper
	GetMeetingVideoHelper() MeetingVideoHelper

	RegisterSink(MeetingServiceSink) SDKError
}

// MeetingAudioHelper controls the room's meeting audio.
type MeetingAudioHelper interface {
	MuteAudio(mute bool) SDKError
}

// MeetingVideoHelper controls the room's meeting video.
type MeetingVideoHelper interface {
	MuteVideo(mute bool) SDKError
}

// RoomsServiceSink receives room pairing events from the vendor SDK. On
// Linux these arrive from inside HeartBeat, on the goroutine that called it.
type RoomsServiceSink interface {
	OnPairRoomResult(result SDKError)
	OnRoomUnpaired(reason RoomUnpairedReason)
}

// MeetingServiceSink receives meeting lifecycle events.
type MeetingServiceSink interface {
	OnUpdateMeetingStatus(status MeetingStatus)
	OnConfReady()
	OnExitMeetingNotification()
}

// PreMeetingServiceSink receives connection-state transitions.
type PreMeetingServiceSink interface {
	OnConnectionStateChanged(state ConnectionState)
}
