package zrc

// SDKError is the vendor SDK's result code, forwarded unchanged by every
// operation in this package. The binding never interprets or remaps it.
type SDKError int32

const (
	SDKErrSuccess       SDKError = 0
	SDKErrInternalError SDKError = 1
)

// MeetingStatus reports where the room is in the meeting lifecycle.
type MeetingStatus int32

const (
	MeetingStatusNotInMeeting MeetingStatus = iota
	MeetingStatusConnectingToMeeting
	MeetingStatusInMeeting
	MeetingStatusLoggedOut
)

// ConnectionState reports the state of the pre-meeting channel to the room.
type ConnectionState int32

const (
	ConnectionStateNone ConnectionState = iota
	ConnectionStateEstablished
	ConnectionStateConnected
	ConnectionStateDisconnected
)

// ExitMeetingCmd selects how a meeting is exited.
type ExitMeetingCmd int32

const (
	ExitMeetingCmdLeave ExitMeetingCmd = iota
	ExitMeetingCmdEnd
)

// RoomUnpairedReason is reported by the vendor SDK when a room drops its
// pairing on its own.
type RoomUnpairedReason int32

const (
	RoomUnpairedReasonTokenInvalid RoomUnpairedReason = iota
	RoomUnpairedReasonRefreshTokenFail
)

// Symbolic names as published by the vendor headers. Reverse registries are
// derived in init so the two directions cannot drift.
var (
	sdkErrorNames = map[SDKError]string{
		SDKErrSuccess:       "ZRCSDKERR_SUCCESS",
		SDKErrInternalError: "ZRCSDKERR_INTERNAL_ERROR",
	}
	meetingStatusNames = map[MeetingStatus]string{
		MeetingStatusNotInMeeting:        "MeetingStatusNotInMeeting",
		MeetingStatusConnectingToMeeting: "MeetingStatusConnectingToMeeting",
		MeetingStatusInMeeting:           "MeetingStatusInMeeting",
		MeetingStatusLoggedOut:           "MeetingStatusLoggedOut",
	}
	connectionStateNames = map[ConnectionState]string{
		ConnectionStateNone:         "ConnectionStateNone",
		ConnectionStateEstablished:  "ConnectionStateEstablished",
		ConnectionStateConnected:    "ConnectionStateConnected",
		ConnectionStateDisconnected: "ConnectionStateDisconnected",
	}
	exitMeetingCmdNames = map[ExitMeetingCmd]string{
		ExitMeetingCmdLeave: "ExitMeetingCmdLeave",
		ExitMeetingCmdEnd:   "ExitMeetingCmdEnd",
	}
	roomUnpairedReasonNames = map[RoomUnpairedReason]string{
		RoomUnpairedReasonTokenInvalid:     "RoomUnpairedReason_TokenInvalid",
		RoomUnpairedReasonRefreshTokenFail: "RoomUnpairedReason_RefreshTokenFail",
	}

	sdkErrorValues           = map[string]SDKError{}
	meetingStatusValues      = map[string]MeetingStatus{}
	connectionStateValues    = map[string]ConnectionState{}
	exitMeetingCmdValues     = map[string]ExitMeetingCmd{}
	roomUnpairedReasonValues = map[string]RoomUnpairedReason{}
)

func init() {
	for v, n := range sdkErrorNames {
		sdkErrorValues[n] = v
	}
	for v, n := range meetingStatusNames {
		meetingStatusValues[n] = v
	}
	for v, n := range connectionStateNames {
		connectionStateValues[n] = v
	}
	for v, n := range exitMeetingCmdNames {
		exitMeetingCmdValues[n] = v
	}
	for v, n := range roomUnpairedReasonNames {
		roomUnpairedReasonValues[n] = v
	}
}

func (e SDKError) String() string           { return sdkErrorNames[e] }
func (s MeetingStatus) String() string      { return meetingStatusNames[s] }
func (s ConnectionState) String() string    { return connectionStateNames[s] }
func (c ExitMeetingCmd) String() string     { return exitMeetingCmdNames[c] }
func (r RoomUnpairedReason) String() string { return roomUnpairedReasonNames[r] }

// ParseSDKError resolves a symbolic name back to its value.
func ParseSDKError(name string) (SDKError, bool) {
	v, ok := sdkErrorValues[name]
	return v, ok
}

func ParseMeetingStatus(name string) (MeetingStatus, bool) {
	v, ok := meetingStatusValues[name]
	return v, ok
}

func ParseConnectionState(name string) (ConnectionState, bool) {
	v, ok := connectionStateValues[name]
	return v, ok
}

func ParseExitMeetingCmd(name string) (ExitMeetingCmd, bool) {
	v, ok := exitMeetingCmdValues[name]
	return v, ok
}

func ParseRoomUnpairedReason(name string) (RoomUnpairedReason, bool) {
	v, ok := roomUnpairedReasonValues[name]
	return v, ok
}

// RoomInfo is an immutable snapshot of a pairable room endpoint. It is
// copied by value across the boundary, never shared with the vendor SDK.
type RoomInfo struct {
	RoomName       string `json:"room_name"`
	DisplayName    string `json:"display_name"`
	RoomAddress    string `json:"room_address"`
	RoomID         string `json:"room_id"`
	Worker         string `json:"worker"`
	CanRetryToPair bool   `json:"can_retry_to_pair"`
}
