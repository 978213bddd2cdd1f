package app

import "github.com/roomctl/zrcbridge/zrc"

// Event is the envelope published to room subscribers. Field names mirror
// the vendor callback payloads so host clients can switch on "event".
type Event struct {
	Event  string `json:"event"`
	RoomID string `json:"room_id"`
	Result *int32 `json:"result,omitempty"`
	Reason string `json:"reason,omitempty"`
	Status string `json:"status,omitempty"`
	State  string `json:"state,omitempty"`
}

// Broadcaster fans an event out to everything subscribed to a room.
type Broadcaster interface {
	Broadcast(roomID string, event Event)
}

// roomEventSink republishes vendor room events to subscribers.
type roomEventSink struct {
	roomID string
	events Broadcaster
}

func (s *roomEventSink) OnPairRoomResult(result zrc.SDKError) {
	code := int32(result)
	s.events.Broadcast(s.roomID, Event{Event: "OnPairRoomResult", RoomID: s.roomID, Result: &code})
}

func (s *roomEventSink) OnRoomUnpaired(reason zrc.RoomUnpairedReason) {
	s.events.Broadcast(s.roomID, Event{Event: "OnRoomUnpairedReason", RoomID: s.roomID, Reason: reason.String()})
}

type meetingEventSink struct {
	roomID string
	events Broadcaster
}

func (s *meetingEventSink) OnUpdateMeetingStatus(status zrc.MeetingStatus) {
	s.events.Broadcast(s.roomID, Event{Event: "OnUpdateMeetingStatus", RoomID: s.roomID, Status: status.String()})
}

func (s *meetingEventSink) OnConfReady() {
	s.events.Broadcast(s.roomID, Event{Event: "OnConfReadyNotification", RoomID: s.roomID})
}

func (s *meetingEventSink) OnExitMeetingNotification() {
	s.events.Broadcast(s.roomID, Event{Event: "OnExitMeetingNotification", RoomID: s.roomID})
}

type preMeetingEventSink struct {
	roomID string
	events Broadcaster
}

func (s *preMeetingEventSink) OnConnectionStateChanged(state zrc.ConnectionState) {
	s.events.Broadcast(s.roomID, Event{Event: "OnZRConnectionStateChanged", RoomID: s.roomID, State: state.String()})
}
