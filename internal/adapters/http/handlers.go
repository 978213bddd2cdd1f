package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cast"

	"github.com/roomctl/zrcbridge/internal/app"
	"github.com/roomctl/zrcbridge/zrc"
)

type handlers struct {
	mgr       *app.Manager
	pairLimit *PairRateLimiter
}

type PairRoomRequest struct {
	ActivationCode string `json:"activation_code" binding:"required"`
}

type JoinMeetingRequest struct {
	MeetingNumber string `json:"meeting_number" binding:"required"`
	Password      string `json:"password"`
}

type ExitMeetingRequest struct {
	End bool `json:"end"`
}

type resultResponse struct {
	RoomID  string `json:"room_id"`
	Result  int32  `json:"result"`
	Success bool   `json:"success"`
}

func sdkResult(c *gin.Context, roomID string, code zrc.SDKError) {
	status := http.StatusOK
	if code != zrc.SDKErrSuccess {
		status = http.StatusBadGateway
	}
	c.JSON(status, resultResponse{
		RoomID:  roomID,
		Result:  int32(code),
		Success: code == zrc.SDKErrSuccess,
	})
}

func (h *handlers) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "zrcbridge",
		"status":  "ok",
	})
}

func (h *handlers) listRooms(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"rooms": h.mgr.Rooms()})
}

// room resolves an already-created room service; every operation except
// pairing requires one, matching the vendor model where a service handle
// exists before anything can be done with it.
func (h *handlers) room(c *gin.Context) (zrc.RoomsService, string, bool) {
	roomID := c.Param("roomID")
	room, ok := h.mgr.RoomService(roomID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return nil, roomID, false
	}
	return room, roomID, true
}

func (h *handlers) pairRoom(c *gin.Context) {
	if !h.pairLimit.Allow(c.GetString("client_token")) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many pairing attempts"})
		return
	}
	var req PairRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	roomID := c.Param("roomID")
	room := h.mgr.CreateRoomService(roomID)
	code := room.PairRoomWithActivationCode(req.ActivationCode)
	log.Info().Str("module", "adapters.http").Str("room", roomID).Str("code", code.String()).Msg("pair requested")
	sdkResult(c, roomID, code)
}

func (h *handlers) unpairRoom(c *gin.Context) {
	room, roomID, ok := h.room(c)
	if !ok {
		return
	}
	sdkResult(c, roomID, room.UnpairRoom())
}

func (h *handlers) retryPairRoom(c *gin.Context) {
	room, roomID, ok := h.room(c)
	if !ok {
		return
	}
	sdkResult(c, roomID, room.RetryToPairRoom())
}

func (h *handlers) roomStatus(c *gin.Context) {
	roomID := c.Param("roomID")
	status, ok := h.mgr.Status(roomID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *handlers) startInstantMeeting(c *gin.Context) {
	room, roomID, ok := h.room(c)
	if !ok {
		return
	}
	sdkResult(c, roomID, room.GetMeetingService().StartInstantMeeting())
}

func (h *handlers) joinMeeting(c *gin.Context) {
	room, roomID, ok := h.room(c)
	if !ok {
		return
	}
	var req JoinMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sdkResult(c, roomID, room.GetMeetingService().JoinMeeting(req.MeetingNumber, req.Password))
}

func (h *handlers) exitMeeting(c *gin.Context) {
	room, roomID, ok := h.room(c)
	if !ok {
		return
	}
	var req ExitMeetingRequest
	_ = c.ShouldBindJSON(&req) // body is optional, default is leave
	cmd := zrc.ExitMeetingCmdLeave
	if req.End {
		cmd = zrc.ExitMeetingCmdEnd
	}
	sdkResult(c, roomID, room.GetMeetingService().ExitMeeting(cmd))
}

func (h *handlers) muteAudio(c *gin.Context) {
	room, roomID, ok := h.room(c)
	if !ok {
		return
	}
	mute, err := cast.ToBoolE(c.Query("mute"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "mute must be a boolean"})
		return
	}
	sdkResult(c, roomID, room.GetMeetingService().GetMeetingAudioHelper().MuteAudio(mute))
}

func (h *handlers) muteVideo(c *gin.Context) {
	room, roomID, ok := h.room(c)
	if !ok {
		return
	}
	mute, err := cast.ToBoolE(c.Query("mute"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "mute must be a boolean"})
		return
	}
	sdkResult(c, roomID, room.GetMeetingService().GetMeetingVideoHelper().MuteVideo(mute))
}
