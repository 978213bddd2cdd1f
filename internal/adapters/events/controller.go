package events

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/roomctl/zrcbridge/internal/app"
)

// wsConn is an indirection over *websocket.Conn to ease testing.
type wsConn interface {
	ReadMessage() (int, []byte, error)
	WriteMessage(mt int, data []byte) error
	SetReadLimit(limit int64)
	SetWriteDeadline(t time.Time) error
	Close() error
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Controller upgrades event-stream requests and pumps room events out.
type Controller struct {
	Hub        *Hub
	ReadLimit  int64
	PingPeriod time.Duration
}

func NewController(hub *Hub, readLimit int64, pingPeriod time.Duration) *Controller {
	if pingPeriod <= 0 {
		pingPeriod = 54 * time.Second
	}
	return &Controller{Hub: hub, ReadLimit: readLimit, PingPeriod: pingPeriod}
}

// HandleEvents subscribes the caller to a room's event stream.
func (ctl *Controller) HandleEvents(ctx context.Context, c *gin.Context) {
	roomID := c.Param("roomID")
	sid := c.GetString("client_token")

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "adapters.events").Msg("ws upgrade")
		return
	}
	if ctl.ReadLimit > 0 {
		ws.SetReadLimit(ctl.ReadLimit)
	}

	sub := newSubscriber(sid, ws)
	ctl.Hub.add(roomID, sub)

	// Initial hello so clients know the subscription is live.
	ctl.Hub.Broadcast(roomID, app.Event{Event: "connected", RoomID: roomID})

	ctx, cancel := context.WithCancel(ctx)
	go ctl.writePump(ctx, roomID, sub)
	go ctl.readPump(cancel, roomID, sub)
}

func (ctl *Controller) writePump(ctx context.Context, roomID string, s *subscriber) {
	ticker := time.NewTicker(ctl.PingPeriod)
	defer func() {
		ticker.Stop()
		ctl.Hub.remove(roomID, s)
		s.close()
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case data, ok := <-s.send:
			if !ok {
				return
			}
			if err := s.conn.SetWriteDeadline(time.Now().Add(5 * time.Second)); err != nil {
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Warn().Err(err).Str("module", "adapters.events").Str("sid", s.sid).Msg("write error")
				return
			}
		case <-ticker.C:
			if err := s.conn.SetWriteDeadline(time.Now().Add(5 * time.Second)); err != nil {
				return
			}
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump drains client frames. The stream is one-way; incoming messages
// only matter as liveness, so they are discarded until the peer goes away.
func (ctl *Controller) readPump(cancel context.CancelFunc, roomID string, s *subscriber) {
	defer cancel()
	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			log.Info().Str("module", "adapters.events").Str("room", roomID).Str("sid", s.sid).Msg("subscriber disconnected")
			return
		}
	}
}
