package http

import (
	"context"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/roomctl/zrcbridge/internal/adapters/events"
	"github.com/roomctl/zrcbridge/internal/app"
	"github.com/roomctl/zrcbridge/internal/config"
)

func genClientToken() string {
	return uuid.NewString()
}

// ClientTokenMiddleware assigns every caller a stable token so event-stream
// subscribers can be told apart in logs.
func ClientTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie("ct")
		if token == "" {
			token = genClientToken()
			c.SetCookie("ct", token, 3600*24*7, "/", "", false, true)
		}
		c.Set("client_token", token)
		c.Next()
	}
}

func SetupRouter(ctx context.Context, cfg *config.Config, mgr *app.Manager, hub *events.Hub) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	store := cookie.NewStore([]byte(cfg.Secret))
	r.Use(sessions.Sessions("ZRCSessions", store))
	r.Use(ClientTokenMiddleware())

	h := &handlers{mgr: mgr, pairLimit: NewPairRateLimiter(5, 30*time.Second)}
	r.GET("/", h.root)

	log.Info().Str("module", "adapters.http").Msg("router setup")

	api := r.Group("/api")
	api.GET("/rooms", h.listRooms)

	room := api.Group("/rooms/:roomID")
	room.POST("/pair", h.pairRoom)
	room.POST("/unpair", h.unpairRoom)
	room.POST("/pair/retry", h.retryPairRoom)
	room.GET("/status", h.roomStatus)
	room.POST("/meeting/start_instant", h.startInstantMeeting)
	room.POST("/meeting/join", h.joinMeeting)
	room.POST("/meeting/exit", h.exitMeeting)
	room.POST("/audio/mute", h.muteAudio)
	room.POST("/video/mute", h.muteVideo)

	ctl := events.NewController(hub, cfg.ReadLimit, cfg.PingPeriod)
	room.GET("/events", func(c *gin.Context) {
		log.Info().Str("module", "adapters.http").Str("sid", c.GetString("client_token")).Str("room", c.Param("roomID")).Msg("event stream endpoint hit")
		ctl.HandleEvents(ctx, c)
	})

	return r
}
