package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/roomctl/zrcbridge/internal/adapters/events"
	router "github.com/roomctl/zrcbridge/internal/adapters/http"
	"github.com/roomctl/zrcbridge/internal/app"
	"github.com/roomctl/zrcbridge/internal/config"
	"github.com/roomctl/zrcbridge/zrc"
	"github.com/roomctl/zrcbridge/zrc/loopback"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize zerolog global logger early so config.Load can use it.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	// Human-friendly output for terminal; in production you may want JSON only.
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	switch cfg.Provider {
	case "loopback":
		loopback.Register()
	default:
		log.Fatal().Str("provider", cfg.Provider).Msg("unknown provider: a native provider build must register itself")
	}

	sdk, err := zrc.GetInstance()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to acquire SDK instance")
	}

	hub := events.NewHub()
	manager := app.NewManager(cfg, sdk, hub)
	if err := manager.RegisterMetadataSink(); err != nil {
		log.Fatal().Err(err).Msg("failed to register SDK sink")
	}
	go manager.RunHeartbeat(ctx)

	r := router.SetupRouter(ctx, cfg, manager, hub)
	addr := fmt.Sprintf(":%d", cfg.Port)

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("zrcbridge server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	manager.Shutdown()
	log.Info().Msg("Server exited gracefully")
}
