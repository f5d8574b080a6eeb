package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/vsitelecom/fieldops/internal/assistant"
	"github.com/vsitelecom/fieldops/internal/config"
	"github.com/vsitelecom/fieldops/internal/connectivity"
	"github.com/vsitelecom/fieldops/internal/lookup"
	"github.com/vsitelecom/fieldops/internal/remote"
	"github.com/vsitelecom/fieldops/internal/server"
	"github.com/vsitelecom/fieldops/internal/store"
	appsync "github.com/vsitelecom/fieldops/internal/sync"
)

var provisionFlag = flag.Bool("provision", false, "Create the remote mirror schema and exit")

func main() {
	flag.Parse()

	// Load environment variables from .env file
	_ = godotenv.Load()

	cfg := config.Load()

	var logWriter = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log := zerolog.New(logWriter).With().Timestamp().Logger()
	if cfg.Env != "development" {
		log = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	st, err := store.Open(cfg.DataPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DataPath).Msg("open local store")
	}

	// Credentials saved through the setup screen override the env.
	dsn := cfg.RemoteDSN
	if v, err := st.GetString(store.KeyRemoteDSN); err == nil && v != "" {
		dsn = v
	}

	var adapter *remote.Adapter
	if dsn != "" {
		adapter, err = remote.Open(dsn)
		if err != nil {
			log.Warn().Err(err).Msg("remote backend unreachable, starting local-only")
			adapter = nil
		}
	} else {
		log.Info().Msg("no remote backend configured, starting local-only")
	}

	if *provisionFlag {
		if adapter == nil {
			log.Fatal().Msg("provision requires a configured remote backend")
		}
		if err := adapter.Provision(); err != nil {
			log.Fatal().Err(err).Msg("provision failed")
		}
		log.Info().Msg("remote mirror schema provisioned")
		return
	}

	monitor := connectivity.New(adapter != nil)

	// A typed nil adapter must not become a non-nil interface.
	var rem appsync.Remote
	if adapter != nil {
		rem = adapter
	}

	coord, err := appsync.New(st, rem, monitor, log)
	if err != nil {
		log.Fatal().Err(err).Msg("load local data")
	}

	bootCtx, cancelBoot := context.WithTimeout(context.Background(), 30*time.Second)
	if err := coord.BootSync(bootCtx); err != nil {
		log.Warn().Err(err).Msg("boot sync incomplete")
	}
	cancelBoot()

	watchCtx, cancelWatch := context.WithCancel(context.Background())
	defer cancelWatch()
	if dsn != "" {
		go monitor.Watch(watchCtx, dsn, 30*time.Second, func(online bool) {
			log.Info().Bool("online", online).Msg("connectivity changed")
		})
	}

	handler := server.New(server.Deps{
		Coord:  coord,
		Store:  st,
		AI:     assistant.New(cfg.AssistantKey),
		Lookup: lookup.New(),
		Log:    log,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("error during shutdown")
	}
	if adapter != nil {
		_ = adapter.Close()
	}
	log.Info().Msg("server stopped gracefully")
}
