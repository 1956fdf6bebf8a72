package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"llamagate/internal/config"
	"llamagate/internal/gateway"
	"llamagate/internal/httpapi"
)

func main() {
	// Flags with environment variable defaults
	addr := flag.String("addr", config.EnvStr(config.EnvAddr, ":8000"), "HTTP listen address, e.g. :8000")
	logLevel := flag.String("log-level", config.EnvStr(config.EnvLogLevel, "info"), "Log level: debug|info|warn|error")
	corsOrigins := flag.String("cors-origins", "", "Comma-separated allowed CORS origins (empty disables CORS)")
	maxBody := flag.Int64("max-body-bytes", 0, "Maximum request body size in bytes (0 = default 1MiB)")
	flag.Parse()

	log := newLogger(*logLevel)

	engCfg := config.EngineFromEnv()
	if p, err := config.ExpandHome(engCfg.ModelPath); err == nil {
		engCfg.ModelPath = p
	}

	gw := gateway.New(gateway.Options{Config: engCfg, Logger: log})

	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()

	log.Info().Msg("application startup")
	gw.Start(baseCtx)

	httpapi.SetLogger(log)
	httpapi.SetBaseContext(baseCtx)
	httpapi.SetMaxBodyBytes(*maxBody)
	if *corsOrigins != "" {
		httpapi.SetCORSOptions(true,
			strings.Split(*corsOrigins, ","),
			[]string{http.MethodGet, http.MethodPost, http.MethodOptions},
			[]string{"Accept", "Content-Type"},
		)
	}

	srv := &http.Server{Addr: *addr, Handler: httpapi.NewMux(gw)}

	go func() {
		log.Info().Str("addr", *addr).Msg("llamagated listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Graceful shutdown (Ctrl+C / SIGTERM)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info().Msg("application shutdown")
	cancelBase() // unblock queued gate waiters
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown error")
	}
	gw.Stop()
	log.Info().Msg("shutdown complete")
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()
}
