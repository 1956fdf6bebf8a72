package httpapi

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// zlog is an optional structured logger. If unset, falls back to log.Printf.
var zlog *zerolog.Logger

// SetLogger installs a structured logger used by the HTTP layer.
func SetLogger(l zerolog.Logger) { zlog = &l }

func logRequestStart(r *http.Request, messages int) {
	if zlog != nil {
		z := zlog.Info().Str("path", r.URL.Path).Int("messages", messages)
		if rid := middleware.GetReqID(r.Context()); rid != "" {
			z = z.Str("request_id", rid)
		}
		z.Msg("completion start")
		return
	}
	log.Printf("completion start path=%s messages=%d", r.URL.Path, messages)
}

func logRequestEnd(r *http.Request, status int, dur time.Duration, err error) {
	if zlog != nil {
		z := zlog.Info().Int("status", status).Dur("dur", dur)
		if rid := middleware.GetReqID(r.Context()); rid != "" {
			z = z.Str("request_id", rid)
		}
		if err != nil {
			z = z.Err(err)
		}
		z.Msg("completion end")
		return
	}
	log.Printf("completion end status=%d dur=%s err=%v", status, dur, err)
}
