// Package httpapi exposes the gateway over HTTP: the chat-completion
// endpoint, the liveness report and Prometheus metrics.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"llamagate/internal/gateway"
	"llamagate/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Complete(ctx context.Context, req types.ChatCompletionRequest) (*types.ChatCompletionResponse, error)
	Health() types.HealthResponse
}

// NewMux builds the router: /, /v1/chat/completions, /v1/health, /healthz,
// /metrics, and /docs when built with -tags=swagger.
func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(MetricsMiddleware)
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
		}))
	}
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})

	r.Get("/", handleInfo)
	r.Get("/v1/health", handleHealth(svc))
	r.Post("/v1/chat/completions", handleChatCompletion(svc))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)

	return r
}

// handleInfo godoc
// @Summary      Service information
// @Tags         General
// @Produce      json
// @Success      200 {object} types.InfoResponse
// @Router       / [get]
func handleInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, types.InfoResponse{
		Name:    "llamagate",
		Version: Version,
		Message: "Welcome to llamagate. Visit /docs for API details.",
	})
}

// handleHealth godoc
// @Summary      Liveness and model status
// @Tags         Health
// @Produce      json
// @Success      200 {object} types.HealthResponse
// @Router       /v1/health [get]
func handleHealth(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Health())
	}
}

// handleChatCompletion godoc
// @Summary      Generate a chat completion
// @Tags         LLM
// @Accept       json
// @Produce      json
// @Param        request body types.ChatCompletionRequest true "conversation and generation parameters"
// @Success      200 {object} types.ChatCompletionResponse
// @Failure      400 {object} types.ErrorResponse
// @Failure      503 {object} types.ErrorResponse
// @Failure      500 {object} types.ErrorResponse
// @Router       /v1/chat/completions [post]
func handleChatCompletion(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ct := r.Header.Get("Content-Type")
		if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
			writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		var req types.ChatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		start := time.Now()
		logRequestStart(r, len(req.Messages))

		// Join server base context with request context so shutdown cancels
		// queued waiters too.
		joinedCtx, cancel := joinContexts(serverBaseCtx, r.Context())
		defer cancel()

		resp, err := svc.Complete(joinedCtx, req)
		if err != nil {
			// Client disconnect or shutdown while queued: nothing to write.
			if r.Context().Err() != nil || serverBaseCtx.Err() != nil {
				return
			}
			status := statusForError(err)
			writeJSONError(w, status, messageForError(err, status))
			logRequestEnd(r, status, time.Since(start), err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
		logRequestEnd(r, http.StatusOK, time.Since(start), nil)
	}
}

// statusForError maps gateway errors onto HTTP statuses.
func statusForError(err error) int {
	switch {
	case gateway.IsValidation(err):
		return http.StatusBadRequest
	case gateway.IsUnavailable(err):
		return http.StatusServiceUnavailable
	}
	if he, ok := err.(HTTPError); ok {
		return he.StatusCode()
	}
	return http.StatusInternalServerError
}

// messageForError keeps 5xx bodies generic; internal detail stays in the logs.
func messageForError(err error, status int) string {
	if status >= 500 {
		return "internal server error"
	}
	return err.Error()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
