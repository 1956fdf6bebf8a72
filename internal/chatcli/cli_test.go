package chatcli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"llamagate/internal/config"
	"llamagate/pkg/types"
)

func loopConfig(url string) config.ClientConfig {
	cfg := config.ClientConfig{ServiceURL: url}
	cfg.ApplyDefaults()
	return cfg
}

func TestChatLoopRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(types.ChatCompletionResponse{
			Choices: []types.ChatCompletionChoice{{
				Message:      types.ChatMessage{Role: types.RoleAssistant, Content: "hi there"},
				FinishReason: "stop",
			}},
		})
	}))
	defer srv.Close()

	in := strings.NewReader("hello\n/exit\n")
	var out bytes.Buffer
	if err := RunChatLoop(loopConfig(srv.URL), in, &out, zerolog.Nop()); err != nil {
		t.Fatalf("chat loop: %v", err)
	}
	if !strings.Contains(out.String(), "Assistant: hi there") {
		t.Fatalf("missing assistant reply in output: %s", out.String())
	}
}

func TestChatLoopCommands(t *testing.T) {
	var last types.ChatCompletionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&last)
		_ = json.NewEncoder(w).Encode(types.ChatCompletionResponse{
			Choices: []types.ChatCompletionChoice{{
				Message: types.ChatMessage{Role: types.RoleAssistant, Content: "ok"},
			}},
		})
	}))
	defer srv.Close()

	in := strings.NewReader("/temp 0.2\n/tokens 32\nhello\n/history\n/exit\n")
	var out bytes.Buffer
	if err := RunChatLoop(loopConfig(srv.URL), in, &out, zerolog.Nop()); err != nil {
		t.Fatalf("chat loop: %v", err)
	}
	if last.Temperature == nil || *last.Temperature != 0.2 {
		t.Fatalf("temperature override not applied: %v", last.Temperature)
	}
	if last.MaxTokens == nil || *last.MaxTokens != 32 {
		t.Fatalf("max_tokens override not applied: %v", last.MaxTokens)
	}
	if !strings.Contains(out.String(), "Conversation History") {
		t.Fatalf("missing history output: %s", out.String())
	}
}

func TestChatLoopRejectsBadCommandValues(t *testing.T) {
	in := strings.NewReader("/temp 9\n/tokens zero\n/exit\n")
	var out bytes.Buffer
	if err := RunChatLoop(loopConfig("http://localhost:0"), in, &out, zerolog.Nop()); err != nil {
		t.Fatalf("chat loop: %v", err)
	}
	if !strings.Contains(out.String(), "Usage: /temp") || !strings.Contains(out.String(), "Usage: /tokens") {
		t.Fatalf("missing usage hints: %s", out.String())
	}
}

func TestChatLoopSurvivesServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: "engine is not loaded", Code: 503})
	}))
	defer srv.Close()

	in := strings.NewReader("hello\n/exit\n")
	var out bytes.Buffer
	if err := RunChatLoop(loopConfig(srv.URL), in, &out, zerolog.Nop()); err != nil {
		t.Fatalf("chat loop should not abort on a service error: %v", err)
	}
	if !strings.Contains(out.String(), "Error:") {
		t.Fatalf("error not surfaced: %s", out.String())
	}
}

func TestLoadOrDefaultMissingFile(t *testing.T) {
	cfg, err := loadOrDefault("/nonexistent/llamachat.yaml")
	if err != nil {
		t.Fatalf("missing config should fall back to defaults: %v", err)
	}
	if cfg.ServiceURL == "" || cfg.RequestTimeoutSecs != 120 {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
}
