package chatcli

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"llamagate/pkg/types"
)

func completionServer(t *testing.T, status int, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status != http.StatusOK {
			w.WriteHeader(status)
			_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: "nope", Code: status})
			return
		}
		_ = json.NewEncoder(w).Encode(types.ChatCompletionResponse{
			ID:      "chatcmpl-test",
			Created: 1700000000,
			Model:   "tiny.gguf",
			Choices: []types.ChatCompletionChoice{{
				Message:      types.ChatMessage{Role: types.RoleAssistant, Content: content},
				FinishReason: "stop",
			}},
		})
	}))
}

func newTestClient(url, systemPrompt string) *Client {
	return NewClient(url, 5*time.Second, systemPrompt, zerolog.Nop())
}

func TestRespondAppendsAssistantTurn(t *testing.T) {
	srv := completionServer(t, http.StatusOK, "hello back")
	defer srv.Close()

	c := newTestClient(srv.URL, "be brief")
	c.AddUserMessage("hello")
	reply, err := c.Respond(0.7, 64)
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if reply != "hello back" {
		t.Fatalf("reply=%q", reply)
	}
	h := c.History()
	if len(h) != 3 {
		t.Fatalf("history len=%d", len(h))
	}
	if h[0].Role != types.RoleSystem || h[1].Role != types.RoleUser || h[2].Role != types.RoleAssistant {
		t.Fatalf("unexpected roles: %+v", h)
	}
	if h[2].Content != "hello back" {
		t.Fatalf("assistant content=%q", h[2].Content)
	}
}

func TestRespondRollsBackOnServiceError(t *testing.T) {
	srv := completionServer(t, http.StatusServiceUnavailable, "")
	defer srv.Close()

	c := newTestClient(srv.URL, "")
	c.AddUserMessage("hello")
	if _, err := c.Respond(0.7, 64); err == nil {
		t.Fatalf("expected error on 503")
	}
	if len(c.History()) != 0 {
		t.Fatalf("user turn not rolled back: %+v", c.History())
	}
}

func TestRespondRollsBackOnTransportError(t *testing.T) {
	c := newTestClient("http://127.0.0.1:1/unreachable", "sys")
	c.AddUserMessage("hello")
	if _, err := c.Respond(0.7, 64); err == nil {
		t.Fatalf("expected transport error")
	}
	h := c.History()
	if len(h) != 1 || h[0].Role != types.RoleSystem {
		t.Fatalf("expected only system prompt to remain, got %+v", h)
	}
}

func TestRespondRollsBackOnMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, "")
	c.AddUserMessage("hello")
	if _, err := c.Respond(0.7, 64); err == nil {
		t.Fatalf("expected error for empty choices")
	}
	if len(c.History()) != 0 {
		t.Fatalf("user turn not rolled back")
	}
}

func TestRespondWithoutUserTurn(t *testing.T) {
	c := newTestClient("http://localhost:0", "sys")
	if _, err := c.Respond(0.7, 64); err == nil {
		t.Fatalf("expected error without a trailing user message")
	}
}

func TestClearResetsHistory(t *testing.T) {
	c := newTestClient("http://localhost:0", "old prompt")
	c.AddUserMessage("hi")
	c.Clear("new prompt")
	h := c.History()
	if len(h) != 1 || h[0].Role != types.RoleSystem || h[0].Content != "new prompt" {
		t.Fatalf("unexpected history after clear: %+v", h)
	}
	c.Clear("")
	if len(c.History()) != 0 {
		t.Fatalf("expected empty history")
	}
}

func TestRequestCarriesParameters(t *testing.T) {
	var got types.ChatCompletionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		_ = json.NewEncoder(w).Encode(types.ChatCompletionResponse{
			Choices: []types.ChatCompletionChoice{{Message: types.ChatMessage{Content: "ok"}}},
		})
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, "")
	c.AddUserMessage("hi")
	if _, err := c.Respond(0.3, 99); err != nil {
		t.Fatalf("respond: %v", err)
	}
	if got.Temperature == nil || *got.Temperature != 0.3 {
		t.Fatalf("temperature=%v", got.Temperature)
	}
	if got.MaxTokens == nil || *got.MaxTokens != 99 {
		t.Fatalf("max_tokens=%v", got.MaxTokens)
	}
	if len(got.Messages) != 1 || got.Messages[0].Content != "hi" {
		t.Fatalf("messages=%+v", got.Messages)
	}
}
