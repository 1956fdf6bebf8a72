// Package chatcli implements the interactive chat client for the gateway's
// wire protocol: a single-threaded caller keeping local conversation history
// with rollback-on-error semantics.
package chatcli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"llamagate/pkg/types"
)

// Client talks to the gateway's completion endpoint and maintains the
// conversation history. Not safe for concurrent use; the chat loop is
// single-threaded by design.
type Client struct {
	serviceURL string
	httpc      *http.Client
	log        zerolog.Logger

	history []types.ChatMessage
}

// NewClient builds a chat client. A non-empty systemPrompt seeds the history.
func NewClient(serviceURL string, timeout time.Duration, systemPrompt string, log zerolog.Logger) *Client {
	c := &Client{
		serviceURL: serviceURL,
		httpc:      &http.Client{Timeout: timeout},
		log:        log,
	}
	if systemPrompt != "" {
		c.history = append(c.history, types.ChatMessage{Role: types.RoleSystem, Content: systemPrompt})
		log.Info().Str("system_prompt", systemPrompt).Msg("using system prompt")
	}
	log.Info().Str("service_url", serviceURL).Dur("timeout", timeout).Msg("chat client initialized")
	return c
}

// History returns a copy of the conversation so far.
func (c *Client) History() []types.ChatMessage {
	return append([]types.ChatMessage(nil), c.history...)
}

// AddUserMessage appends a user turn to the history.
func (c *Client) AddUserMessage(content string) {
	c.history = append(c.history, types.ChatMessage{Role: types.RoleUser, Content: content})
}

// Clear resets the history, optionally seeding a new system prompt.
func (c *Client) Clear(systemPrompt string) {
	c.history = nil
	if systemPrompt != "" {
		c.history = append(c.history, types.ChatMessage{Role: types.RoleSystem, Content: systemPrompt})
	}
	c.log.Info().Msg("conversation history cleared")
}

// Respond sends the current history to the gateway and appends the assistant
// reply on success. On any failure the just-added unanswered user turn is
// rolled back so the history never carries a user message the model did not
// answer.
func (c *Client) Respond(temperature float64, maxTokens int) (string, error) {
	if len(c.history) == 0 || c.history[len(c.history)-1].Role != types.RoleUser {
		return "", fmt.Errorf("no user message to respond to")
	}

	payload := types.ChatCompletionRequest{
		Messages:    c.history,
		Temperature: &temperature,
		MaxTokens:   &maxTokens,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		c.rollbackUserTurn()
		return "", fmt.Errorf("encode request: %w", err)
	}

	c.log.Info().
		Float64("temperature", temperature).
		Int("max_tokens", maxTokens).
		Int("history_len", len(c.history)).
		Msg("sending completion request")

	start := time.Now()
	resp, err := c.httpc.Post(c.serviceURL, "application/json", bytes.NewReader(body))
	if err != nil {
		c.rollbackUserTurn()
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	c.log.Info().Int("status", resp.StatusCode).Dur("dur", time.Since(start)).Msg("received response")

	if resp.StatusCode != http.StatusOK {
		c.rollbackUserTurn()
		return "", c.serviceError(resp)
	}

	var completion types.ChatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		c.rollbackUserTurn()
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(completion.Choices) == 0 {
		c.rollbackUserTurn()
		return "", fmt.Errorf("response contained no choices")
	}

	content := completion.Choices[0].Message.Content
	c.history = append(c.history, types.ChatMessage{Role: types.RoleAssistant, Content: content})
	return content, nil
}

// rollbackUserTurn removes the trailing user message after a failed exchange.
func (c *Client) rollbackUserTurn() {
	if len(c.history) > 0 && c.history[len(c.history)-1].Role == types.RoleUser {
		c.history = c.history[:len(c.history)-1]
		c.log.Info().Msg("rolled back unanswered user message")
	}
}

// serviceError extracts the gateway's error payload when present.
func (c *Client) serviceError(resp *http.Response) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var e types.ErrorResponse
	if json.Unmarshal(b, &e) == nil && e.Error != "" {
		return fmt.Errorf("service returned %d: %s", resp.StatusCode, e.Error)
	}
	return fmt.Errorf("service returned %d", resp.StatusCode)
}
