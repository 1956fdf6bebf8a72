// Package engine wraps the generation backend behind a small blocking
// interface. The backend holds mutable decode state and is NOT safe for
// concurrent invocation; serialization is the caller's responsibility
// (see internal/gateway).
package engine

import "llamagate/pkg/types"

// Params are the generation parameters for a single completion call. All
// fields are required; defaults are applied at the request boundary.
type Params struct {
	Temperature float64
	MaxTokens   int
	TopP        float64
	Stop        []string
}

// ResultMessage is the generated message inside a choice. Role and Content
// are optional on the engine side; the gateway fills "assistant" and ""
// respectively when absent.
type ResultMessage struct {
	Role    string
	Content string
}

// ResultChoice is one generated alternative as reported by the engine.
// FinishReason is optional; the gateway fills "stop" when absent.
type ResultChoice struct {
	Message      ResultMessage
	FinishReason string
}

// Result is the typed outcome of one blocking Generate call. ID and Created
// are optional; the gateway synthesizes them when the engine leaves them
// empty. A Result with no choices is an upstream-shape violation.
type Result struct {
	ID      string
	Created int64
	Choices []ResultChoice
}

// Engine is the opaque blocking generation backend. Generate blocks the
// calling goroutine for the full duration of the computation and must never
// be invoked concurrently. Close releases the backend's resources.
type Engine interface {
	Generate(messages []types.ChatMessage, params Params) (*Result, error)
	Close() error
}
