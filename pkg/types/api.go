package types

// Defaults applied to optional generation parameters when a request omits them.
const (
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 512
	DefaultTopP        = 1.0
)

// Chat message roles accepted on the wire.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is a single turn of a conversation.
type ChatMessage struct {
	// Role of the speaker: system, user or assistant.
	// example: user
	Role string `json:"role" example:"user"`
	// Text content of the message.
	// example: Hello! Who won the Stanley Cup in 2021?
	Content string `json:"content" example:"Hello! Who won the Stanley Cup in 2021?"`
}

// ChatCompletionRequest is the payload accepted by POST /v1/chat/completions.
type ChatCompletionRequest struct {
	// Ordered conversation history. Must contain at least one message.
	Messages []ChatMessage `json:"messages"`
	// Sampling temperature in [0,2]. Defaults to 0.7 when omitted.
	// example: 0.7
	Temperature *float64 `json:"temperature,omitempty" example:"0.7"`
	// Maximum number of tokens to generate (> 0). Defaults to 512 when omitted.
	// example: 100
	MaxTokens *int `json:"max_tokens,omitempty" example:"100"`
	// Nucleus sampling probability in (0,1]. Defaults to 1.0 when omitted.
	// example: 1.0
	TopP *float64 `json:"top_p,omitempty" example:"1.0"`
	// Optional stop sequences. Generation stops when any is matched.
	// example: ["\n\n"]
	Stop []string `json:"stop,omitempty" example:"[\"\\n\\n\"]"`
}

// ChatCompletionChoice is one generated alternative. The gateway always
// returns exactly one.
type ChatCompletionChoice struct {
	// Index of the choice, always 0.
	Index int `json:"index"`
	// Generated assistant message.
	Message ChatMessage `json:"message"`
	// Engine-reported cause of generation stopping (stop, length, ...).
	// example: stop
	FinishReason string `json:"finish_reason" example:"stop"`
}

// ChatCompletionResponse is the payload returned by POST /v1/chat/completions.
type ChatCompletionResponse struct {
	// Completion identifier, engine-provided or synthesized (chatcmpl- prefix).
	// example: chatcmpl-9f6d6c1e-4d8f-4c6e-9a3e-2f1d0b7a5c42
	ID string `json:"id" example:"chatcmpl-9f6d6c1e-4d8f-4c6e-9a3e-2f1d0b7a5c42"`
	// Creation time in unix seconds.
	// example: 1700000000
	Created int64 `json:"created" example:"1700000000"`
	// Model identifier, resolved from the configured artifact's basename.
	// example: mistral-7b-instruct-v0.1.Q4_K_M.gguf
	Model string `json:"model" example:"mistral-7b-instruct-v0.1.Q4_K_M.gguf"`
	// Generated choices; always length 1.
	Choices []ChatCompletionChoice `json:"choices"`
}

// Health status values returned by GET /v1/health.
const (
	HealthOK      = "ok"
	HealthWarning = "warning"
)

// HealthResponse is returned by GET /v1/health. A warning status means the
// process is up but the model is not loaded.
type HealthResponse struct {
	// Overall status: "ok" or "warning".
	// example: ok
	Status string `json:"status" example:"ok"`
	// Whether a model is currently loaded.
	// example: true
	ModelLoaded bool `json:"model_loaded" example:"true"`
	// Basename of the loaded model file. Present when loaded.
	// example: mistral-7b-instruct-v0.1.Q4_K_M.gguf
	ModelName string `json:"model_name,omitempty" example:"mistral-7b-instruct-v0.1.Q4_K_M.gguf"`
	// Diagnostic message. Present when the model is not loaded.
	// example: model not loaded or failed to load, check server logs
	Message string `json:"message,omitempty" example:"model not loaded or failed to load, check server logs"`
	// Configured model path (possibly nonexistent). Present when not loaded.
	// example: models/mistral-7b-instruct-v0.1.Q4_K_M.gguf
	ConfiguredModelPath string `json:"configured_model_path,omitempty" example:"models/mistral-7b-instruct-v0.1.Q4_K_M.gguf"`
}

// InfoResponse is the static payload returned by GET /.
type InfoResponse struct {
	// Service name.
	// example: llamagate
	Name string `json:"name" example:"llamagate"`
	// Service version.
	// example: 0.1.0
	Version string `json:"version" example:"0.1.0"`
	// Human-readable welcome message.
	Message string `json:"message"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: messages list cannot be empty
	Error string `json:"error" example:"messages list cannot be empty"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}
