//go:build llama

package engine

import (
	"errors"
	"fmt"
	"strings"

	llama "github.com/go-skynet/go-llama.cpp"

	"llamagate/internal/config"
	"llamagate/pkg/types"
)

// Built indicates this binary was compiled with real llama support.
const Built = true

// llamaEngine owns a loaded GGUF model. Not safe for concurrent Generate.
type llamaEngine struct {
	model   *llama.LLama
	threads int
}

// Open loads the model described by cfg into process memory. Loading a large
// model can take many seconds; callers should do this once at startup.
func Open(cfg config.EngineConfig) (Engine, error) {
	if strings.TrimSpace(cfg.ModelPath) == "" {
		return nil, errors.New("model path is empty")
	}
	opts := []llama.ModelOption{
		llama.SetContext(cfg.CtxSize),
		llama.SetGPULayers(cfg.GPULayers),
	}
	m, err := llama.New(cfg.ModelPath, opts...)
	if err != nil {
		return nil, fmt.Errorf("load model %s: %w", cfg.ModelPath, err)
	}
	return &llamaEngine{model: m, threads: cfg.Threads}, nil
}

func (e *llamaEngine) Generate(messages []types.ChatMessage, params Params) (*Result, error) {
	if e.model == nil {
		return nil, errors.New("llama model not initialized")
	}
	prompt := renderPrompt(messages)
	po := []llama.PredictOption{
		llama.SetTokens(maxInt(1, params.MaxTokens)),
		llama.SetThreads(maxInt(1, e.threads)),
		llama.SetTemperature(float32(params.Temperature)),
		llama.SetTopP(float32(params.TopP)),
	}
	if len(params.Stop) > 0 {
		po = append(po, llama.SetStopWords(params.Stop...))
	}
	text, err := e.model.Predict(prompt, po...)
	if err != nil {
		return nil, err
	}
	return &Result{
		Choices: []ResultChoice{{
			Message:      ResultMessage{Role: types.RoleAssistant, Content: strings.TrimSpace(text)},
			FinishReason: "stop",
		}},
	}, nil
}

func (e *llamaEngine) Close() error {
	if e.model != nil {
		e.model.Free()
		e.model = nil
	}
	return nil
}

// renderPrompt flattens a chat history into the instruct-style prompt the raw
// completion API expects.
func renderPrompt(messages []types.ChatMessage) string {
	var b strings.Builder
	for _, m := range messages {
		switch m.Role {
		case types.RoleSystem:
			b.WriteString("[INST] <<SYS>>\n")
			b.WriteString(m.Content)
			b.WriteString("\n<</SYS>> [/INST]\n")
		case types.RoleUser:
			b.WriteString("[INST] ")
			b.WriteString(m.Content)
			b.WriteString(" [/INST]\n")
		default:
			b.WriteString(m.Content)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
