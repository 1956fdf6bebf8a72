package gateway

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	"llamagate/internal/engine"
	"llamagate/internal/gatemetrics"
	"llamagate/pkg/types"
)

// Complete runs one chat completion: validate, acquire the gate, offload the
// blocking generate call, map the result. The gate is released on every exit
// path once acquired.
func (g *Gateway) Complete(ctx context.Context, req types.ChatCompletionRequest) (*types.ChatCompletionResponse, error) {
	if err := validateRequest(req); err != nil {
		gatemetrics.CompletionsTotal.WithLabelValues(gatemetrics.OutcomeInvalid).Inc()
		return nil, err
	}

	eng, gate := g.snapshot()
	if eng == nil || gate == nil {
		gatemetrics.CompletionsTotal.WithLabelValues(gatemetrics.OutcomeUnavailable).Inc()
		return nil, ErrUnavailable("engine is not loaded or unavailable, check /v1/health")
	}

	// Cancellable acquire: a caller that disconnects while queued abandons
	// the wait without having held anything.
	select {
	case gate <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	defer func() { <-gate }()

	g.log.Debug().Int("messages", len(req.Messages)).Msg("gate acquired")

	res, dur, err := g.invoke(eng, req.Messages, resolveParams(req))
	if err != nil {
		gatemetrics.CompletionsTotal.WithLabelValues(gatemetrics.OutcomeError).Inc()
		g.log.Error().Err(err).Dur("generation_duration", dur).Msg("generation failed")
		return nil, err
	}
	g.log.Info().Dur("generation_duration", dur).Msg("generation completed")

	resp, err := g.buildResponse(res)
	if err != nil {
		gatemetrics.CompletionsTotal.WithLabelValues(gatemetrics.OutcomeError).Inc()
		g.log.Error().Err(err).Msg("engine result rejected")
		return nil, err
	}
	gatemetrics.CompletionsTotal.WithLabelValues(gatemetrics.OutcomeOK).Inc()
	return resp, nil
}

type genOutcome struct {
	res *engine.Result
	err error
}

// invoke runs the blocking generate call on its own goroutine so the calling
// task can be scheduled away while compute runs, and converts panics into
// errors so a request can never end with the gate held and no outcome.
// The worker is always awaited to completion: the engine call cannot be
// interrupted, and releasing the gate early would expose the engine to
// concurrent use.
func (g *Gateway) invoke(eng engine.Engine, messages []types.ChatMessage, params engine.Params) (*engine.Result, time.Duration, error) {
	ch := make(chan genOutcome, 1)
	gatemetrics.GenerationInflight.Inc()
	start := time.Now()
	go func() {
		defer func() {
			if r := recover(); r != nil {
				g.log.Error().
					Interface("panic", r).
					Bytes("stack", debug.Stack()).
					Msg("engine panicked during generation")
				ch <- genOutcome{err: fmt.Errorf("engine panic: %v", r)}
			}
		}()
		res, err := eng.Generate(messages, params)
		ch <- genOutcome{res: res, err: err}
	}()
	out := <-ch
	dur := time.Since(start)
	gatemetrics.GenerationInflight.Dec()
	gatemetrics.GenerationDuration.Observe(dur.Seconds())
	return out.res, dur, out.err
}

// buildResponse maps a raw engine result onto the wire contract, filling the
// documented defaults for optional fields.
func (g *Gateway) buildResponse(res *engine.Result) (*types.ChatCompletionResponse, error) {
	if res == nil || len(res.Choices) == 0 {
		return nil, upstreamShapeError{msg: "no choices in result"}
	}
	first := res.Choices[0]

	role := first.Message.Role
	if role == "" {
		role = types.RoleAssistant
	}
	finish := first.FinishReason
	if finish == "" {
		finish = "stop"
	}
	id := res.ID
	if id == "" {
		id = "chatcmpl-" + uuid.NewString()
	}
	created := res.Created
	if created == 0 {
		created = time.Now().Unix()
	}

	return &types.ChatCompletionResponse{
		ID:      id,
		Created: created,
		Model:   g.cfg.ModelName(),
		Choices: []types.ChatCompletionChoice{{
			Index:        0,
			Message:      types.ChatMessage{Role: role, Content: first.Message.Content},
			FinishReason: finish,
		}},
	}, nil
}

// validateRequest enforces the request contract before any engine
// interaction is attempted.
func validateRequest(req types.ChatCompletionRequest) error {
	if len(req.Messages) == 0 {
		return ErrValidation("messages list cannot be empty")
	}
	for i, m := range req.Messages {
		switch m.Role {
		case types.RoleSystem, types.RoleUser, types.RoleAssistant:
		default:
			return ErrValidation(fmt.Sprintf("messages[%d].role must be system, user or assistant", i))
		}
	}
	if t := req.Temperature; t != nil && (*t < 0 || *t > 2) {
		return ErrValidation("temperature must be in [0,2]")
	}
	if mt := req.MaxTokens; mt != nil && *mt <= 0 {
		return ErrValidation("max_tokens must be greater than 0")
	}
	if p := req.TopP; p != nil && (*p <= 0 || *p > 1) {
		return ErrValidation("top_p must be in (0,1]")
	}
	return nil
}

// resolveParams applies the documented defaults to omitted parameters.
func resolveParams(req types.ChatCompletionRequest) engine.Params {
	params := engine.Params{
		Temperature: types.DefaultTemperature,
		MaxTokens:   types.DefaultMaxTokens,
		TopP:        types.DefaultTopP,
		Stop:        req.Stop,
	}
	if req.Temperature != nil {
		params.Temperature = *req.Temperature
	}
	if req.MaxTokens != nil {
		params.MaxTokens = *req.MaxTokens
	}
	if req.TopP != nil {
		params.TopP = *req.TopP
	}
	return params
}
