// Package gateway owns the loaded engine and the admission contract around
// it: the engine handle is populated once at startup and released once at
// shutdown, and a binary gate guarantees at most one generation is executing
// at any instant. Everything else in the process reads the handle through
// this package.
package gateway

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"llamagate/internal/config"
	"llamagate/internal/engine"
	"llamagate/internal/gatemetrics"
)

// Options configures a Gateway.
type Options struct {
	Config config.EngineConfig
	Logger zerolog.Logger
	// OpenEngine overrides how the engine is loaded. Nil means engine.Open.
	OpenEngine func(config.EngineConfig) (engine.Engine, error)
}

// Gateway is the process-scoped owner of the engine handle and its gate.
type Gateway struct {
	cfg  config.EngineConfig
	log  zerolog.Logger
	open func(config.EngineConfig) (engine.Engine, error)

	mu   sync.RWMutex
	eng  engine.Engine // nil until Start loads a model, nil again after Stop
	gate chan struct{} // cap 1, exists iff eng is present
}

// New constructs a Gateway. No engine is loaded until Start.
func New(opts Options) *Gateway {
	op := opts.OpenEngine
	if op == nil {
		op = engine.Open
	}
	return &Gateway{cfg: opts.Config, log: opts.Logger, open: op}
}

// Start attempts to load the engine exactly once. A missing model file or a
// failed load leaves the gateway degraded (engine absent) without failing the
// process; both conditions are logged and reflected by Health.
func (g *Gateway) Start(ctx context.Context) {
	g.log.Info().
		Str("model_path", g.cfg.ModelPath).
		Int("gpu_layers", g.cfg.GPULayers).
		Int("ctx_size", g.cfg.CtxSize).
		Int("threads", g.cfg.Threads).
		Bool("verbose", g.cfg.Verbose).
		Msg("engine configuration")

	if err := ctx.Err(); err != nil {
		g.log.Warn().Err(err).Msg("startup canceled before engine load")
		return
	}
	if !config.FileExists(g.cfg.ModelPath) {
		g.log.Error().Str("model_path", g.cfg.ModelPath).
			Msg("model file not found, engine will not be available")
		return
	}

	start := time.Now()
	eng, err := g.open(g.cfg)
	if err != nil {
		g.log.Error().Err(err).Msg("failed to load engine, it will not be available")
		return
	}
	loadDur := time.Since(start)

	g.mu.Lock()
	g.eng = eng
	g.gate = make(chan struct{}, 1)
	g.mu.Unlock()

	gatemetrics.Loaded.Set(1)
	gatemetrics.LoadDurationSeconds.Set(loadDur.Seconds())
	g.log.Info().
		Dur("load_duration", loadDur).
		Str("model_name", g.cfg.ModelName()).
		Msg("engine loaded")
}

// Stop releases the engine handle and discards the gate. It waits for an
// in-flight generation to finish before freeing the engine, and is a no-op
// when nothing was loaded.
func (g *Gateway) Stop() {
	g.mu.Lock()
	eng, gate := g.eng, g.gate
	g.eng = nil
	g.gate = nil
	g.mu.Unlock()
	if eng == nil {
		g.log.Info().Msg("no engine loaded, nothing to release")
		return
	}
	// Hold the gate so a generation handed a snapshot before Stop cannot be
	// running while the engine is freed.
	gate <- struct{}{}
	if err := eng.Close(); err != nil {
		g.log.Error().Err(err).Msg("engine close")
	}
	gatemetrics.Loaded.Set(0)
	g.log.Info().Msg("engine released")
}

// Loaded reports whether an engine is currently present. Read-only; never
// touches the gate.
func (g *Gateway) Loaded() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.eng != nil
}

// snapshot returns the current handle and gate under the read lock.
func (g *Gateway) snapshot() (engine.Engine, chan struct{}) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.eng, g.gate
}
