package gateway

import (
	"llamagate/internal/config"
	"llamagate/pkg/types"
)

// Health reports engine presence. Read-only: it never touches the gate, so it
// stays responsive while a generation is in flight. A missing model is a
// degraded state, not an error.
func (g *Gateway) Health() types.HealthResponse {
	if g.Loaded() {
		return types.HealthResponse{
			Status:      types.HealthOK,
			ModelLoaded: true,
			ModelName:   g.healthModelName(),
		}
	}
	return types.HealthResponse{
		Status:              types.HealthWarning,
		ModelLoaded:         false,
		Message:             "model not loaded or failed to load, check server logs",
		ConfiguredModelPath: g.cfg.ModelPath,
	}
}

// healthModelName resolves the displayed model name, flagging the odd case
// where the artifact disappeared after load.
func (g *Gateway) healthModelName() string {
	name := g.cfg.ModelName()
	if g.cfg.ModelPath != "" && !config.FileExists(g.cfg.ModelPath) {
		return name + " (file not found)"
	}
	return name
}
