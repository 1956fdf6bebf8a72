//go:build !llama

package engine

import (
	"errors"

	"llamagate/internal/config"
)

// This stub is compiled when the 'llama' build tag is NOT set, keeping
// default builds and CI CGO-free. Open fails fast so the gateway starts
// degraded instead of pretending a model loaded.

// Built indicates this binary was compiled with real llama support.
const Built = false

// ErrNotBuilt is returned by Open in binaries built without the llama tag.
var ErrNotBuilt = errors.New("llama support not built (missing 'llama' build tag)")

// Open always fails in stub builds.
func Open(cfg config.EngineConfig) (Engine, error) {
	return nil, ErrNotBuilt
}
