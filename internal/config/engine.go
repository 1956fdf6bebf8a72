package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

// Environment variables read once at process start.
const (
	EnvModelPath = "LLAMAGATE_MODEL_PATH"
	EnvGPULayers = "LLAMAGATE_GPU_LAYERS"
	EnvCtxSize   = "LLAMAGATE_CTX"
	EnvThreads   = "LLAMAGATE_THREADS"
	EnvVerbose   = "LLAMAGATE_VERBOSE"
	EnvLogLevel  = "LLAMAGATE_LOG_LEVEL"
	EnvAddr      = "LLAMAGATE_ADDR"
)

const defaultModelPath = "models/mistral-7b-instruct-v0.1.Q4_K_M.gguf"

// EngineConfig is an immutable snapshot of the engine tunables. It is read
// from the environment once at startup and never mutated afterwards.
type EngineConfig struct {
	// ModelPath is the GGUF model artifact location. The file may not exist;
	// the gateway starts degraded in that case.
	ModelPath string
	// GPULayers is the number of layers to offload to the GPU (-1 = all).
	GPULayers int
	// CtxSize is the token context window size.
	CtxSize int
	// Threads is the CPU thread count used for generation.
	Threads int
	// Verbose enables the engine's own logging.
	Verbose bool
}

// EngineFromEnv builds an EngineConfig from the environment, applying
// defaults for anything unset.
func EngineFromEnv() EngineConfig {
	return EngineConfig{
		ModelPath: EnvStr(EnvModelPath, defaultModelPath),
		GPULayers: EnvInt(EnvGPULayers, -1),
		CtxSize:   EnvInt(EnvCtxSize, 4096),
		Threads:   EnvInt(EnvThreads, runtime.NumCPU()),
		Verbose:   EnvBool(EnvVerbose, true),
	}
}

// ModelName returns the basename of the configured model path, or "unknown"
// when no path is configured.
func (c EngineConfig) ModelName() string {
	if strings.TrimSpace(c.ModelPath) == "" {
		return "unknown"
	}
	return filepath.Base(c.ModelPath)
}

// EnvStr returns the value of key, or def when unset or empty.
func EnvStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// EnvInt returns the integer value of key, or def when unset or unparsable.
func EnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// EnvBool returns the boolean value of key ("true"/"1"/"t", case-insensitive),
// or def when unset.
func EnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	switch strings.ToLower(v) {
	case "true", "1", "t", "yes":
		return true
	default:
		return false
	}
}
