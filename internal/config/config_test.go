package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestEngineFromEnvDefaults(t *testing.T) {
	for _, k := range []string{EnvModelPath, EnvGPULayers, EnvCtxSize, EnvThreads, EnvVerbose} {
		t.Setenv(k, "")
	}
	cfg := EngineFromEnv()
	if cfg.ModelPath == "" {
		t.Fatalf("expected default model path")
	}
	if cfg.GPULayers != -1 || cfg.CtxSize != 4096 || cfg.Threads != runtime.NumCPU() || !cfg.Verbose {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestEngineFromEnvOverrides(t *testing.T) {
	t.Setenv(EnvModelPath, "/models/x.gguf")
	t.Setenv(EnvGPULayers, "20")
	t.Setenv(EnvCtxSize, "2048")
	t.Setenv(EnvThreads, "3")
	t.Setenv(EnvVerbose, "false")
	cfg := EngineFromEnv()
	if cfg.ModelPath != "/models/x.gguf" || cfg.GPULayers != 20 || cfg.CtxSize != 2048 || cfg.Threads != 3 || cfg.Verbose {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestEngineFromEnvBadIntFallsBack(t *testing.T) {
	t.Setenv(EnvCtxSize, "not-a-number")
	cfg := EngineFromEnv()
	if cfg.CtxSize != 4096 {
		t.Fatalf("expected fallback ctx size, got %d", cfg.CtxSize)
	}
}

func TestModelName(t *testing.T) {
	cfg := EngineConfig{ModelPath: "/models/mistral-7b.Q4_K_M.gguf"}
	if cfg.ModelName() != "mistral-7b.Q4_K_M.gguf" {
		t.Fatalf("name=%q", cfg.ModelName())
	}
	if (EngineConfig{}).ModelName() != "unknown" {
		t.Fatalf("expected unknown sentinel")
	}
}

func TestLoadClientYAML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.yaml",
		"service_url: http://example:9000/v1/chat/completions\nrequest_timeout: 30\ngeneration_params:\n  temperature: 0.5\n  max_tokens: 128\ndefault_system_prompt: be brief\nclient_log_level: debug\n")
	cfg, err := LoadClient(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ServiceURL != "http://example:9000/v1/chat/completions" || cfg.RequestTimeoutSecs != 30 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if cfg.Generation.Temperature != 0.5 || cfg.Generation.MaxTokens != 128 {
		t.Fatalf("unexpected generation params: %+v", cfg.Generation)
	}
	if cfg.DefaultSystemPrompt != "be brief" || cfg.LogLevel != "debug" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadClientJSON(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.json", `{"service_url":"http://h:1/v1/chat/completions","request_timeout":7}`)
	cfg, err := LoadClient(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.RequestTimeoutSecs != 7 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadClientTOML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.toml", "service_url=\"http://h:1/v1/chat/completions\"\nrequest_timeout=9\n")
	cfg, err := LoadClient(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.RequestTimeoutSecs != 9 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadClientEmptyFileGetsDefaults(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.yaml", "")
	cfg, err := LoadClient(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ServiceURL != "http://localhost:8000/v1/chat/completions" {
		t.Fatalf("service_url=%q", cfg.ServiceURL)
	}
	if cfg.RequestTimeoutSecs != 120 || cfg.Generation.Temperature != 0.7 || cfg.Generation.MaxTokens != 512 {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("log level=%q", cfg.LogLevel)
	}
}

func TestLoadClientMissingFile(t *testing.T) {
	_, err := LoadClient("/nonexistent/cfg.yaml")
	if err == nil || !IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestLoadClientMalformedYAML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.yaml", "service_url: [unclosed")
	if _, err := LoadClient(p); err == nil || IsNotFound(err) {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestLoadClientUnsupportedExtension(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.ini", "service_url=http://h")
	if _, err := LoadClient(p); err == nil {
		t.Fatalf("expected unsupported extension error")
	}
}

func TestLoadClientInvalidURL(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.yaml", "service_url: ftp://nope\n")
	if _, err := LoadClient(p); err == nil {
		t.Fatalf("expected validation error for non-http url")
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home dir: %v", err)
	}
	got, err := ExpandHome("~/models/x.gguf")
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if got != filepath.Join(home, "models/x.gguf") {
		t.Fatalf("got %q", got)
	}
	plain, _ := ExpandHome("/abs/path")
	if plain != "/abs/path" {
		t.Fatalf("absolute path must pass through, got %q", plain)
	}
}

func TestFileExists(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "f", "x")
	if !FileExists(p) {
		t.Fatalf("expected existing file")
	}
	if FileExists(filepath.Join(d, "missing")) {
		t.Fatalf("expected missing file")
	}
}
