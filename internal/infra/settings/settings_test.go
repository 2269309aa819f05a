package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/TeddyJubu/unified-mcp/internal/domain"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeSettings(t, "unified_mcp:\n  masking:\n    enabled: false\n")

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if s.Masking.Enabled {
		t.Fatalf("expected masking=false")
	}
	if s.Server.Port != 3000 {
		t.Fatalf("expected default port 3000, got %d", s.Server.Port)
	}
	if s.Server.Message != "MCP Server is running!" {
		t.Fatalf("unexpected default message %q", s.Server.Message)
	}
	if s.Probe.HealthPath != "/health" || s.Probe.TimeoutMS != 5000 {
		t.Fatalf("unexpected probe defaults: %+v", s.Probe)
	}
	if s.Paths.ProbesDir != "probes" {
		t.Fatalf("expected probes dir=probes, got=%s", s.Paths.ProbesDir)
	}
}

func TestLoad_Overrides(t *testing.T) {
	path := writeSettings(t, `unified_mcp:
  server:
    host: 127.0.0.1
    port: 8080
    message: hello
  probe:
    health_path: /status
    timeout_ms: 1500
    max_body_bytes: 1024
  paths:
    probes_dir: history
`)

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if s.Server.Addr() != "127.0.0.1:8080" {
		t.Fatalf("unexpected addr %q", s.Server.Addr())
	}
	if s.Server.Message != "hello" {
		t.Fatalf("unexpected message %q", s.Server.Message)
	}
	if s.Probe.HealthPath != "/status" || s.Probe.TimeoutMS != 1500 || s.Probe.MaxBodyBytes != 1024 {
		t.Fatalf("unexpected probe settings: %+v", s.Probe)
	}
	if !s.Masking.Enabled {
		t.Fatalf("expected masking default to stay on")
	}
	if s.Paths.ProbesDir != "history" {
		t.Fatalf("unexpected probes dir %q", s.Paths.ProbesDir)
	}
}

func TestLoad_MissingReturnsDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), FileName))
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected KindNotFound, got %v", err)
	}
	if s.Server.Port != 3000 {
		t.Fatalf("expected defaults alongside error")
	}
}

func TestLoad_UnreadableIsNotMissing(t *testing.T) {
	dir := filepath.Join(t.TempDir(), FileName)
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	_, err := Load(dir)
	if err == nil {
		t.Fatalf("expected error reading a directory")
	}
	if domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("unreadable settings must not look missing, got %v", err)
	}
	if !domain.IsKind(err, domain.KindExecution) {
		t.Fatalf("expected KindExecution, got %v", err)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeSettings(t, "unified_mcp: [unterminated\n")
	if _, err := Load(path); !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected KindInvalidConfig, got %v", err)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{"PORT": "4321"}
	s := ApplyEnv(domain.DefaultSettings(), func(k string) string { return env[k] })
	if s.Server.Port != 4321 {
		t.Fatalf("expected PORT to override, got %d", s.Server.Port)
	}

	env["PORT"] = "not-a-port"
	s = ApplyEnv(domain.DefaultSettings(), func(k string) string { return env[k] })
	if s.Server.Port != 3000 {
		t.Fatalf("expected invalid PORT to be ignored, got %d", s.Server.Port)
	}
}
