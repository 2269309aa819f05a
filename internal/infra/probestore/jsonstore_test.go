package probestore

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/TeddyJubu/unified-mcp/internal/domain"
)

func sampleArtifact(start time.Time) domain.ProbeArtifact {
	return domain.ProbeArtifact{
		ConfigPath: "/home/u/.mcp/config.json",
		Endpoint: domain.Endpoint{
			Name:        "Local MCP",
			URL:         "http://localhost:3000",
			Headers:     domain.Headers{"Authorization": "Bearer abc", "Accept": "application/json"},
			LastUpdated: "2024-01-02T10:00:00Z",
		},
		StartedAt:  start,
		FinishedAt: start.Add(40 * time.Millisecond),
		Result: domain.ProbeResult{
			EndpointName: "Local MCP",
			Method:       domain.MethodGet,
			URL:          "http://localhost:3000/health",
			StatusCode:   200,
			StatusText:   "OK",
			LatencyMS:    40,
			Assertions:   []domain.AssertionResult{{Name: "status", Passed: true, Message: "status 200"}},
			Response: domain.ResponseSnapshot{
				Headers: map[string][]string{"Set-Cookie": {"sid=1"}, "X-Test": {"1"}},
				Body:    []byte(`{"status":"ok"}`),
			},
		},
	}
}

func readArtifact(t *testing.T, path string) map[string]any {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return decoded
}

func TestSaveProbe_CreatesJSONFile(t *testing.T) {
	tmp := t.TempDir()

	settings := domain.DefaultSettings()
	settings.Masking.Enabled = false

	store := NewJSONStore(tmp, settings, WithIDGen(func() string { return "abc" }))

	start := time.Date(2026, 2, 3, 10, 11, 12, 0, time.UTC)
	id, err := store.SaveProbe(sampleArtifact(start))
	if err != nil {
		t.Fatalf("SaveProbe error: %v", err)
	}
	if id != "20260203T101112Z_local-mcp_abc" {
		t.Fatalf("unexpected id %q", id)
	}

	decoded := readArtifact(t, filepath.Join(tmp, "probes", id+".json"))
	if decoded["id"] != id {
		t.Fatalf("expected id in artifact, got %v", decoded["id"])
	}
	if decoded["body"] != `{"status":"ok"}` {
		t.Fatalf("expected body as text, got %v", decoded["body"])
	}
	ep := decoded["endpoint"].(map[string]any)
	headers := ep["headers"].(map[string]any)
	if headers["Authorization"] != "Bearer abc" {
		t.Fatalf("expected unmasked header when masking disabled")
	}

	if _, err := os.Stat(filepath.Join(tmp, "probes", id+".json.tmp")); !os.IsNotExist(err) {
		t.Fatalf("expected temp file to be gone")
	}
}

func TestSaveProbe_MasksWhenEnabled(t *testing.T) {
	tmp := t.TempDir()
	store := NewJSONStore(tmp, domain.DefaultSettings(), WithIDGen(func() string { return "x" }))

	in := sampleArtifact(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	id, err := store.SaveProbe(in)
	if err != nil {
		t.Fatalf("SaveProbe error: %v", err)
	}

	decoded := readArtifact(t, filepath.Join(tmp, "probes", id+".json"))
	headers := decoded["endpoint"].(map[string]any)["headers"].(map[string]any)
	if headers["Authorization"] != domain.MaskValue {
		t.Fatalf("expected authorization masked, got %v", headers["Authorization"])
	}
	if headers["Accept"] != "application/json" {
		t.Fatalf("expected accept kept")
	}

	resp := decoded["result"].(map[string]any)["response"].(map[string]any)["headers"].(map[string]any)
	if resp["Set-Cookie"].([]any)[0] != domain.MaskValue {
		t.Fatalf("expected response cookie masked")
	}

	if in.Endpoint.Headers["Authorization"] != "Bearer abc" {
		t.Fatalf("expected input artifact not to be mutated")
	}
	if in.Result.Response.Headers["Set-Cookie"][0] != "sid=1" {
		t.Fatalf("expected input response headers not to be mutated")
	}
}

func TestSaveProbe_WritesIndex(t *testing.T) {
	tmp := t.TempDir()
	settings := domain.DefaultSettings()
	settings.Paths.ProbesDir = "history"

	store := NewJSONStore(tmp, settings, WithIndex(true))

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 2; i++ {
		if _, err := store.SaveProbe(sampleArtifact(start)); err != nil {
			t.Fatalf("SaveProbe error: %v", err)
		}
	}

	f, err := os.Open(filepath.Join(tmp, "history", "index.jsonl"))
	if err != nil {
		t.Fatalf("open index: %v", err)
	}
	defer f.Close()

	lines := 0
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var row map[string]any
		if err := json.Unmarshal(sc.Bytes(), &row); err != nil {
			t.Fatalf("bad index line: %v", err)
		}
		if row["endpoint"] != "Local MCP" {
			t.Fatalf("unexpected endpoint in index: %v", row["endpoint"])
		}
		lines++
	}
	if lines != 2 {
		t.Fatalf("expected 2 index lines, got %d", lines)
	}
}

func TestSaveProbe_UsesClockWhenStartMissing(t *testing.T) {
	tmp := t.TempDir()
	fixed := time.Date(2030, 5, 6, 7, 8, 9, 0, time.UTC)
	store := NewJSONStore(tmp, domain.DefaultSettings(), WithNow(func() time.Time { return fixed }), WithIDGen(func() string { return "n" }))

	a := sampleArtifact(time.Time{})
	a.Endpoint.Name = "   "
	id, err := store.SaveProbe(a)
	if err != nil {
		t.Fatalf("SaveProbe error: %v", err)
	}
	if id != "20300506T070809Z_probe_n" {
		t.Fatalf("unexpected id %q", id)
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Local MCP":        "local-mcp",
		"  prod__api.v2 ":  "prod-api-v2",
		"ÜBER server!":     "ber-server",
		"":                 "",
		"---":              "",
	}
	for in, want := range cases {
		if got := slugify(in); got != want {
			t.Errorf("slugify(%q) = %q, want %q", in, got, want)
		}
	}
}
