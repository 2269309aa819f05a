package probestore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/xid"

	"github.com/TeddyJubu/unified-mcp/internal/domain"
	"github.com/TeddyJubu/unified-mcp/internal/ports"
)

const defaultProbesDir = "probes"

type JSONStore struct {
	rootDir        string
	probesDirName  string
	maskingEnabled bool
	writeIndex     bool
	now            func() time.Time
	newID          func() string
}

type Option func(*JSONStore)

// WithIndex enables a simple JSONL index: probes/index.jsonl
func WithIndex(enabled bool) Option {
	return func(s *JSONStore) { s.writeIndex = enabled }
}

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(s *JSONStore) { s.now = now }
}

// WithIDGen overrides the unique suffix of artifact IDs.
func WithIDGen(gen func() string) Option {
	return func(s *JSONStore) { s.newID = gen }
}

func NewJSONStore(root string, settings domain.Settings, opts ...Option) *JSONStore {
	dir := settings.Paths.ProbesDir
	if strings.TrimSpace(dir) == "" {
		dir = defaultProbesDir
	}

	s := &JSONStore{
		rootDir:        root,
		probesDirName:  dir,
		maskingEnabled: settings.Masking.Enabled,
		now:            time.Now,
		newID:          func() string { return xid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.ProbeStore = (*JSONStore)(nil)

// artifactFile is the on-disk shape. The body is stored as text so the file
// stays readable.
type artifactFile struct {
	domain.ProbeArtifact
	Body string `json:"body,omitempty"`
}

func (s *JSONStore) SaveProbe(a domain.ProbeArtifact) (string, error) {
	dir := filepath.Join(s.rootDir, s.probesDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &domain.OpError{
			Op:   "probestore.mkdir",
			Kind: domain.KindExecution,
			Path: dir,
			Err:  err,
		}
	}

	ts := a.StartedAt
	if ts.IsZero() {
		ts = s.now()
	}
	ts = ts.UTC()

	slug := slugify(a.Endpoint.Name)
	if slug == "" {
		slug = "probe"
	}

	id := fmt.Sprintf("%s_%s_%s", ts.Format("20060102T150405Z"), slug, s.newID())
	path := filepath.Join(dir, id+".json")

	toSave := a
	toSave.ID = id
	if toSave.StartedAt.IsZero() {
		toSave.StartedAt = ts
	}
	if s.maskingEnabled {
		toSave = maskArtifact(toSave)
	}

	b, err := json.MarshalIndent(artifactFile{
		ProbeArtifact: toSave,
		Body:          string(a.Result.Response.Body),
	}, "", "  ")
	if err != nil {
		return "", &domain.OpError{
			Op:   "probestore.marshal",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	// Write to a temp file and rename so readers never see a partial artifact.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return "", &domain.OpError{
			Op:   "probestore.write",
			Kind: domain.KindExecution,
			Path: tmp,
			Err:  err,
		}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", &domain.OpError{
			Op:   "probestore.rename",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	if s.writeIndex {
		_ = s.appendIndex(dir, id, toSave)
	}

	return id, nil
}

func (s *JSONStore) appendIndex(dir, id string, a domain.ProbeArtifact) error {
	type idx struct {
		ID        string    `json:"id"`
		File      string    `json:"file"`
		Endpoint  string    `json:"endpoint"`
		Status    int       `json:"status"`
		Failed    bool      `json:"failed"`
		StartedAt time.Time `json:"started_at"`
	}
	line, err := json.Marshal(idx{
		ID:        id,
		File:      id + ".json",
		Endpoint:  a.Endpoint.Name,
		Status:    a.Result.StatusCode,
		Failed:    a.Result.Failed(),
		StartedAt: a.StartedAt,
	})
	if err != nil {
		return err
	}

	f, err := os.OpenFile(filepath.Join(dir, "index.jsonl"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(append(line, '\n'))
	return err
}

// maskArtifact returns a masked copy (does NOT mutate the input).
func maskArtifact(a domain.ProbeArtifact) domain.ProbeArtifact {
	out := a
	out.Endpoint = a.Endpoint.Masked()
	out.Result.Response.Headers = domain.MaskHeaderValues(a.Result.Response.Headers)
	out.Result.Assertions = append([]domain.AssertionResult(nil), a.Result.Assertions...)
	return out
}

// slugify produces a safe filename component.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	var b strings.Builder
	b.Grow(len(s))

	lastDash := false
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastDash = false
			continue
		}
		if !lastDash {
			b.WriteByte('-')
			lastDash = true
		}
	}

	return strings.Trim(b.String(), "-")
}
