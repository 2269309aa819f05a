package fsworkspace

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/TeddyJubu/unified-mcp/internal/domain"
	"github.com/TeddyJubu/unified-mcp/internal/ports"
)

// Initializer seeds an MCP directory with a sample config.
type Initializer struct {
	probesDir string
}

func NewInitializer(settings domain.Settings) *Initializer {
	dir := settings.Paths.ProbesDir
	if strings.TrimSpace(dir) == "" {
		dir = domain.DefaultSettings().Paths.ProbesDir
	}
	return &Initializer{probesDir: dir}
}

var _ ports.DirInitializer = (*Initializer)(nil)

// Init creates root and writes the templates that are missing. Existing files
// are only replaced when force is set.
func (i *Initializer) Init(root string, force bool) ([]string, error) {
	root = filepath.Clean(root)

	dirs := []string{
		root,
		filepath.Join(root, i.probesDir),
		filepath.Join(root, "logs"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, &domain.OpError{Op: "fsworkspace.mkdir", Kind: domain.KindExecution, Path: d, Err: err}
		}
	}

	if err := ensureGitignore(root, i.probesDir); err != nil {
		return nil, &domain.OpError{Op: "fsworkspace.gitignore", Kind: domain.KindExecution, Path: root, Err: err}
	}

	var written []string
	err := fs.WalkDir(templatesFS, "templates", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel := strings.TrimPrefix(p, "templates/")
		dst := filepath.Join(root, rel)

		if !force {
			if _, statErr := os.Stat(dst); statErr == nil {
				return nil
			}
		}

		b, err := fs.ReadFile(templatesFS, p)
		if err != nil {
			return err
		}

		// config.json may end up holding tokens.
		mode := fs.FileMode(0o644)
		if rel == "config.json" {
			mode = 0o600
		}

		if err := os.WriteFile(dst, b, mode); err != nil {
			return err
		}
		written = append(written, dst)
		return nil
	})
	if err != nil {
		return written, &domain.OpError{Op: "fsworkspace.init", Kind: domain.KindExecution, Path: root, Err: err}
	}

	return written, nil
}

func ensureGitignore(root, probesDir string) error {
	const header = "# unified-mcp"
	entries := []string{
		strings.TrimSuffix(probesDir, "/") + "/",
		"logs/",
		".env",
	}

	path := filepath.Join(root, ".gitignore")
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			lines := append([]string{header}, entries...)
			lines = append(lines, "")
			return os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644)
		}
		return err
	}

	existing := string(b)
	present := map[string]bool{}
	for _, line := range strings.Split(existing, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			present[trimmed] = true
		}
	}

	var missing []string
	for _, e := range entries {
		if !present[e] {
			missing = append(missing, e)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	var out strings.Builder
	out.WriteString(existing)
	if existing != "" && !strings.HasSuffix(existing, "\n") {
		out.WriteByte('\n')
	}
	if !present[header] {
		out.WriteString(header)
		out.WriteByte('\n')
	}
	for _, e := range missing {
		out.WriteString(e)
		out.WriteByte('\n')
	}

	return os.WriteFile(path, []byte(out.String()), 0o644)
}
