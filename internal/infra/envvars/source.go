package envvars

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/TeddyJubu/unified-mcp/internal/domain"
	"github.com/TeddyJubu/unified-mcp/internal/ports"
)

// Source layers the process environment over optional .env files.
// Files are read, never exported into the process; missing files are skipped.
type Source struct {
	files   []string
	environ func() []string
}

type Option func(*Source)

// WithEnviron overrides the process environment (useful for tests).
func WithEnviron(fn func() []string) Option {
	return func(s *Source) { s.environ = fn }
}

func New(files []string, opts ...Option) *Source {
	s := &Source{
		files:   files,
		environ: os.Environ,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.VarsSource = (*Source)(nil)

// LoadVars returns the merged variables. Later files override earlier ones;
// the process environment overrides every file.
func (s *Source) LoadVars() (domain.Vars, error) {
	vars := domain.Vars{}

	for _, path := range s.files {
		m, err := godotenv.Read(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, &domain.OpError{
				Op:   "envvars.read",
				Kind: domain.KindInvalidConfig,
				Path: path,
				Err:  err,
			}
		}
		vars = domain.Merge(vars, m)
	}

	return domain.Merge(vars, parseEnviron(s.environ())), nil
}

func parseEnviron(env []string) domain.Vars {
	out := make(domain.Vars, len(env))
	for _, kv := range env {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		out[k] = v
	}
	return out
}
