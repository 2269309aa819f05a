package cli

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/TeddyJubu/unified-mcp/internal/buildinfo"
	"github.com/TeddyJubu/unified-mcp/internal/domain"
	"github.com/TeddyJubu/unified-mcp/internal/infra/envvars"
	"github.com/TeddyJubu/unified-mcp/internal/infra/httpclient"
	"github.com/TeddyJubu/unified-mcp/internal/infra/httpprober"
	"github.com/TeddyJubu/unified-mcp/internal/infra/mcpconfig"
	"github.com/TeddyJubu/unified-mcp/internal/infra/probestore"
	"github.com/TeddyJubu/unified-mcp/internal/infra/settings"
)

// appCtx holds what every command needs: where things live and how to read them.
type appCtx struct {
	mcpDir       string
	configPath   string
	settingsPath string
	settings     domain.Settings

	source *mcpconfig.Loader
	vars   *envvars.Source
}

func loadApp(opts *rootOptions) (*appCtx, error) {
	configPath := strings.TrimSpace(opts.configPath)
	if configPath == "" {
		configPath = mcpconfig.Path()
	}
	configPath, err := filepath.Abs(configPath)
	if err != nil {
		return nil, err
	}

	settingsPath, err := resolveSettingsPath(opts.settingsPath)
	if err != nil {
		return nil, err
	}

	s := domain.DefaultSettings()
	if settingsPath != "" {
		loaded, lerr := settings.Load(settingsPath)
		if lerr != nil && !(opts.settingsPath == "" && domain.IsKind(lerr, domain.KindNotFound)) {
			return nil, lerr
		}
		s = loaded
	}
	s = settings.ApplyEnv(s, os.Getenv)

	mcpDir := mcpconfig.Dir()

	return &appCtx{
		mcpDir:       mcpDir,
		configPath:   configPath,
		settingsPath: settingsPath,
		settings:     s,
		source:       mcpconfig.NewLoader(),
		vars:         envvars.New(dotenvFiles(mcpDir, configPath)),
	}, nil
}

// resolveSettingsPath returns the explicit path, or the nearest
// unified-mcp.yaml above the working directory, or "" for defaults.
func resolveSettingsPath(flag string) (string, error) {
	if p := strings.TrimSpace(flag); p != "" {
		return filepath.Abs(p)
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", nil
	}
	root, err := settings.NewFinder().FindRoot(wd)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return filepath.Join(root, settings.FileName), nil
}

// dotenvFiles lists the .env files read for templates: the MCP dir first,
// then the config's own directory when it differs.
func dotenvFiles(mcpDir, configPath string) []string {
	files := []string{filepath.Join(mcpDir, ".env")}
	if d := filepath.Dir(configPath); filepath.Clean(d) != filepath.Clean(mcpDir) {
		files = append(files, filepath.Join(d, ".env"))
	}
	return files
}

func (a *appCtx) prober(timeout time.Duration) *httpprober.Prober {
	cfg := httpclient.ProbeConfig(timeout)
	cfg.UserAgent = buildinfo.UserAgent()

	exec := httpclient.NewExecutor(
		httpclient.WithClient(httpclient.New(cfg)),
		httpclient.WithTimeout(cfg.Timeout),
		httpclient.WithMaxBodyBytes(a.settings.Probe.MaxBodyBytes),
	)
	return httpprober.New(exec, httpprober.WithHealthPath(a.settings.Probe.HealthPath))
}

func (a *appCtx) store() *probestore.JSONStore {
	return probestore.NewJSONStore(a.mcpDir, a.settings, probestore.WithIndex(true))
}
