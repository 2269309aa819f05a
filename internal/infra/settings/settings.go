package settings

import (
	"errors"
	"io/fs"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/TeddyJubu/unified-mcp/internal/domain"
)

// Load reads a unified-mcp.yaml file and applies it over domain.DefaultSettings.
// On error the defaults are still returned, so callers may treat a missing
// file (KindNotFound) as "use defaults".
func Load(path string) (domain.Settings, error) {
	s := domain.DefaultSettings()

	b, err := os.ReadFile(path)
	if err != nil {
		kind := domain.KindExecution
		if errors.Is(err, fs.ErrNotExist) {
			kind = domain.KindNotFound
		}
		return s, &domain.OpError{
			Op:   "settings.load",
			Kind: kind,
			Path: path,
			Err:  err,
		}
	}

	var y yamlSettings
	if err := yaml.Unmarshal(b, &y); err != nil {
		return s, &domain.OpError{
			Op:   "settings.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	u := y.UnifiedMCP
	if u.Server.Host != nil {
		s.Server.Host = *u.Server.Host
	}
	if u.Server.Port != 0 {
		s.Server.Port = u.Server.Port
	}
	if u.Server.Message != "" {
		s.Server.Message = u.Server.Message
	}
	if u.Probe.HealthPath != "" {
		s.Probe.HealthPath = u.Probe.HealthPath
	}
	if u.Probe.TimeoutMS > 0 {
		s.Probe.TimeoutMS = u.Probe.TimeoutMS
	}
	if u.Probe.MaxBodyBytes > 0 {
		s.Probe.MaxBodyBytes = u.Probe.MaxBodyBytes
	}
	if u.Masking.Enabled != nil {
		s.Masking.Enabled = *u.Masking.Enabled
	}
	if u.Paths.ProbesDir != "" {
		s.Paths.ProbesDir = u.Paths.ProbesDir
	}

	return s, nil
}

// ApplyEnv overrides settings from the environment. Only PORT is honored.
func ApplyEnv(s domain.Settings, getenv func(string) string) domain.Settings {
	if v := getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 && p < 65536 {
			s.Server.Port = p
		}
	}
	return s
}

type yamlSettings struct {
	UnifiedMCP struct {
		Server struct {
			Host    *string `yaml:"host"`
			Port    int     `yaml:"port"`
			Message string  `yaml:"message"`
		} `yaml:"server"`

		Probe struct {
			HealthPath   string `yaml:"health_path"`
			TimeoutMS    int    `yaml:"timeout_ms"`
			MaxBodyBytes int64  `yaml:"max_body_bytes"`
		} `yaml:"probe"`

		Masking struct {
			Enabled *bool `yaml:"enabled"`
		} `yaml:"masking"`

		Paths struct {
			ProbesDir string `yaml:"probes_dir"`
		} `yaml:"paths"`
	} `yaml:"unified_mcp"`
}
