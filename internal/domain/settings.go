package domain

import (
	"net"
	"strconv"
)

// Settings is the unified-mcp configuration loaded from unified-mcp.yaml.
type Settings struct {
	Server  ServerSettings
	Probe   ProbeSettings
	Masking MaskingSettings
	Paths   PathsSettings
}

type ServerSettings struct {
	Host    string
	Port    int
	Message string
}

// Addr returns the listen address in host:port form.
func (s ServerSettings) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

type ProbeSettings struct {
	HealthPath   string
	TimeoutMS    int
	MaxBodyBytes int64
}

type MaskingSettings struct {
	Enabled bool
}

type PathsSettings struct {
	ProbesDir string
}

// DefaultSettings provides sane defaults if unified-mcp.yaml is missing or partial.
func DefaultSettings() Settings {
	return Settings{
		Server: ServerSettings{
			Port:    3000,
			Message: "MCP Server is running!",
		},
		Probe: ProbeSettings{
			HealthPath:   DefaultHealthPath,
			TimeoutMS:    5000,
			MaxBodyBytes: 256 * 1024,
		},
		Masking: MaskingSettings{Enabled: true},
		Paths: PathsSettings{
			ProbesDir: "probes",
		},
	}
}
