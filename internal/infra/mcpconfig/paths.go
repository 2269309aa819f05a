package mcpconfig

import (
	"os"
	"path/filepath"
)

// Dir returns the MCP data directory.
// It uses $MCP_HOME if set, otherwise defaults to ~/.mcp.
func Dir() string {
	if v := os.Getenv("MCP_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".mcp")
	}
	return filepath.Join(home, ".mcp")
}

// Path returns the endpoint config file path.
// $MCP_CONFIG wins over the default <Dir>/config.json.
func Path() string {
	if v := os.Getenv("MCP_CONFIG"); v != "" {
		return v
	}
	return filepath.Join(Dir(), "config.json")
}
