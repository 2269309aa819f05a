package ports

// SettingsLocator finds the directory holding unified-mcp.yaml, starting
// from an arbitrary directory.
type SettingsLocator interface {
	FindRoot(startDir string) (string, error)
}
