package ports

// DirInitializer seeds an MCP directory and reports the files it wrote.
type DirInitializer interface {
	Init(root string, force bool) ([]string, error)
}
