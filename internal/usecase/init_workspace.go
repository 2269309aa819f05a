package usecase

import "github.com/TeddyJubu/unified-mcp/internal/ports"

type InitWorkspace struct {
	initializer ports.DirInitializer
}

func NewInitWorkspace(initializer ports.DirInitializer) *InitWorkspace {
	return &InitWorkspace{initializer: initializer}
}

// Execute seeds root and returns the files written.
func (uc *InitWorkspace) Execute(root string, force bool) ([]string, error) {
	return uc.initializer.Init(root, force)
}
