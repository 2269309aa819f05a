package ports

import "github.com/TeddyJubu/unified-mcp/internal/domain"

// ProbeStore persists probe artifacts.
type ProbeStore interface {
	SaveProbe(a domain.ProbeArtifact) (id string, err error)
}
