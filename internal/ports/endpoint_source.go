package ports

import "github.com/TeddyJubu/unified-mcp/internal/domain"

// EndpointSource loads the endpoint catalog from a source (e.g., ~/.mcp/config.json).
type EndpointSource interface {
	LoadCatalog(path string) (domain.Catalog, error)
}
