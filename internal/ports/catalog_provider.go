package ports

import "github.com/TeddyJubu/unified-mcp/internal/domain"

// CatalogProvider hands out the current endpoint catalog. Implementations
// may swap it at any time; callers must not hold on to it.
type CatalogProvider interface {
	Current() domain.Catalog
}
