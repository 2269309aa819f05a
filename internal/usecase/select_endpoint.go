package usecase

import (
	"fmt"
	"strings"

	"github.com/TeddyJubu/unified-mcp/internal/domain"
)

// SelectEndpoint picks an endpoint from cat. With a name it looks for an
// exact, case-insensitive match; otherwise it takes the most recently
// updated one. A nil endpoint with a nil error means nothing is available.
func SelectEndpoint(cat domain.Catalog, name string) (*domain.Endpoint, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return cat.Latest(), nil
	}

	for i := range cat.Endpoints {
		if strings.EqualFold(cat.Endpoints[i].Name, name) {
			return &cat.Endpoints[i], nil
		}
	}

	return nil, &domain.OpError{
		Op:   "usecase.select",
		Kind: domain.KindNotFound,
		Path: cat.Source,
		Err:  fmt.Errorf("endpoint %q: %w", name, domain.ErrNotFound),
	}
}
