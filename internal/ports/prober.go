package ports

import (
	"context"

	"github.com/TeddyJubu/unified-mcp/internal/domain"
)

// Prober performs a health probe against one endpoint with a resolved variable set.
// Transport failures are reported in ProbeResult.Error; the returned error is
// reserved for config-level problems (missing variable, malformed URL).
type Prober interface {
	Probe(ctx context.Context, ep domain.Endpoint, vars domain.Vars) (domain.ProbeResult, error)
}
