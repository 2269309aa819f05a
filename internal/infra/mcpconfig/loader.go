package mcpconfig

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"

	"github.com/tailscale/hujson"

	"github.com/TeddyJubu/unified-mcp/internal/domain"
	"github.com/TeddyJubu/unified-mcp/internal/ports"
)

// Loader reads the MCP endpoint config. Comments and trailing commas are
// tolerated (JWCC), so hand-edited files keep working.
type Loader struct{}

func NewLoader() *Loader {
	return &Loader{}
}

var _ ports.EndpointSource = (*Loader)(nil)

// LoadCatalog reads path and returns its endpoints in file order.
func (l *Loader) LoadCatalog(path string) (domain.Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		kind := domain.KindExecution
		if errors.Is(err, fs.ErrNotExist) {
			kind = domain.KindNotFound
		}
		return domain.Catalog{}, &domain.OpError{
			Op:   "mcpconfig.load",
			Kind: kind,
			Path: path,
			Err:  err,
		}
	}
	return Parse(path, b)
}

// Parse decodes raw config bytes. The document is either an object with an
// "endpoints" (or "mcps") array, or a bare array of endpoints.
func Parse(path string, b []byte) (domain.Catalog, error) {
	std, err := hujson.Standardize(b)
	if err != nil {
		return domain.Catalog{}, invalidJSON(path, err)
	}

	var entries []jsonEndpoint
	if trimmed := bytes.TrimSpace(std); len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(std, &entries); err != nil {
			return domain.Catalog{}, invalidJSON(path, err)
		}
	} else {
		var cfg jsonConfig
		if err := json.Unmarshal(std, &cfg); err != nil {
			return domain.Catalog{}, invalidJSON(path, err)
		}
		entries = cfg.Endpoints
		if len(entries) == 0 {
			entries = cfg.MCPs
		}
	}

	return mapCatalog(path, entries)
}

func invalidJSON(path string, err error) error {
	return &domain.OpError{
		Op:   "mcpconfig.load",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  err,
	}
}
