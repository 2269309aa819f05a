package mcpconfig

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/TeddyJubu/unified-mcp/internal/domain"
)

func mapCatalog(path string, entries []jsonEndpoint) (domain.Catalog, error) {
	cat := domain.Catalog{
		Source:    path,
		Endpoints: make([]domain.Endpoint, 0, len(entries)),
	}

	seen := make(map[string]int, len(entries))
	for i, e := range entries {
		field := fmt.Sprintf("endpoints[%d]", i)

		ep, err := mapEndpoint(path, field, e)
		if err != nil {
			return domain.Catalog{}, err
		}

		key := strings.ToLower(ep.Name)
		if prev, dup := seen[key]; dup {
			return domain.Catalog{}, invalidField(path, field+".name",
				fmt.Sprintf("duplicate name %q (first at endpoints[%d])", ep.Name, prev))
		}
		seen[key] = i

		cat.Endpoints = append(cat.Endpoints, ep)
	}

	return cat, nil
}

func mapEndpoint(path, field string, e jsonEndpoint) (domain.Endpoint, error) {
	name := strings.TrimSpace(e.Name)
	if name == "" {
		return domain.Endpoint{}, invalidField(path, field+".name", "name is required")
	}

	rawURL := strings.TrimSpace(e.URL)
	if rawURL == "" {
		return domain.Endpoint{}, invalidField(path, field+".url", "url is required")
	}
	if err := checkURL(rawURL); err != nil {
		return domain.Endpoint{}, invalidField(path, field+".url", err.Error())
	}

	marker, err := mapMarker(e.LastUpdated)
	if err != nil {
		return domain.Endpoint{}, invalidField(path, field+".last_updated", err.Error())
	}

	headers := domain.Headers(e.Headers)
	if headers == nil {
		headers = domain.Headers{}
	}

	return domain.Endpoint{
		Name:        name,
		URL:         strings.TrimRight(rawURL, "/"),
		Headers:     headers,
		LastUpdated: marker,
		HealthPath:  strings.TrimSpace(e.HealthPath),
		Expect: domain.ExpectSpec{
			Status:       e.Expect.Status,
			MaxLatencyMS: e.Expect.MaxMS,
			JSONPath:     mapJSONPath(e.Expect.JSONPath),
		},
	}, nil
}

// checkURL accepts absolute http(s) URLs. Templated URLs are checked after
// resolution, when the probe is built.
func checkURL(raw string) error {
	if strings.Contains(raw, "{{") {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q (expected http or https)", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host")
	}
	return nil
}

// mapMarker keeps string markers verbatim, including unparseable ones.
// null means "no marker".
func mapMarker(v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	default:
		return "", fmt.Errorf("must be a string, got %T", v)
	}
}

func mapJSONPath(in map[string]jsonJSONPathAssertion) map[string]domain.JSONPathAssertion {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]domain.JSONPathAssertion, len(in))
	for k, v := range in {
		out[k] = domain.JSONPathAssertion{
			Exists:   v.Exists,
			Eq:       v.Eq,
			Contains: v.Contains,
			Matches:  v.Matches,
		}
	}
	return out
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "mcpconfig.map",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("field %s: %s: %w", field, msg, domain.ErrInvalidConfig),
	}
}
