package httpclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/TeddyJubu/unified-mcp/internal/domain"
)

// ProbeURL joins an endpoint base URL and a health path.
func ProbeURL(base, path string) (string, error) {
	base = strings.TrimSpace(base)
	if base == "" {
		return "", fmt.Errorf("empty url: %w", domain.ErrInvalidEndpoint)
	}

	u, err := url.Parse(strings.TrimRight(base, "/"))
	if err != nil {
		return "", err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported scheme %q: %w", u.Scheme, domain.ErrInvalidEndpoint)
	}
	if u.Host == "" {
		return "", fmt.Errorf("missing host: %w", domain.ErrInvalidEndpoint)
	}

	if path == "" {
		return u.String(), nil
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return u.String() + path, nil
}

// BuildProbeRequest builds the GET request for a resolved endpoint.
// Endpoint headers override the default JSON content type.
func BuildProbeRequest(ctx context.Context, ep domain.Endpoint, healthPath string) (*http.Request, error) {
	target, err := ProbeURL(ep.URL, ep.ProbePath(healthPath))
	if err != nil {
		return nil, &domain.OpError{
			Op:   "httpclient.build",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("endpoint %q: %w", ep.Name, err),
		}
	}

	req, err := http.NewRequestWithContext(ctx, string(domain.MethodGet), target, nil)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "httpclient.build",
			Kind: domain.KindInvalidConfig,
			Err:  err,
		}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range ep.Headers {
		req.Header.Set(k, v)
	}

	return req, nil
}
