package httpprober

import (
	"context"
	"net/http"
	"time"

	"github.com/TeddyJubu/unified-mcp/internal/domain"
	"github.com/TeddyJubu/unified-mcp/internal/infra/httpclient"
	"github.com/TeddyJubu/unified-mcp/internal/ports"
)

type Prober struct {
	exec       *httpclient.Executor
	resolver   *domain.VarResolver
	healthPath string
}

type Option func(*Prober)

func WithResolver(vr *domain.VarResolver) Option {
	return func(p *Prober) { p.resolver = vr }
}

// WithHealthPath sets the path used when an endpoint does not define one.
func WithHealthPath(path string) Option {
	return func(p *Prober) { p.healthPath = path }
}

func New(exec *httpclient.Executor, opts ...Option) *Prober {
	p := &Prober{
		exec:       exec,
		resolver:   domain.NewVarResolver(),
		healthPath: domain.DefaultHealthPath,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var _ ports.Prober = (*Prober)(nil)

func (p *Prober) Probe(ctx context.Context, ep domain.Endpoint, vars domain.Vars) (domain.ProbeResult, error) {
	rt, err := p.resolver.NewRuntime(vars)
	if err != nil {
		return domain.ProbeResult{}, err
	}

	resolved, err := rt.ResolveEndpoint(ep)
	if err != nil {
		return domain.ProbeResult{}, err
	}

	req, err := httpclient.BuildProbeRequest(ctx, resolved, p.healthPath)
	if err != nil {
		return domain.ProbeResult{}, err
	}

	result := domain.ProbeResult{
		EndpointName: ep.Name,
		Method:       domain.MethodGet,
		URL:          req.URL.String(),
		Assertions:   []domain.AssertionResult{},
		Response: domain.ResponseSnapshot{
			Headers: map[string][]string{},
		},
	}

	resp, err := p.exec.Do(ctx, req)
	result.LatencyMS = resp.Duration.Milliseconds()
	if resp.Status != 0 {
		result.StatusCode = resp.Status
		result.StatusText = http.StatusText(resp.Status)
		result.Response.Headers = cloneHeaders(resp.Headers)
	}
	if err != nil {
		result.Error = domain.NewProbeError(err)
		return result, nil
	}

	result.Response.Body = resp.BodyBytes
	result.Response.Truncated = resp.Truncated

	if resp.Status >= http.StatusBadRequest {
		result.Error = domain.HTTPStatusError(resp.Status)
	}
	return result, nil
}

func cloneHeaders(h http.Header) map[string][]string {
	out := make(map[string][]string, len(h))
	for k, v := range h {
		cp := make([]string, len(v))
		copy(cp, v)
		out[k] = cp
	}
	return out
}

// Timeout converts a millisecond setting into a duration, falling back to
// the client default when unset.
func Timeout(ms int) time.Duration {
	if ms <= 0 {
		return httpclient.DefaultConfig().Timeout
	}
	return time.Duration(ms) * time.Millisecond
}
