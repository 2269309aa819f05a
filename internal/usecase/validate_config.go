package usecase

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/TeddyJubu/unified-mcp/internal/domain"
	"github.com/TeddyJubu/unified-mcp/internal/ports"
)

type ValidateConfig struct {
	source   ports.EndpointSource
	vars     ports.VarsSource
	resolver *domain.VarResolver
}

type ValidateOption func(*ValidateConfig)

func WithVarResolver(vr *domain.VarResolver) ValidateOption {
	return func(uc *ValidateConfig) {
		if vr != nil {
			uc.resolver = vr
		}
	}
}

func WithValidateVars(v ports.VarsSource) ValidateOption {
	return func(uc *ValidateConfig) { uc.vars = v }
}

func NewValidateConfig(source ports.EndpointSource, opts ...ValidateOption) *ValidateConfig {
	uc := &ValidateConfig{
		source:   source,
		resolver: domain.NewVarResolver(),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// EndpointIssue is a problem found on one endpoint.
type EndpointIssue struct {
	Endpoint string
	Err      error
}

type ValidationReport struct {
	Catalog domain.Catalog
	// Latest is the endpoint a query without --name would use.
	Latest   *domain.Endpoint
	Problems []EndpointIssue
	// Warnings do not fail validation.
	Warnings []string
}

func (r ValidationReport) OK() bool { return len(r.Problems) == 0 }

// Execute checks the config without any HTTP call: templates must resolve to
// absolute http(s) URLs, and markers that cannot be parsed are reported.
func (uc *ValidateConfig) Execute(ctx context.Context, path string) (ValidationReport, error) {
	cat, err := uc.source.LoadCatalog(path)
	if err != nil {
		return ValidationReport{}, err
	}

	vars := domain.Vars{}
	if uc.vars != nil {
		if vars, err = uc.vars.LoadVars(); err != nil {
			return ValidationReport{}, err
		}
	}

	rep := ValidationReport{Catalog: cat, Latest: cat.Latest()}

	for _, ep := range cat.Endpoints {
		if err := ctx.Err(); err != nil {
			return rep, err
		}

		if m := ep.Marker(); m != "" {
			if _, ok := domain.ParseMarker(m); !ok {
				rep.Warnings = append(rep.Warnings,
					fmt.Sprintf("endpoint %q: last_updated %q is not a valid timestamp; it will never be picked over a dated endpoint", ep.Name, m))
			}
		}

		rt, err := uc.resolver.NewRuntime(vars)
		if err != nil {
			return rep, err
		}
		resolved, err := rt.ResolveEndpoint(ep)
		if err != nil {
			rep.Problems = append(rep.Problems, EndpointIssue{Endpoint: ep.Name, Err: err})
			continue
		}
		if err := checkResolvedURL(resolved.URL); err != nil {
			rep.Problems = append(rep.Problems, EndpointIssue{Endpoint: ep.Name, Err: err})
		}
	}

	return rep, nil
}

func checkResolvedURL(raw string) error {
	u, err := url.Parse(raw)
	if err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != "" {
		return nil
	}
	return &domain.OpError{
		Op:   "usecase.validate",
		Kind: domain.KindInvalidConfig,
		Err:  fmt.Errorf("url %q must be an absolute http(s) URL: %w", strings.TrimSpace(raw), domain.ErrInvalidEndpoint),
	}
}
